// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package slhdsa

import (
	"crypto"
	"crypto/rand"
	"fmt"

	"github.com/cloudflare/circl/xof"
	"github.com/tink-crypto/slhdsa-go/internal/signature/slhdsa"
)

func preHashForHash(h crypto.Hash) (slhdsa.PreHash, error) {
	ph, ok := slhdsa.PreHashFor(h)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedPreHash, h)
	}
	return ph, nil
}

func preHashForXOF(x xof.ID) (slhdsa.PreHash, error) {
	switch x {
	case xof.SHAKE128:
		return slhdsa.PreHashSHAKE128, nil
	case xof.SHAKE256:
		return slhdsa.PreHashSHAKE256, nil
	}
	return 0, fmt.Errorf("%w: xof.ID(%d)", ErrUnsupportedPreHash, uint(x))
}

func signPreHash(message, ctx, privateKey []byte, ps ParameterSet, ph slhdsa.PreHash, deterministic bool) ([]byte, error) {
	sk, err := decodeSecretKey(privateKey, ps)
	if err != nil {
		return nil, err
	}
	defer sk.Wipe()
	if deterministic {
		sig, err := sk.SignPreHashDeterministic(message, ctx, ph)
		return sig, translateError(err)
	}
	addrnd := make([]byte, sk.Params().N())
	if _, err := rand.Read(addrnd); err != nil {
		return nil, fmt.Errorf("slhdsa: reading randomness: %w", err)
	}
	sig, err := sk.SignPreHash(message, ctx, ph, addrnd)
	return sig, translateError(err)
}

func verifyPreHash(message, ctx, signature, publicKey []byte, ps ParameterSet, ph slhdsa.PreHash) (bool, error) {
	pk, err := decodePublicKey(publicKey, ps)
	if err != nil {
		return false, err
	}
	ok, err := pk.VerifyPreHash(message, signature, ctx, ph)
	return ok, translateError(err)
}

// SignPreHash returns a hedged HashSLH-DSA signature: message is hashed with
// h and the digest is signed together with the hash OID and ctx. Supported
// hashes are the SHA-2 and SHA-3 members of [crypto.Hash]; use
// [SignPreHashXOF] for SHAKE128 and SHAKE256.
func SignPreHash(message, ctx, privateKey []byte, ps ParameterSet, h crypto.Hash) ([]byte, error) {
	ph, err := preHashForHash(h)
	if err != nil {
		return nil, err
	}
	return signPreHash(message, ctx, privateKey, ps, ph, false)
}

// SignPreHashDeterministic is [SignPreHash] with PK.seed in place of fresh
// randomness.
func SignPreHashDeterministic(message, ctx, privateKey []byte, ps ParameterSet, h crypto.Hash) ([]byte, error) {
	ph, err := preHashForHash(h)
	if err != nil {
		return nil, err
	}
	return signPreHash(message, ctx, privateKey, ps, ph, true)
}

// VerifyPreHash verifies a HashSLH-DSA signature. As with [Verify], a
// signature that does not verify yields false and a nil error.
func VerifyPreHash(message, ctx, signature, publicKey []byte, ps ParameterSet, h crypto.Hash) (bool, error) {
	ph, err := preHashForHash(h)
	if err != nil {
		return false, err
	}
	return verifyPreHash(message, ctx, signature, publicKey, ps, ph)
}

// SignPreHashXOF is [SignPreHash] with a SHAKE pre-hash: [xof.SHAKE128]
// with a 256-bit digest or [xof.SHAKE256] with a 512-bit digest. Other XOFs
// report [ErrUnsupportedPreHash].
func SignPreHashXOF(message, ctx, privateKey []byte, ps ParameterSet, x xof.ID) ([]byte, error) {
	ph, err := preHashForXOF(x)
	if err != nil {
		return nil, err
	}
	return signPreHash(message, ctx, privateKey, ps, ph, false)
}

// SignPreHashXOFDeterministic is [SignPreHashXOF] with PK.seed in place of
// fresh randomness.
func SignPreHashXOFDeterministic(message, ctx, privateKey []byte, ps ParameterSet, x xof.ID) ([]byte, error) {
	ph, err := preHashForXOF(x)
	if err != nil {
		return nil, err
	}
	return signPreHash(message, ctx, privateKey, ps, ph, true)
}

// VerifyPreHashXOF verifies a HashSLH-DSA signature made with
// [SignPreHashXOF].
func VerifyPreHashXOF(message, ctx, signature, publicKey []byte, ps ParameterSet, x xof.ID) (bool, error) {
	ph, err := preHashForXOF(x)
	if err != nil {
		return false, err
	}
	return verifyPreHash(message, ctx, signature, publicKey, ps, ph)
}
