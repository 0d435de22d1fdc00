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

// Package slhdsa provides SLH-DSA (FIPS 205) signatures.
//
// The byte-level functions [GenerateKeyPair], [Sign], [SignDeterministic] and
// [Verify] work on raw key and signature encodings. [Parameters],
// [PublicKey] and [PrivateKey] add typed keys with optional key ID prefixes,
// consumed by [NewSigner] and [NewVerifier].
package slhdsa

import (
	"errors"
	"fmt"

	"github.com/tink-crypto/slhdsa-go/internal/signature/slhdsa"
)

// translateError maps engine errors onto the exported sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, slhdsa.ErrInvalidSignatureLength):
		return fmt.Errorf("%w: %v", ErrInvalidSignatureEncoding, err)
	case errors.Is(err, slhdsa.ErrInvalidKeyLength), errors.Is(err, slhdsa.ErrInconsistentKey):
		return fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	return err
}

func decodeSecretKey(privateKey []byte, ps ParameterSet) (*slhdsa.SecretKey, error) {
	p, err := ps.params()
	if err != nil {
		return nil, err
	}
	sk, err := p.DecodeSecretKey(privateKey)
	return sk, translateError(err)
}

func decodePublicKey(publicKey []byte, ps ParameterSet) (*slhdsa.PublicKey, error) {
	p, err := ps.params()
	if err != nil {
		return nil, err
	}
	pk, err := p.DecodePublicKey(publicKey)
	return pk, translateError(err)
}

// GenerateKeyPair returns a fresh private key (SK.seed || SK.prf || PK.seed
// || PK.root) and public key (PK.seed || PK.root) for ps.
func GenerateKeyPair(ps ParameterSet) (privateKey, publicKey []byte, err error) {
	p, err := ps.params()
	if err != nil {
		return nil, nil, err
	}
	sk, pk, err := p.KeyGen()
	if err != nil {
		return nil, nil, err
	}
	defer sk.Wipe()
	return sk.Encode(), pk.Encode(), nil
}

// KeyFromSeed deterministically derives a key pair from a seed of
// ps.SeedSize() bytes laid out as SK.seed || SK.prf || PK.seed.
func KeyFromSeed(seed []byte, ps ParameterSet) (privateKey, publicKey []byte, err error) {
	p, err := ps.params()
	if err != nil {
		return nil, nil, err
	}
	sk, pk, err := p.KeyFromSeed(seed)
	if err != nil {
		return nil, nil, translateError(err)
	}
	defer sk.Wipe()
	return sk.Encode(), pk.Encode(), nil
}

// Sign returns a hedged signature of message with an empty context.
//
// A private key whose length does not match ps, or whose PK.root does not
// match the tree its seeds generate under ps, reports
// [ErrInvalidKeyEncoding]. The second check happens while signing, so a key
// of another parameter set with the same length never yields a signature.
func Sign(message, privateKey []byte, ps ParameterSet) ([]byte, error) {
	return SignWithContext(message, nil, privateKey, ps)
}

// SignWithContext returns a hedged signature of message bound to ctx.
func SignWithContext(message, ctx, privateKey []byte, ps ParameterSet) ([]byte, error) {
	sk, err := decodeSecretKey(privateKey, ps)
	if err != nil {
		return nil, err
	}
	defer sk.Wipe()
	sig, err := sk.Sign(message, ctx)
	return sig, translateError(err)
}

// SignDeterministic returns the deterministic signature of message with an
// empty context. PK.seed takes the place of fresh randomness.
func SignDeterministic(message, privateKey []byte, ps ParameterSet) ([]byte, error) {
	sk, err := decodeSecretKey(privateKey, ps)
	if err != nil {
		return nil, err
	}
	defer sk.Wipe()
	sig, err := sk.SignDeterministic(message, nil)
	return sig, translateError(err)
}

// Verify reports whether signature is a valid signature of message with an
// empty context. It returns an error only for malformed inputs: a public key
// or signature whose length differs from the one ps requires, whether
// shorter or longer, reports [ErrInvalidKeyEncoding] or
// [ErrInvalidSignatureEncoding]. A well-formed signature that does not
// verify yields false and a nil error.
func Verify(message, signature, publicKey []byte, ps ParameterSet) (bool, error) {
	return VerifyWithContext(message, nil, signature, publicKey, ps)
}

// VerifyWithContext is [Verify] for signatures bound to ctx. It reports the
// same encoding errors as [Verify] for length mismatches in either
// direction, and [ErrContextTooLong] for contexts over [MaxContextLength]
// bytes.
func VerifyWithContext(message, ctx, signature, publicKey []byte, ps ParameterSet) (bool, error) {
	pk, err := decodePublicKey(publicKey, ps)
	if err != nil {
		return false, err
	}
	ok, err := pk.Verify(message, signature, ctx)
	return ok, translateError(err)
}
