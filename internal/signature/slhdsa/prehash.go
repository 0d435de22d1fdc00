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
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedPreHash is returned for pre-hash functions without a
// registered object identifier.
var ErrUnsupportedPreHash = errors.New("slhdsa: unsupported pre-hash function")

// oidPrefix is the DER encoding of the arc 2.16.840.1.101.3.4.2 up to, but
// not including, the final component.
var oidPrefix = []byte{0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02}

// PreHash identifies a HashSLH-DSA pre-hash function by the last component
// of its NIST hash algorithm OID.
type PreHash uint8

// Pre-hash functions approved for HashSLH-DSA.
const (
	PreHashSHA256     PreHash = 0x01
	PreHashSHA384     PreHash = 0x02
	PreHashSHA512     PreHash = 0x03
	PreHashSHA224     PreHash = 0x04
	PreHashSHA512_224 PreHash = 0x05
	PreHashSHA512_256 PreHash = 0x06
	PreHashSHA3_224   PreHash = 0x07
	PreHashSHA3_256   PreHash = 0x08
	PreHashSHA3_384   PreHash = 0x09
	PreHashSHA3_512   PreHash = 0x0a
	// PreHashSHAKE128 outputs 256 bits.
	PreHashSHAKE128 PreHash = 0x0b
	// PreHashSHAKE256 outputs 512 bits.
	PreHashSHAKE256 PreHash = 0x0c
)

// PreHashFor returns the pre-hash function for h. SHAKE has no crypto.Hash
// value and is selected with [PreHashSHAKE128] or [PreHashSHAKE256].
func PreHashFor(h crypto.Hash) (PreHash, bool) {
	switch h {
	case crypto.SHA256:
		return PreHashSHA256, true
	case crypto.SHA384:
		return PreHashSHA384, true
	case crypto.SHA512:
		return PreHashSHA512, true
	case crypto.SHA224:
		return PreHashSHA224, true
	case crypto.SHA512_224:
		return PreHashSHA512_224, true
	case crypto.SHA512_256:
		return PreHashSHA512_256, true
	case crypto.SHA3_224:
		return PreHashSHA3_224, true
	case crypto.SHA3_256:
		return PreHashSHA3_256, true
	case crypto.SHA3_384:
		return PreHashSHA3_384, true
	case crypto.SHA3_512:
		return PreHashSHA3_512, true
	}
	return 0, false
}

// Valid reports whether ph is an approved pre-hash function.
func (ph PreHash) Valid() bool { return ph >= PreHashSHA256 && ph <= PreHashSHAKE256 }

func (ph PreHash) String() string {
	switch ph {
	case PreHashSHAKE128:
		return "SHAKE-128"
	case PreHashSHAKE256:
		return "SHAKE-256"
	}
	for h := crypto.SHA224; h <= crypto.SHA512_256; h++ {
		if got, ok := PreHashFor(h); ok && got == ph {
			return h.String()
		}
	}
	return fmt.Sprintf("PreHash(%d)", uint8(ph))
}

// Size returns the digest length in bytes.
func (ph PreHash) Size() int {
	switch ph {
	case PreHashSHA224, PreHashSHA512_224, PreHashSHA3_224:
		return 28
	case PreHashSHA256, PreHashSHA512_256, PreHashSHA3_256, PreHashSHAKE128:
		return 32
	case PreHashSHA384, PreHashSHA3_384:
		return 48
	case PreHashSHA512, PreHashSHA3_512, PreHashSHAKE256:
		return 64
	}
	return 0
}

func (ph PreHash) sum(msg []byte) []byte {
	switch ph {
	case PreHashSHA224:
		d := sha256.Sum224(msg)
		return d[:]
	case PreHashSHA256:
		d := sha256.Sum256(msg)
		return d[:]
	case PreHashSHA384:
		d := sha512.Sum384(msg)
		return d[:]
	case PreHashSHA512:
		d := sha512.Sum512(msg)
		return d[:]
	case PreHashSHA512_224:
		d := sha512.Sum512_224(msg)
		return d[:]
	case PreHashSHA512_256:
		d := sha512.Sum512_256(msg)
		return d[:]
	case PreHashSHA3_224:
		d := sha3.Sum224(msg)
		return d[:]
	case PreHashSHA3_256:
		d := sha3.Sum256(msg)
		return d[:]
	case PreHashSHA3_384:
		d := sha3.Sum384(msg)
		return d[:]
	case PreHashSHA3_512:
		d := sha3.Sum512(msg)
		return d[:]
	case PreHashSHAKE128:
		d := make([]byte, 32)
		sha3.ShakeSum128(d, msg)
		return d
	case PreHashSHAKE256:
		d := make([]byte, 64)
		sha3.ShakeSum256(d, msg)
		return d
	}
	return nil
}

// EncodePreHashMessage returns
// M' = 0x01 || len(ctx) || ctx || OID(ph) || ph(msg), the HashSLH-DSA message
// encoding of Algorithms 23 and 25.
func EncodePreHashMessage(msg, ctx []byte, ph PreHash) ([]byte, error) {
	if len(ctx) > MaxContextLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrContextTooLong, len(ctx))
	}
	if !ph.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPreHash, ph)
	}
	return slices.Concat([]byte{1, byte(len(ctx))}, ctx, oidPrefix, []byte{byte(ph)}, ph.sum(msg)), nil
}

// SignPreHash is Algorithm 23 (hash_slh_sign) with the given randomizer.
// Pass PK.seed (see [SecretKey.SignPreHashDeterministic]) for deterministic
// signatures.
func (sk *SecretKey) SignPreHash(msg, ctx []byte, ph PreHash, addrnd []byte) ([]byte, error) {
	mPrime, err := EncodePreHashMessage(msg, ctx, ph)
	if err != nil {
		return nil, err
	}
	return sk.SignInternal(mPrime, addrnd)
}

// SignPreHashDeterministic is Algorithm 23 (hash_slh_sign) with PK.seed as
// randomness.
func (sk *SecretKey) SignPreHashDeterministic(msg, ctx []byte, ph PreHash) ([]byte, error) {
	return sk.SignPreHash(msg, ctx, ph, sk.pkSeed)
}

// VerifyPreHash is Algorithm 25 (hash_slh_verify).
func (pk *PublicKey) VerifyPreHash(msg, sig, ctx []byte, ph PreHash) (bool, error) {
	mPrime, err := EncodePreHashMessage(msg, ctx, ph)
	if err != nil {
		return false, err
	}
	return pk.VerifyInternal(mPrime, sig)
}
