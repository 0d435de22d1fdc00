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

// Package slhdsa implements SLH-DSA as specified in NIST FIPS 205 (https://doi.org/10.6028/NIST.FIPS.205).
// The implementation is constant time assuming that the underlying hashing primitives are constant time.
package slhdsa

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"slices"
)

// MaxContextLength is the maximum length of a signing context string.
const MaxContextLength = 255

var (
	// ErrContextTooLong is returned when a context string exceeds
	// MaxContextLength bytes.
	ErrContextTooLong = errors.New("slhdsa: context too long")
	// ErrInvalidKeyLength is returned when decoding a key or seed of the wrong
	// length.
	ErrInvalidKeyLength = errors.New("slhdsa: invalid key length")
	// ErrInvalidSignatureLength is returned when a signature does not have the
	// exact length of the parameter set.
	ErrInvalidSignatureLength = errors.New("slhdsa: invalid signature length")
	// ErrInvalidRandomnessLength is returned when the explicit randomizer
	// passed to signing is not n bytes long.
	ErrInvalidRandomnessLength = errors.New("slhdsa: invalid randomness length")
	// ErrInconsistentKey is returned when PK.root of a secret key does not
	// match the root derived from its seeds.
	ErrInconsistentKey = errors.New("slhdsa: PK.root does not match secret seeds")
)

// PublicKey represents an SLH-DSA public key.
type PublicKey struct {
	pkSeed []byte
	pkRoot []byte
	p      *Params
}

// SecretKey represents an SLH-DSA secret key. All four components share one
// backing buffer, released by [SecretKey.Wipe].
type SecretKey struct {
	buf    []byte
	skSeed []byte
	skPrf  []byte
	pkSeed []byte
	pkRoot []byte
	p      *Params
}

func (p *Params) newSecretKey(buf []byte) *SecretKey {
	n := p.n
	return &SecretKey{
		buf:    buf,
		skSeed: buf[0:n:n],
		skPrf:  buf[n : 2*n : 2*n],
		pkSeed: buf[2*n : 3*n : 3*n],
		pkRoot: buf[3*n : 4*n : 4*n],
		p:      p,
	}
}

// Algorithm 18 (slh_keygen_internal). seed is SK.seed || SK.prf || PK.seed;
// PK.root is computed from the top-level XMSS tree.
func (p *Params) keygenInternal(seed []byte) (*SecretKey, *PublicKey) {
	buf := make([]byte, 4*p.n)
	copy(buf, seed)
	sk := p.newSecretKey(buf)
	p.root(sk.pkRoot, sk.skSeed, sk.pkSeed)
	return sk, sk.PublicKey()
}

func (p *Params) root(dst, skSeed, pkSeed []byte) {
	adrs := newAddress()
	adrs.setLayerAddress(p.d - 1)
	p.xmssNode(dst, skSeed, 0, p.hp, pkSeed, adrs)
}

// Algorithm 21 (slh_keygen).
func (p *Params) KeyGen() (*SecretKey, *PublicKey, error) {
	seed := make([]byte, p.SeedLength())
	defer clear(seed)
	if _, err := rand.Read(seed); err != nil {
		return nil, nil, fmt.Errorf("slhdsa: reading randomness: %w", err)
	}
	sk, pk := p.keygenInternal(seed)
	return sk, pk, nil
}

// KeyFromSeed deterministically derives a key pair from a 3n-byte seed laid
// out as SK.seed || SK.prf || PK.seed.
func (p *Params) KeyFromSeed(seed []byte) (*SecretKey, *PublicKey, error) {
	if len(seed) != p.SeedLength() {
		return nil, nil, fmt.Errorf("%w: seed has %d bytes, want %d", ErrInvalidKeyLength, len(seed), p.SeedLength())
	}
	sk, pk := p.keygenInternal(seed)
	return sk, pk, nil
}

// digestIndices splits an H_msg digest into the FORS message and the
// hypertree coordinates. Only the low h - hp bits of the tree index and the
// low hp bits of the leaf index are kept.
func (p *Params) digestIndices(digest []byte) (md []byte, idxTree uint64, idxLeaf uint32) {
	r := (p.k*p.a + 7) / 8
	s := (p.h - p.hp + 7) / 8
	t := (p.hp + 7) / 8
	md = digest[:r]
	idxTree = toInt(digest[r : r+s])
	// For the 256f parameter sets h - hp = 64 and the mask is a no-op.
	if p.h-p.hp < 64 {
		idxTree &= uint64(1)<<(p.h-p.hp) - 1
	}
	idxLeaf = uint32(toInt(digest[r+s:r+s+t])) & (1<<p.hp - 1)
	return md, idxTree, idxLeaf
}

// SignInternal is Algorithm 19 (slh_sign_internal). It returns
// R || SIG_FORS || SIG_HT for the already encoded message mPrime. addrnd is
// fresh randomness for hedged signing or PK.seed for deterministic signing.
//
// The hypertree root reached while signing is compared with PK.root, so a
// key that does not belong to the parameter set, or whose PK.root does not
// match its seeds, reports ErrInconsistentKey instead of a signature that
// can never verify.
func (sk *SecretKey) SignInternal(mPrime, addrnd []byte) ([]byte, error) {
	p := sk.p
	if len(addrnd) != int(p.n) {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidRandomnessLength, len(addrnd), p.n)
	}
	sig := make([]byte, p.SignatureLength())
	r := sig[:p.n]
	sigFORS := sig[p.n : int(p.n)+p.forsSigLength()]
	sigHT := sig[int(p.n)+p.forsSigLength():]

	p.hash.prfMsg(r, sk.skPrf, addrnd, mPrime)
	digest := make([]byte, p.m)
	p.hash.hMsg(digest, r, sk.pkSeed, sk.pkRoot, mPrime)
	md, idxTree, idxLeaf := p.digestIndices(digest)

	adrs := newAddress()
	adrs.setTreeAddress(idxTree)
	adrs.setTypeAndClear(addressFORSTree)
	adrs.setKeyPairAddress(idxLeaf)
	p.forsSign(sigFORS, md, sk.skSeed, sk.pkSeed, adrs)
	pkFORS := make([]byte, p.n)
	p.forsPkFromSig(pkFORS, sigFORS, md, sk.pkSeed, adrs)
	if !p.htSign(sigHT, pkFORS, sk.skSeed, sk.pkSeed, sk.pkRoot, idxTree, idxLeaf) {
		clear(sig)
		return nil, ErrInconsistentKey
	}
	return sig, nil
}

// VerifyInternal is Algorithm 20 (slh_verify_internal). A signature of the
// wrong length is an encoding error; any other mismatch reports false.
func (pk *PublicKey) VerifyInternal(mPrime, sig []byte) (bool, error) {
	p := pk.p
	if len(sig) != p.SignatureLength() {
		return false, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignatureLength, len(sig), p.SignatureLength())
	}
	r := sig[:p.n]
	sigFORS := sig[p.n : int(p.n)+p.forsSigLength()]
	sigHT := sig[int(p.n)+p.forsSigLength():]

	digest := make([]byte, p.m)
	p.hash.hMsg(digest, r, pk.pkSeed, pk.pkRoot, mPrime)
	md, idxTree, idxLeaf := p.digestIndices(digest)

	adrs := newAddress()
	adrs.setTreeAddress(idxTree)
	adrs.setTypeAndClear(addressFORSTree)
	adrs.setKeyPairAddress(idxLeaf)
	pkFORS := make([]byte, p.n)
	p.forsPkFromSig(pkFORS, sigFORS, md, pk.pkSeed, adrs)
	return p.htVerify(pkFORS, sigHT, pk.pkSeed, idxTree, idxLeaf, pk.pkRoot), nil
}

// EncodeMessage returns M' = 0x00 || len(ctx) || ctx || msg, the pure
// message encoding of Algorithms 22 and 24.
func EncodeMessage(msg, ctx []byte) ([]byte, error) {
	if len(ctx) > MaxContextLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrContextTooLong, len(ctx))
	}
	return slices.Concat([]byte{0, byte(len(ctx))}, ctx, msg), nil
}

// Sign is Algorithm 22 (slh_sign) with fresh randomness.
func (sk *SecretKey) Sign(msg, ctx []byte) ([]byte, error) {
	addrnd := make([]byte, sk.p.n)
	if _, err := rand.Read(addrnd); err != nil {
		return nil, fmt.Errorf("slhdsa: reading randomness: %w", err)
	}
	return sk.SignWithRandomness(msg, ctx, addrnd)
}

// SignDeterministic is Algorithm 22 (slh_sign) with PK.seed as randomness.
func (sk *SecretKey) SignDeterministic(msg, ctx []byte) ([]byte, error) {
	return sk.SignWithRandomness(msg, ctx, sk.pkSeed)
}

// SignWithRandomness is Algorithm 22 (slh_sign) with a caller-supplied
// n-byte randomizer.
func (sk *SecretKey) SignWithRandomness(msg, ctx, addrnd []byte) ([]byte, error) {
	mPrime, err := EncodeMessage(msg, ctx)
	if err != nil {
		return nil, err
	}
	return sk.SignInternal(mPrime, addrnd)
}

// Verify is Algorithm 24 (slh_verify).
func (pk *PublicKey) Verify(msg, sig, ctx []byte) (bool, error) {
	mPrime, err := EncodeMessage(msg, ctx)
	if err != nil {
		return false, err
	}
	return pk.VerifyInternal(mPrime, sig)
}

// Params returns the parameter set of the key.
func (pk *PublicKey) Params() *Params { return pk.p }

// Encode encodes a public key as PK.seed || PK.root.
func (pk *PublicKey) Encode() []byte {
	return slices.Concat(pk.pkSeed, pk.pkRoot)
}

// Equal reports whether pk and other hold the same key material and
// parameter set.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.p == other.p &&
		subtle.ConstantTimeCompare(pk.pkSeed, other.pkSeed) == 1 &&
		subtle.ConstantTimeCompare(pk.pkRoot, other.pkRoot) == 1
}

// DecodePublicKey decodes PK.seed || PK.root. The input is copied.
func (p *Params) DecodePublicKey(pkEnc []byte) (*PublicKey, error) {
	if len(pkEnc) != p.PublicKeyLength() {
		return nil, fmt.Errorf("%w: public key has %d bytes, want %d", ErrInvalidKeyLength, len(pkEnc), p.PublicKeyLength())
	}
	buf := slices.Clone(pkEnc)
	return &PublicKey{pkSeed: buf[:p.n:p.n], pkRoot: buf[p.n:], p: p}, nil
}

// Params returns the parameter set of the key.
func (sk *SecretKey) Params() *Params { return sk.p }

// Encode encodes a secret key as SK.seed || SK.prf || PK.seed || PK.root.
func (sk *SecretKey) Encode() []byte {
	return slices.Clone(sk.buf)
}

// PublicKey returns the public key corresponding to a secret key.
func (sk *SecretKey) PublicKey() *PublicKey {
	buf := slices.Concat(sk.pkSeed, sk.pkRoot)
	return &PublicKey{pkSeed: buf[:sk.p.n:sk.p.n], pkRoot: buf[sk.p.n:], p: sk.p}
}

// Validate recomputes PK.root from SK.seed and PK.seed and compares it with
// the stored root.
func (sk *SecretKey) Validate() error {
	root := make([]byte, sk.p.n)
	sk.p.root(root, sk.skSeed, sk.pkSeed)
	if subtle.ConstantTimeCompare(root, sk.pkRoot) != 1 {
		return ErrInconsistentKey
	}
	return nil
}

// Wipe zeroes the secret key material. The key must not be used afterwards.
func (sk *SecretKey) Wipe() {
	clear(sk.buf)
}

// DecodeSecretKey decodes SK.seed || SK.prf || PK.seed || PK.root. The input
// is copied.
func (p *Params) DecodeSecretKey(skEnc []byte) (*SecretKey, error) {
	if len(skEnc) != p.SecretKeyLength() {
		return nil, fmt.Errorf("%w: secret key has %d bytes, want %d", ErrInvalidKeyLength, len(skEnc), p.SecretKeyLength())
	}
	return p.newSecretKey(slices.Clone(skEnc)), nil
}
