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
	"crypto/subtle"
	"encoding/asn1"
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign"
	"github.com/tink-crypto/slhdsa-go/internal/signature/slhdsa"
)

// Generic signatures API.

type scheme struct {
	ps ParameterSet
	p  *slhdsa.Params
}

var _ sign.Scheme = (*scheme)(nil)

// Scheme returns a generic signature interface for ps. Signatures are hedged.
func Scheme(ps ParameterSet) (sign.Scheme, error) {
	p, err := ps.params()
	if err != nil {
		return nil, err
	}
	return &scheme{ps: ps, p: p}, nil
}

func (s *scheme) Name() string        { return s.ps.String() }
func (s *scheme) PublicKeySize() int  { return s.p.PublicKeyLength() }
func (s *scheme) PrivateKeySize() int { return s.p.SecretKeyLength() }
func (s *scheme) SignatureSize() int  { return s.p.SignatureLength() }
func (s *scheme) SeedSize() int       { return s.p.SeedLength() }

func (*scheme) SupportsContext() bool { return true }

// Oid returns the id-slh-dsa-* object identifier of the parameter set.
func (s *scheme) Oid() asn1.ObjectIdentifier {
	var arc int
	switch s.ps {
	case SHA2_128s:
		arc = 20
	case SHA2_128f:
		arc = 21
	case SHA2_192s:
		arc = 22
	case SHA2_192f:
		arc = 23
	case SHA2_256s:
		arc = 24
	case SHA2_256f:
		arc = 25
	case SHAKE_128s:
		arc = 26
	case SHAKE_128f:
		arc = 27
	case SHAKE_192s:
		arc = 28
	case SHAKE_192f:
		arc = 29
	case SHAKE_256s:
		arc = 30
	case SHAKE_256f:
		arc = 31
	}
	return asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, arc}
}

func (s *scheme) GenerateKey() (sign.PublicKey, sign.PrivateKey, error) {
	sk, pk, err := s.p.KeyGen()
	if err != nil {
		return nil, nil, err
	}
	return &schemePublicKey{s: s, pk: pk}, &schemePrivateKey{s: s, sk: sk}, nil
}

func contextOf(opts *sign.SignatureOpts) []byte {
	if opts == nil || opts.Context == "" {
		return nil
	}
	return []byte(opts.Context)
}

func (s *scheme) Sign(sk sign.PrivateKey, msg []byte, opts *sign.SignatureOpts) []byte {
	priv, ok := sk.(*schemePrivateKey)
	if !ok || priv.s.ps != s.ps {
		panic(sign.ErrTypeMismatch)
	}
	sig, err := priv.sk.Sign(msg, contextOf(opts))
	if errors.Is(err, ErrContextTooLong) {
		panic(sign.ErrContextTooLong)
	}
	if err != nil {
		panic(err)
	}
	return sig
}

func (s *scheme) Verify(pk sign.PublicKey, msg, sig []byte, opts *sign.SignatureOpts) bool {
	pub, ok := pk.(*schemePublicKey)
	if !ok || pub.s.ps != s.ps {
		panic(sign.ErrTypeMismatch)
	}
	ok, err := pub.pk.Verify(msg, sig, contextOf(opts))
	return err == nil && ok
}

func (s *scheme) DeriveKey(seed []byte) (sign.PublicKey, sign.PrivateKey) {
	if len(seed) != s.SeedSize() {
		panic(sign.ErrSeedSize)
	}
	sk, pk, err := s.p.KeyFromSeed(seed)
	if err != nil {
		panic(err)
	}
	return &schemePublicKey{s: s, pk: pk}, &schemePrivateKey{s: s, sk: sk}
}

func (s *scheme) UnmarshalBinaryPublicKey(buf []byte) (sign.PublicKey, error) {
	if len(buf) != s.PublicKeySize() {
		return nil, sign.ErrPubKeySize
	}
	pk, err := s.p.DecodePublicKey(buf)
	if err != nil {
		return nil, err
	}
	return &schemePublicKey{s: s, pk: pk}, nil
}

func (s *scheme) UnmarshalBinaryPrivateKey(buf []byte) (sign.PrivateKey, error) {
	if len(buf) != s.PrivateKeySize() {
		return nil, sign.ErrPrivKeySize
	}
	sk, err := s.p.DecodeSecretKey(buf)
	if err != nil {
		return nil, err
	}
	return &schemePrivateKey{s: s, sk: sk}, nil
}

type schemePublicKey struct {
	s  *scheme
	pk *slhdsa.PublicKey
}

var _ sign.PublicKey = (*schemePublicKey)(nil)

func (k *schemePublicKey) Scheme() sign.Scheme { return k.s }

func (k *schemePublicKey) MarshalBinary() ([]byte, error) { return k.pk.Encode(), nil }

func (k *schemePublicKey) Equal(other crypto.PublicKey) bool {
	that, ok := other.(*schemePublicKey)
	return ok && k.s.ps == that.s.ps && k.pk.Equal(that.pk)
}

type schemePrivateKey struct {
	s  *scheme
	sk *slhdsa.SecretKey
}

var _ sign.PrivateKey = (*schemePrivateKey)(nil)

func (k *schemePrivateKey) Scheme() sign.Scheme { return k.s }

func (k *schemePrivateKey) MarshalBinary() ([]byte, error) { return k.sk.Encode(), nil }

func (k *schemePrivateKey) Public() crypto.PublicKey {
	return &schemePublicKey{s: k.s, pk: k.sk.PublicKey()}
}

func (k *schemePrivateKey) Equal(other crypto.PrivateKey) bool {
	that, ok := other.(*schemePrivateKey)
	if !ok || k.s.ps != that.s.ps {
		return false
	}
	a, b := k.sk.Encode(), that.sk.Encode()
	defer clear(a)
	defer clear(b)
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Sign implements [crypto.Signer]. SLH-DSA signs the message itself, so
// opts.HashFunc() must be zero. The randomizer is read from random, or
// from crypto/rand if random is nil.
func (k *schemePrivateKey) Sign(random io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != 0 {
		return nil, fmt.Errorf("slhdsa: cannot sign a pre-hashed digest with %v", opts.HashFunc())
	}
	if random == nil {
		random = rand.Reader
	}
	addrnd := make([]byte, k.s.p.N())
	if _, err := io.ReadFull(random, addrnd); err != nil {
		return nil, fmt.Errorf("slhdsa: reading randomness: %w", err)
	}
	sig, err := k.sk.SignWithRandomness(message, nil, addrnd)
	return sig, translateError(err)
}
