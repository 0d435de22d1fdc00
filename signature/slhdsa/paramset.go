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
	"fmt"

	"github.com/tink-crypto/slhdsa-go/internal/signature/slhdsa"
)

// ParameterSet is one of the twelve SLH-DSA parameter sets of FIPS 205.
type ParameterSet int

const (
	// UnknownParameterSet is the default value of ParameterSet.
	UnknownParameterSet ParameterSet = iota
	SHA2_128s
	SHAKE_128s
	SHA2_128f
	SHAKE_128f
	SHA2_192s
	SHAKE_192s
	SHA2_192f
	SHAKE_192f
	SHA2_256s
	SHAKE_256s
	SHA2_256f
	SHAKE_256f
)

// ParameterSets returns all supported parameter sets.
func ParameterSets() []ParameterSet {
	return []ParameterSet{
		SHA2_128s, SHAKE_128s, SHA2_128f, SHAKE_128f,
		SHA2_192s, SHAKE_192s, SHA2_192f, SHAKE_192f,
		SHA2_256s, SHAKE_256s, SHA2_256f, SHAKE_256f,
	}
}

// HashType is the hash family of a parameter set.
type HashType int

const (
	// UnknownHashType is the default value of HashType.
	UnknownHashType HashType = iota
	// SHA2 hashing.
	SHA2
	// SHAKE hashing.
	SHAKE
)

func (h HashType) String() string {
	switch h {
	case SHA2:
		return "SHA2"
	case SHAKE:
		return "SHAKE"
	default:
		return "UNKNOWN"
	}
}

// SignatureType selects between the "f" and "s" trade-offs.
type SignatureType int

const (
	// UnknownSignatureType is the default value of SignatureType.
	UnknownSignatureType SignatureType = iota
	// FastSigning selects fast signing.
	FastSigning
	// SmallSignature selects small signatures.
	SmallSignature
)

func (s SignatureType) String() string {
	switch s {
	case FastSigning:
		return "FAST_SIGNING"
	case SmallSignature:
		return "SMALL_SIGNATURE"
	default:
		return "UNKNOWN"
	}
}

// engineID maps ps to the engine identifier.
func (ps ParameterSet) engineID() (slhdsa.ID, bool) {
	switch ps {
	case SHA2_128s:
		return slhdsa.SHA2_128s, true
	case SHAKE_128s:
		return slhdsa.SHAKE_128s, true
	case SHA2_128f:
		return slhdsa.SHA2_128f, true
	case SHAKE_128f:
		return slhdsa.SHAKE_128f, true
	case SHA2_192s:
		return slhdsa.SHA2_192s, true
	case SHAKE_192s:
		return slhdsa.SHAKE_192s, true
	case SHA2_192f:
		return slhdsa.SHA2_192f, true
	case SHAKE_192f:
		return slhdsa.SHAKE_192f, true
	case SHA2_256s:
		return slhdsa.SHA2_256s, true
	case SHAKE_256s:
		return slhdsa.SHAKE_256s, true
	case SHA2_256f:
		return slhdsa.SHA2_256f, true
	case SHAKE_256f:
		return slhdsa.SHAKE_256f, true
	}
	return 0, false
}

// params returns the engine parameters for ps or ErrInvalidParameterSet.
func (ps ParameterSet) params() (*slhdsa.Params, error) {
	id, ok := ps.engineID()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidParameterSet, int(ps))
	}
	return slhdsa.Lookup(id)
}

// Valid reports whether ps is a supported parameter set.
func (ps ParameterSet) Valid() bool {
	_, ok := ps.engineID()
	return ok
}

// String returns the FIPS 205 name, for example "SLH-DSA-SHA2-128s".
func (ps ParameterSet) String() string {
	id, ok := ps.engineID()
	if !ok {
		return fmt.Sprintf("ParameterSet(%d)", int(ps))
	}
	return id.String()
}

// ParseParameterSet returns the parameter set with the given FIPS 205 name.
func ParseParameterSet(name string) (ParameterSet, error) {
	for _, ps := range ParameterSets() {
		if ps.String() == name {
			return ps, nil
		}
	}
	return UnknownParameterSet, fmt.Errorf("%w: %q", ErrInvalidParameterSet, name)
}

// ParameterSetFor returns the parameter set with the given hash type, private
// key size in bytes (4n) and signature type.
func ParameterSetFor(hashType HashType, keySize int, sigType SignatureType) (ParameterSet, error) {
	for _, ps := range ParameterSets() {
		if ps.HashType() == hashType && ps.KeySize() == keySize && ps.SignatureType() == sigType {
			return ps, nil
		}
	}
	return UnknownParameterSet, fmt.Errorf("%w: hashType=%v keySize=%d sigType=%v", ErrInvalidParameterSet, hashType, keySize, sigType)
}

// HashType returns the hash family of ps.
func (ps ParameterSet) HashType() HashType {
	switch ps {
	case SHA2_128s, SHA2_128f, SHA2_192s, SHA2_192f, SHA2_256s, SHA2_256f:
		return SHA2
	case SHAKE_128s, SHAKE_128f, SHAKE_192s, SHAKE_192f, SHAKE_256s, SHAKE_256f:
		return SHAKE
	}
	return UnknownHashType
}

// SignatureType returns whether ps is a fast-signing or small-signature set.
func (ps ParameterSet) SignatureType() SignatureType {
	switch ps {
	case SHA2_128f, SHAKE_128f, SHA2_192f, SHAKE_192f, SHA2_256f, SHAKE_256f:
		return FastSigning
	case SHA2_128s, SHAKE_128s, SHA2_192s, SHAKE_192s, SHA2_256s, SHAKE_256s:
		return SmallSignature
	}
	return UnknownSignatureType
}

func (ps ParameterSet) size(f func(*slhdsa.Params) int) int {
	p, err := ps.params()
	if err != nil {
		return 0
	}
	return f(p)
}

// KeySize returns the private key size in bytes, which identifies the
// security category. It is zero for invalid parameter sets.
func (ps ParameterSet) KeySize() int { return ps.PrivateKeySize() }

// PublicKeySize returns the length of PK.seed || PK.root.
func (ps ParameterSet) PublicKeySize() int {
	return ps.size((*slhdsa.Params).PublicKeyLength)
}

// PrivateKeySize returns the length of SK.seed || SK.prf || PK.seed || PK.root.
func (ps ParameterSet) PrivateKeySize() int {
	return ps.size((*slhdsa.Params).SecretKeyLength)
}

// SignatureSize returns the length of a signature without output prefix.
func (ps ParameterSet) SignatureSize() int {
	return ps.size((*slhdsa.Params).SignatureLength)
}

// SeedSize returns the length of the seed accepted by [KeyFromSeed].
func (ps ParameterSet) SeedSize() int {
	return ps.size((*slhdsa.Params).SeedLength)
}
