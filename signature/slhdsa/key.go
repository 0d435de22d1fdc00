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
	"bytes"
	"fmt"
	"slices"

	"github.com/tink-crypto/slhdsa-go/insecuresecretdataaccess"
	"github.com/tink-crypto/slhdsa-go/internal/outputprefix"
	"github.com/tink-crypto/slhdsa-go/key"
	"github.com/tink-crypto/slhdsa-go/secretdata"
	"github.com/zeebo/blake3"
)

// Variant is the prefix variant of a SLH-DSA key.
//
// It describes the format of the signature. For SLH-DSA, there are two options:
//
//   - TINK: prepends '0x01<big endian key id>' to the signature.
//   - NO_PREFIX: adds no prefix to the signature.
type Variant int

const (
	// VariantUnknown is the default value of Variant.
	VariantUnknown Variant = iota
	// VariantTink prefixes '0x01<big endian key id>' to the signature.
	VariantTink
	// VariantNoPrefix does not prefix the signature with the key id.
	VariantNoPrefix
)

func (variant Variant) String() string {
	switch variant {
	case VariantTink:
		return "TINK"
	case VariantNoPrefix:
		return "NO_PREFIX"
	default:
		return "UNKNOWN"
	}
}

// Parameters represents the parameters of a SLH-DSA key.
type Parameters struct {
	paramSet ParameterSet
	variant  Variant
}

var _ key.Parameters = (*Parameters)(nil)

// NewParameters creates a new Parameters.
func NewParameters(ps ParameterSet, variant Variant) (*Parameters, error) {
	if !ps.Valid() {
		return nil, fmt.Errorf("slhdsa.NewParameters: %w: %v", ErrInvalidParameterSet, ps)
	}
	if variant != VariantTink && variant != VariantNoPrefix {
		return nil, fmt.Errorf("slhdsa.NewParameters: unsupported variant: %v", variant)
	}
	return &Parameters{paramSet: ps, variant: variant}, nil
}

// ParameterSet returns the parameter set.
func (p *Parameters) ParameterSet() ParameterSet { return p.paramSet }

// HashType returns the hash type.
func (p *Parameters) HashType() HashType { return p.paramSet.HashType() }

// KeySize returns the private key size in bytes.
func (p *Parameters) KeySize() int { return p.paramSet.KeySize() }

// SignatureType returns the signature type.
func (p *Parameters) SignatureType() SignatureType { return p.paramSet.SignatureType() }

// Variant returns the prefix variant of the parameters.
func (p *Parameters) Variant() Variant { return p.variant }

// HasIDRequirement returns true if the key has an ID requirement.
func (p *Parameters) HasIDRequirement() bool { return p.variant != VariantNoPrefix }

// Equal returns true if this parameters object is equal to other.
func (p *Parameters) Equal(other key.Parameters) bool {
	that, ok := other.(*Parameters)
	return ok && p.paramSet == that.paramSet && p.variant == that.variant
}

func (p *Parameters) String() string {
	return fmt.Sprintf("%v/%v", p.paramSet, p.variant)
}

// PublicKey represents a SLH-DSA public key.
type PublicKey struct {
	keyBytes      []byte
	idRequirement uint32
	params        *Parameters
	outputPrefix  []byte
}

var _ key.Key = (*PublicKey)(nil)

func calculateOutputPrefix(variant Variant, keyID uint32) ([]byte, error) {
	switch variant {
	case VariantTink:
		return outputprefix.Tink(keyID), nil
	case VariantNoPrefix:
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid output prefix variant: %v", variant)
	}
}

// NewPublicKey creates a new SLH-DSA public key.
//
// idRequirement is the ID of the key. It must be zero if params doesn't have
// an ID requirement.
func NewPublicKey(keyBytes []byte, idRequirement uint32, params *Parameters) (*PublicKey, error) {
	if params == nil {
		return nil, fmt.Errorf("slhdsa.NewPublicKey: params must not be nil")
	}
	if !params.HasIDRequirement() && idRequirement != 0 {
		return nil, fmt.Errorf("slhdsa.NewPublicKey: idRequirement must be zero if params doesn't have an ID requirement")
	}
	if len(keyBytes) != params.paramSet.PublicKeySize() {
		return nil, fmt.Errorf("slhdsa.NewPublicKey: %w: public key has %d bytes, want %d", ErrInvalidKeyEncoding, len(keyBytes), params.paramSet.PublicKeySize())
	}
	outputPrefix, err := calculateOutputPrefix(params.variant, idRequirement)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.NewPublicKey: %w", err)
	}
	return &PublicKey{
		keyBytes:      bytes.Clone(keyBytes),
		idRequirement: idRequirement,
		params:        params,
		outputPrefix:  outputPrefix,
	}, nil
}

// KeyBytes returns the public key bytes.
func (k *PublicKey) KeyBytes() []byte { return bytes.Clone(k.keyBytes) }

// OutputPrefix returns the output prefix of this key.
func (k *PublicKey) OutputPrefix() []byte { return bytes.Clone(k.outputPrefix) }

// Parameters returns the parameters of the key.
func (k *PublicKey) Parameters() key.Parameters { return k.params }

// IDRequirement returns the ID requirement of the key, and whether it is
// required.
func (k *PublicKey) IDRequirement() (uint32, bool) {
	return k.idRequirement, k.params.HasIDRequirement()
}

// Fingerprint returns a 32-byte BLAKE3 digest identifying the key material
// and its parameter set.
func (k *PublicKey) Fingerprint() []byte {
	sum := blake3.Sum256(slices.Concat([]byte(k.params.paramSet.String()), []byte{0}, k.keyBytes))
	return sum[:]
}

// Equal returns true if this key is equal to other.
func (k *PublicKey) Equal(other key.Key) bool {
	if k == other {
		return true
	}
	that, ok := other.(*PublicKey)
	return ok && k.params.Equal(that.Parameters()) &&
		bytes.Equal(k.keyBytes, that.keyBytes) &&
		k.idRequirement == that.idRequirement
}

// PrivateKey represents a SLH-DSA private key.
type PrivateKey struct {
	publicKey *PublicKey
	// keyBytes is SK.seed || SK.prf || PK.seed || PK.root.
	keyBytes secretdata.Bytes
}

var _ key.Key = (*PrivateKey)(nil)

// publicKeyBytes returns the PK.seed || PK.root tail of a private key whose
// length has been checked.
func publicKeyBytes(privateKeyBytes secretdata.Bytes, ps ParameterSet) []byte {
	raw := privateKeyBytes.Data(insecuresecretdataaccess.Token{})
	defer clear(raw)
	return bytes.Clone(raw[len(raw)-ps.PublicKeySize():])
}

func checkPrivateKeyLength(privateKeyBytes secretdata.Bytes, ps ParameterSet) error {
	if privateKeyBytes.Len() != ps.PrivateKeySize() {
		return fmt.Errorf("%w: private key has %d bytes, want %d", ErrInvalidKeyEncoding, privateKeyBytes.Len(), ps.PrivateKeySize())
	}
	return nil
}

// NewPrivateKey creates a new SLH-DSA private key from privateKeyBytes, with
// idRequirement and params. The public key is taken from the PK.seed and
// PK.root fields; use [PrivateKey.Validate] to check that PK.root matches
// the secret seeds.
func NewPrivateKey(privateKeyBytes secretdata.Bytes, idRequirement uint32, params *Parameters) (*PrivateKey, error) {
	if params == nil {
		return nil, fmt.Errorf("slhdsa.NewPrivateKey: params must not be nil")
	}
	if err := checkPrivateKeyLength(privateKeyBytes, params.paramSet); err != nil {
		return nil, fmt.Errorf("slhdsa.NewPrivateKey: %w", err)
	}
	pubKey, err := NewPublicKey(publicKeyBytes(privateKeyBytes, params.paramSet), idRequirement, params)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.NewPrivateKey: %w", err)
	}
	return &PrivateKey{
		publicKey: pubKey,
		keyBytes:  privateKeyBytes,
	}, nil
}

// NewPrivateKeyWithPublicKey creates a new SLH-DSA private key from
// privateKeyBytes and a [PublicKey].
func NewPrivateKeyWithPublicKey(privateKeyBytes secretdata.Bytes, pubKey *PublicKey) (*PrivateKey, error) {
	if pubKey == nil {
		return nil, fmt.Errorf("slhdsa.NewPrivateKeyWithPublicKey: pubKey must not be nil")
	}
	if pubKey.params == nil {
		return nil, fmt.Errorf("slhdsa.NewPrivateKeyWithPublicKey: pubKey.params must not be nil")
	}
	if err := checkPrivateKeyLength(privateKeyBytes, pubKey.params.paramSet); err != nil {
		return nil, fmt.Errorf("slhdsa.NewPrivateKeyWithPublicKey: %w", err)
	}
	if !bytes.Equal(publicKeyBytes(privateKeyBytes, pubKey.params.paramSet), pubKey.keyBytes) {
		return nil, fmt.Errorf("slhdsa.NewPrivateKeyWithPublicKey: %w: public key does not match private key", ErrInvalidKeyEncoding)
	}
	return &PrivateKey{
		publicKey: pubKey,
		keyBytes:  privateKeyBytes,
	}, nil
}

// GenerateKey creates a fresh private key for params. idRequirement must be
// zero if params doesn't have an ID requirement.
func GenerateKey(params *Parameters, idRequirement uint32) (*PrivateKey, error) {
	if params == nil {
		return nil, fmt.Errorf("slhdsa.GenerateKey: params must not be nil")
	}
	priv, _, err := GenerateKeyPair(params.paramSet)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.GenerateKey: %w", err)
	}
	defer clear(priv)
	return NewPrivateKey(secretdata.NewBytesFromData(priv, insecuresecretdataaccess.Token{}), idRequirement, params)
}

// NewPrivateKeyFromSeed deterministically derives a private key from a seed
// of SK.seed || SK.prf || PK.seed.
func NewPrivateKeyFromSeed(seed secretdata.Bytes, idRequirement uint32, params *Parameters) (*PrivateKey, error) {
	if params == nil {
		return nil, fmt.Errorf("slhdsa.NewPrivateKeyFromSeed: params must not be nil")
	}
	raw := seed.Data(insecuresecretdataaccess.Token{})
	defer clear(raw)
	priv, _, err := KeyFromSeed(raw, params.paramSet)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.NewPrivateKeyFromSeed: %w", err)
	}
	defer clear(priv)
	return NewPrivateKey(secretdata.NewBytesFromData(priv, insecuresecretdataaccess.Token{}), idRequirement, params)
}

// PrivateKeyBytes returns SK.seed || SK.prf || PK.seed || PK.root.
func (k *PrivateKey) PrivateKeyBytes() secretdata.Bytes { return k.keyBytes }

// PublicKey returns the public key of the key.
func (k *PrivateKey) PublicKey() (key.Key, error) { return k.publicKey, nil }

// Public returns the typed public key.
func (k *PrivateKey) Public() *PublicKey { return k.publicKey }

// Parameters returns the parameters of the key.
func (k *PrivateKey) Parameters() key.Parameters { return k.publicKey.params }

// IDRequirement returns the ID requirement of the key, and whether it is
// required.
func (k *PrivateKey) IDRequirement() (uint32, bool) { return k.publicKey.IDRequirement() }

// OutputPrefix returns the output prefix of this key.
func (k *PrivateKey) OutputPrefix() []byte { return bytes.Clone(k.publicKey.outputPrefix) }

// Validate recomputes PK.root from the secret seed and reports
// [ErrInvalidKeyEncoding] if it differs from the stored root.
func (k *PrivateKey) Validate() error {
	raw := k.keyBytes.Data(insecuresecretdataaccess.Token{})
	defer clear(raw)
	sk, err := decodeSecretKey(raw, k.publicKey.params.paramSet)
	if err != nil {
		return err
	}
	defer sk.Wipe()
	return translateError(sk.Validate())
}

// Equal returns true if this key is equal to other.
func (k *PrivateKey) Equal(other key.Key) bool {
	if k == other {
		return true
	}
	that, ok := other.(*PrivateKey)
	return ok && k.publicKey.Equal(that.publicKey) &&
		k.keyBytes.Equal(that.keyBytes)
}
