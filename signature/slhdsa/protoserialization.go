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

	"github.com/tink-crypto/slhdsa-go/insecuresecretdataaccess"
	"github.com/tink-crypto/slhdsa-go/secretdata"
	"google.golang.org/protobuf/encoding/protowire"
)

// Keys are serialized as a keyset entry wrapping a KeyData message, using
// the protobuf wire format of google.crypto.tink:
//
//	Keyset.Key        { KeyData key_data = 1; KeyStatusType status = 2; uint32 key_id = 3; OutputPrefixType output_prefix_type = 4; }
//	KeyData           { string type_url = 1; bytes value = 2; KeyMaterialType key_material_type = 3; }
//	SlhDsaParams      { int32 key_size = 1; SlhDsaHashType hash_type = 2; SlhDsaSignatureType sig_type = 3; }
//	SlhDsaPublicKey   { uint32 version = 1; bytes key_value = 2; SlhDsaParams params = 3; }
//	SlhDsaPrivateKey  { uint32 version = 1; bytes key_value = 2; SlhDsaPublicKey public_key = 3; }
//	SlhDsaKeyFormat   { SlhDsaParams params = 1; uint32 version = 2; }
//	KeyTemplate       { string type_url = 1; bytes value = 2; OutputPrefixType output_prefix_type = 3; }
const (
	// publicKeyProtoVersion is the accepted SlhDsaPublicKey version.
	//
	// Currently, only version 0 is supported; other versions are rejected.
	publicKeyProtoVersion = 0
	// privateKeyProtoVersion is the accepted SlhDsaPrivateKey version.
	//
	// Currently, only version 0 is supported; other versions are rejected.
	privateKeyProtoVersion = 0

	signerTypeURL   = "type.googleapis.com/google.crypto.tink.SlhDsaPrivateKey"
	verifierTypeURL = "type.googleapis.com/google.crypto.tink.SlhDsaPublicKey"
)

// Enum values of the wire format.
const (
	keyMaterialAsymmetricPrivate = 4
	keyMaterialAsymmetricPublic  = 5

	keyStatusEnabled = 1

	outputPrefixTink = 1
	outputPrefixRaw  = 3

	protoHashSHA2  = 1
	protoHashSHAKE = 2

	protoSigFastSigning    = 1
	protoSigSmallSignature = 2
)

func protoOutputPrefixTypeFromVariant(variant Variant) (uint64, error) {
	switch variant {
	case VariantTink:
		return outputPrefixTink, nil
	case VariantNoPrefix:
		return outputPrefixRaw, nil
	default:
		return 0, fmt.Errorf("unknown output prefix variant: %v", variant)
	}
}

func variantFromProto(prefixType uint64) (Variant, error) {
	switch prefixType {
	case outputPrefixTink:
		return VariantTink, nil
	case outputPrefixRaw:
		return VariantNoPrefix, nil
	default:
		return VariantUnknown, fmt.Errorf("unsupported output prefix type: %v", prefixType)
	}
}

func protoHashTypeFromHashType(hashType HashType) (uint64, error) {
	switch hashType {
	case SHA2:
		return protoHashSHA2, nil
	case SHAKE:
		return protoHashSHAKE, nil
	default:
		return 0, fmt.Errorf("unknown hash type: %v", hashType)
	}
}

func hashTypeFromProto(hashType uint64) (HashType, error) {
	switch hashType {
	case protoHashSHA2:
		return SHA2, nil
	case protoHashSHAKE:
		return SHAKE, nil
	default:
		return UnknownHashType, fmt.Errorf("unsupported hash type: %v", hashType)
	}
}

func protoSignatureTypeFromSignatureType(sigType SignatureType) (uint64, error) {
	switch sigType {
	case FastSigning:
		return protoSigFastSigning, nil
	case SmallSignature:
		return protoSigSmallSignature, nil
	default:
		return 0, fmt.Errorf("unknown signature type: %v", sigType)
	}
}

func signatureTypeFromProto(sigType uint64) (SignatureType, error) {
	switch sigType {
	case protoSigFastSigning:
		return FastSigning, nil
	case protoSigSmallSignature:
		return SmallSignature, nil
	default:
		return UnknownSignatureType, fmt.Errorf("unsupported signature type: %v", sigType)
	}
}

// Encoding helpers. Fields holding their zero value are omitted, as in
// proto3.

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// wireMessage holds the last occurrence of each scalar and length-delimited
// field of a decoded message.
type wireMessage struct {
	varints map[protowire.Number]uint64
	bytes   map[protowire.Number][]byte
}

func (m *wireMessage) varint(num protowire.Number) uint64 { return m.varints[num] }

func (m *wireMessage) field(num protowire.Number) []byte { return m.bytes[num] }

// parseWireMessage decodes one level of a protobuf message. Fields of other
// wire types are skipped.
func parseWireMessage(b []byte) (*wireMessage, error) {
	m := &wireMessage{
		varints: make(map[protowire.Number]uint64),
		bytes:   make(map[protowire.Number][]byte),
	}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.varints[num] = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.bytes[num] = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func marshalParams(params *Parameters) ([]byte, error) {
	hashType, err := protoHashTypeFromHashType(params.HashType())
	if err != nil {
		return nil, err
	}
	sigType, err := protoSignatureTypeFromSignatureType(params.SignatureType())
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendVarintField(b, 1, uint64(params.KeySize()))
	b = appendVarintField(b, 2, hashType)
	b = appendVarintField(b, 3, sigType)
	return b, nil
}

func parseParams(b []byte, variant Variant) (*Parameters, error) {
	m, err := parseWireMessage(b)
	if err != nil {
		return nil, err
	}
	hashType, err := hashTypeFromProto(m.varint(2))
	if err != nil {
		return nil, err
	}
	sigType, err := signatureTypeFromProto(m.varint(3))
	if err != nil {
		return nil, err
	}
	ps, err := ParameterSetFor(hashType, int(int32(m.varint(1))), sigType)
	if err != nil {
		return nil, err
	}
	return NewParameters(ps, variant)
}

func marshalPublicKeyProto(k *PublicKey) ([]byte, error) {
	params, err := marshalParams(k.params)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendVarintField(b, 1, publicKeyProtoVersion)
	b = appendBytesField(b, 2, k.keyBytes)
	b = appendBytesField(b, 3, params)
	return b, nil
}

func marshalKey(typeURL string, value []byte, keyMaterialType uint64, variant Variant, idRequirement uint32) ([]byte, error) {
	outputPrefixType, err := protoOutputPrefixTypeFromVariant(variant)
	if err != nil {
		return nil, err
	}
	var keyData []byte
	keyData = appendBytesField(keyData, 1, []byte(typeURL))
	keyData = appendBytesField(keyData, 2, value)
	keyData = appendVarintField(keyData, 3, keyMaterialType)
	var b []byte
	b = appendBytesField(b, 1, keyData)
	b = appendVarintField(b, 2, keyStatusEnabled)
	b = appendVarintField(b, 3, uint64(idRequirement))
	b = appendVarintField(b, 4, outputPrefixType)
	return b, nil
}

// parseKey unwraps a keyset entry and returns the key value, the variant and
// the ID requirement (zero for keys without one).
func parseKey(b []byte, wantTypeURL string, wantKeyMaterialType uint64) ([]byte, Variant, uint32, error) {
	entry, err := parseWireMessage(b)
	if err != nil {
		return nil, VariantUnknown, 0, err
	}
	keyData, err := parseWireMessage(entry.field(1))
	if err != nil {
		return nil, VariantUnknown, 0, err
	}
	if typeURL := string(keyData.field(1)); typeURL != wantTypeURL {
		return nil, VariantUnknown, 0, fmt.Errorf("invalid key type URL: %q", typeURL)
	}
	if got := keyData.varint(3); got != wantKeyMaterialType {
		return nil, VariantUnknown, 0, fmt.Errorf("invalid key material type: %v", got)
	}
	if status := entry.varint(2); status != keyStatusEnabled {
		return nil, VariantUnknown, 0, fmt.Errorf("key is not enabled: status %v", status)
	}
	variant, err := variantFromProto(entry.varint(4))
	if err != nil {
		return nil, VariantUnknown, 0, err
	}
	var idRequirement uint32
	if variant != VariantNoPrefix {
		idRequirement = uint32(entry.varint(3))
	}
	return keyData.field(2), variant, idRequirement, nil
}

func parsePublicKeyProto(b []byte, variant Variant, idRequirement uint32) (*PublicKey, error) {
	m, err := parseWireMessage(b)
	if err != nil {
		return nil, err
	}
	if v := m.varint(1); v != publicKeyProtoVersion {
		return nil, fmt.Errorf("public key has unsupported version: %v", v)
	}
	params, err := parseParams(m.field(3), variant)
	if err != nil {
		return nil, err
	}
	return NewPublicKey(m.field(2), idRequirement, params)
}

// MarshalPublicKey serializes k as a keyset entry holding an SlhDsaPublicKey.
func MarshalPublicKey(k *PublicKey) ([]byte, error) {
	if k == nil || k.params == nil {
		return nil, fmt.Errorf("slhdsa.MarshalPublicKey: invalid key: parameters are nil")
	}
	value, err := marshalPublicKeyProto(k)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.MarshalPublicKey: %w", err)
	}
	// idRequirement is zero if the key doesn't have a key requirement.
	idRequirement, _ := k.IDRequirement()
	b, err := marshalKey(verifierTypeURL, value, keyMaterialAsymmetricPublic, k.params.variant, idRequirement)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.MarshalPublicKey: %w", err)
	}
	return b, nil
}

// ParsePublicKey parses the output of [MarshalPublicKey].
func ParsePublicKey(b []byte) (*PublicKey, error) {
	value, variant, idRequirement, err := parseKey(b, verifierTypeURL, keyMaterialAsymmetricPublic)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParsePublicKey: %w", err)
	}
	k, err := parsePublicKeyProto(value, variant, idRequirement)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParsePublicKey: %w", err)
	}
	return k, nil
}

// MarshalPrivateKey serializes k as a keyset entry holding an
// SlhDsaPrivateKey. The result contains secret key material.
func MarshalPrivateKey(k *PrivateKey, token insecuresecretdataaccess.Token) ([]byte, error) {
	if k == nil || k.publicKey == nil || k.publicKey.params == nil {
		return nil, fmt.Errorf("slhdsa.MarshalPrivateKey: invalid key: public key parameters are nil")
	}
	publicKey, err := marshalPublicKeyProto(k.publicKey)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.MarshalPrivateKey: %w", err)
	}
	keyValue := k.keyBytes.Data(token)
	defer clear(keyValue)
	var value []byte
	value = appendVarintField(value, 1, privateKeyProtoVersion)
	value = appendBytesField(value, 2, keyValue)
	value = appendBytesField(value, 3, publicKey)
	defer clear(value)
	// idRequirement is zero if the key doesn't have a key requirement.
	idRequirement, _ := k.IDRequirement()
	b, err := marshalKey(signerTypeURL, value, keyMaterialAsymmetricPrivate, k.publicKey.params.variant, idRequirement)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.MarshalPrivateKey: %w", err)
	}
	return b, nil
}

// ParsePrivateKey parses the output of [MarshalPrivateKey]. The embedded
// public key must match the PK.seed and PK.root fields of the private key.
func ParsePrivateKey(b []byte, token insecuresecretdataaccess.Token) (*PrivateKey, error) {
	value, variant, idRequirement, err := parseKey(b, signerTypeURL, keyMaterialAsymmetricPrivate)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParsePrivateKey: %w", err)
	}
	m, err := parseWireMessage(value)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParsePrivateKey: %w", err)
	}
	if v := m.varint(1); v != privateKeyProtoVersion {
		return nil, fmt.Errorf("slhdsa.ParsePrivateKey: private key has unsupported version: %v", v)
	}
	publicKey, err := parsePublicKeyProto(m.field(3), variant, idRequirement)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParsePrivateKey: %w", err)
	}
	privateKeyBytes := secretdata.NewBytesFromData(m.field(2), token)
	return NewPrivateKeyWithPublicKey(privateKeyBytes, publicKey)
}

// MarshalParameters serializes params as a KeyTemplate holding an
// SlhDsaKeyFormat.
func MarshalParameters(params *Parameters) ([]byte, error) {
	if params == nil {
		return nil, fmt.Errorf("slhdsa.MarshalParameters: params must not be nil")
	}
	outputPrefixType, err := protoOutputPrefixTypeFromVariant(params.variant)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.MarshalParameters: %w", err)
	}
	p, err := marshalParams(params)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.MarshalParameters: %w", err)
	}
	var format []byte
	format = appendBytesField(format, 1, p)
	var b []byte
	b = appendBytesField(b, 1, []byte(signerTypeURL))
	b = appendBytesField(b, 2, format)
	b = appendVarintField(b, 3, outputPrefixType)
	return b, nil
}

// ParseParameters parses the output of [MarshalParameters].
func ParseParameters(b []byte) (*Parameters, error) {
	template, err := parseWireMessage(b)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParseParameters: %w", err)
	}
	if typeURL := string(template.field(1)); typeURL != signerTypeURL {
		return nil, fmt.Errorf("slhdsa.ParseParameters: invalid type URL: got %q, want %q", typeURL, signerTypeURL)
	}
	format, err := parseWireMessage(template.field(2))
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParseParameters: %w", err)
	}
	if v := format.varint(2); v != 0 {
		return nil, fmt.Errorf("slhdsa.ParseParameters: unsupported key version: got %d, want %d", v, 0)
	}
	variant, err := variantFromProto(template.varint(3))
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParseParameters: %w", err)
	}
	params, err := parseParams(format.field(1), variant)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.ParseParameters: %w", err)
	}
	return params, nil
}
