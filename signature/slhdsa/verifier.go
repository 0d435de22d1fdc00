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

	"github.com/tink-crypto/slhdsa-go/internal/signature/slhdsa"
)

// Verifier checks signatures against a [PublicKey].
type Verifier struct {
	publicKey *slhdsa.PublicKey
	prefix    []byte
	opts      *options
}

// NewVerifier creates a new [Verifier] for SLH-DSA.
func NewVerifier(publicKey *PublicKey, opts ...Option) (*Verifier, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("slhdsa.NewVerifier: publicKey must not be nil")
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.NewVerifier: %w", err)
	}
	pubKey, err := decodePublicKey(publicKey.keyBytes, publicKey.params.paramSet)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.NewVerifier: %w", err)
	}
	return &Verifier{
		publicKey: pubKey,
		prefix:    publicKey.OutputPrefix(),
		opts:      o,
	}, nil
}

// Verify verifies whether the given signature is valid for the given data.
//
// It returns an error if the prefix is not valid or the signature is not
// valid. A well-formed signature that does not verify reports
// [ErrVerificationFailed].
func (v *Verifier) Verify(signature, data []byte) error {
	if !bytes.HasPrefix(signature, v.prefix) {
		return fmt.Errorf("slhdsa: the signature does not have the expected prefix")
	}
	ok, err := v.publicKey.Verify(data, signature[len(v.prefix):], v.opts.context)
	if err != nil {
		return translateError(err)
	}
	if !ok {
		return ErrVerificationFailed
	}
	return nil
}
