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

	"github.com/tink-crypto/slhdsa-go/internal/prefixmap"
)

// MultiVerifier checks signatures against a set of public keys, such as the
// keys of a rotation. Keys with an ID requirement are selected by the
// signature's output prefix; keys without one are tried on every signature.
type MultiVerifier struct {
	verifiers *prefixmap.PrefixMap[*Verifier]
}

// NewMultiVerifier creates a [MultiVerifier] for publicKeys. The options
// apply to every key.
func NewMultiVerifier(publicKeys []*PublicKey, opts ...Option) (*MultiVerifier, error) {
	if len(publicKeys) == 0 {
		return nil, fmt.Errorf("slhdsa.NewMultiVerifier: at least one public key is required")
	}
	verifiers := prefixmap.New[*Verifier]()
	for i, pk := range publicKeys {
		v, err := NewVerifier(pk, opts...)
		if err != nil {
			return nil, fmt.Errorf("slhdsa.NewMultiVerifier: key %d: %w", i, err)
		}
		if err := verifiers.Insert(v.prefix, v); err != nil {
			return nil, fmt.Errorf("slhdsa.NewMultiVerifier: key %d: %w", i, err)
		}
	}
	return &MultiVerifier{verifiers: verifiers}, nil
}

// Verify returns nil if any candidate key accepts signature over data, and
// [ErrVerificationFailed] otherwise.
func (m *MultiVerifier) Verify(signature, data []byte) error {
	it := m.verifiers.Matching(signature)
	for {
		v, _, ok := it.Next()
		if !ok {
			return ErrVerificationFailed
		}
		if err := v.Verify(signature, data); err == nil {
			return nil
		}
	}
}
