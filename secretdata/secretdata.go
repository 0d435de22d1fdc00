// Copyright 2024 Google LLC
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

// Package secretdata provides an access-controlled wrapper for SLH-DSA secret
// key material.
//
// Reading the wrapped bytes requires an [insecuresecretdataaccess.Token], so
// every place that handles raw SK.seed and SK.prf values is easy to find.
package secretdata

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"

	"github.com/tink-crypto/slhdsa-go/insecuresecretdataaccess"
)

// Bytes wraps secret bytes. Accessors hand out copies, so the wrapped value
// cannot be modified through them.
type Bytes struct {
	data []byte
}

// NewBytesFromRand returns size bytes read from crypto/rand.
func NewBytesFromRand(size uint32) (Bytes, error) {
	b := Bytes{data: make([]byte, size)}
	if _, err := rand.Read(b.data); err != nil {
		return Bytes{}, err
	}
	return b, nil
}

// NewBytesFromData copies data into a new Bytes value.
func NewBytesFromData(data []byte, token insecuresecretdataaccess.Token) Bytes {
	return Bytes{data: bytes.Clone(data)}
}

// Data returns a copy of the wrapped bytes. Callers should clear the copy
// once they are done with it.
func (b Bytes) Data(token insecuresecretdataaccess.Token) []byte { return bytes.Clone(b.data) }

// Len returns the size of the wrapped bytes.
func (b Bytes) Len() int { return len(b.data) }

// Equal compares b and other in time that depends only on their lengths.
func (b Bytes) Equal(other Bytes) bool {
	return subtle.ConstantTimeCompare(b.data, other.data) == 1
}

// Wipe zeroes the wrapped bytes. Copies of b share the same storage and are
// wiped too.
func (b Bytes) Wipe() { clear(b.data) }
