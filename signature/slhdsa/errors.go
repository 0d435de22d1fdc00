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
	"errors"

	"github.com/tink-crypto/slhdsa-go/internal/signature/slhdsa"
)

var (
	// ErrInvalidParameterSet is returned for parameter sets outside the
	// supported enumeration.
	ErrInvalidParameterSet = errors.New("slhdsa: invalid parameter set")
	// ErrInvalidKeyEncoding is returned for keys or seeds of the wrong length,
	// and for private keys whose PK.root does not match their seeds.
	ErrInvalidKeyEncoding = errors.New("slhdsa: invalid key encoding")
	// ErrInvalidSignatureEncoding is returned for signatures of the wrong
	// length. A well-formed signature that does not verify is not an error.
	ErrInvalidSignatureEncoding = errors.New("slhdsa: invalid signature encoding")
	// ErrVerificationFailed is returned by [Verifier.Verify], whose result is
	// error-shaped, when a well-formed signature does not verify.
	ErrVerificationFailed = errors.New("slhdsa: signature verification failed")

	// ErrContextTooLong is returned for context strings longer than 255
	// bytes.
	ErrContextTooLong = slhdsa.ErrContextTooLong
	// ErrUnsupportedPreHash is returned for pre-hash functions without a
	// registered object identifier.
	ErrUnsupportedPreHash = slhdsa.ErrUnsupportedPreHash
)

// MaxContextLength is the maximum length of a context string.
const MaxContextLength = slhdsa.MaxContextLength
