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
	"slices"

	"github.com/tink-crypto/slhdsa-go/insecuresecretdataaccess"
	"github.com/tink-crypto/slhdsa-go/internal/signature/slhdsa"
)

// Option configures a [Signer] or [Verifier].
type Option func(*options) error

type options struct {
	context       []byte
	deterministic bool
}

// WithContext binds signatures to ctx, which must be at most
// [MaxContextLength] bytes. Signer and verifier must use the same context.
func WithContext(ctx []byte) Option {
	return func(o *options) error {
		if len(ctx) > MaxContextLength {
			return fmt.Errorf("%w: %d bytes", ErrContextTooLong, len(ctx))
		}
		o.context = slices.Clone(ctx)
		return nil
	}
}

// WithDeterministicSigning makes a [Signer] use PK.seed instead of fresh
// randomness, so equal messages get equal signatures. Verifiers ignore it.
func WithDeterministicSigning() Option {
	return func(o *options) error {
		o.deterministic = true
		return nil
	}
}

func applyOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Signer signs messages with a [PrivateKey].
type Signer struct {
	secretKey *slhdsa.SecretKey
	prefix    []byte
	opts      *options
}

// NewSigner creates a new [Signer] for SLH-DSA.
func NewSigner(privateKey *PrivateKey, opts ...Option) (*Signer, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("slhdsa.NewSigner: privateKey must not be nil")
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.NewSigner: %w", err)
	}
	raw := privateKey.keyBytes.Data(insecuresecretdataaccess.Token{})
	defer clear(raw)
	secretKey, err := decodeSecretKey(raw, privateKey.publicKey.params.paramSet)
	if err != nil {
		return nil, fmt.Errorf("slhdsa.NewSigner: %w", err)
	}
	return &Signer{
		secretKey: secretKey,
		prefix:    privateKey.OutputPrefix(),
		opts:      o,
	}, nil
}

// Sign computes a signature for the given data.
//
// If the key has a prefix, the signature will be prefixed with the output
// prefix. A key whose PK.root does not match its seeds under the parameter
// set reports [ErrInvalidKeyEncoding].
func (s *Signer) Sign(data []byte) ([]byte, error) {
	var r []byte
	var err error
	if s.opts.deterministic {
		r, err = s.secretKey.SignDeterministic(data, s.opts.context)
	} else {
		r, err = s.secretKey.Sign(data, s.opts.context)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return slices.Concat(s.prefix, r), nil
}

// Close wipes the expanded secret key. The signer must not be used
// afterwards.
func (s *Signer) Close() { s.secretKey.Wipe() }
