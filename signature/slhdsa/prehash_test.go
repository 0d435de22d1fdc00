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

package slhdsa_test

import (
	"bytes"
	"crypto"
	"errors"
	"testing"

	"github.com/cloudflare/circl/xof"
	"github.com/tink-crypto/slhdsa-go/signature/slhdsa"
)

func TestSignVerifyPreHash(t *testing.T) {
	ps := slhdsa.SHA2_128f
	priv, pub := mustGenerateKeyPair(t, ps)
	msg := []byte("pre-hashed message")
	ctx := []byte("ctx")
	hashes := []crypto.Hash{crypto.SHA256, crypto.SHA512, crypto.SHA3_256}
	if !testing.Short() {
		hashes = append(hashes, crypto.SHA224, crypto.SHA384, crypto.SHA512_224, crypto.SHA512_256, crypto.SHA3_224, crypto.SHA3_384, crypto.SHA3_512)
	}
	for _, h := range hashes {
		t.Run(h.String(), func(t *testing.T) {
			sig, err := slhdsa.SignPreHash(msg, ctx, priv, ps, h)
			if err != nil {
				t.Fatalf("slhdsa.SignPreHash() err = %v, want nil", err)
			}
			if ok, err := slhdsa.VerifyPreHash(msg, ctx, sig, pub, ps, h); err != nil || !ok {
				t.Errorf("slhdsa.VerifyPreHash() = %v, %v, want true, nil", ok, err)
			}
			// The pure and pre-hash encodings are domain separated.
			if ok, err := slhdsa.VerifyWithContext(msg, ctx, sig, pub, ps); err != nil || ok {
				t.Errorf("slhdsa.VerifyWithContext() of a pre-hash signature = %v, %v, want false, nil", ok, err)
			}
			other := crypto.SHA384
			if h == other {
				other = crypto.SHA256
			}
			if ok, err := slhdsa.VerifyPreHash(msg, ctx, sig, pub, ps, other); err != nil || ok {
				t.Errorf("slhdsa.VerifyPreHash() with %v = %v, %v, want false, nil", other, ok, err)
			}
		})
	}
}

func TestSignPreHashDeterministic(t *testing.T) {
	ps := slhdsa.SHAKE_128f
	priv, pub := mustGenerateKeyPair(t, ps)
	msg := []byte("message")
	sig1, err := slhdsa.SignPreHashDeterministic(msg, nil, priv, ps, crypto.SHA512)
	if err != nil {
		t.Fatalf("slhdsa.SignPreHashDeterministic() err = %v, want nil", err)
	}
	sig2, err := slhdsa.SignPreHashDeterministic(msg, nil, priv, ps, crypto.SHA512)
	if err != nil {
		t.Fatalf("slhdsa.SignPreHashDeterministic() err = %v, want nil", err)
	}
	if !bytes.Equal(sig1, sig2) {
		t.Error("deterministic pre-hash signatures differ")
	}
	pure, err := slhdsa.SignDeterministic(msg, priv, ps)
	if err != nil {
		t.Fatalf("slhdsa.SignDeterministic() err = %v, want nil", err)
	}
	if bytes.Equal(sig1, pure) {
		t.Error("pre-hash and pure deterministic signatures are equal")
	}
	if ok, err := slhdsa.VerifyPreHash(msg, nil, sig1, pub, ps, crypto.SHA512); err != nil || !ok {
		t.Errorf("slhdsa.VerifyPreHash() = %v, %v, want true, nil", ok, err)
	}
}

func TestPreHashErrors(t *testing.T) {
	ps := slhdsa.SHA2_128f
	priv, pub := mustGenerateKeyPair(t, ps)
	sig := make([]byte, ps.SignatureSize())
	longCtx := make([]byte, slhdsa.MaxContextLength+1)
	for _, tc := range []struct {
		name    string
		ctx     []byte
		h       crypto.Hash
		wantErr error
	}{
		{"MD5", nil, crypto.MD5, slhdsa.ErrUnsupportedPreHash},
		{"SHA1", nil, crypto.SHA1, slhdsa.ErrUnsupportedPreHash},
		{"zero hash", nil, crypto.Hash(0), slhdsa.ErrUnsupportedPreHash},
		{"long context", longCtx, crypto.SHA256, slhdsa.ErrContextTooLong},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := slhdsa.SignPreHash([]byte("m"), tc.ctx, priv, ps, tc.h); !errors.Is(err, tc.wantErr) {
				t.Errorf("slhdsa.SignPreHash() err = %v, want %v", err, tc.wantErr)
			}
			if _, err := slhdsa.SignPreHashDeterministic([]byte("m"), tc.ctx, priv, ps, tc.h); !errors.Is(err, tc.wantErr) {
				t.Errorf("slhdsa.SignPreHashDeterministic() err = %v, want %v", err, tc.wantErr)
			}
			if _, err := slhdsa.VerifyPreHash([]byte("m"), tc.ctx, sig, pub, ps, tc.h); !errors.Is(err, tc.wantErr) {
				t.Errorf("slhdsa.VerifyPreHash() err = %v, want %v", err, tc.wantErr)
			}
		})
	}
	if _, err := slhdsa.SignPreHash([]byte("m"), nil, priv[1:], ps, crypto.SHA256); !errors.Is(err, slhdsa.ErrInvalidKeyEncoding) {
		t.Errorf("slhdsa.SignPreHash() with short key err = %v, want %v", err, slhdsa.ErrInvalidKeyEncoding)
	}
	if _, err := slhdsa.VerifyPreHash([]byte("m"), nil, sig[1:], pub, ps, crypto.SHA256); !errors.Is(err, slhdsa.ErrInvalidSignatureEncoding) {
		t.Errorf("slhdsa.VerifyPreHash() with short signature err = %v, want %v", err, slhdsa.ErrInvalidSignatureEncoding)
	}
}

func TestSignVerifyPreHashXOF(t *testing.T) {
	ps := slhdsa.SHAKE_128f
	priv, pub := mustGenerateKeyPair(t, ps)
	msg := []byte("pre-hashed message")
	ctx := []byte("ctx")
	for _, x := range []xof.ID{xof.SHAKE128, xof.SHAKE256} {
		sig, err := slhdsa.SignPreHashXOF(msg, ctx, priv, ps, x)
		if err != nil {
			t.Fatalf("slhdsa.SignPreHashXOF(%d) err = %v, want nil", x, err)
		}
		if ok, err := slhdsa.VerifyPreHashXOF(msg, ctx, sig, pub, ps, x); err != nil || !ok {
			t.Errorf("slhdsa.VerifyPreHashXOF(%d) = %v, %v, want true, nil", x, ok, err)
		}
		if ok, err := slhdsa.VerifyWithContext(msg, ctx, sig, pub, ps); err != nil || ok {
			t.Errorf("slhdsa.VerifyWithContext() of a SHAKE pre-hash signature = %v, %v, want false, nil", ok, err)
		}
		if ok, err := slhdsa.VerifyPreHash(msg, ctx, sig, pub, ps, crypto.SHA3_256); err != nil || ok {
			t.Errorf("slhdsa.VerifyPreHash(SHA3-256) of a SHAKE pre-hash signature = %v, %v, want false, nil", ok, err)
		}
	}

	sig1, err := slhdsa.SignPreHashXOFDeterministic(msg, ctx, priv, ps, xof.SHAKE128)
	if err != nil {
		t.Fatalf("slhdsa.SignPreHashXOFDeterministic() err = %v, want nil", err)
	}
	sig2, err := slhdsa.SignPreHashXOFDeterministic(msg, ctx, priv, ps, xof.SHAKE128)
	if err != nil {
		t.Fatalf("slhdsa.SignPreHashXOFDeterministic() err = %v, want nil", err)
	}
	if !bytes.Equal(sig1, sig2) {
		t.Error("deterministic SHAKE pre-hash signatures differ")
	}
	if ok, err := slhdsa.VerifyPreHashXOF(msg, ctx, sig1, pub, ps, xof.SHAKE256); err != nil || ok {
		t.Errorf("slhdsa.VerifyPreHashXOF() with SHAKE256 = %v, %v, want false, nil", ok, err)
	}
}

func TestPreHashXOFErrors(t *testing.T) {
	ps := slhdsa.SHA2_128f
	priv, pub := mustGenerateKeyPair(t, ps)
	sig := make([]byte, ps.SignatureSize())
	for _, x := range []xof.ID{0, xof.BLAKE2XB, xof.BLAKE2XS} {
		if _, err := slhdsa.SignPreHashXOF([]byte("m"), nil, priv, ps, x); !errors.Is(err, slhdsa.ErrUnsupportedPreHash) {
			t.Errorf("slhdsa.SignPreHashXOF(%d) err = %v, want %v", x, err, slhdsa.ErrUnsupportedPreHash)
		}
		if _, err := slhdsa.VerifyPreHashXOF([]byte("m"), nil, sig, pub, ps, x); !errors.Is(err, slhdsa.ErrUnsupportedPreHash) {
			t.Errorf("slhdsa.VerifyPreHashXOF(%d) err = %v, want %v", x, err, slhdsa.ErrUnsupportedPreHash)
		}
	}
	longCtx := make([]byte, slhdsa.MaxContextLength+1)
	if _, err := slhdsa.SignPreHashXOFDeterministic([]byte("m"), longCtx, priv, ps, xof.SHAKE128); !errors.Is(err, slhdsa.ErrContextTooLong) {
		t.Errorf("slhdsa.SignPreHashXOFDeterministic() with long context err = %v, want %v", err, slhdsa.ErrContextTooLong)
	}
}
