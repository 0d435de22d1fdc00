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
	"crypto/rand"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fastIDs are the parameter sets cheap enough to sign with in every test run.
var fastIDs = []ID{SHA2_128f, SHAKE_128f}

// testIDs returns every parameter set, or only the fast ones in short mode.
func testIDs(t *testing.T) []ID {
	t.Helper()
	if testing.Short() {
		return fastIDs
	}
	return IDs()
}

func mustKeyGen(t *testing.T, p *Params) (*SecretKey, *PublicKey) {
	t.Helper()
	sk, pk, err := p.KeyGen()
	if err != nil {
		t.Fatalf("KeyGen() err = %v, want nil", err)
	}
	return sk, pk
}

func TestSignVerify(t *testing.T) {
	for _, id := range testIDs(t) {
		t.Run(id.String(), func(t *testing.T) {
			p := mustLookup(id)
			sk, pk := mustKeyGen(t, p)
			var m [32]byte
			rand.Read(m[:])
			var ctx [32]byte
			rand.Read(ctx[:])
			signature, err := sk.Sign(m[:], ctx[:])
			if err != nil {
				t.Fatalf("sk.Sign() err = %v, want nil", err)
			}
			if len(signature) != p.SignatureLength() {
				t.Fatalf("len(signature) = %d, want %d", len(signature), p.SignatureLength())
			}
			signature2, err := sk.Sign(m[:], ctx[:])
			if err != nil {
				t.Fatalf("sk.Sign() err = %v, want nil", err)
			}
			if bytes.Equal(signature, signature2) {
				t.Fatal("sk.Sign() == sk.Sign(), want sk.Sign() != sk.Sign()")
			}
			if ok, err := pk.Verify(m[:], signature, ctx[:]); !ok || err != nil {
				t.Fatalf("pk.Verify() = %v, %v, want true, nil", ok, err)
			}
			if ok, err := pk.Verify(m[:], signature2, ctx[:]); !ok || err != nil {
				t.Fatalf("pk.Verify() = %v, %v, want true, nil", ok, err)
			}
			signature[0] ^= 1 // Corrupt the randomizer.
			if ok, err := pk.Verify(m[:], signature, ctx[:]); ok || err != nil {
				t.Errorf("pk.Verify() = %v, %v, want false, nil", ok, err)
			}
		})
	}
}

func TestSignDeterministicVerify(t *testing.T) {
	for _, id := range testIDs(t) {
		t.Run(id.String(), func(t *testing.T) {
			sk, pk := mustKeyGen(t, mustLookup(id))
			m := []byte("deterministic")
			signature, err := sk.SignDeterministic(m, nil)
			if err != nil {
				t.Fatalf("sk.SignDeterministic() err = %v, want nil", err)
			}
			signature2, err := sk.SignDeterministic(m, nil)
			if err != nil {
				t.Fatalf("sk.SignDeterministic() err = %v, want nil", err)
			}
			if diff := cmp.Diff(signature, signature2); diff != "" {
				t.Fatalf("sk.SignDeterministic() not reproducible (-first +second):\n%s", diff)
			}
			if ok, err := pk.Verify(m, signature, nil); !ok || err != nil {
				t.Fatalf("pk.Verify() = %v, %v, want true, nil", ok, err)
			}
			// Deterministic signing is exactly signing with PK.seed.
			explicit, err := sk.SignWithRandomness(m, nil, sk.pkSeed)
			if err != nil {
				t.Fatalf("sk.SignWithRandomness() err = %v, want nil", err)
			}
			if !bytes.Equal(explicit, signature) {
				t.Error("sk.SignWithRandomness(PK.seed) != sk.SignDeterministic()")
			}
		})
	}
}

func TestSignWithRandomness(t *testing.T) {
	for _, id := range fastIDs {
		t.Run(id.String(), func(t *testing.T) {
			p := mustLookup(id)
			sk, pk := mustKeyGen(t, p)
			msg := []byte("message")
			addrnd := bytes.Repeat([]byte{0x5a}, p.N())
			sig1, err := sk.SignWithRandomness(msg, nil, addrnd)
			if err != nil {
				t.Fatalf("sk.SignWithRandomness() err = %v, want nil", err)
			}
			sig2, err := sk.SignWithRandomness(msg, nil, addrnd)
			if err != nil {
				t.Fatalf("sk.SignWithRandomness() err = %v, want nil", err)
			}
			if !bytes.Equal(sig1, sig2) {
				t.Error("signatures with the same randomizer differ")
			}
			if ok, err := pk.Verify(msg, sig1, nil); !ok || err != nil {
				t.Errorf("pk.Verify() = %v, %v, want true, nil", ok, err)
			}
			if _, err := sk.SignWithRandomness(msg, nil, addrnd[1:]); !errors.Is(err, ErrInvalidRandomnessLength) {
				t.Errorf("sk.SignWithRandomness(short) err = %v, want %v", err, ErrInvalidRandomnessLength)
			}
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	p := mustLookup(SHA2_128f)
	sk, pk := mustKeyGen(t, p)
	_, otherPK := mustKeyGen(t, p)
	msg := []byte("test")
	ctx := []byte("ctx")
	sig, err := sk.Sign(msg, ctx)
	if err != nil {
		t.Fatalf("sk.Sign() err = %v, want nil", err)
	}
	flip := func(i int) []byte {
		s := slices.Clone(sig)
		s[i] ^= 0x80
		return s
	}
	for _, tc := range []struct {
		name string
		pk   *PublicKey
		msg  []byte
		sig  []byte
		ctx  []byte
	}{
		{"wrong message", pk, []byte("tesu"), sig, ctx},
		{"wrong context", pk, msg, sig, []byte("cty")},
		{"missing context", pk, msg, sig, nil},
		{"wrong key", otherPK, msg, sig, ctx},
		{"flipped randomizer", pk, msg, flip(0), ctx},
		{"flipped FORS", pk, msg, flip(p.N() + 1), ctx},
		{"flipped hypertree", pk, msg, flip(p.N() + p.forsSigLength() + 3), ctx},
		{"flipped last byte", pk, msg, flip(len(sig) - 1), ctx},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := tc.pk.Verify(tc.msg, tc.sig, tc.ctx)
			if err != nil {
				t.Fatalf("Verify() err = %v, want nil", err)
			}
			if ok {
				t.Error("Verify() = true, want false")
			}
		})
	}
}

func TestVerifyInvalidSignatureLength(t *testing.T) {
	p := mustLookup(SHAKE_128f)
	sk, pk := mustKeyGen(t, p)
	sig, err := sk.Sign([]byte("m"), nil)
	if err != nil {
		t.Fatalf("sk.Sign() err = %v, want nil", err)
	}
	for _, tc := range []struct {
		name string
		sig  []byte
	}{
		{"empty", nil},
		{"truncated", sig[:len(sig)-1]},
		{"extended", append(slices.Clone(sig), 0)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := pk.Verify([]byte("m"), tc.sig, nil)
			if ok || !errors.Is(err, ErrInvalidSignatureLength) {
				t.Errorf("pk.Verify() = %v, %v, want false, %v", ok, err, ErrInvalidSignatureLength)
			}
		})
	}
}

func TestCrossParameterSetVerify(t *testing.T) {
	// Same n, different tree shape: signatures must not verify across sets.
	skS, _ := mustKeyGen(t, mustLookup(SHA2_128f))
	sig, err := skS.Sign([]byte("m"), nil)
	if err != nil {
		t.Fatalf("Sign() err = %v, want nil", err)
	}
	// Reinterpret the public key bytes under the SHAKE family.
	pkOther, err := mustLookup(SHAKE_128f).DecodePublicKey(skS.PublicKey().Encode())
	if err != nil {
		t.Fatalf("DecodePublicKey() err = %v, want nil", err)
	}
	if ok, err := pkOther.Verify([]byte("m"), sig, nil); ok || err != nil {
		t.Errorf("Verify() under another hash family = %v, %v, want false, nil", ok, err)
	}
	pk128s, err := mustLookup(SHA2_128s).DecodePublicKey(skS.PublicKey().Encode())
	if err != nil {
		t.Fatalf("DecodePublicKey() err = %v, want nil", err)
	}
	if ok, err := pk128s.Verify([]byte("m"), sig, nil); ok || !errors.Is(err, ErrInvalidSignatureLength) {
		t.Errorf("Verify() under another tree shape = %v, %v, want false, %v", ok, err, ErrInvalidSignatureLength)
	}
}

func TestContextTooLong(t *testing.T) {
	p := mustLookup(SHA2_128f)
	sk, pk := mustKeyGen(t, p)
	maxCtx := make([]byte, MaxContextLength)
	sig, err := sk.Sign([]byte("m"), maxCtx)
	if err != nil {
		t.Fatalf("sk.Sign(255-byte context) err = %v, want nil", err)
	}
	if ok, err := pk.Verify([]byte("m"), sig, maxCtx); !ok || err != nil {
		t.Errorf("pk.Verify(255-byte context) = %v, %v, want true, nil", ok, err)
	}
	longCtx := make([]byte, MaxContextLength+1)
	if _, err := sk.Sign([]byte("m"), longCtx); !errors.Is(err, ErrContextTooLong) {
		t.Errorf("sk.Sign(256-byte context) err = %v, want %v", err, ErrContextTooLong)
	}
	if _, err := sk.SignDeterministic([]byte("m"), longCtx); !errors.Is(err, ErrContextTooLong) {
		t.Errorf("sk.SignDeterministic(256-byte context) err = %v, want %v", err, ErrContextTooLong)
	}
	if _, err := pk.Verify([]byte("m"), sig, longCtx); !errors.Is(err, ErrContextTooLong) {
		t.Errorf("pk.Verify(256-byte context) err = %v, want %v", err, ErrContextTooLong)
	}
}

func TestEncodeMessage(t *testing.T) {
	got, err := EncodeMessage([]byte{0xaa, 0xbb}, []byte{0x01, 0x02, 0x03})
	if err != nil {
		t.Fatalf("EncodeMessage() err = %v, want nil", err)
	}
	want := []byte{0x00, 0x03, 0x01, 0x02, 0x03, 0xaa, 0xbb}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeMessage() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeKeys(t *testing.T) {
	for _, id := range IDs() {
		t.Run(id.String(), func(t *testing.T) {
			p := mustLookup(id)
			seed := make([]byte, p.SeedLength())
			rand.Read(seed)
			sk, pk, err := p.KeyFromSeed(seed)
			if err != nil {
				t.Fatalf("KeyFromSeed() err = %v, want nil", err)
			}
			skEnc := sk.Encode()
			if len(skEnc) != p.SecretKeyLength() {
				t.Fatalf("len(sk.Encode()) = %d, want %d", len(skEnc), p.SecretKeyLength())
			}
			if !bytes.Equal(skEnc[:len(seed)], seed) {
				t.Error("sk.Encode() does not start with SK.seed || SK.prf || PK.seed")
			}
			pkEnc := pk.Encode()
			if diff := cmp.Diff(skEnc[2*p.N():], pkEnc); diff != "" {
				t.Errorf("public key is not the tail of the secret key (-want +got):\n%s", diff)
			}
			skDec, err := p.DecodeSecretKey(skEnc)
			if err != nil {
				t.Fatalf("DecodeSecretKey() err = %v, want nil", err)
			}
			if diff := cmp.Diff(skEnc, skDec.Encode()); diff != "" {
				t.Errorf("DecodeSecretKey().Encode() mismatch (-want +got):\n%s", diff)
			}
			if err := skDec.Validate(); err != nil {
				t.Errorf("skDec.Validate() err = %v, want nil", err)
			}
			pkDec, err := p.DecodePublicKey(pkEnc)
			if err != nil {
				t.Fatalf("DecodePublicKey() err = %v, want nil", err)
			}
			if !pkDec.Equal(pk) || !pkDec.Equal(skDec.PublicKey()) {
				t.Error("decoded public key differs from the original")
			}
			if _, err := p.DecodePublicKey(pkEnc[1:]); !errors.Is(err, ErrInvalidKeyLength) {
				t.Errorf("DecodePublicKey(short) err = %v, want %v", err, ErrInvalidKeyLength)
			}
			if _, err := p.DecodeSecretKey(append(skEnc, 0)); !errors.Is(err, ErrInvalidKeyLength) {
				t.Errorf("DecodeSecretKey(long) err = %v, want %v", err, ErrInvalidKeyLength)
			}
		})
	}
}

func TestKeyFromSeedDeterministic(t *testing.T) {
	p := mustLookup(SHAKE_128f)
	seed := bytes.Repeat([]byte{7}, p.SeedLength())
	sk1, _, err := p.KeyFromSeed(seed)
	if err != nil {
		t.Fatalf("KeyFromSeed() err = %v, want nil", err)
	}
	sk2, _, err := p.KeyFromSeed(seed)
	if err != nil {
		t.Fatalf("KeyFromSeed() err = %v, want nil", err)
	}
	if diff := cmp.Diff(sk1.Encode(), sk2.Encode()); diff != "" {
		t.Errorf("KeyFromSeed() not deterministic (-first +second):\n%s", diff)
	}
	if _, _, err := p.KeyFromSeed(seed[1:]); !errors.Is(err, ErrInvalidKeyLength) {
		t.Errorf("KeyFromSeed(short) err = %v, want %v", err, ErrInvalidKeyLength)
	}
}

func TestValidateDetectsTamperedRoot(t *testing.T) {
	p := mustLookup(SHA2_128f)
	sk, _ := mustKeyGen(t, p)
	enc := sk.Encode()
	enc[len(enc)-1] ^= 1
	tampered, err := p.DecodeSecretKey(enc)
	if err != nil {
		t.Fatalf("DecodeSecretKey() err = %v, want nil", err)
	}
	if err := tampered.Validate(); !errors.Is(err, ErrInconsistentKey) {
		t.Errorf("Validate() err = %v, want %v", err, ErrInconsistentKey)
	}
}

func TestSignRejectsInconsistentKey(t *testing.T) {
	p := mustLookup(SHA2_128f)
	sk, _ := mustKeyGen(t, p)
	enc := sk.Encode()
	enc[len(enc)-1] ^= 1
	tampered, err := p.DecodeSecretKey(enc)
	if err != nil {
		t.Fatalf("DecodeSecretKey() err = %v, want nil", err)
	}
	if _, err := tampered.SignDeterministic([]byte("msg"), nil); !errors.Is(err, ErrInconsistentKey) {
		t.Errorf("SignDeterministic() err = %v, want %v", err, ErrInconsistentKey)
	}
	if _, err := tampered.Sign([]byte("msg"), nil); !errors.Is(err, ErrInconsistentKey) {
		t.Errorf("Sign() err = %v, want %v", err, ErrInconsistentKey)
	}

	// A key of one parameter set decoded under another of the same size.
	other, err := mustLookup(SHAKE_128f).DecodeSecretKey(sk.Encode())
	if err != nil {
		t.Fatalf("DecodeSecretKey() err = %v, want nil", err)
	}
	if _, err := other.SignDeterministic([]byte("msg"), nil); !errors.Is(err, ErrInconsistentKey) {
		t.Errorf("SignDeterministic() under SHAKE-128f err = %v, want %v", err, ErrInconsistentKey)
	}
}

func TestWipe(t *testing.T) {
	p := mustLookup(SHA2_128f)
	sk, _ := mustKeyGen(t, p)
	sk.Wipe()
	if diff := cmp.Diff(make([]byte, p.SecretKeyLength()), sk.Encode()); diff != "" {
		t.Errorf("Encode() after Wipe() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodedKeysDoNotAliasInput(t *testing.T) {
	p := mustLookup(SHA2_128f)
	sk, _ := mustKeyGen(t, p)
	enc := sk.Encode()
	dec, err := p.DecodeSecretKey(enc)
	if err != nil {
		t.Fatalf("DecodeSecretKey() err = %v, want nil", err)
	}
	clear(enc)
	if err := dec.Validate(); err != nil {
		t.Errorf("Validate() after clearing the input err = %v, want nil", err)
	}
}

func TestKeyGenUniqueness(t *testing.T) {
	trials := 10000
	if testing.Short() {
		trials = 100
	}
	p := mustLookup(SHA2_128f)
	seen := make(map[string]bool, trials)
	for range trials {
		sk, pk := mustKeyGen(t, p)
		sk.Wipe()
		enc := string(pk.Encode())
		if seen[enc] {
			t.Fatalf("duplicate public key %x", enc)
		}
		seen[enc] = true
	}
}

func BenchmarkSign(b *testing.B) {
	for _, id := range fastIDs {
		b.Run(id.String(), func(b *testing.B) {
			sk, _, err := mustLookup(id).KeyGen()
			if err != nil {
				b.Fatal(err)
			}
			msg := []byte("benchmark")
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := sk.Sign(msg, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkVerify(b *testing.B) {
	for _, id := range fastIDs {
		b.Run(id.String(), func(b *testing.B) {
			sk, pk, err := mustLookup(id).KeyGen()
			if err != nil {
				b.Fatal(err)
			}
			msg := []byte("benchmark")
			sig, err := sk.Sign(msg, nil)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if ok, _ := pk.Verify(msg, sig, nil); !ok {
					b.Fatal("verification failed")
				}
			}
		})
	}
}
