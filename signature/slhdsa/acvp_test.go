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
	"crypto"
	"fmt"
	"testing"

	"github.com/cloudflare/circl/xof"
	"github.com/google/go-cmp/cmp"
	"github.com/tink-crypto/slhdsa-go/signature/slhdsa"
	"github.com/tink-crypto/slhdsa-go/testutil"
)

type acvpKeyGenSuite struct {
	testutil.Suite
	TestGroups []*acvpKeyGenGroup `json:"testGroups"`
}

type acvpKeyGenGroup struct {
	testutil.Group
	ParameterSet string            `json:"parameterSet"`
	Tests        []*acvpKeyGenCase `json:"tests"`
}

type acvpKeyGenCase struct {
	testutil.Case
	SKSeed testutil.HexBytes `json:"skSeed"`
	SKPrf  testutil.HexBytes `json:"skPrf"`
	PKSeed testutil.HexBytes `json:"pkSeed"`
	SK     testutil.HexBytes `json:"sk"`
	PK     testutil.HexBytes `json:"pk"`
}

type acvpSigGenSuite struct {
	testutil.Suite
	TestGroups []*acvpSigGenGroup `json:"testGroups"`
}

type acvpSigGenGroup struct {
	testutil.Group
	ParameterSet       string            `json:"parameterSet"`
	SignatureInterface string            `json:"signatureInterface"`
	PreHash            string            `json:"preHash"`
	Deterministic      bool              `json:"deterministic"`
	Tests              []*acvpSigGenCase `json:"tests"`
}

type acvpSigGenCase struct {
	testutil.Case
	SK        testutil.HexBytes `json:"sk"`
	Message   testutil.HexBytes `json:"message"`
	Context   testutil.HexBytes `json:"context"`
	HashAlg   string            `json:"hashAlg"`
	Signature testutil.HexBytes `json:"signature"`
}

var acvpHashes = map[string]crypto.Hash{
	"SHA2-224":     crypto.SHA224,
	"SHA2-256":     crypto.SHA256,
	"SHA2-384":     crypto.SHA384,
	"SHA2-512":     crypto.SHA512,
	"SHA2-512/224": crypto.SHA512_224,
	"SHA2-512/256": crypto.SHA512_256,
	"SHA3-224":     crypto.SHA3_224,
	"SHA3-256":     crypto.SHA3_256,
	"SHA3-384":     crypto.SHA3_384,
	"SHA3-512":     crypto.SHA3_512,
}

var acvpXOFs = map[string]xof.ID{
	"SHAKE-128": xof.SHAKE128,
	"SHAKE-256": xof.SHAKE256,
}

func TestACVPKeyFromSeed(t *testing.T) {
	suite := new(acvpKeyGenSuite)
	if err := testutil.PopulateSuite(suite, "slhdsa_acvp_keygen_test.json"); err != nil {
		t.Fatalf("testutil.PopulateSuite() err = %v, want nil", err)
	}
	for _, g := range suite.TestGroups {
		ps, err := slhdsa.ParseParameterSet(g.ParameterSet)
		if err != nil {
			t.Fatalf("slhdsa.ParseParameterSet(%q) err = %v, want nil", g.ParameterSet, err)
		}
		for _, tc := range g.Tests {
			t.Run(fmt.Sprintf("%v/%d", ps, tc.CaseID), func(t *testing.T) {
				if testing.Short() && ps.SignatureType() == slhdsa.SmallSignature {
					t.Skipf("%v is slow", ps)
				}
				var seed []byte
				seed = append(seed, tc.SKSeed...)
				seed = append(seed, tc.SKPrf...)
				seed = append(seed, tc.PKSeed...)
				priv, pub, err := slhdsa.KeyFromSeed(seed, ps)
				if err != nil {
					t.Fatalf("slhdsa.KeyFromSeed() err = %v, want nil", err)
				}
				if diff := cmp.Diff([]byte(tc.SK), priv); diff != "" {
					t.Errorf("private key mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff([]byte(tc.PK), pub); diff != "" {
					t.Errorf("public key mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

// TestACVPDeterministicSigGen checks the deterministic external-interface
// vectors through the Signer and the pre-hash functions.
func TestACVPDeterministicSigGen(t *testing.T) {
	suite := new(acvpSigGenSuite)
	if err := testutil.PopulateSuite(suite, "slhdsa_acvp_siggen_test.json"); err != nil {
		t.Fatalf("testutil.PopulateSuite() err = %v, want nil", err)
	}
	for _, g := range suite.TestGroups {
		if !g.Deterministic || g.SignatureInterface != "external" {
			continue
		}
		ps, err := slhdsa.ParseParameterSet(g.ParameterSet)
		if err != nil {
			t.Fatalf("slhdsa.ParseParameterSet(%q) err = %v, want nil", g.ParameterSet, err)
		}
		for _, tc := range g.Tests {
			name := fmt.Sprintf("%v/%s/%d", ps, g.PreHash, tc.CaseID)
			t.Run(name, func(t *testing.T) {
				if testing.Short() && ps.SignatureType() == slhdsa.SmallSignature {
					t.Skipf("%v is slow", ps)
				}
				switch g.PreHash {
				case "pure":
					checkACVPPure(t, ps, tc)
				case "preHash":
					checkACVPPreHash(t, ps, tc)
				default:
					t.Fatalf("unknown preHash %q", g.PreHash)
				}
			})
		}
	}
}

func checkACVPPure(t *testing.T, ps slhdsa.ParameterSet, tc *acvpSigGenCase) {
	t.Helper()
	priv := mustNewPrivateKey(t, tc.SK, 0, mustNewParameters(t, ps, slhdsa.VariantNoPrefix))
	sig := mustSign(t, priv, tc.Message, slhdsa.WithContext(tc.Context), slhdsa.WithDeterministicSigning())
	if diff := cmp.Diff([]byte(tc.Signature), sig); diff != "" {
		t.Fatalf("signature mismatch (-want +got):\n%s", diff)
	}
	v, err := slhdsa.NewVerifier(priv.Public(), slhdsa.WithContext(tc.Context))
	if err != nil {
		t.Fatalf("slhdsa.NewVerifier() err = %v, want nil", err)
	}
	if err := v.Verify(tc.Signature, tc.Message); err != nil {
		t.Errorf("v.Verify() err = %v, want nil", err)
	}
}

func checkACVPPreHash(t *testing.T, ps slhdsa.ParameterSet, tc *acvpSigGenCase) {
	t.Helper()
	var (
		sig []byte
		err error
	)
	if h, ok := acvpHashes[tc.HashAlg]; ok {
		sig, err = slhdsa.SignPreHashDeterministic(tc.Message, tc.Context, tc.SK, ps, h)
	} else if x, ok := acvpXOFs[tc.HashAlg]; ok {
		sig, err = slhdsa.SignPreHashXOFDeterministic(tc.Message, tc.Context, tc.SK, ps, x)
	} else {
		t.Fatalf("unknown hashAlg %q", tc.HashAlg)
	}
	if err != nil {
		t.Fatalf("signing with %s err = %v, want nil", tc.HashAlg, err)
	}
	if diff := cmp.Diff([]byte(tc.Signature), sig); diff != "" {
		t.Fatalf("signature mismatch (-want +got):\n%s", diff)
	}
}
