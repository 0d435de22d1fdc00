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

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/tink-crypto/slhdsa-go/insecuresecretdataaccess"
	"github.com/tink-crypto/slhdsa-go/secretdata"
	"github.com/tink-crypto/slhdsa-go/signature/slhdsa"
)

const defaultParameterSet = "SLH-DSA-SHA2-128s"

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parameterSetFlag(fs *flag.FlagSet) *string {
	return fs.String("params", defaultParameterSet, "parameter set name, see 'slhdsa params'")
}

// readBase64File reads a file holding standard base64 surrounded by optional
// whitespace.
func readBase64File(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(raw)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func writeBase64File(path string, b []byte, perm os.FileMode) error {
	return os.WriteFile(path, []byte(base64.StdEncoding.EncodeToString(b)+"\n"), perm)
}

// readMessage reads the file at path, or stdin for "-".
func readMessage(e *env, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(e.stdin)
	}
	return os.ReadFile(path)
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("missing -%s", name)
	}
	return nil
}

func runKeygen(e *env, args []string) error {
	fs := newFlagSet(e, "keygen")
	params := parameterSetFlag(fs)
	out := fs.String("out", "", "write <out>.priv and <out>.pub instead of printing both keys")
	seedPath := fs.String("seed", "", "derive the key from the base64 seed (SK.seed || SK.prf || PK.seed) in this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ps, err := slhdsa.ParseParameterSet(*params)
	if err != nil {
		return err
	}
	var priv, pub []byte
	if *seedPath != "" {
		seed, err := readBase64File(*seedPath)
		if err != nil {
			return err
		}
		defer clear(seed)
		priv, pub, err = slhdsa.KeyFromSeed(seed, ps)
		if err != nil {
			return err
		}
	} else {
		priv, pub, err = slhdsa.GenerateKeyPair(ps)
		if err != nil {
			return err
		}
	}
	defer clear(priv)
	if *out == "" {
		fmt.Fprintf(e.stdout, "private: %s\n", base64.StdEncoding.EncodeToString(priv))
		fmt.Fprintf(e.stdout, "public: %s\n", base64.StdEncoding.EncodeToString(pub))
		return nil
	}
	if err := writeBase64File(*out+".priv", priv, 0o600); err != nil {
		return err
	}
	if err := writeBase64File(*out+".pub", pub, 0o644); err != nil {
		return err
	}
	e.logger.Printf("wrote %s.priv and %s.pub (%v)", *out, *out, ps)
	return nil
}

// loadPrivateKey reads a private key and checks that its PK.root matches
// its seeds.
func loadPrivateKey(path string, ps slhdsa.ParameterSet) (*slhdsa.PrivateKey, error) {
	raw, err := readBase64File(path)
	if err != nil {
		return nil, err
	}
	defer clear(raw)
	params, err := slhdsa.NewParameters(ps, slhdsa.VariantNoPrefix)
	if err != nil {
		return nil, err
	}
	priv, err := slhdsa.NewPrivateKey(secretdata.NewBytesFromData(raw, insecuresecretdataaccess.Token{}), 0, params)
	if err != nil {
		return nil, err
	}
	if err := priv.Validate(); err != nil {
		return nil, err
	}
	return priv, nil
}

func runPubkey(e *env, args []string) error {
	fs := newFlagSet(e, "pubkey")
	params := parameterSetFlag(fs)
	keyPath := fs.String("key", "", "private key file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("key", *keyPath); err != nil {
		return err
	}
	ps, err := slhdsa.ParseParameterSet(*params)
	if err != nil {
		return err
	}
	priv, err := loadPrivateKey(*keyPath, ps)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, base64.StdEncoding.EncodeToString(priv.Public().KeyBytes()))
	return nil
}

func runSign(e *env, args []string) error {
	fs := newFlagSet(e, "sign")
	params := parameterSetFlag(fs)
	keyPath := fs.String("key", "", "private key file")
	in := fs.String("in", "-", "message file, - for stdin")
	ctx := fs.String("ctx", "", "context string, at most 255 bytes")
	deterministic := fs.Bool("deterministic", false, "use PK.seed instead of fresh randomness")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("key", *keyPath); err != nil {
		return err
	}
	ps, err := slhdsa.ParseParameterSet(*params)
	if err != nil {
		return err
	}
	priv, err := loadPrivateKey(*keyPath, ps)
	if err != nil {
		return err
	}
	msg, err := readMessage(e, *in)
	if err != nil {
		return err
	}
	opts := []slhdsa.Option{slhdsa.WithContext([]byte(*ctx))}
	if *deterministic {
		opts = append(opts, slhdsa.WithDeterministicSigning())
	}
	signer, err := slhdsa.NewSigner(priv, opts...)
	if err != nil {
		return err
	}
	defer signer.Close()
	sig, err := signer.Sign(msg)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, base64.StdEncoding.EncodeToString(sig))
	return nil
}

func loadPublicKey(path string, ps slhdsa.ParameterSet) (*slhdsa.PublicKey, error) {
	raw, err := readBase64File(path)
	if err != nil {
		return nil, err
	}
	params, err := slhdsa.NewParameters(ps, slhdsa.VariantNoPrefix)
	if err != nil {
		return nil, err
	}
	return slhdsa.NewPublicKey(raw, 0, params)
}

func runVerify(e *env, args []string) error {
	fs := newFlagSet(e, "verify")
	params := parameterSetFlag(fs)
	pubPath := fs.String("pub", "", "public key file")
	sigPath := fs.String("sig", "", "signature file")
	in := fs.String("in", "-", "message file, - for stdin")
	ctx := fs.String("ctx", "", "context string, at most 255 bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("pub", *pubPath); err != nil {
		return err
	}
	if err := requireFlag("sig", *sigPath); err != nil {
		return err
	}
	ps, err := slhdsa.ParseParameterSet(*params)
	if err != nil {
		return err
	}
	pub, err := loadPublicKey(*pubPath, ps)
	if err != nil {
		return err
	}
	sig, err := readBase64File(*sigPath)
	if err != nil {
		return err
	}
	msg, err := readMessage(e, *in)
	if err != nil {
		return err
	}
	verifier, err := slhdsa.NewVerifier(pub, slhdsa.WithContext([]byte(*ctx)))
	if err != nil {
		return err
	}
	if err := verifier.Verify(sig, msg); err != nil {
		if errors.Is(err, slhdsa.ErrVerificationFailed) {
			return errVerificationFailed
		}
		return err
	}
	fmt.Fprintln(e.stdout, "OK")
	return nil
}

func runFingerprint(e *env, args []string) error {
	fs := newFlagSet(e, "fingerprint")
	params := parameterSetFlag(fs)
	pubPath := fs.String("pub", "", "public key file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("pub", *pubPath); err != nil {
		return err
	}
	ps, err := slhdsa.ParseParameterSet(*params)
	if err != nil {
		return err
	}
	pub, err := loadPublicKey(*pubPath, ps)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, hex.EncodeToString(pub.Fingerprint()))
	return nil
}

func runParams(e *env, args []string) error {
	fs := newFlagSet(e, "params")
	if err := fs.Parse(args); err != nil {
		return err
	}
	w := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHASH\tTYPE\tPUBLIC KEY\tPRIVATE KEY\tSIGNATURE")
	for _, ps := range slhdsa.ParameterSets() {
		fmt.Fprintf(w, "%v\t%v\t%v\t%d\t%d\t%d\n", ps, ps.HashType(), ps.SignatureType(), ps.PublicKeySize(), ps.PrivateKeySize(), ps.SignatureSize())
	}
	return w.Flush()
}
