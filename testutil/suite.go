// Copyright 2019 Google LLC
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

// Package testutil loads the JSON test suites embedded under testdata.
package testutil

import (
	"embed"
	"encoding/hex"
	"encoding/json"
	"path"
)

// Suite represents the common elements of the top level object in a test
// suite file. The layout follows the Wycheproof JSON format. Implementations
// should embed Suite in a struct that strongly types the testGroups field.
// See suite_test.go for an example.
type Suite struct {
	Algorithm     string            `json:"algorithm"`
	NumberOfTests int               `json:"numberOfTests"`
	Notes         map[string]string `json:"notes"`
}

// Group represents the common elements of a testGroups object in a suite.
// Implementations should embed Group in a struct that strongly types its
// list of cases.
type Group struct {
	Type string `json:"type"`
}

// Case represents the common elements of a tests object in a group.
// Implementations should embed Case in a struct that contains fields
// specific to the test type.
type Case struct {
	CaseID  int      `json:"tcId"`
	Comment string   `json:"comment"`
	Result  string   `json:"result"`
	Flags   []string `json:"flags"`
}

// Results of a Case.
const (
	ResultValid      = "valid"
	ResultInvalid    = "invalid"
	ResultAcceptable = "acceptable"
)

// HasFlag reports whether c carries flag.
func (c *Case) HasFlag(flag string) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// HexBytes is a helper type for unmarshalling a byte sequence represented as a
// hex encoded string.
type HexBytes []byte

// UnmarshalText converts a hex encoded string into a sequence of bytes.
func (a *HexBytes) UnmarshalText(text []byte) error {
	decoded, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}

	*a = decoded
	return nil
}

//go:embed testdata/*.json
var testdata embed.FS

// PopulateSuite opens filename from the testdata directory and populates
// suite with the decoded JSON data.
func PopulateSuite(suite any, filename string) error {
	f, err := testdata.Open(path.Join("testdata", filename))
	if err != nil {
		return err
	}
	defer f.Close()
	parser := json.NewDecoder(f)
	if err := parser.Decode(suite); err != nil {
		return err
	}
	return nil
}
