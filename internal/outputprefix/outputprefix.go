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

// Package outputprefix computes the key ID prefix placed in front of
// signatures made with keys that have an ID requirement.
package outputprefix

import (
	"encoding/binary"
)

const (
	// Size is the length of a key ID prefix.
	Size = 5
	// tinkStartByte is the first byte of every key ID prefix.
	tinkStartByte = byte(1)
)

// Tink returns 0x01 || big-endian keyID.
func Tink(keyID uint32) []byte {
	prefix := make([]byte, Size)
	prefix[0] = tinkStartByte
	binary.BigEndian.PutUint32(prefix[1:], keyID)
	return prefix
}

// Parse splits a prefixed output into its key ID and the remaining bytes. ok
// is false if out does not start with a key ID prefix.
func Parse(out []byte) (keyID uint32, rest []byte, ok bool) {
	if len(out) < Size || out[0] != tinkStartByte {
		return 0, nil, false
	}
	return binary.BigEndian.Uint32(out[1:Size]), out[Size:], true
}
