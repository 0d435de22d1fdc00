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
	"encoding/binary"
	"fmt"
)

// addressSize is the size of an uncompressed address in bytes.
const addressSize = 32

// compressedAddressSize is the size of the address encoding used by the SHA2
// hash families.
const compressedAddressSize = 22

// An address is a 32-byte buffer with added structure, see Table 1 of FIPS 205.
//
//	| layer (4 bytes) | tree (12 bytes) | role (4 bytes) | role specific (12 bytes) |
//
// The role specific words are:
//
//	WOTS_HASH:  | key pair | chain            | hash         |
//	WOTS_PK:    | key pair | 0                | 0            |
//	TREE:       | 0        | tree height      | tree index   |
//	FORS_TREE:  | key pair | tree height      | tree index   |
//	FORS_ROOTS: | key pair | 0                | 0            |
//	WOTS_PRF:   | key pair | chain            | 0            |
//	FORS_PRF:   | key pair | 0                | tree index   |
type address [addressSize]byte

// addressType tags the role an address plays in a keyed hash call. The
// numeric values are part of the wire format and must not change.
type addressType uint32

const (
	addressWOTSHash addressType = iota
	addressWOTSPk
	addressTree
	addressFORSTree
	addressFORSRoots
	addressWOTSPrf
	addressFORSPrf
)

func (t addressType) String() string {
	switch t {
	case addressWOTSHash:
		return "WOTS_HASH"
	case addressWOTSPk:
		return "WOTS_PK"
	case addressTree:
		return "TREE"
	case addressFORSTree:
		return "FORS_TREE"
	case addressFORSRoots:
		return "FORS_ROOTS"
	case addressWOTSPrf:
		return "WOTS_PRF"
	case addressFORSPrf:
		return "FORS_PRF"
	default:
		return fmt.Sprintf("addressType(%d)", uint32(t))
	}
}

// Word offsets within the address.
const (
	offLayer    = 0
	offTree     = 4
	offType     = 16
	offKeyPair  = 20
	offChain    = 24
	offHash     = 28
	offHeight   = offChain
	offTreeIdx  = offHash
	offTreeLow  = 8
	offTreeHigh = offTree
)

func newAddress() *address {
	return &address{}
}

// derive returns a fresh address with role t that keeps the layer, tree and
// key pair coordinates of a.
func (a *address) derive(t addressType) *address {
	res := *a
	res.setTypeAndClear(t)
	res.setKeyPairAddress(a.keyPairAddress())
	return &res
}

func (a *address) setLayerAddress(l uint32) {
	binary.BigEndian.PutUint32(a[offLayer:], l)
}

// setTreeAddress sets the 12-byte tree field. Tree indices of all parameter
// sets fit in 64 bits, so the most significant word is always zero.
func (a *address) setTreeAddress(t uint64) {
	binary.BigEndian.PutUint32(a[offTreeHigh:], 0)
	binary.BigEndian.PutUint64(a[offTreeLow:], t)
}

func (a *address) setTypeAndClear(t addressType) {
	binary.BigEndian.PutUint32(a[offType:], uint32(t))
	clear(a[offKeyPair:])
}

func (a *address) typ() addressType {
	return addressType(binary.BigEndian.Uint32(a[offType:]))
}

func (a *address) setKeyPairAddress(i uint32) {
	binary.BigEndian.PutUint32(a[offKeyPair:], i)
}

func (a *address) keyPairAddress() uint32 {
	return binary.BigEndian.Uint32(a[offKeyPair:])
}

func (a *address) setChainAddress(i uint32) {
	binary.BigEndian.PutUint32(a[offChain:], i)
}

func (a *address) setTreeHeight(z uint32) {
	binary.BigEndian.PutUint32(a[offHeight:], z)
}

func (a *address) setHashAddress(i uint32) {
	binary.BigEndian.PutUint32(a[offHash:], i)
}

func (a *address) setTreeIndex(i uint32) {
	binary.BigEndian.PutUint32(a[offTreeIdx:], i)
}

func (a *address) treeIndex() uint32 {
	return binary.BigEndian.Uint32(a[offTreeIdx:])
}

// compress returns ADRS^c, see Section 11.2 of FIPS 205.
//
//	| layer (1 byte) | tree (8 bytes) | role (1 byte) | role specific (12 bytes) |
func (a *address) compress() [compressedAddressSize]byte {
	var c [compressedAddressSize]byte
	c[0] = a[offLayer+3]
	copy(c[1:9], a[offTreeLow:offType])
	c[9] = a[offType+3]
	copy(c[10:], a[offKeyPair:])
	return c
}
