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
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

// hashFamily provides the keyed functions of Section 11 of FIPS 205.
// Every function writes exactly len(dst) bytes into dst, and
// dst may alias any of the inputs: all inputs are absorbed before dst is
// written.
//
// For prf, prfMsg, f, h and tl, len(dst) is n. For hMsg, len(dst) is m.
type hashFamily interface {
	hMsg(dst, r, pkSeed, pkRoot, msg []byte)
	prf(dst, pkSeed, skSeed []byte, adrs *address)
	prfMsg(dst, skPrf, optRand, msg []byte)
	f(dst, pkSeed []byte, adrs *address, m1 []byte)
	h(dst, pkSeed []byte, adrs *address, left, right []byte)
	tl(dst, pkSeed []byte, adrs *address, ml []byte)
	name() string
}

// SHAKE hash family, see Section 11.1 of FIPS 205. All
// functions are SHAKE256 with an output length of len(dst).
type shakeFamily struct{}

var _ hashFamily = shakeFamily{}

func shakeSum(dst []byte, inputs ...[]byte) {
	s := sha3.NewShake256()
	for _, in := range inputs {
		s.Write(in)
	}
	s.Read(dst)
}

func (shakeFamily) name() string { return "SHAKE" }

func (shakeFamily) hMsg(dst, r, pkSeed, pkRoot, msg []byte) {
	shakeSum(dst, r, pkSeed, pkRoot, msg)
}

func (shakeFamily) prf(dst, pkSeed, skSeed []byte, adrs *address) {
	shakeSum(dst, pkSeed, adrs[:], skSeed)
}

func (shakeFamily) prfMsg(dst, skPrf, optRand, msg []byte) {
	shakeSum(dst, skPrf, optRand, msg)
}

func (shakeFamily) f(dst, pkSeed []byte, adrs *address, m1 []byte) {
	shakeSum(dst, pkSeed, adrs[:], m1)
}

func (shakeFamily) h(dst, pkSeed []byte, adrs *address, left, right []byte) {
	shakeSum(dst, pkSeed, adrs[:], left, right)
}

func (shakeFamily) tl(dst, pkSeed []byte, adrs *address, ml []byte) {
	shakeSum(dst, pkSeed, adrs[:], ml)
}

// SHA2 hash family, see Section 11.2 of FIPS 205.
//
// Security category 1 (n = 16) uses SHA-256 throughout. Categories 3 and 5
// (n = 24 and n = 32) switch H, T_l, H_msg and PRF_msg over to SHA-512, while
// PRF and F stay on SHA-256.
type sha2Family struct {
	// wide selects the SHA-512 based functions of categories 3 and 5.
	wide bool
}

var _ hashFamily = sha2Family{}

// zeroPad holds enough zeroes to fill PK.seed up to a SHA-512 block.
var zeroPad [sha512.BlockSize]byte

func (s sha2Family) name() string { return "SHA2" }

// newWide returns the hash used for H, T_l, H_msg and PRF_msg together with
// its block size.
func (s sha2Family) newWide() (func() hash.Hash, int) {
	if s.wide {
		return sha512.New, sha512.BlockSize
	}
	return sha256.New, sha256.BlockSize
}

// keyedSum computes Trunc_n(Hash(PK.seed || toByte(0, block - n) || ADRS^c || inputs...)).
func keyedSum(newHash func() hash.Hash, blockSize int, dst, pkSeed []byte, adrs *address, inputs ...[]byte) {
	hh := newHash()
	hh.Write(pkSeed)
	hh.Write(zeroPad[:blockSize-len(pkSeed)])
	c := adrs.compress()
	hh.Write(c[:])
	for _, in := range inputs {
		hh.Write(in)
	}
	var buf [sha512.Size]byte
	copy(dst, hh.Sum(buf[:0]))
}

// mgf1 is the mask generation function of RFC 8017, Appendix B.2.1.
func mgf1(newHash func() hash.Hash, dst, seed []byte) {
	hh := newHash()
	var ctr [4]byte
	var buf [sha512.Size]byte
	for i, off := uint32(0), 0; off < len(dst); i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		hh.Reset()
		hh.Write(seed)
		hh.Write(ctr[:])
		off += copy(dst[off:], hh.Sum(buf[:0]))
	}
}

func (s sha2Family) hMsg(dst, r, pkSeed, pkRoot, msg []byte) {
	newHash, _ := s.newWide()
	hh := newHash()
	hh.Write(r)
	hh.Write(pkSeed)
	hh.Write(pkRoot)
	hh.Write(msg)
	seed := make([]byte, 0, len(r)+len(pkSeed)+sha512.Size)
	seed = append(seed, r...)
	seed = append(seed, pkSeed...)
	seed = hh.Sum(seed)
	mgf1(newHash, dst, seed)
}

func (s sha2Family) prf(dst, pkSeed, skSeed []byte, adrs *address) {
	keyedSum(sha256.New, sha256.BlockSize, dst, pkSeed, adrs, skSeed)
}

func (s sha2Family) prfMsg(dst, skPrf, optRand, msg []byte) {
	newHash, _ := s.newWide()
	mac := hmac.New(newHash, skPrf)
	mac.Write(optRand)
	mac.Write(msg)
	var buf [sha512.Size]byte
	copy(dst, mac.Sum(buf[:0]))
}

func (s sha2Family) f(dst, pkSeed []byte, adrs *address, m1 []byte) {
	keyedSum(sha256.New, sha256.BlockSize, dst, pkSeed, adrs, m1)
}

func (s sha2Family) h(dst, pkSeed []byte, adrs *address, left, right []byte) {
	newHash, blockSize := s.newWide()
	keyedSum(newHash, blockSize, dst, pkSeed, adrs, left, right)
}

func (s sha2Family) tl(dst, pkSeed []byte, adrs *address, ml []byte) {
	newHash, blockSize := s.newWide()
	keyedSum(newHash, blockSize, dst, pkSeed, adrs, ml)
}
