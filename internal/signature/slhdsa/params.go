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
	"math/bits"
	"sync"
)

// ID identifies one of the parameter sets of Table 2 of FIPS 205.
type ID uint8

// Parameter set identifiers. The zero value is not a valid parameter set.
const (
	SHA2_128s ID = iota + 1
	SHAKE_128s
	SHA2_128f
	SHAKE_128f
	SHA2_192s
	SHAKE_192s
	SHA2_192f
	SHAKE_192f
	SHA2_256s
	SHAKE_256s
	SHA2_256f
	SHAKE_256f

	maxID = SHAKE_256f
)

// IDs returns all valid parameter set identifiers in table order.
func IDs() []ID {
	ids := make([]ID, 0, maxID)
	for id := SHA2_128s; id <= maxID; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Valid reports whether id names a parameter set.
func (id ID) Valid() bool { return id >= SHA2_128s && id <= maxID }

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", uint8(id))
	}
	family := "SHA2"
	if id.shake() {
		family = "SHAKE"
	}
	return fmt.Sprintf("SLH-DSA-%s-%s", family, id.sizeName())
}

func (id ID) shake() bool { return id%2 == 0 }

func (id ID) sizeName() string {
	switch id {
	case SHA2_128s, SHAKE_128s:
		return "128s"
	case SHA2_128f, SHAKE_128f:
		return "128f"
	case SHA2_192s, SHAKE_192s:
		return "192s"
	case SHA2_192f, SHAKE_192f:
		return "192f"
	case SHA2_256s, SHAKE_256s:
		return "256s"
	case SHA2_256f, SHAKE_256f:
		return "256f"
	}
	return ""
}

// table2 holds one row of Table 2 of FIPS 205.
type table2 struct {
	n   uint32
	h   uint32
	d   uint32
	hp  uint32
	a   uint32
	k   uint32
	lgw uint32
	m   uint32
}

// row returns the Table 2 constants for id.
func (id ID) row() table2 {
	switch id {
	case SHA2_128s, SHAKE_128s:
		return table2{n: 16, h: 63, d: 7, hp: 9, a: 12, k: 14, lgw: 4, m: 30}
	case SHA2_128f, SHAKE_128f:
		return table2{n: 16, h: 66, d: 22, hp: 3, a: 6, k: 33, lgw: 4, m: 34}
	case SHA2_192s, SHAKE_192s:
		return table2{n: 24, h: 63, d: 7, hp: 9, a: 14, k: 17, lgw: 4, m: 39}
	case SHA2_192f, SHAKE_192f:
		return table2{n: 24, h: 66, d: 22, hp: 3, a: 8, k: 33, lgw: 4, m: 42}
	case SHA2_256s, SHAKE_256s:
		return table2{n: 32, h: 64, d: 8, hp: 8, a: 14, k: 22, lgw: 4, m: 47}
	case SHA2_256f, SHAKE_256f:
		return table2{n: 32, h: 68, d: 17, hp: 4, a: 9, k: 35, lgw: 4, m: 49}
	}
	panic(fmt.Sprintf("slhdsa: no parameters for %v", id))
}

func (id ID) hashFamily() hashFamily {
	if id.shake() {
		return shakeFamily{}
	}
	// Security category 1 is exactly the n = 16 parameter sets.
	return sha2Family{wide: id.row().n != 16}
}

// Params holds an expanded SLH-DSA parameter set. Values are immutable and
// shared; obtain them with [Lookup].
type Params struct {
	id ID

	// SLH-DSA parameters (see Table 2 of FIPS 205).
	n uint32
	// Note that h = d * hp.
	h   uint32
	d   uint32
	hp  uint32
	a   uint32
	k   uint32
	lgw uint32
	m   uint32

	// Derived parameters (Algorithm 1 and Equations 5.1 to 5.4).
	w    uint32
	len1 uint32
	len2 uint32
	len  uint32

	hash hashFamily
}

func expand(id ID) *Params {
	r := id.row()
	w := uint32(1) << r.lgw
	len1 := (8*r.n + r.lgw - 1) / r.lgw
	len2 := uint32(bits.Len32(len1*(w-1))-1)/r.lgw + 1
	return &Params{
		id: id,
		n:  r.n, h: r.h, d: r.d, hp: r.hp, a: r.a, k: r.k, lgw: r.lgw, m: r.m,
		w: w, len1: len1, len2: len2, len: len1 + len2,
		hash: id.hashFamily(),
	}
}

type tableEntry struct {
	once   sync.Once
	params *Params
}

// expanded caches parameter sets, populated at most once per ID on first use.
var expanded [maxID]tableEntry

// Lookup returns the expanded parameters for id. It is safe for concurrent
// use; each parameter set is expanded exactly once.
func Lookup(id ID) (*Params, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("slhdsa: unknown parameter set %v", id)
	}
	e := &expanded[id-1]
	e.once.Do(func() { e.params = expand(id) })
	return e.params, nil
}

// mustLookup is Lookup for identifiers known to be valid.
func mustLookup(id ID) *Params {
	p, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return p
}

// ID returns the identifier of the parameter set.
func (p *Params) ID() ID { return p.id }

// N returns the security parameter n in bytes.
func (p *Params) N() int { return int(p.n) }

// HashFamily returns "SHA2" or "SHAKE".
func (p *Params) HashFamily() string { return p.hash.name() }

// PublicKeyLength returns the length of an encoded public key.
func (p *Params) PublicKeyLength() int { return int(2 * p.n) }

// SecretKeyLength returns the length of an encoded secret key.
func (p *Params) SecretKeyLength() int { return int(4 * p.n) }

// SeedLength returns the length of the seed accepted by [Params.KeyFromSeed].
func (p *Params) SeedLength() int { return int(3 * p.n) }

// SignatureLength returns the length of a signature.
func (p *Params) SignatureLength() int {
	return int(p.n) + p.forsSigLength() + p.htSigLength()
}

func (p *Params) wotsSigLength() int { return int(p.len * p.n) }

func (p *Params) xmssSigLength() int { return int((p.len + p.hp) * p.n) }

func (p *Params) htSigLength() int { return int(p.d) * p.xmssSigLength() }

func (p *Params) forsSigLength() int { return int(p.k * (p.a + 1) * p.n) }
