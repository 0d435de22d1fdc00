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

// Algorithm 14 (fors_skGen). Writes FORS secret value idx into dst.
func (p *Params) forsSkGen(dst, skSeed, pkSeed []byte, adrs *address, idx uint32) {
	skAdrs := adrs.derive(addressFORSPrf)
	skAdrs.setTreeIndex(idx)
	p.hash.prf(dst, pkSeed, skSeed, skAdrs)
}

// Algorithm 15 (fors_node). Writes the node at height z and index i into dst.
func (p *Params) forsNode(dst, skSeed []byte, i, z uint32, pkSeed []byte, adrs *address) {
	if z == 0 {
		p.forsSkGen(dst, skSeed, pkSeed, adrs, i)
		adrs.setTreeHeight(0)
		adrs.setTreeIndex(i)
		p.hash.f(dst, pkSeed, adrs, dst)
		return
	}
	right := make([]byte, p.n)
	p.forsNode(dst, skSeed, i<<1, z-1, pkSeed, adrs)
	p.forsNode(right, skSeed, (i<<1)+1, z-1, pkSeed, adrs)
	adrs.setTreeHeight(z)
	adrs.setTreeIndex(i)
	p.hash.h(dst, pkSeed, adrs, dst, right)
}

// Algorithm 16 (fors_sign). Writes k chunks of (secret value || a-node
// authentication path) into dst.
func (p *Params) forsSign(dst, md, skSeed, pkSeed []byte, adrs *address) {
	indices := base2b(md, p.a, p.k)
	chunk := (p.a + 1) * p.n
	for i := range p.k {
		out := dst[i*chunk : (i+1)*chunk]
		p.forsSkGen(out[:p.n], skSeed, pkSeed, adrs, (i<<p.a)+indices[i])
		auth := out[p.n:]
		for j := range p.a {
			s := (indices[i] >> j) ^ 1
			p.forsNode(auth[j*p.n:(j+1)*p.n], skSeed, (i<<(p.a-j))+s, j, pkSeed, adrs)
		}
	}
}

// Algorithm 17 (fors_pkFromSig). Writes the n-byte FORS public key candidate
// into dst.
func (p *Params) forsPkFromSig(dst, sigFORS, md, pkSeed []byte, adrs *address) {
	if len(sigFORS) != p.forsSigLength() {
		panic("slhdsa: invalid FORS signature length")
	}
	indices := base2b(md, p.a, p.k)
	chunk := (p.a + 1) * p.n
	roots := make([]byte, p.k*p.n)
	for i := range p.k {
		in := sigFORS[i*chunk : (i+1)*chunk]
		node := roots[i*p.n : (i+1)*p.n]
		adrs.setTreeHeight(0)
		adrs.setTreeIndex((i << p.a) + indices[i])
		p.hash.f(node, pkSeed, adrs, in[:p.n])
		p.climb(node, indices[i], in[p.n:], pkSeed, adrs)
	}
	p.hash.tl(dst, pkSeed, adrs.derive(addressFORSRoots), roots)
}
