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

// Algorithm 9 (xmss_node). Writes the node at height z and index i into dst.
func (p *Params) xmssNode(dst, skSeed []byte, i, z uint32, pkSeed []byte, adrs *address) {
	if z == 0 {
		adrs.setTypeAndClear(addressWOTSHash)
		adrs.setKeyPairAddress(i)
		p.wotsPkGen(dst, skSeed, pkSeed, adrs)
		return
	}
	right := make([]byte, p.n)
	p.xmssNode(dst, skSeed, i<<1, z-1, pkSeed, adrs)
	p.xmssNode(right, skSeed, (i<<1)+1, z-1, pkSeed, adrs)
	adrs.setTypeAndClear(addressTree)
	adrs.setTreeHeight(z)
	adrs.setTreeIndex(i)
	p.hash.h(dst, pkSeed, adrs, dst, right)
}

// Algorithm 10 (xmss_sign). Writes the WOTS+ signature of msg followed by
// the hp-node authentication path of leaf idx into dst.
func (p *Params) xmssSign(dst, msg, skSeed []byte, idx uint32, pkSeed []byte, adrs *address) {
	wotsSig, auth := dst[:p.wotsSigLength()], dst[p.wotsSigLength():]
	for j := range p.hp {
		p.xmssNode(auth[j*p.n:(j+1)*p.n], skSeed, (idx>>j)^1, j, pkSeed, adrs)
	}
	adrs.setTypeAndClear(addressWOTSHash)
	adrs.setKeyPairAddress(idx)
	p.wotsSign(wotsSig, msg, skSeed, pkSeed, adrs)
}

// Algorithm 11 (xmss_pkFromSig). Writes the XMSS root candidate into dst.
func (p *Params) xmssPkFromSig(dst []byte, idx uint32, sigXMSS, msg, pkSeed []byte, adrs *address) {
	if len(sigXMSS) != p.xmssSigLength() {
		panic("slhdsa: invalid XMSS signature length")
	}
	wotsSig, auth := sigXMSS[:p.wotsSigLength()], sigXMSS[p.wotsSigLength():]
	adrs.setTypeAndClear(addressWOTSHash)
	adrs.setKeyPairAddress(idx)
	p.wotsPkFromSig(dst, wotsSig, msg, pkSeed, adrs)
	adrs.setTypeAndClear(addressTree)
	adrs.setTreeIndex(idx)
	p.climb(dst, idx, auth, pkSeed, adrs)
}

// climb hashes node up an authentication path, leaving the root in node.
// leafIdx selects left or right at each level; adrs must hold the leaf's tree
// index and the tree type. Shared by XMSS (Algorithm 11) and FORS
// (Algorithm 17).
func (p *Params) climb(node []byte, leafIdx uint32, auth, pkSeed []byte, adrs *address) {
	height := uint32(len(auth)) / p.n
	for k := range height {
		adrs.setTreeHeight(k + 1)
		// Shifting right by one is floor((i - 1) / 2) for odd i and i / 2
		// for even i.
		adrs.setTreeIndex(adrs.treeIndex() >> 1)
		authK := auth[k*p.n : (k+1)*p.n]
		if (leafIdx>>k)&1 == 0 {
			p.hash.h(node, pkSeed, adrs, node, authK)
		} else {
			p.hash.h(node, pkSeed, adrs, authK, node)
		}
	}
}
