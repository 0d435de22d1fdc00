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

import "crypto/subtle"

// parent moves one layer up the hypertree: the hp least significant bits of
// idxTree become the leaf index and are removed from idxTree.
func (p *Params) parent(idxTree uint64) (uint64, uint32) {
	return idxTree >> p.hp, uint32(idxTree & (1<<p.hp - 1))
}

// Algorithm 12 (ht_sign). Writes d XMSS signatures into dst and reports
// whether the root reached from the top layer signature equals pkRoot.
func (p *Params) htSign(dst, msg, skSeed, pkSeed, pkRoot []byte, idxTree uint64, idxLeaf uint32) bool {
	adrs := newAddress()
	adrs.setTreeAddress(idxTree)
	sigLen := p.xmssSigLength()
	sig := dst[:sigLen]
	p.xmssSign(sig, msg, skSeed, idxLeaf, pkSeed, adrs)
	root := make([]byte, p.n)
	p.xmssPkFromSig(root, idxLeaf, sig, msg, pkSeed, adrs)
	for j := uint32(1); j < p.d; j++ {
		idxTree, idxLeaf = p.parent(idxTree)
		adrs.setLayerAddress(j)
		adrs.setTreeAddress(idxTree)
		sig = dst[int(j)*sigLen : int(j+1)*sigLen]
		p.xmssSign(sig, root, skSeed, idxLeaf, pkSeed, adrs)
		p.xmssPkFromSig(root, idxLeaf, sig, root, pkSeed, adrs)
	}
	return subtle.ConstantTimeCompare(root, pkRoot) == 1
}

// Algorithm 13 (ht_verify).
func (p *Params) htVerify(msg, sigHT, pkSeed []byte, idxTree uint64, idxLeaf uint32, pkRoot []byte) bool {
	if len(sigHT) != p.htSigLength() {
		panic("slhdsa: invalid hypertree signature length")
	}
	adrs := newAddress()
	adrs.setTreeAddress(idxTree)
	sigLen := p.xmssSigLength()
	node := make([]byte, p.n)
	p.xmssPkFromSig(node, idxLeaf, sigHT[:sigLen], msg, pkSeed, adrs)
	for j := uint32(1); j < p.d; j++ {
		idxTree, idxLeaf = p.parent(idxTree)
		adrs.setLayerAddress(j)
		adrs.setTreeAddress(idxTree)
		p.xmssPkFromSig(node, idxLeaf, sigHT[int(j)*sigLen:int(j+1)*sigLen], node, pkSeed, adrs)
	}
	return subtle.ConstantTimeCompare(node, pkRoot) == 1
}
