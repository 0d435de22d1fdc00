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

// Algorithm 5 (chain). Writes F^steps(x) into dst, starting at chain
// position start. dst and x may be the same slice.
func (p *Params) chain(dst, x []byte, start, steps uint32, pkSeed []byte, adrs *address) {
	copy(dst, x)
	for j := start; j < start+steps; j++ {
		adrs.setHashAddress(j)
		p.hash.f(dst, pkSeed, adrs, dst)
	}
}

// wotsDigits returns the len base-w digits of msg followed by its checksum
// digits.
func (p *Params) wotsDigits(msg []byte) []uint32 {
	digits := base2b(msg, p.lgw, p.len1)
	var csum uint32
	for _, d := range digits {
		csum += p.w - 1 - d
	}
	// Left-align the checksum to a byte boundary; for lgw = 4 this is a
	// shift by 4.
	csum <<= (8 - ((p.len2 * p.lgw) & 7)) & 7
	var buf [4]byte
	enc := buf[:(p.len2*p.lgw+7)/8]
	toByte(enc, csum)
	return append(digits, base2b(enc, p.lgw, p.len2)...)
}

// Algorithm 6 (wots_pkGen). Writes the n-byte compressed WOTS+ public key
// into dst. adrs must be a WOTS_HASH address; its chain and hash words are
// overwritten.
func (p *Params) wotsPkGen(dst, skSeed, pkSeed []byte, adrs *address) {
	skAdrs := adrs.derive(addressWOTSPrf)
	tips := make([]byte, p.len*p.n)
	for i := range p.len {
		tip := tips[i*p.n : (i+1)*p.n]
		skAdrs.setChainAddress(i)
		p.hash.prf(tip, pkSeed, skSeed, skAdrs)
		adrs.setChainAddress(i)
		p.chain(tip, tip, 0, p.w-1, pkSeed, adrs)
	}
	p.hash.tl(dst, pkSeed, adrs.derive(addressWOTSPk), tips)
}

// Algorithm 7 (wots_sign). Writes the len*n-byte signature of the n-byte
// message msg into dst.
func (p *Params) wotsSign(dst, msg, skSeed, pkSeed []byte, adrs *address) {
	digits := p.wotsDigits(msg)
	skAdrs := adrs.derive(addressWOTSPrf)
	for i := range p.len {
		out := dst[i*p.n : (i+1)*p.n]
		skAdrs.setChainAddress(i)
		p.hash.prf(out, pkSeed, skSeed, skAdrs)
		adrs.setChainAddress(i)
		p.chain(out, out, 0, digits[i], pkSeed, adrs)
	}
}

// Algorithm 8 (wots_pkFromSig). Writes the n-byte public key candidate
// recovered from sig and msg into dst.
func (p *Params) wotsPkFromSig(dst, sig, msg, pkSeed []byte, adrs *address) {
	if len(sig) != p.wotsSigLength() {
		panic("slhdsa: invalid WOTS+ signature length")
	}
	digits := p.wotsDigits(msg)
	tips := make([]byte, len(sig))
	for i := range p.len {
		adrs.setChainAddress(i)
		p.chain(tips[i*p.n:(i+1)*p.n], sig[i*p.n:(i+1)*p.n], digits[i], p.w-1-digits[i], pkSeed, adrs)
	}
	p.hash.tl(dst, pkSeed, adrs.derive(addressWOTSPk), tips)
}
