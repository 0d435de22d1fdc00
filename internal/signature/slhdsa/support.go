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

// Algorithm 2 (toInt), restricted to at most 8 bytes.
func toInt(x []byte) uint64 {
	if len(x) > 8 {
		panic("slhdsa: toInt input longer than 8 bytes")
	}
	var total uint64
	for _, b := range x {
		total = total<<8 | uint64(b)
	}
	return total
}

// Algorithm 3 (toByte), writing the big-endian encoding of x into dst.
func toByte(dst []byte, x uint32) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte(x)
		x >>= 8
	}
}

// Algorithm 4 (base_2^b). Reads outLen b-bit digits from the start of x,
// most significant bit first.
func base2b(x []byte, b uint32, outLen uint32) []uint32 {
	if len(x) < int((outLen*b+7)/8) {
		panic("slhdsa: base2b input too short")
	}
	digits := make([]uint32, outLen)
	mask := uint32(1)<<b - 1
	var in int
	var bits, total uint32
	for out := range digits {
		for bits < b {
			total = total<<8 | uint32(x[in])
			in++
			bits += 8
		}
		bits -= b
		digits[out] = (total >> bits) & mask
	}
	return digits
}
