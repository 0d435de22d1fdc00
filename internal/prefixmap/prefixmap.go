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

// Package prefixmap indexes values by the key ID prefix of the signatures
// they check.
package prefixmap

import (
	"fmt"

	"github.com/tink-crypto/slhdsa-go/internal/outputprefix"
)

// EmptyPrefix is the prefix of values for keys without an ID requirement.
const EmptyPrefix = ""

// PrefixMap maps output prefixes to the values registered under them.
type PrefixMap[V any] struct {
	items map[string][]V
}

// New creates a new PrefixMap.
func New[V any]() *PrefixMap[V] {
	return &PrefixMap[V]{
		items: make(map[string][]V),
	}
}

// Iterator is an iterator over the values in a [PrefixMap].
//
// The iterator returns the values in the following order:
//  1. All values whose prefix matches, in insertion order.
//  2. All values with an empty prefix, in insertion order.
type Iterator[V any] struct {
	prefixed []V
	raw      []V
	index    int
}

// Next returns the next value and whether there was one. Prefixed reports
// whether the value was registered under a non-empty prefix.
func (i *Iterator[V]) Next() (v V, prefixed bool, ok bool) {
	if i.index < len(i.prefixed) {
		v = i.prefixed[i.index]
		i.index++
		return v, true, true
	}
	if j := i.index - len(i.prefixed); j < len(i.raw) {
		i.index++
		return i.raw[j], false, true
	}
	return v, false, false
}

// Matching returns the values that may have produced out: those whose
// prefix is the key ID prefix of out, then those with an empty prefix.
func (m *PrefixMap[V]) Matching(out []byte) *Iterator[V] {
	var prefixed []V
	if _, _, ok := outputprefix.Parse(out); ok {
		prefixed = m.items[string(out[:outputprefix.Size])]
	}
	return &Iterator[V]{
		prefixed: prefixed,
		raw:      m.items[EmptyPrefix],
	}
}

// Insert adds v under prefix, which must be empty or a key ID prefix as
// returned by [outputprefix.Tink].
func (m *PrefixMap[V]) Insert(prefix []byte, v V) error {
	if len(prefix) > 0 {
		if _, rest, ok := outputprefix.Parse(prefix); !ok || len(rest) != 0 {
			return fmt.Errorf("prefixmap: invalid prefix %x", prefix)
		}
	}
	m.items[string(prefix)] = append(m.items[string(prefix)], v)
	return nil
}

// Len returns the number of values in the map.
func (m *PrefixMap[V]) Len() int {
	n := 0
	for _, vs := range m.items {
		n += len(vs)
	}
	return n
}
