// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chaining

// Sequence is an ordered list of entries searched by linear scan. It is the
// baseline that a Map is compared against and keeps entries in the order
// they were appended. A Sequence does not enforce key uniqueness: Search
// returns the first matching entry.
//
// A Sequence is NOT goroutine-safe.
type Sequence[K Integer, V any] struct {
	entries []Entry[K, V]
}

// NewSequence constructs an empty Sequence with room for capacity entries.
func NewSequence[K Integer, V any](capacity int) *Sequence[K, V] {
	return &Sequence[K, V]{entries: make([]Entry[K, V], 0, capacity)}
}

// Append adds an entry to the end of the sequence.
func (s *Sequence[K, V]) Append(key K, value V) {
	s.entries = append(s.entries, Entry[K, V]{Key: key, Value: value})
}

// Search scans the sequence from the start and returns the value of the
// first entry with the specified key, returning ok=false if there is none.
func (s *Sequence[K, V]) Search(key K) (value V, ok bool) {
	for i := range s.entries {
		if s.entries[i].Key == key {
			return s.entries[i].Value, true
		}
	}
	return value, false
}

// Keys returns the keys of the sequence in append order.
func (s *Sequence[K, V]) Keys() []K {
	keys := make([]K, len(s.entries))
	for i := range s.entries {
		keys[i] = s.entries[i].Key
	}
	return keys
}

// Len returns the number of entries in the sequence.
func (s *Sequence[K, V]) Len() int {
	return len(s.entries)
}
