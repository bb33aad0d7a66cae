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

// Package chaining is a Go implementation of a separate chaining hash table
// with a fixed number of buckets. See
// https://en.wikipedia.org/wiki/Hash_table#Separate_chaining.
//
// # Separate Chaining
//
// A chaining table is an array of buckets. Each bucket holds a chain: the
// ordered list of every entry whose key maps to that bucket. The bucket for
// a key is computed with the division method, key mod size, where size is
// the number of buckets chosen at construction. The modulus is Euclidean so
// that negative keys also map to a bucket in [0, size).
//
// Put, Get and Delete all compute the bucket and then scan its chain
// linearly. A new key is appended to the tail of its chain, which keeps each
// chain in insertion order. Put of an existing key overwrites the value in
// place and does not move the entry. Delete removes the entry and shifts the
// remainder of the chain down, again preserving order.
//
// The number of buckets never changes. With n entries the expected chain
// length is the load factor n/size, so operations are O(1+n/size) on
// average. In the worst case every key is congruent mod size, all entries
// share a single chain and operations degrade to O(n).
//
// # Baseline
//
// Sequence is a plain append-only list of entries searched from the start.
// It is the comparison baseline for the hash table and is not intended as a
// production structure.
package chaining

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const debug = false

var nopLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

// Integer is the set of key types supported by a Map.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Entry holds a key and value.
type Entry[K Integer, V any] struct {
	Key   K
	Value V
}

// Map is a hash table from integer keys to values with Put, Get, Delete,
// and All operations. Collisions are resolved by separate chaining and the
// number of buckets is fixed when the Map is constructed.
//
// A Map is NOT goroutine-safe.
type Map[K Integer, V any] struct {
	// The function mapping a key to a bucket index. The result is reduced
	// mod len(buckets) before use.
	hash hashFn[K]
	// The logger that Put and Delete report to. Nil disables logging.
	logger logrus.FieldLogger
	// buckets is the fixed array of chains. Each chain is in insertion
	// order and may be empty.
	buckets [][]Entry[K, V]
	// The number of entries across all chains.
	used int
}

// New constructs a new Map with the specified number of buckets. New panics
// if size is not positive.
func New[K Integer, V any](size int, options ...option[K, V]) *Map[K, V] {
	if size <= 0 {
		panic(fmt.Sprintf("chaining: invalid bucket count %d", size))
	}
	m := &Map[K, V]{
		hash:    euclideanMod[K],
		buckets: make([][]Entry[K, V], size),
	}

	for _, op := range options {
		op.apply(m)
	}

	m.checkInvariants()
	return m
}

// Put inserts an entry into the map, overwriting an existing value if an
// entry with the same key already exists. Put returns true if a new entry
// was added and false if an existing entry was updated.
func (m *Map[K, V]) Put(key K, value V) bool {
	idx := m.bucket(key)
	chain := m.buckets[idx]
	if debug {
		fmt.Printf("put(%v): bucket=%d chain-len=%d\n", key, idx, len(chain))
	}

	if i := lookup(key, chain); i >= 0 {
		chain[i].Value = value
		m.log(key, idx).Debug("updated")
		m.checkInvariants()
		return false
	}

	m.buckets[idx] = append(chain, Entry[K, V]{Key: key, Value: value})
	m.used++
	m.log(key, idx).Debug("inserted")
	m.checkInvariants()
	return true
}

// Get retrieves the value from the map for the specified key, returning
// ok=false if the key is not present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	chain := m.buckets[m.bucket(key)]
	for i := range chain {
		if chain[i].Key == key {
			return chain[i].Value, true
		}
	}
	return value, false
}

// Delete deletes the entry corresponding to the specified key from the map,
// returning true if an entry was removed. Deleting a non-existent key is
// reported to the logger and is otherwise a noop.
func (m *Map[K, V]) Delete(key K) bool {
	idx := m.bucket(key)
	chain := m.buckets[idx]

	i := lookup(key, chain)
	if i < 0 {
		if debug {
			fmt.Printf("delete(%v): not found in bucket=%d\n", key, idx)
		}
		m.log(key, idx).Warn("not found")
		return false
	}

	// Shift the tail of the chain down rather than swapping in the last
	// entry so that the chain stays in insertion order.
	last := len(chain) - 1
	copy(chain[i:], chain[i+1:])
	chain[last] = Entry[K, V]{}
	m.buckets[idx] = chain[:last]
	m.used--

	if debug {
		fmt.Printf("delete(%v): bucket=%d used=%d\n", key, idx, m.used)
	}
	m.log(key, idx).Debug("deleted")
	m.checkInvariants()
	return true
}

// Clear deletes all entries from the map. The number of buckets is
// unchanged.
func (m *Map[K, V]) Clear() {
	for i := range m.buckets {
		clear(m.buckets[i])
		m.buckets[i] = m.buckets[i][:0]
	}
	m.used = 0
	m.checkInvariants()
}

// All calls yield sequentially for each key and value present in the map,
// visiting buckets in index order and each chain in insertion order. If
// yield returns false, iteration stops. The map must not be mutated during
// iteration.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	for _, chain := range m.buckets {
		for i := range chain {
			if !yield(chain[i].Key, chain[i].Value) {
				return
			}
		}
	}
}

// Buckets calls yield sequentially for every bucket index, including
// buckets with an empty chain. The chain slice is only valid for the
// duration of the call and must not be modified. If yield returns false,
// iteration stops.
func (m *Map[K, V]) Buckets(yield func(index int, chain []Entry[K, V]) bool) {
	for i, chain := range m.buckets {
		if !yield(i, chain) {
			return
		}
	}
}

// Dump writes one line per bucket listing its chain, followed by the total
// number of entries. Entries are rendered with format, or as (key, value)
// if format is nil.
func (m *Map[K, V]) Dump(w io.Writer, format func(key K, value V) string) error {
	if format == nil {
		format = func(key K, value V) string {
			return fmt.Sprintf("(%v, %v)", key, value)
		}
	}
	var buf strings.Builder
	m.Buckets(func(i int, chain []Entry[K, V]) bool {
		fmt.Fprintf(&buf, "Bucket %d: ", i)
		if len(chain) == 0 {
			buf.WriteString("[]\n")
			return true
		}
		for j := range chain {
			if j > 0 {
				buf.WriteString(" -> ")
			}
			buf.WriteString(format(chain[j].Key, chain[j].Value))
		}
		buf.WriteString("\n")
		return true
	})
	fmt.Fprintf(&buf, "Total Items: %d\n", m.used)
	_, err := io.WriteString(w, buf.String())
	return err
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.used
}

// Size returns the number of buckets in the map.
func (m *Map[K, V]) Size() int {
	return len(m.buckets)
}

// LoadFactor returns the number of entries divided by the number of buckets,
// which is the expected chain length.
func (m *Map[K, V]) LoadFactor() float64 {
	return float64(m.used) / float64(len(m.buckets))
}

// Bucket returns the index of the bucket that key maps to.
func (m *Map[K, V]) Bucket(key K) int {
	return m.bucket(key)
}

func (m *Map[K, V]) bucket(key K) int {
	return modSize(m.hash(key, len(m.buckets)), len(m.buckets))
}

// log returns a logger annotated with key and bucket. With no logger
// configured it returns a disabled logger so that call sites stay
// unconditional.
func (m *Map[K, V]) log(key K, idx int) logrus.FieldLogger {
	if m.logger == nil {
		return nopLogger
	}
	return m.logger.WithFields(logrus.Fields{"key": key, "bucket": idx})
}

func lookup[K Integer, V any](key K, chain []Entry[K, V]) int {
	for i := range chain {
		if chain[i].Key == key {
			return i
		}
	}
	return -1
}

// euclideanMod is the default bucket function: key mod size with a result
// in [0, size) for every key, including negative keys and unsigned keys
// wider than int.
func euclideanMod[K Integer](key K, size int) int {
	if key >= 0 {
		return int(uint64(key) % uint64(size))
	}
	r := int64(key) % int64(size)
	if r < 0 {
		r += int64(size)
	}
	return int(r)
}

// modSize reduces h into [0, size).
func modSize(h, size int) int {
	h %= size
	if h < 0 {
		h += size
	}
	return h
}

func (m *Map[K, V]) checkInvariants() {
	if invariants {
		used := 0
		for i, chain := range m.buckets {
			for j := range chain {
				key := chain[j].Key
				if b := m.bucket(key); b != i {
					panic(fmt.Sprintf("invariant failed: key %v found in bucket %d, but hashes to %d\n%s",
						key, i, b, m.debugString()))
				}
				if k := lookup(key, chain); k != j {
					panic(fmt.Sprintf("invariant failed: key %v duplicated in bucket %d at %d and %d\n%s",
						key, i, k, j, m.debugString()))
				}
				used++
			}
		}
		if used != m.used {
			panic(fmt.Sprintf("invariant failed: found %d entries, but used count is %d\n%s",
				used, m.used, m.debugString()))
		}
	}
}

func (m *Map[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "size=%d  used=%d\n", len(m.buckets), m.used)
	for i, chain := range m.buckets {
		fmt.Fprintf(&buf, "  %4d:", i)
		for j := range chain {
			fmt.Fprintf(&buf, " %v", chain[j].Key)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
