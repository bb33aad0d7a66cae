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

import "github.com/sirupsen/logrus"

// hashFn maps a key to a bucket index given the number of buckets.
type hashFn[K Integer] func(key K, size int) int

// option provide an interface to do work on Map while it is being created.
type option[K Integer, V any] interface {
	apply(m *Map[K, V])
}

type hashOption[K Integer, V any] struct {
	hash func(key K, size int) int
}

func (op hashOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
}

// WithHash is an option to specify the function mapping a key to a bucket
// for a Map[K,V]. The result is reduced mod size, so the function may return
// any int. The default is key mod size with a non-negative result.
//
// A hash that maps every key to the same bucket is useful for exercising the
// worst case where all entries share one chain.
func WithHash[K Integer, V any](hash func(key K, size int) int) option[K, V] {
	return hashOption[K, V]{hash}
}

type loggerOption[K Integer, V any] struct {
	logger logrus.FieldLogger
}

func (op loggerOption[K, V]) apply(m *Map[K, V]) {
	m.logger = op.logger
}

// WithLogger is an option to specify the logger a Map[K,V] reports inserts,
// updates and deletes to. Inserts, updates and deletes are logged at debug
// level, deletes of absent keys at warn level. By default nothing is logged.
func WithLogger[K Integer, V any](logger logrus.FieldLogger) option[K, V] {
	return loggerOption[K, V]{logger}
}
