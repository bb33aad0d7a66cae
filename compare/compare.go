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

// Package compare times repeated key lookups against several search
// structures and reports which one is fastest.
//
// Every searcher is queried with the identical key order: the keys are
// copied and shuffled once per Run, then each searcher performs Runs full
// passes over that order. Elapsed time is read from a monotonic clock.
package compare

import (
	"math/rand"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cockroachdb/chaining"
)

// MinDuration is substituted for any measured duration below it so that
// averages and ratios never divide by zero.
const MinDuration = time.Nanosecond

// DefaultRuns is the number of passes over the keys used when a Config does
// not specify one.
const DefaultRuns = 1000

var (
	// ErrNoKeys is returned by Run when there are no keys to search for.
	ErrNoKeys = errors.New("compare: no keys to search")
	// ErrInvalidRuns is returned by Run when the run count is not positive.
	ErrInvalidRuns = errors.New("compare: run count must be positive")
	// ErrNoSearchers is returned by Run when there is nothing to time.
	ErrNoSearchers = errors.New("compare: no searchers")
)

// Searcher is a structure whose lookups can be timed.
type Searcher[K any] interface {
	// Name identifies the searcher in a Report.
	Name() string
	// Search looks up key, returning whether it was found.
	Search(key K) bool
}

type searchFunc[K any] struct {
	name string
	fn   func(key K) bool
}

func (s searchFunc[K]) Name() string      { return s.name }
func (s searchFunc[K]) Search(key K) bool { return s.fn(key) }

// Func returns a Searcher with the given name backed by fn.
func Func[K any](name string, fn func(key K) bool) Searcher[K] {
	return searchFunc[K]{name: name, fn: fn}
}

// MapSearcher returns a Searcher backed by Map.Get.
func MapSearcher[K chaining.Integer, V any](name string, m *chaining.Map[K, V]) Searcher[K] {
	return Func(name, func(key K) bool {
		_, ok := m.Get(key)
		return ok
	})
}

// SequenceSearcher returns a Searcher backed by Sequence.Search.
func SequenceSearcher[K chaining.Integer, V any](name string, s *chaining.Sequence[K, V]) Searcher[K] {
	return Func(name, func(key K) bool {
		_, ok := s.Search(key)
		return ok
	})
}

// Clock reports elapsed time since an arbitrary fixed epoch. Only the
// difference between two readings is meaningful.
type Clock interface {
	Now() time.Duration
}

type monotonicClock struct {
	epoch time.Time
}

// Now relies on time.Since using the monotonic clock reading carried by
// epoch, so wall clock adjustments do not affect it.
func (c monotonicClock) Now() time.Duration {
	return time.Since(c.epoch)
}

// Config configures a Run.
type Config struct {
	// Runs is the number of full passes over the keys per searcher.
	Runs int
	// Shuffle randomizes the key order once before timing.
	Shuffle bool
	// Rand is the source for Shuffle. A time-seeded source is used if nil.
	Rand *rand.Rand
	// Clock times the passes. The monotonic wall clock is used if nil.
	Clock Clock
	// Logger receives a debug entry per searcher. Nothing is logged if nil.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the configuration used by the inventory: 1000
// shuffled passes.
func DefaultConfig() Config {
	return Config{
		Runs:    DefaultRuns,
		Shuffle: true,
	}
}

// Run times cfg.Runs passes of searching for every key with each searcher,
// in order. Each searcher sees the same key order.
func Run[K any](keys []K, cfg Config, searchers ...Searcher[K]) (*Report, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	if cfg.Runs <= 0 {
		return nil, errors.Wrapf(ErrInvalidRuns, "runs=%d", cfg.Runs)
	}
	if len(searchers) == 0 {
		return nil, ErrNoSearchers
	}

	order := slices.Clone(keys)
	if cfg.Shuffle {
		rng := cfg.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	clock := cfg.Clock
	if clock == nil {
		clock = monotonicClock{epoch: time.Now()}
	}

	r := &Report{
		Keys:    len(order),
		Runs:    cfg.Runs,
		Results: make([]Result, 0, len(searchers)),
	}
	for _, s := range searchers {
		var hits int
		start := clock.Now()
		for i := 0; i < cfg.Runs; i++ {
			for _, k := range order {
				if s.Search(k) {
					hits++
				}
			}
		}
		total := clock.Now() - start
		if total < MinDuration {
			total = MinDuration
		}

		res := Result{
			Name:      s.Name(),
			Total:     total,
			PerSearch: float64(total.Nanoseconds()) / float64(r.Searches()),
			Hits:      hits,
		}
		if cfg.Logger != nil {
			cfg.Logger.WithFields(logrus.Fields{
				"searcher":   res.Name,
				"total":      res.Total,
				"per-search": res.PerSearch,
				"hits":       res.Hits,
			}).Debug("timed searcher")
		}
		r.Results = append(r.Results, res)
	}
	return r, nil
}
