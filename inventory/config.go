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

package inventory

import (
	"github.com/pkg/errors"

	"github.com/cockroachdb/chaining/compare"
)

// Config configures a Store.
type Config struct {
	// Buckets is the fixed number of hash table buckets.
	Buckets int
	// Runs is the number of passes over the keys when comparing search
	// performance.
	Runs int
	// FirstUserID is the ID assigned to the first product added through
	// Add. It should be above the sample product IDs.
	FirstUserID int64
	// Sample seeds the store with SampleProducts.
	Sample bool
	// Clock times the performance comparison. The monotonic wall clock is
	// used if nil.
	Clock compare.Clock
}

// DefaultConfig returns a 15 bucket store seeded with the sample products.
func DefaultConfig() Config {
	return Config{
		Buckets:     15,
		Runs:        compare.DefaultRuns,
		FirstUserID: 10001,
		Sample:      true,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Buckets <= 0 {
		return errors.Errorf("inventory: bucket count must be positive, got %d", c.Buckets)
	}
	if c.Runs <= 0 {
		return errors.Errorf("inventory: run count must be positive, got %d", c.Runs)
	}
	if c.Sample {
		for _, p := range SampleProducts() {
			if c.FirstUserID <= p.ID {
				return errors.Errorf("inventory: first user ID %d collides with sample ID %d",
					c.FirstUserID, p.ID)
			}
		}
	}
	return nil
}
