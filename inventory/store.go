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
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cockroachdb/chaining"
	"github.com/cockroachdb/chaining/compare"
)

// Names used for the two structures in comparison reports.
const (
	HashTableName = "Hash Table (Chaining)"
	ArrayName     = "Array (Linear Search)"
)

// ErrNotFound is returned when a product ID is not in the inventory.
var ErrNotFound = errors.New("product not found")

// Store is the inventory state: the product hash table, the linear-scan
// baseline holding the seeded products, and the next ID to assign. A Store
// is constructed explicitly and passed to whatever operates on it.
//
// A Store is NOT goroutine-safe.
type Store struct {
	cfg      Config
	logger   logrus.FieldLogger
	products *chaining.Map[int64, Product]
	baseline *chaining.Sequence[int64, Product]
	nextID   int64
}

// NewStore constructs an empty Store. Call Seed to add the sample products.
// A nil logger discards all log output.
func NewStore(cfg Config, logger logrus.FieldLogger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	products := chaining.New[int64, Product](cfg.Buckets,
		chaining.WithLogger[int64, Product](logger.WithField("component", "hashtable")))
	return &Store{
		cfg:      cfg,
		logger:   logger,
		products: products,
		baseline: chaining.NewSequence[int64, Product](len(SampleProducts())),
		nextID:   cfg.FirstUserID,
	}, nil
}

// Seed inserts the sample products into both the hash table and the
// baseline, returning the number inserted.
func (s *Store) Seed() int {
	products := SampleProducts()
	for _, p := range products {
		s.products.Put(p.ID, p)
		s.baseline.Append(p.ID, p)
	}
	s.logger.WithFields(logrus.Fields{
		"products": len(products),
		"buckets":  s.products.Size(),
	}).Info("seeded inventory")
	return len(products)
}

// Add inserts a new product with the next free ID and returns it. Products
// added this way are not part of the baseline.
func (s *Store) Add(name, category string, price float64, quantity int) Product {
	p := Product{
		ID:       s.nextID,
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	}
	s.nextID++
	s.products.Put(p.ID, p)
	return p
}

// Find returns the product with the given ID.
func (s *Store) Find(id int64) (Product, bool) {
	return s.products.Get(id)
}

// Remove deletes the product with the given ID, returning an error wrapping
// ErrNotFound if there is none.
func (s *Store) Remove(id int64) error {
	if !s.products.Delete(id) {
		return errors.Wrapf(ErrNotFound, "product ID %d", id)
	}
	return nil
}

// Bucket returns the hash table bucket a product ID maps to.
func (s *Store) Bucket(id int64) int {
	return s.products.Bucket(id)
}

// Len returns the number of products in the inventory.
func (s *Store) Len() int {
	return s.products.Len()
}

// Display writes the hash table contents bucket by bucket.
func (s *Store) Display(w io.Writer) error {
	if _, err := io.WriteString(w, "\n--- Current Inventory (Hash Table Contents) ---\n"); err != nil {
		return err
	}
	if s.products.Len() == 0 {
		_, err := io.WriteString(w, "The inventory is empty.\n")
		return err
	}
	return s.products.Dump(w, func(id int64, p Product) string {
		return fmt.Sprintf("(ID: %d, %s)", id, p.Name)
	})
}

// Compare times searching for every baseline key in the hash table and in
// the baseline, writes the report with an analysis to w and returns it. It
// returns compare.ErrNoKeys if the baseline is empty.
func (s *Store) Compare(w io.Writer) (*compare.Report, error) {
	cfg := compare.DefaultConfig()
	cfg.Runs = s.cfg.Runs
	cfg.Clock = s.cfg.Clock
	cfg.Logger = s.logger.WithField("component", "compare")

	r, err := compare.Run(s.baseline.Keys(), cfg,
		compare.MapSearcher(HashTableName, s.products),
		compare.SequenceSearcher(ArrayName, s.baseline))
	if err != nil {
		return nil, err
	}
	if err := r.Write(w); err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, analysis(r)); err != nil {
		return nil, err
	}
	return r, nil
}

// analysis explains the outcome of a hash table versus array report using
// the same verdict as compare.Report.Write.
func analysis(r *compare.Report) string {
	switch {
	case r.Tied():
		return "\nAnalysis: Neither structure was measurably faster.\n" +
			"The dataset is too small, or the clock too coarse, to separate O(1) hash\n" +
			"table search from O(N) array search.\n"
	case r.Fastest().Name == HashTableName:
		return "\nAnalysis: The Hash Table (Chaining) demonstrated superior search performance.\n" +
			"This is expected as Hash Table search approaches O(1) complexity (average case),\n" +
			"while Array search is O(N) (worst/average case).\n"
	default:
		return "\nAnalysis: The Array demonstrated superior search performance.\n" +
			"This suggests the dataset is too small, and the overhead of hashing/collision\n" +
			"resolution is greater than the O(N) linear search on the small list.\n"
	}
}
