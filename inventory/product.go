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

// Package inventory is a console inventory manager for a baby shop. Products
// are kept in a chaining hash table keyed by product ID, and the table's
// lookup speed can be compared against a linear scan of the seeded
// products.
package inventory

import "fmt"

// Product is a single item in the inventory, keyed by ID.
type Product struct {
	ID       int64
	Name     string
	Category string
	// Price is in dollars.
	Price    float64
	Quantity int
}

func (p Product) String() string {
	return fmt.Sprintf("| ID: %-4d | Name: %-25s | Category: %-12s | Price: $%6.2f | Qty: %4d |",
		p.ID, p.Name, p.Category, p.Price, p.Quantity)
}

// SampleProducts returns the products the inventory is seeded with. Their
// IDs are 1 through 10.
func SampleProducts() []Product {
	return []Product{
		{1, "Infant Car Seat", "Safety", 199.99, 15},
		{2, "Organic Cotton Onesie", "Apparel", 19.50, 150},
		{3, "Diaper Bag (Multi)", "Accessories", 65.00, 30},
		{4, "Wooden Stacking Rings", "Toys", 15.99, 85},
		{5, "Electric Breast Pump", "Feeding", 189.00, 10},
		{6, "Travel Stroller", "Strollers", 249.99, 22},
		{7, "Bamboo Swaddle Set", "Bedding", 35.00, 60},
		{8, "Waterproof Mattress Pad", "Bedding", 29.95, 45},
		{9, "Portable High Chair", "Feeding", 99.99, 18},
		{10, "Teething Toy Set", "Toys", 12.50, 110},
	}
}
