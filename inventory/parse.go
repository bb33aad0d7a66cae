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
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidInput is wrapped by every parse error.
var ErrInvalidInput = errors.New("invalid input")

// Choice is a menu option.
type Choice int

// The menu options, numbered as shown to the user.
const (
	ChoiceInsert Choice = iota + 1
	ChoiceSearch
	ChoiceDelete
	ChoiceDisplay
	ChoiceCompare
	ChoiceExit
)

var choiceNames = map[Choice]string{
	ChoiceInsert:  "Insert New Product",
	ChoiceSearch:  "Search Product by ID",
	ChoiceDelete:  "Delete Product by ID",
	ChoiceDisplay: "Display All Products",
	ChoiceCompare: "Run Performance Comparison (Search)",
	ChoiceExit:    "Exit",
}

func (c Choice) String() string {
	if name, ok := choiceNames[c]; ok {
		return name
	}
	return "Choice(" + strconv.Itoa(int(c)) + ")"
}

// ParseChoice parses a menu selection between ChoiceInsert and ChoiceExit.
func ParseChoice(s string) (Choice, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || Choice(n) < ChoiceInsert || Choice(n) > ChoiceExit {
		return 0, errors.Wrapf(ErrInvalidInput, "menu choice %q", s)
	}
	return Choice(n), nil
}

// ParseID parses a product ID. Any integer is accepted.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "product ID %q", s)
	}
	return id, nil
}

// ParsePrice parses a non-negative, finite dollar amount. A leading '$' is
// allowed.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrInvalidInput, "price %q", s)
	}
	return v, nil
}

// ParseQuantity parses a non-negative item count.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "quantity %q", s)
	}
	return n, nil
}
