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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/cockroachdb/chaining/compare"
)

// Console is the menu-driven front end to a Store.
type Console struct {
	store *Store
	in    *bufio.Scanner
	out   io.Writer
	// lines carries input read by the reader goroutine started by Run.
	lines chan inputLine
}

type inputLine struct {
	text string
	err  error
}

// NewConsole returns a Console reading commands from in and writing to out.
func NewConsole(store *Store, in io.Reader, out io.Writer) *Console {
	return &Console{
		store: store,
		in:    bufio.NewScanner(in),
		out:   out,
		lines: make(chan inputLine),
	}
}

// reportedError marks an error that the console already wrote to its
// output.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// Reported returns true if err was already written to the console output by
// Run, so the caller need not print it again.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// Run shows the menu and executes commands until the user exits or the
// input ends, either of which returns nil. Malformed input is reported and
// the loop continues. Once ctx is done Run returns ctx.Err() without
// executing further input, even while it is waiting for a line. Any other
// unexpected error is reported and returned.
//
// Input is read on a separate goroutine. Run must be called at most once
// per Console.
func (c *Console) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	defer close(done)
	go c.read(done)

	for {
		c.menu()
		line, err := c.prompt(ctx, "Enter your choice: ")
		if err != nil {
			return c.finish(ctx, err)
		}
		choice, err := ParseChoice(line)
		if err != nil {
			c.printf("Invalid choice. Please enter a number between %d and %d.\n", ChoiceInsert, ChoiceExit)
			continue
		}
		if choice == ChoiceExit {
			c.printf("Exiting Inventory Management System. Goodbye!\n")
			return nil
		}

		err = c.execute(ctx, choice)
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidInput):
			c.printf("Invalid input. Please ensure you enter the correct data type (e.g., number for ID/price/quantity).\n")
		default:
			return c.finish(ctx, err)
		}
	}
}

// read scans lines from the input and hands them to prompt until the input
// ends or done is closed. The final message carries io.EOF or the read
// error.
func (c *Console) read(done <-chan struct{}) {
	for {
		var l inputLine
		if c.in.Scan() {
			l.text = c.in.Text()
		} else if err := c.in.Err(); err != nil {
			l.err = errors.Wrap(err, "reading input")
		} else {
			l.err = io.EOF
		}
		select {
		case c.lines <- l:
		case <-done:
			return
		}
		if l.err != nil {
			return
		}
	}
}

// finish maps the end of input to a clean exit, passes cancellation through
// and reports anything else.
func (c *Console) finish(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, io.EOF) {
		c.printf("\nEnd of input. Goodbye!\n")
		return nil
	}
	c.printf("An unexpected error occurred: %v\n", err)
	return reportedError{err}
}

func (c *Console) menu() {
	c.printf("\n=== Baby Shop Inventory Management ===\n")
	for ch := ChoiceInsert; ch <= ChoiceExit; ch++ {
		c.printf("%d. %s\n", ch, ch)
	}
}

func (c *Console) execute(ctx context.Context, choice Choice) error {
	switch choice {
	case ChoiceInsert:
		return c.insert(ctx)
	case ChoiceSearch:
		return c.search(ctx)
	case ChoiceDelete:
		return c.delete(ctx)
	case ChoiceDisplay:
		return c.store.Display(c.out)
	case ChoiceCompare:
		return c.compare()
	default:
		return errors.Errorf("unhandled menu choice %d", choice)
	}
}

func (c *Console) insert(ctx context.Context) error {
	name, err := c.prompt(ctx, "Enter Product Name: ")
	if err != nil {
		return err
	}
	category, err := c.prompt(ctx, "Enter Category: ")
	if err != nil {
		return err
	}
	line, err := c.prompt(ctx, "Enter Price: $")
	if err != nil {
		return err
	}
	price, err := ParsePrice(line)
	if err != nil {
		return err
	}
	if line, err = c.prompt(ctx, "Enter Quantity: "); err != nil {
		return err
	}
	quantity, err := ParseQuantity(line)
	if err != nil {
		return err
	}

	p := c.store.Add(name, category, price, quantity)
	c.printf("--> Key %d inserted at bucket %d.\n", p.ID, c.store.Bucket(p.ID))
	c.printf("Product '%s' inserted with ID: %d\n", p.Name, p.ID)
	return nil
}

func (c *Console) search(ctx context.Context) error {
	id, err := c.promptID(ctx, "Enter Product ID to search: ")
	if err != nil {
		return err
	}
	p, ok := c.store.Find(id)
	if !ok {
		c.printf("\nProduct with ID %d not found.\n", id)
		return nil
	}
	c.printf("\n--- Search Result ---\n%s\n", p)
	return nil
}

func (c *Console) delete(ctx context.Context) error {
	id, err := c.promptID(ctx, "Enter Product ID to delete: ")
	if err != nil {
		return err
	}
	if err := c.store.Remove(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.printf("--> Error: Product with ID %d not found for deletion.\n", id)
			return nil
		}
		return err
	}
	c.printf("--> Product with ID %d deleted successfully.\n", id)
	return nil
}

func (c *Console) compare() error {
	c.printf("\n=== Running Search Performance Comparison ===\n")
	if _, err := c.store.Compare(c.out); err != nil {
		if errors.Is(err, compare.ErrNoKeys) {
			c.printf("Cannot run comparison: No data available in the array.\n")
			return nil
		}
		return err
	}
	return nil
}

func (c *Console) promptID(ctx context.Context, prompt string) (int64, error) {
	line, err := c.prompt(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return ParseID(line)
}

// prompt writes msg and waits for one line of input, returning io.EOF once
// the input is exhausted and ctx.Err() once ctx is done. A line that arrives
// together with cancellation is dropped.
func (c *Console) prompt(ctx context.Context, msg string) (string, error) {
	c.printf("%s", msg)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-c.lines:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// printf writes to the console output. Write errors are ignored; a broken
// output is detected when the next read fails or the input ends.
func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
