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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// runConsole feeds the given lines to a console over a seeded store and
// returns the output.
func runConsole(t *testing.T, store *Store, lines ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	err := NewConsole(store, in, &out).Run(context.Background())
	return out.String(), err
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Runs = 5
	s := newTestStore(t, cfg)
	s.Seed()
	return s
}

func TestConsoleExit(t *testing.T) {
	out, err := runConsole(t, seededStore(t), "6")
	require.NoError(t, err)
	require.Contains(t, out, "=== Baby Shop Inventory Management ===\n1. Insert New Product\n")
	require.Contains(t, out, "6. Exit\n")
	require.Contains(t, out, "Goodbye!")
	require.Equal(t, 1, strings.Count(out, "Enter your choice: "))
}

func TestConsoleEOF(t *testing.T) {
	out, err := runConsole(t, seededStore(t), "4")
	require.NoError(t, err)
	require.Contains(t, out, "Total Items: 10\n")
	require.Contains(t, out, "End of input. Goodbye!")
}

func TestConsoleInvalidChoice(t *testing.T) {
	out, err := runConsole(t, seededStore(t), "9", "x", "6")
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(out, "Invalid choice. Please enter a number between 1 and 6.\n"))
	require.Equal(t, 3, strings.Count(out, "Enter your choice: "))
}

func TestConsoleInsertAndSearch(t *testing.T) {
	s := seededStore(t)
	out, err := runConsole(t, s,
		"1", "Crib Mobile", "Toys", "$42.50", "3",
		"2", "10001",
		"6")
	require.NoError(t, err)
	require.Contains(t, out, "--> Key 10001 inserted at bucket 11.\n")
	require.Contains(t, out, "Product 'Crib Mobile' inserted with ID: 10001\n")
	require.Contains(t, out, "--- Search Result ---\n| ID: 10001 | Name: Crib Mobile")
	require.Equal(t, 11, s.Len())
}

func TestConsoleMalformedInput(t *testing.T) {
	s := seededStore(t)
	out, err := runConsole(t, s,
		"2", "abc",
		"1", "Crib Mobile", "Toys", "cheap",
		"3", "-",
		"6")
	require.NoError(t, err)
	require.Equal(t, 3, strings.Count(out, "Invalid input. Please ensure you enter the correct data type"))
	// The loop carried on to the exit command and nothing was inserted.
	require.Contains(t, out, "Goodbye!")
	require.Equal(t, 10, s.Len())
}

func TestConsoleDelete(t *testing.T) {
	s := seededStore(t)
	out, err := runConsole(t, s, "3", "4", "3", "4", "2", "4", "6")
	require.NoError(t, err)
	require.Contains(t, out, "--> Product with ID 4 deleted successfully.\n")
	require.Contains(t, out, "--> Error: Product with ID 4 not found for deletion.\n")
	require.Contains(t, out, "Product with ID 4 not found.\n")
	require.Equal(t, 9, s.Len())
}

func TestConsoleCompare(t *testing.T) {
	out, err := runConsole(t, seededStore(t), "5", "6")
	require.NoError(t, err)
	require.Contains(t, out, "=== Running Search Performance Comparison ===")
	require.Contains(t, out, "Total items searched: 10\n")
	require.Contains(t, out, "Total loop repetitions: 5\n")
	require.Contains(t, out, "Analysis: ")

	cfg := DefaultConfig()
	cfg.Sample = false
	out, err = runConsole(t, newTestStore(t, cfg), "5", "6")
	require.NoError(t, err)
	require.Contains(t, out, "Cannot run comparison: No data available in the array.\n")
}

func TestConsoleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := NewConsole(seededStore(t), strings.NewReader("6\n"), &out).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, out.String())
}

func TestConsoleReadError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("boom")
	err := NewConsole(seededStore(t), iotest.ErrReader(boom), &out).Run(context.Background())
	require.ErrorIs(t, err, boom)
	require.True(t, Reported(err))
	require.Equal(t, 1, strings.Count(out.String(), "boom"))
	require.Contains(t, out.String(), "An unexpected error occurred: reading input: boom\n")

	require.False(t, Reported(boom))
	require.False(t, Reported(context.Canceled))
}

// waitRun waits for a Run started in the background to return.
func waitRun(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("console did not return after cancellation")
		return nil
	}
}

func TestConsoleCanceledWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	c := NewConsole(seededStore(t), pr, &out)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		errc <- c.Run(ctx)
	}()

	// The write completes once the console has consumed the line, so Run
	// is past its initial context check and no further input will arrive.
	_, err := io.WriteString(pw, "4\n")
	require.NoError(t, err)
	cancel()

	require.ErrorIs(t, waitRun(t, errc), context.Canceled)
	require.NotContains(t, out.String(), "Goodbye!")
	require.NotContains(t, out.String(), "unexpected error")
}

func TestConsoleLineAfterCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	s := seededStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out bytes.Buffer
	errc := make(chan error, 1)
	go func() {
		errc <- NewConsole(s, pr, &out).Run(ctx)
	}()

	_, err := io.WriteString(pw, "4\n")
	require.NoError(t, err)
	cancel()
	// Delete product 4. The console may or may not read these lines, but
	// it must not act on them.
	go func() { _, _ = io.WriteString(pw, "3\n4\n") }()

	require.ErrorIs(t, waitRun(t, errc), context.Canceled)
	require.Equal(t, 10, s.Len())
	_, ok := s.Find(4)
	require.True(t, ok)
	require.NotContains(t, out.String(), "Enter Product ID to delete")
	require.NotContains(t, out.String(), "deleted successfully")
}

// cancelReader cancels a context and then returns its data, so every line
// it yields is read after cancellation.
type cancelReader struct {
	cancel context.CancelFunc
	r      io.Reader
}

func (c cancelReader) Read(p []byte) (int, error) {
	c.cancel()
	return c.r.Read(p)
}

func TestConsoleLineReadAfterCancel(t *testing.T) {
	s := seededStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := cancelReader{cancel: cancel, r: strings.NewReader("3\n4\n6\n")}

	var out bytes.Buffer
	err := NewConsole(s, in, &out).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 10, s.Len())
	require.NotContains(t, out.String(), "Enter Product ID to delete")
	require.NotContains(t, out.String(), "Goodbye!")
}
