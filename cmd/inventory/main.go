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

// Command inventory runs the baby shop inventory console.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cockroachdb/chaining/inventory"
)

func newRootCmd() *cobra.Command {
	cfg := inventory.DefaultConfig()
	var noSample bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage a baby shop inventory stored in a chaining hash table",
		Long: `inventory is a menu-driven console for inserting, searching, deleting and
listing products. Products live in a separate chaining hash table with a fixed
number of buckets, and the search performance of the table can be compared
against a linear scan of the sample products.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Sample = !noSample
			return run(cmd, cfg, logLevel)
		},
	}

	cmd.Flags().IntVar(&cfg.Buckets, "buckets", cfg.Buckets, "number of hash table buckets")
	cmd.Flags().IntVar(&cfg.Runs, "runs", cfg.Runs, "passes over the keys in the performance comparison")
	cmd.Flags().Int64Var(&cfg.FirstUserID, "first-id", cfg.FirstUserID, "ID assigned to the first inserted product")
	cmd.Flags().BoolVar(&noSample, "no-sample", false, "start with an empty inventory")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	return cmd
}

func run(cmd *cobra.Command, cfg inventory.Config, logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := log.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)

	store, err := inventory.NewStore(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Sample {
		fmt.Fprintln(out, "--- Initializing Inventory ---")
		n := store.Seed()
		fmt.Fprintf(out, "Initialization complete. %d products added.\n", n)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Restore default signal handling after the first signal so that a
	// second one terminates the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	err = inventory.NewConsole(store, cmd.InOrStdin(), out).Run(ctx)
	if err != nil && ctx.Err() != nil {
		fmt.Fprintln(out, "\nInterrupted. Goodbye!")
	}
	return err
}

// reportError writes err to w unless the console already showed it to the
// user.
func reportError(w io.Writer, err error) {
	if inventory.Reported(err) || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintf(w, "inventory: %v\n", err)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
