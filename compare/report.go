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

package compare

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Result is the timing of one searcher.
type Result struct {
	Name string
	// Total is the elapsed time of all passes, at least MinDuration.
	Total time.Duration
	// PerSearch is the average time of a single search in nanoseconds.
	PerSearch float64
	// Hits is the number of searches that found their key, across all
	// passes.
	Hits int
}

// Report holds the results of a Run in searcher order.
type Report struct {
	// Keys is the number of distinct searches in one pass.
	Keys int
	// Runs is the number of passes.
	Runs    int
	Results []Result
}

// Searches returns the number of searches each searcher performed.
func (r *Report) Searches() int {
	return r.Keys * r.Runs
}

// Fastest returns the result with the lowest per-search average. Ties go to
// the earlier searcher.
func (r *Report) Fastest() Result {
	best := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.PerSearch < best.PerSearch {
			best = res
		}
	}
	return best
}

// Slowest returns the result with the highest per-search average. Ties go
// to the later searcher, so that with equal timings Fastest and Slowest
// differ.
func (r *Report) Slowest() Result {
	worst := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.PerSearch >= worst.PerSearch {
			worst = res
		}
	}
	return worst
}

// Tied returns true if no searcher was faster than another, which is the
// case whenever Speedup is 1. Verdicts drawn from a Report should check
// Tied before naming a winner.
func (r *Report) Tied() bool {
	return r.Fastest().PerSearch == r.Slowest().PerSearch
}

// Speedup returns how many times faster the fastest searcher was than the
// slowest. It is always finite and at least 1.
func (r *Report) Speedup() float64 {
	return r.Slowest().PerSearch / r.Fastest().PerSearch
}

// Write renders the report as the total and per-search tables followed by
// a one line verdict naming the fastest searcher, or stating that there was
// no measurable difference.
func (r *Report) Write(w io.Writer) error {
	width := len("Algorithm")
	for _, res := range r.Results {
		width = max(width, len(res.Name))
	}
	const colWidth = 24
	rule := strings.Repeat("-", width+colWidth+7) + "\n"

	var buf strings.Builder
	fmt.Fprintf(&buf, "\nTotal items searched: %s\n", humanize.Comma(int64(r.Keys)))
	fmt.Fprintf(&buf, "Total loop repetitions: %s\n\n", humanize.Comma(int64(r.Runs)))

	buf.WriteString(rule)
	fmt.Fprintf(&buf, "| %-*s | %-*s |\n", width, "Algorithm", colWidth, "Total Time (µs)")
	buf.WriteString(rule)
	for _, res := range r.Results {
		us := float64(res.Total.Nanoseconds()) / float64(time.Microsecond)
		fmt.Fprintf(&buf, "| %-*s | %-*.4f |\n", width, res.Name, colWidth, us)
	}
	buf.WriteString(rule)

	fmt.Fprintf(&buf, "\n| %-*s | %-*s |\n", width, "Algorithm", colWidth, "Avg Time Per Search (ns)")
	buf.WriteString(rule)
	for _, res := range r.Results {
		fmt.Fprintf(&buf, "| %-*s | %-*.4f |\n", width, res.Name, colWidth, res.PerSearch)
	}
	buf.WriteString(rule)

	switch {
	case len(r.Results) < 2:
	case r.Tied():
		buf.WriteString("\nNo measurable difference between searchers.\n")
	default:
		fastest, slowest := r.Fastest(), r.Slowest()
		fmt.Fprintf(&buf, "\n%s was fastest, %.2fx faster per search than %s.\n",
			fastest.Name, r.Speedup(), slowest.Name)
	}
	_, err := io.WriteString(w, buf.String())
	return err
}
