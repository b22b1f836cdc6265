// SPDX-License-Identifier: MIT

// Package design expands enumerated paths into concrete part lists and
// draws bounded samples from them.
//
// A design is the comma-joined sequence of part identifiers chosen along a
// path, one identifier per atom edge: the path [promoter, cds] over
// promoter {pTet, pLac} and cds {gfp} expands to "pLac,gfp" and
// "pTet,gfp". The empty path expands to the empty design "".
package design

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/katalvlaran/constellation/enumerate"
)

// MaxDesigns is the largest sample Select accepts.
const MaxDesigns = 10000

// Sentinel errors for design selection.
var (
	// ErrTooManyDesigns indicates a sample size above MaxDesigns.
	ErrTooManyDesigns = errors.New("design: number of designs is too large")

	// ErrNegativeCount indicates a negative sample size.
	ErrNegativeCount = errors.New("design: number of designs cannot be negative")
)

// Option configures Select.
type Option func(*Options)

// Options holds selection parameters.
type Options struct {
	// Rand drives the reservoir. Nil means a time-seeded source.
	Rand *rand.Rand
}

// WithSeed makes the selection reproducible. Seed 0 keeps the time-based
// default.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		if seed != 0 {
			o.Rand = rand.New(rand.NewPCG(seed, seed))
		}
	}
}

// WithRand drives the selection with r.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// Expand returns the designs of every path, de-duplicated in discovery
// order. A path crossing a category without identifiers has no designs.
//
// Complexity: O(product of category sizes) per path.
func Expand(paths []enumerate.Path) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range paths {
		for _, d := range expandPath(p) {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}

func expandPath(p enumerate.Path) []string {
	if len(p) == 0 {
		return []string{""}
	}
	acc := [][]string{{}}
	for _, e := range p {
		ids := e.Component.Category().IDs()
		if len(ids) == 0 {
			return nil
		}
		next := make([][]string, 0, len(acc)*len(ids))
		for _, prefix := range acc {
			for _, id := range ids {
				next = append(next, append(append(make([]string, 0, len(prefix)+1), prefix...), id))
			}
		}
		acc = next
	}
	return lo.Map(acc, func(parts []string, _ int) string { return strings.Join(parts, ",") })
}

// Select draws min(n, len(designs)) designs by reservoir sampling. When n
// covers every design, designs is returned in its original order.
//
// Returns ErrNegativeCount or ErrTooManyDesigns for n outside [0, MaxDesigns].
func Select(designs []string, n int, opts ...Option) ([]string, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "%d", n)
	}
	if n > MaxDesigns {
		return nil, errors.WithHint(
			errors.Wrapf(ErrTooManyDesigns, "%d requested", n),
			"request at most 10000 designs")
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Rand == nil {
		now := uint64(time.Now().UnixNano())
		o.Rand = rand.New(rand.NewPCG(now, now>>1))
	}

	reservoir := make([]string, 0, min(n, len(designs)))
	for i, d := range designs {
		if i < n {
			reservoir = append(reservoir, d)
			continue
		}
		if j := o.Rand.IntN(i + 1); j < n {
			reservoir[j] = d
		}
	}
	return reservoir, nil
}

// Enumerate expands paths and selects n of the resulting designs.
func Enumerate(paths []enumerate.Path, n int, opts ...Option) ([]string, error) {
	if n > MaxDesigns || n < 0 {
		return Select(nil, n, opts...)
	}
	return Select(Expand(paths), n, opts...)
}
