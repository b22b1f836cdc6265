// SPDX-License-Identifier: MIT

package expr

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/category"
)

// Sentinel errors for parsing.
var (
	// ErrEmpty is returned when the text holds no tokens.
	ErrEmpty = errors.New("expr: empty expression")

	// ErrSyntax marks every grammar violation reported by Parse.
	ErrSyntax = errors.New("expr: syntax error")
)

// Option configures Parse.
type Option func(*Options)

// Options holds parser settings.
type Options struct {
	// AndTolerance is the tolerance given to a bare "and".
	AndTolerance category.Tolerance
}

// DefaultOptions returns Options with AndTolerance set to category.Exact.
func DefaultOptions() Options {
	return Options{AndTolerance: category.Exact}
}

// WithAndTolerance sets the tolerance of a bare "and".
// Panics on a tolerance outside {0, 1, 2}.
func WithAndTolerance(t category.Tolerance) Option {
	if !t.Valid() {
		panic("expr: WithAndTolerance: tolerance must be 0, 1 or 2")
	}
	return func(o *Options) {
		o.AndTolerance = t
	}
}
