// SPDX-License-Identifier: MIT

package enumerate

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/automaton"
)

// MaxCycleDepth is the largest cycle limit Compile and Combine accept.
const MaxCycleDepth = 10

// Sentinel errors for path enumeration.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("enumerate: graph is nil")

	// ErrNegativeCycles is returned for a negative cycle limit.
	ErrNegativeCycles = errors.New("enumerate: max cycles cannot be negative")

	// ErrCycleDepthExceeded indicates a cycle limit outside [0, MaxCycleDepth].
	ErrCycleDepthExceeded = errors.New("enumerate: cycle depth out of range")

	// ErrBudgetExceeded is returned when the walk expands more partial paths
	// than allowed by WithMaxExpansions.
	ErrBudgetExceeded = errors.New("enumerate: expansion budget exceeded")
)

// Option configures Paths via functional arguments. Invalid values are
// recorded and surfaced when Paths is invoked.
type Option func(*Options)

// Options holds enumeration parameters.
type Options struct {
	// Ctx allows cancellation; it is checked once per dequeued path.
	Ctx context.Context

	// MaxCycles bounds how often a walk may revisit nodes and edges.
	MaxCycles int

	// MaxExpansions, if > 0, caps the number of partial paths dequeued.
	MaxExpansions int

	// Logger receives debug statistics.
	Logger *log.Logger

	err error
}

// DefaultOptions returns Options with a background context, MaxCycles 0, no
// expansion cap and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Logger: log.New(io.Discard),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxCycles sets the cycle limit k. A OneOrMore node may be entered at
// most k+1 times per walk, any edge taken at most k+1 times and any node
// entered at most k+2 times.
func WithMaxCycles(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.err = errors.Wrapf(ErrNegativeCycles, "max cycles %d", k)
			return
		}
		o.MaxCycles = k
	}
}

// WithMaxExpansions caps the number of partial paths the walk may dequeue.
// Zero means no cap.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxExpansions = n
		}
	}
}

// WithLogger routes debug output to l.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Path is one accepted walk with its epsilon edges removed: a design
// template whose atom edges are expanded into concrete parts downstream.
type Path []automaton.Edge

// Texts returns the atom names along p.
func (p Path) Texts() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Text
	}
	return out
}

// String renders p as its atom names separated by spaces.
func (p Path) String() string {
	return strings.Join(p.Texts(), " ")
}

// Equal reports whether p and o take edges with the same labels in the same
// order.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].SameLabel(o[i]) {
			return false
		}
	}
	return true
}

// Result holds the outcome of Paths.
type Result struct {
	// Paths are the de-duplicated accepted paths in discovery order.
	Paths []Path

	// Collapsed is the minimized copy of the input that was walked.
	Collapsed *automaton.Graph

	// Expansions counts the partial paths dequeued.
	Expansions int
}

// CheckCycleDepth returns ErrCycleDepthExceeded, with a hint, for k outside
// [0, MaxCycleDepth].
func CheckCycleDepth(k int) error {
	if k < 0 || k > MaxCycleDepth {
		return errors.WithHint(
			errors.Wrapf(ErrCycleDepthExceeded, "max cycles %d", k),
			"choose a cycle limit between 0 and 10")
	}
	return nil
}
