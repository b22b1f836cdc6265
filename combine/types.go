// SPDX-License-Identifier: MIT

package combine

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/enumerate"
)

// Sentinel errors for graph combination.
var (
	// ErrInvalidTolerance is returned for a tolerance outside {0, 1, 2}.
	ErrInvalidTolerance = category.ErrInvalidTolerance

	// ErrCycleDepthExceeded is returned by Combine for a cycle limit outside
	// [0, enumerate.MaxCycleDepth].
	ErrCycleDepthExceeded = enumerate.ErrCycleDepthExceeded

	// ErrNilGraph is returned if a nil operand is passed.
	ErrNilGraph = errors.New("combine: graph is nil")

	// ErrUnlabeledGraph is returned for an operand without a root node.
	ErrUnlabeledGraph = errors.New("combine: operand has no root")

	// ErrTooFewGraphs is returned when Combine gets fewer than two graphs.
	ErrTooFewGraphs = errors.New("combine: at least two graphs are required")

	// ErrTableMismatch is returned when graphs and tables differ in length.
	ErrTableMismatch = errors.New("combine: one category table per graph is required")

	// ErrUnknownKind is returned for a Kind other than KindAnd or KindMerge.
	ErrUnknownKind = errors.New("combine: unknown combination kind")

	// ErrBudgetExceeded is returned when a product would exceed WithMaxNodes.
	ErrBudgetExceeded = errors.New("combine: product node budget exceeded")
)

// Kind selects the combinator used by Combine.
type Kind string

const (
	// KindAnd keeps the designs both operands accept, part by part.
	KindAnd Kind = "and"

	// KindMerge unions matched parts and keeps unmatched structure.
	KindMerge Kind = "merge"
)

// ParseKind maps "and" and "merge" onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindAnd, KindMerge:
		return k, nil
	default:
		return "", errors.Wrapf(ErrUnknownKind, "%q", s)
	}
}

// Option configures And, Merge and Combine.
type Option func(*Options)

// Options holds combination parameters.
type Options struct {
	// Ctx allows cancellation between product rows.
	Ctx context.Context

	// Tolerance is used by Combine with KindAnd.
	Tolerance category.Tolerance

	// MaxCycles is the cycle limit Combine enumerates with.
	MaxCycles int

	// MaxNodes, if > 0, caps the size of each product graph.
	MaxNodes int

	// Logger receives debug statistics.
	Logger *log.Logger
}

// DefaultOptions returns Options with a background context, exact
// tolerance, MaxCycles 0, no node cap and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Tolerance: category.Exact,
		Logger:    log.New(io.Discard),
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

// WithTolerance sets the AND tolerance used by Combine.
func WithTolerance(t category.Tolerance) Option {
	return func(o *Options) { o.Tolerance = t }
}

// WithMaxCycles sets the cycle limit for the enumeration done by Combine.
func WithMaxCycles(k int) Option {
	return func(o *Options) { o.MaxCycles = k }
}

// WithMaxNodes caps the number of nodes a product may have.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxNodes = n
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

// Result is the outcome of Combine.
type Result struct {
	// Graph is the combined automaton, empty if no design survives.
	Graph *automaton.Graph

	// Categories describes every atom text used in Graph.
	Categories category.Table

	// Paths are the enumerated designs of Graph.
	Paths []enumerate.Path
}
