// SPDX-License-Identifier: MIT

package compiler

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/enumerate"
)

// MaxCycleDepth is the largest cycle limit Compile accepts.
const MaxCycleDepth = enumerate.MaxCycleDepth

// Sentinel errors for compilation.
var (
	// ErrConstruction indicates a boundary stack in an impossible state.
	ErrConstruction = errors.New("compiler: malformed construction")

	// ErrUnsupportedOperation indicates AND or MERGE under the node representation.
	ErrUnsupportedOperation = errors.New("compiler: operation not supported by representation")

	// ErrCycleDepthExceeded indicates a cycle limit outside [0, MaxCycleDepth].
	ErrCycleDepthExceeded = enumerate.ErrCycleDepthExceeded

	// ErrUnknownAtom indicates an atom missing from the category table.
	ErrUnknownAtom = errors.New("compiler: atom not in part categories")

	// ErrUnknownRepresentation indicates a representation name other than "edge" or "node".
	ErrUnknownRepresentation = errors.New("compiler: unknown representation")

	// ErrInvalidTolerance is returned for an AND tolerance outside {0, 1, 2}.
	ErrInvalidTolerance = category.ErrInvalidTolerance
)

// Representation selects where parts live in the compiled graph.
type Representation int

const (
	// EdgeRepresentation puts every part on an atom edge.
	EdgeRepresentation Representation = iota

	// NodeRepresentation gives every part its own Atom node (see
	// automaton.Graph.ToNodeForm). AND and MERGE are not available.
	NodeRepresentation
)

func (r Representation) String() string {
	if r == NodeRepresentation {
		return "node"
	}
	return "edge"
}

// ParseRepresentation maps "edge" and "node" onto a Representation.
func ParseRepresentation(s string) (Representation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "edge":
		return EdgeRepresentation, nil
	case "node":
		return NodeRepresentation, nil
	default:
		return EdgeRepresentation, errors.WithHint(
			errors.Wrapf(ErrUnknownRepresentation, "%q", s),
			`use "edge" or "node"`)
	}
}

// Option configures a Builder and Compile.
type Option func(*Options)

// Options holds compilation parameters.
type Options struct {
	// Ctx allows cancellation; it is checked once per expression node.
	Ctx context.Context

	// MaxCycles is the cycle limit used for enumeration.
	MaxCycles int

	// Representation selects the layout of the compiled graph.
	Representation Representation

	// PathBudget, if > 0, caps the partial paths the enumerator may expand.
	PathBudget int

	// Logger receives debug output.
	Logger *log.Logger
}

// DefaultOptions returns Options with MaxCycles 0, the edge
// representation, no path budget and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		Representation: EdgeRepresentation,
		Logger:         log.New(io.Discard),
	}
}

// WithMaxCycles sets the cycle limit. Compile rejects values outside
// [0, MaxCycleDepth].
func WithMaxCycles(k int) Option {
	return func(o *Options) { o.MaxCycles = k }
}

// WithRepresentation selects the graph layout.
func WithRepresentation(r Representation) Option {
	return func(o *Options) { o.Representation = r }
}

// WithPathBudget caps the enumeration work. Zero means no cap.
func WithPathBudget(n int) Option {
	return func(o *Options) { o.PathBudget = n }
}

// WithContext sets a custom context for cancellation.
// Panics on a nil context.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("compiler: WithContext(nil)")
	}
	return func(o *Options) { o.Ctx = ctx }
}

// WithLogger routes debug output to l.
// Panics on a nil logger.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic("compiler: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// Fragment is a piece of the graph under construction: one entry node and
// the open exits still waiting to be connected.
type Fragment struct {
	Head   automaton.NodeID
	Leaves []automaton.NodeID
}

// Stack is the boundary stack of pending fragments.
type Stack []Fragment

// Push places f on top of s.
func (s *Stack) Push(f Fragment) {
	*s = append(*s, f)
}

// Pop removes and returns the top fragment.
func (s *Stack) Pop() (Fragment, error) {
	if len(*s) == 0 {
		return Fragment{}, errors.Wrap(ErrConstruction, "pop from empty boundary stack")
	}
	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return top, nil
}

// Len returns the number of pending fragments.
func (s Stack) Len() int { return len(s) }

// Result is the outcome of Compile.
type Result struct {
	// Graph is the compiled, labeled graph before minimization. Under the
	// node representation it is the node-form projection.
	Graph *automaton.Graph

	// Root is the root of Graph.
	Root automaton.NodeID

	// Accepts are the accept nodes of Graph.
	Accepts []automaton.NodeID

	// Minimized is the collapsed copy the paths were enumerated from.
	Minimized *automaton.Graph

	// Paths are the enumerated design templates.
	Paths []enumerate.Path

	// Categories is the input table extended with combined atom names.
	Categories category.Table
}
