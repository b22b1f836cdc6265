// SPDX-License-Identifier: MIT

package enumerate

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/automaton"
)

// walker encapsulates mutable traversal state.
type walker struct {
	graph *automaton.Graph
	opts  Options
	ctx   context.Context
	queue [][]automaton.Edge
	res   *Result
}

// Paths enumerates the accepted paths of g, bounded by the cycle limit.
//
// g itself is not modified: a deep copy is minimized to a fixpoint and then
// walked breadth-first over edges, starting from a synthetic epsilon edge
// into the root. Every walk reaching an Accept node is recorded with its
// epsilon edges stripped; walks that equal an earlier one label by label are
// dropped. An empty path is a valid result.
//
// Returns ErrGraphNil, automaton.ErrNoRoot, ErrNegativeCycles,
// ErrBudgetExceeded or the context error.
//
// Complexity: exponential in MaxCycles and in the number of repetitions.
func Paths(g *automaton.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	collapsed := g.Clone()
	passes := collapsed.Minimize()
	root, ok := collapsed.Root()
	if !ok {
		return nil, automaton.ErrNoRoot
	}

	w := &walker{
		graph: collapsed,
		opts:  o,
		ctx:   o.Ctx,
		res:   &Result{Collapsed: collapsed},
	}
	w.queue = append(w.queue, []automaton.Edge{{
		Src:       automaton.NoNode,
		Dest:      root,
		Component: automaton.Epsilon(),
		Kind:      automaton.EdgeEpsilon,
		Text:      automaton.EpsilonText,
	}})
	if err := w.loop(); err != nil {
		return nil, err
	}
	o.Logger.Debug("enumerated paths",
		"passes", passes, "nodes", collapsed.NumNodes(), "edges", collapsed.NumEdges(),
		"expansions", w.res.Expansions, "paths", len(w.res.Paths), "maxCycles", o.MaxCycles)
	return w.res, nil
}

// loop processes the queue until empty, budget exhaustion or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		path := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Expansions++
		if w.opts.MaxExpansions > 0 && w.res.Expansions > w.opts.MaxExpansions {
			return errors.Wrapf(ErrBudgetExceeded, "after %d expansions", w.opts.MaxExpansions)
		}

		last := path[len(path)-1]
		if w.graph.Kind(last.Dest) == automaton.KindAccept {
			w.record(path)
		}
		for _, next := range w.nextEdges(last, path) {
			extended := make([]automaton.Edge, len(path), len(path)+1)
			copy(extended, path)
			w.queue = append(w.queue, append(extended, next))
		}
	}
	return nil
}

// nextEdges returns the edges leaving last.Dest that path may still take.
func (w *walker) nextEdges(last automaton.Edge, path []automaton.Edge) []automaton.Edge {
	k := w.opts.MaxCycles
	var out []automaton.Edge
	for _, next := range w.graph.Edges(last.Dest) {
		visitedN, visitedE := 0, 0
		for _, e := range path {
			if e.Dest == next.Dest {
				visitedN++
			}
			if e.Equal(next) {
				visitedE++
			}
		}
		if w.graph.HasOperator(next.Dest, automaton.OneOrMore) && visitedN > k {
			continue
		}
		if visitedE > k || visitedN > k+1 {
			continue
		}
		out = append(out, next)
	}
	return out
}

// record appends the atom edges of path to the result unless an equal path
// was already recorded.
func (w *walker) record(path []automaton.Edge) {
	p := make(Path, 0, len(path))
	for _, e := range path {
		if !e.Component.IsEpsilon() {
			p = append(p, e)
		}
	}
	for _, seen := range w.res.Paths {
		if seen.Equal(p) {
			return
		}
	}
	w.res.Paths = append(w.res.Paths, p)
}
