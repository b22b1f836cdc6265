// SPDX-License-Identifier: MIT

package combine

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/enumerate"
)

// Combine folds graphs left to right with the combinator named by kind:
// the first two are combined, then the running result with each following
// graph. tables[i] describes graphs[i]. Each input is minimized on a copy
// before use; the inputs themselves are not modified.
//
// If some step produces an empty graph the fold stops and Combine returns
// an empty graph, an empty table and no paths. Otherwise the paths of the
// final graph are enumerated with MaxCycles, which must lie in
// [0, enumerate.MaxCycleDepth].
func Combine(kind Kind, graphs []*automaton.Graph, tables []category.Table, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if kind != KindAnd && kind != KindMerge {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", string(kind))
	}
	if len(graphs) < 2 {
		return nil, errors.Wrapf(ErrTooFewGraphs, "got %d", len(graphs))
	}
	if len(tables) != len(graphs) {
		return nil, errors.Wrapf(ErrTableMismatch, "%d graphs, %d tables", len(graphs), len(tables))
	}
	if kind == KindAnd {
		if err := o.Tolerance.Validate(); err != nil {
			return nil, err
		}
	}
	if err := enumerate.CheckCycleDepth(o.MaxCycles); err != nil {
		return nil, err
	}

	step := func(a, b *automaton.Graph, ca, cb category.Table) (*automaton.Graph, category.Table, error) {
		if kind == KindAnd {
			return And(a, b, ca, cb, o.Tolerance, opts...)
		}
		return Merge(a, b, ca, cb, opts...)
	}

	inputs := make([]*automaton.Graph, len(graphs))
	for i, g := range graphs {
		if g == nil {
			return nil, errors.Wrapf(ErrNilGraph, "graph %d", i)
		}
		inputs[i] = g.Clone()
		inputs[i].Minimize()
	}

	cur, table := inputs[0], tables[0]
	for i := 1; i < len(inputs); i++ {
		next, nextTable, err := step(cur, inputs[i], table, tables[i])
		if err != nil {
			return nil, errors.Wrapf(err, "combining graph %d", i)
		}
		if next.NumNodes() == 0 {
			o.Logger.Debug("combination is empty", "kind", string(kind), "step", i)
			return &Result{Graph: next, Categories: category.Table{}}, nil
		}
		cur, table = next, nextTable
	}

	res, err := enumerate.Paths(cur,
		enumerate.WithContext(o.Ctx),
		enumerate.WithMaxCycles(o.MaxCycles),
		enumerate.WithLogger(o.Logger))
	if err != nil {
		return nil, err
	}
	return &Result{Graph: cur, Categories: table, Paths: res.Paths}, nil
}
