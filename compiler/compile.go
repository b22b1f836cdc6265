// SPDX-License-Identifier: MIT

package compiler

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/enumerate"
	"github.com/katalvlaran/constellation/expr"
)

// Compile turns e into a labeled automaton over table and enumerates its
// design templates.
//
// Implementation:
//   - Stage 1: Validate the cycle limit before touching any graph.
//   - Stage 2: Push reverse complements down to the atoms.
//   - Stage 3: Build the fragments, then label accepts and the root.
//   - Stage 4: Project onto the node representation if requested.
//   - Stage 5: Enumerate the paths of a minimized copy.
//
// Returns ErrCycleDepthExceeded, ErrConstruction, ErrUnknownAtom,
// ErrUnsupportedOperation, ErrInvalidTolerance or an enumeration error.
func Compile(e expr.Expr, table category.Table, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := enumerate.CheckCycleDepth(o.MaxCycles); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.Wrap(ErrConstruction, "nil expression")
	}

	b := NewBuilder(table, opts...)
	g := automaton.New()
	var s Stack
	if err := b.Build(g, &s, expr.Normalize(e)); err != nil {
		return nil, err
	}
	if err := AddAcceptNodes(g, &s); err != nil {
		return nil, err
	}
	root, err := GenerateRootNode(g, &s)
	if err != nil {
		return nil, err
	}
	if o.Representation == NodeRepresentation {
		g = g.ToNodeForm()
	}

	paths, err := enumerate.Paths(g,
		enumerate.WithContext(o.Ctx),
		enumerate.WithMaxCycles(o.MaxCycles),
		enumerate.WithMaxExpansions(o.PathBudget),
		enumerate.WithLogger(o.Logger))
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("compiled",
		"expr", e.String(), "representation", o.Representation.String(),
		"nodes", g.NumNodes(), "edges", g.NumEdges(), "paths", len(paths.Paths))

	return &Result{
		Graph:      g,
		Root:       root,
		Accepts:    g.Accepts(),
		Minimized:  paths.Collapsed,
		Paths:      paths.Paths,
		Categories: b.Categories(),
	}, nil
}
