// SPDX-License-Identifier: MIT

package combine

import (
	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
)

// And intersects two labeled automata. A product edge exists wherever both
// operands have an atom edge with the same orientation whose categories
// are in common under tol; epsilon edges of each operand are copied across
// the other operand's nodes. Nodes that are not on a root-to-accept walk are
// removed.
//
// The returned table holds an entry per combined atom text. An empty graph
// (no nodes) means no design satisfies both operands.
//
// Complexity: O(V1·V2 + E1·E2) product construction.
func And(g1, g2 *automaton.Graph, c1, c2 category.Table, tol category.Tolerance, opts ...Option) (*automaton.Graph, category.Table, error) {
	if err := tol.Validate(); err != nil {
		return nil, nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p, err := newProduct(g1, g2, c1, c2, o)
	if err != nil {
		return nil, nil, err
	}
	if err = p.intersectEdges(tol); err != nil {
		return nil, nil, err
	}
	p.propagateBlanks(sideOne)
	p.propagateBlanks(sideTwo)
	p.prune()

	out, err := p.materialize()
	if err != nil {
		return nil, nil, err
	}
	o.Logger.Debug("and product",
		"tolerance", int(tol), "nodes", out.NumNodes(), "edges", out.NumEdges(), "atoms", len(p.table))
	return out, p.table, nil
}

// intersectEdges adds a tensor edge for every pair of atom edges leaving a
// product node's components whose categories are in common.
func (p *product) intersectEdges(tol category.Tolerance) error {
	sep := category.IntersectSeparator(tol)
	for _, id := range p.order {
		if err := p.opts.Ctx.Err(); err != nil {
			return err
		}
		for _, e1 := range p.g1.Edges(id.one) {
			if e1.Kind == automaton.EdgeEpsilon {
				continue
			}
			for _, e2 := range p.g2.Edges(id.two) {
				if e2.Kind == automaton.EdgeEpsilon || e1.Orientation != e2.Orientation {
					continue
				}
				common, err := category.Intersect(e1.Component.Category(), e2.Component.Category(), tol)
				if err != nil {
					return err
				}
				if common.Empty() {
					continue
				}
				p.add(productEdge{
					src:         id,
					dest:        pair{e1.Dest, e2.Dest},
					component:   automaton.Categories(common),
					kind:        automaton.EdgeAtom,
					text:        p.table.Register(e1.Text, e2.Text, sep, common),
					orientation: e1.Orientation,
					tensor:      true,
				})
			}
		}
	}
	return nil
}
