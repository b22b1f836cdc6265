// SPDX-License-Identifier: MIT

package combine

import (
	"github.com/samber/lo"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
)

// merger extends a product with the set of tensor nodes: pairs touched by an
// edge matched across both operands.
type merger struct {
	*product
	tensor map[pair]bool
}

// Merge unions two labeled automata part by part.
//
// Atom edges whose categories share an identifier become tensor edges
// carrying the union of both categories. Tensor nodes left without edges are
// linked to their row and column. Edges of either operand that matched
// nothing are copied into the cartesian-only part of the product, tagged
// with their side, and linked back into the tensor part. Finally only walks
// that take at least one tensor edge and never step from side one straight
// into side two (or back) are kept.
//
// The result is the union of both design spaces only for operands of the
// same shape. A design one operand accepts without matching a part of the
// other is dropped: (zero-or-one a) merge a loses the empty design, and
// a merge (a then b) keeps only the merged a followed by b.
//
// An empty graph means the operands have no part in common.
func Merge(g1, g2 *automaton.Graph, c1, c2 category.Table, opts ...Option) (*automaton.Graph, category.Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p, err := newProduct(g1, g2, c1, c2, o)
	if err != nil {
		return nil, nil, err
	}
	m := &merger{product: p, tensor: make(map[pair]bool)}
	if err = m.tensorEdges(); err != nil {
		return nil, nil, err
	}
	m.inferTensorToTensor()
	for _, s := range []side{sideOne, sideTwo} {
		m.inferCartesianToTensor(s, m.propagateUnmatched(s))
	}
	m.keepTensorWalks()
	m.prune()

	out, err := m.materialize()
	if err != nil {
		return nil, nil, err
	}
	o.Logger.Debug("merge product",
		"tensorNodes", len(m.tensor), "nodes", out.NumNodes(), "edges", out.NumEdges(), "atoms", len(m.table))
	return out, m.table, nil
}

func (m *merger) tensorEdges() error {
	for _, id := range m.order {
		if err := m.opts.Ctx.Err(); err != nil {
			return err
		}
		for _, e1 := range m.g1.Edges(id.one) {
			if e1.Kind == automaton.EdgeEpsilon {
				continue
			}
			for _, e2 := range m.g2.Edges(id.two) {
				if e2.Kind == automaton.EdgeEpsilon || e1.Orientation != e2.Orientation {
					continue
				}
				union := category.Merge(e1.Component.Category(), e2.Component.Category())
				if union.Empty() {
					continue
				}
				dest := pair{e1.Dest, e2.Dest}
				m.add(productEdge{
					src:         id,
					dest:        dest,
					component:   automaton.Categories(union),
					kind:        automaton.EdgeAtom,
					text:        m.table.Register(e1.Text, e2.Text, category.MergeSeparator, union),
					orientation: e1.Orientation,
					tensor:      true,
				})
				m.tensor[id] = true
				m.tensor[dest] = true
			}
		}
	}
	return nil
}

// tensorNodes returns the tensor set in product order.
func (m *merger) tensorNodes() []pair {
	return lo.Filter(m.order, func(id pair, _ int) bool { return m.tensor[id] })
}

func sameRowOrColumn(a, b pair) bool {
	return a != b && (a.one == b.one || a.two == b.two)
}

func linker(src, dest pair, s side) productEdge {
	return productEdge{
		src:       src,
		dest:      dest,
		component: automaton.Epsilon(),
		kind:      automaton.EdgeEpsilon,
		text:      automaton.EpsilonText,
		side:      s,
	}
}

// inferTensorToTensor links tensor nodes that are stuck, i.e. entered but
// without edges and not accepting, to every tensor node in their row or
// column that has edges or accepts.
func (m *merger) inferTensorToTensor() {
	entered := make(map[pair]bool)
	for _, id := range m.order {
		for _, e := range m.nodes[id].edges {
			entered[e.dest] = true
		}
	}
	tensors := m.tensorNodes()
	var linkers []productEdge
	for _, t := range tensors {
		n := m.nodes[t]
		if len(n.edges) > 0 || n.kind == automaton.KindAccept || (t != m.root && !entered[t]) {
			continue
		}
		for _, u := range tensors {
			if !sameRowOrColumn(t, u) {
				continue
			}
			if un := m.nodes[u]; len(un.edges) == 0 && un.kind != automaton.KindAccept {
				continue
			}
			e := linker(t, u, neutral)
			if m.createsEmptyCycle(e) || m.edgeExists(e) {
				continue
			}
			linkers = append(linkers, e)
		}
	}
	for _, e := range linkers {
		m.add(e)
	}
}

// propagateUnmatched copies the epsilon edges of operand s, and its atom
// edges that matched nothing, onto every product node holding their source.
// It returns the cartesian-only nodes touched.
func (m *merger) propagateUnmatched(s side) []pair {
	g := m.graph(s)
	var cartesian []pair
	for _, id := range g.NodeIDs() {
		for _, e := range g.Edges(id) {
			if e.Kind != automaton.EdgeEpsilon && m.matched(s, e) {
				continue
			}
			for _, src := range m.order {
				if src.on(s) != e.Src {
					continue
				}
				dest := src.with(s, e.Dest)
				if m.tensor[src] && m.tensor[dest] {
					continue
				}
				ne := productEdge{
					src:         src,
					dest:        dest,
					component:   e.Component,
					kind:        e.Kind,
					text:        e.Text,
					orientation: e.Orientation,
					side:        s,
					propagated:  true,
				}
				if m.createsEmptyCycle(ne) || m.edgeExists(ne) {
					continue
				}
				m.add(ne)
				for _, end := range []pair{src, dest} {
					if !m.tensor[end] {
						cartesian = append(cartesian, end)
					}
				}
			}
		}
	}
	return lo.Uniq(cartesian)
}

// matched reports whether atom edge e of operand s shares an identifier with
// a tensor edge leaving a tensor node built on e's source.
func (m *merger) matched(s side, e automaton.Edge) bool {
	for _, t := range m.tensorNodes() {
		if t.on(s) != e.Src {
			continue
		}
		for _, te := range m.nodes[t].edges {
			if te.tensor && te.component.Category().Shares(e.Component.Category()) {
				return true
			}
		}
	}
	return false
}

// inferCartesianToTensor links each cartesian-only node to the tensor nodes
// in its row or column. The linkers carry side s.
func (m *merger) inferCartesianToTensor(s side, cartesian []pair) {
	tensors := m.tensorNodes()
	var linkers []productEdge
	for _, c := range cartesian {
		for _, t := range tensors {
			if !sameRowOrColumn(c, t) {
				continue
			}
			e := linker(c, t, s)
			if m.createsEmptyCycle(e) || m.edgeExists(e) {
				continue
			}
			linkers = append(linkers, e)
		}
	}
	for _, e := range linkers {
		m.add(e)
	}
}

// createsEmptyCycle reports whether adding e would close a two-node cycle
// with an edge already leaving e.dest. Between two epsilon edges the
// propagated one wins: a linker loses against a propagated edge, and a
// propagated edge evicts a linker. A linker never closes a cycle over an
// atom edge.
func (m *merger) createsEmptyCycle(e productEdge) bool {
	dest := m.nodes[e.dest]
	evict := -1
	for i, back := range dest.edges {
		if back.dest != e.src {
			continue
		}
		if back.kind != automaton.EdgeEpsilon || e.kind != automaton.EdgeEpsilon {
			if !e.propagated {
				return true
			}
			continue
		}
		switch {
		case back.propagated && !e.propagated:
			return true
		case e.propagated && !back.propagated:
			evict = i
		default:
			return true
		}
	}
	if evict >= 0 {
		dest.edges = append(dest.edges[:evict], dest.edges[evict+1:]...)
	}
	return false
}

// edgeExists reports whether e.src already has an edge to e.dest with the
// same component.
func (m *merger) edgeExists(e productEdge) bool {
	return lo.SomeBy(m.nodes[e.src].edges, func(o productEdge) bool {
		return o.dest == e.dest && o.kind == e.kind && o.component.Equal(e.component)
	})
}

// walkState is a position of the keep filter: the node reached, the side
// region the walk is in (neutral right after a tensor edge) and whether a
// tensor edge was taken.
type walkState struct {
	node pair
	mode side
	seen bool
}

func advance(cur walkState, e productEdge) (walkState, bool) {
	switch {
	case e.tensor:
		return walkState{node: e.dest, mode: neutral, seen: true}, true
	case e.side == neutral:
		return walkState{node: e.dest, mode: cur.mode, seen: cur.seen}, true
	case cur.mode != neutral && cur.mode != e.side:
		return walkState{}, false
	default:
		return walkState{node: e.dest, mode: e.side, seen: cur.seen}, true
	}
}

// keepTensorWalks keeps the edges lying on a root-to-accept walk that takes
// a tensor edge and does not cross between the two side regions. Nodes left
// without edges are removed unless they accept.
func (m *merger) keepTensorWalks() {
	type step struct {
		from walkState
		edge int
		to   walkState
	}
	start := walkState{node: m.root}
	reached := map[walkState]bool{start: true}
	queue := []walkState{start}
	var steps []step
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i, e := range m.nodes[cur.node].edges {
			next, ok := advance(cur, e)
			if !ok {
				continue
			}
			steps = append(steps, step{from: cur, edge: i, to: next})
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	preds := make(map[walkState][]walkState)
	for _, st := range steps {
		preds[st.to] = append(preds[st.to], st.from)
	}
	good := make(map[walkState]bool)
	for s := range reached {
		if s.seen && m.nodes[s.node].kind == automaton.KindAccept {
			good[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, pr := range preds[cur] {
			if !good[pr] {
				good[pr] = true
				queue = append(queue, pr)
			}
		}
	}

	keep := make(map[pair]map[int]bool)
	for _, st := range steps {
		if !good[st.to] {
			continue
		}
		if keep[st.from.node] == nil {
			keep[st.from.node] = make(map[int]bool)
		}
		keep[st.from.node][st.edge] = true
	}

	kept := m.order[:0]
	for _, id := range m.order {
		n := m.nodes[id]
		n.edges = lo.Filter(n.edges, func(_ productEdge, i int) bool { return keep[id][i] })
		if len(n.edges) == 0 && n.kind != automaton.KindAccept {
			delete(m.nodes, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
}
