// SPDX-License-Identifier: MIT

package combine

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
)

// pair identifies a product node by its operand node ids.
type pair struct {
	one, two automaton.NodeID
}

// side names the operand an edge was propagated from.
type side int

const (
	neutral side = iota
	sideOne
	sideTwo
)

// on returns the component of p belonging to operand s.
func (p pair) on(s side) automaton.NodeID {
	if s == sideTwo {
		return p.two
	}
	return p.one
}

// with returns p with the component of operand s replaced by id.
func (p pair) with(s side, id automaton.NodeID) pair {
	if s == sideTwo {
		p.two = id
	} else {
		p.one = id
	}
	return p
}

// productEdge is an edge of the product under construction.
type productEdge struct {
	src, dest   pair
	component   automaton.Component
	kind        automaton.EdgeKind
	text        string
	orientation automaton.Orientation

	// tensor marks edges matched across both operands.
	tensor bool
	// side is the operand a propagated edge or cartesian linker came from.
	side side
	// propagated marks edges copied from an operand, as opposed to linkers.
	propagated bool
}

type productNode struct {
	id        pair
	kind      automaton.NodeKind
	text      string
	operators []automaton.Operator
	edges     []productEdge
}

// product is the cartesian product of two labeled operands.
type product struct {
	g1, g2 *automaton.Graph
	c1, c2 category.Table
	root   pair
	nodes  map[pair]*productNode
	order  []pair
	table  category.Table
	opts   Options
}

// newProduct validates the operands and creates every node pair. Pairs are
// ordered by operand one id, then operand two id.
func newProduct(g1, g2 *automaton.Graph, c1, c2 category.Table, o Options) (*product, error) {
	if g1 == nil || g2 == nil {
		return nil, ErrNilGraph
	}
	r1, ok1 := g1.Root()
	r2, ok2 := g2.Root()
	if !ok1 || !ok2 {
		return nil, ErrUnlabeledGraph
	}
	if o.MaxNodes > 0 && g1.NumNodes()*g2.NumNodes() > o.MaxNodes {
		return nil, errors.Wrapf(ErrBudgetExceeded, "%d x %d nodes, limit %d",
			g1.NumNodes(), g2.NumNodes(), o.MaxNodes)
	}

	p := &product{
		g1: g1, g2: g2, c1: c1, c2: c2,
		root:  pair{r1, r2},
		nodes: make(map[pair]*productNode, g1.NumNodes()*g2.NumNodes()),
		table: category.Table{},
		opts:  o,
	}
	for _, a := range g1.NodeIDs() {
		if err := p.opts.Ctx.Err(); err != nil {
			return nil, err
		}
		for _, b := range g2.NodeIDs() {
			id := pair{a, b}
			n := &productNode{id: id, kind: automaton.KindEpsilon, text: automaton.EpsilonText}
			accept := g1.Kind(a) == automaton.KindAccept && g2.Kind(b) == automaton.KindAccept
			if accept {
				n.kind, n.text = automaton.KindAccept, automaton.AcceptText
			} else {
				n.operators = assignOperators(g1.Operators(a), g2.Operators(b))
			}
			if id == p.root {
				n.text = automaton.RootText
				if !accept {
					n.kind = automaton.KindRoot
				}
			}
			p.nodes[id] = n
			p.order = append(p.order, id)
		}
	}
	return p, nil
}

// graph returns the operand on side s.
func (p *product) graph(s side) *automaton.Graph {
	if s == sideTwo {
		return p.g2
	}
	return p.g1
}

func (p *product) add(e productEdge) {
	n := p.nodes[e.src]
	n.edges = append(n.edges, e)
}

// assignOperators derives the tags of a product node from the tags of its
// two operand nodes. Then survives from either side; repetition tags
// survive only where both sides allow repetition.
func assignOperators(o1, o2 []automaton.Operator) []automaton.Operator {
	has := func(ops []automaton.Operator, op automaton.Operator) bool { return lo.Contains(ops, op) }

	var out []automaton.Operator
	if has(o1, automaton.Then) || has(o2, automaton.Then) {
		out = append(out, automaton.Then)
	}
	if len(o1) == 0 || len(o2) == 0 {
		return out
	}
	if has(o1, automaton.OneOrMore) && !has(o2, automaton.ZeroOrOne) {
		out = append([]automaton.Operator{automaton.OneOrMore}, out...)
	}
	if has(o1, automaton.ZeroOrMore) {
		switch {
		case has(o2, automaton.ZeroOrOne):
			out = append(out, automaton.ZeroOrOne)
		case has(o2, automaton.OneOrMore):
			out = append([]automaton.Operator{automaton.OneOrMore}, out...)
		default:
			out = append(out, automaton.ZeroOrMore)
		}
	}
	if has(o1, automaton.ZeroOrOne) && (has(o2, automaton.ZeroOrMore) || has(o2, automaton.ZeroOrOne)) {
		out = append(out, automaton.ZeroOrOne)
	}
	return lo.Uniq(out)
}

// propagateBlanks copies every epsilon edge of operand s onto each product
// node holding its source, keeping the other component fixed.
func (p *product) propagateBlanks(s side) {
	g := p.graph(s)
	for _, id := range g.NodeIDs() {
		for _, e := range g.Edges(id) {
			if e.Kind != automaton.EdgeEpsilon {
				continue
			}
			for _, src := range p.order {
				if src.on(s) != e.Src {
					continue
				}
				p.add(productEdge{
					src:        src,
					dest:       src.with(s, e.Dest),
					component:  automaton.Epsilon(),
					kind:       automaton.EdgeEpsilon,
					text:       e.Text,
					side:       s,
					propagated: true,
				})
			}
		}
	}
}

// prune keeps the nodes that are reachable from the root and reach an
// accept node, and drops the edges touching anything else.
func (p *product) prune() {
	if _, ok := p.nodes[p.root]; !ok {
		p.nodes = map[pair]*productNode{}
		p.order = nil
		return
	}
	forward := map[pair]bool{p.root: true}
	queue := []pair{p.root}
	parents := make(map[pair][]pair)
	for _, id := range p.order {
		for _, e := range p.nodes[id].edges {
			parents[e.dest] = append(parents[e.dest], id)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range p.nodes[cur].edges {
			if !forward[e.dest] {
				forward[e.dest] = true
				queue = append(queue, e.dest)
			}
		}
	}

	backward := make(map[pair]bool)
	for _, id := range p.order {
		if p.nodes[id].kind == automaton.KindAccept {
			backward[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, par := range parents[cur] {
			if !backward[par] {
				backward[par] = true
				queue = append(queue, par)
			}
		}
	}

	kept := p.order[:0]
	for _, id := range p.order {
		if forward[id] && backward[id] {
			kept = append(kept, id)
			continue
		}
		delete(p.nodes, id)
	}
	p.order = kept
	for _, id := range p.order {
		n := p.nodes[id]
		n.edges = lo.Filter(n.edges, func(e productEdge, _ int) bool {
			_, ok := p.nodes[e.dest]
			return ok
		})
	}
}

// materialize renumbers the surviving pairs into a fresh graph and copies
// the categories of propagated atom texts into the output table. A product
// without a surviving root yields an empty graph.
func (p *product) materialize() (*automaton.Graph, error) {
	out := automaton.New()
	if _, ok := p.nodes[p.root]; !ok {
		p.table = category.Table{}
		return out, nil
	}
	ids := make(map[pair]automaton.NodeID, len(p.order))
	for _, id := range p.order {
		n := p.nodes[id]
		ids[id] = out.NewNode(n.kind, n.text)
		for _, op := range n.operators {
			if err := out.AddOperator(ids[id], op); err != nil {
				return nil, errors.Wrapf(err, "operator of pair %v", id)
			}
		}
	}
	for _, id := range p.order {
		for _, e := range p.nodes[id].edges {
			err := out.AddEdge(automaton.Edge{
				Src:         ids[e.src],
				Dest:        ids[e.dest],
				Component:   e.component,
				Kind:        e.kind,
				Text:        e.text,
				Orientation: e.orientation,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "edge %v -> %v", e.src, e.dest)
			}
			if e.kind == automaton.EdgeAtom {
				p.carryCategory(e.text)
			}
		}
	}
	return out, nil
}

func (p *product) carryCategory(text string) {
	if _, ok := p.table.Lookup(text); ok {
		return
	}
	for _, src := range []category.Table{p.c1, p.c2} {
		if c, ok := src.Lookup(text); ok {
			p.table[text] = c.Clone()
			return
		}
	}
}
