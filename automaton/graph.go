// SPDX-License-Identifier: MIT

package automaton

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/category"
)

// Graph owns every node of one automaton. Edge destinations always name
// nodes of the same graph.
//
// A Graph is not safe for concurrent mutation.
type Graph struct {
	nodes  map[NodeID]*Node
	nextID NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// NewNode creates a node of the given kind and text and returns its id.
func (g *Graph) NewNode(kind NodeKind, text string) NodeID {
	g.nextID++
	id := g.nextID
	g.nodes[id] = &Node{ID: id, Kind: kind, Text: text}
	return id
}

// NewEpsilonNode creates an unlabeled epsilon node.
func (g *Graph) NewEpsilonNode() NodeID {
	return g.NewNode(KindEpsilon, EpsilonText)
}

// AddEdge appends e to the edges of e.Src.
// Returns ErrNodeNotFound when either endpoint is missing.
func (g *Graph) AddEdge(e Edge) error {
	src, ok := g.nodes[e.Src]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "edge source %d", e.Src)
	}
	if _, ok = g.nodes[e.Dest]; !ok {
		return errors.Wrapf(ErrNodeNotFound, "edge destination %d", e.Dest)
	}
	src.Edges = append(src.Edges, e)
	return nil
}

// AddEpsilonEdge connects src to dest with a structural edge.
func (g *Graph) AddEpsilonEdge(src, dest NodeID) error {
	return g.AddEdge(Edge{
		Src:         src,
		Dest:        dest,
		Component:   Epsilon(),
		Kind:        EdgeEpsilon,
		Text:        EpsilonText,
		Orientation: NoOrientation,
	})
}

// AddAtomEdge connects src to dest with an edge carrying cat under the atom
// name text.
func (g *Graph) AddAtomEdge(src, dest NodeID, cat category.Category, text string, o Orientation) error {
	return g.AddEdge(Edge{
		Src:         src,
		Dest:        dest,
		Component:   Categories(cat),
		Kind:        EdgeAtom,
		Text:        text,
		Orientation: o,
	})
}

// Has reports whether id is a node of g.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns a deep copy of node id.
func (g *Graph) Node(id NodeID) (Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, errors.Wrapf(ErrNodeNotFound, "node %d", id)
	}
	return *n.clone(), nil
}

// Edges returns a copy of the outgoing edges of id, or nil if id is absent.
func (g *Graph) Edges(id NodeID) []Edge {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]Edge, len(n.Edges))
	for i, e := range n.Edges {
		out[i] = e.clone()
	}
	return out
}

// Kind returns the kind of id; absent nodes report KindEpsilon.
func (g *Graph) Kind(id NodeID) NodeKind {
	if n, ok := g.nodes[id]; ok {
		return n.Kind
	}
	return KindEpsilon
}

// SetKind relabels id.
func (g *Graph) SetKind(id NodeID, kind NodeKind) error {
	n, ok := g.nodes[id]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "node %d", id)
	}
	n.Kind = kind
	return nil
}

// Text returns the display text of id.
func (g *Graph) Text(id NodeID) string {
	if n, ok := g.nodes[id]; ok {
		return n.Text
	}
	return ""
}

// SetText changes the display text of id.
func (g *Graph) SetText(id NodeID, text string) error {
	n, ok := g.nodes[id]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "node %d", id)
	}
	n.Text = text
	return nil
}

// Operators returns a copy of the operator tags of id, in tag order.
func (g *Graph) Operators(id NodeID) []Operator {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return append([]Operator(nil), n.Operators...)
}

// HasOperator reports whether id carries op.
func (g *Graph) HasOperator(id NodeID, op Operator) bool {
	n, ok := g.nodes[id]
	return ok && n.HasOperator(op)
}

// AddOperator tags id with op. OneOrMore is prepended so that it is seen
// before any other tag; every other operator is appended.
func (g *Graph) AddOperator(id NodeID, op Operator) error {
	n, ok := g.nodes[id]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "node %d", id)
	}
	if op == OneOrMore {
		n.Operators = append([]Operator{OneOrMore}, n.Operators...)
	} else {
		n.Operators = append(n.Operators, op)
	}
	return nil
}

// NodeIDs returns every node id in ascending order.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.Edges)
	}
	return total
}

// Root returns the root node: the node of kind Root, or failing that the
// node whose text is RootText (a root that is also an accept).
func (g *Graph) Root() (NodeID, bool) {
	var byText NodeID
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		if n.Kind == KindRoot {
			return id, true
		}
		if byText == NoNode && n.Text == RootText {
			byText = id
		}
	}
	return byText, byText != NoNode
}

// Accepts returns every node of kind Accept, ascending.
func (g *Graph) Accepts() []NodeID {
	var out []NodeID
	for _, id := range g.NodeIDs() {
		if g.nodes[id].Kind == KindAccept {
			out = append(out, id)
		}
	}
	return out
}

// RemoveNodeLabels turns the root and accept nodes back into epsilon nodes.
// Used when a finished graph becomes a fragment of a larger one.
func (g *Graph) RemoveNodeLabels() {
	for _, n := range g.nodes {
		if n.Kind == KindRoot || n.Kind == KindAccept || n.Text == RootText {
			n.Kind = KindEpsilon
			n.Text = EpsilonText
		}
	}
}

// RemoveNode deletes id. Callers pair it with RemoveNodeFromEdges so that
// no edge keeps pointing at id.
func (g *Graph) RemoveNode(id NodeID) {
	delete(g.nodes, id)
}

// RemoveNodeFromEdges rewrites every edge pointing at deleted to point at
// replacement instead, or drops those edges when replacement is NoNode.
func (g *Graph) RemoveNodeFromEdges(replacement, deleted NodeID) {
	for _, n := range g.nodes {
		kept := n.Edges[:0]
		for _, e := range n.Edges {
			if e.Dest == deleted {
				if replacement == NoNode {
					continue
				}
				e.Dest = replacement
			}
			kept = append(kept, e)
		}
		n.Edges = kept
	}
}

// MoveEdges re-sources every outgoing edge of from onto to, appending them
// after to's own edges. Edges from a node to itself stay loops on to.
func (g *Graph) MoveEdges(from, to NodeID) error {
	src, ok := g.nodes[from]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "node %d", from)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "node %d", to)
	}
	for _, e := range src.Edges {
		e.Src = to
		if e.Dest == from {
			e.Dest = to
		}
		dst.Edges = append(dst.Edges, e)
	}
	src.Edges = nil
	return nil
}

// HasEdgeTo reports whether src has an edge whose destination is dest.
func (g *Graph) HasEdgeTo(src, dest NodeID) bool {
	n, ok := g.nodes[src]
	if !ok {
		return false
	}
	for _, e := range n.Edges {
		if e.Dest == dest {
			return true
		}
	}
	return false
}

// Parents returns, for every node with incoming edges, the ascending ids of
// the nodes that have an edge to it.
func (g *Graph) Parents() map[NodeID][]NodeID {
	out := make(map[NodeID][]NodeID, len(g.nodes))
	for dest, set := range g.parentSets() {
		ids := make([]NodeID, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out[dest] = ids
	}
	return out
}

type parentSet map[NodeID]map[NodeID]struct{}

func (p parentSet) add(dest, src NodeID) {
	set, ok := p[dest]
	if !ok {
		set = make(map[NodeID]struct{})
		p[dest] = set
	}
	set[src] = struct{}{}
}

func (p parentSet) remove(dest, src NodeID) {
	delete(p[dest], src)
}

func (p parentSet) sorted(dest NodeID) []NodeID {
	ids := make([]NodeID, 0, len(p[dest]))
	for id := range p[dest] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (g *Graph) parentSets() parentSet {
	p := make(parentSet, len(g.nodes))
	for _, n := range g.nodes {
		for _, e := range n.Edges {
			p.add(e.Dest, e.Src)
		}
	}
	return p
}

// Reachable returns the set of nodes reachable from start, start included.
func (g *Graph) Reachable(start NodeID) map[NodeID]bool {
	seen := map[NodeID]bool{}
	if !g.Has(start) {
		return seen
	}
	queue := []NodeID{start}
	seen[start] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, e := range g.nodes[id].Edges {
			if !seen[e.Dest] {
				seen[e.Dest] = true
				queue = append(queue, e.Dest)
			}
		}
	}
	return seen
}

// RemoveSubgraph deletes head and every node reachable from it, together
// with all edges into the deleted nodes.
func (g *Graph) RemoveSubgraph(head NodeID) {
	doomed := g.Reachable(head)
	for id := range doomed {
		delete(g.nodes, id)
	}
	for _, n := range g.nodes {
		kept := n.Edges[:0]
		for _, e := range n.Edges {
			if !doomed[e.Dest] {
				kept = append(kept, e)
			}
		}
		n.Edges = kept
	}
}

// RemoveDuplicateEdges drops every edge that repeats an earlier edge of the
// same node in all fields.
func (g *Graph) RemoveDuplicateEdges() {
	for _, n := range g.nodes {
		kept := n.Edges[:0]
		for _, e := range n.Edges {
			dup := false
			for _, k := range kept {
				if k.Equal(e) {
					dup = true
					break
				}
			}
			if !dup {
				kept = append(kept, e)
			}
		}
		n.Edges = kept
	}
}
