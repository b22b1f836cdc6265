// SPDX-License-Identifier: MIT

package automaton

// Clone returns a deep copy of g. The clone continues g's id sequence.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	cp := &Graph{
		nodes:  make(map[NodeID]*Node, len(g.nodes)),
		nextID: g.nextID,
	}
	for id, n := range g.nodes {
		cp.nodes[id] = n.clone()
	}
	return cp
}

// Equal reports whether g and o hold the same node ids with the same kinds,
// texts, operator tags (in order) and edges (in order). The id counter is
// not compared.
func (g *Graph) Equal(o *Graph) bool {
	if g == nil || o == nil {
		return g == o
	}
	if len(g.nodes) != len(o.nodes) {
		return false
	}
	for id, n := range g.nodes {
		m, ok := o.nodes[id]
		if !ok || !nodesEqual(n, m) {
			return false
		}
	}
	return true
}

func nodesEqual(a, b *Node) bool {
	if a.Kind != b.Kind || a.Text != b.Text {
		return false
	}
	if len(a.Operators) != len(b.Operators) || len(a.Edges) != len(b.Edges) {
		return false
	}
	for i := range a.Operators {
		if a.Operators[i] != b.Operators[i] {
			return false
		}
	}
	for i := range a.Edges {
		if !a.Edges[i].Equal(b.Edges[i]) {
			return false
		}
	}
	return true
}

// Splice copies every node of other into g under fresh ids and returns the
// mapping from other's ids to the new ones. other is left untouched.
//
// Implementation:
//   - Stage 1: issue a fresh id for each node of other, in ascending order.
//   - Stage 2: copy nodes and rewrite edge endpoints through the mapping.
func (g *Graph) Splice(other *Graph) map[NodeID]NodeID {
	ids := other.NodeIDs()
	remap := make(map[NodeID]NodeID, len(ids))
	for _, id := range ids {
		g.nextID++
		remap[id] = g.nextID
	}
	for _, id := range ids {
		n := other.nodes[id].clone()
		n.ID = remap[id]
		for i := range n.Edges {
			n.Edges[i].Src = remap[n.Edges[i].Src]
			n.Edges[i].Dest = remap[n.Edges[i].Dest]
		}
		g.nodes[n.ID] = n
	}
	return remap
}
