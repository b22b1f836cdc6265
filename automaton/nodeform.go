// SPDX-License-Identifier: MIT

package automaton

// ToNodeForm returns a copy of g in which every part is also a node: each
// atom edge u→v becomes u→a→v, where a is a new KindAtom node named after
// the part, u→a is an epsilon edge and a→v keeps the atom edge.
// Accepted paths are unchanged.
func (g *Graph) ToNodeForm() *Graph {
	out := g.Clone()
	for _, id := range g.NodeIDs() {
		n := out.nodes[id]
		edges := n.Edges
		n.Edges = make([]Edge, 0, len(edges))
		for _, e := range edges {
			if e.Kind != EdgeAtom {
				n.Edges = append(n.Edges, e)
				continue
			}
			atom := out.NewNode(KindAtom, e.Text)
			n.Edges = append(n.Edges, Edge{
				Src:         id,
				Dest:        atom,
				Component:   Epsilon(),
				Kind:        EdgeEpsilon,
				Text:        EpsilonText,
				Orientation: NoOrientation,
			})
			e.Src = atom
			out.nodes[atom].Edges = []Edge{e}
		}
	}
	return out
}
