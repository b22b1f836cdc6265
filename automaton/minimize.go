// SPDX-License-Identifier: MIT

package automaton

// CollapseEpsilons runs one simplification pass over the epsilon nodes of g,
// in ascending id order, then removes duplicate parallel edges.
//
// For each epsilon node n:
//  1. n has a single parent p whose only edge to n is an epsilon edge:
//     n's edges and operator tags move onto p and n is deleted.
//  2. n carries an operator tag: n is kept.
//  3. An epsilon edge n→d is dropped when every parent of n enters n by
//     epsilon edges only and already has an epsilon edge to d.
//  4. n has no outgoing edges left: n and every edge into it are deleted.
//  5. n has several outgoing edges: n is kept.
//  6. n has one outgoing edge to child: each parent is connected to child
//     directly and n is deleted. Refused when child is a parent of n, and
//     when an atom edge would replace an atom edge into n.
//
// One pass is not a fixpoint in general; see Minimize.
func (g *Graph) CollapseEpsilons() {
	parents := g.parentSets()
	for _, id := range g.NodeIDs() {
		n, ok := g.nodes[id]
		if !ok || n.Kind != KindEpsilon {
			continue
		}
		g.collapseNode(parents, id)
	}
	g.RemoveDuplicateEdges()
}

// Minimize repeats CollapseEpsilons until a pass leaves g unchanged and
// returns the number of passes run, the unchanged one included.
func (g *Graph) Minimize() int {
	for passes := 1; ; passes++ {
		prev := g.Clone()
		g.CollapseEpsilons()
		if g.Equal(prev) {
			return passes
		}
	}
}

func (g *Graph) collapseNode(parents parentSet, id NodeID) {
	n := g.nodes[id]
	pids := parents.sorted(id)

	if g.absorbIntoParent(parents, n, pids) {
		return
	}
	if len(n.Operators) > 0 {
		return
	}
	g.dropShortcutEdges(parents, n, pids)

	switch len(n.Edges) {
	case 0:
		delete(g.nodes, id)
		delete(parents, id)
		g.RemoveNodeFromEdges(NoNode, id)
		return
	case 1:
		g.bypass(parents, n, pids)
	}
}

// absorbIntoParent applies rule 1.
func (g *Graph) absorbIntoParent(parents parentSet, n *Node, pids []NodeID) bool {
	if len(pids) != 1 || pids[0] == n.ID {
		return false
	}
	p := g.nodes[pids[0]]
	var into []Edge
	for _, e := range p.Edges {
		if e.Dest == n.ID {
			into = append(into, e)
		}
	}
	if len(into) != 1 || !into[0].Component.IsEpsilon() {
		return false
	}
	for _, e := range n.Edges {
		if e.Dest == n.ID {
			// a loop on n would turn into a loop on p and leak
			// into p's other branches
			return false
		}
	}

	kept := p.Edges[:0]
	for _, e := range p.Edges {
		if e.Dest != n.ID {
			kept = append(kept, e)
		}
	}
	p.Edges = kept
	for _, e := range n.Edges {
		e.Src = p.ID
		p.Edges = append(p.Edges, e)
		parents.remove(e.Dest, n.ID)
		parents.add(e.Dest, p.ID)
	}
	p.Operators = append(p.Operators, n.Operators...)
	delete(g.nodes, n.ID)
	delete(parents, n.ID)
	return true
}

// dropShortcutEdges applies rule 3.
func (g *Graph) dropShortcutEdges(parents parentSet, n *Node, pids []NodeID) {
	if len(pids) == 0 {
		return
	}
	covered := func(dest NodeID) bool {
		for _, pid := range pids {
			if pid == n.ID {
				return false
			}
			found := false
			for _, pe := range g.nodes[pid].Edges {
				if pe.Dest == n.ID && !pe.Component.IsEpsilon() {
					// dropping n→d would cut the part carried into n
					return false
				}
				if pe.Dest == dest && pe.Component.IsEpsilon() {
					found = true
				}
			}
			if !found {
				return false
			}
		}
		return true
	}

	kept := n.Edges[:0]
	var dropped []NodeID
	for _, e := range n.Edges {
		if e.Component.IsEpsilon() && covered(e.Dest) {
			dropped = append(dropped, e.Dest)
			continue
		}
		kept = append(kept, e)
	}
	n.Edges = kept
	for _, dest := range dropped {
		if !g.HasEdgeTo(n.ID, dest) {
			parents.remove(dest, n.ID)
		}
	}
}

// bypass applies rule 6 to a node with exactly one outgoing edge.
func (g *Graph) bypass(parents parentSet, n *Node, pids []NodeID) {
	out := n.Edges[0]
	child := out.Dest
	if child == n.ID || len(pids) == 0 {
		return
	}
	for _, pid := range pids {
		if pid == child || pid == n.ID {
			return
		}
		if out.Kind == EdgeAtom {
			for _, pe := range g.nodes[pid].Edges {
				if pe.Dest == n.ID && !pe.Component.IsEpsilon() {
					return
				}
			}
		}
	}

	for _, pid := range pids {
		p := g.nodes[pid]
		if out.Kind == EdgeAtom {
			kept := p.Edges[:0]
			for _, pe := range p.Edges {
				if pe.Dest != n.ID {
					kept = append(kept, pe)
				}
			}
			moved := out.clone()
			moved.Src = pid
			p.Edges = append(kept, moved)
		} else {
			for i := range p.Edges {
				if p.Edges[i].Dest == n.ID {
					p.Edges[i].Dest = child
				}
			}
		}
		parents.add(child, pid)
	}
	parents.remove(child, n.ID)
	delete(parents, n.ID)
	delete(g.nodes, n.ID)
}
