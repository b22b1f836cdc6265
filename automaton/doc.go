// SPDX-License-Identifier: MIT

// Package automaton is the graph model shared by the compiler, the
// combinators and the path enumerator.
//
// A Graph owns its nodes in a map keyed by NodeID; ids come from a
// per-graph counter, so two graphs never need to agree on an id space.
// Edges are plain values stored on their source node and refer to other
// nodes by id only. Clone is therefore a structural copy, and Splice moves
// one graph into another under fresh ids.
//
// Nodes carry an ordered list of Operator tags left by construction
// (OneOrMore is always first). The minimizer reads them to keep branch
// points and cycle anchors in place; the enumerator reads OneOrMore to
// bound repetition.
//
// Minimization:
//
//	g.CollapseEpsilons() // one pass
//	g.Minimize()         // passes until the graph stops changing
//
// Determinism: NodeIDs, Accepts and Parents return ascending ids, and the
// minimizer visits nodes in ascending id order.
package automaton
