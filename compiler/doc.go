// SPDX-License-Identifier: MIT

// Package compiler turns expressions into automata by Thompson-style
// fragment construction.
//
// Every sub-expression leaves one Fragment on an explicit boundary Stack:
// a head node and the leaves still waiting to be connected. Atoms push a
// two-node fragment joined by an atom edge; operators pop their operands
// and push the composite:
//
//	a then b          leaves of a joined to the head of b
//	a or b            a new head with epsilon edges to both heads
//	zero-or-more a    leaves loop back to the head, a new tail exits
//	zero-or-one a     the head gets a bypass to every leaf
//	one-or-more a     leaves loop back to the head
//	a and b, a merge b
//	                  a and b are compiled on their own, combined with
//	                  package combine and spliced back in
//
// When the expression is done, the leaves of the last fragment become
// Accept nodes and its head the root. Compile wraps the whole pipeline and
// enumerates the result; the Builder handlers are exported for callers
// that assemble graphs from other sources.
package compiler
