// Package constellation compiles genetic design expressions into
// automata and enumerates the part sequences they accept.
//
// 🚀 What is constellation?
//
//	An expression such as "promoter then (one-or-more cds) then terminator"
//	names part categories and arranges them. constellation turns it into:
//		• an automaton whose atom edges carry part categories
//		• the bounded set of accepted paths (loops unrolled up to k times)
//		• concrete designs, one part identifier per atom on a path
//
// ✨ What else?
//
//   - AND / MERGE combinators intersect or union two design spaces
//   - Three tolerance levels decide when categories overlap
//   - An edge form and a node form of every graph
//   - Simplification of expressions by repetition identities
//
// The work is split over small subpackages:
//
//	category/   part categories, tolerance-aware intersection, tables
//	expr/       expression tree, parser, simplifier, normalizer
//	automaton/  labeled graph, minimizer, node-form projection
//	compiler/   fragment construction from expressions
//	combine/    AND and MERGE product constructions
//	enumerate/  bounded breadth-first path enumeration
//	design/     design expansion and reservoir sampling
//
// Quick example:
//
//	promoter then (zero-or-one cds)
//
//	root ──promoter──▶ ● ──cds──▶ accept
//	                   └──────ε──────▶ accept
//
// accepts [promoter cds] and [promoter].
//
//	go install github.com/katalvlaran/constellation/cmd/constellation@latest
package constellation
