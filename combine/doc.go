// SPDX-License-Identifier: MIT

// Package combine builds the product of two labeled automata.
//
// Both combinators start from the cartesian product of the operands'
// nodes: pair (u, v) is the root when u and v are, and accepts when both
// accept. Operator tags are combined per pair so that repetition survives
// only where both operands repeat.
//
// And keeps exactly the designs both operands share, comparing categories
// with a tolerance (see category.Intersect). Merge unions the categories of
// matching parts and keeps the structure of either operand around them.
//
// Combined atom texts are synthesized from the operand texts, e.g.
// "cds1_and0_cds2" or "cds1_merge_cds2", and returned in a fresh category
// table. Combine folds a list of graphs with either combinator and
// enumerates the result.
package combine
