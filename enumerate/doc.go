// SPDX-License-Identifier: MIT

// Package enumerate lists the bounded accepted paths of an automaton.
//
// The walk is a breadth-first search over edges rather than nodes: every
// queue entry is a partial path, so the same node is revisited along
// different walks. Repetition is bounded by a cycle limit k:
//
//   - a OneOrMore-tagged node may be entered at most k+1 times,
//   - an edge may be taken at most k+1 times,
//   - any node may be entered at most k+2 times.
//
// With k = 0 "one-or-more a" yields just [a]; with k = 1 it yields [a] and
// [a a].
//
// The input graph is never modified. Cancellation is checked between
// partial paths, and WithMaxExpansions turns runaway enumerations into
// ErrBudgetExceeded.
package enumerate
