// SPDX-License-Identifier: MIT

// Package expr defines the expression trees compiled by package compiler,
// together with a parser for the GOLDBAR text syntax and two tree rewrites.
//
// Grammar (whitespace insensitive):
//
//	Seq  := Exp ( ("then" | ".") Seq )?
//	Exp  := Term ( ("or" | "and" | "and0" | "and1" | "and2" | "merge") Exp )?
//	Term := ("one-or-more" | "zero-or-more" | "zero-or-one" | "reverse-comp") Term
//	      | "(" Seq ")" | "{" Seq "}" | Atom
//	Atom := [A-Za-z0-9_-]+
//
// Simplify applies identities over repetition operators;
// Normalize moves reverse complements down to the atoms.
package expr
