// SPDX-License-Identifier: MIT

package expr

import (
	"reflect"
	"strconv"

	"github.com/katalvlaran/constellation/category"
)

// Expr is a node of an expression tree. The concrete variants are Atom,
// ReverseComplement, Then, Or, And, Merge, ZeroOrOne, ZeroOrMore and
// OneOrMore.
type Expr interface {
	// String renders the expression in GOLDBAR syntax; Parse accepts the result.
	String() string

	expr()
}

// Atom names a category of interchangeable parts.
type Atom struct {
	Name string
}

// ReverseComplement places its operand on the opposite strand.
type ReverseComplement struct {
	X Expr
}

// Then is sequential composition: A followed by B.
type Then struct {
	A, B Expr
}

// Or accepts either operand.
type Or struct {
	A, B Expr
}

// And accepts what both operands accept, compared under Tolerance.
type And struct {
	A, B      Expr
	Tolerance category.Tolerance
}

// Merge accepts the union of both operands over shared parts.
type Merge struct {
	A, B Expr
}

// ZeroOrOne makes its operand optional.
type ZeroOrOne struct {
	X Expr
}

// ZeroOrMore repeats its operand any number of times, including none.
type ZeroOrMore struct {
	X Expr
}

// OneOrMore repeats its operand at least once.
type OneOrMore struct {
	X Expr
}

func (Atom) expr()              {}
func (ReverseComplement) expr() {}
func (Then) expr()              {}
func (Or) expr()                {}
func (And) expr()               {}
func (Merge) expr()             {}
func (ZeroOrOne) expr()         {}
func (ZeroOrMore) expr()        {}
func (OneOrMore) expr()         {}

func (e Atom) String() string              { return e.Name }
func (e ReverseComplement) String() string { return "reverse-comp " + group(e.X) }
func (e Then) String() string              { return group(e.A) + " then " + group(e.B) }
func (e Or) String() string                { return group(e.A) + " or " + group(e.B) }
func (e And) String() string {
	return group(e.A) + " " + AndKeyword(e.Tolerance) + " " + group(e.B)
}
func (e Merge) String() string      { return group(e.A) + " merge " + group(e.B) }
func (e ZeroOrOne) String() string  { return "zero-or-one " + group(e.X) }
func (e ZeroOrMore) String() string { return "zero-or-more " + group(e.X) }
func (e OneOrMore) String() string  { return "one-or-more " + group(e.X) }

// group parenthesizes every operand that is not a bare atom.
func group(e Expr) string {
	if a, ok := e.(Atom); ok {
		return a.Name
	}
	return "(" + e.String() + ")"
}

// AndKeyword returns the keyword spelling an intersection at tolerance t.
func AndKeyword(t category.Tolerance) string {
	return "and" + strconv.Itoa(int(t))
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Expr) bool {
	return reflect.DeepEqual(a, b)
}

// Atoms returns the atom names referenced by e, in first-use order.
func Atoms(e Expr) []string {
	var (
		out  []string
		seen = map[string]bool{}
	)
	Walk(e, func(n Expr) {
		if a, ok := n.(Atom); ok && !seen[a.Name] {
			seen[a.Name] = true
			out = append(out, a.Name)
		}
	})
	return out
}

// Walk calls fn for e and then for each of its descendants, depth first,
// left operand before right.
func Walk(e Expr, fn func(Expr)) {
	if e == nil {
		return
	}
	fn(e)
	switch n := e.(type) {
	case ReverseComplement:
		Walk(n.X, fn)
	case Then:
		Walk(n.A, fn)
		Walk(n.B, fn)
	case Or:
		Walk(n.A, fn)
		Walk(n.B, fn)
	case And:
		Walk(n.A, fn)
		Walk(n.B, fn)
	case Merge:
		Walk(n.A, fn)
		Walk(n.B, fn)
	case ZeroOrOne:
		Walk(n.X, fn)
	case ZeroOrMore:
		Walk(n.X, fn)
	case OneOrMore:
		Walk(n.X, fn)
	}
}
