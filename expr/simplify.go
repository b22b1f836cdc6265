// SPDX-License-Identifier: MIT

package expr

// Simplify rewrites e bottom-up with algebraic identities over repetition
// that keep the accepted language, for example
//
//	zero-or-more a then a       -> one-or-more a
//	one-or-more a or a          -> one-or-more a
//	one-or-more (zero-or-more a) -> zero-or-more a
//
// Each level is rewritten once, after its operands; the result is not
// guaranteed to be a fixpoint.
func Simplify(e Expr) Expr {
	switch n := e.(type) {
	case Or:
		return simplifyOr(Simplify(n.A), Simplify(n.B))
	case Then:
		return simplifyThen(Simplify(n.A), Simplify(n.B))
	case OneOrMore:
		return simplifyOneOrMore(Simplify(n.X))
	case ZeroOrMore:
		return simplifyZeroOrMore(Simplify(n.X))
	case ZeroOrOne:
		return ZeroOrOne{X: Simplify(n.X)}
	case ReverseComplement:
		return ReverseComplement{X: Simplify(n.X)}
	case And:
		return And{A: Simplify(n.A), B: Simplify(n.B), Tolerance: n.Tolerance}
	case Merge:
		return Merge{A: Simplify(n.A), B: Simplify(n.B)}
	default:
		return e
	}
}

// oneOrMore and zeroOrMore unwrap a repetition node.
func oneOrMore(e Expr) (Expr, bool) {
	n, ok := e.(OneOrMore)
	return n.X, ok
}

func zeroOrMore(e Expr) (Expr, bool) {
	n, ok := e.(ZeroOrMore)
	return n.X, ok
}

func simplifyOr(a, b Expr) Expr {
	if Equal(a, b) {
		return a
	}
	aOne, aIsOne := oneOrMore(a)
	bOne, bIsOne := oneOrMore(b)
	aZero, aIsZero := zeroOrMore(a)
	bZero, bIsZero := zeroOrMore(b)
	switch {
	case aIsOne && bIsZero && Equal(aOne, bZero):
		return b
	case aIsOne && Equal(aOne, b):
		return a
	case bIsOne && Equal(a, bOne):
		return b
	case aIsZero && bIsOne && Equal(aZero, bOne):
		return a
	case aIsZero && Equal(aZero, b):
		return a
	case bIsZero && Equal(a, bZero):
		return b
	}
	return Or{A: a, B: b}
}

func simplifyThen(a, b Expr) Expr {
	aOne, aIsOne := oneOrMore(a)
	bOne, bIsOne := oneOrMore(b)
	aZero, aIsZero := zeroOrMore(a)
	bZero, bIsZero := zeroOrMore(b)
	switch {
	case aIsOne && bIsOne && Equal(aOne, bOne):
		return Then{A: aOne, B: b}
	case aIsOne && bIsZero && Equal(aOne, bZero):
		return a
	case aIsZero && bIsOne && Equal(aZero, bOne):
		return b
	case aIsZero && bIsZero && Equal(aZero, bZero):
		return a
	case aIsZero && Equal(aZero, b):
		return OneOrMore{X: b}
	case bIsZero && Equal(a, bZero):
		return OneOrMore{X: a}
	}
	return Then{A: a, B: b}
}

func simplifyOneOrMore(x Expr) Expr {
	switch x.(type) {
	case OneOrMore, ZeroOrMore:
		return x
	}
	return OneOrMore{X: x}
}

func simplifyZeroOrMore(x Expr) Expr {
	switch n := x.(type) {
	case OneOrMore:
		return ZeroOrMore{X: n.X}
	case ZeroOrMore:
		return x
	}
	return ZeroOrMore{X: x}
}
