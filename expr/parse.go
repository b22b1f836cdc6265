// SPDX-License-Identifier: MIT

package expr

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/category"
)

// goldbarLexer tokenizes GOLDBAR. Keyword precedes Ident so that operator
// words win over atom names of the same spelling.
var goldbarLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Keyword", Pattern: `(?:one-or-more|zero-or-more|zero-or-one|reverse-comp|then|or|and[012]?|merge)\b`},
	{Name: "Ident", Pattern: `[A-Za-z0-9_\-]+`},
	{Name: "Punct", Pattern: `[(){}.]`},
})

// seqNode: Exp ( ("then" | ".") Seq )?
type seqNode struct {
	Head *expNode `@@`
	Tail *seqTail `@@?`
}

type seqTail struct {
	Next *seqNode `( "then" | "." ) @@`
}

// expNode: Term ( op Exp )?
type expNode struct {
	Term *termNode `@@`
	Tail *expTail  `@@?`
}

type expTail struct {
	Op   string   `@( "or" | "and" | "and0" | "and1" | "and2" | "merge" )`
	Rest *expNode `@@`
}

// termNode: unary Term | (Seq) | {Seq} | Atom
type termNode struct {
	Unary *unaryNode `  @@`
	Group *seqNode   `| "(" @@ ")" | "{" @@ "}"`
	Atom  string     `| @Ident`
}

type unaryNode struct {
	Op      string    `@( "one-or-more" | "zero-or-more" | "zero-or-one" | "reverse-comp" )`
	Operand *termNode `@@`
}

var goldbarParser = participle.MustBuild[seqNode](
	participle.Lexer(goldbarLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse reads GOLDBAR text into an expression tree.
//
// "then" (or ".") binds loosest and associates to the right; "or", "and",
// "and0".."and2" and "merge" bind tighter and also associate to the right;
// the unary operators bind tightest. A bare "and" uses the tolerance set by
// WithAndTolerance (Exact by default).
func Parse(text string, opts ...Option) (Expr, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmpty
	}
	tree, err := goldbarParser.ParseString("", text)
	if err != nil {
		return nil, errors.WithHint(
			errors.Mark(errors.Wrap(err, "expr: parse"), ErrSyntax),
			"operators are then, ., or, and, and0, and1, and2, merge, one-or-more, zero-or-more, zero-or-one and reverse-comp",
		)
	}
	return tree.build(o), nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(text string, opts ...Option) Expr {
	e, err := Parse(text, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (n *seqNode) build(o Options) Expr {
	head := n.Head.build(o)
	if n.Tail == nil {
		return head
	}
	return Then{A: head, B: n.Tail.Next.build(o)}
}

func (n *expNode) build(o Options) Expr {
	left := n.Term.build(o)
	if n.Tail == nil {
		return left
	}
	right := n.Tail.Rest.build(o)
	switch op := n.Tail.Op; op {
	case "or":
		return Or{A: left, B: right}
	case "merge":
		return Merge{A: left, B: right}
	case "and":
		return And{A: left, B: right, Tolerance: o.AndTolerance}
	default:
		return And{A: left, B: right, Tolerance: category.Tolerance(op[len(op)-1] - '0')}
	}
}

func (n *termNode) build(o Options) Expr {
	switch {
	case n.Group != nil:
		return n.Group.build(o)
	case n.Unary != nil:
		x := n.Unary.Operand.build(o)
		switch n.Unary.Op {
		case "one-or-more":
			return OneOrMore{X: x}
		case "zero-or-more":
			return ZeroOrMore{X: x}
		case "zero-or-one":
			return ZeroOrOne{X: x}
		default:
			return ReverseComplement{X: x}
		}
	default:
		return Atom{Name: n.Atom}
	}
}
