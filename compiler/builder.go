// SPDX-License-Identifier: MIT

package compiler

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/combine"
	"github.com/katalvlaran/constellation/expr"
)

// Op names a boundary-stack operator handled by HandleOp.
type Op int

const (
	OpThen Op = iota
	OpOr
	OpZeroOrMore
	OpZeroOrOne
	OpOneOrMore
)

func (op Op) String() string {
	switch op {
	case OpThen:
		return "Then"
	case OpOr:
		return "Or"
	case OpZeroOrMore:
		return "ZeroOrMore"
	case OpZeroOrOne:
		return "ZeroOrOne"
	case OpOneOrMore:
		return "OneOrMore"
	default:
		return "unknown"
	}
}

// Builder turns expressions into automaton fragments. The graph and the
// boundary stack are passed to every handler; the Builder itself holds
// only the category table (extended as AND and MERGE synthesize names) and
// the options.
type Builder struct {
	table category.Table
	opts  Options
}

// NewBuilder returns a Builder resolving atoms against a copy of table.
func NewBuilder(table category.Table, opts ...Option) *Builder {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{table: table.Clone(), opts: o}
}

// Categories returns the table atoms are resolved against, including every
// combined name registered so far.
func (b *Builder) Categories() category.Table { return b.table }

// Build compiles e into g, leaving one fragment on s.
func (b *Builder) Build(g *automaton.Graph, s *Stack, e expr.Expr) error {
	if err := b.opts.Ctx.Err(); err != nil {
		return err
	}
	switch n := e.(type) {
	case expr.Atom:
		return b.HandleAtom(g, s, n.Name, automaton.Inline)
	case expr.ReverseComplement:
		if atom, ok := n.X.(expr.Atom); ok {
			return b.HandleAtom(g, s, atom.Name, automaton.ReverseComplement)
		}
		return b.Build(g, s, expr.Normalize(n))
	case expr.Then:
		if err := b.Build(g, s, n.A); err != nil {
			return err
		}
		if err := b.Build(g, s, n.B); err != nil {
			return err
		}
		return b.HandleThen(g, s)
	case expr.Or:
		operands := flattenOr(n)
		for _, x := range operands {
			if err := b.Build(g, s, x); err != nil {
				return err
			}
		}
		return b.HandleOr(g, s, len(operands))
	case expr.ZeroOrMore:
		return b.unary(g, s, n.X, OpZeroOrMore)
	case expr.ZeroOrOne:
		return b.unary(g, s, n.X, OpZeroOrOne)
	case expr.OneOrMore:
		return b.unary(g, s, n.X, OpOneOrMore)
	case expr.And:
		return b.HandleAnd(g, s, n.A, n.B, n.Tolerance)
	case expr.Merge:
		return b.HandleMerge(g, s, n.A, n.B)
	default:
		return errors.Wrapf(ErrConstruction, "unsupported expression %T", e)
	}
}

func (b *Builder) unary(g *automaton.Graph, s *Stack, x expr.Expr, op Op) error {
	if err := b.Build(g, s, x); err != nil {
		return err
	}
	return b.HandleOp(g, s, op)
}

// flattenOr lists the operands of a chain of Or nodes left to right.
func flattenOr(e expr.Expr) []expr.Expr {
	or, ok := e.(expr.Or)
	if !ok {
		return []expr.Expr{e}
	}
	return append(flattenOr(or.A), flattenOr(or.B)...)
}

// HandleOp applies a stack operator to the top of s. OpOr joins the top two
// fragments; use HandleOr for wider alternatives.
func (b *Builder) HandleOp(g *automaton.Graph, s *Stack, op Op) error {
	b.opts.Logger.Debug("handle operator", "op", op.String(), "stack", s.Len())
	switch op {
	case OpThen:
		return b.HandleThen(g, s)
	case OpOr:
		return b.HandleOr(g, s, 2)
	case OpZeroOrMore:
		return b.HandleZeroOrMore(g, s)
	case OpZeroOrOne:
		return b.HandleZeroOrOne(g, s)
	case OpOneOrMore:
		return b.HandleOneOrMore(g, s)
	default:
		return errors.Wrapf(ErrConstruction, "unknown operator %d", int(op))
	}
}

// HandleAtom pushes e0 -name-> e1 with the category of name.
// Returns ErrUnknownAtom if name is not in the table.
func (b *Builder) HandleAtom(g *automaton.Graph, s *Stack, name string, o automaton.Orientation) error {
	cat, ok := b.table.Lookup(name)
	if !ok {
		return errors.WithHint(
			errors.Wrapf(ErrUnknownAtom, "atom %q", name),
			"add the atom to the category table")
	}
	head := g.NewEpsilonNode()
	if err := g.SetText(head, name+".head"); err != nil {
		return err
	}
	leaf := g.NewEpsilonNode()
	if err := g.AddAtomEdge(head, leaf, cat.Clone(), name, o); err != nil {
		return err
	}
	s.Push(Fragment{Head: head, Leaves: []automaton.NodeID{leaf}})
	return nil
}

// HandleThen pops b then a and pushes their sequence.
//
// When a is a single-leaf fragment that is not an alternative, and neither
// a's leaf nor b's head takes part in a loop, b's head is fused into a's
// leaf. Otherwise every leaf of a gets an epsilon edge to b's head, which is
// tagged Then. A fragment without leaves accepts nothing, so a dead a
// discards b entirely.
func (b *Builder) HandleThen(g *automaton.Graph, s *Stack) error {
	second, err := s.Pop()
	if err != nil {
		return err
	}
	first, err := s.Pop()
	if err != nil {
		return err
	}

	if len(first.Leaves) == 0 {
		g.RemoveSubgraph(second.Head)
		s.Push(Fragment{Head: first.Head})
		return nil
	}

	leaves := second.Leaves
	if b.canFuse(g, first, second) {
		leaf := first.Leaves[0]
		if err = g.MoveEdges(second.Head, leaf); err != nil {
			return err
		}
		if err = g.AddOperator(leaf, automaton.Then); err != nil {
			return err
		}
		for _, op := range g.Operators(second.Head) {
			if err = g.AddOperator(leaf, op); err != nil {
				return err
			}
		}
		g.RemoveNode(second.Head)
		g.RemoveNodeFromEdges(leaf, second.Head)
		leaves = make([]automaton.NodeID, len(second.Leaves))
		for i, id := range second.Leaves {
			if id == second.Head {
				id = leaf
			}
			leaves[i] = id
		}
	} else {
		for _, leaf := range first.Leaves {
			if err = g.AddEpsilonEdge(leaf, second.Head); err != nil {
				return err
			}
		}
		if err = g.AddOperator(second.Head, automaton.Then); err != nil {
			return err
		}
	}
	s.Push(Fragment{Head: first.Head, Leaves: leaves})
	return nil
}

func (b *Builder) canFuse(g *automaton.Graph, first, second Fragment) bool {
	if len(first.Leaves) != 1 || g.HasOperator(first.Head, automaton.Or) {
		return false
	}
	if len(g.Edges(first.Leaves[0])) > 0 {
		return false
	}
	_, entered := g.Parents()[second.Head]
	return !entered
}

// HandleOr pops n fragments and pushes one alternative over all of them: a
// new node tagged Or with an epsilon edge to each head, in operand order.
func (b *Builder) HandleOr(g *automaton.Graph, s *Stack, n int) error {
	if n < 1 || n > s.Len() {
		return errors.Wrapf(ErrConstruction, "or over %d fragments with %d on the stack", n, s.Len())
	}
	frags := make([]Fragment, n)
	for i := n - 1; i >= 0; i-- {
		frags[i], _ = s.Pop()
	}
	parent := g.NewEpsilonNode()
	var leaves []automaton.NodeID
	for _, f := range frags {
		if err := g.AddEpsilonEdge(parent, f.Head); err != nil {
			return err
		}
		leaves = append(leaves, f.Leaves...)
	}
	if err := g.AddOperator(parent, automaton.Or); err != nil {
		return err
	}
	s.Push(Fragment{Head: parent, Leaves: leaves})
	return nil
}

// HandleZeroOrMore loops every leaf back to the head and exits through a new
// tail reachable straight from the head.
func (b *Builder) HandleZeroOrMore(g *automaton.Graph, s *Stack) error {
	a, err := s.Pop()
	if err != nil {
		return err
	}
	tail := g.NewEpsilonNode()
	if err = g.AddEpsilonEdge(a.Head, tail); err != nil {
		return err
	}
	for _, leaf := range a.Leaves {
		if err = g.AddEpsilonEdge(leaf, a.Head); err != nil {
			return err
		}
	}
	if err = g.AddOperator(a.Head, automaton.ZeroOrMore); err != nil {
		return err
	}
	s.Push(Fragment{Head: a.Head, Leaves: []automaton.NodeID{tail}})
	return nil
}

// HandleZeroOrOne adds an epsilon bypass from the head to every leaf. A dead
// fragment gets a fresh leaf so that the empty design survives.
func (b *Builder) HandleZeroOrOne(g *automaton.Graph, s *Stack) error {
	a, err := s.Pop()
	if err != nil {
		return err
	}
	leaves := a.Leaves
	if len(leaves) == 0 {
		leaves = []automaton.NodeID{g.NewEpsilonNode()}
	}
	for _, leaf := range leaves {
		if err = g.AddEpsilonEdge(a.Head, leaf); err != nil {
			return err
		}
	}
	if err = g.AddOperator(a.Head, automaton.ZeroOrOne); err != nil {
		return err
	}
	s.Push(Fragment{Head: a.Head, Leaves: leaves})
	return nil
}

// HandleOneOrMore loops every leaf back to the head. A fragment whose first
// leaf already loops back, or that has no leaves, is pushed back unchanged.
func (b *Builder) HandleOneOrMore(g *automaton.Graph, s *Stack) error {
	a, err := s.Pop()
	if err != nil {
		return err
	}
	if len(a.Leaves) == 0 || g.HasEdgeTo(a.Leaves[0], a.Head) {
		s.Push(a)
		return nil
	}
	for _, leaf := range a.Leaves {
		if err = g.AddEpsilonEdge(leaf, a.Head); err != nil {
			return err
		}
	}
	if err = g.AddOperator(a.Head, automaton.OneOrMore); err != nil {
		return err
	}
	s.Push(a)
	return nil
}

// HandleAnd compiles x and y into graphs of their own, intersects them
// with tolerance tol and splices the product into g.
func (b *Builder) HandleAnd(g *automaton.Graph, s *Stack, x, y expr.Expr, tol category.Tolerance) error {
	if b.opts.Representation == NodeRepresentation {
		return errors.WithHint(errors.Wrap(ErrUnsupportedOperation, "and"),
			"compile with the edge representation")
	}
	if err := tol.Validate(); err != nil {
		return err
	}
	g1, g2, err := b.operands(x, y)
	if err != nil {
		return err
	}
	product, table, err := combine.And(g1, g2, b.table, b.table, tol, b.combineOptions()...)
	if err != nil {
		return err
	}
	return b.splice(g, s, product, table)
}

// HandleMerge compiles x and y into graphs of their own, merges them and
// splices the product into g.
func (b *Builder) HandleMerge(g *automaton.Graph, s *Stack, x, y expr.Expr) error {
	if b.opts.Representation == NodeRepresentation {
		return errors.WithHint(errors.Wrap(ErrUnsupportedOperation, "merge"),
			"compile with the edge representation")
	}
	g1, g2, err := b.operands(x, y)
	if err != nil {
		return err
	}
	product, table, err := combine.Merge(g1, g2, b.table, b.table, b.combineOptions()...)
	if err != nil {
		return err
	}
	return b.splice(g, s, product, table)
}

func (b *Builder) combineOptions() []combine.Option {
	return []combine.Option{combine.WithContext(b.opts.Ctx), combine.WithLogger(b.opts.Logger)}
}

// operands compiles each expression into a labeled, minimized graph.
func (b *Builder) operands(x, y expr.Expr) (*automaton.Graph, *automaton.Graph, error) {
	out := make([]*automaton.Graph, 2)
	for i, e := range []expr.Expr{x, y} {
		g := automaton.New()
		var s Stack
		if err := b.Build(g, &s, e); err != nil {
			return nil, nil, err
		}
		if err := AddAcceptNodes(g, &s); err != nil {
			return nil, nil, err
		}
		if _, err := GenerateRootNode(g, &s); err != nil {
			return nil, nil, err
		}
		g.Minimize()
		out[i] = g
	}
	return out[0], out[1], nil
}

// splice copies a product graph into g with fresh ids and pushes it as a
// fragment: its root becomes the head and its accepts the leaves. An empty
// product pushes a dead fragment.
func (b *Builder) splice(g *automaton.Graph, s *Stack, product *automaton.Graph, table category.Table) error {
	root, ok := product.Root()
	if !ok {
		s.Push(Fragment{Head: g.NewEpsilonNode()})
		return nil
	}
	accepts := product.Accepts()
	product.RemoveNodeLabels()
	remap := g.Splice(product)

	leaves := make([]automaton.NodeID, len(accepts))
	for i, id := range accepts {
		leaves[i] = remap[id]
	}
	s.Push(Fragment{Head: remap[root], Leaves: leaves})
	b.table.Absorb(table)
	return nil
}

// AddAcceptNodes labels every leaf of the single fragment on s as Accept.
func AddAcceptNodes(g *automaton.Graph, s *Stack) error {
	if s.Len() != 1 {
		return errors.Wrapf(ErrConstruction, "%d fragments on the boundary stack, want 1", s.Len())
	}
	for _, leaf := range (*s)[0].Leaves {
		if err := g.SetKind(leaf, automaton.KindAccept); err != nil {
			return err
		}
		if err := g.SetText(leaf, automaton.AcceptText); err != nil {
			return err
		}
	}
	return nil
}

// GenerateRootNode labels the head of the single fragment on s as the root
// and returns it. A head that is also a leaf stays an Accept node; its text
// marks it as the root.
func GenerateRootNode(g *automaton.Graph, s *Stack) (automaton.NodeID, error) {
	if s.Len() != 1 {
		return automaton.NoNode, errors.Wrapf(ErrConstruction,
			"%d fragments on the boundary stack, want 1", s.Len())
	}
	head := (*s)[0].Head
	if g.Kind(head) != automaton.KindAccept {
		if err := g.SetKind(head, automaton.KindRoot); err != nil {
			return automaton.NoNode, err
		}
	}
	if err := g.SetText(head, automaton.RootText); err != nil {
		return automaton.NoNode, err
	}
	return head, nil
}
