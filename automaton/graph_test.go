package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
)

var partA = category.Of("cds", "a1", "a2")

func TestNewNode_IdsAreSequential(t *testing.T) {
	g := automaton.New()
	assert.Equal(t, automaton.NodeID(1), g.NewEpsilonNode())
	assert.Equal(t, automaton.NodeID(2), g.NewNode(automaton.KindRoot, automaton.RootText))
	assert.Equal(t, []automaton.NodeID{1, 2}, g.NodeIDs())
	assert.Equal(t, automaton.KindRoot, g.Kind(2))
	assert.Equal(t, automaton.EpsilonText, g.Text(1))
}

func TestAddEdge_RejectsDanglingEndpoints(t *testing.T) {
	g := automaton.New()
	a := g.NewEpsilonNode()
	require.ErrorIs(t, g.AddEpsilonEdge(a, 99), automaton.ErrNodeNotFound)
	require.ErrorIs(t, g.AddEpsilonEdge(99, a), automaton.ErrNodeNotFound)
	require.NoError(t, g.AddEpsilonEdge(a, a))
	assert.Equal(t, 1, g.NumEdges())
}

func TestAddOperator_OneOrMoreFirst(t *testing.T) {
	g := automaton.New()
	n := g.NewEpsilonNode()
	require.NoError(t, g.AddOperator(n, automaton.Or))
	require.NoError(t, g.AddOperator(n, automaton.Then))
	require.NoError(t, g.AddOperator(n, automaton.OneOrMore))
	assert.Equal(t, []automaton.Operator{automaton.OneOrMore, automaton.Or, automaton.Then}, g.Operators(n))
	assert.True(t, g.HasOperator(n, automaton.Then))
	require.ErrorIs(t, g.AddOperator(42, automaton.Or), automaton.ErrNodeNotFound)
}

func TestRemoveNodeFromEdges(t *testing.T) {
	g := automaton.New()
	a, b, c := g.NewEpsilonNode(), g.NewEpsilonNode(), g.NewEpsilonNode()
	require.NoError(t, g.AddEpsilonEdge(a, b))
	require.NoError(t, g.AddAtomEdge(a, b, partA, "a", automaton.Inline))
	require.NoError(t, g.AddEpsilonEdge(c, b))

	g.RemoveNode(b)
	g.RemoveNodeFromEdges(c, b)
	for _, e := range g.Edges(a) {
		assert.Equal(t, c, e.Dest)
	}

	g.RemoveNodeFromEdges(automaton.NoNode, c)
	assert.Empty(t, g.Edges(a))
	assert.Empty(t, g.Edges(c))
}

func TestParents(t *testing.T) {
	g := automaton.New()
	a, b, c := g.NewEpsilonNode(), g.NewEpsilonNode(), g.NewEpsilonNode()
	require.NoError(t, g.AddEpsilonEdge(b, c))
	require.NoError(t, g.AddEpsilonEdge(a, c))
	require.NoError(t, g.AddEpsilonEdge(a, c))
	require.NoError(t, g.AddEpsilonEdge(c, a))

	p := g.Parents()
	assert.Equal(t, []automaton.NodeID{a, b}, p[c])
	assert.Equal(t, []automaton.NodeID{c}, p[a])
	_, ok := p[b]
	assert.False(t, ok)
}

func TestMoveEdges(t *testing.T) {
	g := automaton.New()
	a, b, c := g.NewEpsilonNode(), g.NewEpsilonNode(), g.NewEpsilonNode()
	require.NoError(t, g.AddAtomEdge(b, c, partA, "a", automaton.Inline))
	require.NoError(t, g.AddEpsilonEdge(b, b))
	require.NoError(t, g.MoveEdges(b, a))

	assert.Empty(t, g.Edges(b))
	edges := g.Edges(a)
	require.Len(t, edges, 2)
	assert.Equal(t, a, edges[0].Src)
	assert.Equal(t, c, edges[0].Dest)
	assert.Equal(t, a, edges[1].Dest, "self loop follows the move")
}

func TestCloneAndEqual(t *testing.T) {
	g := automaton.New()
	a, b := g.NewNode(automaton.KindRoot, automaton.RootText), g.NewNode(automaton.KindAccept, automaton.AcceptText)
	require.NoError(t, g.AddAtomEdge(a, b, partA, "a", automaton.Inline))
	require.NoError(t, g.AddOperator(a, automaton.Then))

	cp := g.Clone()
	require.True(t, g.Equal(cp))

	// the clone is independent, down to the categories on the edges
	n, err := cp.Node(a)
	require.NoError(t, err)
	n.Edges[0].Component.Category()["cds"][0] = "mutated"
	assert.True(t, g.Equal(cp), "Node returns a copy")

	require.NoError(t, cp.SetText(b, "other"))
	assert.False(t, g.Equal(cp))
	assert.Equal(t, automaton.AcceptText, g.Text(b))

	// the clone continues the id sequence
	assert.Equal(t, automaton.NodeID(3), cp.NewEpsilonNode())
}

func TestRootAcceptsAndLabels(t *testing.T) {
	g := automaton.New()
	r := g.NewNode(automaton.KindRoot, automaton.RootText)
	x := g.NewNode(automaton.KindAccept, automaton.AcceptText)
	y := g.NewNode(automaton.KindAccept, automaton.AcceptText)

	root, ok := g.Root()
	require.True(t, ok)
	assert.Equal(t, r, root)
	assert.Equal(t, []automaton.NodeID{x, y}, g.Accepts())

	g.RemoveNodeLabels()
	_, ok = g.Root()
	assert.False(t, ok)
	assert.Empty(t, g.Accepts())
	assert.Equal(t, automaton.KindEpsilon, g.Kind(x))

	// a root that is also an accept is found by its text
	h := automaton.New()
	both := h.NewNode(automaton.KindAccept, automaton.RootText)
	root, ok = h.Root()
	require.True(t, ok)
	assert.Equal(t, both, root)
}

func TestSplice(t *testing.T) {
	outer := automaton.New()
	outer.NewEpsilonNode()
	outer.NewEpsilonNode()

	inner := automaton.New()
	a, b := inner.NewEpsilonNode(), inner.NewEpsilonNode()
	require.NoError(t, inner.AddAtomEdge(a, b, partA, "a", automaton.Inline))
	require.NoError(t, inner.AddEpsilonEdge(b, a))

	remap := outer.Splice(inner)
	assert.Equal(t, map[automaton.NodeID]automaton.NodeID{a: 3, b: 4}, remap)
	assert.Equal(t, 4, outer.NumNodes())
	edges := outer.Edges(3)
	require.Len(t, edges, 1)
	assert.Equal(t, automaton.NodeID(4), edges[0].Dest)
	assert.Equal(t, automaton.NodeID(3), outer.Edges(4)[0].Dest)
	assert.Equal(t, automaton.NodeID(5), outer.NewEpsilonNode())
	assert.Equal(t, 2, inner.NumNodes())
}

func TestRemoveSubgraph(t *testing.T) {
	g := automaton.New()
	a, b, c, d := g.NewEpsilonNode(), g.NewEpsilonNode(), g.NewEpsilonNode(), g.NewEpsilonNode()
	require.NoError(t, g.AddEpsilonEdge(a, b))
	require.NoError(t, g.AddEpsilonEdge(b, c))
	require.NoError(t, g.AddEpsilonEdge(c, b))
	require.NoError(t, g.AddEpsilonEdge(d, c))

	g.RemoveSubgraph(b)
	assert.Equal(t, []automaton.NodeID{a, d}, g.NodeIDs())
	assert.Zero(t, g.NumEdges())
}

func TestRemoveDuplicateEdges(t *testing.T) {
	g := automaton.New()
	a, b := g.NewEpsilonNode(), g.NewEpsilonNode()
	require.NoError(t, g.AddAtomEdge(a, b, partA, "a", automaton.Inline))
	require.NoError(t, g.AddAtomEdge(a, b, partA, "a", automaton.Inline))
	require.NoError(t, g.AddAtomEdge(a, b, partA, "a", automaton.ReverseComplement))
	require.NoError(t, g.AddEpsilonEdge(a, b))
	require.NoError(t, g.AddEpsilonEdge(a, b))

	g.RemoveDuplicateEdges()
	assert.Len(t, g.Edges(a), 3)
}

func TestToNodeForm(t *testing.T) {
	g := automaton.New()
	r := g.NewNode(automaton.KindRoot, automaton.RootText)
	acc := g.NewNode(automaton.KindAccept, automaton.AcceptText)
	require.NoError(t, g.AddAtomEdge(r, acc, partA, "a", automaton.ReverseComplement))

	nf := g.ToNodeForm()
	assert.Equal(t, 2, g.NumNodes(), "source untouched")
	require.Equal(t, 3, nf.NumNodes())

	out := nf.Edges(r)
	require.Len(t, out, 1)
	assert.Equal(t, automaton.EdgeEpsilon, out[0].Kind)
	atom := out[0].Dest
	assert.Equal(t, automaton.KindAtom, nf.Kind(atom))
	assert.Equal(t, "a", nf.Text(atom))

	part := nf.Edges(atom)
	require.Len(t, part, 1)
	assert.Equal(t, acc, part[0].Dest)
	assert.Equal(t, automaton.ReverseComplement, part[0].Orientation)
	assert.True(t, part[0].Component.Category().Equal(partA))
}
