package compiler_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/compiler"
	"github.com/katalvlaran/constellation/design"
	"github.com/katalvlaran/constellation/enumerate"
	"github.com/katalvlaran/constellation/expr"
)

func partTable() category.Table {
	return category.Table{
		"a":    category.Of("cds", "a1", "a2"),
		"b":    category.Of("cds", "b1"),
		"c":    category.Of("cds", "c1"),
		"cds1": category.Of("cds", "tetR", "lacI"),
		"cds2": category.Of("cds", "tetR", "cI"),
		"cds3": category.Of("cds", "gfp", "rfp"),
	}
}

func compile(t *testing.T, text string, opts ...compiler.Option) *compiler.Result {
	t.Helper()
	res, err := compiler.Compile(expr.MustParse(text), partTable(), opts...)
	require.NoError(t, err, text)
	return res
}

func texts(paths []enumerate.Path) [][]string {
	out := make([][]string, len(paths))
	for i, p := range paths {
		out[i] = p.Texts()
	}
	return out
}

func TestCompile_Paths(t *testing.T) {
	cases := []struct {
		text   string
		cycles int
		want   [][]string
	}{
		{text: "c", want: [][]string{{"c"}}},
		{text: "a or b", want: [][]string{{"a"}, {"b"}}},
		{text: "a then c", want: [][]string{{"a", "c"}}},
		{text: "a then b then c", want: [][]string{{"a", "b", "c"}}},
		{text: "one-or-more a", cycles: 1, want: [][]string{{"a"}, {"a", "a"}}},
		{text: "zero-or-more a", want: [][]string{{}, {"a"}}},
		{text: "zero-or-one a", want: [][]string{{"a"}, {}}},
		{text: "(a or b) then c", want: [][]string{{"a", "c"}, {"b", "c"}}},
		{text: "(cds1 and0 cds3) or c", want: [][]string{{"c"}}},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			res := compile(t, tc.text, compiler.WithMaxCycles(tc.cycles))
			if diff := cmp.Diff(tc.want, texts(res.Paths)); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompile_NestedRepetitionsDoNotInterleave(t *testing.T) {
	res := compile(t, "one-or-more a then one-or-more b", compiler.WithMaxCycles(1))
	assert.ElementsMatch(t, [][]string{
		{"a", "b"}, {"a", "a", "b"}, {"a", "b", "b"}, {"a", "a", "b", "b"},
	}, texts(res.Paths))
}

func TestCompile_OrIsFlattened(t *testing.T) {
	res := compile(t, "a or b or c")
	assert.True(t, res.Graph.HasOperator(res.Root, automaton.Or))
	assert.Len(t, res.Graph.Edges(res.Root), 3)
	assert.Equal(t, automaton.KindRoot, res.Graph.Kind(res.Root))
	assert.Len(t, res.Accepts, 3)
	assert.Len(t, res.Paths, 3)
}

func TestCompile_ReverseComplement(t *testing.T) {
	res := compile(t, "reverse-comp (a then b)")
	require.Len(t, res.Paths, 1)
	assert.Equal(t, []string{"b", "a"}, res.Paths[0].Texts())
	for _, e := range res.Paths[0] {
		assert.Equal(t, automaton.ReverseComplement, e.Orientation)
	}

	twice := compile(t, "reverse-comp (reverse-comp a)")
	plain := compile(t, "a")
	require.Len(t, twice.Paths, 1)
	assert.True(t, twice.Paths[0].Equal(plain.Paths[0]))
	assert.Equal(t, automaton.Inline, twice.Paths[0][0].Orientation)
}

func TestCompile_And(t *testing.T) {
	res := compile(t, "cds1 and0 cds2")
	require.Len(t, res.Paths, 1)
	e := res.Paths[0][0]
	assert.Equal(t, "cds1_and0_cds2", e.Text)
	assert.Equal(t, []string{"tetR"}, e.Component.Category().IDs())

	cat, ok := res.Categories.Lookup("cds1_and0_cds2")
	require.True(t, ok)
	assert.True(t, cat.Equal(category.Of("cds", "tetR")))
}

func TestCompile_EmptyAnd(t *testing.T) {
	res := compile(t, "cds1 and0 cds3")
	assert.Empty(t, res.Paths)

	res = compile(t, "(cds1 and0 cds3) then c")
	assert.Empty(t, res.Paths)
	assert.Empty(t, res.Accepts)
}

// The designs of x and0 y are exactly the designs both x and y accept.
func TestCompile_AndIntersectsRepetitions(t *testing.T) {
	cases := []struct{ x, y string }{
		{"zero-or-more a", "zero-or-one a"},
		{"zero-or-one a", "zero-or-more a"},
		{"one-or-more a", "a then a"},
		{"a or b", "zero-or-more b"},
	}
	for _, tc := range cases {
		t.Run(tc.x+" and0 "+tc.y, func(t *testing.T) {
			k := compiler.WithMaxCycles(2)
			x := design.Expand(compile(t, tc.x, k).Paths)
			y := design.Expand(compile(t, tc.y, k).Paths)
			inY := make(map[string]bool, len(y))
			for _, d := range y {
				inY[d] = true
			}
			var want []string
			for _, d := range x {
				if inY[d] {
					want = append(want, d)
				}
			}
			require.NotEmpty(t, want)

			got := design.Expand(compile(t, "("+tc.x+") and0 ("+tc.y+")", k).Paths)
			assert.ElementsMatch(t, want, got)
		})
	}
}

func TestCompile_AndKeepsOptionalPart(t *testing.T) {
	res := compile(t, "(zero-or-more a) and0 (zero-or-one a)")
	assert.ElementsMatch(t, []string{"", "a1", "a2"}, design.Expand(res.Paths))
}

// MERGE keeps only walks through a shared part, so the empty design of the
// optional operand is not part of the result.
func TestCompile_MergeDropsUnsharedDesigns(t *testing.T) {
	res := compile(t, "(zero-or-one a) merge a")
	assert.ElementsMatch(t, []string{"a1", "a2"}, design.Expand(res.Paths))
}

func TestCompile_Merge(t *testing.T) {
	res := compile(t, "cds1 merge cds2")
	require.Len(t, res.Paths, 1)
	assert.Equal(t, []string{"cI", "lacI", "tetR"}, res.Paths[0][0].Component.Category().IDs())
}

func TestCompile_DoesNotMutateTable(t *testing.T) {
	table := partTable()
	_, err := compiler.Compile(expr.MustParse("cds1 and0 cds2"), table)
	require.NoError(t, err)
	assert.True(t, partTable().Equal(table))
}

func TestCompile_Errors(t *testing.T) {
	table := partTable()

	_, err := compiler.Compile(expr.MustParse("zzz"), table)
	require.ErrorIs(t, err, compiler.ErrUnknownAtom)
	assert.Contains(t, err.Error(), "not in part categories")

	for _, k := range []int{-1, 11} {
		_, err = compiler.Compile(expr.MustParse("a"), table, compiler.WithMaxCycles(k))
		require.ErrorIs(t, err, compiler.ErrCycleDepthExceeded, "k=%d", k)
		require.ErrorIs(t, err, enumerate.ErrCycleDepthExceeded, "k=%d", k)
	}

	_, err = compiler.Compile(expr.MustParse("a and b"), table,
		compiler.WithRepresentation(compiler.NodeRepresentation))
	require.ErrorIs(t, err, compiler.ErrUnsupportedOperation)

	_, err = compiler.Compile(expr.And{A: expr.Atom{Name: "a"}, B: expr.Atom{Name: "b"}, Tolerance: 5}, table)
	require.ErrorIs(t, err, compiler.ErrInvalidTolerance)

	_, err = compiler.Compile(nil, table)
	require.ErrorIs(t, err, compiler.ErrConstruction)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = compiler.Compile(expr.MustParse("a"), table, compiler.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompile_NodeRepresentation(t *testing.T) {
	res := compile(t, "a then b", compiler.WithRepresentation(compiler.NodeRepresentation))
	atoms := 0
	for _, id := range res.Graph.NodeIDs() {
		if res.Graph.Kind(id) == automaton.KindAtom {
			atoms++
		}
	}
	assert.Equal(t, 2, atoms)
	assert.Equal(t, [][]string{{"a", "b"}}, texts(res.Paths))
}

func TestParseRepresentation(t *testing.T) {
	r, err := compiler.ParseRepresentation(" Node ")
	require.NoError(t, err)
	assert.Equal(t, compiler.NodeRepresentation, r)
	r, err = compiler.ParseRepresentation("")
	require.NoError(t, err)
	assert.Equal(t, compiler.EdgeRepresentation, r)
	_, err = compiler.ParseRepresentation("tree")
	require.ErrorIs(t, err, compiler.ErrUnknownRepresentation)
}

func ExampleCompile() {
	table := category.Table{
		"promoter": category.Of("promoter", "pTet", "pLac"),
		"cds":      category.Of("cds", "gfp"),
	}
	res, err := compiler.Compile(expr.MustParse("promoter then (zero-or-one cds)"), table)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range res.Paths {
		fmt.Println(p)
	}
	// Output:
	// promoter cds
	// promoter
}
