package design_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/constellation/automaton"
	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/design"
	"github.com/katalvlaran/constellation/enumerate"
)

func edge(text string, c category.Category) automaton.Edge {
	return automaton.Edge{Text: text, Kind: automaton.EdgeAtom, Component: automaton.Categories(c)}
}

func TestExpand(t *testing.T) {
	promoter := edge("promoter", category.Of("promoter", "pTet", "pLac"))
	cds := edge("cds", category.Of("cds", "gfp"))

	got := design.Expand([]enumerate.Path{{promoter, cds}, {cds}, {}})
	assert.Equal(t, []string{"pLac,gfp", "pTet,gfp", "gfp", ""}, got)
}

func TestExpand_SingleAtom(t *testing.T) {
	c := edge("c", category.Of("cds", "a1"))
	assert.Equal(t, []string{"a1"}, design.Expand([]enumerate.Path{{c}}))
}

func TestExpand_AbstractCategoryHasNoDesigns(t *testing.T) {
	abstract := edge("any", category.New(map[string][]string{"cds": {}}))
	assert.Empty(t, design.Expand([]enumerate.Path{{abstract}}))
}

func TestExpand_Deduplicates(t *testing.T) {
	a := edge("a", category.Of("cds", "x"))
	b := edge("b", category.Of("cds", "x"))
	assert.Equal(t, []string{"x"}, design.Expand([]enumerate.Path{{a}, {b}}))
}

func TestSelect(t *testing.T) {
	all := []string{"d1", "d2", "d3", "d4", "d5"}

	got, err := design.Select(all, 10)
	require.NoError(t, err)
	assert.Equal(t, all, got, "a large enough reservoir keeps everything in order")

	got, err = design.Select(all, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = design.Select(all, 3, design.WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Len(t, uniq(got), 3)
	assert.Subset(t, all, got)
}

func TestSelect_SeedIsReproducible(t *testing.T) {
	all := make([]string, 100)
	for i := range all {
		all[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
	}
	x, err := design.Select(all, 7, design.WithSeed(42))
	require.NoError(t, err)
	y, err := design.Select(all, 7, design.WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, x, y)
}

func TestSelect_Bounds(t *testing.T) {
	_, err := design.Select(nil, design.MaxDesigns+1)
	require.ErrorIs(t, err, design.ErrTooManyDesigns)
	_, err = design.Select(nil, -1)
	require.ErrorIs(t, err, design.ErrNegativeCount)

	_, err = design.Enumerate(nil, 20000)
	require.ErrorIs(t, err, design.ErrTooManyDesigns)
}

func TestEnumerate(t *testing.T) {
	a := edge("a", category.Of("cds", "a1", "a2"))
	got, err := design.Enumerate([]enumerate.Path{{a}}, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, got)
}

func uniq(in []string) map[string]bool {
	out := make(map[string]bool, len(in))
	for _, s := range in {
		out[s] = true
	}
	return out
}
