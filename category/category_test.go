package category_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/constellation/category"
)

// combinator fixtures: cds* share parts, a* exercise the tolerance levels.
var (
	cds1 = category.Of("cds", "tetR", "lacI")
	cds2 = category.Of("cds", "tetR", "cI")
	cds3 = category.Of("cds", "gfp", "rfp")

	a1 = category.Of("a", "first", "second")
	a2 = category.New(map[string][]string{"a": {"first"}, "letter": {"first"}})
	a3 = category.Of("a")
	a4 = category.Of("letter")
)

func TestNew_Normalizes(t *testing.T) {
	c := category.New(map[string][]string{
		"cds":  {" tetR", "lacI", "tetR", ""},
		"  ":   {"ignored"},
		"prom": nil,
	})
	want := category.Category{"cds": {"lacI", "tetR"}, "prom": {}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("New mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"cds", "prom"}, c.Roles())
	assert.Equal(t, []string{"lacI", "tetR"}, c.IDs())
	assert.False(t, c.IsAbstract())
	assert.True(t, category.Of("prom").IsAbstract())
}

func TestCloneIsDeep(t *testing.T) {
	c := cds1.Clone()
	c["cds"][0] = "changed"
	assert.Equal(t, []string{"lacI", "tetR"}, cds1["cds"])
	assert.False(t, c.Equal(cds1))
}

func TestIntersect_Exact(t *testing.T) {
	got, err := category.Intersect(cds1, cds2, category.Exact)
	require.NoError(t, err)
	assert.Equal(t, []string{"tetR"}, got.IDs())

	got, err = category.Intersect(a1, a2, category.Exact)
	require.NoError(t, err)
	want := category.Category{"a": {"first"}, "letter": {"first"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("roles of the match (-want +got):\n%s", diff)
	}

	got, err = category.Intersect(cds1, cds3, category.Exact)
	require.NoError(t, err)
	assert.True(t, got.Empty())

	got, err = category.Intersect(a1, a3, category.Exact)
	require.NoError(t, err)
	assert.True(t, got.Empty(), "abstract categories never match exactly")
}

func TestIntersect_RoleAware(t *testing.T) {
	got, err := category.Intersect(a1, a3, category.RoleAware)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got.IDs())

	got, err = category.Intersect(a3, a1, category.RoleAware)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got.IDs())

	got, err = category.Intersect(a1, a4, category.RoleAware)
	require.NoError(t, err)
	assert.True(t, got.Empty(), "no shared role")

	got, err = category.Intersect(a3, category.Of("a"), category.RoleAware)
	require.NoError(t, err)
	assert.True(t, got.Empty(), "two abstract sides need tolerance 2")
}

func TestIntersect_Abstract(t *testing.T) {
	got, err := category.Intersect(a3, category.Of("a"), category.Abstract)
	require.NoError(t, err)
	assert.Equal(t, category.Category{"a": {}}, got)
	assert.True(t, got.IsAbstract())

	got, err = category.Intersect(a3, a4, category.Abstract)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestIntersect_InvalidTolerance(t *testing.T) {
	for _, tol := range []category.Tolerance{-1, 3, 42} {
		_, err := category.Intersect(cds1, cds2, tol)
		require.ErrorIs(t, err, category.ErrInvalidTolerance)
	}
}

// TestIntersect_Monotonic checks that raising the tolerance never rejects a
// pair that a lower one accepted.
func TestIntersect_Monotonic(t *testing.T) {
	cats := []category.Category{cds1, cds2, cds3, a1, a2, a3, a4, category.Of("a", "first")}
	for _, x := range cats {
		for _, y := range cats {
			prev := false
			for tol := category.Exact; tol <= category.Abstract; tol++ {
				got, err := category.Intersect(x, y, tol)
				require.NoError(t, err)
				ok := !got.Empty()
				if prev {
					assert.Truef(t, ok, "tolerance %d rejected %v / %v", tol, x, y)
				}
				prev = ok
			}
		}
	}
}

func TestMerge(t *testing.T) {
	assert.Equal(t, []string{"cI", "lacI", "tetR"}, category.Merge(cds1, cds2).IDs())
	assert.Equal(t, []string{"lacI", "tetR"}, category.Merge(cds1, cds1).IDs())
	assert.True(t, category.Merge(cds1, cds3).Empty())
}

func TestTable_Register(t *testing.T) {
	tbl := category.Table{}
	sep := category.IntersectSeparator(category.Exact)
	assert.Equal(t, "_and0_", sep)

	assert.Equal(t, "cds1", tbl.Register("cds1", "cds1", sep, cds1))
	assert.Equal(t, "cds1_and0_cds2", tbl.Register("cds1", "cds2", sep, category.Of("cds", "tetR")))
	// the reverse order reuses the existing entry and widens it
	assert.Equal(t, "cds1_and0_cds2", tbl.Register("cds2", "cds1", sep, category.Of("cds", "cI")))
	assert.Equal(t, []string{"cI", "tetR"}, tbl["cds1_and0_cds2"].IDs())

	assert.Equal(t, "x_merge_y", tbl.Register("x", "y", category.MergeSeparator, cds3))
	assert.Equal(t, []string{"cds1", "cds1_and0_cds2", "x_merge_y"}, tbl.Names())
}

func TestTable_AbsorbAndClone(t *testing.T) {
	tbl := category.Table{"cds1": cds1}
	cp := tbl.Clone()
	cp.Absorb(category.Table{"cds1": cds2, "cds3": cds3})
	assert.Equal(t, []string{"cI", "lacI", "tetR"}, cp["cds1"].IDs())
	assert.Equal(t, []string{"lacI", "tetR"}, tbl["cds1"].IDs())
	assert.False(t, tbl.Equal(cp))
	assert.True(t, cp.Equal(cp.Clone()))
}
