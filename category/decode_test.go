package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/constellation/category"
)

func TestDecodeJSON_Shapes(t *testing.T) {
	tbl, err := category.DecodeJSON([]byte(`{
		"cds1": {"cds": ["tetR", "lacI"]},
		"a": ["a1", "a2", "a1"],
		"abs": {"promoter": []}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "abs", "cds1"}, tbl.Names())
	assert.Equal(t, category.Category{"a": {"a1", "a2"}}, tbl["a"])
	assert.Equal(t, []string{"lacI", "tetR"}, tbl["cds1"]["cds"])
	assert.True(t, tbl["abs"].IsAbstract())
}

func TestDecodeYAML_Shapes(t *testing.T) {
	tbl, err := category.Decode([]byte(`
cds1:
  cds: [tetR, lacI]
b: [b]
abs:
  promoter: []
`), category.YAML)
	require.NoError(t, err)
	assert.Equal(t, category.Category{"b": {"b"}}, tbl["b"])
	assert.Equal(t, []string{"lacI", "tetR"}, tbl["cds1"].IDs())
	assert.True(t, tbl["abs"].HasRole("promoter"))
}

func TestDecode_Errors(t *testing.T) {
	_, err := category.DecodeJSON([]byte(`{"a": 3}`))
	require.ErrorIs(t, err, category.ErrMalformedTable)

	_, err = category.DecodeJSON([]byte(`not json`))
	require.ErrorIs(t, err, category.ErrMalformedTable)

	_, err = category.DecodeYAML([]byte("a: plain"))
	require.ErrorIs(t, err, category.ErrMalformedTable)

	_, err = category.Decode([]byte(`{}`), "toml")
	require.ErrorIs(t, err, category.ErrUnknownFormat)
}
