package valuation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairalloc/valuation"
)

// TestDecode_NestedKeepsDocumentOrder checks that YAML key order becomes the
// canonical order instead of the sorted map order.
func TestDecode_NestedKeepsDocumentOrder(t *testing.T) {
	doc := `
Tami: {green: 12, red: 8, blue: 4, yellow: 2}
Ami:  {green: 8, red: 7, blue: 6, yellow: 5}
`
	in, err := valuation.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, valuation.ShapeNestedMapping, in.Shape())

	m, err := valuation.Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tami", "Ami"}, m.Agents())
	assert.Equal(t, []string{"green", "red", "blue", "yellow"}, m.Items())
	assert.Equal(t, 6.0, m.At(1, 2))
}

// TestDecode_JSON accepts JSON documents through the same path.
func TestDecode_JSON(t *testing.T) {
	in, err := valuation.Decode(strings.NewReader(`{"Ami": [8, 7, 6, 5], "Tami": [12, 8, 4, 2.5]}`))
	require.NoError(t, err)
	assert.Equal(t, valuation.ShapeLabeledVectors, in.Shape())

	m, err := valuation.Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ami", "Tami"}, m.Agents())
	assert.Equal(t, 2.5, m.At(1, 3))

	in, err = valuation.Decode(strings.NewReader(`[[1, 2], [3, 4]]`))
	require.NoError(t, err)
	assert.Equal(t, valuation.ShapePositionalMatrix, in.Shape())
	m, err = valuation.Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent #0", "Agent #1"}, m.Agents())
}

// TestDecode_SubsetOverridesDocumentOrder applies caller subsets after the
// document order.
func TestDecode_SubsetOverridesDocumentOrder(t *testing.T) {
	in, err := valuation.Decode(strings.NewReader("a: {x: 1, y: 2}\nb: {x: 3, y: 4}\n"))
	require.NoError(t, err)

	m, err := valuation.Normalize(in, valuation.WithItems("y"), valuation.WithAgents("b", "a"))
	require.NoError(t, err)
	assert.Equal(t, valuation.PositionalMatrix{{4}, {2}}, m.Matrix())
}

// TestDecode_Errors covers malformed documents.
func TestDecode_Errors(t *testing.T) {
	bad := map[string]string{
		"scalar root":      `42`,
		"mixed kinds":      "a: [1, 2]\nb: {x: 1}\n",
		"non numeric":      "a: [1, two]\n",
		"nested sequence":  "- [1, [2]]\n",
		"ragged nested":    "a: {x: 1, y: 2}\nb: {x: 1}\n",
		"duplicate agents": "a: [1]\na: [2]\n",
	}
	for name, doc := range bad {
		t.Run(name, func(t *testing.T) {
			in, err := valuation.Decode(strings.NewReader(doc))
			if err == nil {
				_, err = valuation.Normalize(in)
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, valuation.ErrShape)
		})
	}

	_, err := valuation.Decode(strings.NewReader("a: [1, 2"))
	require.Error(t, err)
}

// TestDecode_EmptyDocument yields an empty model.
func TestDecode_EmptyDocument(t *testing.T) {
	in, err := valuation.Decode(strings.NewReader(""))
	require.NoError(t, err)
	m, err := valuation.Normalize(in)
	require.NoError(t, err)
	assert.Zero(t, m.NumAgents())
}
