package pathquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivekkrish/neo4j/internal/qerr"
)

const geneXML = `<query name="genes" model="genomic" view="Gene.symbol Gene.organism.name" sortOrder="Gene.symbol desc Gene.length" constraintLogic="A or B">
  <join path="Gene.proteins" style="OUTER"/>
  <join path="Gene.organism" style="INNER"/>
  <constraint path="Gene.organism.name" op="=" value="Drosophila"/>
  <constraint path="Gene" op="LOOKUP" value="eve" extraValue="D. melanogaster" code="A"/>
  <constraint path="Gene.length" op="&gt;" value="100"/>
</query>`

func TestDecodeXML(t *testing.T) {
	q, err := DecodeXML([]byte(geneXML))
	require.NoError(t, err)

	assert.Equal(t, "genes", q.Name)
	assert.Equal(t, "genomic", q.Model)
	assert.Equal(t, "Gene", q.Root())
	assert.Equal(t, []string{"Gene.symbol", "Gene.organism.name"}, q.Views)
	assert.Equal(t, "A OR B", q.Logic)
	assert.Equal(t, []Sort{{Path: "Gene.symbol", Descending: true}, {Path: "Gene.length"}}, q.SortOrder)
	assert.Equal(t, []string{"Gene.proteins"}, q.OuterJoins())

	require.Len(t, q.Constraints, 3)
	assert.Equal(t, "B", q.Constraints[0].Code)
	assert.Equal(t, "A", q.Constraints[1].Code)
	assert.Equal(t, "C", q.Constraints[2].Code)
	assert.Equal(t, ">", q.Constraints[2].Op)
	require.NotNil(t, q.Constraints[1].ExtraValue)
	assert.Equal(t, "D. melanogaster", *q.Constraints[1].ExtraValue)
	assert.Nil(t, q.Constraints[0].ExtraValue)

	assert.Equal(t, []string{"Gene.symbol", "Gene.organism.name", "Gene", "Gene.length"}, q.Paths())
}

func TestDecodeJSON(t *testing.T) {
	data := `{
		"view": ["Gene.symbol"],
		"constraints": [
			{"path": "Gene.symbol", "op": "CONTAINS", "value": "ev"},
			{"path": "Gene.organism", "op": "IS NOT NULL", "code": "b"}
		],
		"constraintLogic": "A and B",
		"sortOrder": [{"path": "Gene.symbol", "direction": "DESC"}],
		"joins": [{"path": "Gene.organism", "style": "outer"}]
	}`

	q, err := DecodeJSON([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Gene.symbol"}, q.Views)
	assert.Equal(t, "A", q.Constraints[0].Code)
	assert.Equal(t, "B", q.Constraints[1].Code)
	assert.Equal(t, []Sort{{Path: "Gene.symbol", Descending: true}}, q.SortOrder)
	assert.Equal(t, []string{"Gene.organism"}, q.OuterJoins())
}

func TestDecodeXML_LowercaseCodes(t *testing.T) {
	q, err := DecodeXML([]byte(`<query view="Gene.symbol" constraintLogic="a or (b and not c)">
  <constraint path="Gene.symbol" op="=" value="eve" code="a"/>
  <constraint path="Gene.symbol" op="=" value="ftz" code="b"/>
  <constraint path="Gene.length" op="&lt;" value="10" code="c"/>
</query>`))
	require.NoError(t, err)

	assert.Equal(t, "A OR (B AND NOT C)", q.Logic)
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, want, q.Constraints[i].Code)
	}
}

func TestDecode_SubclassConstraint(t *testing.T) {
	t.Run("xml", func(t *testing.T) {
		q, err := DecodeXML([]byte(`<query view="Gene.symbol">
  <constraint path="Gene.chromosome" type="Chromosome" code="A"/>
  <constraint path="Gene.symbol" op="=" value="eve"/>
</query>`))
		require.NoError(t, err)

		require.Len(t, q.Constraints, 2)
		assert.True(t, q.Constraints[0].IsSubclass())
		assert.Equal(t, "Chromosome", q.Constraints[0].Type)
		assert.Empty(t, q.Constraints[0].Code)
		assert.Equal(t, "A", q.Constraints[1].Code)
		assert.Equal(t, []string{"Gene.symbol", "Gene.chromosome"}, q.Paths())
	})

	t.Run("json", func(t *testing.T) {
		q, err := DecodeJSON([]byte(`{"view": ["SequenceFeature.symbol"], "constraints": [{"path": "SequenceFeature", "type": " Gene "}]}`))
		require.NoError(t, err)

		require.Len(t, q.Constraints, 1)
		assert.Equal(t, "Gene", q.Constraints[0].Type)
		assert.Empty(t, q.Constraints[0].Code)
	})
}

func TestDecode_Sniffs(t *testing.T) {
	q, err := Decode([]byte(`  {"view": ["Gene.symbol"]}`), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gene.symbol"}, q.Views)

	q, err = Decode([]byte(`<query view="Protein.name"/>`), "")
	require.NoError(t, err)
	assert.Equal(t, "Protein", q.Root())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"malformed xml", `<query view="Gene.symbol">`, FormatXML},
		{"no view", `<query/>`, FormatXML},
		{"direction without path", `<query view="Gene.symbol" sortOrder="asc"/>`, FormatXML},
		{"malformed json", `{"view": [`, FormatJSON},
		{"unknown json field", `{"view": ["Gene.symbol"], "select": []}`, FormatJSON},
		{"blank views", `{"view": [" ", ""]}`, FormatJSON},
		{"bad direction", `{"view": ["Gene.symbol"], "sortOrder": [{"path": "Gene.symbol", "direction": "up"}]}`, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, qerr.ErrInvalidQuery)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestCode(t *testing.T) {
	assert.Equal(t, "A", code(0))
	assert.Equal(t, "Z", code(25))
	assert.Equal(t, "AA", code(26))
	assert.Equal(t, "AB", code(27))
	assert.Equal(t, "BA", code(52))
}
