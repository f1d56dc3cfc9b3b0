//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/pathquery"
	"github.com/vivekkrish/neo4j/internal/translate"
)

func newTranslator(t *testing.T, opts translate.Options) *translate.Translator {
	t.Helper()
	m, err := metadata.Load("")
	require.NoError(t, err)
	return translate.New(m, opts)
}

func TestTranslatedQueriesExecute(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t, translate.Options{
		ExtraValueLabel:        "Organism",
		ExtraValuePropertyName: "shortName",
		MaxRows:                100,
	})

	tests := []struct {
		name    string
		query   string
		wantRow int
	}{
		{"reference constraint", `<query view="Gene.symbol"><constraint path="Gene.organism.name" op="=" value="Drosophila melanogaster"/></query>`, 2},
		{"numeric ordering", `<query view="Gene.symbol"><constraint path="Gene.length" op="&gt;" value="1600"/></query>`, 2},
		{"contains", `<query view="Gene.symbol"><constraint path="Gene.organism.shortName" op="CONTAINS" value="sapiens"/></query>`, 1},
		{"relationship properties", `<query view="Gene.symbol Gene.locations.start Gene.locations.locatedOn.primaryIdentifier"><constraint path="Gene.locations.strand" op="!=" value="1"/></query>`, 1},
		{"lookup with extra value", `<query view="Gene.primaryIdentifier"><constraint path="Gene" op="LOOKUP" value="eve" extraValue="D. melanogaster"/></query>`, 1},
		{"outer join keeps genes without proteins", `<query view="Gene.symbol Gene.proteins.primaryAccession"><join path="Gene.proteins" style="OUTER"/><constraint path="Gene.organism.taxonId" op="=" value="7227"/></query>`, 2},
		{"logic", `<query view="Gene.symbol" constraintLogic="A or B"><constraint path="Gene.symbol" op="=" value="eve"/><constraint path="Gene.symbol" op="=" value="HOXA1"/></query>`, 2},
		{"null check", `<query view="Gene.symbol"><constraint path="Gene.description" op="IS NULL"/></query>`, 3},
		{"genes without proteins", `<query view="Gene.symbol"><constraint path="Gene.proteins" op="IS NULL"/></query>`, 2},
		{"genes without locations", `<query view="Gene.symbol"><constraint path="Gene.locations" op="IS EMPTY"/></query>`, 1},
		{"leading zeros compare as decimal", `<query view="Gene.symbol"><constraint path="Gene.length" op="&gt;" value="01600"/></query>`, 2},
		{"lowercase codes", `<query view="Gene.symbol" constraintLogic="a or b"><constraint path="Gene.symbol" op="=" value="eve" code="a"/><constraint path="Gene.symbol" op="=" value="ftz" code="b"/></query>`, 2},
		{"subclass", `<query view="SequenceFeature.primaryIdentifier"><constraint path="SequenceFeature" type="Gene"/></query>`, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := pathquery.DecodeXML([]byte(tt.query))
			require.NoError(t, err)
			res, err := tr.Translate(q)
			require.NoError(t, err)
			require.Empty(t, res.Unsupported)

			records, err := dbs.Service.ExecuteReadQuery(context.Background(), res.Query, nil)
			require.NoError(t, err, res.Query)
			assert.Len(t, records, tt.wantRow, res.Query)
		})
	}
}

func TestIntrospectSeededGraph(t *testing.T) {
	t.Parallel()

	s, err := metadata.Introspect(context.Background(), dbs.Service)
	require.NoError(t, err)

	m, err := metadata.Build(s)
	require.NoError(t, err)

	organism, ok := m.Type("Organism")
	require.True(t, ok)
	assert.True(t, organism.HasProperty("taxonId"))

	gene, ok := m.Type("Gene")
	require.True(t, ok)
	ref, ok := gene.Reference("organism")
	require.True(t, ok)
	assert.Equal(t, "ORGANISM", ref.RelType)
}
