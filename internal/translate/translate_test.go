package translate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/pathquery"
	"github.com/vivekkrish/neo4j/internal/qerr"
)

func newTranslator(t *testing.T, opts Options) *Translator {
	t.Helper()
	m, err := metadata.Load("")
	require.NoError(t, err)
	return New(m, opts)
}

func decodeFile(t *testing.T, name string) *pathquery.Query {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "queries", name))
	require.NoError(t, err)
	q, err := pathquery.Decode(data, "")
	require.NoError(t, err)
	return q
}

func TestTranslate_Golden(t *testing.T) {
	tests := []struct {
		file            string
		opts            Options
		wantUnsupported int
	}{
		{file: "gene_organism.xml"},
		{file: "lookup_extra_value.xml", opts: Options{ExtraValueLabel: "Organism", ExtraValuePropertyName: "shortName"}},
		{file: "outer_join_sort.xml", opts: Options{MaxRows: 100}},
		{file: "relationship_properties.xml"},
		{file: "unsupported_operator.xml", wantUnsupported: 1},
		{file: "logic_grouping.json"},
		{file: "missing_reference.xml"},
		{file: "subclass.xml"},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		name := strings.TrimSuffix(tt.file, filepath.Ext(tt.file))
		t.Run(name, func(t *testing.T) {
			res, err := newTranslator(t, tt.opts).Translate(decodeFile(t, tt.file))
			require.NoError(t, err)
			assert.Len(t, res.Unsupported, tt.wantUnsupported)
			g.Assert(t, name, []byte(res.Query))
		})
	}
}

func TestTranslate_Strict(t *testing.T) {
	tr := newTranslator(t, Options{Strict: true})

	_, err := tr.Translate(decodeFile(t, "unsupported_operator.xml"))
	var qe *qerr.Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, qerr.CodeUnsupportedOperator, qe.Code)
	assert.Equal(t, "Gene.symbol", qe.Path)
	assert.Equal(t, "ONE OF", qe.Value)
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		opts  Options
		errIs error
	}{
		{"unknown root", `<query view="Spaceship.name"/>`, Options{}, qerr.ErrSchemaMismatch},
		{"unknown field", `<query view="Gene.colour"/>`, Options{}, qerr.ErrSchemaMismatch},
		{"mixed roots", `<query view="Gene.symbol Protein.name"/>`, Options{}, qerr.ErrInvalidPath},
		{"attribute of attribute", `<query view="Gene.symbol.length"/>`, Options{}, qerr.ErrInvalidPath},
		{"non numeric ordering", `<query view="Gene.symbol"><constraint path="Gene.length" op="&lt;" value="long"/></query>`, Options{}, qerr.ErrLiteralFormat},
		{"extra value without config", `<query view="Gene.symbol"><constraint path="Gene" op="LOOKUP" value="eve" extraValue="D. rerio"/></query>`, Options{}, qerr.ErrMissingConfiguration},
		{"logic names missing code", `<query view="Gene.symbol" constraintLogic="A or Z"><constraint path="Gene.symbol" op="=" value="eve"/></query>`, Options{}, qerr.ErrInvalidLogic},
		{"sort on class", `<query view="Gene.symbol" sortOrder="Gene.organism asc"/>`, Options{}, qerr.ErrInvalidPath},
		{"type not a subclass", `<query view="Gene.symbol"><constraint path="Gene.organism" type="Gene"/></query>`, Options{}, qerr.ErrSchemaMismatch},
		{"ordering integer overflow", `<query view="Gene.symbol"><constraint path="Gene.length" op="&gt;" value="99999999999999999999"/></query>`, Options{}, qerr.ErrLiteralFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := pathquery.DecodeXML([]byte(tt.query))
			require.NoError(t, err)
			_, err = newTranslator(t, tt.opts).Translate(q)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestTranslate_NoView(t *testing.T) {
	_, err := newTranslator(t, Options{}).Translate(&pathquery.Query{})
	assert.ErrorIs(t, err, qerr.ErrInvalidQuery)
}

func TestTranslate_Deterministic(t *testing.T) {
	tr := newTranslator(t, Options{MaxRows: 100})
	q := decodeFile(t, "outer_join_sort.xml")
	want, err := tr.Translate(q)
	require.NoError(t, err)

	results := make([]string, 32)
	g := new(errgroup.Group)
	for i := range results {
		g.Go(func() error {
			res, err := tr.Translate(q)
			if err != nil {
				return err
			}
			results[i] = res.Query
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, got := range results {
		assert.Equal(t, want.Query, got)
	}
}
