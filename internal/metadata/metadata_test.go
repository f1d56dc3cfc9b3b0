package metadata

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vivekkrish/neo4j/internal/qerr"
)

func loadDefault(t *testing.T) *Model {
	t.Helper()
	m, err := Load("")
	require.NoError(t, err)
	return m
}

func TestLoad_DefaultModel(t *testing.T) {
	m := loadDefault(t)

	gene, ok := m.Type("Gene")
	require.True(t, ok)
	assert.Equal(t, []string{"Gene", "SequenceFeature", "BioEntity"}, gene.Labels)
	assert.True(t, gene.HasProperty("symbol"), "inherited from BioEntity")
	assert.True(t, gene.HasProperty("length"), "inherited from SequenceFeature")
	assert.True(t, gene.HasProperty("briefDescription"))

	organism, ok := gene.Reference("organism")
	require.True(t, ok)
	assert.Equal(t, Reference{Field: "organism", Type: "Organism", RelType: "ORGANISM"}, organism)

	proteins, ok := gene.Reference("proteins")
	require.True(t, ok)
	assert.Equal(t, "ENCODES", proteins.RelType)

	rel, ok := gene.RelationshipName("locations")
	require.True(t, ok)
	assert.Equal(t, "Location", rel)

	loc, ok := m.Relationship("Location")
	require.True(t, ok)
	assert.Equal(t, "LOCATED_ON", loc.Type)
	assert.Equal(t, []string{"end", "start", "strand"}, loc.Properties())

	_, ok = m.Type("Nope")
	assert.False(t, ok)
}

func TestModel_Classify(t *testing.T) {
	m := loadDefault(t)
	gene, _ := m.Type("Gene")
	protein, _ := m.Type("Protein")
	transcript, _ := m.Type("Transcript")
	location, _ := m.Relationship("Location")

	tests := []struct {
		name     string
		parent   Classification
		segment  string
		scope    Scope
		want     Classification
		target   string
		typeName string
		errIs    error
	}{
		{name: "property", parent: Entity, segment: "symbol", scope: gene, want: Property, target: "symbol"},
		{name: "reference", parent: Entity, segment: "organism", scope: gene, want: Entity, target: "ORGANISM", typeName: "Organism"},
		{name: "explicit relationship type", parent: Entity, segment: "proteins", scope: gene, want: Entity, target: "ENCODES", typeName: "Protein"},
		{name: "camel case reference", parent: Entity, segment: "goAnnotation", scope: gene, want: Entity, target: "GO_ANNOTATION", typeName: "GOAnnotation"},
		{name: "relationship", parent: Entity, segment: "locations", scope: gene, want: Relationship, target: "LOCATED_ON", typeName: "Location"},
		{name: "relationship property", parent: Relationship, segment: "start", scope: location, want: Property, target: "start"},
		{name: "relationship end", parent: Relationship, segment: "locatedOn", scope: location, want: Entity, target: "locatedOn", typeName: "Chromosome"},
		{name: "gene is a property of Protein", parent: Entity, segment: "gene", scope: protein, want: Property, target: "gene"},
		{name: "gene is a reference of Transcript", parent: Entity, segment: "gene", scope: transcript, want: Entity, target: "GENE", typeName: "Gene"},
		{name: "unknown field", parent: Entity, segment: "bogus", scope: gene, errIs: qerr.ErrSchemaMismatch},
		{name: "entity reference under relationship", parent: Relationship, segment: "organism", scope: location, errIs: qerr.ErrSchemaMismatch},
		{name: "below a property", parent: Property, segment: "x", scope: nil, errIs: qerr.ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.Classify(tt.parent, tt.segment, tt.scope)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Classification)
			assert.Equal(t, tt.target, res.TargetName)
			assert.Equal(t, tt.typeName, res.TypeName)
			if tt.want == Property {
				assert.Nil(t, res.Scope)
			} else {
				assert.NotNil(t, res.Scope)
			}
		})
	}
}

func TestModel_Root(t *testing.T) {
	m := loadDefault(t)

	res, err := m.Root("Gene")
	require.NoError(t, err)
	assert.Equal(t, Entity, res.Classification)
	assert.Equal(t, "Gene", res.TargetName)

	_, err = m.Root("Spaceship")
	assert.ErrorIs(t, err, qerr.ErrSchemaMismatch)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no classes",
			yaml: "classes: {}",
			want: "schema declares no classes",
		},
		{
			name: "unknown reference type",
			yaml: "classes:\n  A:\n    references:\n      b: {type: B}\n",
			want: `reference b points at unknown class "B"`,
		},
		{
			name: "inheritance cycle",
			yaml: "classes:\n  A:\n    extends: [B]\n  B:\n    extends: [A]\n",
			want: "inheritance cycle",
		},
		{
			name: "property and reference clash",
			yaml: "classes:\n  A:\n    properties: [b]\n    references:\n      b: {type: A}\n",
			want: "declared as both property and reference",
		},
		{
			name: "relationship without end",
			yaml: "classes:\n  A: {}\nrelationships:\n  R:\n    type: R\n",
			want: "end field and type are required",
		},
		{
			name: "unknown relationship class",
			yaml: "classes:\n  A:\n    relationships:\n      r: R\n",
			want: `unknown relationship class "R"`,
		},
		{
			name: "malformed yaml",
			yaml: "classes: [",
			want: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_InheritanceOverride(t *testing.T) {
	m, err := Parse([]byte(`
classes:
  Base:
    labels: [Thing]
    properties: [id]
    references:
      owner: {type: Base}
  Child:
    extends: [Base]
    references:
      owner: {type: Child, rel_type: OWNED_BY}
`))
	require.NoError(t, err)

	child, ok := m.Type("Child")
	require.True(t, ok)
	assert.Equal(t, []string{"Child", "Base", "Thing"}, child.Labels)
	assert.True(t, child.HasProperty("id"))

	owner, ok := child.Reference("owner")
	require.True(t, ok)
	assert.Equal(t, "Child", owner.Type)
	assert.Equal(t, "OWNED_BY", owner.RelType)
}

func TestLoadFS_MergesFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"core.yaml":         {Data: []byte("classes:\n  Gene:\n    properties: [symbol]\n    references:\n      organism: {type: Organism}\n")},
		"more/organism.yml": {Data: []byte("classes:\n  Organism:\n    properties: [name]\n")},
		"README.md":         {Data: []byte("not a schema")},
	}

	m, err := LoadFS(fsys)
	require.NoError(t, err)
	assert.Len(t, m.Types(), 2)

	fsys["dup.yaml"] = &fstest.MapFile{Data: []byte("classes:\n  Gene: {}\n")}
	_, err = LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class Gene already declared")
}

func TestModel_Markdown(t *testing.T) {
	m := loadDefault(t)
	md := m.Markdown()

	assert.Contains(t, md, "### Gene\n\n*Labels:* `:Gene:SequenceFeature:BioEntity`")
	assert.Contains(t, md, "  - `organism` → Organism: `(:Gene)-[:ORGANISM]->(:Organism)`")
	assert.Contains(t, md, "  - `locations` → Location: `(:Gene)-[:LOCATED_ON]->(:Chromosome)`")
	assert.Contains(t, md, "### Location (:LOCATED_ON)")
	assert.Contains(t, md, "*End:* `locatedOn` → Chromosome")
}
