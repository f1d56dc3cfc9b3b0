package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationshipType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"organism", "ORGANISM"},
		{"chromosomeLocation", "CHROMOSOME_LOCATION"},
		{"goAnnotation", "GO_ANNOTATION"},
		{"dataSets", "DATA_SETS"},
		{"crossReferences2", "CROSS_REFERENCES2"},
		{"GOTerm", "GO_TERM"},
		{"publicationsAB", "PUBLICATIONS_AB"},
		{"ORGANISM", "ORGANISM"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RelationshipType(tt.in))
		})
	}
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "organism", FieldName("ORGANISM"))
	assert.Equal(t, "chromosomeLocation", FieldName("CHROMOSOME_LOCATION"))
	assert.Equal(t, "dataSets", FieldName("DATA_SETS"))
	assert.Equal(t, "actedIn", FieldName("ACTED_IN"))
	assert.Equal(t, "x", FieldName("_X"))

	for _, field := range []string{"organism", "chromosomeLocation", "dataSets"} {
		assert.Equal(t, field, FieldName(RelationshipType(field)), "round trip %s", field)
	}
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("Gene"))
	assert.True(t, IsIdentifier("crossReferences2"))
	assert.True(t, IsIdentifier("_internal"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("2fast"))
	assert.False(t, IsIdentifier("gene name"))
	assert.False(t, IsIdentifier("a-b"))
}

func TestQuoteName(t *testing.T) {
	assert.Equal(t, "DataSet", QuoteName("DataSet"))
	assert.Equal(t, "`Data Set`", QuoteName("Data Set"))
	assert.Equal(t, "`a``b`", QuoteName("a`b"))
	assert.Equal(t, "``", QuoteName(""))
}
