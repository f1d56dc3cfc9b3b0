package cypher

import (
	"fmt"
	"strings"

	"github.com/vivekkrish/neo4j/internal/naming"
)

// Step is one edge of the match pattern.
type Step struct {
	// SourceVar is the variable of the node the edge leaves.
	SourceVar string

	// RelVar names the relationship; empty for anonymous edges.
	RelVar  string
	RelType string

	// TargetVar and TargetLabels describe the end node. An empty
	// TargetVar renders an anonymous end node.
	TargetVar    string
	TargetLabels []string

	// Optional renders the step as OPTIONAL MATCH.
	Optional bool
}

// PatternBuilder constructs MATCH and OPTIONAL MATCH clauses one edge at a time.
type PatternBuilder struct {
	clauses  []string
	optional int
}

// NewPatternBuilder creates a new builder instance.
func NewPatternBuilder() *PatternBuilder {
	return &PatternBuilder{
		clauses: make([]string, 0),
	}
}

// AddRoot adds the MATCH clause for the starting node.
//
// Example:
//
//	builder.AddRoot("n0", []string{"Gene", "BioEntity"})
//	// Generates: MATCH (n0:Gene:BioEntity)
func (b *PatternBuilder) AddRoot(varName string, labels []string) {
	b.clauses = append(b.clauses, "MATCH "+NodePattern(varName, labels))
}

// AddStep adds a clause for one edge.
//
// Example:
//
//	builder.AddStep(Step{SourceVar: "n0", RelType: "ORGANISM", TargetVar: "n1", TargetLabels: []string{"Organism"}})
//	// Generates: MATCH (n0)-[:ORGANISM]->(n1:Organism)
func (b *PatternBuilder) AddStep(s Step) {
	keyword := "MATCH"
	if s.Optional {
		keyword = "OPTIONAL MATCH"
		b.optional++
	}
	clause := fmt.Sprintf("%s (%s)-[%s:%s]->%s",
		keyword,
		s.SourceVar,
		s.RelVar,
		naming.QuoteName(s.RelType),
		NodePattern(s.TargetVar, s.TargetLabels))

	b.clauses = append(b.clauses, clause)
}

// Build returns all clauses as a single string.
func (b *PatternBuilder) Build() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return strings.Join(b.clauses, "\n")
}

// GetClauseCount returns the number of clauses added.
func (b *PatternBuilder) GetClauseCount() int {
	return len(b.clauses)
}

// HasOptional reports whether any OPTIONAL MATCH clause was added.
func (b *PatternBuilder) HasOptional() bool {
	return b.optional > 0
}

// NodePattern renders a node pattern such as (n1:Organism) or ().
func NodePattern(varName string, labels []string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(varName)
	for _, l := range labels {
		sb.WriteByte(':')
		sb.WriteString(naming.QuoteName(l))
	}
	sb.WriteByte(')')
	return sb.String()
}
