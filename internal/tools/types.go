package tools

import (
	"github.com/google/uuid"
	"github.com/vivekkrish/neo4j/internal/database"
	"github.com/vivekkrish/neo4j/internal/translate"
)

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	Translator *translate.Translator

	// DBService is nil when no Neo4j connection is configured; the
	// database-backed tools are not registered then.
	DBService database.Service
}

// NewRequestID returns the id a handler tags its log lines with.
func NewRequestID() string {
	return uuid.NewString()
}
