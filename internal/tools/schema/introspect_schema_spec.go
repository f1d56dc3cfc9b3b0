package schema

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func IntrospectSchemaSpec() mcp.Tool {
	return mcp.NewTool("introspect-schema",
		mcp.WithDescription(`
		Derive a path query data model from the connected Neo4j database.

		Reads the native schema procedures and returns the model as YAML:
		- Every node label becomes a class with its property keys
		- Every relationship type becomes a reference named in lowerCamel case
		- Relationship types carrying properties become relationship classes

		Save the output as a schema file to translate queries against this graph.
		If the database contains no data, no model is returned.`),
		mcp.WithTitleAnnotation("Introspect Neo4j Schema"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
