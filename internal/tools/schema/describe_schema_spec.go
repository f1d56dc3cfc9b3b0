package schema

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func DescribeSchemaSpec() mcp.Tool {
	return mcp.NewTool("describe-schema",
		mcp.WithDescription(`
		Describe the data model path queries are translated against.

		Returns markdown listing:
		- Classes with their labels, attributes and references
		- Relationship classes with their attributes and end class
		- The Cypher pattern each reference and relationship translates to

		Use this before writing a path query to find valid path segments.`),
		mcp.WithTitleAnnotation("Describe Path Query Model"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}
