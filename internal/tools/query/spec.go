package query

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vivekkrish/neo4j/docs"
)

// TranslatePathQueryInput defines the input parameters for translate-path-query
type TranslatePathQueryInput struct {
	Query  string `json:"query" jsonschema:"description=The path query in XML or JSON"`
	Format string `json:"format,omitempty" jsonschema:"enum=xml,enum=json,description=Format of the query. Detected from the first character when omitted"`
	Strict bool   `json:"strict,omitempty" jsonschema:"default=false,description=Fail instead of emitting placeholders for unsupported operators"`
}

// TranslatePathQuerySpec returns the MCP tool specification for translate-path-query
func TranslatePathQuerySpec() mcp.Tool {
	return mcp.NewTool("translate-path-query",
		mcp.WithDescription(docs.PathQueryGuide),
		mcp.WithInputSchema[TranslatePathQueryInput](),
		mcp.WithTitleAnnotation("Translate Path Query"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}
