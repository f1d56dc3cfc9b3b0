package schema

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ValidatePathInput defines the input parameters for the validate-path tool
type ValidatePathInput struct {
	Path string `json:"path" jsonschema:"description=Dotted path starting at a class, e.g. Gene.organism.name"`
}

func ValidatePathSpec() mcp.Tool {
	return mcp.NewTool("validate-path",
		mcp.WithDescription("Classify every segment of a path against the data model. Returns a JSON array with one entry per segment giving its classification (ENTITY, RELATIONSHIP or PROPERTY), the graph name it maps to and the Cypher variable it would be bound to. Fails with the reason when the path is invalid."),
		mcp.WithInputSchema[ValidatePathInput](),
		mcp.WithTitleAnnotation("Validate Path"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}
