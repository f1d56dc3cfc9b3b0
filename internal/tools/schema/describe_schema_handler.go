package schema

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vivekkrish/neo4j/internal/tools"
)

// DescribeSchemaHandler returns a handler function for the describe-schema tool
func DescribeSchemaHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if deps.Translator == nil {
			errMessage := "translator is not initialized"
			slog.Error(errMessage)
			return mcp.NewToolResultError(errMessage), nil
		}
		model := deps.Translator.Model()
		slog.Info("describing metadata model", "request_id", tools.NewRequestID(), "classes", len(model.Types()), "relationships", len(model.Relationships()))
		return mcp.NewToolResultText(model.Markdown()), nil
	}
}
