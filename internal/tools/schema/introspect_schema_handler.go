package schema

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/tools"
)

// IntrospectSchemaHandler returns a handler function for the introspect-schema tool
func IntrospectSchemaHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleIntrospectSchema(ctx, deps)
	}
}

func handleIntrospectSchema(ctx context.Context, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.DBService == nil {
		errMessage := "database service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	slog.Info("introspecting schema from the database", "request_id", tools.NewRequestID(), "database", deps.DBService.GetDatabaseName())

	s, err := metadata.Introspect(ctx, deps.DBService)
	if err != nil {
		slog.Error("failed to introspect schema", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := metadata.Build(s); err != nil {
		slog.Error("introspected schema does not build", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := metadata.Marshal(s)
	if err != nil {
		slog.Error("failed to serialize schema", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
