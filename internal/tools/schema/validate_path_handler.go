package schema

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/pathtree"
	"github.com/vivekkrish/neo4j/internal/tools"
)

// Segment is one classified step of a validated path.
type Segment struct {
	Segment        string `json:"segment"`
	Classification string `json:"classification"`
	Target         string `json:"target"`
	Type           string `json:"type,omitempty"`
	Variable       string `json:"variable,omitempty"`
}

// ValidatePathHandler returns a handler function for the validate-path tool
func ValidatePathHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleValidatePath(ctx, request, deps)
	}
}

func handleValidatePath(_ context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.Translator == nil {
		errMessage := "translator is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	var args ValidatePathInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.Path == "" {
		errMessage := "path parameter is required"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	segments, err := classifyPath(args.Path, deps.Translator.Model())
	if err != nil {
		slog.Info("path rejected", "path", args.Path, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		slog.Error("failed to serialize segments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func classifyPath(path string, model *metadata.Model) ([]Segment, error) {
	root, _, _ := strings.Cut(path, ".")
	tree, err := pathtree.New(root, model)
	if err != nil {
		return nil, err
	}
	id, err := tree.Add(path)
	if err != nil {
		return nil, err
	}

	var segments []Segment
	for n := tree.Node(id); n != nil; n = tree.Parent(n.ID) {
		segments = append(segments, Segment{
			Segment:        n.SourceName,
			Classification: n.Classification.String(),
			Target:         n.TargetName,
			Type:           n.TypeName,
			Variable:       n.Variable,
		})
	}
	slices.Reverse(segments)
	return segments, nil
}
