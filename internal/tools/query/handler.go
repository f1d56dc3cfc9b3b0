package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vivekkrish/neo4j/internal/pathquery"
	"github.com/vivekkrish/neo4j/internal/tools"
	"github.com/vivekkrish/neo4j/internal/translate"
)

// TranslatePathQueryHandler returns the handler for translate-path-query
func TranslatePathQueryHandler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleTranslatePathQuery(ctx, request, deps)
	}
}

func handleTranslatePathQuery(_ context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.Translator == nil {
		errMessage := "translator is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	var args TranslatePathQueryInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(args.Query) == "" {
		errMessage := "query parameter is required"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	var format pathquery.Format
	if args.Format != "" {
		f, err := pathquery.ParseFormat(args.Format)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = f
	}

	requestID := tools.NewRequestID()
	log := slog.With("request_id", requestID, "tool", "translate-path-query")

	q, err := pathquery.Decode([]byte(args.Query), format)
	if err != nil {
		log.Info("rejected path query", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	tr := deps.Translator
	if args.Strict {
		tr = tr.WithStrict()
	}
	res, err := tr.Translate(q)
	if err != nil {
		log.Info("path query did not translate", "root", q.Root(), "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Info("translated path query", "root", q.Root(), "views", len(q.Views), "constraints", len(q.Constraints))
	return mcp.NewToolResultText(formatResult(res)), nil
}

// formatResult appends one warning line per placeholder constraint.
func formatResult(res *translate.Result) string {
	if len(res.Unsupported) == 0 {
		return res.Query
	}
	var b strings.Builder
	b.WriteString(res.Query)
	b.WriteString("\n\n")
	for _, f := range res.Unsupported {
		fmt.Fprintf(&b, "// WARNING: constraint %s on %s uses unsupported operator %s\n", f.Code, f.Path, f.Operator.Name)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
