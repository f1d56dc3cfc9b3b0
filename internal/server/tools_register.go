package server

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/vivekkrish/neo4j/internal/tools"
	"github.com/vivekkrish/neo4j/internal/tools/query"
	"github.com/vivekkrish/neo4j/internal/tools/schema"
)

// registerTools registers all enabled MCP tools and adds them to the provided MCP server.
// Tools that read from Neo4j are left out when no database service is configured.
func (s *PathQueryMCPServer) registerTools() error {
	filteredTools := s.getEnabledTools()
	s.MCPServer.AddTools(filteredTools...)
	return nil
}

type toolFilter func(tools []ToolDefinition) []ToolDefinition

type toolCategory int

const (
	translateCategory toolCategory = 0
	schemaCategory    toolCategory = 1
	databaseCategory  toolCategory = 2 // Needs a Neo4j connection
)

type ToolDefinition struct {
	category   toolCategory
	definition server.ServerTool
	readonly   bool
}

func (s *PathQueryMCPServer) getEnabledTools() []server.ServerTool {
	filters := []toolFilter{filterWriteTools}

	if s.dbService == nil {
		filters = append(filters, filterDatabaseTools)
	}
	deps := &tools.ToolDependencies{
		Translator: s.translator,
		DBService:  s.dbService,
	}
	toolDefs := s.getAllToolsDefs(deps)

	for _, filter := range filters {
		toolDefs = filter(toolDefs)
	}
	enabledTools := make([]server.ServerTool, 0, len(toolDefs))
	for _, toolDef := range toolDefs {
		enabledTools = append(enabledTools, toolDef.definition)
	}
	return enabledTools
}

// filterWriteTools keeps only read-only tools; the server never writes to the graph.
func filterWriteTools(tools []ToolDefinition) []ToolDefinition {
	readOnlyTools := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		if t.readonly {
			readOnlyTools = append(readOnlyTools, t)
		}
	}
	return readOnlyTools
}

func filterDatabaseTools(tools []ToolDefinition) []ToolDefinition {
	offlineTools := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		if t.category != databaseCategory {
			offlineTools = append(offlineTools, t)
		}
	}
	return offlineTools
}

// getAllToolsDefs returns all available tools with their specs and handlers
func (s *PathQueryMCPServer) getAllToolsDefs(deps *tools.ToolDependencies) []ToolDefinition {
	return []ToolDefinition{
		{
			category: translateCategory,
			definition: server.ServerTool{
				Tool:    query.TranslatePathQuerySpec(),
				Handler: query.TranslatePathQueryHandler(deps),
			},
			readonly: true,
		},
		{
			category: schemaCategory,
			definition: server.ServerTool{
				Tool:    schema.DescribeSchemaSpec(),
				Handler: schema.DescribeSchemaHandler(deps),
			},
			readonly: true,
		},
		{
			category: schemaCategory,
			definition: server.ServerTool{
				Tool:    schema.ValidatePathSpec(),
				Handler: schema.ValidatePathHandler(deps),
			},
			readonly: true,
		},
		{
			category: databaseCategory,
			definition: server.ServerTool{
				Tool:    schema.IntrospectSchemaSpec(),
				Handler: schema.IntrospectSchemaHandler(deps),
			},
			readonly: true,
		},
	}
}
