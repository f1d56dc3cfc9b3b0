package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/vivekkrish/neo4j/internal/config"
	"github.com/vivekkrish/neo4j/internal/database"
	"github.com/vivekkrish/neo4j/internal/translate"
)

const serverName = "pathquery-cypher"

// PathQueryMCPServer exposes the translator, and the database-backed
// tools when a connection is configured, over MCP.
type PathQueryMCPServer struct {
	MCPServer  *server.MCPServer
	config     *config.Config
	translator *translate.Translator
	dbService  database.Service
}

// NewPathQueryMCPServer creates the server and registers its tools.
// dbService may be nil.
func NewPathQueryMCPServer(version string, cfg *config.Config, translator *translate.Translator, dbService database.Service) (*PathQueryMCPServer, error) {
	s := &PathQueryMCPServer{
		MCPServer: server.NewMCPServer(
			serverName,
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		config:     cfg,
		translator: translator,
		dbService:  dbService,
	}
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return s, nil
}

// Start verifies the database connection, if any, and serves MCP over
// stdio until the client disconnects.
func (s *PathQueryMCPServer) Start(ctx context.Context) error {
	if s.dbService != nil {
		if err := s.dbService.VerifyConnectivity(ctx); err != nil {
			return err
		}
		slog.Info("connected to Neo4j", "database", s.dbService.GetDatabaseName())
	}
	slog.Info("starting MCP server", "name", serverName, "transport", "stdio", "schema", s.config.SchemaFile, "max_rows", s.config.MaxRows)
	return server.ServeStdio(s.MCPServer)
}
