// Package database wraps the Neo4j driver behind the read-only Service the
// rest of the module depends on.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/vivekkrish/neo4j/internal/database Service

// Service runs read-only Cypher against one database.
type Service interface {
	VerifyConnectivity(ctx context.Context) error
	ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	GetDatabaseName() string
	Close(ctx context.Context) error
}

// Neo4jService is the driver-backed Service.
type Neo4jService struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jService creates a driver for uri with basic auth. It does not
// connect; call VerifyConnectivity for that.
func NewNeo4jService(uri, username, password, database string) (*Neo4jService, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create Neo4j driver: %w", err)
	}
	return &Neo4jService{driver: driver, database: database}, nil
}

func (s *Neo4jService) VerifyConnectivity(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to verify connectivity to Neo4j: %w", err)
	}
	return nil
}

// ExecuteReadQuery runs cypher on a reader and buffers every record.
func (s *Neo4jService) ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		s.driver,
		cypher,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		slog.Error("read query failed", "database", s.database, "error", err)
		return nil, fmt.Errorf("failed to execute read query: %w", err)
	}
	return result.Records, nil
}

func (s *Neo4jService) GetDatabaseName() string {
	return s.database
}

func (s *Neo4jService) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
