//go:build integration

package helpers

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vivekkrish/neo4j/internal/database"
)

const (
	neo4jImage    = "neo4j:5"
	neo4jPassword = "integration-test"
)

// Neo4jContainer is a throwaway Neo4j server with a driver for seeding and
// the read-only Service the code under test uses.
type Neo4jContainer struct {
	container testcontainers.Container
	driver    neo4j.DriverWithContext
	Service   *database.Neo4jService
	URI       string
}

// StartNeo4j starts a Neo4j container and waits until it accepts Bolt
// connections.
func StartNeo4j(ctx context.Context) (*Neo4jContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        neo4jImage,
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/" + neo4jPassword,
		},
		WaitingFor: wait.ForLog("Started."),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start neo4j container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := c.MappedPort(ctx, "7687/tcp")
	if err != nil {
		return nil, err
	}
	uri := fmt.Sprintf("bolt://%s:%s", host, port.Port())

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth("neo4j", neo4jPassword, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, err
	}

	svc, err := database.NewNeo4jService(uri, "neo4j", neo4jPassword, "neo4j")
	if err != nil {
		return nil, err
	}

	return &Neo4jContainer{container: c, driver: driver, Service: svc, URI: uri}, nil
}

// Write runs a write statement; only fixtures use it.
func (n *Neo4jContainer) Write(ctx context.Context, cypher string, params map[string]any) error {
	_, err := neo4j.ExecuteQuery(ctx, n.driver, cypher, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase("neo4j"))
	return err
}

func (n *Neo4jContainer) Terminate(ctx context.Context) error {
	_ = n.Service.Close(ctx)
	_ = n.driver.Close(ctx)
	return n.container.Terminate(ctx)
}
