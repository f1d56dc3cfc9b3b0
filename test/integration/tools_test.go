//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/tools"
	"github.com/vivekkrish/neo4j/internal/tools/schema"
)

func TestIntrospectSchemaTool(t *testing.T) {
	t.Parallel()

	deps := &tools.ToolDependencies{DBService: dbs.Service}
	result, err := schema.IntrospectSchemaHandler(deps)(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	m, err := metadata.Parse([]byte(text.Text))
	require.NoError(t, err)

	_, ok = m.Type("Protein")
	assert.True(t, ok)
}
