package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vivekkrish/neo4j/internal/config"
	database_mocks "github.com/vivekkrish/neo4j/internal/database/mocks"
	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/tools"
	"github.com/vivekkrish/neo4j/internal/translate"
)

func newTranslator(t *testing.T) *translate.Translator {
	t.Helper()
	m, err := metadata.Load("")
	require.NoError(t, err)
	return translate.New(m, translate.Options{})
}

func toolNames(s *PathQueryMCPServer) []string {
	var names []string
	for _, tool := range s.getEnabledTools() {
		names = append(names, tool.Tool.Name)
	}
	return names
}

func TestEnabledTools_WithoutDatabase(t *testing.T) {
	s := &PathQueryMCPServer{
		config:     config.Default(),
		translator: newTranslator(t),
	}

	assert.ElementsMatch(t, []string{"translate-path-query", "describe-schema", "validate-path"}, toolNames(s))
}

func TestEnabledTools_WithDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := &PathQueryMCPServer{
		config:     config.Default(),
		translator: newTranslator(t),
		dbService:  database_mocks.NewMockService(ctrl),
	}

	assert.ElementsMatch(t, []string{"translate-path-query", "describe-schema", "validate-path", "introspect-schema"}, toolNames(s))
}

func TestToolsHaveCorrectStructure(t *testing.T) {
	s := &PathQueryMCPServer{config: config.Default(), translator: newTranslator(t)}
	deps := &tools.ToolDependencies{Translator: s.translator}

	for _, toolDef := range s.getAllToolsDefs(deps) {
		tool := toolDef.definition.Tool
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Description, "tool should have a description")
			assert.NotNil(t, toolDef.definition.Handler, "tool should have a handler")
			assert.True(t, toolDef.readonly)
			require.NotNil(t, tool.Annotations.ReadOnlyHint)
			assert.True(t, *tool.Annotations.ReadOnlyHint)
			require.NotNil(t, tool.Annotations.DestructiveHint)
			assert.False(t, *tool.Annotations.DestructiveHint)
		})
	}
}

func TestNewPathQueryMCPServer(t *testing.T) {
	s, err := NewPathQueryMCPServer("test", config.Default(), newTranslator(t), nil)
	require.NoError(t, err)
	require.NotNil(t, s.MCPServer)
	assert.Nil(t, s.dbService)
}
