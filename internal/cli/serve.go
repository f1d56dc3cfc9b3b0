package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vivekkrish/neo4j/internal/database"
	"github.com/vivekkrish/neo4j/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the translator as an MCP server over stdio",
		Long: `Start an MCP server on standard input and output.

The translate-path-query, describe-schema and validate-path tools are always
available. introspect-schema is added when a Neo4j connection is configured.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := rootOpts.newTranslator(false)
			if err != nil {
				return err
			}

			cfg := rootOpts.Config
			var svc database.Service
			if cfg.HasDatabase() {
				neo, err := database.NewNeo4jService(cfg.URI, cfg.Username, cfg.Password, cfg.Database)
				if err != nil {
					return err
				}
				defer func() {
					if err := neo.Close(cmd.Context()); err != nil {
						slog.Warn("failed to close Neo4j driver", "error", err)
					}
				}()
				svc = neo
			}

			s, err := server.NewPathQueryMCPServer(Version, cfg, tr, svc)
			if err != nil {
				return err
			}
			return s.Start(cmd.Context())
		},
	}
}
