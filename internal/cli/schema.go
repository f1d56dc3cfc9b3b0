package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vivekkrish/neo4j/internal/database"
	"github.com/vivekkrish/neo4j/internal/metadata"
)

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect or derive the data model",
	}

	cmd.AddCommand(newSchemaDescribeCommand(rootOpts))
	cmd.AddCommand(newSchemaIntrospectCommand(rootOpts))

	return cmd
}

func newSchemaDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "describe",
		Short:         "Print the configured model as markdown",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := rootOpts.newTranslator(false)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), tr.Model().Markdown())
			return err
		},
	}
}

func newSchemaIntrospectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "introspect",
		Short: "Derive a model from a Neo4j database and print it as YAML",
		Long: `Connect to the configured Neo4j database, read its native schema
procedures and print a model file usable with --schema.

Connection settings come from the config file or NEO4J_URI, NEO4J_USERNAME,
NEO4J_PASSWORD and NEO4J_DATABASE.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config
			if cfg == nil || !cfg.HasDatabase() {
				return fmt.Errorf("no Neo4j connection configured: set NEO4J_URI or uri in the config file")
			}

			svc, err := database.NewNeo4jService(cfg.URI, cfg.Username, cfg.Password, cfg.Database)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer func() {
				if err := svc.Close(ctx); err != nil {
					slog.Warn("failed to close Neo4j driver", "error", err)
				}
			}()
			if err := svc.VerifyConnectivity(ctx); err != nil {
				return err
			}

			return introspect(cmd, svc)
		},
	}
}

func introspect(cmd *cobra.Command, q metadata.Querier) error {
	s, err := metadata.Introspect(cmd.Context(), q)
	if err != nil {
		return err
	}
	if _, err := metadata.Build(s); err != nil {
		return fmt.Errorf("introspected model is invalid: %w", err)
	}
	out, err := metadata.Marshal(s)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
