package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vivekkrish/neo4j/internal/config"
	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/translate"
)

// Version is set at build time.
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	SchemaFile string
	LogLevel   string

	// Config is loaded before any subcommand runs.
	Config *config.Config
}

// NewRootCommand creates the root command for the pathquery-cypher CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "pathquery-cypher",
		Short:         "Translate path queries into Cypher",
		Long:          "Translates path queries written against a class model into Cypher for a Neo4j graph, and serves the translator over MCP.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the error
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.SchemaFile, "schema", "", "model file or directory (default: built-in genomic model)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// load reads the config, applies flag overrides and installs the logger.
// Logs go to stderr; stdout carries query text and the MCP transport.
func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}
	if o.SchemaFile != "" {
		cfg.SchemaFile = o.SchemaFile
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	o.Config = cfg
	return nil
}

// newTranslator loads the configured model.
func (o *RootOptions) newTranslator(strict bool) (*translate.Translator, error) {
	if o.Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	model, err := metadata.Load(o.Config.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	slog.Debug("loaded metadata model", "types", len(model.Types()), "relationships", len(model.Relationships()))

	return translate.New(model, translate.Options{
		ExtraValueLabel:        o.Config.ExtraValueLabel,
		ExtraValuePropertyName: o.Config.ExtraValueProperty,
		MaxRows:                o.Config.MaxRows,
		Strict:                 strict,
	}), nil
}
