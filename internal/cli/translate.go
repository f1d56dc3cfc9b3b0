package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vivekkrish/neo4j/internal/pathquery"
	"github.com/vivekkrish/neo4j/internal/translate"
)

// querySeparator sits between the queries of a multi-file run.
const querySeparator = ";\n\n"

type translateOptions struct {
	format string
	strict bool
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate [query-file...]",
		Short: "Translate path query files into Cypher",
		Long: `Translate one or more path query files (XML or JSON) into Cypher.

Reads standard input when no file is given. The format is taken from the
file extension, then from --format, then sniffed from the content. Queries
are printed in argument order, separated by a semicolon and a blank line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "query format (xml|json) for files without a known extension")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on operators without a translation")

	return cmd
}

func runTranslate(rootOpts *RootOptions, opts *translateOptions, files []string, cmd *cobra.Command) error {
	var fallback pathquery.Format
	if opts.format != "" {
		f, err := pathquery.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		fallback = f
	}

	tr, err := rootOpts.newTranslator(opts.strict)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}
		res, err := translateData(tr, data, fallback)
		if err != nil {
			return err
		}
		warnUnsupported(cmd.ErrOrStderr(), "stdin", res)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Query)
		return err
	}

	results := make([]*translate.Result, len(files))
	g := new(errgroup.Group)
	for i, file := range files {
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			res, err := translateData(tr, data, formatFor(file, fallback))
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	queries := make([]string, len(results))
	for i, res := range results {
		warnUnsupported(cmd.ErrOrStderr(), files[i], res)
		queries[i] = res.Query
	}
	slog.Debug("translated query files", "count", len(files))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(queries, querySeparator))
	return err
}

func translateData(tr *translate.Translator, data []byte, format pathquery.Format) (*translate.Result, error) {
	q, err := pathquery.Decode(data, format)
	if err != nil {
		return nil, err
	}
	return tr.Translate(q)
}

// formatFor picks the decoder from the file extension, falling back to
// the --format flag and then to sniffing.
func formatFor(file string, fallback pathquery.Format) pathquery.Format {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xml":
		return pathquery.FormatXML
	case ".json":
		return pathquery.FormatJSON
	}
	return fallback
}

func warnUnsupported(w io.Writer, source string, res *translate.Result) {
	for _, f := range res.Unsupported {
		fmt.Fprintf(w, "warning: %s: constraint %s on %s uses unsupported operator %s\n", source, f.Code, f.Path, f.Operator.Name)
	}
}
