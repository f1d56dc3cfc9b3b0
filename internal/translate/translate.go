// Package translate turns a decoded path query into Cypher text by running
// the path tree builder, the constraint translator and the query assembler
// in sequence.
package translate

import (
	"fmt"
	"log/slog"

	"github.com/vivekkrish/neo4j/internal/constraint"
	"github.com/vivekkrish/neo4j/internal/cypher"
	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/pathquery"
	"github.com/vivekkrish/neo4j/internal/pathtree"
	"github.com/vivekkrish/neo4j/internal/qerr"
)

// Options configures a Translator.
type Options struct {
	ExtraValueLabel        string
	ExtraValuePropertyName string

	// MaxRows adds a LIMIT clause when positive.
	MaxRows int

	// Strict turns operators without a template into errors instead of
	// placeholder fragments.
	Strict bool
}

// Result is a translated query.
type Result struct {
	Query string

	// Unsupported lists the constraints rendered as placeholders. The
	// query text is not executable while it is non-empty.
	Unsupported []constraint.Fragment
}

// Translator is safe for concurrent use; the model is read-only.
type Translator struct {
	model *metadata.Model
	opts  Options
}

func New(model *metadata.Model, opts Options) *Translator {
	return &Translator{model: model, opts: opts}
}

// WithStrict returns a copy of t that rejects unsupported operators.
func (t *Translator) WithStrict() *Translator {
	opts := t.opts
	opts.Strict = true
	return &Translator{model: t.model, opts: opts}
}

// Model returns the metadata model queries are translated against.
func (t *Translator) Model() *metadata.Model {
	return t.model
}

// Translate renders q as Cypher.
func (t *Translator) Translate(q *pathquery.Query) (*Result, error) {
	if q == nil || len(q.Views) == 0 {
		return nil, qerr.New(qerr.CodeInvalidQuery, "", "query has no view")
	}

	tree, err := pathtree.Build(q.Paths(), t.model)
	if err != nil {
		return nil, err
	}

	copts := constraint.Options{
		ExtraValueLabel:        t.opts.ExtraValueLabel,
		ExtraValuePropertyName: t.opts.ExtraValuePropertyName,
	}
	res := &Result{}
	fragments := make([]constraint.Fragment, 0, len(q.Constraints))
	for _, c := range q.Constraints {
		spec := constraint.Spec{
			Path:       c.Path,
			Value:      c.Value,
			ExtraValue: c.ExtraValue,
			Code:       c.Code,
			Type:       c.Type,
		}
		if !c.IsSubclass() {
			spec.Operator = constraint.ParseOperator(c.Op)
		}
		f, err := constraint.Translate(spec, tree, copts)
		if err != nil {
			if c.IsSubclass() {
				return nil, fmt.Errorf("type constraint on %s: %w", c.Path, err)
			}
			return nil, fmt.Errorf("constraint %s: %w", c.Code, err)
		}
		if f.Unsupported {
			if t.opts.Strict {
				return nil, qerr.New(qerr.CodeUnsupportedOperator, c.Path, "operator %s is not supported", f.Operator.Name).WithValue(c.Op)
			}
			res.Unsupported = append(res.Unsupported, f)
		}
		fragments = append(fragments, f)
	}

	sortKeys := make([]cypher.SortKey, 0, len(q.SortOrder))
	for _, s := range q.SortOrder {
		sortKeys = append(sortKeys, cypher.SortKey{Path: s.Path, Descending: s.Descending})
	}

	text, err := cypher.Assemble(tree, fragments, q.Logic, q.Views, cypher.Options{
		OuterJoins: q.OuterJoins(),
		SortOrder:  sortKeys,
		Limit:      t.opts.MaxRows,
	})
	if err != nil {
		return nil, err
	}
	res.Query = text

	if len(res.Unsupported) > 0 {
		slog.Warn("query contains unsupported operators", "root", q.Root(), "count", len(res.Unsupported))
	}
	slog.Debug("translated path query", "root", q.Root(), "views", len(q.Views), "constraints", len(fragments))
	return res, nil
}
