// Package cypher assembles the final Cypher text from a path tree, the
// rendered constraint fragments and the requested projection.
package cypher

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/vivekkrish/neo4j/internal/constraint"
	"github.com/vivekkrish/neo4j/internal/logic"
	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/naming"
	"github.com/vivekkrish/neo4j/internal/pathtree"
	"github.com/vivekkrish/neo4j/internal/qerr"
)

// SortKey orders results by one attribute path.
type SortKey struct {
	Path       string
	Descending bool
}

// Options carries the optional parts of a query.
type Options struct {
	// OuterJoins lists paths whose subtrees are matched optionally.
	OuterJoins []string

	SortOrder []SortKey

	// Limit caps the number of rows; zero means no limit.
	Limit int
}

// Assemble renders the query. Only tree nodes referenced by the
// projection, a constraint or a sort key, and their ancestors, take part
// in the match pattern. A path tested with IS NULL is matched optionally
// like an outer join.
func Assemble(tree *pathtree.Tree, fragments []constraint.Fragment, logicExpr string, projection []string, opts Options) (string, error) {
	if len(projection) == 0 {
		return "", qerr.New(qerr.CodeInvalidQuery, "", "no output paths requested")
	}

	kept := make([]bool, tree.Len())
	keep := func(path string) (pathtree.NodeID, error) {
		id, err := tree.Lookup(path)
		if err != nil {
			return 0, err
		}
		for n := tree.Node(id); n != nil && !kept[n.ID]; n = tree.Parent(n.ID) {
			kept[n.ID] = true
		}
		return id, nil
	}

	returns := make([]string, 0, len(projection))
	seen := make(map[string]bool, len(projection))
	for _, p := range projection {
		id, err := keep(p)
		if err != nil {
			return "", err
		}
		expr := reference(tree, id)
		if seen[expr] {
			continue
		}
		seen[expr] = true
		returns = append(returns, expr)
	}

	joins := slices.Clone(opts.OuterJoins)
	for _, f := range fragments {
		id, err := keep(f.Path)
		if err != nil {
			return "", err
		}
		// A null test on an entity or relationship can only hold when
		// the step to it is optional.
		if f.Operator.Family == constraint.Null && tree.Node(id).Classification != metadata.Property {
			joins = append(joins, f.Path)
		}
	}

	orderBy := make([]string, 0, len(opts.SortOrder))
	for _, s := range opts.SortOrder {
		id, err := keep(s.Path)
		if err != nil {
			return "", err
		}
		if tree.Node(id).Classification != metadata.Property {
			return "", qerr.New(qerr.CodeInvalidPath, s.Path, "sort order needs an attribute path")
		}
		dir := "ASC"
		if s.Descending {
			dir = "DESC"
		}
		orderBy = append(orderBy, reference(tree, id)+" "+dir)
	}

	pattern := buildPattern(tree, kept, outerJoins(tree, joins))

	where, err := buildWhere(fragments, logicExpr)
	if err != nil {
		return "", err
	}

	clauses := []string{pattern.Build()}
	if where != "" {
		if pattern.HasOptional() {
			clauses = append(clauses, "WITH *")
		}
		clauses = append(clauses, "WHERE "+where)
	}
	clauses = append(clauses, "RETURN "+strings.Join(returns, ", "))
	if len(orderBy) > 0 {
		clauses = append(clauses, "ORDER BY "+strings.Join(orderBy, ", "))
	}
	if opts.Limit > 0 {
		clauses = append(clauses, "LIMIT "+strconv.Itoa(opts.Limit))
	}

	slog.Debug("assembled query", "match_clauses", pattern.GetClauseCount(), "constraints", len(fragments), "columns", len(returns))
	return strings.Join(clauses, "\n"), nil
}

// outerJoins marks every node at or below an outer-joined path.
func outerJoins(tree *pathtree.Tree, paths []string) []bool {
	optional := make([]bool, tree.Len())
	joined := make(map[pathtree.NodeID]bool, len(paths))
	for _, p := range paths {
		id, err := tree.Lookup(p)
		if err != nil {
			slog.Debug("ignoring outer join on unused path", "path", p)
			continue
		}
		joined[id] = true
	}
	tree.Walk(func(n *pathtree.Node) bool {
		if n.Parent != pathtree.NoParent {
			optional[n.ID] = optional[n.Parent] || joined[n.ID]
		}
		return true
	})
	return optional
}

// buildPattern emits required steps first, then optional ones, each in
// tree order. A relationship and its end entity share one step.
func buildPattern(tree *pathtree.Tree, kept, optional []bool) *PatternBuilder {
	b := NewPatternBuilder()
	root := tree.Root()
	b.AddRoot(root.Variable, tree.Labels(root.ID))

	for _, wantOptional := range []bool{false, true} {
		tree.Walk(func(n *pathtree.Node) bool {
			if !kept[n.ID] {
				return false
			}
			if n.Parent == pathtree.NoParent || optional[n.ID] != wantOptional {
				return true
			}
			parent := tree.Node(n.Parent)
			switch {
			case n.Classification == metadata.Relationship:
				step := Step{SourceVar: parent.Variable, RelVar: n.Variable, RelType: n.TargetName, Optional: wantOptional}
				if end, ok := relationshipEnd(tree, n); ok && kept[end.ID] {
					step.TargetVar = end.Variable
					step.TargetLabels = tree.Labels(end.ID)
				}
				b.AddStep(step)
			case n.Classification == metadata.Entity && parent.Classification == metadata.Entity:
				b.AddStep(Step{
					SourceVar:    parent.Variable,
					RelType:      n.TargetName,
					TargetVar:    n.Variable,
					TargetLabels: tree.Labels(n.ID),
					Optional:     wantOptional,
				})
			}
			return true
		})
	}
	return b
}

func relationshipEnd(tree *pathtree.Tree, rel *pathtree.Node) (*pathtree.Node, bool) {
	for _, c := range tree.Children(rel.ID) {
		if n := tree.Node(c); n.Classification == metadata.Entity {
			return n, true
		}
	}
	return nil, false
}

func buildWhere(fragments []constraint.Fragment, logicExpr string) (string, error) {
	if len(fragments) == 0 {
		return "", nil
	}

	texts := make(map[string]string, len(fragments))
	codes := make([]string, 0, len(fragments))
	for i, f := range fragments {
		key := f.Code
		if key == "" {
			// Uncoded fragments are subclass constraints. The key cannot
			// be lexed, so the logic never mentions it and it is AND-ed.
			key = "#" + strconv.Itoa(i)
		} else if _, dup := texts[key]; dup {
			return "", qerr.New(qerr.CodeInvalidLogic, f.Path, "constraint code %s used twice", f.Code).WithValue(f.Code)
		}
		texts[key] = f.Text
		codes = append(codes, key)
	}

	expr, err := logic.Parse(logicExpr)
	if err != nil {
		return "", err
	}
	if expr != nil && len(logic.Codes(expr)) < len(codes) {
		slog.Debug("and-ing constraints missing from logic", "logic", logicExpr, "codes", codes)
	}

	where, err := logic.Render(logic.Complete(expr, codes), texts)
	if err != nil {
		return "", fmt.Errorf("rendering constraint logic: %w", err)
	}
	return where, nil
}

func reference(tree *pathtree.Tree, id pathtree.NodeID) string {
	n := tree.Node(id)
	if n.Classification != metadata.Property {
		return n.Variable
	}
	return tree.Parent(id).Variable + "." + naming.QuoteName(n.TargetName)
}
