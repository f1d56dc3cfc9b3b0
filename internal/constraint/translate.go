// Package constraint renders path query constraints as Cypher boolean
// fragments.
package constraint

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/naming"
	"github.com/vivekkrish/neo4j/internal/pathtree"
	"github.com/vivekkrish/neo4j/internal/qerr"
)

// Spec is one constraint of a path query.
type Spec struct {
	Path     string
	Operator Operator
	Value    string

	// ExtraValue narrows a LOOKUP. Nil and "" both mean absent.
	ExtraValue *string

	// Code links the constraint into the logic expression.
	Code string

	// Type narrows an entity path to a subclass. Operator and Value are
	// ignored when it is set.
	Type string
}

// Options carries configuration the templates depend on.
type Options struct {
	// ExtraValueLabel and ExtraValuePropertyName locate the node a LOOKUP
	// extra value is matched against, e.g. Organism and shortName.
	ExtraValueLabel        string
	ExtraValuePropertyName string
}

// Fragment is the rendered text of one constraint.
type Fragment struct {
	Code     string
	Path     string
	Text     string
	Operator Operator

	// Unsupported marks a placeholder emitted for an operator without a
	// template. The caller decides whether to proceed.
	Unsupported bool
}

// Translate renders spec against the nodes of tree. It is a pure function
// of its inputs.
func Translate(spec Spec, tree *pathtree.Tree, opts Options) (Fragment, error) {
	id, err := tree.Lookup(spec.Path)
	if err != nil {
		return Fragment{}, err
	}
	node := tree.Node(id)
	frag := Fragment{Code: spec.Code, Path: spec.Path, Operator: spec.Operator}

	if spec.Type != "" {
		text, err := subclass(spec, tree, node)
		if err != nil {
			return Fragment{}, err
		}
		frag.Operator = Operator{Family: Subclass, Name: "TYPE"}
		frag.Text = text
		return frag, nil
	}

	op := spec.Operator
	switch op.Family {
	case Null:
		frag.Text = reference(tree, node) + " IS NULL"
	case NotNull:
		frag.Text = reference(tree, node) + " IS NOT NULL"
	case Lookup:
		text, err := lookup(spec, node, opts)
		if err != nil {
			return Fragment{}, err
		}
		frag.Text = text
	case Unsupported:
		slog.Debug("no template for operator", "operator", op.Name, "path", spec.Path, "code", spec.Code)
		frag.Text = fmt.Sprintf("<UNSUPPORTED OPERATOR %s>", op.Name)
		frag.Unsupported = true
	default:
		if node.Classification != metadata.Property {
			return Fragment{}, qerr.New(qerr.CodeInvalidPath, spec.Path, "operator %s needs an attribute path, got a %s", op.Name, node.Classification)
		}
		text, err := compare(spec, reference(tree, node))
		if err != nil {
			return Fragment{}, err
		}
		frag.Text = text
	}

	return frag, nil
}

func compare(spec Spec, ref string) (string, error) {
	op := spec.Operator
	switch op.Family {
	case Equality:
		return fmt.Sprintf("%s = %s", ref, Literal(spec.Value)), nil
	case Inequality:
		return fmt.Sprintf("NOT (%s = %s)", ref, Literal(spec.Value)), nil
	case Ordering:
		if !IsNumeric(spec.Value) {
			return "", qerr.New(qerr.CodeLiteralFormat, spec.Path, "operator %s needs a numeric value", op.Name).WithValue(spec.Value)
		}
		return fmt.Sprintf("%s %s %s", ref, op.Symbol, Literal(spec.Value)), nil
	case Contains:
		return fmt.Sprintf("%s CONTAINS %s", ref, Quote(spec.Value)), nil
	case NotContains:
		return fmt.Sprintf("NOT (%s CONTAINS %s)", ref, Quote(spec.Value)), nil
	case BooleanLogic:
		return fmt.Sprintf("%s %s %s", ref, op.Symbol, spec.Value), nil
	}
	return "", qerr.New(qerr.CodeUnsupportedOperator, spec.Path, "no comparison template for %s", op.Family).WithValue(op.Name)
}

// lookup matches the value against every property of the node. An extra
// value additionally requires a neighbour carrying the configured label
// with the configured property set to it.
func lookup(spec Spec, node *pathtree.Node, opts Options) (string, error) {
	if node.Classification == metadata.Property {
		return "", qerr.New(qerr.CodeInvalidPath, spec.Path, "LOOKUP applies to a class path, not an attribute")
	}
	v := node.Variable
	match := fmt.Sprintf("ANY(key IN keys(%s) WHERE %s[key] = %s)", v, v, Quote(spec.Value))

	if spec.ExtraValue == nil || *spec.ExtraValue == "" {
		return match, nil
	}
	if node.Classification == metadata.Relationship {
		return "", qerr.New(qerr.CodeInvalidPath, spec.Path, "LOOKUP extra value needs an entity path, got a relationship")
	}
	if opts.ExtraValueLabel == "" || opts.ExtraValuePropertyName == "" {
		return "", qerr.New(qerr.CodeMissingConfiguration, spec.Path,
			"LOOKUP extra value given but the extra value label and property are not configured").WithValue(*spec.ExtraValue)
	}
	return fmt.Sprintf("(%s AND EXISTS { (%s)--(:%s {%s: %s}) })",
		match, v,
		naming.QuoteName(opts.ExtraValueLabel),
		naming.QuoteName(opts.ExtraValuePropertyName),
		Quote(*spec.ExtraValue)), nil
}

// subclass renders a label predicate on the node for a subtype of its
// declared type.
func subclass(spec Spec, tree *pathtree.Tree, node *pathtree.Node) (string, error) {
	if node.Classification != metadata.Entity {
		return "", qerr.New(qerr.CodeInvalidPath, spec.Path, "type constraint needs a class path, got a %s", node.Classification).WithValue(spec.Type)
	}
	sub, ok := tree.Model().Type(spec.Type)
	if !ok {
		return "", qerr.New(qerr.CodeSchemaMismatch, spec.Path, "unknown type %q", spec.Type).WithValue(spec.Type)
	}
	base := tree.Labels(node.ID)
	if len(base) == 0 || !slices.Contains(sub.Labels, base[0]) {
		return "", qerr.New(qerr.CodeSchemaMismatch, spec.Path, "%s is not a subclass of %s", spec.Type, node.TypeName).WithValue(spec.Type)
	}
	return node.Variable + ":" + naming.QuoteName(sub.Labels[0]), nil
}

// reference is the Cypher expression a constraint on node tests: the
// owner's variable and the property key for attributes, the node's own
// variable otherwise.
func reference(tree *pathtree.Tree, node *pathtree.Node) string {
	if node.Classification != metadata.Property {
		return node.Variable
	}
	return tree.Parent(node.ID).Variable + "." + naming.QuoteName(node.TargetName)
}
