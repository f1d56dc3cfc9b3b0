// Package pathtree builds the typed, prefix-shared tree of all paths in a
// path query.
//
// Nodes live in an arena owned by the Tree and refer to each other by
// index, so the parent back-reference is a plain lookup.
package pathtree

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vivekkrish/neo4j/internal/metadata"
	"github.com/vivekkrish/neo4j/internal/naming"
	"github.com/vivekkrish/neo4j/internal/qerr"
)

// NodeID indexes a node in its tree.
type NodeID int

// NoParent is the parent of the root.
const NoParent NodeID = -1

// Node is one distinct path prefix.
type Node struct {
	ID             NodeID
	Parent         NodeID
	Classification metadata.Classification
	SourceName     string
	TargetName     string

	// Variable is empty for properties.
	Variable string

	// TypeName names the entity type or relationship class; empty for properties.
	TypeName string

	// Path is the dotted source path leading to this node.
	Path string

	scope    metadata.Scope
	children map[string]NodeID
	order    []NodeID
}

// Tree is the arena of nodes built from one path query.
type Tree struct {
	model *metadata.Model
	nodes []Node
	byKey map[string]NodeID
	vars  int
}

// Build constructs the tree for paths. All paths must start at the same
// root class. Duplicates and shared prefixes map to existing nodes.
func Build(paths []string, model *metadata.Model) (*Tree, error) {
	if len(paths) == 0 {
		return nil, qerr.New(qerr.CodeInvalidPath, "", "no paths to build from")
	}

	rootSegments, err := split(paths[0])
	if err != nil {
		return nil, err
	}
	t, err := New(rootSegments[0], model)
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		if _, err := t.Add(p); err != nil {
			return nil, err
		}
	}

	slog.Debug("built path tree", "paths", len(paths), "nodes", len(t.nodes))
	return t, nil
}

// New creates a tree holding only the root entity.
func New(root string, model *metadata.Model) (*Tree, error) {
	res, err := model.Root(root)
	if err != nil {
		return nil, err
	}
	t := &Tree{model: model, byKey: make(map[string]NodeID)}
	t.create(NoParent, root, root, res)
	return t, nil
}

// Add inserts path, creating the nodes for prefixes not seen before, and
// returns the node for the full path.
func (t *Tree) Add(path string) (NodeID, error) {
	segments, err := split(path)
	if err != nil {
		return 0, err
	}
	root := &t.nodes[0]
	if segments[0] != root.SourceName {
		return 0, qerr.New(qerr.CodeInvalidPath, path, "path does not start at root class %s", root.SourceName)
	}

	cur := NodeID(0)
	for i, seg := range segments[1:] {
		prefix := strings.Join(segments[:i+2], ".")
		if id, ok := t.byKey[prefix]; ok {
			cur = id
			continue
		}

		parent := &t.nodes[cur]
		res, err := t.model.Classify(parent.Classification, seg, parent.scope)
		if err != nil {
			var qe *qerr.Error
			if errors.As(err, &qe) {
				return 0, qe.At(path)
			}
			return 0, fmt.Errorf("%s: %w", path, err)
		}

		if id, ok := parent.children[res.TargetName]; ok {
			// Two source fields mapped to the same target name.
			return 0, qerr.New(qerr.CodeSchemaMismatch, path, "%s and %s both map to %s", t.nodes[id].SourceName, seg, res.TargetName)
		}
		cur = t.create(cur, seg, prefix, res)
	}
	return cur, nil
}

func (t *Tree) create(parent NodeID, source, path string, res metadata.Resolution) NodeID {
	id := NodeID(len(t.nodes))
	n := Node{
		ID:             id,
		Parent:         parent,
		Classification: res.Classification,
		SourceName:     source,
		TargetName:     res.TargetName,
		TypeName:       res.TypeName,
		Path:           path,
		scope:          res.Scope,
	}
	if res.Classification != metadata.Property {
		n.Variable = fmt.Sprintf("n%d", t.vars)
		n.children = make(map[string]NodeID)
		t.vars++
	}
	t.nodes = append(t.nodes, n)
	t.byKey[path] = id
	if parent != NoParent {
		p := &t.nodes[parent]
		p.children[n.TargetName] = id
		p.order = append(p.order, id)
	}
	return id
}

// Lookup resolves a dotted path to its node.
func (t *Tree) Lookup(path string) (NodeID, error) {
	id, ok := t.byKey[path]
	if !ok {
		return 0, qerr.New(qerr.CodeUnresolvedPath, path, "path is not part of the query tree")
	}
	return id, nil
}

// Root returns the root node.
func (t *Tree) Root() *Node { return &t.nodes[0] }

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Parent returns the parent of id, or nil for the root.
func (t *Tree) Parent(id NodeID) *Node {
	p := t.nodes[id].Parent
	if p == NoParent {
		return nil
	}
	return &t.nodes[p]
}

// Children returns the children of id in creation order.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].order
}

// Child returns the child of id with the given target name.
func (t *Tree) Child(id NodeID, targetName string) (NodeID, bool) {
	c, ok := t.nodes[id].children[targetName]
	return c, ok
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Model returns the model the tree was classified against.
func (t *Tree) Model() *metadata.Model { return t.model }

// Labels returns the graph labels of an entity node.
func (t *Tree) Labels(id NodeID) []string {
	if td, ok := t.nodes[id].scope.(*metadata.TypeDescriptor); ok {
		return td.Labels
	}
	return nil
}

// Walk visits nodes depth-first, parents before children, children in
// creation order. Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(n *Node) bool) {
	var visit func(id NodeID)
	visit = func(id NodeID) {
		if !fn(&t.nodes[id]) {
			return
		}
		for _, c := range t.nodes[id].order {
			visit(c)
		}
	}
	visit(0)
}

func split(path string) ([]string, error) {
	if path == "" {
		return nil, qerr.New(qerr.CodeInvalidPath, path, "empty path")
	}
	segments := strings.Split(path, ".")
	for i, s := range segments {
		if s == "" {
			return nil, qerr.New(qerr.CodeInvalidPath, path, "empty segment at position %d", i)
		}
		if !naming.IsIdentifier(s) {
			return nil, qerr.New(qerr.CodeInvalidPath, path, "segment %q is not an identifier", s)
		}
	}
	return segments, nil
}
