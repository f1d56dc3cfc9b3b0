package metadata

import (
	"github.com/vivekkrish/neo4j/internal/qerr"
)

// Resolution is the outcome of classifying one segment under its parent.
type Resolution struct {
	Classification Classification

	// TargetName is the segment rewritten to the graph naming convention.
	TargetName string

	// Scope is the descriptor children of this segment are classified
	// under. It is nil for properties.
	Scope Scope

	// TypeName names the descriptor behind Scope.
	TypeName string
}

// Root resolves the starting type of a path query.
func (m *Model) Root(name string) (Resolution, error) {
	t, ok := m.types[name]
	if !ok {
		return Resolution{}, qerr.New(qerr.CodeSchemaMismatch, name, "unknown root type %q", name)
	}
	return Resolution{Classification: Entity, TargetName: t.Name, Scope: t, TypeName: t.Name}, nil
}

// Classify decides what segment denotes under the parent scope.
//
// Properties win over relationships, which win over references. A
// relationship declaration only applies under an entity; under a
// relationship the only reference is the end field.
func (m *Model) Classify(parent Classification, segment string, scope Scope) (Resolution, error) {
	if parent == Property || scope == nil {
		return Resolution{}, qerr.New(qerr.CodeInvalidPath, "", "property has no attributes, cannot resolve %q", segment)
	}

	if scope.HasProperty(segment) {
		return Resolution{Classification: Property, TargetName: segment}, nil
	}

	switch s := scope.(type) {
	case *TypeDescriptor:
		if name, ok := s.relationships[segment]; ok {
			rel := m.relationships[name]
			return Resolution{Classification: Relationship, TargetName: rel.Type, Scope: rel, TypeName: rel.Name}, nil
		}
		if ref, ok := s.references[segment]; ok {
			target := m.types[ref.Type]
			return Resolution{Classification: Entity, TargetName: ref.RelType, Scope: target, TypeName: target.Name}, nil
		}
	case *RelationshipDescriptor:
		if segment == s.EndField {
			target := m.types[s.EndType]
			return Resolution{Classification: Entity, TargetName: segment, Scope: target, TypeName: target.Name}, nil
		}
	}

	return Resolution{}, qerr.New(qerr.CodeSchemaMismatch, "", "%q is not a field of %s", segment, scope.scopeName())
}
