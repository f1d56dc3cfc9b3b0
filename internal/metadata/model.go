// Package metadata holds the schema-derived descriptors used to classify
// path segments as entities, relationships or properties.
//
// A Model is built once per schema load and is read-only afterwards, so a
// single instance can serve concurrent translations.
package metadata

import (
	"fmt"
	"slices"
	"sort"
)

// Classification is the kind of graph element a path segment denotes.
type Classification int

const (
	Entity Classification = iota
	Relationship
	Property
)

func (c Classification) String() string {
	switch c {
	case Entity:
		return "ENTITY"
	case Relationship:
		return "RELATIONSHIP"
	case Property:
		return "PROPERTY"
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// Scope is the descriptor a segment is classified under. It is either a
// *TypeDescriptor or a *RelationshipDescriptor.
type Scope interface {
	scopeName() string
	HasProperty(name string) bool
}

// Reference is a field of an entity type pointing at another entity type.
type Reference struct {
	Field   string
	Type    string
	RelType string
}

// TypeDescriptor describes one entity type with inheritance flattened in.
type TypeDescriptor struct {
	Name string

	// Labels lists the type's own label first, then extra labels, then ancestors.
	Labels []string

	properties    map[string]struct{}
	references    map[string]Reference
	relationships map[string]string
}

func (t *TypeDescriptor) scopeName() string { return t.Name }

// HasProperty reports whether name is a property of the type.
func (t *TypeDescriptor) HasProperty(name string) bool {
	_, ok := t.properties[name]
	return ok
}

// Reference returns the reference declared for field.
func (t *TypeDescriptor) Reference(field string) (Reference, bool) {
	r, ok := t.references[field]
	return r, ok
}

// RelationshipName returns the relationship descriptor declared for field.
func (t *TypeDescriptor) RelationshipName(field string) (string, bool) {
	r, ok := t.relationships[field]
	return r, ok
}

// Properties returns the property names in sorted order.
func (t *TypeDescriptor) Properties() []string {
	return sortedKeys(t.properties)
}

// References returns the references sorted by field.
func (t *TypeDescriptor) References() []Reference {
	out := make([]Reference, 0, len(t.references))
	for _, r := range t.references {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// RelationshipFields returns the fields declared as relationships, sorted.
func (t *TypeDescriptor) RelationshipFields() []string {
	return sortedKeys(t.relationships)
}

// RelationshipDescriptor describes a schema class that is stored as a graph
// relationship. The far end of the edge is reachable through EndField.
type RelationshipDescriptor struct {
	Name     string
	Type     string
	EndField string
	EndType  string

	properties map[string]struct{}
}

func (r *RelationshipDescriptor) scopeName() string { return r.Name }

// HasProperty reports whether name is a property of the relationship.
func (r *RelationshipDescriptor) HasProperty(name string) bool {
	_, ok := r.properties[name]
	return ok
}

// Properties returns the property names in sorted order.
func (r *RelationshipDescriptor) Properties() []string {
	return sortedKeys(r.properties)
}

// Model is the immutable lookup table built from a schema.
type Model struct {
	types         map[string]*TypeDescriptor
	relationships map[string]*RelationshipDescriptor
}

// Type returns the descriptor for an entity type name.
func (m *Model) Type(name string) (*TypeDescriptor, bool) {
	t, ok := m.types[name]
	return t, ok
}

// Relationship returns the descriptor for a relationship class name.
func (m *Model) Relationship(name string) (*RelationshipDescriptor, bool) {
	r, ok := m.relationships[name]
	return r, ok
}

// Types returns all entity types sorted by name.
func (m *Model) Types() []*TypeDescriptor {
	out := make([]*TypeDescriptor, 0, len(m.types))
	for _, t := range m.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Relationships returns all relationship descriptors sorted by name.
func (m *Model) Relationships() []*RelationshipDescriptor {
	out := make([]*RelationshipDescriptor, 0, len(m.relationships))
	for _, r := range m.relationships {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
