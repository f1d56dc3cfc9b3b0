package metadata

import (
	"fmt"
	"slices"

	"github.com/vivekkrish/neo4j/internal/naming"
	"gopkg.in/yaml.v3"
)

// Schema is the on-disk description of a data model.
//
//	classes:
//	  Gene:
//	    extends: [SequenceFeature]
//	    properties: [symbol]
//	    references:
//	      organism: {type: Organism}
//	    relationships:
//	      locations: Location
//	relationships:
//	  Location:
//	    type: LOCATED_ON
//	    properties: [start, end]
//	    end: {field: locatedOn, type: Chromosome}
type Schema struct {
	Classes       map[string]*ClassSchema        `yaml:"classes"`
	Relationships map[string]*RelationshipSchema `yaml:"relationships,omitempty"`
}

// ClassSchema describes one entity class.
type ClassSchema struct {
	Extends       []string                    `yaml:"extends,omitempty"`
	Labels        []string                    `yaml:"labels,omitempty"`
	Properties    []string                    `yaml:"properties,omitempty"`
	References    map[string]*ReferenceSchema `yaml:"references,omitempty"`
	Relationships map[string]string           `yaml:"relationships,omitempty"`
}

// ReferenceSchema is a field pointing at another class. RelType defaults
// to the field name in UPPER_SNAKE case.
type ReferenceSchema struct {
	Type    string `yaml:"type"`
	RelType string `yaml:"rel_type,omitempty"`
}

// RelationshipSchema is a class stored as a graph relationship.
type RelationshipSchema struct {
	Type       string    `yaml:"type"`
	Properties []string  `yaml:"properties,omitempty"`
	End        EndSchema `yaml:"end"`
}

// EndSchema names the far end of a relationship class.
type EndSchema struct {
	Field string `yaml:"field"`
	Type  string `yaml:"type"`
}

// Parse decodes a YAML schema and builds a Model from it.
func Parse(data []byte) (*Model, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return Build(&s)
}

// Marshal encodes a schema as YAML.
func Marshal(s *Schema) ([]byte, error) {
	return yaml.Marshal(s)
}

// Build validates a schema and flattens inheritance into a Model.
func Build(s *Schema) (*Model, error) {
	if s == nil || len(s.Classes) == 0 {
		return nil, fmt.Errorf("schema declares no classes")
	}

	m := &Model{
		types:         make(map[string]*TypeDescriptor, len(s.Classes)),
		relationships: make(map[string]*RelationshipDescriptor, len(s.Relationships)),
	}

	for name, rs := range s.Relationships {
		if rs == nil || rs.Type == "" {
			return nil, fmt.Errorf("relationship %s: type is required", name)
		}
		if rs.End.Field == "" || rs.End.Type == "" {
			return nil, fmt.Errorf("relationship %s: end field and type are required", name)
		}
		if _, ok := s.Classes[rs.End.Type]; !ok {
			return nil, fmt.Errorf("relationship %s: unknown end type %q", name, rs.End.Type)
		}
		m.relationships[name] = &RelationshipDescriptor{
			Name:       name,
			Type:       rs.Type,
			EndField:   rs.End.Field,
			EndType:    rs.End.Type,
			properties: toSet(rs.Properties),
		}
	}

	b := &flattener{schema: s, done: make(map[string]*TypeDescriptor), visiting: make(map[string]bool)}
	for name := range s.Classes {
		t, err := b.flatten(name)
		if err != nil {
			return nil, err
		}
		m.types[name] = t
	}

	for _, t := range m.types {
		for field, ref := range t.references {
			if _, ok := m.types[ref.Type]; !ok {
				return nil, fmt.Errorf("class %s: reference %s points at unknown class %q", t.Name, field, ref.Type)
			}
			if t.HasProperty(field) {
				return nil, fmt.Errorf("class %s: %s is declared as both property and reference", t.Name, field)
			}
		}
		for field, rel := range t.relationships {
			if _, ok := m.relationships[rel]; !ok {
				return nil, fmt.Errorf("class %s: relationship %s points at unknown relationship class %q", t.Name, field, rel)
			}
			if t.HasProperty(field) {
				return nil, fmt.Errorf("class %s: %s is declared as both property and relationship", t.Name, field)
			}
		}
	}

	return m, nil
}

type flattener struct {
	schema   *Schema
	done     map[string]*TypeDescriptor
	visiting map[string]bool
}

func (f *flattener) flatten(name string) (*TypeDescriptor, error) {
	if t, ok := f.done[name]; ok {
		return t, nil
	}
	cs, ok := f.schema.Classes[name]
	if !ok {
		return nil, fmt.Errorf("unknown class %q", name)
	}
	if f.visiting[name] {
		return nil, fmt.Errorf("class %s: inheritance cycle", name)
	}
	f.visiting[name] = true
	defer delete(f.visiting, name)

	if cs == nil {
		cs = &ClassSchema{}
	}

	t := &TypeDescriptor{
		Name:          name,
		Labels:        []string{name},
		properties:    make(map[string]struct{}),
		references:    make(map[string]Reference),
		relationships: make(map[string]string),
	}
	t.Labels = appendUnique(t.Labels, cs.Labels...)

	// Ancestors first so the class's own declarations override them.
	for _, parent := range cs.Extends {
		p, err := f.flatten(parent)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
		t.Labels = appendUnique(t.Labels, p.Labels...)
		for k := range p.properties {
			t.properties[k] = struct{}{}
		}
		for k, v := range p.references {
			t.references[k] = v
		}
		for k, v := range p.relationships {
			t.relationships[k] = v
		}
	}

	for _, p := range cs.Properties {
		t.properties[p] = struct{}{}
	}
	for field, ref := range cs.References {
		if ref == nil || ref.Type == "" {
			return nil, fmt.Errorf("class %s: reference %s has no type", name, field)
		}
		relType := ref.RelType
		if relType == "" {
			relType = naming.RelationshipType(field)
		}
		t.references[field] = Reference{Field: field, Type: ref.Type, RelType: relType}
	}
	for field, rel := range cs.Relationships {
		t.relationships[field] = rel
	}

	f.done[name] = t
	return t, nil
}

func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		if !slices.Contains(dst, it) {
			dst = append(dst, it)
		}
	}
	return dst
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
