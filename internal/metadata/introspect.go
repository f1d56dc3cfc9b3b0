package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/vivekkrish/neo4j/internal/naming"
)

const (
	// schemaVisualizationQuery retrieves the graph structure (nodes and relationships)
	schemaVisualizationQuery = `CALL db.schema.visualization()`

	// nodePropertiesQuery retrieves node properties with their types
	nodePropertiesQuery = `
		CALL db.schema.nodeTypeProperties()
		YIELD nodeLabels, propertyName, propertyTypes
		RETURN nodeLabels, propertyName, propertyTypes
	`

	// relPropertiesQuery retrieves relationship properties with their types
	relPropertiesQuery = `
		CALL db.schema.relTypeProperties()
		YIELD relType, propertyName, propertyTypes
		RETURN relType, propertyName, propertyTypes
	`
)

// Querier runs read-only Cypher. database.Service implements it.
type Querier interface {
	ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

// Introspect derives a Schema from a live graph using the native schema
// procedures. Every label becomes a class, every relationship type a
// reference named after the type in lowerCamel case. Relationship types
// that carry properties become relationship classes so their properties
// are addressable from path queries.
func Introspect(ctx context.Context, q Querier) (*Schema, error) {
	visualizationRecords, err := q.ExecuteReadQuery(ctx, schemaVisualizationQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to execute schema visualization query: %w", err)
	}
	slog.Debug("schema visualization query completed", "records_count", len(visualizationRecords))

	nodePropsRecords, err := q.ExecuteReadQuery(ctx, nodePropertiesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to execute node properties query: %w", err)
	}

	relPropsRecords, err := q.ExecuteReadQuery(ctx, relPropertiesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to execute relationship properties query: %w", err)
	}

	return processNativeSchema(visualizationRecords, nodePropsRecords, relPropsRecords)
}

// processNativeSchema combines results from native Neo4j schema procedures into a Schema
func processNativeSchema(visualizationRecords, nodePropsRecords, relPropsRecords []*neo4j.Record) (*Schema, error) {
	if len(visualizationRecords) == 0 {
		return nil, fmt.Errorf("no visualization records returned")
	}

	visRecord := visualizationRecords[0]
	nodesRaw, ok := visRecord.Get("nodes")
	if !ok {
		return nil, fmt.Errorf("missing 'nodes' in visualization record")
	}
	relationshipsRaw, ok := visRecord.Get("relationships")
	if !ok {
		return nil, fmt.Errorf("missing 'relationships' in visualization record")
	}
	nodesList, ok := nodesRaw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid nodes format in visualization")
	}
	relationshipsList, ok := relationshipsRaw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid relationships format in visualization")
	}

	// label -> property names
	nodeProps := make(map[string][]string)
	for _, record := range nodePropsRecords {
		nodeLabelsRaw, _ := record.Get("nodeLabels")
		propertyName, _ := record.Get("propertyName")

		labels, ok := nodeLabelsRaw.([]any)
		if !ok || len(labels) == 0 {
			continue
		}
		label, ok := labels[0].(string)
		if !ok {
			continue
		}
		if prop, ok := propertyName.(string); ok && prop != "" {
			nodeProps[label] = appendUnique(nodeProps[label], prop)
		}
	}

	// relType -> property names
	relProps := make(map[string][]string)
	for _, record := range relPropsRecords {
		relTypeRaw, _ := record.Get("relType")
		propertyName, _ := record.Get("propertyName")

		relType, ok := relTypeRaw.(string)
		if !ok {
			continue
		}
		// relTypeProperties reports types as ":`ACTED_IN`"
		relType = strings.Trim(strings.TrimPrefix(relType, ":"), "`")
		if prop, ok := propertyName.(string); ok && prop != "" {
			relProps[relType] = appendUnique(relProps[relType], prop)
		}
	}

	s := &Schema{
		Classes:       make(map[string]*ClassSchema),
		Relationships: make(map[string]*RelationshipSchema),
	}

	nodeIDToLabel := make(map[int64]string)
	for _, nodeRaw := range nodesList {
		id, label, ok := visualizationNode(nodeRaw)
		if !ok {
			slog.Warn("skipping node: unsupported visualization shape", "type", fmt.Sprintf("%T", nodeRaw))
			continue
		}
		nodeIDToLabel[id] = label
		s.Classes[label] = &ClassSchema{Properties: nodeProps[label]}
	}
	slog.Info("built node ID to label map", "count", len(nodeIDToLabel))

	type edge struct{ start, end, relType string }
	var edges []edge
	endsOf := make(map[[2]string]map[string]bool)
	for _, relRaw := range relationshipsList {
		startID, endID, relType, ok := visualizationRelationship(relRaw)
		if !ok {
			slog.Warn("skipping relationship: unsupported visualization shape", "type", fmt.Sprintf("%T", relRaw))
			continue
		}
		startLabel, endLabel := nodeIDToLabel[startID], nodeIDToLabel[endID]
		if startLabel == "" || endLabel == "" {
			continue
		}
		key := [2]string{startLabel, relType}
		if endsOf[key] == nil {
			endsOf[key] = make(map[string]bool)
		}
		if endsOf[key][endLabel] {
			continue
		}
		endsOf[key][endLabel] = true
		edges = append(edges, edge{start: startLabel, end: endLabel, relType: relType})
	}

	for _, e := range edges {
		class := s.Classes[e.start]
		field := naming.FieldName(e.relType)
		// One type leading to several labels gets a field per end label.
		if len(endsOf[[2]string{e.start, e.relType}]) > 1 {
			field += e.end
			slog.Warn("relationship type reaches several labels, using a field per label",
				"type", e.relType, "label", e.start, "to", e.end, "field", field)
		}
		if slices.Contains(class.Properties, field) {
			slog.Warn("skipping relationship: field clashes with a property", "type", e.relType, "label", e.start, "field", field)
			continue
		}
		if _, dup := class.References[field]; dup {
			slog.Warn("skipping relationship: field already mapped", "type", e.relType, "label", e.start, "field", field)
			continue
		}
		if _, dup := class.Relationships[field]; dup {
			slog.Warn("skipping relationship: field already mapped", "type", e.relType, "label", e.start, "field", field)
			continue
		}

		if props := relProps[e.relType]; len(props) > 0 {
			name := relationshipClassName(s, e.relType, e.end)
			s.Relationships[name] = &RelationshipSchema{
				Type:       e.relType,
				Properties: props,
				End:        EndSchema{Field: lowerFirst(e.end), Type: e.end},
			}
			if class.Relationships == nil {
				class.Relationships = make(map[string]string)
			}
			class.Relationships[field] = name
			slog.Debug("mapped relationship class", "type", e.relType, "from", e.start, "to", e.end)
			continue
		}

		if class.References == nil {
			class.References = make(map[string]*ReferenceSchema)
		}
		class.References[field] = &ReferenceSchema{Type: e.end, RelType: e.relType}
		slog.Debug("mapped reference", "type", e.relType, "from", e.start, "to", e.end)
	}

	slog.Info("schema introspection complete", "classes", len(s.Classes), "relationships", len(s.Relationships))
	return s, nil
}

func visualizationNode(raw any) (int64, string, bool) {
	if node, ok := raw.(dbtype.Node); ok {
		label, ok := node.Props["name"].(string)
		return node.Id, label, ok && label != ""
	}
	node, ok := raw.(map[string]any)
	if !ok {
		return 0, "", false
	}
	id, ok := toInt64(node["Id"])
	if !ok {
		return 0, "", false
	}
	props, _ := node["Props"].(map[string]any)
	label, ok := props["name"].(string)
	return id, label, ok && label != ""
}

func visualizationRelationship(raw any) (int64, int64, string, bool) {
	if rel, ok := raw.(dbtype.Relationship); ok {
		relType, _ := rel.Props["name"].(string)
		if relType == "" {
			relType = rel.Type
		}
		return rel.StartId, rel.EndId, relType, relType != ""
	}
	rel, ok := raw.(map[string]any)
	if !ok {
		return 0, 0, "", false
	}
	startID, ok1 := toInt64(rel["StartId"])
	endID, ok2 := toInt64(rel["EndId"])
	props, _ := rel["Props"].(map[string]any)
	relType, _ := props["name"].(string)
	return startID, endID, relType, ok1 && ok2 && relType != ""
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	}
	return 0, false
}

// relationshipClassName names the class for a relationship type. The same
// type leading to different end labels gets one class per end label.
func relationshipClassName(s *Schema, relType, endLabel string) string {
	base := upperFirst(naming.FieldName(relType))
	existing, ok := s.Relationships[base]
	if !ok || existing.End.Type == endLabel {
		return base
	}
	return base + endLabel
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
