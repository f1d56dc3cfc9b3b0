package metadata

import (
	"fmt"
	"strings"
)

// Markdown describes the model the way path queries see it: classes with
// their labels, properties and traversable fields, then relationship classes.
func (m *Model) Markdown() string {
	var md strings.Builder

	md.WriteString("# Path Query Data Model\n\n")
	md.WriteString("Paths start at a class and follow fields separated by dots, e.g. `Gene.organism.name`.\n\n")

	types := m.Types()
	if len(types) > 0 {
		md.WriteString("## 1. Classes\n\n")
		for _, t := range types {
			md.WriteString(fmt.Sprintf("### %s\n\n", t.Name))
			md.WriteString(fmt.Sprintf("*Labels:* `:%s`\n\n", strings.Join(t.Labels, ":")))

			if props := t.Properties(); len(props) > 0 {
				md.WriteString("*Properties:*\n\n")
				for _, p := range props {
					md.WriteString(fmt.Sprintf("  - `%s`\n", p))
				}
				md.WriteString("\n")
			}

			refs := t.References()
			rels := t.RelationshipFields()
			if len(refs) > 0 || len(rels) > 0 {
				md.WriteString("*References:*\n\n")
				for _, r := range refs {
					md.WriteString(fmt.Sprintf("  - `%s` → %s: `(:%s)-[:%s]->(:%s)`\n", r.Field, r.Type, t.Name, r.RelType, r.Type))
				}
				for _, field := range rels {
					rel := m.relationships[t.relationships[field]]
					md.WriteString(fmt.Sprintf("  - `%s` → %s: `(:%s)-[:%s]->(:%s)`\n", field, rel.Name, t.Name, rel.Type, rel.EndType))
				}
				md.WriteString("\n")
			}
		}
	}

	rels := m.Relationships()
	if len(rels) > 0 {
		md.WriteString("## 2. Relationship Classes\n\n")
		for _, r := range rels {
			md.WriteString(fmt.Sprintf("### %s (:%s)\n\n", r.Name, r.Type))
			md.WriteString(fmt.Sprintf("*End:* `%s` → %s\n\n", r.EndField, r.EndType))
			if props := r.Properties(); len(props) > 0 {
				md.WriteString("*Properties:*\n\n")
				for _, p := range props {
					md.WriteString(fmt.Sprintf("  - `%s`\n", p))
				}
				md.WriteString("\n")
			}
		}
	}

	return md.String()
}
