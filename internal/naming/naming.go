// Package naming converts between the path query naming convention
// (camelCase fields, PascalCase classes) and the graph's conventions
// (UPPER_SNAKE relationship types).
package naming

import (
	"strings"
	"unicode"
)

// RelationshipType converts a reference field name to a relationship type.
//
//	organism            -> ORGANISM
//	chromosomeLocation  -> CHROMOSOME_LOCATION
//	goAnnotation        -> GO_ANNOTATION
//	dataSets            -> DATA_SETS
//	crossReferences2    -> CROSS_REFERENCES2
//	GOTerm              -> GO_TERM
func RelationshipType(field string) string {
	runes := []rune(field)
	var b strings.Builder
	b.Grow(len(field) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// FieldName converts a relationship type back to a reference field name.
// It is the inverse of RelationshipType for fields without acronyms.
//
//	CHROMOSOME_LOCATION -> chromosomeLocation
func FieldName(relType string) string {
	parts := strings.Split(strings.ToLower(relType), "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(p)
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// IsIdentifier reports whether s is usable as a path segment.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// QuoteName returns name ready for use as a Cypher label, relationship
// type or property key, backtick-escaping it when it is not a plain identifier.
func QuoteName(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
