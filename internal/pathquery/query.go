// Package pathquery holds the decoded form of a path query and the XML and
// JSON decoders that produce it.
package pathquery

import (
	"strings"

	"github.com/vivekkrish/neo4j/internal/qerr"
)

// Query is a path query: the views to return, the constraints narrowing
// them and how the constraints combine.
type Query struct {
	Name string
	// Model names the data model the query was written against. It is
	// informational; the translator uses its own model.
	Model string

	Views       []string
	Constraints []Constraint
	Logic       string
	SortOrder   []Sort
	Joins       []Join
}

// Constraint is one filter on a path. A constraint with a Type narrows
// the path to a subclass; it has no operator or code and is always
// AND-ed.
type Constraint struct {
	Path       string
	Op         string
	Value      string
	ExtraValue *string
	Code       string
	Type       string
}

// IsSubclass reports whether c is a subclass constraint.
func (c Constraint) IsSubclass() bool { return c.Type != "" }

// Sort orders results by one path.
type Sort struct {
	Path       string
	Descending bool
}

// Join marks the subtree under Path as inner or outer joined.
type Join struct {
	Path  string
	Outer bool
}

// Root returns the class name every path of the query starts from.
func (q *Query) Root() string {
	if len(q.Views) == 0 {
		return ""
	}
	root, _, _ := strings.Cut(q.Views[0], ".")
	return root
}

// Paths returns the views followed by every constraint and sort path, in
// that order and without duplicates.
func (q *Query) Paths() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, v := range q.Views {
		add(v)
	}
	for _, c := range q.Constraints {
		add(c.Path)
	}
	for _, s := range q.SortOrder {
		add(s.Path)
	}
	return out
}

// OuterJoins returns the paths joined with the outer style.
func (q *Query) OuterJoins() []string {
	var out []string
	for _, j := range q.Joins {
		if j.Outer {
			out = append(out, j.Path)
		}
	}
	return out
}

// Normalize trims whitespace, checks the query has views and gives every
// constraint without a code the next unused one (A, B, ... Z, AA, AB, ...).
// Codes are case-insensitive, in the constraints and in the logic alike.
func (q *Query) Normalize() error {
	views := q.Views[:0]
	for _, v := range q.Views {
		if v = strings.TrimSpace(v); v != "" {
			views = append(views, v)
		}
	}
	q.Views = views
	if len(q.Views) == 0 {
		return qerr.New(qerr.CodeInvalidQuery, "", "query has no view")
	}
	q.Logic = strings.ToUpper(strings.TrimSpace(q.Logic))

	used := make(map[string]bool, len(q.Constraints))
	for i := range q.Constraints {
		c := &q.Constraints[i]
		c.Path = strings.TrimSpace(c.Path)
		c.Type = strings.TrimSpace(c.Type)
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		if c.IsSubclass() {
			c.Code = ""
			continue
		}
		if c.Code != "" {
			used[c.Code] = true
		}
	}

	next := 0
	for i := range q.Constraints {
		c := &q.Constraints[i]
		if c.Code != "" || c.IsSubclass() {
			continue
		}
		for used[code(next)] {
			next++
		}
		c.Code = code(next)
		used[c.Code] = true
	}
	return nil
}

// code returns the i-th constraint code in spreadsheet-column order.
func code(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}
