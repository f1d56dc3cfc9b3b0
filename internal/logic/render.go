package logic

import (
	"slices"
	"strings"

	"github.com/vivekkrish/neo4j/internal/qerr"
)

// Codes returns the constraint codes e references, in order of appearance.
func Codes(e Expr) []string {
	var out []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case Code:
			if !slices.Contains(out, n.Name) {
				out = append(out, n.Name)
			}
		case And:
			for _, t := range n.Terms {
				walk(t)
			}
		case Or:
			for _, t := range n.Terms {
				walk(t)
			}
		case Not:
			walk(n.X)
		case Group:
			walk(n.X)
		}
	}
	if e != nil {
		walk(e)
	}
	return out
}

// Complete returns e with every code it does not mention AND-ed on, in
// the given order. A nil e becomes the conjunction of all codes.
func Complete(e Expr, codes []string) Expr {
	present := Codes(e)
	var missing []Expr
	for _, c := range codes {
		if !slices.Contains(present, c) {
			missing = append(missing, Code{Name: c})
		}
	}
	if len(missing) == 0 {
		return e
	}
	if e == nil {
		if len(missing) == 1 {
			return missing[0]
		}
		return And{Terms: missing}
	}
	switch n := e.(type) {
	case And:
		return And{Terms: append(slices.Clone(n.Terms), missing...)}
	case Or:
		return And{Terms: append([]Expr{Group{X: n}}, missing...)}
	}
	return And{Terms: append([]Expr{e}, missing...)}
}

// Render substitutes each code with its fragment and each connective with
// its Cypher keyword. Source parentheses are kept; a negated operand is
// always parenthesized.
func Render(e Expr, fragments map[string]string) (string, error) {
	var b strings.Builder
	if err := render(&b, e, fragments); err != nil {
		return "", err
	}
	return b.String(), nil
}

func render(b *strings.Builder, e Expr, fragments map[string]string) error {
	switch n := e.(type) {
	case Code:
		text, ok := fragments[n.Name]
		if !ok {
			return qerr.New(qerr.CodeInvalidLogic, "", "logic references unknown constraint %s", n.Name).WithValue(n.Name)
		}
		b.WriteString(text)
	case And:
		return join(b, n.Terms, " AND ", fragments)
	case Or:
		return join(b, n.Terms, " OR ", fragments)
	case Not:
		b.WriteString("NOT ")
		if _, grouped := n.X.(Group); grouped {
			return render(b, n.X, fragments)
		}
		b.WriteByte('(')
		if err := render(b, n.X, fragments); err != nil {
			return err
		}
		b.WriteByte(')')
	case Group:
		b.WriteByte('(')
		if err := render(b, n.X, fragments); err != nil {
			return err
		}
		b.WriteByte(')')
	case nil:
		return qerr.New(qerr.CodeInvalidLogic, "", "empty logic expression")
	}
	return nil
}

func join(b *strings.Builder, terms []Expr, sep string, fragments map[string]string) error {
	for i, t := range terms {
		if i > 0 {
			b.WriteString(sep)
		}
		if err := render(b, t, fragments); err != nil {
			return err
		}
	}
	return nil
}
