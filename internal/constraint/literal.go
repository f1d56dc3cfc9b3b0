package constraint

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericLiteral accepts decimal integers and floats with an optional
// exponent. Hex, NaN, Inf and surrounding spaces are strings.
var numericLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric reports whether v is rendered unquoted. Integers must fit in
// 64 bits.
func IsNumeric(v string) bool {
	_, ok := canonicalNumber(v)
	return ok
}

// Literal renders v as a number in canonical form when it is numeric and
// as a quoted string otherwise.
func Literal(v string) string {
	if n, ok := canonicalNumber(v); ok {
		return n
	}
	return Quote(v)
}

// canonicalNumber reformats v the way Cypher reads numbers back: no sign
// prefix, no leading zeros (Cypher 5 reads 0123 as octal) and a fraction
// or exponent on every float.
func canonicalNumber(v string) (string, bool) {
	if !numericLiteral.MatchString(v) {
		return "", false
	}
	if !strings.ContainsAny(v, ".eE") {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) {
		return "", false
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		exp, _ := strconv.Atoi(s[i+1:])
		return s[:i] + "e" + strconv.Itoa(exp), true
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, true
}

// Quote renders v as a double-quoted Cypher string literal.
func Quote(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
