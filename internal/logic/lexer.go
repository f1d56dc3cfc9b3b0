// Package logic parses constraint logic expressions such as
// "A and (B or not C)" and renders them as Cypher boolean expressions.
package logic

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vivekkrish/neo4j/internal/qerr"
)

// TokenType classifies a lexer token.
type TokenType int

const (
	TokAnd    TokenType = iota // and
	TokOr                      // or
	TokNot                     // not
	TokLParen                  // (
	TokRParen                  // )
	TokCode                    // constraint code
	TokEOF                     // end of input
)

// Token is a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   int // byte offset in the input
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%d, %q, pos=%d)", t.Type, t.Value, t.Pos)
}

// keywords maps uppercase keyword strings to their token type.
var keywords = map[string]TokenType{
	"AND": TokAnd,
	"OR":  TokOr,
	"NOT": TokNot,
}

// Lex tokenizes a logic expression.
func Lex(input string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for pos < len(input) {
		c := input[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			pos++
		case c == '(':
			tokens = append(tokens, Token{Type: TokLParen, Value: "(", Pos: pos})
			pos++
		case c == ')':
			tokens = append(tokens, Token{Type: TokRParen, Value: ")", Pos: pos})
			pos++
		case isIdentStart(rune(c)):
			start := pos
			for pos < len(input) && isIdentPart(rune(input[pos])) {
				pos++
			}
			word := input[start:pos]
			if tt, ok := keywords[strings.ToUpper(word)]; ok {
				tokens = append(tokens, Token{Type: tt, Value: word, Pos: start})
			} else {
				tokens = append(tokens, Token{Type: TokCode, Value: word, Pos: start})
			}
		default:
			return nil, qerr.New(qerr.CodeInvalidLogic, "", "unexpected character %q at position %d", c, pos).WithValue(input)
		}
	}
	tokens = append(tokens, Token{Type: TokEOF, Pos: len(input)})
	return tokens, nil
}

func isIdentStart(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || r == '_')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r < unicode.MaxASCII && unicode.IsDigit(r))
}
