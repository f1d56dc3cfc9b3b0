package logic

import (
	"strings"

	"github.com/vivekkrish/neo4j/internal/qerr"
)

// Expr is a node of a parsed logic expression.
type Expr interface {
	exprNode()
}

// Code references one constraint.
type Code struct{ Name string }

// And is a conjunction of two or more terms.
type And struct{ Terms []Expr }

// Or is a disjunction of two or more terms.
type Or struct{ Terms []Expr }

// Not negates its operand.
type Not struct{ X Expr }

// Group is an explicit pair of parentheses from the source expression.
type Group struct{ X Expr }

func (Code) exprNode()  {}
func (And) exprNode()   {}
func (Or) exprNode()    {}
func (Not) exprNode()   {}
func (Group) exprNode() {}

// Parser is a recursive-descent parser over lexer tokens.
//
//	expr    := or
//	or      := and ("or" and)*
//	and     := unary ("and" unary)*
//	unary   := "not" unary | primary
//	primary := CODE | "(" expr ")"
type Parser struct {
	input  string
	tokens []Token
	pos    int
}

// Parse parses a logic expression. A blank expression parses to nil.
func Parse(input string) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{input: input, tokens: tokens}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokEOF {
		return nil, p.errorf(tok, "unexpected %q", tok.Value)
	}
	return e, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		if tok.Type == TokEOF {
			return tok, p.errorf(tok, "expected %s, got end of expression", what)
		}
		return tok, p.errorf(tok, "expected %s, got %q", what, tok.Value)
	}
	return tok, nil
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	args = append(args, tok.Pos)
	return qerr.New(qerr.CodeInvalidLogic, "", format+" at position %d", args...).WithValue(p.input)
}

func (p *Parser) parseOr() (Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.peek().Type == TokOr {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return Or{Terms: terms}, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.peek().Type == TokAnd {
		p.advance()
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return And{Terms: terms}, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.peek().Type == TokNot {
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.advance()
	switch tok.Type {
	case TokCode:
		return Code{Name: tok.Value}, nil
	case TokLParen:
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		return Group{X: x}, nil
	case TokEOF:
		return nil, p.errorf(tok, "expected constraint code, got end of expression")
	}
	return nil, p.errorf(tok, "expected constraint code, got %q", tok.Value)
}
