package sqlparse

import (
	"fmt"
	"strconv"
)

// Parser is a two-token-lookahead recursive descent parser over the tiny
// SELECT grammar this driver accepts.
type Parser struct {
	lx   *lexer
	cur  token
	peek token
}

// NewParser creates a parser for the given SQL text.
func NewParser(sql string) *Parser {
	p := &Parser{lx: newLexer(sql)}
	p.cur = p.lx.next()
	p.peek = p.lx.next()
	return p
}

func (p *Parser) advance() {
	p.cur, p.peek = p.peek, p.lx.next()
}

func (p *Parser) curText() string {
	if p.cur.typ == tEOF {
		return "<EOF>"
	}
	return p.cur.val
}

func (p *Parser) errf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

// Parse parses a single SELECT query. Every returned error is a syntax
// error (sqlstate 42000); the caller owns attaching the SQLSTATE, this
// package only owns the message text.
func Parse(sql string) (*Query, error) {
	return NewParser(sql).ParseQuery()
}

// ParseQuery implements:
//
//	Query := SELECT ColList FROM Ident (WHERE Ident '=' Literal)?
//	ColList := '*'
//
// A named column list for ColList is left unimplemented (see DESIGN.md):
// '*' is the only ColList this parser accepts syntactically; a non-'*'
// projection is rejected with "* expected, got: <ident>".
func (p *Parser) ParseQuery() (*Query, error) {
	if !p.isKeywordIdent("select") {
		return nil, p.errf("SELECT expected, got: %s", p.curText())
	}
	p.advance()

	if !(p.cur.typ == tSymbol && p.cur.val == "*") {
		return nil, p.errf("* expected, got: %s", p.curText())
	}
	p.advance()
	q := &Query{Star: true}

	if !p.isKeywordIdent("from") {
		return nil, p.errf("FROM expected, got: %s", p.curText())
	}
	p.advance()

	if p.cur.typ != tIdent {
		return nil, p.errf("table name expected, got: %s", p.curText())
	}
	q.Table = p.cur.val
	p.advance()

	if p.isKeywordIdent("where") {
		p.advance()

		if p.cur.typ != tIdent {
			return nil, p.errf("column name expected, got: %s", p.curText())
		}
		q.WhereColumn = p.cur.val
		p.advance()

		if !(p.cur.typ == tSymbol && p.cur.val == "=") {
			return nil, p.errf("= expected, got: %s", p.curText())
		}
		p.advance()

		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		q.HasWhere = true
		q.WhereValue = lit
		p.advance()
	}

	if p.cur.typ != tEOF {
		return nil, p.errf("unexpected trailing input: %s", p.curText())
	}

	return q, nil
}

func (p *Parser) parseLiteral() (Literal, error) {
	switch p.cur.typ {
	case tNumber:
		n, err := strconv.ParseInt(p.cur.val, 10, 64)
		if err != nil {
			return Literal{}, p.errf("invalid integer literal: %s", p.cur.val)
		}
		return Literal{IsString: false, Int: n}, nil
	case tString:
		return Literal{IsString: true, Str: p.cur.val}, nil
	default:
		return Literal{}, p.errf("literal expected, got: %s", p.curText())
	}
}

func (p *Parser) isKeywordIdent(kw string) bool {
	return p.cur.typ == tIdent && isKeyword(p.cur.val, kw)
}
