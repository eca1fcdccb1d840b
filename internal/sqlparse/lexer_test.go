package sqlparse

import "testing"

func TestLexerIdentWithSlash(t *testing.T) {
	lx := newLexer("Capacitors/Aluminium")
	tok := lx.next()
	if tok.typ != tIdent || tok.val != "Capacitors/Aluminium" {
		t.Fatalf("got %+v", tok)
	}
	if eof := lx.next(); eof.typ != tEOF {
		t.Fatalf("expected EOF, got %+v", eof)
	}
}

func TestLexerQuotedIdent(t *testing.T) {
	lx := newLexer(`"pk"`)
	tok := lx.next()
	if tok.typ != tIdent || tok.val != "pk" {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerStringLiteral(t *testing.T) {
	lx := newLexer(`'RES-000014-00'`)
	tok := lx.next()
	if tok.typ != tString || tok.val != "RES-000014-00" {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerNumber(t *testing.T) {
	lx := newLexer("30")
	tok := lx.next()
	if tok.typ != tNumber || tok.val != "30" {
		t.Fatalf("got %+v", tok)
	}
}

func TestIsKeywordCaseInsensitive(t *testing.T) {
	if !isKeyword("SeLeCt", "select") {
		t.Fatalf("expected case-insensitive match")
	}
	if isKeyword("selectx", "select") {
		t.Fatalf("expected no match for different identifier")
	}
}
