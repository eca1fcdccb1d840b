package sqlparse

import (
	"strings"
	"testing"
)

func TestParseStarFromTable(t *testing.T) {
	q, err := Parse("SELECT * FROM Resistors")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Star || q.Table != "Resistors" || q.HasWhere {
		t.Fatalf("got %+v", q)
	}
}

func TestParseTableWithSlash(t *testing.T) {
	q, err := Parse(`SELECT * FROM Capacitors/Aluminium`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Table != "Capacitors/Aluminium" {
		t.Fatalf("Table = %q", q.Table)
	}
}

func TestParseCaseInsensitiveKeywords(t *testing.T) {
	q, err := Parse("select * from Resistors where pk = 30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.HasWhere || q.WhereColumn != "pk" || q.WhereValue.Int != 30 {
		t.Fatalf("got %+v", q)
	}
}

func TestParseWhereIntLiteral(t *testing.T) {
	q, err := Parse("SELECT * FROM Resistors WHERE pk = 30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.HasWhere || q.WhereColumn != "pk" || q.WhereValue.IsString || q.WhereValue.Int != 30 {
		t.Fatalf("got %+v", q.WhereValue)
	}
}

func TestParseWhereStringLiteral(t *testing.T) {
	q, err := Parse(`SELECT * FROM Resistors WHERE IPN = 'RES-000014-00'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.WhereValue.IsString || q.WhereValue.Str != "RES-000014-00" {
		t.Fatalf("got %+v", q.WhereValue)
	}
}

func TestParseNamedColumnListRejected(t *testing.T) {
	_, err := Parse("SELECT id FROM ATable")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "* expected, got: id") {
		t.Fatalf("error = %q, want substring %q", err.Error(), "* expected, got: id")
	}
}

func TestParseMissingFrom(t *testing.T) {
	_, err := Parse("SELECT *")
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestParseTrailingGarbage(t *testing.T) {
	_, err := Parse("SELECT * FROM Resistors extra")
	if err == nil {
		t.Fatalf("expected an error for trailing input")
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse("")
	if err == nil {
		t.Fatalf("expected an error")
	}
}
