package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kom2/kom2/internal/inventory"
	"github.com/kom2/kom2/internal/sqlparse"
)

func newTestSetup(t *testing.T, handler http.HandlerFunc) (*inventory.Client, *inventory.CategoryIndex) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := inventory.NewClient(srv.URL, &http.Client{Timeout: 5 * time.Second})
	c.SetToken("abc")
	idx := inventory.BuildCategoryIndex([]inventory.Category{
		{PK: 59, Name: "Resistors", PathString: "Resistors"},
	})
	return c, idx
}

func TestExecuteUnconditionalSelect(t *testing.T) {
	c, idx := newTestSetup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("category") != "59" {
			t.Errorf("expected category=59, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"pk": 16, "IPN": "RES-1"}, {"pk": 17, "IPN": "RES-2"}]`))
	})

	q, err := sqlparse.Parse("SELECT * FROM Resistors")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cur, rec := Execute(context.Background(), c, idx, q)
	if rec != nil {
		t.Fatalf("Execute: %v", rec)
	}
	if cur.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2", cur.RowCount())
	}
}

func TestExecuteUnknownTable(t *testing.T) {
	c, idx := newTestSetup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("should not issue an HTTP request for an unknown table")
	})
	q, _ := sqlparse.Parse("SELECT * FROM DoesNotExist")
	_, rec := Execute(context.Background(), c, idx, q)
	if rec == nil || !strings.Contains(rec.Message, "Category does not exist") {
		t.Fatalf("got %+v", rec)
	}
}

func TestExecuteWherePkFetchesSingleRowWithMetadataAndParameters(t *testing.T) {
	c, idx := newTestSetup(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/part/16/":
			w.Write([]byte(`{"pk": 16, "IPN": "RES-1"}`))
		case r.URL.Path == "/api/part/16/metadata/":
			w.Write([]byte(`{"metadata": {"note": "hand-soldered"}}`))
		case r.URL.Path == "/api/part/parameter/":
			w.Write([]byte(`[{"pk": 1, "part": 16, "data": "6V"}]`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	})

	q, err := sqlparse.Parse("SELECT * FROM Resistors WHERE pk = 16")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cur, rec := Execute(context.Background(), c, idx, q)
	if rec != nil {
		t.Fatalf("Execute: %v", rec)
	}
	if cur.RowCount() != 1 {
		t.Fatalf("RowCount = %d, want 1", cur.RowCount())
	}
	cur.Fetch()
	metadataCol := -1
	for i, cd := range cur.Columns {
		if cd.Name == "metadata" {
			metadataCol = i + 1
		}
	}
	if metadataCol < 0 {
		t.Fatalf("metadata column missing: %+v", cur.Columns)
	}
	v, isNull, ok := cur.Value(metadataCol)
	if !ok || isNull || !strings.Contains(v, "hand-soldered") {
		t.Fatalf("metadata value = %q isNull=%v ok=%v", v, isNull, ok)
	}
}

func TestExecuteWhereNonPKColumnFilters(t *testing.T) {
	c, idx := newTestSetup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"pk": 16, "IPN": "RES-1"}, {"pk": 17, "IPN": "RES-2"}]`))
	})

	q, err := sqlparse.Parse(`SELECT * FROM Resistors WHERE IPN = 'RES-2'`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cur, rec := Execute(context.Background(), c, idx, q)
	if rec != nil {
		t.Fatalf("Execute: %v", rec)
	}
	if cur.RowCount() != 1 {
		t.Fatalf("RowCount = %d, want 1", cur.RowCount())
	}
}

func TestExecuteWhereInvalidFilterColumn(t *testing.T) {
	c, idx := newTestSetup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"pk": 16, "IPN": "RES-1"}]`))
	})

	q, err := sqlparse.Parse(`SELECT * FROM Resistors WHERE bogus = 'x'`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, rec := Execute(context.Background(), c, idx, q)
	if rec == nil || !strings.Contains(rec.Message, "Invalid filter column") {
		t.Fatalf("got %+v", rec)
	}
}

func TestExecutePKCoercionFailurePropagates(t *testing.T) {
	c, idx := newTestSetup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"pk": "sixteen", "IPN": "RES-1"}]`))
	})

	q, _ := sqlparse.Parse("SELECT * FROM Resistors")
	_, rec := Execute(context.Background(), c, idx, q)
	if rec == nil || !strings.Contains(rec.Message, "'pk' is not a number") {
		t.Fatalf("got %+v", rec)
	}
}
