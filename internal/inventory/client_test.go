package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, &http.Client{Timeout: 5 * time.Second}), srv
}

func TestFetchTokenSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "asdf" || pass != "asdf" {
			t.Errorf("unexpected basic auth: %q %q %v", user, pass, ok)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token": "0123456789012345678901234567890123456789"}`))
	})

	if err := c.FetchToken(context.Background(), "asdf", "asdf"); err != nil {
		t.Fatalf("FetchToken: %v", err)
	}
	if c.token != "0123456789012345678901234567890123456789" {
		t.Fatalf("token = %q", c.token)
	}
}

func TestFetchTokenUnauthorized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := c.FetchToken(context.Background(), "asdf", "asdf")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected error containing 401, got %v", err)
	}
}

func TestFetchCategories(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/part/category/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token abc" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"pk": 6, "name": "Capacitors", "parent": null, "pathstring": "Capacitors"},
			{"pk": 8, "name": "Aluminium", "parent": 6, "pathstring": "Capacitors/Aluminium"}
		]`))
	})
	c.SetToken("abc")

	cats, err := c.FetchCategories(context.Background())
	if err != nil {
		t.Fatalf("FetchCategories: %v", err)
	}
	if len(cats) != 2 || cats[1].PathString != "Capacitors/Aluminium" {
		t.Fatalf("got %+v", cats)
	}
}

func TestFetchPartsWithCategoryFilter(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("category") != "59" {
			t.Errorf("expected category=59, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"pk": 16, "IPN": "RES-1"}]`))
	})
	c.SetToken("abc")

	cat := int64(59)
	parts, err := c.FetchParts(context.Background(), &cat)
	if err != nil {
		t.Fatalf("FetchParts: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("got %+v", parts)
	}
}

func TestFetchPartMetadata(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/part/30/metadata/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"metadata": {"foo": "bar"}}`))
	})
	c.SetToken("abc")

	md, err := c.FetchPartMetadata(context.Background(), 30)
	if err != nil {
		t.Fatalf("FetchPartMetadata: %v", err)
	}
	if md["foo"] != "bar" {
		t.Fatalf("got %+v", md)
	}
}

func TestFetchPartParameters(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/part/parameter/" || r.URL.Query().Get("part") != "30" {
			t.Errorf("unexpected request: %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		w.Write([]byte(`[{"pk": 1, "part": 30, "data": "6V"}]`))
	})
	c.SetToken("abc")

	params, err := c.FetchPartParameters(context.Background(), 30)
	if err != nil {
		t.Fatalf("FetchPartParameters: %v", err)
	}
	if len(params) != 1 || params[0]["data"] != "6V" {
		t.Fatalf("got %+v", params)
	}
}
