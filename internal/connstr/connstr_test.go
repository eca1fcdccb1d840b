package connstr

import (
	"testing"
	"time"
)

func TestParseBasic(t *testing.T) {
	p, err := Parse("Driver=kom2;server=http://example.invalid;apitoken=abc123;HttpTimeout=5s;LogFile=/tmp/x.log")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Driver != "kom2" {
		t.Errorf("Driver = %q", p.Driver)
	}
	if p.Server != "http://example.invalid" {
		t.Errorf("Server = %q", p.Server)
	}
	if p.APIToken != "abc123" {
		t.Errorf("APIToken = %q", p.APIToken)
	}
	if !p.HasTimeout || p.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v hasTimeout=%v", p.HTTPTimeout, p.HasTimeout)
	}
	if p.LogFile != "/tmp/x.log" {
		t.Errorf("LogFile = %q", p.LogFile)
	}
}

func TestParseCaseInsensitiveKeys(t *testing.T) {
	p, err := Parse("SERVER=asdf;UserName=bob;PASSWORD=secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Server != "asdf" || p.Username != "bob" || p.Password != "secret" {
		t.Fatalf("got %+v", p)
	}
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.HasCredentials() || p.Server != "" {
		t.Fatalf("expected zero-value params, got %+v", p)
	}
}

func TestParseInvalidTimeout(t *testing.T) {
	if _, err := Parse("httptimeout=notaduration"); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestHasCredentials(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		want bool
	}{
		{"none", Params{}, false},
		{"token only", Params{APIToken: "t"}, true},
		{"user only", Params{Username: "u"}, false},
		{"user+pass", Params{Username: "u", Password: "p"}, true},
	}
	for _, c := range cases {
		if got := c.p.HasCredentials(); got != c.want {
			t.Errorf("%s: HasCredentials() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTimeoutDefault(t *testing.T) {
	p := Params{}
	if p.Timeout() != DefaultHTTPTimeout {
		t.Fatalf("expected default timeout, got %v", p.Timeout())
	}
}
