// Package connstr parses the ODBC driver connection string.
//
// What: "key1=value1;key2=value2;..." with case-insensitive keys and
// verbatim (unquoted) values.
// How: A small hand-written key=value scanner, parsing ';'-joined pairs
// into a flat map. Keys are case-folded with golang.org/x/text/cases
// rather than strings.ToLower so non-ASCII key variants fold the same way
// a real ODBC driver manager's string handling would.
// Why: The connection string is the only configuration surface this driver
// has; keeping its parser free of any validation policy lets the bootstrapper
// own the fixed, observable validation order.
package connstr

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// fold performs Unicode case-folding for connection-string keys; this is
// what every ODBC driver manager's "case-insensitive keyword" language
// really means, as opposed to ASCII-only strings.ToLower.
var fold = cases.Fold()

// Params holds every recognized key, verbatim, with no presence validation
// applied. Absence is represented by the zero value.
type Params struct {
	Driver      string
	Server      string
	APIToken    string
	Username    string
	Password    string
	HTTPTimeout time.Duration
	HasTimeout  bool
	LogFile     string
}

// DefaultHTTPTimeout is used when httptimeout is absent from the connection
// string.
const DefaultHTTPTimeout = 30 * time.Second

// HasToken reports whether an API token was supplied.
func (p Params) HasToken() bool { return p.APIToken != "" }

// HasUserPass reports whether both username and password were supplied.
func (p Params) HasUserPass() bool { return p.Username != "" && p.Password != "" }

// HasCredentials reports whether either credential form is present.
func (p Params) HasCredentials() bool { return p.HasToken() || p.HasUserPass() }

// Timeout returns the parsed httptimeout, or DefaultHTTPTimeout if absent.
func (p Params) Timeout() time.Duration {
	if p.HasTimeout {
		return p.HTTPTimeout
	}
	return DefaultHTTPTimeout
}

// Parse splits a ';'-separated key=value connection string into Params.
// Its only failure is a malformed httptimeout value, reported via err so
// the caller can turn it into a diagnostic. Unknown keys are ignored and
// everything else is accepted as-is (the grammar has no quoting, so there
// is nothing else to reject syntactically).
func Parse(connStr string) (Params, error) {
	var p Params
	for _, part := range strings.Split(connStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		key = fold.String(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "driver":
			p.Driver = value
		case "server":
			p.Server = value
		case "apitoken":
			p.APIToken = value
		case "username":
			p.Username = value
		case "password":
			p.Password = value
		case "logfile":
			p.LogFile = value
		case "httptimeout":
			d, err := time.ParseDuration(value)
			if err != nil {
				return p, err
			}
			p.HTTPTimeout = d
			p.HasTimeout = true
		}
	}
	return p, nil
}
