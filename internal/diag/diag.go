// Package diag implements the ODBC diagnostic record store shared by every
// handle kind (ENV, DBC, STMT, DESC).
//
// What: An append-only, 1-indexed list of {sqlstate, native, message}
// records per handle, plus the truncation-aware byte-copy helper that every
// string-output entry point in the ABI surface reuses.
// How: Push, At and Count take the store's mutex so callers never observe a
// partial push; Truncate implements the single copy-out protocol used by
// SQLGetDiagRec/SQLGetDiagField and reused by column/metadata fetches.
// Why: Centralizing the protocol once avoids eleven subtly different
// re-implementations across the ABI surface.
package diag

import "sync"

// Fixed origins the ABI surface reports verbatim; part of the observable
// contract, never paraphrased.
const (
	ClassOrigin    = "ISO 9075"
	SubclassOrigin = "ODBC 3.0"
	ConnectionName = "kom2"
	ServerName     = "inventree"
)

// Record is a single diagnostic entry attached to a handle.
type Record struct {
	SQLState string
	Native   int32
	Message  string
}

// Error implements the error interface so internal packages can return a
// *Record directly wherever a structured error is useful.
func (r *Record) Error() string {
	if r == nil {
		return ""
	}
	return r.Message
}

// New builds a diagnostic record with a formatted message.
func New(sqlstate string, native int32, message string) *Record {
	return &Record{SQLState: sqlstate, Native: native, Message: message}
}

// Store is the append-only per-handle diagnostic list.
type Store struct {
	mu      sync.Mutex
	records []*Record
}

// NewStore returns an empty diagnostic store.
func NewStore() *Store {
	return &Store{}
}

// Push appends a record. Nil records are ignored.
func (s *Store) Push(r *Record) {
	if r == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

// Clear drops all records. The ABI surface never calls it, so a handle's
// records accumulate for as long as the handle lives.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Count returns the number of records currently stored.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// At returns the 1-indexed record and the total record count. ok is false
// when recNumber is out of range; callers distinguish "too small" from
// "too large" by comparing recNumber against the returned total.
func (s *Store) At(recNumber int) (rec *Record, total int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total = len(s.records)
	if recNumber < 1 || recNumber > total {
		return nil, total, false
	}
	return s.records[recNumber-1], total, true
}

// Truncate implements the single string copy-out protocol shared by every
// outbound string parameter in the ABI surface:
//
//   - hasBuf is false (the caller passed a null output buffer): nothing is
//     copied, textLen is still the full message length, and truncated is
//     always false — the caller asked only for the length, so nothing was
//     actually lost.
//   - hasBuf is true and the message plus NUL fits in bufLen: out is the
//     full string, truncated is false.
//   - hasBuf is true and it doesn't fit (including bufLen <= 0): out is
//     truncated to at most bufLen-1 bytes (room for the NUL), truncated is
//     true.
func Truncate(s string, bufLen int, hasBuf bool) (out string, textLen int, truncated bool) {
	textLen = len(s)
	if !hasBuf {
		return "", textLen, false
	}
	if bufLen <= 0 {
		return "", textLen, true
	}
	if textLen < bufLen {
		return s, textLen, false
	}
	return s[:bufLen-1], textLen, true
}
