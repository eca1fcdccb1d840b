// Package korrelation hands out short-lived identifiers used to tie a log
// line back to the connection that produced it, without exposing the
// driver's internal handle IDs (small per-process counters that start again
// at 1 in every process, so they do not identify a connection across logs).
package korrelation

import "github.com/google/uuid"

// New returns a fresh correlation ID for a connection.
func New() string {
	return uuid.NewString()
}
