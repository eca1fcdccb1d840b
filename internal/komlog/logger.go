// Package komlog implements the optional JSON-lines diagnostic log sink.
//
// What: When a connection string carries logfile=<path>, every diagnostic
// record pushed onto that DBC during connect is also appended to the file
// as one JSON object per line: {"error": ..., "time": ..., "level": ...}.
// How: go.uber.org/zap configured with its JSON encoder and a plain *os.File
// WriteSyncer gives exactly that shape without hand-rolling a line writer;
// zap's default ISO8601 time encoder satisfies the RFC3339 requirement.
// Why: The driver must never fail to connect merely because the log file
// could not be opened (a read-only filesystem, a bad path, ...); New always
// returns a usable Logger, falling back to zap.NewNop() on any failure to
// open the file.
package komlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kom2/kom2/internal/diag"
)

// Logger wraps the underlying zap logger plus the resources New opened, so
// Close can release them deterministically from SQLFreeHandle. Every line
// it writes carries the connection's correlation ID, so a log can be
// grepped back to the connection that produced it without exposing the
// driver's per-process handle IDs.
type Logger struct {
	zl            *zap.Logger
	closer        func() error
	correlationID string
}

// New opens path for appending (creating it if necessary) and returns a
// Logger writing one JSON object per line to it, every line tagged with
// correlationID. If path is empty or the file cannot be opened, the
// returned Logger is a safe no-op: callers never need to check an error.
func New(path string, correlationID string) *Logger {
	if path == "" {
		return &Logger{zl: zap.NewNop(), correlationID: correlationID}
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.LevelKey = "level"
	cfg.MessageKey = "error"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(cfg)

	sink, closeFn, err := zap.Open(path)
	if err != nil {
		return &Logger{zl: zap.NewNop(), correlationID: correlationID}
	}

	core := zapcore.NewCore(encoder, sink, zapcore.DebugLevel)
	return &Logger{zl: zap.New(core), closer: closeFn, correlationID: correlationID}
}

// CorrelationID returns the ID every line this Logger writes is tagged
// with, so a caller that only has the Logger (not the DBC handle) can
// still recover it.
func (l *Logger) CorrelationID() string {
	if l == nil {
		return ""
	}
	return l.correlationID
}

// LogError appends one JSON line for a diagnostic message at error level.
// message becomes the "error" field, matching MessageKey above.
func (l *Logger) LogError(message string, fields ...zap.Field) {
	if l == nil || l.zl == nil {
		return
	}
	if l.correlationID != "" {
		fields = append(fields, CorrelationField(l.correlationID))
	}
	l.zl.Error(message, fields...)
}

// LogDiag mirrors a diagnostic record pushed onto a DBC during connect to
// the log file: every diag.Record produced while connecting is appended,
// not just the final failure.
func (l *Logger) LogDiag(rec *diag.Record) {
	if rec == nil {
		return
	}
	l.LogError(rec.Message, zap.String("sqlstate", rec.SQLState))
}

// Close flushes and releases the underlying file, if one was opened.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	_ = l.zl.Sync()
	if l.closer != nil {
		l.closer()
	}
}

// CorrelationField is a convenience wrapper so callers don't import zap
// directly just to attach a connection's correlation ID to a log line.
func CorrelationField(id string) zap.Field {
	return zap.String("correlation_id", id)
}
