// Package runlog records the outcome of every attempted remote call.
//
// The log is the domain record of a run, distinct from operator diagnostics
// (slog): reports are rendered from it and scripts may inspect it to decide
// further action. Storage is memory-only, so recording is infallible by
// construction.
package runlog

import (
	"fmt"
	"time"
)

// Status of one attempted call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Record is one logged outcome of an attempted (or guard-skipped) remote
// operation. Immutable once created.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Operation string    `json:"operation"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
}

// String renders the record in timestamp | OPERATION | message form.
func (r Record) String() string {
	return fmt.Sprintf("%s | %s | %s | %s", r.Timestamp.Format(time.RFC3339), r.Operation, r.Status, r.Message)
}

// Logger is an append-only, ordered sequence of call records.
//
// A Logger belongs to exactly one Session and is only appended to by the
// goroutine driving that Session, so it carries no locking.
type Logger struct {
	records []Record
	now     func() time.Time
}

// New creates an empty logger stamping records with time.Now.
func New() *Logger {
	return NewWithClock(time.Now)
}

// NewWithClock creates a logger with an injected clock, for deterministic
// timestamps in tests.
func NewWithClock(now func() time.Time) *Logger {
	return &Logger{now: now}
}

// Record appends one call record with the current timestamp. Never fails.
func (l *Logger) Record(operation string, status Status, message string) Record {
	rec := Record{
		Timestamp: l.now(),
		Operation: operation,
		Status:    status,
		Message:   message,
	}
	l.records = append(l.records, rec)
	return rec
}

// Snapshot returns the records in call order. The returned slice is a copy;
// mutating it does not affect the log.
func (l *Logger) Snapshot() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Logger) Len() int { return len(l.records) }

// Failures returns only the failure-status records, in call order.
func (l *Logger) Failures() []Record {
	var out []Record
	for _, r := range l.records {
		if r.Status == StatusFailure {
			out = append(out, r)
		}
	}
	return out
}
