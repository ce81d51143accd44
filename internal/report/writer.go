package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hostersuite/wfclient/internal/runlog"
)

// IOError reports a report file that could not be read or written. Surfaced
// to the caller immediately: an unwritable report path is an environment
// problem, not a call failure.
type IOError struct {
	Path string
	Op   string // "read" | "write"
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("report %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error { return e.Err }

// IsIOError returns true if err is (or wraps) a report IO error.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}

// Sessions may run on separate goroutines but share one report path; file
// writes are serialized per path so interleaved writes cannot corrupt the
// document. This is the only cross-session coordination point in the client.
var (
	pathMuMu sync.Mutex
	pathMu   = map[string]*sync.Mutex{}
)

func lockPath(path string) *sync.Mutex {
	// Different spellings of one file ("run.html", "./run.html", absolute)
	// must share a mutex, so the key is the absolute cleaned path.
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	pathMuMu.Lock()
	defer pathMuMu.Unlock()
	mu, ok := pathMu[path]
	if !ok {
		mu = &sync.Mutex{}
		pathMu[path] = mu
	}
	return mu
}

// WriteFile writes records to an HTML report at path.
//
// If the file does not exist (or appendMode is false), a complete document
// is written. If appendMode is true and the file exists, the new rows are
// spliced into the existing document's table, so multiple sessions can
// accumulate into one shared report without nesting document wrappers.
func WriteFile(path string, records []runlog.Record, appendMode bool) error {
	mu := lockPath(path)
	mu.Lock()
	defer mu.Unlock()

	if appendMode {
		existing, err := os.ReadFile(path)
		switch {
		case err == nil:
			return appendRows(path, existing, records)
		case !os.IsNotExist(err):
			return &IOError{Path: path, Op: "read", Err: err}
		}
		// Fall through: nothing to append to yet.
	}

	doc, err := Render(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return &IOError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// appendRows splices rendered rows into an existing document just before
// the table body close marker.
func appendRows(path string, existing []byte, records []runlog.Record) error {
	idx := bytes.Index(existing, []byte(tbodyClose))
	if idx < 0 {
		return &IOError{
			Path: path,
			Op:   "write",
			Err:  fmt.Errorf("existing file is not a report document (missing %q)", tbodyClose),
		}
	}

	rows, err := RenderRows(records)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(existing) + len(rows))
	buf.Write(existing[:idx])
	buf.Write(rows)
	buf.Write(existing[idx:])

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &IOError{Path: path, Op: "write", Err: err}
	}
	return nil
}
