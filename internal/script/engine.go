// Package script runs operator-written JavaScript against a logged-in
// session. Scripts drive the provider through a single `wf` global; every
// call they make flows through the normal normalize, guard and run-log
// pipeline.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dop251/goja"

	"github.com/hostersuite/wfclient/internal/groups"
	"github.com/hostersuite/wfclient/internal/schema"
	"github.com/hostersuite/wfclient/internal/session"
)

// Engine is a JavaScript runtime bound to one session.
type Engine struct {
	vm      *goja.Runtime
	session *session.Session
	ctx     context.Context
	stdout  io.Writer
}

// New builds an engine whose `wf` global targets s. The context governs
// every provider call a script makes and interrupts long-running scripts
// when cancelled.
func New(ctx context.Context, s *session.Session, stdout io.Writer) *Engine {
	e := &Engine{
		vm:      goja.New(),
		session: s,
		ctx:     ctx,
		stdout:  stdout,
	}
	e.setupGlobals()
	return e
}

// RunFile reads and executes a script. A script that cannot be read is an
// operator mistake, distinct from call failures inside a readable script.
func (e *Engine) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return e.RunSource(path, string(src))
}

// RunSource executes script source under the given name.
//
// Provider faults and guard skips inside the script do not abort it; they
// are already captured in the run log and the call simply yields null.
// Malformed calls (unknown operation, bad arguments) throw, aborting the
// script, since continuing would only compound the mistake.
func (e *Engine) RunSource(name, src string) error {
	done := make(chan struct{})
	go func() {
		select {
		case <-e.ctx.Done():
			e.vm.Interrupt(e.ctx.Err())
		case <-done:
		}
	}()
	defer close(done)

	if _, err := e.vm.RunScript(name, src); err != nil {
		var ie *goja.InterruptedError
		if errors.As(err, &ie) {
			return fmt.Errorf("script interrupted: %v", ie.Value())
		}
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// call dispatches one operation. The returned error is thrown into the
// script; anything already handled by the run log is swallowed so the
// script keeps going.
func (e *Engine) call(op string, kw map[string]any) (any, error) {
	res, err := e.session.Call(e.ctx, op, schema.Args(kw))
	if err != nil {
		if schema.IsSchemaError(err) {
			return nil, err
		}
		if e.ctx.Err() != nil {
			return nil, err
		}
		return nil, nil
	}
	return res, nil
}

func (e *Engine) query(op string) (any, error) {
	return e.session.Query(e.ctx, op)
}

func (e *Engine) setupGlobals() {
	email := groups.NewEmail(e.session)

	wf := map[string]any{
		"call":  e.call,
		"query": e.query,
		"username": func() string {
			return e.session.Username()
		},
		"webServer": func() string {
			return e.session.WebServer()
		},
		"createEmails": func(domain string, prefixes, targets []string) error {
			return email.CreateBatch(e.ctx, domain, prefixes, targets)
		},
		"deleteEmails": func(domain string, prefixes []string) error {
			return email.DeleteBatch(e.ctx, domain, prefixes)
		},
		"snapshot": func() []map[string]any {
			records := e.session.Snapshot()
			out := make([]map[string]any, len(records))
			for i, r := range records {
				out[i] = map[string]any{
					"timestamp": r.Timestamp.Format("2006-01-02 15:04:05"),
					"operation": r.Operation,
					"status":    string(r.Status),
					"message":   r.Message,
				}
			}
			return out
		},
	}
	e.vm.Set("wf", wf)

	e.vm.Set("print", func(args ...any) {
		for i, a := range args {
			if i > 0 {
				fmt.Fprint(e.stdout, " ")
			}
			fmt.Fprint(e.stdout, a)
		}
		fmt.Fprintln(e.stdout)
	})

	e.vm.Set("log", map[string]any{
		"info": func(msg string) {
			slog.Info(msg, "source", "script")
		},
		"error": func(msg string) {
			slog.Error(msg, "source", "script")
		},
	})
}
