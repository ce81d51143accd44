// Package session binds credentials and a run log to one logical connection
// against a remote server, and drives every call through the
// normalize -> guard -> transport -> log pipeline.
//
// A Session is owned by a single goroutine. Workers wanting parallelism run
// one Session each; the only cross-session coordination point is a shared
// report file, which the report package serializes.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hostersuite/wfclient/internal/rpc"
	"github.com/hostersuite/wfclient/internal/runlog"
	"github.com/hostersuite/wfclient/internal/schema"
)

// Session is one logical connection: credentials, a provider session ID,
// and the ordered call record log for the run.
type Session struct {
	caller  rpc.Caller
	catalog *schema.Catalog
	log     *runlog.Logger

	sessionID string
	username  string
	account   map[string]any
}

// New creates a Session over the given transport.
func New(caller rpc.Caller, catalog *schema.Catalog, log *runlog.Logger) *Session {
	return &Session{caller: caller, catalog: catalog, log: log}
}

// Login authenticates against the remote service. Credentials are opaque to
// this client; rejection by the provider surfaces as *AuthError.
func (s *Session) Login(ctx context.Context, username, password string) error {
	res, err := s.caller.Call(ctx, "login", []any{username, password})
	if err != nil {
		return &AuthError{Username: username, Err: err}
	}

	// The provider returns [session_id, account-struct].
	pair, ok := res.([]any)
	if !ok || len(pair) < 2 {
		return &AuthError{Username: username, Err: fmt.Errorf("unexpected login response %T", res)}
	}
	sessionID, ok := pair[0].(string)
	if !ok {
		return &AuthError{Username: username, Err: fmt.Errorf("unexpected session id %T", pair[0])}
	}
	account, _ := pair[1].(map[string]any)

	s.sessionID = sessionID
	s.username = username
	s.account = account

	slog.Info("logged in", "user", username, "server", s.WebServer())
	return nil
}

// LoggedIn reports whether Login has succeeded.
func (s *Session) LoggedIn() bool { return s.sessionID != "" }

// Username returns the control panel username used at login.
func (s *Session) Username() string { return s.username }

// WebServer returns the account's home server name, if the provider
// reported one.
func (s *Session) WebServer() string {
	if v, ok := s.account["web_server"].(string); ok {
		return v
	}
	return ""
}

// Catalog returns the operation catalog this session dispatches against.
func (s *Session) Catalog() *schema.Catalog { return s.catalog }

// Snapshot returns the session's call records in call order.
func (s *Session) Snapshot() []runlog.Record { return s.log.Snapshot() }

// Log returns the session's run logger.
func (s *Session) Log() *runlog.Logger { return s.log }

// Call runs one operation through the full pipeline with a fresh guard
// snapshot. Batch helpers that guard several targets against one inventory
// use Batch instead.
func (s *Session) Call(ctx context.Context, op string, kw schema.Args) (any, error) {
	return s.Batch().Call(ctx, op, kw)
}

// Query dispatches an inventory (list) operation and returns the decoded
// result. Inventory reads are not call records: the run log captures
// attempted administrative actions, not lookups.
func (s *Session) Query(ctx context.Context, op string) (any, error) {
	spec, ok := s.catalog.Lookup(op)
	if !ok {
		_, err := s.catalog.Normalize(op, nil)
		return nil, err
	}
	if len(spec.Params) != 0 {
		return nil, fmt.Errorf("%s is not an inventory operation", op)
	}
	return s.caller.Call(ctx, op, []any{s.sessionID})
}
