// Package testutil provides shared test doubles: a scriptable in-memory
// transport and a deterministic clock.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Call is one dispatched (operation, args) pair seen by the fake transport.
type Call struct {
	Op   string
	Args []any
}

// FakeCaller is an in-memory transport collaborator. Inventories and
// per-operation responses are configured up front; every dispatched call is
// recorded for assertion.
//
// Thread-safe so tests can drive several sessions concurrently.
type FakeCaller struct {
	mu sync.Mutex

	// SessionID is returned from login along with Account.
	SessionID string
	Account   map[string]any

	// Inventories maps a list operation to the entries it returns.
	Inventories map[string][]map[string]any

	// Results maps an operation to a canned result value.
	Results map[string]any

	// Faults maps an operation to an error returned instead of a result.
	Faults map[string]error

	calls []Call
}

// NewFakeCaller returns a fake transport with a logged-in-able default
// account.
func NewFakeCaller() *FakeCaller {
	return &FakeCaller{
		SessionID:   "session-1",
		Account:     map[string]any{"username": "alice", "web_server": "Web100"},
		Inventories: make(map[string][]map[string]any),
		Results:     make(map[string]any),
		Faults:      make(map[string]error),
	}
}

// Call implements rpc.Caller.
func (f *FakeCaller) Call(_ context.Context, op string, args []any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: op, Args: args})

	if err, ok := f.Faults[op]; ok {
		return nil, err
	}

	if op == "login" {
		if len(args) != 2 {
			return nil, fmt.Errorf("login expects 2 args, got %d", len(args))
		}
		return []any{f.SessionID, f.Account}, nil
	}

	if entries, ok := f.Inventories[op]; ok {
		out := make([]any, len(entries))
		for i, e := range entries {
			m := make(map[string]any, len(e))
			for k, v := range e {
				m[k] = v
			}
			out[i] = m
		}
		return out, nil
	}

	if res, ok := f.Results[op]; ok {
		return res, nil
	}
	return "OK", nil
}

// Calls returns every dispatched call in order.
func (f *FakeCaller) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times op was dispatched.
func (f *FakeCaller) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// AddInventory appends an entry to a list operation's inventory.
func (f *FakeCaller) AddInventory(listOp string, entry map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Inventories[listOp] = append(f.Inventories[listOp], entry)
}

// TickingClock returns a clock starting just after base that advances one
// second per call, for deterministic record timestamps.
func TickingClock(base time.Time) func() time.Time {
	t := base
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}
