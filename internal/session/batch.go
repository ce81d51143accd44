package session

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"github.com/hostersuite/wfclient/internal/runlog"
	"github.com/hostersuite/wfclient/internal/schema"
)

// Batch runs guarded operations against a cached inventory snapshot.
//
// The existence guard fetches each inventory at most once per batch, not
// once per target: creating ten standard email prefixes issues one
// list_emails call, not ten. Snapshots live only as long as the batch.
type Batch struct {
	s         *Session
	snapshots map[string][]any
}

// Batch starts a batch sharing guard snapshots across its calls.
func (s *Session) Batch() *Batch {
	return &Batch{s: s, snapshots: make(map[string][]any, 2)}
}

// Call runs one operation through normalize -> guard -> transport -> log.
//
// Schema errors are the caller's mistake: they surface immediately and the
// call is never dispatched or recorded. Everything that reaches the provider
// (or is suppressed by the guard) produces exactly one call record, so a
// fault does not halt subsequent independent operations: the error is both
// recorded and returned, and the caller chooses whether to stop.
func (b *Batch) Call(ctx context.Context, op string, kw schema.Args) (any, error) {
	spec, ok := b.s.catalog.Lookup(op)
	if !ok {
		_, err := b.s.catalog.Normalize(op, kw)
		return nil, err
	}

	args, err := spec.Normalize(kw)
	if err != nil {
		return nil, err
	}

	if spec.Guard != nil {
		proceed, err := b.checkGuard(ctx, spec, kw)
		if err != nil {
			return nil, err
		}
		if !proceed {
			return nil, nil
		}
	}

	res, err := b.dispatch(ctx, op, args)
	if err == nil && spec.Guard != nil {
		b.noteDispatch(spec, kw)
	}
	return res, err
}

// dispatch sends the normalized call and records its outcome.
func (b *Batch) dispatch(ctx context.Context, op string, args []any) (any, error) {
	full := make([]any, 0, len(args)+1)
	full = append(full, b.s.sessionID)
	full = append(full, args...)

	slog.Debug("dispatching", "op", op, "args", len(args))
	res, err := b.s.caller.Call(ctx, op, full)
	if err != nil {
		b.s.log.Record(op, runlog.StatusFailure, err.Error())
		return nil, err
	}
	b.s.log.Record(op, runlog.StatusSuccess, formatResult(res))
	return res, nil
}

// checkGuard decides whether a guarded operation may proceed. A violated
// precondition is not an error: it is recorded as a failure and the batch
// moves on to its remaining targets.
func (b *Batch) checkGuard(ctx context.Context, spec schema.Operation, kw schema.Args) (proceed bool, err error) {
	g := spec.Guard

	target := guardTarget(spec, kw)
	snapshot, err := b.inventory(ctx, g.List)
	if err != nil {
		// The precondition could not be evaluated at all; record and
		// surface, same as a fault on the operation itself.
		b.s.log.Record(spec.Name, runlog.StatusFailure,
			fmt.Sprintf("inventory query %s failed: %v", g.List, err))
		return false, err
	}

	exists := entryExists(snapshot, g.Field, target)
	switch {
	case g.Mode == schema.GuardAbsent && exists:
		b.s.log.Record(spec.Name, runlog.StatusFailure,
			fmt.Sprintf("entity already exists: '%s'", target))
		return false, nil
	case g.Mode == schema.GuardExists && !exists:
		b.s.log.Record(spec.Name, runlog.StatusFailure,
			fmt.Sprintf("entity does not exist: '%s'", target))
		return false, nil
	}
	return true, nil
}

// noteDispatch folds a successful guarded mutation into the cached
// inventory snapshot, so later calls in the same batch see what the batch
// itself just created or deleted. Repeating a create skips the second
// attempt, and a delete right after its create still dispatches, all
// without a second inventory fetch.
func (b *Batch) noteDispatch(spec schema.Operation, kw schema.Args) {
	g := spec.Guard
	snapshot, ok := b.snapshots[g.List]
	if !ok {
		return
	}

	target := guardTarget(spec, kw)
	switch g.Mode {
	case schema.GuardAbsent:
		b.snapshots[g.List] = append(snapshot, map[string]any{g.Field: target})
	case schema.GuardExists:
		want := norm.NFC.String(target)
		kept := snapshot[:0]
		for _, entry := range snapshot {
			if m, ok := entry.(map[string]any); ok {
				if v, ok := m[g.Field].(string); ok && norm.NFC.String(v) == want {
					continue
				}
			}
			kept = append(kept, entry)
		}
		b.snapshots[g.List] = kept
	}
}

// inventory returns the cached snapshot for a list operation, fetching it
// on first use within the batch.
func (b *Batch) inventory(ctx context.Context, listOp string) ([]any, error) {
	if snap, ok := b.snapshots[listOp]; ok {
		return snap, nil
	}
	res, err := b.s.caller.Call(ctx, listOp, []any{b.s.sessionID})
	if err != nil {
		return nil, err
	}
	snap, _ := res.([]any)
	b.snapshots[listOp] = snap
	return snap, nil
}

// guardTarget extracts the guarded entity name from the keyword map,
// falling back to the parameter's default.
func guardTarget(spec schema.Operation, kw schema.Args) string {
	if v, ok := kw[spec.Guard.Param]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	for _, p := range spec.Params {
		if p.Name == spec.Guard.Param {
			if s, ok := p.Default.(string); ok {
				return s
			}
		}
	}
	return ""
}

// entryExists reports whether any inventory entry carries the target value
// in the named field. Entity names are NFC-normalized before comparison so
// differently-composed Unicode spellings of one name compare equal.
func entryExists(snapshot []any, field, target string) bool {
	want := norm.NFC.String(target)
	for _, entry := range snapshot {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		v, ok := m[field].(string)
		if !ok {
			continue
		}
		if norm.NFC.String(v) == want {
			return true
		}
	}
	return false
}
