// Package groups exposes the provider's functional areas (mailboxes, email
// addresses, domains, websites, databases, ...) as typed objects.
//
// Every group is constructed bound to exactly one Session and keeps that
// binding for its lifetime; all methods route through the Session's
// normalize -> guard -> transport -> log pipeline, so each attempted action
// lands in the run log whatever its outcome.
package groups

import (
	"context"

	"github.com/hostersuite/wfclient/internal/session"
)

// listEntries runs an inventory query and shapes the result into entry maps.
func listEntries(ctx context.Context, s *session.Session, op string) ([]map[string]any, error) {
	res, err := s.Query(ctx, op)
	if err != nil {
		return nil, err
	}
	items, _ := res.([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// putList adds a collection argument only when it has elements, so catalog
// defaults cover the empty case.
func putList(kw map[string]any, key string, values []string) {
	if len(values) > 0 {
		kw[key] = values
	}
}

// putString adds a string argument only when non-empty.
func putString(kw map[string]any, key, value string) {
	if value != "" {
		kw[key] = value
	}
}
