// Package schema defines the provider operation catalog and the keyword
// argument normalizer.
//
// The catalog is configuration, not code: it is an embedded CUE document
// (catalog.cue) describing, for every remote operation, the ordered
// parameter list, per-parameter defaults, how collection-valued parameters
// map onto the provider's positional calling convention, and whether the
// operation is protected by an existence guard. Updating the client for a
// provider API change means editing catalog.cue against the provider's API
// reference; the CUE schema rejects malformed entries at load time.
//
// The normalizer turns a friendly keyword-argument map into the exact
// positional argument sequence the provider expects. Unknown keywords are
// rejected rather than ignored: a typoed argument name must fail loudly
// instead of silently dropping data.
package schema
