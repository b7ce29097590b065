// Package diag defines the problem model shared by the configuration pipeline.
//
// # Purpose
//
//   - Provide deterministic data structures for problems found while a
//     project configuration is assembled and applied: unknown variables,
//     malformed values, unreadable overlay files, missing target settings.
//   - Offer light-weight utilities (Reporter, Bag) so producers can emit
//     problems without coupling to storage or formatting.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – Location naming the config file (or the command line), an
//     optional line and the offending option.
//
// # Collections
//
// Bag is append-only: producers Add, consumers read Items or take a Snapshot.
// Merge/AddAll grow the limit so that nothing collected upstream is lost when
// one stage hands its problems to the next.
//
// Items are never reordered or dropped once added. Terminal rendering lives
// in internal/diagfmt and LSP publishing in internal/lsp; the only formatter
// here is FormatShortDiagnostics, which sorts a copy for test output.
package diag
