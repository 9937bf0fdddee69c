// Package events provides the session lifecycle event model and sink
// implementations used by the root package's dispatcher.
//
// # Architecture boundaries
//
// This package owns the event shape and delivery primitives. Emission policy
// (buffering, drop-if-full, shutdown draining) lives in the root dispatcher.
//
// # What this package must NOT do
//
//   - Import goscribe or any sibling package.
//   - Block the emitting flow beyond the sink's own contract.
package events
