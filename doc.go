// Package goscribe provides a Go client SDK for the Scribe blog API with managed
// access/refresh token lifecycle, a persisted single-identity session, an
// authenticated HTTP request pipeline, and route-level session gating.
//
// The package is designed for long-lived client processes: Client methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goscribe is the public surface. It exposes [Client], [Builder], [Config], and
// value types (Post, UserProfile, MetricsSnapshot, etc.). Token inspection lives in
// token/, session state and persistence in session/, the request pipeline in
// transport/, navigation gating in guard/, and raw endpoint bindings in rest/.
// Event dispatch coordination lives under internal/ and is never exported directly.
//
// # What this package must NOT do
//
//   - Issue tokens or verify token signatures. Claims are decoded, never trusted
//     cryptographically; expiry is the only claim the client acts on.
//   - Persist anything beyond the single session record.
//   - Surface auth failures as raw errors to rendering layers: expired or
//     unrecoverable sessions resolve into a wipe-and-redirect side effect.
//
// # Session contract
//
// Exactly one authenticated identity exists at a time. The session record is read
// once at startup, overwritten on every mutation, and fully erased by the recovery
// path. Concurrent refresh attempts are collapsed into a single in-flight call.
package goscribe
