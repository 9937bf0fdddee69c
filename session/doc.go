// Package session owns the client's single authenticated identity: the in-memory
// session state, its durable single-record persistence, and the revalidation and
// refresh protocol that keeps the access token usable.
//
// # Design
//
// The [Store] is an explicit dependency-injected object, not ambient global state.
// It holds access/refresh tokens plus the user profile, persists through a
// [Repository] on every mutation, and resolves expiry through a token inspector.
// Refresh calls are delegated to a [Refresher] and collapsed into a single
// in-flight call regardless of how many goroutines demand one concurrently.
//
// Two teardown paths exist and are intentionally distinct: [Store.Clear] is the
// voluntary logout (state reset, empty record persisted) while [Store.Recover] is
// the unrecoverable-failure path (persisted record erased entirely, caller
// redirected to the login route).
//
// # What this package must NOT do
//
//   - Verify token signatures or mint tokens.
//   - Perform HTTP. Network refresh goes through the injected [Refresher].
//   - Hold more than one identity. No concurrent-session support.
package session
