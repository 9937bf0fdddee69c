// Package transport implements the authenticated request pipeline: an
// http.RoundTripper that injects a valid bearer token ahead of every outgoing
// API call, refreshing on demand and forcing session recovery on unrecoverable
// auth failure.
//
// # Pre-flight protocol
//
// Per request, except for the fixed allow-list of unauthenticated paths: a valid
// access token is attached as-is; an expired access token with a valid refresh
// token triggers a refresh through the session store's shared in-flight call; an
// expired access token with no usable refresh token aborts the request and fires
// the recovery path. A session that never held tokens proceeds without
// credential and lets the backend answer with its own authorization error.
//
// # What this package must NOT do
//
//   - Inspect or retry responses. A 401 seen by a caller is handled by the
//     calling flow, not here.
//   - Swallow transport errors. Network failures pass through untouched.
package transport
