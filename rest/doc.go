// Package rest binds the Scribe backend's REST endpoints: authentication
// (login, signup, refresh, profile) and posts (CRUD).
//
// # Architecture boundaries
//
// This package translates Go calls into HTTP requests and decodes responses. It
// holds no session state and makes no authorization decisions: credentials are
// attached by the transport pipeline installed in the http.Client it is given,
// and ownership checks live in the root package's flows.
//
// # What this package must NOT do
//
//   - Read or mutate the session store.
//   - Retry requests. Retry policy belongs to the calling flow.
//   - Decode or inspect tokens.
package rest
