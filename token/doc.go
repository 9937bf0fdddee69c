// Package token decodes bearer token claims and answers expiry questions for the
// blog client.
//
// # Design
//
// Tokens are treated as opaque credentials minted by the backend. The [Inspector]
// parses the JWT payload WITHOUT verifying any cryptographic signature: the client
// never holds verification keys and never makes trust decisions from claims. The
// only claim it acts on is expiry, resolved from exp with an expiresIn fallback.
//
// # What this package must NOT do
//
//   - Verify signatures or validate issuer/audience claims.
//   - Perform I/O. Inspection is pure computation over the token string.
//   - Import any other goscribe package.
package token
