// Package guard gates navigation into protected views on session validity.
//
// A [Guard] is evaluated once per navigation: it asks the session store to
// revalidate (refreshing the access token when possible), reports CHECKING while
// that is pending, and resolves to exactly one of ALLOWED or DENIED. A denial
// carries the login route with the originally requested path attached so login
// can return the user afterward.
//
// # What this package must NOT do
//
//   - Render anything. The caller owns the loading placeholder and views.
//   - Mutate the session beyond what revalidation itself does.
package guard
