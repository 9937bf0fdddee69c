package goscribe

import (
	"context"
	"net/http"

	"github.com/scribeworks/goscribe/guard"
	"github.com/scribeworks/goscribe/rest"
	"github.com/scribeworks/goscribe/session"
)

// Client defines a public type used by goscribe APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// All session mutations flow through the embedded store, which is safe for concurrent use.
type Client struct {
	config Config

	store *session.Store
	guard *guard.Guard
	http  *http.Client
	auth  *rest.AuthClient
	posts *rest.PostClient

	navigator  session.Navigator
	metrics    *Metrics
	dispatcher *eventDispatcher
}

// Session exposes the underlying session store for advanced integrations.
func (c *Client) Session() *session.Store {
	return c.store
}

// Guard exposes the route guard used to gate protected navigation.
func (c *Client) Guard() *guard.Guard {
	return c.guard
}

// HTTPClient returns the authenticated HTTP client. Requests issued through it
// carry the session credential and participate in transparent refresh.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Metrics describes the metrics operation and its observable behavior.
//
// Metrics may return an error when input validation, dependency calls, or security checks fail.
// Metrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// EventsDropped reports how many lifecycle events were discarded because the
// dispatcher buffer was full.
func (c *Client) EventsDropped() uint64 {
	return c.dispatcher.Dropped()
}

// Close drains and stops the event dispatcher. The client must not be used
// after Close returns.
func (c *Client) Close() {
	c.dispatcher.Close()
}

// Revalidate re-checks the persisted session: a valid access token passes
// without network traffic, an expired one triggers a refresh attempt, and a
// dead session is cleared. It reports whether the session is usable.
func (c *Client) Revalidate(ctx context.Context) (bool, error) {
	return c.store.Revalidate(ctx)
}

// CurrentUser returns the profile stored in the session, or nil when no
// profile has been established.
func (c *Client) CurrentUser() *UserProfile {
	snap := c.store.Snapshot()
	return snap.User
}

// recoverOnUnauthorized is the caller-side safety net for requests that come
// back 401 despite a locally valid token (server-side invalidation). It sends
// the user to the login route without touching persisted state.
func (c *Client) recoverOnUnauthorized(err error) {
	if err == nil || !rest.IsStatus(err, http.StatusUnauthorized) {
		return
	}
	if c.navigator != nil {
		c.navigator.Navigate(c.config.Routes.LoginPath)
	}
}
