package goscribe

import (
	"errors"

	"github.com/scribeworks/goscribe/session"
	"github.com/scribeworks/goscribe/token"
	"github.com/scribeworks/goscribe/transport"
)

var (
	// ErrTokenMalformed is an exported constant or variable used by the blog client.
	ErrTokenMalformed = token.ErrMalformed
	// ErrRefreshRejected is an exported constant or variable used by the blog client.
	ErrRefreshRejected = session.ErrRefreshRejected
	// ErrSessionExpired is an exported constant or variable used by the blog client.
	ErrSessionExpired = transport.ErrSessionExpired
	// ErrNotLoggedIn is an exported constant or variable used by the blog client.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrUnauthorizedAccess is an exported constant or variable used by the blog client.
	ErrUnauthorizedAccess = errors.New("unauthorized access to post")
	// ErrDeleteRetriesExhausted is an exported constant or variable used by the blog client.
	ErrDeleteRetriesExhausted = errors.New("post deletion failed after retry")
	// ErrInvalidInput is an exported constant or variable used by the blog client.
	ErrInvalidInput = errors.New("invalid input")
	// ErrClientNotReady is an exported constant or variable used by the blog client.
	ErrClientNotReady = errors.New("client not initialized")
)
