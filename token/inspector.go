package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned by [Inspector.Decode] when the token cannot be parsed.
var ErrMalformed = errors.New("malformed token")

// Claims defines a public type used by goscribe APIs.
//
// Claims instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Claims struct {
	// ExpiresIn is a legacy fallback expiry instant (seconds since epoch) used by
	// backends that omit the registered exp claim.
	ExpiresIn int64 `json:"expiresIn,omitempty"`
	// UserID mirrors the backend's user identifier claim when present.
	UserID string `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// ExpiryUnix resolves the expiry instant in seconds since epoch. It prefers the
// registered exp claim, falls back to expiresIn, and reports ok=false when both
// are absent.
func (c *Claims) ExpiryUnix() (int64, bool) {
	if c == nil {
		return 0, false
	}
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Unix(), true
	}
	if c.ExpiresIn != 0 {
		return c.ExpiresIn, true
	}
	return 0, false
}

// Inspector defines a public type used by goscribe APIs.
//
// Inspector instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Inspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewInspector describes the newinspector operation and its observable behavior.
//
// NewInspector may return an error when input validation, dependency calls, or security checks fail.
// NewInspector does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewInspector() *Inspector {
	return &Inspector{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Decode describes the decode operation and its observable behavior.
//
// Decode may return an error when input validation, dependency calls, or security checks fail.
// Decode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (i *Inspector) Decode(tokenStr string) (*Claims, error) {
	if i == nil || tokenStr == "" {
		return nil, ErrMalformed
	}

	claims := &Claims{}
	if _, _, err := i.parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}

	return claims, nil
}

// IsExpired reports whether the token is unusable as a credential. A token is
// expired when it cannot be decoded (fail closed), when its resolved expiry
// instant lies strictly before the current wall-clock second, or when it carries
// no expiry claim at all.
func (i *Inspector) IsExpired(tokenStr string) bool {
	claims, err := i.Decode(tokenStr)
	if err != nil {
		return true
	}

	expiry, ok := claims.ExpiryUnix()
	if !ok {
		return true
	}

	return expiry < i.now().Unix()
}
