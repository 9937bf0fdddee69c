package guard

import (
	"context"
	"errors"
	"net/url"

	"github.com/scribeworks/goscribe/session"
)

// State defines a public type used by goscribe APIs.
//
// State instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type State uint8

const (
	// StateChecking is an exported constant or variable used by the blog client.
	StateChecking State = iota
	// StateAllowed is an exported constant or variable used by the blog client.
	StateAllowed
	// StateDenied is an exported constant or variable used by the blog client.
	StateDenied
)

// String describes the string operation and its observable behavior.
//
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAllowed:
		return "allowed"
	case StateDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Decision is the terminal outcome of one navigation. RedirectTo is set only
// for denials and carries the originally requested path in the redirectTo query
// parameter.
type Decision struct {
	State      State
	RedirectTo string
}

// Guard defines a public type used by goscribe APIs.
//
// Guard instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Guard struct {
	store     *session.Store
	inspector session.Inspector
	loginPath string
	onState   func(State)
}

// Config captures [Guard] dependencies. OnState, when set, observes every state
// transition of an evaluation (CHECKING first, then the terminal state).
type Config struct {
	Store     *session.Store
	Inspector session.Inspector
	LoginPath string
	OnState   func(State)
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(cfg Config) (*Guard, error) {
	if cfg.Store == nil {
		return nil, errors.New("session store required")
	}
	if cfg.Inspector == nil {
		return nil, errors.New("token inspector required")
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}

	return &Guard{
		store:     cfg.Store,
		inspector: cfg.Inspector,
		loginPath: cfg.LoginPath,
		onState:   cfg.OnState,
	}, nil
}

// Evaluate runs the gate for one navigation into path. It blocks while the
// session store revalidates and resolves to exactly one of ALLOWED or DENIED.
// The protected view must not be rendered before Evaluate returns.
func (g *Guard) Evaluate(ctx context.Context, path string) Decision {
	g.emit(StateChecking)

	ok, err := g.store.Revalidate(ctx)

	// The gate re-reads the store after revalidation: only a currently held,
	// non-expired access token admits the navigation.
	snap := g.store.Snapshot()
	if err == nil && ok && snap.AccessToken != "" && !g.inspector.IsExpired(snap.AccessToken) {
		g.emit(StateAllowed)
		return Decision{State: StateAllowed}
	}

	g.emit(StateDenied)
	return Decision{
		State:      StateDenied,
		RedirectTo: g.loginPath + "?redirectTo=" + url.QueryEscape(path),
	}
}

func (g *Guard) emit(s State) {
	if g.onState != nil {
		g.onState(s)
	}
}
