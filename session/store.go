package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrRefreshRejected is returned when the backend refused the refresh token. It is
// terminal for the session.
var ErrRefreshRejected = errors.New("refresh token rejected")

// ErrNoRefreshToken is returned by [Store.RefreshNow] when no refresh token is held.
var ErrNoRefreshToken = errors.New("no refresh token held")

// Inspector answers token expiry questions. Satisfied by [token.Inspector].
type Inspector interface {
	IsExpired(token string) bool
}

// Refresher exchanges a refresh token for a new token pair. Satisfied by
// [rest.AuthClient]. A rejected or expired refresh token must surface as
// [ErrRefreshRejected].
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// Navigator receives the hard-navigation side effect of the recovery path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the [Navigator] interface.
type NavigatorFunc func(path string)

// Navigate describes the navigate operation and its observable behavior.
//
// Navigate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Hooks are optional observation points invoked synchronously by the store. All
// fields may be nil.
type Hooks struct {
	OnRefresh func(err error)
	OnRecover func()
}

// StoreConfig captures [Store] dependencies. Repository and Inspector are
// required; Refresher is required for any flow that can trigger a refresh.
type StoreConfig struct {
	Repository     Repository
	Inspector      Inspector
	Refresher      Refresher
	Navigator      Navigator
	LoginPath      string
	RefreshTimeout time.Duration
	Hooks          Hooks
}

// Store defines a public type used by goscribe APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// State mutations are internally synchronized; Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	state   State
	loading bool

	repo           Repository
	inspector      Inspector
	refresher      Refresher
	navigator      Navigator
	loginPath      string
	refreshTimeout time.Duration
	hooks          Hooks

	refreshGroup singleflight.Group
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore may return an error when input validation, dependency calls, or security checks fail.
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Repository == nil {
		return nil, errors.New("session repository required")
	}
	if cfg.Inspector == nil {
		return nil, errors.New("token inspector required")
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 10 * time.Second
	}

	return &Store{
		repo:           cfg.Repository,
		inspector:      cfg.Inspector,
		refresher:      cfg.Refresher,
		navigator:      cfg.Navigator,
		loginPath:      cfg.LoginPath,
		refreshTimeout: cfg.RefreshTimeout,
		hooks:          cfg.Hooks,
	}, nil
}

// Load reads the persisted record into memory. Called once at startup; a missing
// record leaves the session empty, a corrupt one is discarded the same way.
func (s *Store) Load(ctx context.Context) error {
	rec, ok, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrRecordCorrupt) {
			s.mu.Lock()
			s.state = State{}
			s.mu.Unlock()
			return nil
		}
		return err
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.state = rec.State.clone()
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// IsLoading reports whether a revalidation is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Update is a partial session mutation. A non-nil Tokens overwrites both token
// fields; a non-nil User overwrites the profile; ClearUser drops the profile.
// Unspecified fields are left untouched.
type Update struct {
	Tokens    *TokenPair
	User      *UserProfile
	ClearUser bool
}

// SetTokens merges upd into the session and persists immediately.
func (s *Store) SetTokens(ctx context.Context, upd Update) error {
	s.mu.Lock()
	if upd.Tokens != nil {
		s.state.AccessToken = upd.Tokens.AccessToken
		s.state.RefreshToken = upd.Tokens.RefreshToken
	}
	switch {
	case upd.ClearUser:
		s.state.User = nil
	case upd.User != nil:
		u := *upd.User
		s.state.User = &u
	}
	rec := Record{State: s.state.clone()}
	s.mu.Unlock()

	return s.repo.Save(ctx, rec)
}

// Clear resets the session to empty and persists the empty record. This is the
// voluntary logout path; it performs no navigation.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	return s.repo.Save(ctx, Record{})
}

// Recover is the unrecoverable-failure path: the in-memory session is dropped,
// the persisted record is erased entirely, and the navigator is sent to the
// login route.
func (s *Store) Recover(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	err := s.repo.Wipe(ctx)

	if s.hooks.OnRecover != nil {
		s.hooks.OnRecover()
	}
	if s.navigator != nil {
		s.navigator.Navigate(s.loginPath)
	}

	return err
}

// Revalidate checks whether the session can currently authenticate, refreshing
// the access token when possible. It reports true when a valid access token is
// held on return. The loading flag is set for the full duration of the call.
//
// Outcomes: both tokens expired or absent - session cleared, false; access
// expired but refresh valid - one refresh attempt, true on success, cleared and
// false on failure; access valid - true with no network I/O.
func (s *Store) Revalidate(ctx context.Context) (bool, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	snap := s.Snapshot()
	accessExpired := s.inspector.IsExpired(snap.AccessToken)
	refreshExpired := s.inspector.IsExpired(snap.RefreshToken)

	if accessExpired && refreshExpired {
		if err := s.Clear(ctx); err != nil {
			return false, err
		}
		return false, nil
	}

	if accessExpired {
		if _, err := s.RefreshNow(ctx); err != nil {
			if clearErr := s.Clear(ctx); clearErr != nil {
				return false, clearErr
			}
			return false, nil
		}
	}

	return true, nil
}

// RefreshNow exchanges the held refresh token for a new pair and persists it.
// Concurrent callers share a single in-flight exchange; every caller observes
// the same outcome. The exchange runs under the configured refresh timeout and
// is detached from the caller's cancellation so that one impatient caller
// cannot fail the shared flight.
func (s *Store) RefreshNow(ctx context.Context) (TokenPair, error) {
	v, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		snap := s.Snapshot()
		if snap.RefreshToken == "" {
			return TokenPair{}, ErrNoRefreshToken
		}
		if s.refresher == nil {
			return TokenPair{}, errors.New("no refresher configured")
		}

		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.refreshTimeout)
		defer cancel()

		pair, err := s.refresher.Refresh(callCtx, snap.RefreshToken)
		if s.hooks.OnRefresh != nil {
			s.hooks.OnRefresh(err)
		}
		if err != nil {
			if callCtx.Err() != nil {
				// A hung refresh counts as a rejected one: the session cannot
				// be proven valid within the deadline.
				return TokenPair{}, errors.Join(ErrRefreshRejected, err)
			}
			return TokenPair{}, err
		}

		if err := s.SetTokens(ctx, Update{Tokens: &pair}); err != nil {
			return TokenPair{}, err
		}

		return pair, nil
	})
	if err != nil {
		return TokenPair{}, err
	}

	return v.(TokenPair), nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
