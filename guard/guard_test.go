package guard

import (
	"context"
	"sync"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"

	"github.com/scribeworks/goscribe/session"
	"github.com/scribeworks/goscribe/token"
)

func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	tok := gjwt.NewWithClaims(gjwt.SigningMethodHS256, gjwt.RegisteredClaims{
		ExpiresAt: gjwt.NewNumericDate(expiresAt),
	})
	signed, err := tok.SignedString([]byte("guard-test-secret-guard-test-sec"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

type memRepo struct {
	mu     sync.Mutex
	rec    session.Record
	exists bool
}

func (m *memRepo) Load(context.Context) (session.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, m.exists, nil
}

func (m *memRepo) Save(_ context.Context, rec session.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	m.exists = true
	return nil
}

func (m *memRepo) Wipe(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = session.Record{}
	m.exists = false
	return nil
}

type blockingRefresher struct {
	pair    session.TokenPair
	started chan struct{}
	release chan struct{}
}

func (r *blockingRefresher) Refresh(ctx context.Context, _ string) (session.TokenPair, error) {
	close(r.started)
	select {
	case <-r.release:
	case <-ctx.Done():
		return session.TokenPair{}, ctx.Err()
	}
	return r.pair, nil
}

func newGuard(t *testing.T, refresher session.Refresher, states *[]State) (*Guard, *session.Store) {
	t.Helper()

	insp := token.NewInspector()
	store, err := session.NewStore(session.StoreConfig{
		Repository: &memRepo{},
		Inspector:  insp,
		Refresher:  refresher,
		LoginPath:  "/login",
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	var mu sync.Mutex
	g, err := New(Config{
		Store:     store,
		Inspector: insp,
		LoginPath: "/login",
		OnState: func(s State) {
			if states == nil {
				return
			}
			mu.Lock()
			*states = append(*states, s)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	return g, store
}

func TestEvaluateAllowsValidSession(t *testing.T) {
	var states []State
	g, store := newGuard(t, nil, &states)

	pair := session.TokenPair{
		AccessToken:  mintToken(t, time.Now().Add(time.Hour)),
		RefreshToken: mintToken(t, time.Now().Add(24*time.Hour)),
	}
	if err := store.SetTokens(context.Background(), session.Update{Tokens: &pair}); err != nil {
		t.Fatalf("set tokens: %v", err)
	}

	dec := g.Evaluate(context.Background(), "/posts")
	if dec.State != StateAllowed {
		t.Fatalf("expected ALLOWED, got %v", dec.State)
	}
	if dec.RedirectTo != "" {
		t.Fatalf("allow must not redirect, got %q", dec.RedirectTo)
	}
	if len(states) != 2 || states[0] != StateChecking || states[1] != StateAllowed {
		t.Fatalf("expected CHECKING then ALLOWED, got %v", states)
	}
}

func TestEvaluateDeniesEmptySessionWithRedirect(t *testing.T) {
	var states []State
	g, _ := newGuard(t, nil, &states)

	dec := g.Evaluate(context.Background(), "/posts/42/edit")
	if dec.State != StateDenied {
		t.Fatalf("expected DENIED, got %v", dec.State)
	}
	want := "/login?redirectTo=%2Fposts%2F42%2Fedit"
	if dec.RedirectTo != want {
		t.Fatalf("redirect = %q, want %q", dec.RedirectTo, want)
	}
	if len(states) != 2 || states[1] != StateDenied {
		t.Fatalf("expected CHECKING then DENIED, got %v", states)
	}
}

func TestEvaluateDeniesExpiredSession(t *testing.T) {
	g, store := newGuard(t, nil, nil)

	pair := session.TokenPair{
		AccessToken:  mintToken(t, time.Now().Add(-time.Hour)),
		RefreshToken: mintToken(t, time.Now().Add(-time.Minute)),
	}
	if err := store.SetTokens(context.Background(), session.Update{Tokens: &pair}); err != nil {
		t.Fatalf("set tokens: %v", err)
	}

	dec := g.Evaluate(context.Background(), "/profile")
	if dec.State != StateDenied {
		t.Fatalf("expected DENIED, got %v", dec.State)
	}
	if snap := store.Snapshot(); snap.LoggedIn() {
		t.Fatalf("expected session cleared by revalidation, got %+v", snap)
	}
}

func TestEvaluateAllowsAfterRefresh(t *testing.T) {
	refresher := &blockingRefresher{
		pair: session.TokenPair{
			AccessToken:  mintToken(t, time.Now().Add(time.Hour)),
			RefreshToken: mintToken(t, time.Now().Add(48*time.Hour)),
		},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	g, store := newGuard(t, refresher, nil)

	pair := session.TokenPair{
		AccessToken:  mintToken(t, time.Now().Add(-time.Second)),
		RefreshToken: mintToken(t, time.Now().Add(1000*time.Second)),
	}
	if err := store.SetTokens(context.Background(), session.Update{Tokens: &pair}); err != nil {
		t.Fatalf("set tokens: %v", err)
	}

	done := make(chan Decision, 1)
	go func() { done <- g.Evaluate(context.Background(), "/posts") }()

	// While the refresh hangs, the gate must still be pending: no decision,
	// store reporting a revalidation in flight.
	<-refresher.started
	select {
	case dec := <-done:
		t.Fatalf("decision %v resolved before revalidation finished", dec.State)
	case <-time.After(50 * time.Millisecond):
	}
	if !store.IsLoading() {
		t.Fatal("store should report loading while the gate is pending")
	}

	close(refresher.release)
	dec := <-done
	if dec.State != StateAllowed {
		t.Fatalf("expected ALLOWED after refresh, got %v", dec.State)
	}
}
