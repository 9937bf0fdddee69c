package transport

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/scribeworks/goscribe/session"
)

// ErrSessionExpired aborts a request whose session could not be refreshed. By
// the time a caller sees it, the recovery path has already wiped the session
// and redirected to login.
var ErrSessionExpired = errors.New("session expired")

const requestIDHeader = "X-Request-Id"

// Pipeline defines a public type used by goscribe APIs.
//
// Pipeline instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Pipeline struct {
	base      http.RoundTripper
	store     *session.Store
	inspector session.Inspector
	public    map[string]struct{}
}

// Config captures [Pipeline] dependencies. PublicPaths are matched against the
// request URL path exactly; they bypass all credential logic.
type Config struct {
	Base        http.RoundTripper
	Store       *session.Store
	Inspector   session.Inspector
	PublicPaths []string
}

// NewPipeline describes the newpipeline operation and its observable behavior.
//
// NewPipeline may return an error when input validation, dependency calls, or security checks fail.
// NewPipeline does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if cfg.Store == nil {
		return nil, errors.New("session store required")
	}
	if cfg.Inspector == nil {
		return nil, errors.New("token inspector required")
	}
	if cfg.Base == nil {
		cfg.Base = http.DefaultTransport
	}

	public := make(map[string]struct{}, len(cfg.PublicPaths))
	for _, p := range cfg.PublicPaths {
		public[p] = struct{}{}
	}

	return &Pipeline{
		base:      cfg.Base,
		store:     cfg.Store,
		inspector: cfg.Inspector,
		public:    public,
	}, nil
}

// RoundTrip describes the roundtrip operation and its observable behavior.
//
// RoundTrip may return an error when input validation, dependency calls, or security checks fail.
// RoundTrip does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}

	if _, ok := p.public[req.URL.Path]; ok {
		return p.base.RoundTrip(req)
	}

	snap := p.store.Snapshot()
	if !snap.LoggedIn() {
		// Never logged in: no credential to attach. Protected endpoints will
		// answer with their own authorization error, surfaced to the caller
		// as-is.
		return p.base.RoundTrip(req)
	}

	if p.inspector.IsExpired(snap.AccessToken) {
		if p.inspector.IsExpired(snap.RefreshToken) {
			_ = p.store.Recover(req.Context())
			return nil, ErrSessionExpired
		}

		pair, err := p.store.RefreshNow(req.Context())
		if err != nil {
			_ = p.store.Recover(req.Context())
			return nil, errors.Join(ErrSessionExpired, err)
		}
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		return p.base.RoundTrip(req)
	}

	req.Header.Set("Authorization", "Bearer "+snap.AccessToken)
	return p.base.RoundTrip(req)
}

// cloneRequest keeps the RoundTripper contract: the caller's request is never
// mutated.
func cloneRequest(req *http.Request) *http.Request {
	out := req.Clone(req.Context())
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	return out
}
