package goscribe

import (
	"context"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/scribeworks/goscribe/guard"
	internalevents "github.com/scribeworks/goscribe/internal/events"
	"github.com/scribeworks/goscribe/rest"
	"github.com/scribeworks/goscribe/session"
	"github.com/scribeworks/goscribe/token"
	"github.com/scribeworks/goscribe/transport"
)

// Builder defines a public type used by goscribe APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	repository session.Repository
	navigator  session.Navigator
	transport  http.RoundTripper
	eventSink  Sink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
//
// WithBaseURL may return an error when input validation, dependency calls, or security checks fail.
// WithBaseURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithSessionRepository describes the withsessionrepository operation and its observable behavior.
//
// WithSessionRepository may return an error when input validation, dependency calls, or security checks fail.
// WithSessionRepository does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSessionRepository(repo session.Repository) *Builder {
	b.repository = repo
	return b
}

// WithNavigator describes the withnavigator operation and its observable behavior.
//
// WithNavigator may return an error when input validation, dependency calls, or security checks fail.
// WithNavigator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNavigator(nav session.Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithHTTPTransport describes the withhttptransport operation and its observable behavior.
//
// WithHTTPTransport may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPTransport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPTransport(rt http.RoundTripper) *Builder {
	b.transport = rt
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
//
// WithEventSink may return an error when input validation, dependency calls, or security checks fail.
// WithEventSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventSink(sink Sink) *Builder {
	b.eventSink = sink
	b.config.Events.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build(ctx context.Context) (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := b.buildRepository(cfg)
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics(cfg.Metrics)
	dispatcher := newEventDispatcher(cfg.Events, b.eventSink)

	inspector := token.NewInspector()

	// The refresher talks to the public refresh endpoint directly, so it
	// never rides through the authenticated pipeline. This breaks the
	// construction cycle between store and transport.
	plainHTTP := &http.Client{Timeout: cfg.API.Timeout, Transport: b.transport}
	plainREST, err := rest.NewClient(cfg.API.BaseURL, plainHTTP)
	if err != nil {
		return nil, err
	}
	refresher := rest.NewAuthClient(plainREST)

	store, err := session.NewStore(session.StoreConfig{
		Repository:     repo,
		Inspector:      inspector,
		Refresher:      refresher,
		Navigator:      b.navigator,
		LoginPath:      cfg.Routes.LoginPath,
		RefreshTimeout: cfg.Session.RefreshTimeout,
		Hooks: session.Hooks{
			OnRefresh: func(err error) {
				if err != nil {
					metrics.Inc(MetricRefreshFailure)
					dispatcher.Emit(Event{Type: internalevents.TypeRefreshFailed, Error: err.Error()})
					return
				}
				metrics.Inc(MetricRefreshSuccess)
				dispatcher.Emit(Event{Type: internalevents.TypeRefresh, Success: true})
			},
			OnRecover: func() {
				metrics.Inc(MetricSessionRecovery)
				dispatcher.Emit(Event{Type: internalevents.TypeRecovery})
			},
		},
	})
	if err != nil {
		return nil, err
	}

	if err := store.Load(ctx); err != nil {
		return nil, err
	}

	pipeline, err := transport.NewPipeline(transport.Config{
		Base:        b.transport,
		Store:       store,
		Inspector:   inspector,
		PublicPaths: cfg.Routes.PublicPaths,
	})
	if err != nil {
		return nil, err
	}

	apiHTTP := &http.Client{Timeout: cfg.API.Timeout, Transport: pipeline}
	apiREST, err := rest.NewClient(cfg.API.BaseURL, apiHTTP)
	if err != nil {
		return nil, err
	}

	routeGuard, err := guard.New(guard.Config{
		Store:     store,
		Inspector: inspector,
		LoginPath: cfg.Routes.LoginPath,
		OnState: func(st guard.State) {
			switch st {
			case guard.StateAllowed:
				metrics.Inc(MetricGuardAllowed)
				dispatcher.Emit(Event{Type: internalevents.TypeGuardAllowed, Success: true})
			case guard.StateDenied:
				metrics.Inc(MetricGuardDenied)
				dispatcher.Emit(Event{Type: internalevents.TypeGuardDenied})
			}
		},
	})
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Client{
		config:     cfg,
		store:      store,
		guard:      routeGuard,
		http:       apiHTTP,
		auth:       rest.NewAuthClient(apiREST),
		posts:      rest.NewPostClient(apiREST),
		navigator:  b.navigator,
		metrics:    metrics,
		dispatcher: dispatcher,
	}, nil
}

func (b *Builder) buildRepository(cfg Config) (session.Repository, error) {
	if b.repository != nil {
		return b.repository, nil
	}
	if b.redis != nil {
		return session.NewRedisRepository(b.redis, cfg.Session.RedisKey)
	}
	if cfg.Session.FilePath != "" {
		return session.NewFileRepository(cfg.Session.FilePath)
	}
	return nil, errors.New("session repository required: set Session.FilePath, WithSessionRepository, or WithRedis")
}
