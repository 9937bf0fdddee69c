package goscribe

import (
	"context"
	"fmt"

	internalevents "github.com/scribeworks/goscribe/internal/events"
	"github.com/scribeworks/goscribe/session"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The flow is two requests: the credential exchange stores the token pair with
// any previous user cleared, then the profile fetch rides the fresh token and
// completes the session. A profile fetch failure leaves the tokens in place.
func (c *Client) Login(ctx context.Context, creds Credentials) (*UserProfile, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	pair, err := c.auth.Login(ctx, creds)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.dispatcher.Emit(Event{Type: internalevents.TypeLoginFailed, Error: err.Error()})
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := c.store.SetTokens(ctx, session.Update{Tokens: &pair, ClearUser: true}); err != nil {
		return nil, fmt.Errorf("login: persist tokens: %w", err)
	}

	profile, err := c.auth.Profile(ctx)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.dispatcher.Emit(Event{Type: internalevents.TypeLoginFailed, Error: err.Error()})
		return nil, fmt.Errorf("login: fetch profile: %w", err)
	}

	if err := c.store.SetTokens(ctx, session.Update{User: &profile}); err != nil {
		return nil, fmt.Errorf("login: persist profile: %w", err)
	}

	c.metrics.Inc(MetricLoginSuccess)
	c.dispatcher.Emit(Event{Type: internalevents.TypeLogin, UserID: profile.ID, Success: true})

	return &profile, nil
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Registration does not log the user in; callers follow up with [Client.Login].
func (c *Client) Register(ctx context.Context, reg Registration) error {
	if err := validateRegistration(reg); err != nil {
		return err
	}

	if err := c.auth.Register(ctx, reg); err != nil {
		c.metrics.Inc(MetricRegisterFailure)
		c.dispatcher.Emit(Event{Type: internalevents.TypeRegister, Error: err.Error()})
		return fmt.Errorf("register: %w", err)
	}

	c.metrics.Inc(MetricRegisterSuccess)
	c.dispatcher.Emit(Event{Type: internalevents.TypeRegister, Success: true})

	return nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Logout is local only: the session resets and the empty record persists, but
// no revocation request reaches the backend and no navigation occurs.
func (c *Client) Logout(ctx context.Context) error {
	snap := c.store.Snapshot()

	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	c.metrics.Inc(MetricLogout)
	ev := Event{Type: internalevents.TypeLogout, Success: true}
	if snap.User != nil {
		ev.UserID = snap.User.ID
	}
	c.dispatcher.Emit(ev)

	return nil
}

// UpdateProfile describes the updateprofile operation and its observable behavior.
//
// UpdateProfile may return an error when input validation, dependency calls, or security checks fail.
// UpdateProfile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) (*UserProfile, error) {
	if err := validateProfileInput(in); err != nil {
		return nil, err
	}

	snap := c.store.Snapshot()
	if snap.User == nil {
		return nil, ErrNotLoggedIn
	}

	next := *snap.User
	next.Name = in.Name
	next.Username = in.Username
	next.Email = in.Email
	next.Phone = in.Phone
	if in.Avatar != "" {
		next.Avatar = in.Avatar
	}

	updated, err := c.auth.UpdateProfile(ctx, snap.User.ID, next)
	if err != nil {
		c.recoverOnUnauthorized(err)
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := c.store.SetTokens(ctx, session.Update{User: &updated}); err != nil {
		return nil, fmt.Errorf("update profile: persist: %w", err)
	}

	return &updated, nil
}
