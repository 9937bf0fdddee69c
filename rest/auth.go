package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/scribeworks/goscribe/session"
)

// Credentials carries the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration carries the signup form fields.
type Registration struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenPayload tolerates both the current accessToken key and the legacy token
// key still emitted by older backend deployments.
type tokenPayload struct {
	AccessToken  string `json:"accessToken"`
	LegacyToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (p tokenPayload) pair() session.TokenPair {
	access := p.AccessToken
	if access == "" {
		access = p.LegacyToken
	}
	return session.TokenPair{AccessToken: access, RefreshToken: p.RefreshToken}
}

// AuthClient binds the backend's authentication endpoints. Login, Register, and
// Refresh hit allow-listed paths and therefore carry no bearer credential;
// Profile is authenticated by the pipeline.
type AuthClient struct {
	rest *Client
}

// NewAuthClient describes the newauthclient operation and its observable behavior.
//
// NewAuthClient may return an error when input validation, dependency calls, or security checks fail.
// NewAuthClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewAuthClient(rest *Client) *AuthClient {
	return &AuthClient{rest: rest}
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *AuthClient) Login(ctx context.Context, creds Credentials) (session.TokenPair, error) {
	var payload tokenPayload
	if err := a.rest.do(ctx, http.MethodPost, PathLogin, creds, &payload); err != nil {
		return session.TokenPair{}, err
	}
	return payload.pair(), nil
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *AuthClient) Register(ctx context.Context, reg Registration) error {
	return a.rest.do(ctx, http.MethodPost, PathSignup, reg, nil)
}

// Refresh exchanges a refresh token for a new pair. A 4xx rejection surfaces as
// [session.ErrRefreshRejected]; transport failures pass through untouched.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error) {
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken}

	var payload tokenPayload
	if err := a.rest.do(ctx, http.MethodPost, PathRefresh, body, &payload); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500 {
			return session.TokenPair{}, errors.Join(session.ErrRefreshRejected, err)
		}
		return session.TokenPair{}, err
	}
	return payload.pair(), nil
}

// Profile fetches the authenticated user's profile.
func (a *AuthClient) Profile(ctx context.Context) (session.UserProfile, error) {
	var user session.UserProfile
	if err := a.rest.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return session.UserProfile{}, err
	}
	return user, nil
}

// UpdateProfile sends the changed profile fields for the given user and returns
// the updated profile.
func (a *AuthClient) UpdateProfile(ctx context.Context, userID string, user session.UserProfile) (session.UserProfile, error) {
	var updated session.UserProfile
	if err := a.rest.do(ctx, http.MethodPut, "/users/"+userID, user, &updated); err != nil {
		return session.UserProfile{}, err
	}
	return updated, nil
}
