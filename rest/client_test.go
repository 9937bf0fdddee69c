package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scribeworks/goscribe/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("", nil); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := NewClient("/", nil); err == nil {
		t.Fatal("expected error for slash-only base URL")
	}
}

func TestStatusErrorExtractsMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"not yours"}`))
	})

	err := c.do(context.Background(), http.MethodGet, "/posts/p1", nil, &Post{})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusForbidden || se.Message != "not yours" {
		t.Fatalf("unexpected StatusError: %+v", se)
	}
	if !IsStatus(err, http.StatusForbidden) {
		t.Fatal("IsStatus must match")
	}
	if IsStatus(err, http.StatusNotFound) {
		t.Fatal("IsStatus must not match a different code")
	}
}

func TestStatusErrorRawBodyFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded\n"))
	})

	err := c.do(context.Background(), http.MethodGet, "/posts", nil, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Message != "upstream exploded" {
		t.Fatalf("expected trimmed raw body, got %q", se.Message)
	}
}

func TestLoginNormalizesLegacyTokenKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathLogin || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		// Older deployments emit "token" instead of "accessToken".
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token":        "legacy-access",
			"refreshToken": "refresh-1",
		})
	})

	auth := NewAuthClient(c)
	pair, err := auth.Login(context.Background(), Credentials{Email: "a@b.co", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if pair.AccessToken != "legacy-access" || pair.RefreshToken != "refresh-1" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}

func TestLoginPrefersAccessTokenKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  "modern-access",
			"token":        "legacy-access",
			"refreshToken": "refresh-1",
		})
	})

	auth := NewAuthClient(c)
	pair, err := auth.Login(context.Background(), Credentials{Email: "a@b.co", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if pair.AccessToken != "modern-access" {
		t.Fatalf("expected modern key to win, got %q", pair.AccessToken)
	}
}

func TestRefreshFourXXIsRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"refresh token expired"}`))
	})

	auth := NewAuthClient(c)
	_, err := auth.Refresh(context.Background(), "stale")
	if !errors.Is(err, session.ErrRefreshRejected) {
		t.Fatalf("expected ErrRefreshRejected, got %v", err)
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatal("rejection must carry the underlying StatusError")
	}
}

func TestRefreshFiveXXIsNotRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	auth := NewAuthClient(c)
	_, err := auth.Refresh(context.Background(), "fine")
	if errors.Is(err, session.ErrRefreshRejected) {
		t.Fatalf("server faults must not read as rejection: %v", err)
	}
	if !IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected raw StatusError, got %v", err)
	}
}

func TestRefreshSendsRefreshToken(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  "new-access",
			"refreshToken": "new-refresh",
		})
	})

	auth := NewAuthClient(c)
	pair, err := auth.Refresh(context.Background(), "old-refresh")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if gotBody["refreshToken"] != "old-refresh" {
		t.Fatalf("unexpected refresh payload: %v", gotBody)
	}
	if pair.AccessToken != "new-access" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}

func TestPostUpdateWireShape(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_ = json.NewEncoder(w).Encode(Post{ID: "p1", Title: "New", Content: "Body"})
	})

	posts := NewPostClient(c)
	if _, err := posts.Update(context.Background(), "p1", PostPatch{Title: "New", Content: "Body"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if _, ok := raw["sections"]; ok {
		t.Fatal("update payload must never contain sections")
	}
	if len(raw) != 2 || raw["title"] != "New" || raw["content"] != "Body" {
		t.Fatalf("unexpected wire payload: %v", raw)
	}
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	posts := NewPostClient(c)
	if err := posts.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}
