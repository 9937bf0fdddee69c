package goscribe

import (
	"io"

	internalevents "github.com/scribeworks/goscribe/internal/events"
	"github.com/scribeworks/goscribe/rest"
	"github.com/scribeworks/goscribe/session"
)

// UserProfile is the authenticated user's profile as persisted in the session.
type UserProfile = session.UserProfile

// TokenPair carries the access/refresh credential pair issued by the backend.
type TokenPair = session.TokenPair

// SessionState is the in-memory session payload returned by
// [Client.Session] snapshots.
type SessionState = session.State

// Post is the backend's post resource.
type Post = rest.Post

// Section is one block of a post's body.
type Section = rest.Section

// Credentials carries the login form fields.
type Credentials = rest.Credentials

// Registration carries the signup form fields.
type Registration = rest.Registration

// Event is a structured session lifecycle record emitted by the client.
type Event = internalevents.Event

// EventType identifies the kind of lifecycle event.
type EventType = internalevents.Type

// Sink receives [Event] values from the client's event dispatcher.
type Sink = internalevents.Sink

// NoOpSink is a [Sink] that silently discards all events.
type NoOpSink = internalevents.NoOpSink

// ChannelSink is a buffered channel-based [Sink].
type ChannelSink = internalevents.ChannelSink

// JSONWriterSink is a [Sink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalevents.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalevents.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalevents.NewJSONWriterSink(w)
}

// PostInput is the form payload for creating or editing a post.
//
// On edit, only Title and Content reach the backend; Sections and Image are
// client-side state carried across the update.
type PostInput struct {
	Title    string
	Content  string
	Sections []Section
	Image    string
}

// ProfileInput is the form payload for updating the logged-in user's profile.
type ProfileInput struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Avatar   string
}
