package events

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Type identifies the kind of lifecycle event being emitted.
type Type string

const (
	TypeLogin           Type = "login"
	TypeLoginFailed     Type = "login_failed"
	TypeRegister        Type = "register"
	TypeLogout          Type = "logout"
	TypeRefresh         Type = "refresh"
	TypeRefreshFailed   Type = "refresh_failed"
	TypeRecovery        Type = "recovery"
	TypeGuardAllowed    Type = "guard_allowed"
	TypeGuardDenied     Type = "guard_denied"
	TypePostDeleteRetry Type = "post_delete_retry"
)

// Event describes a single observable moment of the session lifecycle.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      Type              `json:"type"`
	UserID    string            `json:"userId,omitempty"`
	Path      string            `json:"path,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Sink receives events from the dispatcher. Implementations must be safe for
// concurrent use and must not retain the event past the call.
type Sink interface {
	Write(Event)
}

// NoOpSink discards every event.
type NoOpSink struct{}

func (NoOpSink) Write(Event) {}

// ChannelSink forwards events to a channel, dropping when the channel is full.
type ChannelSink struct {
	ch chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChannelSink{ch: make(chan Event, buffer)}
}

func (s *ChannelSink) Write(ev Event) {
	select {
	case s.ch <- ev:
	default:
	}
}

// Events exposes the receive side of the sink.
func (s *ChannelSink) Events() <-chan Event { return s.ch }

// JSONWriterSink writes one JSON object per line to the underlying writer.
type JSONWriterSink struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{w: w, enc: json.NewEncoder(w)}
}

func (s *JSONWriterSink) Write(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(ev)
}
