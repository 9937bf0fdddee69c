package goscribe

import (
	"sync/atomic"
	"testing"
	"time"

	internalevents "github.com/scribeworks/goscribe/internal/events"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Write(Event) {
	s.count.Add(1)
}

func TestEventDispatcherDeliversAndDrains(t *testing.T) {
	sink := &countingSink{}
	d := newEventDispatcher(EventsConfig{Enabled: true, BufferSize: 64, DropIfFull: true}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(Event{Type: internalevents.TypeLogin, Success: true})
	}
	d.Close()

	if got := sink.count.Load(); got != 10 {
		t.Fatalf("expected 10 delivered events, got %d", got)
	}
	if d.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", d.Dropped())
	}
}

func TestEventDispatcherDisabledIsNil(t *testing.T) {
	d := newEventDispatcher(EventsConfig{Enabled: false}, nil)
	if d != nil {
		t.Fatal("disabled events must produce a nil dispatcher")
	}

	// All operations on the nil dispatcher are safe no-ops.
	d.Emit(Event{Type: internalevents.TypeLogout})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher must report zero drops")
	}
}

func TestEventDispatcherStampsTimestamp(t *testing.T) {
	sink := NewChannelSink(4)
	d := newEventDispatcher(EventsConfig{Enabled: true, BufferSize: 4, DropIfFull: true}, sink)
	defer d.Close()

	d.Emit(Event{Type: internalevents.TypeRecovery})

	select {
	case ev := <-sink.Events():
		if ev.Timestamp.IsZero() {
			t.Fatal("dispatcher must stamp a timestamp")
		}
		if ev.Type != internalevents.TypeRecovery {
			t.Fatalf("unexpected type %q", ev.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestEventDispatcherEmitAfterClose(t *testing.T) {
	sink := &countingSink{}
	d := newEventDispatcher(EventsConfig{Enabled: true, BufferSize: 4, DropIfFull: true}, sink)
	d.Close()

	d.Emit(Event{Type: internalevents.TypeLogin})
	if got := sink.count.Load(); got != 0 {
		t.Fatalf("emit after close must be discarded, got %d deliveries", got)
	}
}
