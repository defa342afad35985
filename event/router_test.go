package event

import (
	"io"
	"log"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// TestRouterDispatchOrder verifies handlers run in registration order per type
func TestRouterDispatchOrder(t *testing.T) {
	r := NewRouter(nil)
	var order []string

	r.Register(HandlerFunc{Types: []EventType{EventDodge}, Fn: func(GameEvent) { order = append(order, "a") }})
	r.Register(HandlerFunc{Types: []EventType{EventDodge, EventFail}, Fn: func(GameEvent) { order = append(order, "b") }})

	r.Dispatch([]GameEvent{{Type: EventDodge}, {Type: EventFail}, {Type: EventCollect}})

	want := []string{"a", "b", "b"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Call %d: expected %s, got %s", i, want[i], order[i])
		}
	}
	if r.HandlerCount(EventFail) != 1 {
		t.Errorf("Expected 1 fail handler, got %d", r.HandlerCount(EventFail))
	}
}

// TestRouterIsolatesPanics verifies a failing handler does not stop dispatch
func TestRouterIsolatesPanics(t *testing.T) {
	r := NewRouter(nil)
	calls := 0

	r.Register(HandlerFunc{Types: []EventType{EventScore}, Fn: func(GameEvent) { panic("boom") }})
	r.Register(HandlerFunc{Types: []EventType{EventScore}, Fn: func(GameEvent) { calls++ }})

	r.Dispatch([]GameEvent{{Type: EventScore}, {Type: EventScore}})

	if calls != 2 {
		t.Errorf("Expected healthy handler called twice, got %d", calls)
	}
	if r.Failures() != 2 {
		t.Errorf("Expected 2 recorded failures, got %d", r.Failures())
	}
}

// TestRouterDispatchAll verifies queue draining
func TestRouterDispatchAll(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter(nil)
	got := 0
	r.Register(HandlerFunc{Types: []EventType{EventTokens}, Fn: func(ev GameEvent) {
		got += ev.Payload.(*AmountPayload).Amount
	}})

	Emit(q, EventTokens, &AmountPayload{Amount: 3})
	Emit(q, EventTokens, &AmountPayload{Amount: 4})
	r.DispatchAll(q)

	if got != 7 {
		t.Errorf("Expected 7 tokens, got %d", got)
	}
	if q.Len() != 0 {
		t.Errorf("Expected drained queue, got %d pending", q.Len())
	}
}
