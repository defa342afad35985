package event

import (
	"log"
	"sync/atomic"
)

// Handler processes specific event types
// Handlers are called synchronously from the frame loop during dispatch
type Handler interface {
	// HandleEvent processes a single event
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function plus a type list into a Handler
type HandlerFunc struct {
	Types []EventType
	Fn    func(ev GameEvent)
}

func (h HandlerFunc) HandleEvent(ev GameEvent) { h.Fn(ev) }

func (h HandlerFunc) EventTypes() []EventType { return h.Types }

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Handlers are invoked in registration order
//   - A panicking handler is recovered and logged, remaining handlers still run
type Router struct {
	handlers map[EventType][]Handler
	failures *atomic.Int64
}

// NewRouter creates an empty router; failures may be nil
func NewRouter(failures *atomic.Int64) *Router {
	if failures == nil {
		failures = new(atomic.Int64)
	}
	return &Router{
		handlers: make(map[EventType][]Handler),
		failures: failures,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// Dispatch routes events in FIFO order
func (r *Router) Dispatch(events []GameEvent) {
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			r.invoke(h, ev)
		}
	}
}

// DispatchAll drains the queue and routes everything pending
func (r *Router) DispatchAll(q *EventQueue) {
	r.Dispatch(q.Consume())
}

func (r *Router) invoke(h Handler, ev GameEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.failures.Add(1)
			log.Printf("event: handler %T panicked on %s: %v", h, ev.Type, rec)
		}
	}()
	h.HandleEvent(ev)
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}

// Failures returns the number of recovered handler panics
func (r *Router) Failures() int64 {
	return r.failures.Load()
}
