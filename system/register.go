package system

import "github.com/lixenwraith/dodger/event"

// Register adds every handler to the router in order
func Register(r *event.Router, handlers ...event.Handler) {
	for _, h := range handlers {
		r.Register(h)
	}
}
