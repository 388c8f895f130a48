package engine

import "github.com/lixenwraith/antcolony/event"

// Listener is an external collaborator subscribed to notifications
// Listeners observe only; they must not mutate the world
type Listener interface {
	OnEvent(ev event.GameEvent)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(ev event.GameEvent)

func (f ListenerFunc) OnEvent(ev event.GameEvent) {
	f(ev)
}

// EventRouter dispatches flushed events to systems, then to listeners
//
// Architecture:
//   - Single-threaded dispatch on the tick goroutine
//   - Multiple handlers per type, invoked in registration order
//   - Systems see an event before listeners so notifications reflect resolved state
type EventRouter struct {
	handlers  map[event.EventType][]System
	listeners map[event.EventType][]Listener
}

// NewEventRouter creates an empty router
func NewEventRouter() *EventRouter {
	return &EventRouter{
		handlers:  make(map[event.EventType][]System),
		listeners: make(map[event.EventType][]Listener),
	}
}

// Register adds a system for its declared event types
func (r *EventRouter) Register(sys System) {
	for _, t := range sys.EventTypes() {
		r.handlers[t] = append(r.handlers[t], sys)
	}
}

// Subscribe adds a listener for the given types
func (r *EventRouter) Subscribe(l Listener, types ...event.EventType) {
	for _, t := range types {
		r.listeners[t] = append(r.listeners[t], l)
	}
}

// Dispatch routes a single event
func (r *EventRouter) Dispatch(ev event.GameEvent) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(ev)
	}
	for _, l := range r.listeners[ev.Type] {
		l.OnEvent(ev)
	}
}

// HandlerCount returns the number of systems registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
