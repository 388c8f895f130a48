package engine

import "github.com/lixenwraith/antcolony/event"

// System is a unit of per-frame simulation logic
// Systems run in ascending Priority each tick, then receive routed commands during the flush
type System interface {
	Name() string
	Priority() int
	Update()
	EventTypes() []event.EventType
	HandleEvent(ev event.GameEvent)
}

// SystemBase provides common dependencies for all systems
// Embed in system structs to eliminate boilerplate
type SystemBase struct {
	World *World
}

// NewSystemBase initializes the base from world
func NewSystemBase(w *World) SystemBase {
	return SystemBase{World: w}
}

// EventTypes default: no subscriptions
func (b *SystemBase) EventTypes() []event.EventType {
	return nil
}

// HandleEvent default: ignore
func (b *SystemBase) HandleEvent(event.GameEvent) {}
