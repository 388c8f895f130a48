package event

import "github.com/lixenwraith/antcolony/core"

// Emit pushes a frame-stamped event
func Emit(q *EventQueue, t EventType, payload any, frame uint64) {
	q.Push(GameEvent{Type: t, Payload: payload, Frame: frame})
}

// EmitDied queues death processing for a unit that just reached zero HP
func EmitDied(q *EventQueue, e, killer core.Entity, frame uint64) {
	q.Push(GameEvent{
		Type:    EventUnitDied,
		Payload: &UnitDiedPayload{Entity: e, Killer: killer},
		Frame:   frame,
	})
}

// EmitDespawn queues removal of a unit without death processing
func EmitDespawn(q *EventQueue, e core.Entity, frame uint64) {
	q.Push(GameEvent{
		Type:    EventDespawnRequest,
		Payload: &DespawnRequestPayload{Entity: e},
		Frame:   frame,
	})
}
