package system

import (
	"sync/atomic"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/physics"
	"github.com/lixenwraith/antcolony/status"
	"github.com/lixenwraith/antcolony/vmath"
)

// ExplosionSystem resolves area damage requests and ages the markers renderers draw
type ExplosionSystem struct {
	world *engine.World

	statTriggered *atomic.Int64

	enabled bool
}

func NewExplosionSystem(world *engine.World) *ExplosionSystem {
	s := &ExplosionSystem{world: world}
	s.statTriggered = world.Metrics.Ints.Get(status.KeyExplosions)
	s.Init()
	return s
}

func (s *ExplosionSystem) Init() {
	s.statTriggered.Store(0)
	s.enabled = true
}

func (s *ExplosionSystem) Name() string {
	return "explosion"
}

func (s *ExplosionSystem) Priority() int {
	return parameter.PriorityExplosion
}

func (s *ExplosionSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventExplosionRequest}
}

func (s *ExplosionSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventExplosionRequest {
		return
	}
	if p, ok := ev.Payload.(*event.ExplosionRequestPayload); ok {
		s.Explode(p.Center, p.Radius, p.Damage, p.Knockback, p.Faction, p.Source)
	}
}

// Update ages explosion markers
func (s *ExplosionSystem) Update() {
	if !s.enabled {
		return
	}
	w := s.world
	for _, e := range w.Markers.GetAllEntities() {
		m, ok := w.Markers.GetComponent(e)
		if !ok {
			continue
		}
		m.Remaining--
		if m.Remaining <= 0 {
			w.MarkForRemoval(e)
		}
	}
}

// Explode applies falloff damage to every live unit opposing faction within radius of center
// Units inside the crush tier take the bonus and, with knockback, an impulse away from center
// source never damages itself; returns the number of units damaged
func (s *ExplosionSystem) Explode(center vmath.Vec2, radius float64, base int, knockback bool, faction core.Faction, source core.Entity) int {
	w := s.world
	if radius <= 0 {
		return 0
	}

	victims := 0
	for _, v := range w.UnitsInRadius(center, radius, faction.Opponent()) {
		if v == source {
			continue
		}
		u, ok := w.LiveUnit(v)
		if !ok || u.Faction == faction {
			continue
		}

		d := vmath.Dist(center, u.Pos)
		dmg := physics.Falloff(base, d, radius)
		bonus, crushed := physics.CrushBonus(base, d, radius, parameter.ExplosionCrushFactor, parameter.ExplosionCrushBonus)

		if dealt, killed := ApplyDamage(w, v, source, dmg+bonus); dealt > 0 || killed {
			victims++
		}
		if crushed && knockback && u.Alive() {
			physics.ApplyImpulse(&u.Kinetic, physics.Knockback(center, u.Pos, parameter.ExplosionKnockback))
		}
	}

	marker := w.CreateEntity()
	w.Markers.SetComponent(marker, &component.ExplosionMarkerComponent{
		Center:    center,
		Radius:    radius,
		Remaining: parameter.ExplosionMarkerFrames,
	})
	s.statTriggered.Add(1)

	w.Emit(event.EventExplosion, &event.ExplosionPayload{
		X:       center.X,
		Y:       center.Y,
		Radius:  radius,
		Victims: victims,
	})
	return victims
}
