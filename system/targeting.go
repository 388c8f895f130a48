package system

import (
	"math"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/vmath"
)

// SelectTarget returns the best opposing target for self among candidates, 0 when none is perceivable
// Units with PriorityTargeting prefer, in order: the nearest candidate already targeting self,
// the opposing leader, the nearest candidate. Other units take the nearest
func SelectTarget(q engine.WorldQuery, self core.Entity, u *component.UnitComponent, candidates []core.Entity) core.Entity {
	r2 := u.Perception * u.Perception

	var nearest, engaged core.Entity
	nearestD, engagedD := math.MaxFloat64, math.MaxFloat64

	for _, c := range candidates {
		if c == self {
			continue
		}
		cu, ok := q.LiveUnit(c)
		if !ok || cu.Faction == u.Faction {
			continue
		}
		d := vmath.DistSq(u.Pos, cu.Pos)
		if d > r2 {
			continue
		}
		if d < nearestD {
			nearest, nearestD = c, d
		}
		if u.PriorityTargeting && cu.Target == self && d < engagedD {
			engaged, engagedD = c, d
		}
	}

	if !u.PriorityTargeting {
		return nearest
	}
	if engaged != 0 {
		return engaged
	}
	if leader, ok := q.Leader(u.Faction.Opponent()); ok {
		if lu, ok := q.LiveUnit(leader); ok && vmath.DistSq(u.Pos, lu.Pos) <= r2 {
			return leader
		}
	}
	return nearest
}

// TargetValid reports whether target can be kept: alive, opposing and within perception
func TargetValid(q engine.WorldQuery, u *component.UnitComponent, target core.Entity) bool {
	tu, ok := q.LiveUnit(target)
	if !ok || tu.Faction == u.Faction {
		return false
	}
	return vmath.DistSq(u.Pos, tu.Pos) <= u.Perception*u.Perception
}

// TargetingSystem makes the once-per-tick retain or re-acquire decision for every live unit
type TargetingSystem struct {
	world *engine.World

	candidates []core.Entity

	enabled bool
}

func NewTargetingSystem(world *engine.World) *TargetingSystem {
	s := &TargetingSystem{world: world}
	s.Init()
	return s
}

func (s *TargetingSystem) Init() {
	s.enabled = true
}

func (s *TargetingSystem) Name() string {
	return "targeting"
}

func (s *TargetingSystem) Priority() int {
	return parameter.PriorityTargeting
}

func (s *TargetingSystem) EventTypes() []event.EventType {
	return nil
}

func (s *TargetingSystem) HandleEvent(event.GameEvent) {}

func (s *TargetingSystem) Update() {
	if !s.enabled {
		return
	}
	w := s.world

	for _, e := range w.Units.GetAllEntities() {
		u, ok := w.LiveUnit(e)
		if !ok {
			continue
		}
		w.Isolate(s.Name(), e, func() {
			s.decide(e, u)
		})
	}
}

func (s *TargetingSystem) decide(e core.Entity, u *component.UnitComponent) {
	w := s.world

	// Confusion suspends targeting entirely
	if u.Mode == component.ModeConfused {
		u.Target = 0
		return
	}

	boss, isBoss := w.Bosses.GetComponent(e)

	if u.Target != 0 && TargetValid(w, u, u.Target) && s.inTerritory(u, boss, isBoss, u.Target) {
		return
	}
	u.Target = 0

	s.candidates = s.candidates[:0]
	for _, c := range w.LiveUnits(u.Faction.Opponent()) {
		if s.inTerritory(u, boss, isBoss, c) {
			s.candidates = append(s.candidates, c)
		}
	}
	u.Target = SelectTarget(w, e, u, s.candidates)
}

// inTerritory limits territory bosses to targets inside their territory around home
func (s *TargetingSystem) inTerritory(u *component.UnitComponent, boss *component.BossComponent, isBoss bool, target core.Entity) bool {
	if !isBoss || boss.Variant != component.BossTerritory || boss.TerritoryRadius <= 0 {
		return true
	}
	tu, ok := s.world.LiveUnit(target)
	if !ok {
		return false
	}
	return vmath.DistSq(u.Home, tu.Pos) <= boss.TerritoryRadius*boss.TerritoryRadius
}
