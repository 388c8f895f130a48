package system

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/physics"
	"github.com/lixenwraith/antcolony/vmath"
)

// StatusSystem attaches, advances and reverts time-bounded effects
type StatusSystem struct {
	world *engine.World

	enabled bool
}

func NewStatusSystem(world *engine.World) *StatusSystem {
	s := &StatusSystem{world: world}
	s.Init()
	return s
}

func (s *StatusSystem) Init() {
	s.enabled = true
}

func (s *StatusSystem) Name() string {
	return "status"
}

func (s *StatusSystem) Priority() int {
	return parameter.PriorityStatus
}

func (s *StatusSystem) EventTypes() []event.EventType {
	return nil
}

func (s *StatusSystem) HandleEvent(event.GameEvent) {}

func (s *StatusSystem) Update() {
	if !s.enabled {
		return
	}
	for _, e := range s.world.Statuses.GetAllEntities() {
		if _, ok := s.world.LiveUnit(e); !ok {
			continue
		}
		s.world.Isolate(s.Name(), e, func() {
			s.TickUnit(e)
		})
	}
}

// EffectFromStats builds an on-hit effect from a stat block entry
func EffectFromStats(es *content.EffectStats, source core.Entity, origin vmath.Vec2) (component.Effect, bool) {
	if es == nil {
		return component.Effect{}, false
	}
	kind, ok := component.ParseEffectKind(es.Kind)
	if !ok {
		return component.Effect{}, false
	}
	return component.Effect{
		Kind:      kind,
		Magnitude: es.Magnitude,
		Remaining: es.DurationFrames,
		Interval:  es.IntervalFrames,
		Stacks:    1,
		Source:    source,
		Origin:    origin,
	}, true
}

// Apply attaches eff to e, or refreshes the active effect of the same kind
// Knockback is applied immediately and never stored
func (s *StatusSystem) Apply(e core.Entity, eff component.Effect) bool {
	u, ok := s.world.LiveUnit(e)
	if !ok {
		return false
	}
	st, ok := s.world.Statuses.GetComponent(e)
	if !ok {
		st = &component.StatusComponent{}
		s.world.Statuses.SetComponent(e, st)
	}

	if eff.Kind == component.EffectKnockback {
		mag := eff.Magnitude
		if mag <= 0 {
			mag = parameter.KnockbackDefaultMagnitude
		}
		physics.ApplyImpulse(&u.Kinetic, physics.Knockback(eff.Origin, u.Pos, mag))
		return true
	}

	if eff.Remaining <= 0 {
		return false
	}
	if eff.Stacks <= 0 {
		eff.Stacks = 1
	}

	idx := st.Find(eff.Kind)
	switch eff.Kind {
	case component.EffectSlow:
		eff.Magnitude = vmath.Clamp(eff.Magnitude, 0, parameter.SlowMaxStickiness)
		if !st.SpeedSaved {
			st.SavedSpeed = u.Speed
			st.SpeedSaved = true
		}
		// Always derived from the stored speed so repeated slows never compound
		u.Speed = st.SavedSpeed * (1 - eff.Magnitude)
		if idx >= 0 {
			st.Effects[idx].Magnitude = eff.Magnitude
			st.Effects[idx].Remaining = eff.Remaining
			st.Effects[idx].Source = eff.Source
		} else {
			st.Effects = append(st.Effects, eff)
		}

	case component.EffectDOT:
		if eff.Interval <= 0 {
			eff.Interval = parameter.DOTIntervalFrames
		}
		if idx >= 0 {
			cur := &st.Effects[idx]
			if cur.Stacks < parameter.DOTMaxStacks {
				cur.Magnitude += eff.Magnitude
				cur.Stacks++
			}
			cur.Remaining = eff.Remaining
			cur.Source = eff.Source
		} else {
			st.Effects = append(st.Effects, eff)
		}

	default:
		if idx >= 0 {
			st.Effects[idx].Remaining = eff.Remaining
			st.Effects[idx].Source = eff.Source
		} else {
			st.Effects = append(st.Effects, eff)
		}
	}

	s.resolveMode(u, st)
	return true
}

// TickUnit advances every effect on e by one frame and reverts the expired ones
func (s *StatusSystem) TickUnit(e core.Entity) {
	st, ok := s.world.Statuses.GetComponent(e)
	if !ok || len(st.Effects) == 0 {
		return
	}

	kept := st.Effects[:0]
	for _, eff := range st.Effects {
		eff.Remaining--

		if eff.Kind == component.EffectDOT {
			eff.Elapsed++
			if eff.Elapsed >= eff.Interval {
				eff.Elapsed = 0
				if _, killed := ApplyDamage(s.world, e, eff.Source, int(eff.Magnitude)); killed {
					st.Effects = st.Effects[:0]
					return
				}
			}
		}

		if eff.Remaining > 0 {
			kept = append(kept, eff)
		}
	}
	st.Effects = kept

	u, ok := s.world.LiveUnit(e)
	if !ok {
		return
	}
	if st.SpeedSaved && !st.Has(component.EffectSlow) {
		u.Speed = st.SavedSpeed
		st.SpeedSaved = false
	}
	s.resolveMode(u, st)
}

// ScaleSpeed multiplies base and effective speed, keeping an active slow's stored speed consistent
func (s *StatusSystem) ScaleSpeed(e core.Entity, factor float64) {
	u, ok := s.world.LiveUnit(e)
	if !ok {
		return
	}
	u.BaseSpeed *= factor
	st, ok := s.world.Statuses.GetComponent(e)
	if ok && st.SpeedSaved {
		st.SavedSpeed *= factor
		if i := st.Find(component.EffectSlow); i >= 0 {
			u.Speed = st.SavedSpeed * (1 - st.Effects[i].Magnitude)
			return
		}
	}
	u.Speed *= factor
}

// resolveMode derives behavior mode from active effects, confusion wins over webbed
func (s *StatusSystem) resolveMode(u *component.UnitComponent, st *component.StatusComponent) {
	want := component.ModeNormal
	switch {
	case st.Has(component.EffectConfusion):
		want = component.ModeConfused
	case st.Has(component.EffectSlow):
		want = component.ModeWebbed
	}

	if want != component.ModeNormal {
		if !st.ModeSaved {
			st.SavedMode = u.Mode
			st.ModeSaved = true
		}
		u.Mode = want
		return
	}
	if st.ModeSaved {
		u.Mode = st.SavedMode
		st.ModeSaved = false
	}
}
