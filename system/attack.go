package system

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/vmath"
)

// AttackSystem turns an acquired, in-range target into damage or a pending launch
// Melee resolves synchronously; ranged winds up for parameter.RangedWindupFrames and then queues a projectile
type AttackSystem struct {
	world  *engine.World
	status *StatusSystem

	enabled bool
}

func NewAttackSystem(world *engine.World, st *StatusSystem) *AttackSystem {
	s := &AttackSystem{world: world, status: st}
	s.Init()
	return s
}

func (s *AttackSystem) Init() {
	s.enabled = true
}

func (s *AttackSystem) Name() string {
	return "attack"
}

func (s *AttackSystem) Priority() int {
	return parameter.PriorityAttack
}

func (s *AttackSystem) EventTypes() []event.EventType {
	return nil
}

func (s *AttackSystem) HandleEvent(event.GameEvent) {}

func (s *AttackSystem) Update() {
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
			s.updateUnit(e, u)
		})
	}
}

func (s *AttackSystem) updateUnit(e core.Entity, u *component.UnitComponent) {
	w := s.world

	if u.CooldownTimer > 0 {
		u.CooldownTimer--
	}

	// Bosses attack only while their state machine allows it and own their visual state otherwise
	if boss, ok := w.Bosses.GetComponent(e); ok && !boss.AttackEnabled {
		return
	}

	// Confusion suspends attacks and drops any pending launch
	if u.Mode == component.ModeConfused {
		w.Windups.RemoveEntity(e)
		u.Visual = component.VisualIdle
		return
	}

	if wu, ok := w.Windups.GetComponent(e); ok {
		s.advanceWindup(e, u, wu)
		return
	}

	tu, ok := w.LiveUnit(u.Target)
	if !ok || vmath.DistSq(u.Pos, tu.Pos) > u.Range*u.Range {
		u.Visual = component.VisualIdle
		return
	}
	u.Visual = component.VisualAttacking

	if u.CooldownTimer > 0 {
		return
	}
	// Out of ammunition: suppressed, cooldown untouched
	if !u.HasCharges() {
		return
	}

	u.CooldownTimer = u.CooldownFrames

	if u.Style == component.AttackRanged {
		w.Windups.SetComponent(e, &component.WindupComponent{
			Target:    u.Target,
			Remaining: parameter.RangedWindupFrames,
		})
		return
	}

	u.SpendCharge()
	ApplyDamage(w, u.Target, e, u.Damage)
	AbilityFor(u.Ability).OnAttack(w, s.status, e, u, u.Target)
}

// advanceWindup counts down a pending launch
// Target death before completion cancels the launch: no charge spent, cooldown already consumed
func (s *AttackSystem) advanceWindup(e core.Entity, u *component.UnitComponent, wu *component.WindupComponent) {
	w := s.world
	u.Visual = component.VisualAttacking

	wu.Remaining--
	if wu.Remaining > 0 {
		return
	}
	w.Windups.RemoveEntity(e)

	tu, ok := w.LiveUnit(wu.Target)
	if !ok || !u.HasCharges() || u.Stats == nil || u.Stats.Projectile == nil {
		return
	}
	u.SpendCharge()

	payload := component.ProjectilePayload{
		Damage:       u.Damage,
		SplashRadius: u.Stats.Projectile.SplashRadius,
	}
	if u.Ability == component.AbilityVenom {
		payload.Effect, payload.HasEffect = EffectFromStats(u.Stats.OnHit, e, u.Pos)
	}

	w.Emit(event.EventProjectileLaunch, &event.ProjectileLaunchPayload{
		Owner:   e,
		Faction: u.Faction,
		Target:  wu.Target,
		Origin:  u.Pos,
		Dest:    tu.Pos,
		Stats:   *u.Stats.Projectile,
		Payload: payload,
	})
}
