package system

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
)

// Ability is the per-kind hook pair selected by component.AbilityKind
type Ability interface {
	// OnAttack runs after a melee hit lands
	OnAttack(w *engine.World, st *StatusSystem, self core.Entity, u *component.UnitComponent, target core.Entity)
	// OnDeath runs once when death is processed
	OnDeath(w *engine.World, self core.Entity, u *component.UnitComponent)
}

var (
	abilityNone  Ability = noAbility{}
	abilityVenom Ability = venomAbility{}
	abilityBurst Ability = burstAbility{}
)

// AbilityFor returns the hooks for kind
func AbilityFor(kind component.AbilityKind) Ability {
	switch kind {
	case component.AbilityVenom:
		return abilityVenom
	case component.AbilityBurst:
		return abilityBurst
	default:
		return abilityNone
	}
}

type noAbility struct{}

func (noAbility) OnAttack(*engine.World, *StatusSystem, core.Entity, *component.UnitComponent, core.Entity) {
}

func (noAbility) OnDeath(*engine.World, core.Entity, *component.UnitComponent) {}

// venomAbility applies the stat block's on-hit effect
type venomAbility struct{ noAbility }

func (venomAbility) OnAttack(w *engine.World, st *StatusSystem, self core.Entity, u *component.UnitComponent, target core.Entity) {
	if u.Stats == nil {
		return
	}
	if eff, ok := EffectFromStats(u.Stats.OnHit, self, u.Pos); ok {
		st.Apply(target, eff)
	}
}

// burstAbility explodes on death; the death event is emitted once per unit so the explosion is too
type burstAbility struct{ noAbility }

func (burstAbility) OnDeath(w *engine.World, self core.Entity, u *component.UnitComponent) {
	if u.Stats == nil || u.Stats.Explode == nil {
		return
	}
	ex := u.Stats.Explode
	w.Emit(event.EventExplosionRequest, &event.ExplosionRequestPayload{
		Center:    u.Pos,
		Radius:    ex.Radius,
		Damage:    ex.Damage,
		Knockback: ex.Knockback,
		Faction:   u.Faction,
		Source:    self,
	})
}
