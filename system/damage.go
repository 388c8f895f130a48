package system

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/status"
	"github.com/lixenwraith/antcolony/vmath"
)

// ApplyDamage is the single damage path shared by melee, projectiles, area damage and DOT
// HP is clamped to [0, MaxHP]; the hit that reaches zero marks the unit dead and queues death processing
// Returns the HP removed and whether this hit killed the unit
func ApplyDamage(w *engine.World, target, source core.Entity, amount int) (int, bool) {
	u, ok := w.Units.GetComponent(target)
	if !ok || u.Dead || amount <= 0 {
		return 0, false
	}

	before := u.HP
	u.HP = vmath.ClampInt(u.HP-amount, 0, u.MaxHP)
	dealt := before - u.HP
	w.Metrics.Ints.Get(status.KeyDamageDealt).Add(int64(dealt))

	if u.HP > 0 {
		return dealt, false
	}

	// Dead from this instant: excluded from queries for the rest of the tick
	u.Dead = true
	u.Visual = component.VisualDead
	u.Vel = vmath.Vec2{}
	u.Target = 0
	w.Windups.RemoveEntity(target)
	event.EmitDied(w.Queue, target, source, w.Frame())
	return dealt, true
}

// Heal restores HP on a live unit, clamped to MaxHP, returns HP restored
func Heal(w *engine.World, target core.Entity, amount int) int {
	u, ok := w.LiveUnit(target)
	if !ok || amount <= 0 {
		return 0
	}
	before := u.HP
	u.HP = vmath.ClampInt(u.HP+amount, 0, u.MaxHP)
	return u.HP - before
}
