package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
)

func rangedBlock(charges int) *content.StatBlock {
	b := melee("colony", 20)
	b.Attack = "ranged"
	b.Range = 200
	b.Charges = charges
	b.Projectile = &content.ProjectileStats{Speed: 10, HitRadius: 0.5}
	return b
}

func consumeType(events []event.GameEvent, t event.EventType) []event.GameEvent {
	var out []event.GameEvent
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func TestMeleeAttackRespectsCooldown(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	a := spawn(t, sim, "worker", 100, 100, melee("colony", 20))
	d := spawn(t, sim, "beetle", 105, 100, melee("hostile", 100))
	au, _ := w.LiveUnit(a)
	du, _ := w.LiveUnit(d)
	au.Target = d

	sys.Attack.Update()
	assert.Equal(t, 95, du.HP)
	assert.Equal(t, component.VisualAttacking, au.Visual)

	for i := 0; i < au.CooldownFrames-1; i++ {
		sys.Attack.Update()
	}
	assert.Equal(t, 95, du.HP)

	sys.Attack.Update()
	assert.Equal(t, 90, du.HP)
}

func TestMeleeOutOfRangeIsIdle(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	a := spawn(t, sim, "worker", 100, 100, melee("colony", 20))
	d := spawn(t, sim, "beetle", 150, 100, melee("hostile", 100))
	au, _ := w.LiveUnit(a)
	au.Target = d

	sys.Attack.Update()
	du, _ := w.LiveUnit(d)
	assert.Equal(t, 100, du.HP)
	assert.Equal(t, component.VisualIdle, au.Visual)
}

func TestChargesSuppressAttack(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	b := melee("colony", 20)
	b.Charges = 1
	b.CooldownFrames = 1
	a := spawn(t, sim, "worker", 100, 100, b)
	d := spawn(t, sim, "beetle", 105, 100, melee("hostile", 100))
	au, _ := w.LiveUnit(a)
	du, _ := w.LiveUnit(d)
	au.Target = d

	for i := 0; i < 5; i++ {
		sys.Attack.Update()
	}
	assert.Equal(t, 95, du.HP)
	assert.Zero(t, au.Charges)
}

func TestRangedLaunchAfterWindup(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	a := spawn(t, sim, "spitter", 100, 100, rangedBlock(2))
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 100))
	au, _ := w.LiveUnit(a)
	au.Target = d

	sys.Attack.Update()
	require.True(t, w.Windups.HasEntity(a))

	for i := 0; i < parameter.RangedWindupFrames-1; i++ {
		sys.Attack.Update()
	}
	assert.Empty(t, consumeType(w.Queue.Consume(), event.EventProjectileLaunch))

	sys.Attack.Update()
	launches := consumeType(w.Queue.Consume(), event.EventProjectileLaunch)
	require.Len(t, launches, 1)
	p := launches[0].Payload.(*event.ProjectileLaunchPayload)
	assert.Equal(t, d, p.Target)
	assert.Equal(t, a, p.Owner)
	assert.Equal(t, 1, au.Charges)
	assert.False(t, w.Windups.HasEntity(a))
}

func TestRangedWindupCancelledByTargetDeath(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	a := spawn(t, sim, "spitter", 100, 100, rangedBlock(2))
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 100))
	au, _ := w.LiveUnit(a)
	au.Target = d

	sys.Attack.Update()
	ApplyDamage(w, d, 0, 1000)
	w.Queue.Consume()

	for i := 0; i < parameter.RangedWindupFrames; i++ {
		sys.Attack.Update()
	}
	assert.Empty(t, consumeType(w.Queue.Consume(), event.EventProjectileLaunch))
	assert.Equal(t, 2, au.Charges)
	assert.Positive(t, au.CooldownTimer)
}

func TestConfusedUnitDoesNotAttack(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	a := spawn(t, sim, "worker", 100, 100, melee("colony", 20))
	d := spawn(t, sim, "beetle", 105, 100, melee("hostile", 100))
	au, _ := w.LiveUnit(a)
	au.Target = d
	sys.Status.Apply(a, component.Effect{Kind: component.EffectConfusion, Remaining: 10})

	sys.Attack.Update()
	du, _ := w.LiveUnit(d)
	assert.Equal(t, 100, du.HP)
}

func TestConfusionCancelsPendingWindup(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	a := spawn(t, sim, "spitter", 100, 100, rangedBlock(2))
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 100))
	au, _ := w.LiveUnit(a)
	au.Target = d

	sys.Attack.Update()
	require.True(t, w.Windups.HasEntity(a))
	sys.Status.Apply(a, component.Effect{Kind: component.EffectConfusion, Remaining: parameter.RangedWindupFrames * 2})
	require.Equal(t, component.ModeConfused, au.Mode)

	for i := 0; i < parameter.RangedWindupFrames; i++ {
		sys.Attack.Update()
	}
	assert.False(t, w.Windups.HasEntity(a))
	assert.Empty(t, consumeType(w.Queue.Consume(), event.EventProjectileLaunch))
	assert.Equal(t, 2, au.Charges)
	assert.Equal(t, component.VisualIdle, au.Visual)
}

func TestVenomAppliesOnHitEffect(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	b := melee("colony", 20)
	b.Ability = "venom"
	b.OnHit = &content.EffectStats{Kind: "slow", Magnitude: 0.5, DurationFrames: 30}
	a := spawn(t, sim, "weaver", 100, 100, b)
	d := spawn(t, sim, "beetle", 105, 100, fastBlock())
	au, _ := w.LiveUnit(a)
	au.Target = d

	sys.Attack.Update()
	du, _ := w.LiveUnit(d)
	assert.InDelta(t, 5.0, du.Speed, 1e-9)
	assert.Equal(t, component.ModeWebbed, du.Mode)
}
