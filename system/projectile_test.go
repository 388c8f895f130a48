package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/vmath"
)

func launchAt(sys *Systems, owner, target core.Entity, from, to vmath.Vec2, ps content.ProjectileStats, payload component.ProjectilePayload) core.Entity {
	return sys.Projectile.Launch(&event.ProjectileLaunchPayload{
		Owner:   owner,
		Faction: core.FactionColony,
		Target:  target,
		Origin:  from,
		Dest:    to,
		Stats:   ps,
		Payload: payload,
	})
}

func TestStraightProjectileArrivesOnSchedule(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 50))

	p := launchAt(sys, 0, d, vmath.V2(100, 100), vmath.V2(200, 100),
		content.ProjectileStats{Speed: 10, HitRadius: 0.5},
		component.ProjectilePayload{Damage: 7})
	require.NotZero(t, p)

	for i := 1; i < 10; i++ {
		require.Equal(t, OutcomeFlying, sys.Projectile.Advance(p), "frame %d", i)
	}
	assert.Equal(t, OutcomeHit, sys.Projectile.Advance(p))

	du, _ := w.LiveUnit(d)
	assert.Equal(t, 43, du.HP)
}

func TestStraightProjectileIsDeterministic(t *testing.T) {
	run := func() (int, vmath.Vec2) {
		sim, sys := newHarness(t)
		d := spawn(t, sim, "beetle", 157, 131, melee("hostile", 50))
		p := launchAt(sys, 0, d, vmath.V2(100, 100), vmath.V2(157, 131),
			content.ProjectileStats{Speed: 7, HitRadius: 0.5},
			component.ProjectilePayload{Damage: 1})
		frames := 0
		var last vmath.Vec2
		for {
			frames++
			pc, _ := sim.World().Projectiles.GetComponent(p)
			out := sys.Projectile.Advance(p)
			last = pc.Pos
			if out != OutcomeFlying {
				require.Equal(t, OutcomeHit, out)
				return frames, last
			}
			require.Less(t, frames, 100)
		}
	}
	f1, p1 := run()
	f2, p2 := run()
	assert.Equal(t, 10, f1)
	assert.Equal(t, f1, f2)
	assert.Equal(t, p1, p2)
}

func TestProjectileFreezesWhenTargetDies(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 50))
	other := spawn(t, sim, "beetle", 200, 100, melee("hostile", 50))

	p := launchAt(sys, 0, d, vmath.V2(100, 100), vmath.V2(200, 100),
		content.ProjectileStats{Speed: 10, HitRadius: 0.5, SplashRadius: 20},
		component.ProjectilePayload{Damage: 7, SplashRadius: 20})

	sys.Projectile.Advance(p)
	ApplyDamage(w, d, 0, 1000)

	var out Outcome
	for i := 0; i < 20 && out == OutcomeFlying; i++ {
		out = sys.Projectile.Advance(p)
	}
	assert.Equal(t, OutcomeExpired, out)

	pc, _ := w.Projectiles.GetComponent(p)
	assert.True(t, pc.Frozen)
	assert.Equal(t, vmath.V2(200, 100), pc.Pos)
	ou, _ := w.LiveUnit(other)
	assert.Equal(t, 50, ou.HP)
}

func TestHomingProjectileChasesMovingTarget(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 50))
	du, _ := w.LiveUnit(d)

	p := launchAt(sys, 0, d, vmath.V2(100, 100), vmath.V2(200, 100),
		content.ProjectileStats{Speed: 6, HitRadius: 2, Homing: true},
		component.ProjectilePayload{Damage: 5})

	var out Outcome
	for i := 0; i < 200 && out == OutcomeFlying; i++ {
		du.Pos = du.Pos.Add(vmath.V2(0, 1))
		out = sys.Projectile.Advance(p)
	}
	assert.Equal(t, OutcomeHit, out)
	assert.Equal(t, 45, du.HP)
}

func TestArcProjectileHitsOnlyOnLanding(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 50))
	du, _ := w.LiveUnit(d)

	p := launchAt(sys, 0, d, vmath.V2(100, 100), vmath.V2(200, 100),
		content.ProjectileStats{Speed: 4, HitRadius: 8, Arc: true, Gravity: 0.4},
		component.ProjectilePayload{Damage: 9})
	pc, _ := w.Projectiles.GetComponent(p)
	flight := pc.FlightFrames
	require.Positive(t, flight)

	for i := 1; i < flight; i++ {
		require.Equal(t, OutcomeFlying, sys.Projectile.Advance(p))
		assert.Equal(t, 50, du.HP)
	}
	assert.Equal(t, OutcomeHit, sys.Projectile.Advance(p))
	assert.Equal(t, 41, du.HP)
}

func TestSplashSparesPrimaryAndAllies(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 100))
	near := spawn(t, sim, "beetle", 210, 100, melee("hostile", 100))
	ally := spawn(t, sim, "worker", 205, 100, melee("colony", 100))

	p := launchAt(sys, 0, d, vmath.V2(190, 100), vmath.V2(200, 100),
		content.ProjectileStats{Speed: 10, HitRadius: 0.5},
		component.ProjectilePayload{Damage: 40, SplashRadius: 20})
	require.Equal(t, OutcomeHit, sys.Projectile.Advance(p))

	du, _ := w.LiveUnit(d)
	nu, _ := w.LiveUnit(near)
	au, _ := w.LiveUnit(ally)
	assert.Equal(t, 60, du.HP)
	assert.Equal(t, 80, nu.HP)
	assert.Equal(t, 100, au.HP)
}

func TestProjectileAppliesEffectFromOrigin(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 100))

	p := launchAt(sys, 0, d, vmath.V2(190, 100), vmath.V2(200, 100),
		content.ProjectileStats{Speed: 10, HitRadius: 0.5},
		component.ProjectilePayload{
			Damage:    1,
			HasEffect: true,
			Effect:    component.Effect{Kind: component.EffectConfusion, Remaining: 10},
		})
	require.Equal(t, OutcomeHit, sys.Projectile.Advance(p))

	du, _ := w.LiveUnit(d)
	assert.Equal(t, component.ModeConfused, du.Mode)
}

func TestProjectileSystemReapsFinishedProjectiles(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 100))

	p := launchAt(sys, 0, d, vmath.V2(195, 100), vmath.V2(200, 100),
		content.ProjectileStats{Speed: 10, HitRadius: 0.5},
		component.ProjectilePayload{Damage: 1})

	sys.Projectile.Update()
	assert.True(t, w.PendingRemoval(p))
}

func TestLaunchDroppedWhenOwnerDiesBeforeFlush(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	a := spawn(t, sim, "spitter", 100, 100, rangedBlock(2))
	d := spawn(t, sim, "beetle", 200, 100, melee("hostile", 100))
	au, _ := w.LiveUnit(a)
	au.Target = d

	for i := 0; i <= parameter.RangedWindupFrames; i++ {
		sys.Attack.Update()
	}
	require.Equal(t, 1, au.Charges)

	// Owner killed later in the same frame, launch still queued
	ApplyDamage(w, a, d, 1000)
	sim.Tick()

	assert.Empty(t, w.Projectiles.GetAllEntities())
	assert.Zero(t, launchAt(sys, a, d, vmath.V2(100, 100), vmath.V2(200, 100),
		content.ProjectileStats{Speed: 10}, component.ProjectilePayload{Damage: 1}))
}
