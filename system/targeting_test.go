package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
)

func TestSelectTargetPrefersAttacker(t *testing.T) {
	sim, _ := newHarness(t)
	w := sim.World()

	defender := spawn(t, sim, "soldier", 100, 100, nil)
	attacker := spawn(t, sim, "beetle", 150, 100, melee("hostile", 10))
	bystander := spawn(t, sim, "beetle", 110, 100, melee("hostile", 10))

	au, _ := w.LiveUnit(attacker)
	au.Target = defender

	du, _ := w.LiveUnit(defender)
	require.True(t, du.PriorityTargeting)
	candidates := []core.Entity{attacker, bystander}

	assert.Equal(t, attacker, SelectTarget(w, defender, du, candidates))

	du.PriorityTargeting = false
	assert.Equal(t, bystander, SelectTarget(w, defender, du, candidates))
}

func TestSelectTargetPrefersLeaderOverNearest(t *testing.T) {
	sim, _ := newHarness(t)
	w := sim.World()

	hb := melee("hostile", 50)
	hb.PriorityTargeting = true
	hunter := spawn(t, sim, "beetle", 100, 100, hb)
	near := spawn(t, sim, "worker", 110, 100, nil)
	queen := spawn(t, sim, "queen", 160, 100, nil)

	hu, _ := w.LiveUnit(hunter)
	assert.Equal(t, queen, SelectTarget(w, hunter, hu, []core.Entity{near, queen}))

	// Out of perception the leader gives way to the nearest
	qu, _ := w.LiveUnit(queen)
	qu.Pos.X = 400
	assert.Equal(t, near, SelectTarget(w, hunter, hu, []core.Entity{near, queen}))
}

func TestSelectTargetRespectsPerceptionAndFaction(t *testing.T) {
	sim, _ := newHarness(t)
	w := sim.World()

	self := spawn(t, sim, "worker", 100, 100, nil)
	ally := spawn(t, sim, "worker", 105, 100, nil)
	far := spawn(t, sim, "beetle", 700, 500, melee("hostile", 10))

	u, _ := w.LiveUnit(self)
	assert.Equal(t, core.Entity(0), SelectTarget(w, self, u, []core.Entity{self, ally, far}))
}

func TestTargetingRetainsAndReacquires(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	self := spawn(t, sim, "worker", 100, 100, nil)
	first := spawn(t, sim, "beetle", 120, 100, melee("hostile", 10))
	second := spawn(t, sim, "beetle", 140, 100, melee("hostile", 10))

	sys.Targeting.Update()
	u, _ := w.LiveUnit(self)
	assert.Equal(t, first, u.Target)

	// A nearer newcomer does not steal a valid target
	su, _ := w.LiveUnit(second)
	su.Pos.X = 101
	sys.Targeting.Update()
	assert.Equal(t, first, u.Target)

	ApplyDamage(w, first, 0, 100)
	sys.Targeting.Update()
	assert.Equal(t, second, u.Target)
}

func TestTargetingSuspendedWhileConfused(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	self := spawn(t, sim, "worker", 100, 100, nil)
	spawn(t, sim, "beetle", 120, 100, melee("hostile", 10))

	sys.Status.Apply(self, component.Effect{Kind: component.EffectConfusion, Remaining: 5})
	sys.Targeting.Update()

	u, _ := w.LiveUnit(self)
	assert.Equal(t, core.Entity(0), u.Target)
}

func TestTerritoryBossIgnoresIntruderOutsideTerritory(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()

	boss := spawn(t, sim, "mantis", 100, 100, nil)
	outside := spawn(t, sim, "worker", 270, 100, nil)

	bu, _ := w.LiveUnit(boss)
	bu.Pos.X = 200
	sys.Targeting.Update()
	assert.Equal(t, core.Entity(0), bu.Target)

	ou, _ := w.LiveUnit(outside)
	ou.Pos.X = 240
	sys.Targeting.Update()
	assert.Equal(t, outside, bu.Target)
}
