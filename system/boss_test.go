package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/status"
	"github.com/lixenwraith/antcolony/vmath"
)

// engage drives a boss through SPAWN and PATROL into ATTACK against target
func engage(t *testing.T, sys *Systems, w *engine.World, boss, target core.Entity) {
	t.Helper()
	for i := 0; i < parameter.BossSpawnFrames; i++ {
		sys.Boss.Update()
	}
	require.Equal(t, "PATROL", sys.Boss.State(boss))

	bu, _ := w.LiveUnit(boss)
	bu.Target = target
	sys.Boss.Update()
	require.Equal(t, "PURSUE", sys.Boss.State(boss))
	sys.Boss.Update()
	require.Equal(t, "ATTACK", sys.Boss.State(boss))
}

func spawnRequests(events []event.GameEvent) []*event.SpawnRequestPayload {
	var out []*event.SpawnRequestPayload
	for _, ev := range consumeType(events, event.EventSpawnRequest) {
		out = append(out, ev.Payload.(*event.SpawnRequestPayload))
	}
	return out
}

func TestBossStartsInSpawn(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	boss := spawn(t, sim, "broodmother", 100, 100, nil)

	sys.Boss.Update()
	assert.Equal(t, "SPAWN", sys.Boss.State(boss))
	bc, _ := w.Bosses.GetComponent(boss)
	assert.Equal(t, "SPAWN", bc.State)
	assert.Equal(t, component.MotionHold, bc.Motion)
	assert.False(t, bc.AttackEnabled)
}

func TestSummonBossLifecycle(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	boss := spawn(t, sim, "broodmother", 100, 100, nil)
	prey := spawn(t, sim, "worker", 110, 100, nil)

	engage(t, sys, w, boss, prey)
	bc, _ := w.Bosses.GetComponent(boss)
	assert.True(t, bc.AttackEnabled)
	assert.Equal(t, component.MotionHold, bc.Motion)

	w.Queue.Consume()
	bc.SpecialTimer = 0
	sys.Boss.Update()
	require.Equal(t, "SPECIAL_WINDUP", sys.Boss.State(boss))
	assert.False(t, bc.AttackEnabled)
	assert.Equal(t, bc.SpecialCooldownFrames, bc.SpecialTimer)
	assert.Len(t, consumeType(w.Queue.Consume(), event.EventBossSpecialStarted), 1)

	for i := 0; i < parameter.BossWindupFrames; i++ {
		sys.Boss.Update()
	}
	require.Equal(t, "SPECIAL_ACTIVE", sys.Boss.State(boss))

	reqs := spawnRequests(w.Queue.Consume())
	require.Len(t, reqs, 2)
	for _, r := range reqs {
		assert.Equal(t, "guard", r.Kind)
		assert.Equal(t, boss, r.Owner)
		assert.InDelta(t, parameter.BossGuardSpawnRadius, vmath.Dist(r.Pos, vmath.V2(100, 100)), 1e-6)
	}

	for i := 0; i < parameter.BossActiveFrames; i++ {
		sys.Boss.Update()
	}
	require.Equal(t, "SPECIAL_RECOVER", sys.Boss.State(boss))
	for i := 0; i < parameter.BossRecoverFrames; i++ {
		sys.Boss.Update()
	}
	assert.Equal(t, "ATTACK", sys.Boss.State(boss))
}

func TestSummonRespectsGuardCap(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	boss := spawn(t, sim, "broodmother", 100, 100, nil)
	prey := spawn(t, sim, "worker", 110, 100, nil)
	engage(t, sys, w, boss, prey)

	bc, _ := w.Bosses.GetComponent(boss)
	for i := 0; i < bc.GuardCap; i++ {
		w.Emit(event.EventSpawnRequest, &event.SpawnRequestPayload{Kind: "guard", Pos: vmath.V2(300, 300), Owner: boss})
	}
	sim.Tick()
	require.Len(t, bc.Guards, bc.GuardCap)

	bc.SpecialTimer = 0
	sys.Boss.Update()
	assert.NotEqual(t, "SPECIAL_WINDUP", sys.Boss.State(boss))
}

func TestTargetLossReturnsToPatrol(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	boss := spawn(t, sim, "broodmother", 100, 100, nil)
	prey := spawn(t, sim, "worker", 110, 100, nil)
	engage(t, sys, w, boss, prey)

	// Out of range first, then gone
	pu, _ := w.LiveUnit(prey)
	pu.Pos.X = 150
	sys.Boss.Update()
	assert.Equal(t, "PURSUE", sys.Boss.State(boss))

	ApplyDamage(w, prey, 0, 1000)
	sys.Boss.Update()
	assert.Equal(t, "PATROL", sys.Boss.State(boss))
}

func TestBossEscalatesOnce(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	boss := spawn(t, sim, "broodmother", 100, 100, nil)
	sys.Boss.Update()
	w.Queue.Consume()

	bu, _ := w.LiveUnit(boss)
	bc, _ := w.Bosses.GetComponent(boss)
	speed, cooldown, special := bu.Speed, bu.CooldownFrames, bc.SpecialCooldownFrames

	bu.HP = bu.MaxHP / 2
	sys.Boss.Update()
	assert.True(t, bc.Escalated)
	assert.InDelta(t, 0.5, w.Metrics.Floats.Get(status.KeyBossHPFraction).Get(), 0.01)
	assert.InDelta(t, speed*parameter.BossEscalationSpeedFactor, bu.Speed, 1e-9)
	assert.Equal(t, int(float64(cooldown)*parameter.BossEscalationCooldownFactor), bu.CooldownFrames)
	assert.Equal(t, int(float64(special)*parameter.BossEscalationCooldownFactor), bc.SpecialCooldownFrames)
	assert.Len(t, consumeType(w.Queue.Consume(), event.EventBossEscalated), 1)

	bu.HP = 1
	sys.Boss.Update()
	assert.InDelta(t, speed*parameter.BossEscalationSpeedFactor, bu.Speed, 1e-9)
	assert.Empty(t, consumeType(w.Queue.Consume(), event.EventBossEscalated))

	// Regenerating above the threshold keeps the escalated stats
	Heal(w, boss, bu.MaxHP)
	require.Equal(t, bu.MaxHP, bu.HP)
	require.Greater(t, bu.HPFraction(), parameter.BossEscalationThreshold)
	sys.Boss.Update()
	assert.True(t, bc.Escalated)
	assert.InDelta(t, speed*parameter.BossEscalationSpeedFactor, bu.Speed, 1e-9)
	assert.Equal(t, int(float64(cooldown)*parameter.BossEscalationCooldownFactor), bu.CooldownFrames)
	assert.Equal(t, int(float64(special)*parameter.BossEscalationCooldownFactor), bc.SpecialCooldownFrames)
	assert.Empty(t, consumeType(w.Queue.Consume(), event.EventBossEscalated))
}

func TestDiveLocksPointAndImpacts(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	boss := spawn(t, sim, "hornet_queen", 100, 100, nil)
	prey := spawn(t, sim, "worker", 110, 100, nil)
	engage(t, sys, w, boss, prey)

	bc, _ := w.Bosses.GetComponent(boss)
	bc.SpecialTimer = 0
	sys.Boss.Update()
	require.Equal(t, "SPECIAL_WINDUP", sys.Boss.State(boss))
	assert.Equal(t, vmath.V2(110, 100), bc.LockedPoint)

	// The lock holds even if the target moves away
	pu, _ := w.LiveUnit(prey)
	pu.Pos = vmath.V2(130, 100)

	for i := 0; i < parameter.BossWindupFrames; i++ {
		sys.Boss.Update()
	}
	require.Equal(t, "SPECIAL_ACTIVE", sys.Boss.State(boss))
	assert.Equal(t, component.MotionDash, bc.Motion)

	bu, _ := w.LiveUnit(boss)
	for i := 0; i < 10 && bu.Pos != bc.LockedPoint; i++ {
		sys.Movement.Update()
	}
	require.Equal(t, vmath.V2(110, 100), bu.Pos)

	w.Queue.Consume()
	sys.Boss.Update()
	assert.Equal(t, "SPECIAL_RECOVER", sys.Boss.State(boss))
	assert.Equal(t, component.MotionHold, bc.Motion)

	blasts := consumeType(w.Queue.Consume(), event.EventExplosionRequest)
	require.Len(t, blasts, 1)
	p := blasts[0].Payload.(*event.ExplosionRequestPayload)
	assert.Equal(t, vmath.V2(110, 100), p.Center)
	assert.Equal(t, boss, p.Source)
}

func TestTerritorySpecialNeedsEnrage(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	boss := spawn(t, sim, "mantis", 100, 100, nil)
	prey := spawn(t, sim, "worker", 110, 100, nil)
	engage(t, sys, w, boss, prey)

	bc, _ := w.Bosses.GetComponent(boss)
	bc.SpecialTimer = 0
	sys.Boss.Update()
	assert.Equal(t, "ATTACK", sys.Boss.State(boss))

	bu, _ := w.LiveUnit(boss)
	bu.HP = int(float64(bu.MaxHP) * 0.7)
	sys.Boss.Update()
	require.Equal(t, "SPECIAL_WINDUP", sys.Boss.State(boss))

	w.Queue.Consume()
	for i := 0; i < parameter.BossWindupFrames; i++ {
		sys.Boss.Update()
	}
	require.Equal(t, "SPECIAL_ACTIVE", sys.Boss.State(boss))
	blasts := consumeType(w.Queue.Consume(), event.EventExplosionRequest)
	require.Len(t, blasts, 1)
	assert.Equal(t, bc.SpecialRadius, blasts[0].Payload.(*event.ExplosionRequestPayload).Radius)
}

func TestTerritoryBossLeavesCombatOutsideTerritory(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	boss := spawn(t, sim, "mantis", 100, 100, nil)
	prey := spawn(t, sim, "worker", 110, 100, nil)
	engage(t, sys, w, boss, prey)

	bu, _ := w.LiveUnit(boss)
	bu.Pos = vmath.V2(300, 100)
	pu, _ := w.LiveUnit(prey)
	pu.Pos = vmath.V2(305, 100)

	sys.Boss.Update()
	assert.Equal(t, "PATROL", sys.Boss.State(boss))
	assert.Equal(t, core.Entity(0), bu.Target)
}

func TestBossDeathCleansUpGuards(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	rec := listen(sim, event.EventUnitKilled, event.EventBossDefeated)

	boss := spawn(t, sim, "broodmother", 400, 300, nil)
	for i := 0; i < 3; i++ {
		w.Emit(event.EventSpawnRequest, &event.SpawnRequestPayload{
			Kind:  "guard",
			Pos:   vmath.V2(380+float64(i)*20, 330),
			Owner: boss,
		})
	}
	sim.Tick()

	bc, _ := w.Bosses.GetComponent(boss)
	require.Len(t, bc.Guards, 3)
	require.Len(t, w.LiveUnits(core.FactionHostile), 4)

	ApplyDamage(w, boss, 0, 100000)
	sim.Tick()

	assert.Empty(t, w.LiveUnits(core.FactionHostile))
	assert.Zero(t, w.Units.CountEntities())
	assert.Equal(t, 1, rec.count(event.EventUnitKilled))
	assert.Equal(t, boss, rec.of(event.EventUnitKilled)[0].Payload.(*event.UnitKilledPayload).Entity)

	defeated := rec.of(event.EventBossDefeated)
	require.Len(t, defeated, 1)
	p := defeated[0].Payload.(*event.BossPhasePayload)
	assert.Equal(t, "DEAD", p.Phase)
	assert.Equal(t, "broodmother", p.Kind)
	assert.Equal(t, "summon", p.Ability)

	// Nothing further happens once the boss is gone
	sim.Tick()
	assert.Equal(t, 1, rec.count(event.EventUnitKilled))
	assert.Equal(t, "", sys.Boss.State(boss))
}

func TestGuardDeathLeavesRoster(t *testing.T) {
	sim, _ := newHarness(t)
	w := sim.World()

	boss := spawn(t, sim, "broodmother", 400, 300, nil)
	w.Emit(event.EventSpawnRequest, &event.SpawnRequestPayload{Kind: "guard", Pos: vmath.V2(420, 300), Owner: boss})
	sim.Tick()

	bc, _ := w.Bosses.GetComponent(boss)
	require.Len(t, bc.Guards, 1)
	guard := bc.Guards[0]
	owner, ok := w.Owners.GetComponent(guard)
	require.True(t, ok)
	assert.Equal(t, boss, owner.Owner)

	ApplyDamage(w, guard, 0, 1000)
	sim.Tick()
	assert.Empty(t, bc.Guards)
}

func TestBossGraphFromFile(t *testing.T) {
	dir := t.TempDir()
	graph := `
initial: IDLE
states:
  Root:
    transitions:
      - {trigger: UnitDied, target: DEAD}
  IDLE:
    on_enter:
      - {action: SetMotion, args: {motion: hold}}
  DEAD:
    on_enter:
      - {action: Defeat}
`
	path := filepath.Join(dir, "idle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(graph), 0o644))

	sim, sys := newHarness(t)
	b, err := sim.Catalog().Lookup("broodmother")
	require.NoError(t, err)
	custom := *b
	bs := *b.Boss
	bs.Graph = path
	custom.Boss = &bs

	boss := spawn(t, sim, "broodmother", 100, 100, &custom)
	for i := 0; i < parameter.BossSpawnFrames+5; i++ {
		sys.Boss.Update()
	}
	assert.Equal(t, "IDLE", sys.Boss.State(boss))
}

func TestBossGraphFallbackOnBadPath(t *testing.T) {
	sim, sys := newHarness(t)
	w := sim.World()
	b := &content.StatBlock{
		Faction: "hostile",
		HP:      100,
		Attack:  "melee",
		Boss:    &content.BossStats{Variant: "summon", Graph: filepath.Join(t.TempDir(), "missing.yaml")},
	}
	boss := spawn(t, sim, "brood", 100, 100, b)

	sys.Boss.Update()
	assert.Equal(t, "SPAWN", sys.Boss.State(boss))
	assert.Equal(t, int64(1), w.Metrics.Ints.Get(status.KeyWarnings).Load())
}
