package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/vmath"
)

type probeSystem struct {
	SystemBase
	name     string
	priority int
	types    []event.EventType
	order    *[]string
	onUpdate func()
	onEvent  func(ev event.GameEvent)
}

func (p *probeSystem) Name() string                  { return p.name }
func (p *probeSystem) Priority() int                 { return p.priority }
func (p *probeSystem) EventTypes() []event.EventType { return p.types }

func (p *probeSystem) Update() {
	if p.order != nil {
		*p.order = append(*p.order, p.name)
	}
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

func (p *probeSystem) HandleEvent(ev event.GameEvent) {
	if p.onEvent != nil {
		p.onEvent(ev)
	}
}

func newTestSimulation(t *testing.T, opts ...Option) *Simulation {
	t.Helper()
	sim, err := NewSimulation(DefaultConfig(), opts...)
	require.NoError(t, err)
	return sim
}

func TestStoreKeepsInsertionOrderOnRemove(t *testing.T) {
	s := NewStore[int]()
	for i := 1; i <= 4; i++ {
		s.SetComponent(core.Entity(i), i*10)
	}
	s.RemoveEntity(2)

	assert.Equal(t, []core.Entity{1, 3, 4}, s.GetAllEntities())
	assert.False(t, s.HasEntity(2))
	v, ok := s.GetComponent(3)
	require.True(t, ok)
	assert.Equal(t, 30, v)
	assert.Equal(t, 3, s.CountEntities())
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	sim := newTestSimulation(t)
	var order []string
	sim.AddSystem(&probeSystem{name: "late", priority: 50, order: &order})
	sim.AddSystem(&probeSystem{name: "early", priority: 10, order: &order})
	sim.AddSystem(&probeSystem{name: "mid", priority: 20, order: &order})

	sim.Tick()
	assert.Equal(t, []string{"early", "mid", "late"}, order)
	assert.Equal(t, uint64(1), sim.World().Frame())
}

func TestSpawnUnitFromCatalog(t *testing.T) {
	sim := newTestSimulation(t)
	e, err := sim.SpawnUnit("soldier", vmath.V2(10, 20), nil)
	require.NoError(t, err)

	u, ok := sim.World().LiveUnit(e)
	require.True(t, ok)
	assert.Equal(t, core.FactionColony, u.Faction)
	assert.Equal(t, 45, u.HP)
	assert.Equal(t, u.HP, u.MaxHP)
	assert.Equal(t, vmath.V2(10, 20), u.Home)
	assert.True(t, sim.World().Statuses.HasEntity(e))
}

func TestSpawnUnknownKindUsesDefaultBlock(t *testing.T) {
	sim := newTestSimulation(t)
	e, err := sim.SpawnUnit("termite", vmath.V2(0, 0), nil)
	require.NoError(t, err)

	u, ok := sim.World().LiveUnit(e)
	require.True(t, ok)
	assert.Equal(t, "termite", u.Kind)
	assert.Equal(t, content.DefaultStatBlock("termite").HP, u.HP)
}

func TestSpawnRejectsInvalidExplicitBlock(t *testing.T) {
	sim := newTestSimulation(t)
	_, err := sim.SpawnUnit("broken", vmath.V2(0, 0), &content.StatBlock{Faction: "colony"})
	assert.ErrorIs(t, err, content.ErrInvalidStatBlock)
}

func TestSpawnBossAttachesEncounter(t *testing.T) {
	sim := newTestSimulation(t)
	e, err := sim.SpawnUnit("broodmother", vmath.V2(100, 100), nil)
	require.NoError(t, err)

	boss, ok := sim.World().Bosses.GetComponent(e)
	require.True(t, ok)
	assert.Equal(t, component.BossSummon, boss.Variant)
	assert.Equal(t, 4, boss.GuardCap)

	u, _ := sim.World().LiveUnit(e)
	assert.True(t, u.PriorityTargeting)
}

func TestIsolateConvertsPanicToWarning(t *testing.T) {
	var warnings []Warning
	sim := newTestSimulation(t, WithReporter(ReporterFunc(func(w Warning) {
		warnings = append(warnings, w)
	})))

	ran := 0
	sim.AddSystem(&probeSystem{name: "fragile", priority: 1, onUpdate: func() {
		for _, e := range []core.Entity{1, 2, 3} {
			sim.World().Isolate("fragile", e, func() {
				if e == 2 {
					panic("bad unit")
				}
				ran++
			})
		}
	}})

	sim.Tick()
	assert.Equal(t, 2, ran, "remaining units still update")
	require.Len(t, warnings, 1)
	assert.Equal(t, core.Entity(2), warnings[0].Entity)
	assert.True(t, errors.Is(warnings[0].Err, ErrUnitPanic))
}

func TestSystemPanicDoesNotHaltTick(t *testing.T) {
	sim := newTestSimulation(t)
	var order []string
	sim.AddSystem(&probeSystem{name: "boom", priority: 1, onUpdate: func() { panic("system") }})
	sim.AddSystem(&probeSystem{name: "after", priority: 2, order: &order})

	sim.Tick()
	assert.Equal(t, []string{"after"}, order)
	assert.Equal(t, int64(1), sim.World().warnings.Load())
}

func TestFlushProcessesChainedCommandsInRounds(t *testing.T) {
	sim := newTestSimulation(t)
	var seen []int
	sim.AddSystem(&probeSystem{
		name:  "chain",
		types: []event.EventType{event.EventExplosionRequest},
		onEvent: func(ev event.GameEvent) {
			depth := ev.Payload.(int)
			seen = append(seen, depth)
			if depth < 3 {
				sim.World().Emit(event.EventExplosionRequest, depth+1)
			}
		},
	})
	sim.World().Emit(event.EventExplosionRequest, 0)

	sim.Tick()
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, 0, sim.World().Queue.Len())
}

func TestFlushRoundLimitWarns(t *testing.T) {
	var warnings []Warning
	cfg := DefaultConfig()
	cfg.MaxFlushRounds = 2
	sim, err := NewSimulation(cfg, WithReporter(ReporterFunc(func(w Warning) {
		warnings = append(warnings, w)
	})))
	require.NoError(t, err)

	sim.AddSystem(&probeSystem{
		name:  "loop",
		types: []event.EventType{event.EventExplosionRequest},
		onEvent: func(ev event.GameEvent) {
			sim.World().Emit(event.EventExplosionRequest, nil)
		},
	})
	sim.World().Emit(event.EventExplosionRequest, nil)

	sim.Tick()
	require.Len(t, warnings, 1)
	assert.Equal(t, 1, sim.World().Queue.Len(), "leftover carried to next tick")
}

func TestListenersReceiveAfterSystems(t *testing.T) {
	sim := newTestSimulation(t)
	var order []string
	sim.AddSystem(&probeSystem{
		name:    "sys",
		types:   []event.EventType{event.EventUnitKilled},
		onEvent: func(event.GameEvent) { order = append(order, "system") },
	})
	sim.Subscribe(ListenerFunc(func(event.GameEvent) { order = append(order, "listener") }), event.EventUnitKilled)

	sim.World().Emit(event.EventUnitKilled, &event.UnitKilledPayload{})
	sim.Tick()
	assert.Equal(t, []string{"system", "listener"}, order)
}

func TestSpawnRequestWithOwnerJoinsRoster(t *testing.T) {
	sim := newTestSimulation(t)
	boss, err := sim.SpawnUnit("broodmother", vmath.V2(50, 50), nil)
	require.NoError(t, err)

	sim.World().Emit(event.EventSpawnRequest, &event.SpawnRequestPayload{Kind: "guard", Pos: vmath.V2(60, 50), Owner: boss})
	sim.Tick()

	b, _ := sim.World().Bosses.GetComponent(boss)
	require.Len(t, b.Guards, 1)
	owner, ok := sim.World().Owners.GetComponent(b.Guards[0])
	require.True(t, ok)
	assert.Equal(t, boss, owner.Owner)
}

func TestDespawnRequestRemovesWithoutCorpseReward(t *testing.T) {
	sim := newTestSimulation(t)
	boss, _ := sim.SpawnUnit("broodmother", vmath.V2(50, 50), nil)
	sim.World().Emit(event.EventSpawnRequest, &event.SpawnRequestPayload{Kind: "guard", Owner: boss})
	sim.Tick()

	b, _ := sim.World().Bosses.GetComponent(boss)
	guard := b.Guards[0]
	event.EmitDespawn(sim.World().Queue, guard, sim.World().Frame())
	sim.Tick()

	assert.False(t, sim.World().Units.HasEntity(guard))
	assert.Empty(t, b.Guards, "reap drops guard from roster")

	snap := sim.Snapshot()
	var found bool
	for _, v := range snap.Units {
		if v.ID == uint64(guard) {
			found = true
			assert.Equal(t, uint8(component.VisualDead), v.Visual)
		}
	}
	assert.True(t, found, "reaped unit reported once as a corpse")

	sim.Tick()
	for _, v := range sim.Snapshot().Units {
		assert.NotEqual(t, uint64(guard), v.ID)
	}
}

func TestDespawnUnknownEntity(t *testing.T) {
	sim := newTestSimulation(t)
	assert.ErrorIs(t, sim.Despawn(99), ErrUnitNotFound)
}

func TestQueryExcludesDeadUnits(t *testing.T) {
	sim := newTestSimulation(t)
	w := sim.World()
	a, _ := sim.SpawnUnit("beetle", vmath.V2(0, 0), nil)
	b, _ := sim.SpawnUnit("beetle", vmath.V2(5, 0), nil)

	ub, _ := w.LiveUnit(b)
	ub.Dead = true

	assert.Equal(t, []core.Entity{a}, w.LiveUnits(core.FactionHostile))
	assert.Equal(t, []core.Entity{a}, w.UnitsInRadius(vmath.V2(0, 0), 10, core.FactionHostile))
	_, ok := w.LiveUnit(b)
	assert.False(t, ok)
}

func TestLeaderLookup(t *testing.T) {
	sim := newTestSimulation(t)
	_, ok := sim.World().Leader(core.FactionColony)
	assert.False(t, ok)

	q, _ := sim.SpawnUnit("queen", vmath.V2(400, 300), nil)
	got, ok := sim.World().Leader(core.FactionColony)
	require.True(t, ok)
	assert.Equal(t, q, got)
}

func TestSnapshotOrderedAndStamped(t *testing.T) {
	sim := newTestSimulation(t)
	for i := 0; i < 3; i++ {
		_, err := sim.SpawnUnit("worker", vmath.V2(float64(i), 0), nil)
		require.NoError(t, err)
	}
	sim.Tick()

	snap := sim.Snapshot()
	require.Len(t, snap.Units, 3)
	assert.Equal(t, uint64(1), snap.Frame)
	assert.Equal(t, sim.World().RunID.String(), snap.RunID)
	for i := 1; i < len(snap.Units); i++ {
		assert.Less(t, snap.Units[i-1].ID, snap.Units[i].ID)
	}
	assert.Equal(t, 1.0, snap.Units[0].HP)
}
