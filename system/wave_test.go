package system

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/status"
)

func TestWaveSize(t *testing.T) {
	tests := []struct {
		wave int
		want int
	}{
		{0, 0},
		{1, parameter.WaveBaseCount},
		{2, parameter.WaveBaseCount + parameter.WaveGrowth},
		{5, parameter.WaveBaseCount + 4*parameter.WaveGrowth},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WaveSize(tt.wave), "wave %d", tt.wave)
	}
}

func TestFirstWaveSpawnsAtEdges(t *testing.T) {
	sim, err := engine.NewSimulation(engine.DefaultConfig())
	require.NoError(t, err)
	sys := Register(sim, Options{Waves: true})
	require.NotNil(t, sys.Wave)
	rec := listen(sim, event.EventWaveStarted)

	sim.Run(parameter.WaveFirstFrame - 1)
	assert.Empty(t, sim.World().LiveUnits(core.FactionHostile))

	sim.Tick()
	hostiles := sim.World().LiveUnits(core.FactionHostile)
	assert.Len(t, hostiles, WaveSize(1))
	require.Equal(t, 1, rec.count(event.EventWaveStarted))
	p := rec.events[0].Payload.(*event.WaveStartedPayload)
	assert.Equal(t, 1, p.Wave)
	assert.Equal(t, int64(1), sim.World().Metrics.Ints.Get(status.KeyWave).Load())

	w := sim.World()
	width, height := w.Bounds()
	in := parameter.WaveSpawnInset
	for _, e := range hostiles {
		u, _ := w.LiveUnit(e)
		onEdge := u.Home.X == in || u.Home.Y == in || u.Home.X == width-in || u.Home.Y == height-in
		assert.True(t, onEdge, "spawn %v not on an edge", u.Home)
	}
}

func TestBossJoinsEveryFifthWave(t *testing.T) {
	sim, _ := newHarness(t)
	w := sim.World()
	ws := NewWaveSystem(w, sim.Catalog())
	bosses := sim.Catalog().BossKinds()
	require.NotEmpty(t, bosses)

	for n := 1; n <= parameter.WaveBossEvery; n++ {
		ws.startWave()
		reqs := spawnRequests(w.Queue.Consume())

		hasBoss := slices.ContainsFunc(reqs, func(r *event.SpawnRequestPayload) bool {
			return slices.Contains(bosses, r.Kind)
		})
		if n == parameter.WaveBossEvery {
			assert.True(t, hasBoss)
			assert.Len(t, reqs, WaveSize(n)+1)
		} else {
			assert.False(t, hasBoss, "wave %d", n)
			assert.Len(t, reqs, WaveSize(n))
		}
	}
	assert.Equal(t, parameter.WaveBossEvery, ws.Wave())
}
