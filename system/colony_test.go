package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/core"
)

func TestPlaceColony(t *testing.T) {
	sim, _ := newHarness(t)
	w := sim.World()

	placed, err := PlaceColony(sim, 10)
	require.NoError(t, err)
	require.Len(t, placed, 11)

	leader, ok := w.Leader(core.FactionColony)
	require.True(t, ok)
	assert.Equal(t, placed[0], leader)

	lu, _ := w.Units.GetComponent(leader)
	assert.Equal(t, "queen", lu.Kind)
	assert.Equal(t, w.Config.Width/2, lu.Pos.X)
	assert.Equal(t, w.Config.Height/2, lu.Pos.Y)

	kinds := sim.Catalog().KindsOf("colony")
	for i, e := range placed[1:] {
		u, ok := w.Units.GetComponent(e)
		require.True(t, ok)
		assert.Equal(t, kinds[i%len(kinds)], u.Kind)
		assert.Equal(t, core.FactionColony, u.Faction)

		want := colonyRingRadius + colonyRingSpacing*float64(i/colonyRingSlots)
		assert.InDelta(t, want, u.Pos.Sub(lu.Pos).Len(), 1e-9)
	}
}

func TestPlaceColonyLeaderOnly(t *testing.T) {
	sim, _ := newHarness(t)
	placed, err := PlaceColony(sim, 0)
	require.NoError(t, err)
	assert.Len(t, placed, 1)
}
