package system

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/vmath"
)

// Colony layout around the leader
const (
	colonyRingSlots   = 8
	colonyRingRadius  = 40.0
	colonyRingSpacing = 24.0
)

// PlaceColony spawns the leader at the world center and n defenders on rings around it
// Defender kinds cycle through the catalog's colony kinds in sorted order
func PlaceColony(sim *engine.Simulation, n int) ([]core.Entity, error) {
	w := sim.World()
	center := vmath.Vec2{X: w.Config.Width / 2, Y: w.Config.Height / 2}

	leaderKind, ok := sim.Catalog().LeaderKind()
	if !ok {
		return nil, fmt.Errorf("place colony: catalog has no leader kind")
	}
	leader, err := sim.SpawnUnit(leaderKind, center, nil)
	if err != nil {
		return nil, fmt.Errorf("place colony: %w", err)
	}
	placed := []core.Entity{leader}

	kinds := sim.Catalog().KindsOf("colony")
	if len(kinds) == 0 {
		return placed, nil
	}
	for i := 0; i < n; i++ {
		ring := i / colonyRingSlots
		// Alternate rings are offset half a slot
		angle := (float64(i%colonyRingSlots) + 0.5*float64(ring%2)) * 2 * math.Pi / colonyRingSlots
		offset := vmath.Vec2{X: colonyRingRadius + colonyRingSpacing*float64(ring)}.Rotate(angle)
		pos := center.Add(offset)
		if !w.InBounds(pos, 0) {
			continue
		}
		e, err := sim.SpawnUnit(kinds[i%len(kinds)], pos, nil)
		if err != nil {
			return placed, fmt.Errorf("place colony: %w", err)
		}
		placed = append(placed, e)
	}

	w.Logger.Info("colony placed",
		zap.String("leader", leaderKind),
		zap.Int("defenders", len(placed)-1))
	return placed, nil
}
