package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/vmath"
)

func newHarness(t *testing.T) (*engine.Simulation, *Systems) {
	t.Helper()
	sim, err := engine.NewSimulation(engine.DefaultConfig())
	require.NoError(t, err)
	return sim, Register(sim, Options{})
}

// melee returns a minimal valid melee stat block
func melee(faction string, hp int) *content.StatBlock {
	return &content.StatBlock{
		Faction:        faction,
		HP:             hp,
		Damage:         5,
		Speed:          1,
		Perception:     150,
		Range:          10,
		CooldownFrames: 10,
		Reward:         3,
		Attack:         "melee",
	}
}

func spawn(t *testing.T, sim *engine.Simulation, kind string, x, y float64, stats *content.StatBlock) core.Entity {
	t.Helper()
	e, err := sim.SpawnUnit(kind, vmath.V2(x, y), stats)
	require.NoError(t, err)
	return e
}

// recorder collects notifications routed to listeners
type recorder struct {
	events []event.GameEvent
}

func (r *recorder) OnEvent(ev event.GameEvent) {
	r.events = append(r.events, ev)
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (r *recorder) of(t event.EventType) []event.GameEvent {
	var out []event.GameEvent
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func listen(sim *engine.Simulation, types ...event.EventType) *recorder {
	r := &recorder{}
	sim.Subscribe(r, types...)
	return r
}
