package system

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/status"
)

// DeathSystem processes units that reached zero HP: onDeath hooks, the single reward event, removal
// A unit is processed once; its removal mark guards repeated death commands
type DeathSystem struct {
	world *engine.World

	statKillsColony  *atomic.Int64
	statKillsHostile *atomic.Int64
	statReward       *atomic.Int64

	enabled bool
}

func NewDeathSystem(world *engine.World) *DeathSystem {
	s := &DeathSystem{world: world}
	s.statKillsColony = world.Metrics.Ints.Get(status.KeyKillsColony)
	s.statKillsHostile = world.Metrics.Ints.Get(status.KeyKillsHostile)
	s.statReward = world.Metrics.Ints.Get(status.KeyRewardTotal)
	s.Init()
	return s
}

// Init resets session state for new game
func (s *DeathSystem) Init() {
	s.statKillsColony.Store(0)
	s.statKillsHostile.Store(0)
	s.statReward.Store(0)
	s.enabled = true
}

func (s *DeathSystem) Name() string {
	return "death"
}

func (s *DeathSystem) Priority() int {
	return parameter.PriorityDeath
}

func (s *DeathSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventUnitDied}
}

func (s *DeathSystem) HandleEvent(ev event.GameEvent) {
	if !s.enabled || ev.Type != event.EventUnitDied {
		return
	}
	p, ok := ev.Payload.(*event.UnitDiedPayload)
	if !ok {
		return
	}
	s.process(p.Entity, p.Killer)
}

func (s *DeathSystem) Update() {}

func (s *DeathSystem) process(e, killer core.Entity) {
	w := s.world
	u, ok := w.Units.GetComponent(e)
	if !ok || w.PendingRemoval(e) {
		return
	}
	u.Dead = true
	w.MarkForRemoval(e)

	AbilityFor(u.Ability).OnDeath(w, e, u)

	w.Emit(event.EventUnitKilled, &event.UnitKilledPayload{
		KilledKind:  u.Kind,
		RewardValue: u.Reward,
		Faction:     u.Faction,
		Entity:      e,
		Killer:      killer,
	})

	switch u.Faction {
	case core.FactionColony:
		s.statKillsColony.Add(1)
		if u.Leader {
			w.Logger.Info("colony leader lost", zap.Uint64("frame", w.Frame()), zap.String("kind", u.Kind))
			w.Emit(event.EventColonyLost, &event.UnitKilledPayload{
				KilledKind: u.Kind,
				Faction:    u.Faction,
				Entity:     e,
				Killer:     killer,
			})
		}
	case core.FactionHostile:
		s.statKillsHostile.Add(1)
		s.statReward.Add(int64(u.Reward))
	}
}
