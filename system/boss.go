package system

import (
	"embed"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/engine/fsm"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/status"
)

//go:embed fsm/*.yaml
var bossGraphs embed.FS

// BossContext is handed to every guard and action of a boss machine
type BossContext struct {
	World  *engine.World
	System *BossSystem
	Entity core.Entity
	Unit   *component.UnitComponent
	Boss   *component.BossComponent
}

type bossRuntime struct {
	machine *fsm.Machine[*BossContext]
	ctx     *BossContext
}

// BossSystem drives one hierarchical state machine per boss and applies one-way HP escalation
// Machines are built lazily from YAML graphs: a stat block graph path, else the embedded variant graph
type BossSystem struct {
	world  *engine.World
	status *StatusSystem

	graphs   map[string]*fsm.RootConfig
	runtimes map[core.Entity]*bossRuntime

	statState *status.AtomicString
	statHP    *atomic.Int64
	statFrac  *status.AtomicFloat

	enabled bool
}

func NewBossSystem(world *engine.World, st *StatusSystem) *BossSystem {
	s := &BossSystem{world: world, status: st}
	s.statState = world.Metrics.Strings.Get(status.KeyBossState)
	s.statHP = world.Metrics.Ints.Get(status.KeyBossHP)
	s.statFrac = world.Metrics.Floats.Get(status.KeyBossHPFraction)
	s.Init()
	return s
}

// Init resets session state for new game
func (s *BossSystem) Init() {
	s.graphs = make(map[string]*fsm.RootConfig)
	s.runtimes = make(map[core.Entity]*bossRuntime)
	s.statState.Store("")
	s.statHP.Store(0)
	s.statFrac.Set(0)
	s.enabled = true
}

func (s *BossSystem) Name() string {
	return "boss"
}

func (s *BossSystem) Priority() int {
	return parameter.PriorityBoss
}

func (s *BossSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventUnitDied}
}

func (s *BossSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventUnitDied {
		return
	}
	p, ok := ev.Payload.(*event.UnitDiedPayload)
	if !ok {
		return
	}
	if !s.world.Bosses.HasEntity(p.Entity) {
		return
	}
	rt := s.runtime(p.Entity)
	if rt == nil || rt.ctx.Boss.Defeated {
		return
	}
	rt.machine.HandleEvent(rt.ctx, event.EventUnitDied)
}

func (s *BossSystem) Update() {
	if !s.enabled {
		return
	}
	w := s.world

	for e := range s.runtimes {
		if !w.Bosses.HasEntity(e) {
			delete(s.runtimes, e)
		}
	}

	for _, e := range w.Bosses.GetAllEntities() {
		rt := s.runtime(e)
		if rt == nil || rt.ctx.Boss.Defeated {
			continue
		}
		w.Isolate(s.Name(), e, func() {
			s.step(rt)
		})
	}
}

// State returns the active state name of boss e, empty when e has no machine
func (s *BossSystem) State(e core.Entity) string {
	if rt, ok := s.runtimes[e]; ok {
		return rt.machine.Current()
	}
	return ""
}

func (s *BossSystem) step(rt *bossRuntime) {
	ctx := rt.ctx
	u, boss := ctx.Unit, ctx.Boss

	if u.Dead {
		rt.machine.HandleEvent(ctx, event.EventUnitDied)
		return
	}

	s.checkEscalation(ctx)
	if boss.SpecialTimer > 0 {
		boss.SpecialTimer--
	}

	if err := rt.machine.Update(ctx); err != nil {
		s.recoverMachine(rt, err)
	}

	s.statState.Store(boss.State)
	s.statHP.Store(int64(u.HP))
	s.statFrac.Set(u.HPFraction())
}

// checkEscalation applies the HP threshold escalation exactly once
func (s *BossSystem) checkEscalation(ctx *BossContext) {
	u, boss := ctx.Unit, ctx.Boss
	if boss.Escalated || u.HPFraction() > parameter.BossEscalationThreshold {
		return
	}
	boss.Escalated = true
	boss.SpecialCooldownFrames = max(1, int(float64(boss.SpecialCooldownFrames)*parameter.BossEscalationCooldownFactor))
	boss.SpecialTimer = min(boss.SpecialTimer, boss.SpecialCooldownFrames)
	u.CooldownFrames = max(1, int(float64(u.CooldownFrames)*parameter.BossEscalationCooldownFactor))
	s.status.ScaleSpeed(ctx.Entity, parameter.BossEscalationSpeedFactor)

	s.world.Logger.Info("boss escalated",
		zap.String("kind", u.Kind),
		zap.Uint64("frame", s.world.Frame()),
		zap.Int("hp", u.HP))
	s.world.Emit(event.EventBossEscalated, &event.BossPhasePayload{
		Boss:    ctx.Entity,
		Kind:    u.Kind,
		Phase:   boss.State,
		Ability: boss.Variant.String(),
	})
}

// runtime returns the machine for e, building it on first use
func (s *BossSystem) runtime(e core.Entity) *bossRuntime {
	if rt, ok := s.runtimes[e]; ok {
		return rt
	}
	w := s.world
	u, ok := w.Units.GetComponent(e)
	if !ok {
		return nil
	}
	boss, ok := w.Bosses.GetComponent(e)
	if !ok {
		return nil
	}

	ctx := &BossContext{World: w, System: s, Entity: e, Unit: u, Boss: boss}
	rt := &bossRuntime{ctx: ctx}

	graphPath := ""
	if u.Stats != nil && u.Stats.Boss != nil {
		graphPath = u.Stats.Boss.Graph
	}

	m, err := s.buildMachine(graphPath, boss.Variant)
	if err != nil && graphPath != "" {
		w.Warn(s.Name(), e, fmt.Errorf("%w: boss graph %s: %v", engine.ErrCorruptState, graphPath, err))
		m, err = s.buildMachine("", boss.Variant)
	}
	if err != nil {
		w.Warn(s.Name(), e, fmt.Errorf("%w: %v", engine.ErrCorruptState, err))
		return nil
	}

	rt.machine = m
	if err := m.Init(ctx); err != nil {
		w.Warn(s.Name(), e, fmt.Errorf("%w: %v", engine.ErrCorruptState, err))
		return nil
	}
	s.runtimes[e] = rt
	return rt
}

// recoverMachine replaces a corrupted machine with the embedded default graph
func (s *BossSystem) recoverMachine(rt *bossRuntime, cause error) {
	w := s.world
	w.Warn(s.Name(), rt.ctx.Entity, fmt.Errorf("%w: %v", engine.ErrCorruptState, cause))

	m, err := s.buildMachine("", rt.ctx.Boss.Variant)
	if err == nil {
		err = m.Init(rt.ctx)
	}
	if err != nil {
		w.Warn(s.Name(), rt.ctx.Entity, fmt.Errorf("%w: default graph: %v", engine.ErrCorruptState, err))
		delete(s.runtimes, rt.ctx.Entity)
		return
	}
	rt.machine = m
}

func (s *BossSystem) buildMachine(graphPath string, variant component.BossVariant) (*fsm.Machine[*BossContext], error) {
	cfg, err := s.graph(graphPath, variant)
	if err != nil {
		return nil, err
	}
	m := fsm.NewMachine[*BossContext]()
	s.bind(m)
	if err := m.Load(cfg); err != nil {
		return nil, err
	}
	m.OnTransition(s.onTransition)
	return m, nil
}

// graph returns the parsed graph, cached per source
func (s *BossSystem) graph(graphPath string, variant component.BossVariant) (*fsm.RootConfig, error) {
	key := graphPath
	if key == "" {
		key = "embedded:" + variant.String()
	}
	if cfg, ok := s.graphs[key]; ok {
		return cfg, nil
	}
	cfg, err := fsm.ParseConfigAuto(graphPath, bossGraphs, "fsm/"+variant.String()+".yaml")
	if err != nil {
		return nil, err
	}
	s.graphs[key] = cfg
	return cfg, nil
}

func (s *BossSystem) onTransition(ctx *BossContext, from, to string) {
	ctx.Boss.State = to
	s.world.Logger.Debug("boss phase",
		zap.String("kind", ctx.Unit.Kind),
		zap.String("from", from),
		zap.String("to", to),
		zap.Uint64("frame", s.world.Frame()))
	s.world.Emit(event.EventBossPhaseChanged, &event.BossPhasePayload{
		Boss:    ctx.Entity,
		Kind:    ctx.Unit.Kind,
		Phase:   to,
		Ability: ctx.Boss.Variant.String(),
	})
}
