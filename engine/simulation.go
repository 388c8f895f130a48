package engine

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/status"
	"github.com/lixenwraith/antcolony/vmath"
)

// Option configures a Simulation
type Option func(*Simulation)

// WithLogger injects the structured logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.world.Logger = l
		}
	}
}

// WithReporter routes warnings to the host application
func WithReporter(r Reporter) Option {
	return func(s *Simulation) {
		s.world.reporter = r
	}
}

// WithCatalog sets the stat catalog used by SpawnUnit
func WithCatalog(c *content.Catalog) Option {
	return func(s *Simulation) {
		s.catalog = c
	}
}

// WithRunID overrides the random run identifier
func WithRunID(id uuid.UUID) Option {
	return func(s *Simulation) {
		s.world.RunID = id
	}
}

// Simulation is the tick driver
// Tick order: frame++, systems by priority, command flush, reap
type Simulation struct {
	world   *World
	systems []System
	router  *EventRouter
	catalog *content.Catalog

	frameMetric   *atomic.Int64
	colonyMetric  *atomic.Int64
	hostileMetric *atomic.Int64
}

// NewSimulation creates a simulation with no systems installed
func NewSimulation(cfg Config, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		world:  NewWorld(cfg),
		router: NewEventRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		c, err := content.DefaultCatalog(s.world.Logger)
		if err != nil {
			return nil, fmt.Errorf("default catalog: %w", err)
		}
		s.catalog = c
	}

	s.frameMetric = s.world.Metrics.Ints.Get(status.KeyFrame)
	s.colonyMetric = s.world.Metrics.Ints.Get(status.KeyLiveColony)
	s.hostileMetric = s.world.Metrics.Ints.Get(status.KeyLiveHostile)

	s.world.Logger.Info("simulation created",
		zap.String("run_id", s.world.RunID.String()),
		zap.Uint64("seed", s.world.Config.Seed))
	return s, nil
}

// World exposes the world to systems and tests
func (s *Simulation) World() *World {
	return s.world
}

// Catalog returns the stat catalog
func (s *Simulation) Catalog() *content.Catalog {
	return s.catalog
}

// AddSystem installs a system, keeping ascending priority order
func (s *Simulation) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Priority() < s.systems[j].Priority()
	})
	s.router.Register(sys)
}

// Subscribe registers a collaborator for notifications
func (s *Simulation) Subscribe(l Listener, types ...event.EventType) {
	s.router.Subscribe(l, types...)
}

// SpawnUnit creates a live unit immediately
// A nil stat block resolves through the catalog, falling back to the default block
func (s *Simulation) SpawnUnit(kind string, pos vmath.Vec2, stats *content.StatBlock) (core.Entity, error) {
	if stats == nil {
		stats = s.catalog.Resolve(kind)
	} else {
		stats.Normalize()
		if err := stats.Validate(); err != nil {
			return 0, fmt.Errorf("spawn %s: %w", kind, err)
		}
	}
	if stats.Kind == "" {
		stats.Kind = kind
	}
	e, err := s.world.spawn(stats, pos, 0)
	if err != nil {
		return 0, fmt.Errorf("spawn %s: %w", kind, err)
	}
	return e, nil
}

// Despawn removes a unit without death processing or reward
func (s *Simulation) Despawn(e core.Entity) error {
	u, ok := s.world.Units.GetComponent(e)
	if !ok {
		return fmt.Errorf("despawn %d: %w", e, ErrUnitNotFound)
	}
	u.Dead = true
	s.world.detachGuard(e)
	s.world.DestroyEntity(e)
	return nil
}

// Tick advances the simulation by one frame
func (s *Simulation) Tick() {
	w := s.world
	w.frame++

	for _, sys := range s.systems {
		s.runSystem(sys)
	}

	s.flush()
	w.reap()

	s.frameMetric.Store(int64(w.frame))
	s.colonyMetric.Store(int64(len(w.LiveUnits(core.FactionColony))))
	s.hostileMetric.Store(int64(len(w.LiveUnits(core.FactionHostile))))
}

// Run advances n frames
func (s *Simulation) Run(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Snapshot returns the renderer view of the last completed tick
func (s *Simulation) Snapshot() Snapshot {
	return s.world.Snapshot()
}

// runSystem isolates a whole system update; per-unit isolation happens inside systems
func (s *Simulation) runSystem(sys System) {
	defer func() {
		if r := recover(); r != nil {
			s.world.Warn(sys.Name(), 0, fmt.Errorf("%w: %v", ErrUnitPanic, r))
		}
	}()
	sys.Update()
}

// flush drains deferred commands in rounds until the queue is empty
// Commands produced while handling a round are processed in the next round
func (s *Simulation) flush() {
	w := s.world
	for round := 0; round < w.Config.MaxFlushRounds; round++ {
		events := w.Queue.Consume()
		if len(events) == 0 {
			return
		}
		for _, ev := range events {
			s.dispatch(ev)
		}
	}
	if pending := w.Queue.Len(); pending > 0 {
		w.Warn("simulation", 0, fmt.Errorf("flush round limit reached with %d pending commands", pending))
	}
}

func (s *Simulation) dispatch(ev event.GameEvent) {
	defer func() {
		if r := recover(); r != nil {
			s.world.Warn("router", 0, fmt.Errorf("%w: event %s: %v", ErrUnitPanic, event.GetEventName(ev.Type), r))
		}
	}()

	switch ev.Type {
	case event.EventSpawnRequest:
		s.handleSpawn(ev)
	case event.EventDespawnRequest:
		s.handleDespawn(ev)
	}
	s.router.Dispatch(ev)
}

func (s *Simulation) handleSpawn(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.SpawnRequestPayload)
	if !ok {
		return
	}
	stats := s.catalog.Resolve(p.Kind)
	if _, err := s.world.spawn(stats, p.Pos, p.Owner); err != nil {
		s.world.Warn("spawn", p.Owner, err)
	}
}

func (s *Simulation) handleDespawn(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.DespawnRequestPayload)
	if !ok {
		return
	}
	if u, ok := s.world.Units.GetComponent(p.Entity); ok {
		u.Dead = true
		s.world.MarkForRemoval(p.Entity)
	}
}
