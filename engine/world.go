package engine

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/status"
	"github.com/lixenwraith/antcolony/vmath"
)

// World contains all entities and their components using typed stores
// It is mutated from the single tick goroutine only; the event queue is the exception
type World struct {
	nextEntityID core.Entity

	Units       *Store[*component.UnitComponent]
	Statuses    *Store[*component.StatusComponent]
	Windups     *Store[*component.WindupComponent]
	Projectiles *Store[*component.ProjectileComponent]
	Bosses      *Store[*component.BossComponent]
	Owners      *Store[component.OwnerComponent]
	Markers     *Store[*component.ExplosionMarkerComponent]

	Queue   *event.EventQueue
	RNG     *vmath.FastRand
	Metrics *status.Registry
	Logger  *zap.Logger
	Config  Config
	RunID   uuid.UUID

	reporter Reporter
	frame    uint64
	stores   []entityRemover

	// pendingRemoval is applied by the reap step at the end of the tick
	pendingRemoval map[core.Entity]struct{}
	// corpses are units reaped this tick, reported once with VisualDead
	corpses []UnitView

	warnings *atomic.Int64
}

// NewWorld creates an empty world
func NewWorld(cfg Config) *World {
	cfg.normalize()
	w := &World{
		nextEntityID:   1,
		Units:          NewStore[*component.UnitComponent](),
		Statuses:       NewStore[*component.StatusComponent](),
		Windups:        NewStore[*component.WindupComponent](),
		Projectiles:    NewStore[*component.ProjectileComponent](),
		Bosses:         NewStore[*component.BossComponent](),
		Owners:         NewStore[component.OwnerComponent](),
		Markers:        NewStore[*component.ExplosionMarkerComponent](),
		Queue:          event.NewEventQueue(),
		RNG:            vmath.NewFastRand(cfg.Seed),
		Metrics:        status.NewRegistry(),
		Logger:         zap.NewNop(),
		Config:         cfg,
		RunID:          uuid.New(),
		pendingRemoval: make(map[core.Entity]struct{}),
	}
	w.stores = []entityRemover{w.Units, w.Statuses, w.Windups, w.Projectiles, w.Bosses, w.Owners, w.Markers}
	w.warnings = w.Metrics.Ints.Get(status.KeyWarnings)
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity immediately
// Systems use MarkForRemoval during the tick instead
func (w *World) DestroyEntity(e core.Entity) {
	for _, s := range w.stores {
		s.RemoveEntity(e)
	}
	delete(w.pendingRemoval, e)
}

// MarkForRemoval schedules e for destruction at the end of the tick
func (w *World) MarkForRemoval(e core.Entity) {
	w.pendingRemoval[e] = struct{}{}
}

// PendingRemoval reports whether e is scheduled for destruction
func (w *World) PendingRemoval(e core.Entity) bool {
	_, ok := w.pendingRemoval[e]
	return ok
}

// Clear removes all entities and resets the frame counter
func (w *World) Clear() {
	for _, s := range w.stores {
		s.ClearAllComponents()
	}
	w.nextEntityID = 1
	w.frame = 0
	w.pendingRemoval = make(map[core.Entity]struct{})
	w.corpses = nil
	w.Queue.Consume()
}

// Frame returns the current frame number
func (w *World) Frame() uint64 {
	return w.frame
}

// Emit pushes a frame-stamped event onto the command queue
func (w *World) Emit(t event.EventType, payload any) {
	event.Emit(w.Queue, t, payload, w.frame)
}

// Warn surfaces a problem to the host without halting the tick
func (w *World) Warn(system string, e core.Entity, err error) {
	w.warnings.Add(1)
	w.Logger.Warn("simulation warning",
		zap.String("system", system),
		zap.Uint64("entity", uint64(e)),
		zap.Uint64("frame", w.frame),
		zap.Error(err))
	if w.reporter != nil {
		w.reporter.Report(Warning{Frame: w.frame, System: system, Entity: e, Err: err})
	}
}

// Isolate runs fn for a single entity, converting a panic into a warning
// One malformed unit must not stall the rest of the frame
func (w *World) Isolate(system string, e core.Entity, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.Warn(system, e, fmt.Errorf("%w: %v", ErrUnitPanic, r))
		}
	}()
	fn()
}

// reap destroys entities scheduled for removal and records unit corpses
func (w *World) reap() {
	w.corpses = w.corpses[:0]
	if len(w.pendingRemoval) == 0 {
		return
	}

	doomed := make([]core.Entity, 0, len(w.pendingRemoval))
	for e := range w.pendingRemoval {
		doomed = append(doomed, e)
	}
	sort.Slice(doomed, func(i, j int) bool { return doomed[i] < doomed[j] })

	for _, e := range doomed {
		if u, ok := w.Units.GetComponent(e); ok {
			w.corpses = append(w.corpses, unitView(e, u, w.Bosses))
		}
		w.detachGuard(e)
		w.DestroyEntity(e)
	}
}

// detachGuard drops e from its owner's guard roster
func (w *World) detachGuard(e core.Entity) {
	if owner, ok := w.Owners.GetComponent(e); ok {
		if boss, ok := w.Bosses.GetComponent(owner.Owner); ok {
			boss.RemoveGuard(e)
		}
	}
}
