package engine

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/vmath"
)

// WorldQuery is the read-only capability handed to per-unit decisions
// Dead units are never returned, including units that died earlier in the current tick
type WorldQuery interface {
	Frame() uint64
	LiveUnit(e core.Entity) (*component.UnitComponent, bool)
	LiveUnits(f core.Faction) []core.Entity
	Leader(f core.Faction) (core.Entity, bool)
	UnitsInRadius(center vmath.Vec2, radius float64, f core.Faction) []core.Entity
	Bounds() (width, height float64)
}

var _ WorldQuery = (*World)(nil)

// LiveUnit returns the unit component if e is a live unit
func (w *World) LiveUnit(e core.Entity) (*component.UnitComponent, bool) {
	if e == 0 {
		return nil, false
	}
	u, ok := w.Units.GetComponent(e)
	if !ok || u.Dead {
		return nil, false
	}
	return u, true
}

// LiveUnits returns live units of faction in store order
// FactionNone returns every live unit
func (w *World) LiveUnits(f core.Faction) []core.Entity {
	all := w.Units.GetAllEntities()
	out := all[:0]
	for _, e := range all {
		u, ok := w.Units.GetComponent(e)
		if !ok || u.Dead {
			continue
		}
		if f != core.FactionNone && u.Faction != f {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Leader returns the live leader unit of faction
func (w *World) Leader(f core.Faction) (core.Entity, bool) {
	for _, e := range w.Units.GetAllEntities() {
		u, ok := w.Units.GetComponent(e)
		if ok && !u.Dead && u.Leader && u.Faction == f {
			return e, true
		}
	}
	return 0, false
}

// UnitsInRadius returns live units of faction with distance <= radius from center
func (w *World) UnitsInRadius(center vmath.Vec2, radius float64, f core.Faction) []core.Entity {
	r2 := radius * radius
	var out []core.Entity
	for _, e := range w.LiveUnits(f) {
		u, _ := w.Units.GetComponent(e)
		if vmath.DistSq(u.Pos, center) <= r2 {
			out = append(out, e)
		}
	}
	return out
}

// Bounds returns the world size
func (w *World) Bounds() (float64, float64) {
	return w.Config.Width, w.Config.Height
}

// InBounds reports whether p lies inside the world extended by margin
func (w *World) InBounds(p vmath.Vec2, margin float64) bool {
	return p.X >= -margin && p.Y >= -margin && p.X <= w.Config.Width+margin && p.Y <= w.Config.Height+margin
}
