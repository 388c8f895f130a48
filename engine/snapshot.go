package engine

import (
	"sort"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
)

// UnitView is the per-frame renderer view of a unit
type UnitView struct {
	ID      uint64  `msgpack:"id"`
	Kind    string  `msgpack:"k"`
	Faction uint8   `msgpack:"f"`
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	HP      float64 `msgpack:"hp"`
	Visual  uint8   `msgpack:"v"`
	Mode    uint8   `msgpack:"m"`
	Boss    string  `msgpack:"b,omitempty"`
}

// ProjectileView is the renderer view of a projectile
type ProjectileView struct {
	ID      uint64  `msgpack:"id"`
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	Z       float64 `msgpack:"z"`
	Faction uint8   `msgpack:"f"`
}

// MarkerView is the renderer view of an area damage marker
type MarkerView struct {
	X         float64 `msgpack:"x"`
	Y         float64 `msgpack:"y"`
	Radius    float64 `msgpack:"r"`
	Remaining int     `msgpack:"t"`
}

// Snapshot is everything a renderer needs for one frame
type Snapshot struct {
	RunID       string           `msgpack:"run"`
	Frame       uint64           `msgpack:"frame"`
	Width       float64          `msgpack:"w"`
	Height      float64          `msgpack:"h"`
	Units       []UnitView       `msgpack:"units"`
	Projectiles []ProjectileView `msgpack:"proj"`
	Markers     []MarkerView     `msgpack:"marks"`
	Metrics     map[string]int64 `msgpack:"metrics,omitempty"`
}

// Snapshot captures live units, this tick's corpses, projectiles and markers, ordered by ID
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:  w.RunID.String(),
		Frame:  w.frame,
		Width:  w.Config.Width,
		Height: w.Config.Height,
	}

	for _, e := range w.Units.GetAllEntities() {
		u, ok := w.Units.GetComponent(e)
		if !ok {
			continue
		}
		snap.Units = append(snap.Units, unitView(e, u, w.Bosses))
	}
	snap.Units = append(snap.Units, w.corpses...)
	sort.Slice(snap.Units, func(i, j int) bool { return snap.Units[i].ID < snap.Units[j].ID })

	for _, e := range w.Projectiles.GetAllEntities() {
		p, ok := w.Projectiles.GetComponent(e)
		if !ok {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID: uint64(e), X: p.Pos.X, Y: p.Pos.Y, Z: p.Height, Faction: uint8(p.Faction),
		})
	}

	for _, e := range w.Markers.GetAllEntities() {
		m, ok := w.Markers.GetComponent(e)
		if !ok {
			continue
		}
		snap.Markers = append(snap.Markers, MarkerView{
			X: m.Center.X, Y: m.Center.Y, Radius: m.Radius, Remaining: m.Remaining,
		})
	}

	snap.Metrics = w.Metrics.IntValues()
	return snap
}

func unitView(e core.Entity, u *component.UnitComponent, bosses *Store[*component.BossComponent]) UnitView {
	v := UnitView{
		ID:      uint64(e),
		Kind:    u.Kind,
		Faction: uint8(u.Faction),
		X:       u.Pos.X,
		Y:       u.Pos.Y,
		HP:      u.HPFraction(),
		Visual:  uint8(u.Visual),
		Mode:    uint8(u.Mode),
	}
	if u.Dead {
		v.Visual = uint8(component.VisualDead)
	}
	if b, ok := bosses.GetComponent(e); ok {
		v.Boss = b.State
	}
	return v
}
