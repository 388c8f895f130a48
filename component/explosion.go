package component

import "github.com/lixenwraith/antcolony/vmath"

// ExplosionMarkerComponent is a transient area-damage marker for renderers
type ExplosionMarkerComponent struct {
	Center    vmath.Vec2
	Radius    float64
	Remaining int
}
