package physics

import "github.com/lixenwraith/antcolony/vmath"

// CapSpeed limits velocity magnitude, returns true if capping occurred
func CapSpeed(v *vmath.Vec2, maxSpeed float64) bool {
	if v.LenSq() <= maxSpeed*maxSpeed {
		return false
	}
	*v = vmath.ClampMagnitude(*v, maxSpeed)
	return true
}

// Seek returns the position after stepping toward target at speed, stopping stopDist short of it
// Returns the unchanged position when already within stopDist
func Seek(pos, target vmath.Vec2, speed, stopDist float64) vmath.Vec2 {
	d := target.Sub(pos)
	dist := d.Len()
	if dist <= stopDist || speed <= 0 {
		return pos
	}
	step := min(speed, dist-stopDist)
	return pos.Add(d.Scale(step / dist))
}
