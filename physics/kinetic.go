package physics

import (
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/vmath"
)

// Integrate applies one frame of impulse velocity: p = p + v
func Integrate(k *core.Kinetic) vmath.Vec2 {
	k.Pos = k.Pos.Add(k.Vel)
	return k.Pos
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(k *core.Kinetic, impulse vmath.Vec2) {
	k.Vel = k.Vel.Add(impulse)
}

// SetImpulse overrides velocity (hard redirect/stun)
func SetImpulse(k *core.Kinetic, v vmath.Vec2) {
	k.Vel = v
}

// ApplyDrag removes a fraction of velocity and snaps residual motion to zero
// Returns true while the body is still moving
func ApplyDrag(k *core.Kinetic, drag, epsilon float64) bool {
	k.Vel = k.Vel.Scale(1 - vmath.Clamp(drag, 0, 1))
	if k.Vel.LenSq() < epsilon*epsilon {
		k.Vel = vmath.Vec2{}
		return false
	}
	return true
}

// ClampBounds keeps the position inside [margin, size-margin] on both axes and kills velocity on the clamped axis
// Returns true if the position was clamped
func ClampBounds(k *core.Kinetic, width, height, margin float64) bool {
	clamped := false
	if x := vmath.Clamp(k.Pos.X, margin, width-margin); x != k.Pos.X {
		k.Pos.X = x
		k.Vel.X = 0
		clamped = true
	}
	if y := vmath.Clamp(k.Pos.Y, margin, height-margin); y != k.Pos.Y {
		k.Pos.Y = y
		k.Vel.Y = 0
		clamped = true
	}
	return clamped
}
