package physics

import (
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/vmath"
)

// HomingProfile defines homing behavior parameters, all per frame
type HomingProfile struct {
	BaseSpeed   float64 // Target cruising speed
	HomingAccel float64 // Max steering acceleration per frame
	Drag        float64 // Fraction of overspeed removed per frame

	// Dead zone snap (0 = use default settling)
	DeadZone float64
}

// ApplyHoming steers velocity toward target and integrates one frame
// Returns true if the body settled on the target
func ApplyHoming(k *core.Kinetic, target vmath.Vec2, profile *HomingProfile) bool {
	d := target.Sub(k.Pos)
	dist := d.Len()

	deadZone := profile.DeadZone
	if deadZone == 0 {
		deadZone = 0.25
	}

	// Close enough to reach this frame: land exactly rather than orbit
	if dist < deadZone || dist <= k.Vel.Len() {
		k.Pos = target
		k.Vel = d
		return true
	}

	// Steer toward the desired cruise velocity with bounded acceleration so orbits spiral in
	desired := d.Scale(profile.BaseSpeed / dist)
	steer := vmath.ClampMagnitude(desired.Sub(k.Vel), profile.HomingAccel)
	k.Vel = k.Vel.Add(steer)

	if speed := k.Vel.Len(); speed > profile.BaseSpeed && speed > 0 {
		excess := speed - profile.BaseSpeed
		k.Vel = k.Vel.Scale(1 - vmath.Clamp(profile.Drag*excess/speed, 0, 1))
	}

	k.Pos = k.Pos.Add(k.Vel)
	return false
}
