package component

import (
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/vmath"
)

// ProjectilePayload is what a projectile delivers on hit
type ProjectilePayload struct {
	Damage       int
	SplashRadius float64

	// Effect is applied to the primary target when HasEffect
	Effect    Effect
	HasEffect bool
}

// ProjectileComponent is a transient in-flight attack, not a unit
type ProjectileComponent struct {
	core.Kinetic

	Owner   core.Entity
	Faction core.Faction

	// Target is the original target; zero once frozen
	Target core.Entity
	// Dest is the launch-time aim point, or last-known point once frozen
	Dest   vmath.Vec2
	Origin vmath.Vec2
	// Frozen is set when the target died mid-flight; the projectile deals no damage
	Frozen bool

	Speed     float64
	HitRadius float64
	Homing    bool

	// Arc state; Height is above ground, VZ is vertical velocity per frame
	Arc          bool
	Height       float64
	VZ           float64
	Gravity      float64
	FlightFrames int

	Age      int
	Lifetime int

	Payload ProjectilePayload
}
