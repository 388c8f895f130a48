package core

import "github.com/lixenwraith/antcolony/vmath"

// Kinetic is the spatial state shared by units and projectiles
type Kinetic struct {
	// Pos is the world position in world units
	Pos vmath.Vec2
	// Vel is the impulse velocity in world units per frame, decays through drag
	Vel vmath.Vec2
}
