package physics

import (
	"math"

	"github.com/lixenwraith/antcolony/vmath"
)

// Falloff returns floor(base * (1 - dist/radius)) for dist within radius, 0 otherwise
func Falloff(base int, dist, radius float64) int {
	if radius <= 0 || dist > radius || dist < 0 {
		return 0
	}
	dmg := int(math.Floor(float64(base) * (1 - dist/radius)))
	return max(dmg, 0)
}

// CrushBonus returns the extra damage for units inside crushFactor*radius
// The second result reports whether the unit is inside the crush tier
func CrushBonus(base int, dist, radius, crushFactor, bonusFactor float64) (int, bool) {
	if radius <= 0 || dist > radius*crushFactor {
		return 0, false
	}
	return int(math.Floor(float64(base) * bonusFactor)), true
}

// Knockback returns an impulse of magnitude pointing from center to pos
// A unit exactly at the center is pushed along +X
func Knockback(center, pos vmath.Vec2, magnitude float64) vmath.Vec2 {
	dir := pos.Sub(center)
	if dir.IsZero() {
		return vmath.Vec2{X: magnitude}
	}
	return dir.Normalize().Scale(magnitude)
}
