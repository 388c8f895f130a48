package vmath

import "math"

// Vec2 is a float64 2D vector in world units
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{X: x, Y: y}
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns squared magnitude without sqrt
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// DistSq returns squared distance between two points
func DistSq(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Dist returns the euclidean distance between two points
func Dist(a, b Vec2) float64 {
	return math.Sqrt(DistSq(a, b))
}

// ClampMagnitude limits vector to maxMag while preserving direction
func ClampMagnitude(v Vec2, maxMag float64) Vec2 {
	l := v.Len()
	if l <= maxMag || l == 0 {
		return v
	}
	return v.Scale(maxMag / l)
}

// MoveToward steps from toward to by at most step, never overshooting
// Returns the new point and whether to was reached
func MoveToward(from, to Vec2, step float64) (Vec2, bool) {
	d := to.Sub(from)
	dist := d.Len()
	if dist <= step || dist == 0 {
		return to, true
	}
	return from.Add(d.Scale(step / dist)), false
}

// Rotate rotates v by angle radians
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampInt bounds x to [lo, hi]
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
