package physics

import (
	"math"

	"github.com/lixenwraith/antcolony/vmath"
)

// arrivalEpsilon absorbs float error when the final step lands exactly on the destination
const arrivalEpsilon = 1e-6

// StepStraight moves pos toward dest by at most speed, never overshooting
// Returns the new position and whether dest was reached
func StepStraight(pos, dest vmath.Vec2, speed float64) (vmath.Vec2, bool) {
	d := dest.Sub(pos)
	dist := d.Len()
	if dist <= speed+arrivalEpsilon {
		return dest, true
	}
	return pos.Add(d.Scale(speed / dist)), false
}

// ArcPlan derives a lobbed flight from ground distance
// Flight time is dist/speed clamped to [minFrames, maxFrames]; initial vertical speed makes height return to 0 at landing
func ArcPlan(dist, speed, gravity float64, minFrames, maxFrames int) (frames int, vz0 float64) {
	if speed <= 0 {
		frames = maxFrames
	} else {
		frames = int(math.Ceil(dist / speed))
	}
	frames = vmath.ClampInt(frames, minFrames, maxFrames)
	vz0 = gravity * float64(frames) / 2
	return frames, vz0
}

// ArcStep advances height and vertical speed by one frame, returns the new height clamped at ground level
func ArcStep(height, vz, gravity float64) (float64, float64) {
	height += vz - gravity/2
	vz -= gravity
	if height < 0 {
		height = 0
	}
	return height, vz
}

// GroundStep returns the per-frame ground displacement that covers origin->dest in exactly frames steps
func GroundStep(origin, dest vmath.Vec2, frames int) vmath.Vec2 {
	if frames <= 0 {
		return dest.Sub(origin)
	}
	return dest.Sub(origin).Scale(1 / float64(frames))
}
