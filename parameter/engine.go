package parameter

import "time"

// Frame timing
const (
	// FramesPerSecond is the nominal simulation rate used by hosts to convert to wall time
	FramesPerSecond = 60

	// FrameDuration is the wall-clock length of one frame at the nominal rate
	FrameDuration = time.Second / FramesPerSecond
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 4096

	// EventBufferMask is the bitmask for fast modulo operations (4096 - 1)
	EventBufferMask = 4095

	// MaxFlushRounds bounds the end-of-tick command flush so a chain reaction cannot stall the frame
	MaxFlushRounds = 32
)

// World defaults
const (
	// WorldWidth is the default world width in world units
	WorldWidth = 800.0

	// WorldHeight is the default world height in world units
	WorldHeight = 600.0

	// WorldBoundsMargin is how far outside the world a projectile may travel before removal
	WorldBoundsMargin = 32.0
)
