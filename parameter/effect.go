package parameter

// Status effects
const (
	// DOTIntervalFrames is the default spacing between damage-over-time ticks
	DOTIntervalFrames = 30

	// DOTMaxStacks caps additive damage-over-time applications on a single unit
	DOTMaxStacks = 5

	// ConfusionImpulseChance is the per-frame probability of a random stumble while confused
	ConfusionImpulseChance = 0.25

	// ConfusionImpulseMagnitude is the size of a confused stumble impulse
	ConfusionImpulseMagnitude = 2.5

	// KnockbackDefaultMagnitude is used when an on-hit knockback carries no magnitude
	KnockbackDefaultMagnitude = 4.0

	// SlowMaxStickiness keeps a slowed unit from being fully rooted
	SlowMaxStickiness = 0.95
)
