package parameter

// Attack resolution
const (
	// RangedWindupFrames is the delay between committing to a ranged attack and launching
	RangedWindupFrames = 6

	// UnlimitedCharges marks a unit without an ammunition pool
	UnlimitedCharges = -1
)

// Area damage
const (
	// ExplosionCrushFactor is the fraction of the radius receiving the crush bonus
	ExplosionCrushFactor = 0.7

	// ExplosionCrushBonus is the fraction of base damage added inside the crush tier
	ExplosionCrushBonus = 0.5

	// ExplosionKnockback is the impulse magnitude given to units inside the crush tier
	ExplosionKnockback = 6.0

	// ExplosionMarkerFrames is how long an explosion marker stays visible to renderers
	ExplosionMarkerFrames = 12
)

// Movement
const (
	// UnitDrag is the fraction of impulse velocity removed per frame
	UnitDrag = 0.15

	// VelocityEpsilon snaps tiny impulse velocities to zero
	VelocityEpsilon = 0.01

	// WanderTurnChance is the per-frame probability of picking a new wander heading
	WanderTurnChance = 0.03

	// WanderHomeBias blends the new wander heading toward the unit's home point
	WanderHomeBias = 0.35

	// WanderSpeedFactor scales movement speed while wandering
	WanderSpeedFactor = 0.5

	// ArrivalSlack keeps melee units from stacking exactly on their target
	ArrivalSlack = 0.9
)

// Default stat block used when a kind is missing from the catalog
const (
	DefaultHP             = 20
	DefaultDamage         = 2
	DefaultSpeed          = 1.0
	DefaultPerception     = 120.0
	DefaultRange          = 12.0
	DefaultCooldownFrames = 45
	DefaultReward         = 1
)
