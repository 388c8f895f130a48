package parameter

// Projectiles
const (
	// ProjectileHitRadius is the default proximity for a projectile to connect
	ProjectileHitRadius = 0.5

	// ProjectileLifetimeSlack is added to the distance-derived frame budget
	ProjectileLifetimeSlack = 30

	// ArcGravity is the default downward acceleration of lobbed projectiles (world units per frame²)
	ArcGravity = 0.4

	// ArcMinFlightFrames bounds short lobs so they still visibly arc
	ArcMinFlightFrames = 20

	// ArcMaxFlightFrames bounds long lobs so they land in reasonable time
	ArcMaxFlightFrames = 60

	// ArcHitRadius is the landing tolerance for lobbed projectiles
	ArcHitRadius = 8.0

	// HomingAccel is the steering acceleration of homing projectiles
	HomingAccel = 0.6

	// HomingTurnDrag removes overspeed from homing projectiles
	HomingTurnDrag = 0.2
)
