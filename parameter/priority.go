package parameter

// System priorities, lower runs first within a tick
const (
	PriorityWave       = 5
	PriorityStatus     = 10 // Effects expire before decisions read speed and mode
	PriorityTargeting  = 20
	PriorityBoss       = 30 // After targeting, before attacks so AttackEnabled is current
	PriorityAttack     = 40
	PriorityMovement   = 50
	PriorityProjectile = 60 // After movement so hit tests see this frame's positions
	PriorityExplosion  = 70
	PriorityDeath      = 80
)
