package parameter

// Boss escalation
const (
	// BossEscalationThreshold is the HP fraction at or below which a boss escalates
	BossEscalationThreshold = 0.5

	// BossEscalationCooldownFactor multiplies ability and attack cooldowns on escalation
	BossEscalationCooldownFactor = 0.6

	// BossEscalationSpeedFactor multiplies movement speed on escalation
	BossEscalationSpeedFactor = 1.3
)

// Boss abilities
const (
	// BossSpecialCooldownFrames is the default special ability cooldown
	BossSpecialCooldownFrames = 300

	// BossWindupFrames is the default SPECIAL_WINDUP duration
	BossWindupFrames = 45

	// BossActiveFrames is the default SPECIAL_ACTIVE duration
	BossActiveFrames = 30

	// BossRecoverFrames is the default SPECIAL_RECOVER duration
	BossRecoverFrames = 40

	// BossSpawnFrames is how long a boss stays in SPAWN before patrolling
	BossSpawnFrames = 60

	// BossGuardCap is the default maximum live guard roster
	BossGuardCap = 4

	// BossGuardsPerSummon is the default number of guards per summon
	BossGuardsPerSummon = 2

	// BossGuardSpawnRadius is the ring radius guards appear on
	BossGuardSpawnRadius = 24.0

	// BossPatrolRadius is the default patrol radius around the home anchor
	BossPatrolRadius = 80.0

	// BossDiveSpeedFactor multiplies base speed during a dive
	BossDiveSpeedFactor = 4.0

	// BossEnrageThreshold is the default HP fraction enabling territory specials
	BossEnrageThreshold = 0.75
)
