package event

// EventType represents the type of game event
// Zero is reserved for the state machine "Tick" trigger and is never pushed
type EventType int

const (
	eventTick EventType = iota

	// === Commands (deferred mutation, flushed at end of tick) ===

	// EventUnitDied is raised when damage drops a unit to zero HP
	// Trigger: common damage path | Consumer: DeathSystem, BossSystem | Payload: *UnitDiedPayload
	EventUnitDied

	// EventProjectileLaunch creates a projectile entity
	// Trigger: AttackSystem | Consumer: ProjectileSystem | Payload: *ProjectileLaunchPayload
	EventProjectileLaunch

	// EventSpawnRequest creates a unit mid-simulation (boss guards, waves)
	// Trigger: boss actions, WaveSystem | Consumer: Simulation | Payload: *SpawnRequestPayload
	EventSpawnRequest

	// EventExplosionRequest resolves area damage
	// Trigger: burst ability, boss specials | Consumer: ExplosionSystem | Payload: *ExplosionRequestPayload
	EventExplosionRequest

	// EventDespawnRequest removes a unit without death processing or reward
	// Trigger: boss death cleanup, host | Consumer: Simulation | Payload: *DespawnRequestPayload
	EventDespawnRequest

	// === Notifications (outbound to collaborators) ===

	// EventUnitKilled is the reward/economy notification, emitted exactly once per death
	// Trigger: DeathSystem | Consumer: economy collaborators | Payload: *UnitKilledPayload
	EventUnitKilled EventType = iota + 100

	// EventExplosion reports resolved area damage
	// Trigger: ExplosionSystem | Consumer: audio, renderer | Payload: *ExplosionPayload
	EventExplosion

	// EventBossPhaseChanged reports a boss state machine transition
	// Trigger: boss actions | Consumer: audio, notification | Payload: *BossPhasePayload
	EventBossPhaseChanged

	// EventBossSpecialStarted reports the start of a special ability windup
	// Trigger: boss actions | Consumer: audio, notification | Payload: *BossPhasePayload
	EventBossSpecialStarted

	// EventBossEscalated reports the one-way HP threshold escalation
	// Trigger: BossSystem | Consumer: audio, notification | Payload: *BossPhasePayload
	EventBossEscalated

	// EventBossDefeated reports a boss entering DEAD
	// Trigger: boss actions | Consumer: audio, notification | Payload: *BossPhasePayload
	EventBossDefeated

	// EventColonyLost reports the death of the colony leader
	// Trigger: DeathSystem | Consumer: host | Payload: *UnitKilledPayload
	EventColonyLost

	// EventWaveStarted reports a hostile wave entering the field
	// Trigger: WaveSystem | Consumer: audio, notification | Payload: *WaveStartedPayload
	EventWaveStarted
)

// GameEvent is a frame-stamped command or notification
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   uint64
}

// IsNotification reports whether the event is outbound to collaborators
func (t EventType) IsNotification() bool {
	return t >= EventUnitKilled
}
