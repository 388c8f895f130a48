package event

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/vmath"
)

// UnitDiedPayload identifies a unit that reached zero HP
type UnitDiedPayload struct {
	Entity core.Entity `yaml:"-"`
	Killer core.Entity `yaml:"-"`
}

// ProjectileLaunchPayload carries everything needed to create a projectile
type ProjectileLaunchPayload struct {
	Owner   core.Entity
	Faction core.Faction
	Target  core.Entity
	Origin  vmath.Vec2
	Dest    vmath.Vec2
	Stats   content.ProjectileStats
	Payload component.ProjectilePayload
}

// SpawnRequestPayload asks for a unit to be created at end of tick
type SpawnRequestPayload struct {
	Kind  string      `yaml:"kind"`
	Pos   vmath.Vec2  `yaml:"-"`
	Owner core.Entity `yaml:"-"`
}

// ExplosionRequestPayload describes area damage to resolve
type ExplosionRequestPayload struct {
	Center    vmath.Vec2
	Radius    float64
	Damage    int
	Knockback bool
	// Faction is the exploding side; only its opponents take damage
	Faction core.Faction
	// Source is excluded from damage
	Source core.Entity
}

// DespawnRequestPayload removes a unit without reward
type DespawnRequestPayload struct {
	Entity core.Entity
}

// UnitKilledPayload is the reward notification
type UnitKilledPayload struct {
	KilledKind  string       `yaml:"killed_kind" msgpack:"kind"`
	RewardValue int          `yaml:"reward_value" msgpack:"reward"`
	Faction     core.Faction `yaml:"-" msgpack:"faction"`
	Entity      core.Entity  `yaml:"-" msgpack:"entity"`
	Killer      core.Entity  `yaml:"-" msgpack:"killer"`
}

// ExplosionPayload reports resolved area damage
type ExplosionPayload struct {
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	Radius  float64 `msgpack:"r"`
	Victims int     `msgpack:"victims"`
}

// BossPhasePayload reports a boss notification
// Phase and Ability are filled from state machine config where emitted by EmitEvent
type BossPhasePayload struct {
	Boss    core.Entity `yaml:"-" msgpack:"boss"`
	Kind    string      `yaml:"-" msgpack:"kind"`
	Phase   string      `yaml:"phase" msgpack:"phase"`
	Ability string      `yaml:"ability" msgpack:"ability"`
}

// WaveStartedPayload reports a wave spawn
type WaveStartedPayload struct {
	Wave  int `yaml:"wave" msgpack:"wave"`
	Count int `yaml:"count" msgpack:"count"`
}
