package content

// StatBlock is the plain data record describing a unit kind
// No behavior lives here; systems read it when spawning and resolving attacks
type StatBlock struct {
	// Kind is filled from the catalog key
	Kind string `yaml:"-"`

	Faction string `yaml:"faction"` // colony | hostile

	HP             int     `yaml:"hp"`
	Damage         int     `yaml:"damage"`
	Speed          float64 `yaml:"speed"`      // world units per frame
	Perception     float64 `yaml:"perception"` // acquisition radius
	Range          float64 `yaml:"range"`      // attack range
	CooldownFrames int     `yaml:"cooldown_frames"`
	Reward         int     `yaml:"reward"`

	// Charges is the finite ammunition pool, 0 means unlimited
	Charges int `yaml:"charges"`

	Attack  string `yaml:"attack"`  // melee | ranged
	Ability string `yaml:"ability"` // none | venom | burst

	// Leader marks the high-value unit opposing boss-tier units hunt first
	Leader bool `yaml:"leader"`

	// PriorityTargeting enables the engaged/leader/nearest tie-break instead of nearest-only
	PriorityTargeting bool `yaml:"priority_targeting"`

	Projectile *ProjectileStats `yaml:"projectile,omitempty"`
	OnHit      *EffectStats     `yaml:"on_hit,omitempty"`
	Explode    *ExplodeStats    `yaml:"explode,omitempty"`
	Boss       *BossStats       `yaml:"boss,omitempty"`
}

// ProjectileStats configures the projectile a ranged unit launches
type ProjectileStats struct {
	Speed        float64 `yaml:"speed"`
	HitRadius    float64 `yaml:"hit_radius"`
	Arc          bool    `yaml:"arc"`
	Gravity      float64 `yaml:"gravity"`
	Homing       bool    `yaml:"homing"`
	SplashRadius float64 `yaml:"splash_radius"`
}

// EffectStats is a status effect applied on hit
type EffectStats struct {
	Kind           string  `yaml:"kind"` // slow | confusion | dot | knockback
	Magnitude      float64 `yaml:"magnitude"`
	DurationFrames int     `yaml:"duration_frames"`
	IntervalFrames int     `yaml:"interval_frames"`
}

// ExplodeStats is the area damage released on death
type ExplodeStats struct {
	Radius    float64 `yaml:"radius"`
	Damage    int     `yaml:"damage"`
	Knockback bool    `yaml:"knockback"`
}

// BossStats parameterizes a boss encounter
type BossStats struct {
	Variant               string  `yaml:"variant"` // summon | dive | territory
	SpecialCooldownFrames int     `yaml:"special_cooldown_frames"`
	GuardKind             string  `yaml:"guard_kind"`
	GuardCap              int     `yaml:"guard_cap"`
	GuardsPerSummon       int     `yaml:"guards_per_summon"`
	EnrageThreshold       float64 `yaml:"enrage_threshold"`
	TerritoryRadius       float64 `yaml:"territory_radius"`
	PatrolRadius          float64 `yaml:"patrol_radius"`
	DiveSpeedFactor       float64 `yaml:"dive_speed_factor"`
	SpecialRadius         float64 `yaml:"special_radius"`
	SpecialDamage         int     `yaml:"special_damage"`

	// Graph optionally overrides the state machine graph with a YAML file path
	Graph string `yaml:"graph,omitempty"`
}

// catalogFile is the on-disk layout of a stat catalog
type catalogFile struct {
	Units map[string]*StatBlock `yaml:"units"`
}
