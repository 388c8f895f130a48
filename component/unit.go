package component

import (
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/vmath"
)

// AttackStyle selects the attack resolution path
type AttackStyle uint8

const (
	AttackMelee AttackStyle = iota
	AttackRanged
)

// BehaviorMode is checked by the decision step instead of swapping behavior at runtime
type BehaviorMode uint8

const (
	ModeNormal BehaviorMode = iota
	ModeConfused
	ModeWebbed
)

func (m BehaviorMode) String() string {
	switch m {
	case ModeConfused:
		return "confused"
	case ModeWebbed:
		return "webbed"
	default:
		return "normal"
	}
}

// VisualState is the discrete tag exposed to renderers each frame
type VisualState uint8

const (
	VisualIdle VisualState = iota
	VisualAttacking
	VisualSpecial
	VisualDead
)

func (v VisualState) String() string {
	switch v {
	case VisualAttacking:
		return "attacking"
	case VisualSpecial:
		return "special"
	case VisualDead:
		return "dead"
	default:
		return "idle"
	}
}

// AbilityKind selects the per-kind onAttack/onDeath hooks
type AbilityKind uint8

const (
	AbilityNone AbilityKind = iota
	// AbilityVenom applies the on-hit status effect
	AbilityVenom
	// AbilityBurst explodes on death
	AbilityBurst
)

// ParseAbility maps a stat block ability name, unknown names map to AbilityNone
func ParseAbility(s string) AbilityKind {
	switch s {
	case "venom":
		return AbilityVenom
	case "burst":
		return AbilityBurst
	default:
		return AbilityNone
	}
}

// UnitComponent is the combat record shared by ants, hostiles and bosses
type UnitComponent struct {
	Faction core.Faction
	Kind    string
	Ability AbilityKind
	Style   AttackStyle

	core.Kinetic

	// Home is the spawn point, wander is biased toward it
	Home vmath.Vec2
	// Heading is the current wander direction
	Heading vmath.Vec2

	Perception float64
	Range      float64

	// Speed is the effective movement speed after status modifiers
	Speed float64
	// BaseSpeed is the unmodified speed, changed only by escalation
	BaseSpeed float64

	HP    int
	MaxHP int
	// Dead is terminal; once set no system reads the unit as a participant
	Dead bool

	Damage         int
	CooldownFrames int
	// CooldownTimer counts down to zero, ready to attack when <= 0
	CooldownTimer int

	// Charges is the remaining ammunition, parameter.UnlimitedCharges for none
	Charges int

	Leader            bool
	PriorityTargeting bool
	Reward            int

	// Target is a weak reference revalidated every tick
	Target core.Entity

	Mode   BehaviorMode
	Visual VisualState

	// Stats is the stat block this unit was spawned from, read-only
	Stats *content.StatBlock
}

// Alive reports whether the unit participates in the simulation
func (u *UnitComponent) Alive() bool {
	return u != nil && !u.Dead
}

// HPFraction returns current HP over max HP in [0, 1]
func (u *UnitComponent) HPFraction() float64 {
	if u.MaxHP <= 0 {
		return 0
	}
	return float64(u.HP) / float64(u.MaxHP)
}

// HasCharges reports whether the unit can pay for one attack
func (u *UnitComponent) HasCharges() bool {
	return u.Charges != 0
}

// SpendCharge consumes one charge from a finite pool
func (u *UnitComponent) SpendCharge() {
	if u.Charges > 0 {
		u.Charges--
	}
}
