package component

import (
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/vmath"
)

// EffectKind enumerates status effects
type EffectKind uint8

const (
	EffectSlow EffectKind = iota
	EffectConfusion
	EffectDOT
	EffectKnockback
)

func (k EffectKind) String() string {
	switch k {
	case EffectSlow:
		return "slow"
	case EffectConfusion:
		return "confusion"
	case EffectDOT:
		return "dot"
	case EffectKnockback:
		return "knockback"
	default:
		return "unknown"
	}
}

// ParseEffectKind maps a stat block effect name
func ParseEffectKind(s string) (EffectKind, bool) {
	switch s {
	case "slow":
		return EffectSlow, true
	case "confusion":
		return EffectConfusion, true
	case "dot":
		return EffectDOT, true
	case "knockback":
		return EffectKnockback, true
	default:
		return 0, false
	}
}

// Effect is a time-bounded modifier attached to a unit
type Effect struct {
	Kind EffectKind

	// Magnitude is stickiness for slow, damage per tick for DOT, impulse for knockback
	Magnitude float64

	// Remaining is frames left; the effect is removed when it reaches zero
	Remaining int

	// Interval is frames between DOT ticks
	Interval int
	// Elapsed counts frames since the last DOT tick
	Elapsed int
	// Stacks counts additive DOT applications
	Stacks int

	// Source is a weak reference used for kill attribution and knockback direction
	Source core.Entity
	// Origin is the source position at application, used for knockback direction
	Origin vmath.Vec2
}

// StatusComponent holds active effects and the attribute values they overrode
type StatusComponent struct {
	Effects []Effect

	// SavedSpeed is the pre-slow speed, valid while SpeedSaved
	SavedSpeed float64
	SpeedSaved bool

	// SavedMode is the pre-override behavior mode, valid while ModeSaved
	SavedMode BehaviorMode
	ModeSaved bool
}

// Find returns the index of the first effect of kind, or -1
func (s *StatusComponent) Find(kind EffectKind) int {
	for i := range s.Effects {
		if s.Effects[i].Kind == kind {
			return i
		}
	}
	return -1
}

// Has reports whether an effect of kind is active
func (s *StatusComponent) Has(kind EffectKind) bool {
	return s.Find(kind) >= 0
}
