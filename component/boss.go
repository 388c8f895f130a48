package component

import (
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/vmath"
)

// BossVariant selects the special ability layered on the base loop
type BossVariant uint8

const (
	BossSummon BossVariant = iota
	BossDive
	BossTerritory
)

func (v BossVariant) String() string {
	switch v {
	case BossSummon:
		return "summon"
	case BossDive:
		return "dive"
	case BossTerritory:
		return "territory"
	default:
		return "unknown"
	}
}

// ParseBossVariant maps a stat block variant name
func ParseBossVariant(s string) (BossVariant, bool) {
	switch s {
	case "summon":
		return BossSummon, true
	case "dive":
		return BossDive, true
	case "territory":
		return BossTerritory, true
	default:
		return 0, false
	}
}

// BossMotion is the movement intent set by state actions
type BossMotion uint8

const (
	MotionHold BossMotion = iota
	MotionPatrol
	MotionPursue
	MotionDash
)

// BossComponent is the encounter state layered on a boss unit
type BossComponent struct {
	Variant BossVariant

	// State mirrors the active machine state name for renderers and telemetry
	State string

	SpecialCooldownFrames int
	SpecialTimer          int

	// Escalated is one-way
	Escalated bool

	// Guards is the roster of live summoned units
	Guards          []core.Entity
	GuardKind       string
	GuardCap        int
	GuardsPerSummon int

	EnrageThreshold float64
	TerritoryRadius float64
	PatrolRadius    float64
	DiveSpeedFactor float64
	SpecialRadius   float64
	SpecialDamage   int

	Motion        BossMotion
	AttackEnabled bool

	// PatrolPoint is the current patrol waypoint
	PatrolPoint vmath.Vec2
	// LockedPoint is the dive destination captured at windup
	LockedPoint vmath.Vec2

	// Defeated is set once DEAD is entered
	Defeated bool
}

// RemoveGuard drops e from the roster
func (b *BossComponent) RemoveGuard(e core.Entity) bool {
	for i, g := range b.Guards {
		if g == e {
			b.Guards = append(b.Guards[:i], b.Guards[i+1:]...)
			return true
		}
	}
	return false
}
