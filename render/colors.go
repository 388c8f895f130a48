package render

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
)

// Palette (Tokyo Night base)
var (
	RgbBackground = RGB{26, 27, 38}
	RgbStatusBar  = RGB{192, 202, 245}
	RgbStatusBg   = RGB{36, 40, 59}
	RgbDim        = RGB{86, 95, 137}

	RgbColony       = RGB{158, 206, 106} // Green
	RgbColonyLeader = RGB{224, 175, 104} // Amber
	RgbHostile      = RGB{247, 118, 142} // Red
	RgbBoss         = RGB{187, 154, 247} // Purple
	RgbCorpse       = RGB{65, 72, 104}

	RgbAttacking = RGB{255, 255, 255}
	RgbSpecial   = RGB{255, 158, 100} // Orange flash during windup/active

	RgbProjectileColony  = RGB{180, 249, 248}
	RgbProjectileHostile = RGB{255, 199, 119}

	RgbExplosionCore = RGB{255, 220, 120}
	RgbExplosionEdge = RGB{140, 40, 20}

	RgbHealthHigh = RGB{158, 206, 106}
	RgbHealthLow  = RGB{247, 118, 142}
)

// FactionColor returns the base color for a faction
func FactionColor(f core.Faction) RGB {
	switch f {
	case core.FactionColony:
		return RgbColony
	case core.FactionHostile:
		return RgbHostile
	}
	return RgbDim
}

// UnitColor applies visual state over the faction color
func UnitColor(f core.Faction, v component.VisualState, boss bool) RGB {
	base := FactionColor(f)
	if boss {
		base = RgbBoss
	}
	switch v {
	case component.VisualAttacking:
		return Blend(base, RgbAttacking, 0.5)
	case component.VisualSpecial:
		return RgbSpecial
	case component.VisualDead:
		return RgbCorpse
	}
	return base
}

// HealthColor fades from high to low as the fraction drops
func HealthColor(frac float64) RGB {
	return Lerp(RgbHealthLow, RgbHealthHigh, frac)
}
