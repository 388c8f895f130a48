package engine

import (
	"fmt"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/vmath"
)

// NewUnit builds a unit component from a stat block
func NewUnit(stats *content.StatBlock, pos vmath.Vec2) *component.UnitComponent {
	u := &component.UnitComponent{
		Faction:           core.ParseFaction(stats.Faction),
		Kind:              stats.Kind,
		Ability:           component.ParseAbility(stats.Ability),
		Style:             component.AttackMelee,
		Kinetic:           core.Kinetic{Pos: pos},
		Home:              pos,
		Perception:        stats.Perception,
		Range:             stats.Range,
		Speed:             stats.Speed,
		BaseSpeed:         stats.Speed,
		HP:                stats.HP,
		MaxHP:             stats.HP,
		Damage:            stats.Damage,
		CooldownFrames:    stats.CooldownFrames,
		Charges:           parameter.UnlimitedCharges,
		Leader:            stats.Leader,
		PriorityTargeting: stats.PriorityTargeting || stats.Boss != nil,
		Reward:            stats.Reward,
		Stats:             stats,
	}
	if stats.Attack == "ranged" {
		u.Style = component.AttackRanged
	}
	if stats.Charges > 0 {
		u.Charges = stats.Charges
	}
	return u
}

// NewBoss builds the encounter component for a boss stat block
func NewBoss(stats *content.StatBlock, home vmath.Vec2) (*component.BossComponent, error) {
	bs := stats.Boss
	variant, ok := component.ParseBossVariant(bs.Variant)
	if !ok {
		return nil, fmt.Errorf("%w: boss variant '%s'", ErrCorruptState, bs.Variant)
	}
	return &component.BossComponent{
		Variant:               variant,
		SpecialCooldownFrames: bs.SpecialCooldownFrames,
		SpecialTimer:          bs.SpecialCooldownFrames,
		GuardKind:             bs.GuardKind,
		GuardCap:              bs.GuardCap,
		GuardsPerSummon:       bs.GuardsPerSummon,
		EnrageThreshold:       bs.EnrageThreshold,
		TerritoryRadius:       bs.TerritoryRadius,
		PatrolRadius:          bs.PatrolRadius,
		DiveSpeedFactor:       bs.DiveSpeedFactor,
		SpecialRadius:         bs.SpecialRadius,
		SpecialDamage:         bs.SpecialDamage,
		PatrolPoint:           home,
	}, nil
}

// spawn inserts a unit and its companion components
func (w *World) spawn(stats *content.StatBlock, pos vmath.Vec2, owner core.Entity) (core.Entity, error) {
	var boss *component.BossComponent
	if stats.Boss != nil {
		b, err := NewBoss(stats, pos)
		if err != nil {
			return 0, err
		}
		boss = b
	}

	e := w.CreateEntity()
	w.Units.SetComponent(e, NewUnit(stats, pos))
	w.Statuses.SetComponent(e, &component.StatusComponent{})
	if boss != nil {
		w.Bosses.SetComponent(e, boss)
	}
	if owner != 0 {
		w.Owners.SetComponent(e, component.OwnerComponent{Owner: owner})
		if ob, ok := w.Bosses.GetComponent(owner); ok {
			ob.Guards = append(ob.Guards, e)
		}
	}
	return e, nil
}
