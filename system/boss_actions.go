package system

import (
	"fmt"
	"math"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine/fsm"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/vmath"
)

type bossMachine = fsm.Machine[*BossContext]

// bind registers every guard and action the boss graphs may reference
func (s *BossSystem) bind(m *bossMachine) {
	m.RegisterGuard("IsDead", guardIsDead)
	m.RegisterGuard("TargetAcquired", guardTargetAcquired)
	m.RegisterGuard("TargetLost", guardTargetLost)
	m.RegisterGuard("TargetInRange", guardTargetInRange)
	m.RegisterGuard("TargetOutOfRange", guardTargetOutOfRange)
	m.RegisterGuard("AbilityReady", guardAbilityReady)
	m.RegisterGuard("DashArrived", guardDashArrived)
	m.RegisterGuard("OutsideTerritory", guardOutsideTerritory)
	m.RegisterGuardFactory("PhaseDone", phaseDoneFactory)

	m.RegisterActionArgs("SetMotion", compileMotionArgs)
	m.RegisterActionArgs("SetAttack", compileAttackArgs)
	m.RegisterActionArgs("SetVisual", compileVisualArgs)

	m.RegisterAction("SetMotion", actionSetMotion)
	m.RegisterAction("SetAttack", actionSetAttack)
	m.RegisterAction("SetVisual", actionSetVisual)
	m.RegisterAction("ClearTarget", actionClearTarget)
	m.RegisterAction("BeginSpecial", actionBeginSpecial)
	m.RegisterAction("ExecuteSpecial", actionExecuteSpecial)
	m.RegisterAction("Impact", actionImpact)
	m.RegisterAction("Defeat", actionDefeat)
	m.RegisterAction("EmitEvent", actionEmitEvent)
}

// --- Guards ---

func guardIsDead(ctx *BossContext, _ *bossMachine) bool {
	return ctx.Unit.Dead
}

func guardTargetAcquired(ctx *BossContext, _ *bossMachine) bool {
	_, ok := ctx.World.LiveUnit(ctx.Unit.Target)
	return ok
}

func guardTargetLost(ctx *BossContext, m *bossMachine) bool {
	return !guardTargetAcquired(ctx, m)
}

func guardTargetInRange(ctx *BossContext, _ *bossMachine) bool {
	tu, ok := ctx.World.LiveUnit(ctx.Unit.Target)
	if !ok {
		return false
	}
	r := ctx.Unit.Range
	return vmath.DistSq(ctx.Unit.Pos, tu.Pos) <= r*r
}

func guardTargetOutOfRange(ctx *BossContext, _ *bossMachine) bool {
	tu, ok := ctx.World.LiveUnit(ctx.Unit.Target)
	if !ok {
		return false
	}
	r := ctx.Unit.Range
	return vmath.DistSq(ctx.Unit.Pos, tu.Pos) > r*r
}

// guardAbilityReady combines the cooldown with the variant precondition
func guardAbilityReady(ctx *BossContext, _ *bossMachine) bool {
	boss := ctx.Boss
	if boss.SpecialTimer > 0 {
		return false
	}
	switch boss.Variant {
	case component.BossSummon:
		return len(liveGuards(ctx)) < boss.GuardCap
	case component.BossDive:
		_, ok := ctx.World.LiveUnit(ctx.Unit.Target)
		return ok
	case component.BossTerritory:
		return ctx.Unit.HPFraction() < boss.EnrageThreshold
	}
	return false
}

func guardDashArrived(ctx *BossContext, _ *bossMachine) bool {
	return vmath.DistSq(ctx.Unit.Pos, ctx.Boss.LockedPoint) <= 1
}

func guardOutsideTerritory(ctx *BossContext, _ *bossMachine) bool {
	r := ctx.Boss.TerritoryRadius
	if r <= 0 {
		return false
	}
	return vmath.DistSq(ctx.Unit.Pos, ctx.Unit.Home) > r*r
}

// phaseDoneFactory builds a guard that passes once the active state has lasted its phase duration
func phaseDoneFactory(args map[string]any) (fsm.GuardFunc[*BossContext], error) {
	phase, _ := args["phase"].(string)
	var frames int
	switch phase {
	case "spawn":
		frames = parameter.BossSpawnFrames
	case "windup":
		frames = parameter.BossWindupFrames
	case "active":
		frames = parameter.BossActiveFrames
	case "recover":
		frames = parameter.BossRecoverFrames
	default:
		return nil, fmt.Errorf("PhaseDone: unknown phase '%s'", phase)
	}
	return func(_ *BossContext, m *bossMachine) bool {
		return m.FramesInState() >= frames
	}, nil
}

// --- Action argument compilers ---

func compileMotionArgs(args map[string]any) (any, error) {
	name, _ := args["motion"].(string)
	switch name {
	case "hold":
		return component.MotionHold, nil
	case "patrol":
		return component.MotionPatrol, nil
	case "pursue":
		return component.MotionPursue, nil
	case "dash":
		return component.MotionDash, nil
	}
	return nil, fmt.Errorf("SetMotion: unknown motion '%s'", name)
}

func compileAttackArgs(args map[string]any) (any, error) {
	enabled, ok := args["enabled"].(bool)
	if !ok {
		return nil, fmt.Errorf("SetAttack: 'enabled' must be a bool")
	}
	return enabled, nil
}

func compileVisualArgs(args map[string]any) (any, error) {
	name, _ := args["visual"].(string)
	switch name {
	case "idle":
		return component.VisualIdle, nil
	case "attacking":
		return component.VisualAttacking, nil
	case "special":
		return component.VisualSpecial, nil
	case "dead":
		return component.VisualDead, nil
	}
	return nil, fmt.Errorf("SetVisual: unknown visual '%s'", name)
}

// --- Actions ---

func actionSetMotion(ctx *BossContext, args any) {
	if motion, ok := args.(component.BossMotion); ok {
		ctx.Boss.Motion = motion
	}
}

func actionSetAttack(ctx *BossContext, args any) {
	if enabled, ok := args.(bool); ok {
		ctx.Boss.AttackEnabled = enabled
	}
}

func actionSetVisual(ctx *BossContext, args any) {
	if v, ok := args.(component.VisualState); ok {
		ctx.Unit.Visual = v
	}
}

func actionClearTarget(ctx *BossContext, _ any) {
	ctx.Unit.Target = 0
}

// actionBeginSpecial restarts the ability cooldown and captures variant state at windup
func actionBeginSpecial(ctx *BossContext, _ any) {
	boss := ctx.Boss
	boss.SpecialTimer = boss.SpecialCooldownFrames

	if boss.Variant == component.BossDive {
		boss.LockedPoint = ctx.Unit.Pos
		if tu, ok := ctx.World.LiveUnit(ctx.Unit.Target); ok {
			boss.LockedPoint = tu.Pos
		}
	}

	ctx.World.Emit(event.EventBossSpecialStarted, &event.BossPhasePayload{
		Boss:    ctx.Entity,
		Kind:    ctx.Unit.Kind,
		Phase:   boss.State,
		Ability: boss.Variant.String(),
	})
}

func actionExecuteSpecial(ctx *BossContext, _ any) {
	boss := ctx.Boss
	switch boss.Variant {
	case component.BossSummon:
		summonGuards(ctx)
	case component.BossDive:
		boss.Motion = component.MotionDash
	case component.BossTerritory:
		ctx.World.Emit(event.EventExplosionRequest, &event.ExplosionRequestPayload{
			Center:    ctx.Unit.Pos,
			Radius:    boss.SpecialRadius,
			Damage:    boss.SpecialDamage,
			Knockback: true,
			Faction:   ctx.Unit.Faction,
			Source:    ctx.Entity,
		})
	}
}

// actionImpact ends a dive with area damage at the landing point
func actionImpact(ctx *BossContext, _ any) {
	boss := ctx.Boss
	boss.Motion = component.MotionHold
	if ctx.Unit.Dead {
		return
	}
	ctx.World.Emit(event.EventExplosionRequest, &event.ExplosionRequestPayload{
		Center:    ctx.Unit.Pos,
		Radius:    boss.SpecialRadius,
		Damage:    boss.SpecialDamage,
		Knockback: true,
		Faction:   ctx.Unit.Faction,
		Source:    ctx.Entity,
	})
}

// actionDefeat stops all boss behavior and releases the guard roster without reward
func actionDefeat(ctx *BossContext, _ any) {
	w, u, boss := ctx.World, ctx.Unit, ctx.Boss
	boss.Defeated = true
	boss.Motion = component.MotionHold
	boss.AttackEnabled = false
	u.Vel = vmath.Vec2{}
	u.Visual = component.VisualDead
	w.Windups.RemoveEntity(ctx.Entity)

	for _, g := range boss.Guards {
		event.EmitDespawn(w.Queue, g, w.Frame())
	}
}

func actionEmitEvent(ctx *BossContext, args any) {
	a, ok := args.(*fsm.EmitEventArgs)
	if !ok {
		return
	}
	payload := &event.BossPhasePayload{}
	if p, ok := a.Payload.(*event.BossPhasePayload); ok && p != nil {
		*payload = *p
	}
	payload.Boss = ctx.Entity
	payload.Kind = ctx.Unit.Kind
	if payload.Ability == "" {
		payload.Ability = ctx.Boss.Variant.String()
	}
	ctx.World.Emit(a.Type, payload)
}

// summonGuards spawns guards evenly on a ring around the boss up to the roster cap
func summonGuards(ctx *BossContext) {
	boss := ctx.Boss
	n := min(boss.GuardsPerSummon, boss.GuardCap-len(liveGuards(ctx)))
	if n <= 0 {
		return
	}
	kind := boss.GuardKind
	if kind == "" {
		kind = "guard"
	}
	phase := ctx.World.RNG.Float64() * 2 * math.Pi
	for i := 0; i < n; i++ {
		angle := phase + 2*math.Pi*float64(i)/float64(n)
		pos := ctx.Unit.Pos.Add(vmath.V2(math.Cos(angle), math.Sin(angle)).Scale(parameter.BossGuardSpawnRadius))
		ctx.World.Emit(event.EventSpawnRequest, &event.SpawnRequestPayload{
			Kind:  kind,
			Pos:   pos,
			Owner: ctx.Entity,
		})
	}
}

// liveGuards returns roster members that are still live
func liveGuards(ctx *BossContext) []core.Entity {
	var out []core.Entity
	for _, g := range ctx.Boss.Guards {
		if _, ok := ctx.World.LiveUnit(g); ok {
			out = append(out, g)
		}
	}
	return out
}
