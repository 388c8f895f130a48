package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/physics"
	"github.com/lixenwraith/antcolony/status"
	"github.com/lixenwraith/antcolony/vmath"
)

// Outcome is the result of advancing a projectile one frame
type Outcome uint8

const (
	OutcomeFlying Outcome = iota
	OutcomeHit
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeExpired:
		return "expired"
	default:
		return "flying"
	}
}

// ProjectileSystem creates projectiles from launch commands and advances them every frame
// A projectile whose target dies mid-flight freezes onto the last-known point and expires there without damage
type ProjectileSystem struct {
	world  *engine.World
	status *StatusSystem

	statLive *atomic.Int64
	statHits *atomic.Int64

	enabled bool
}

func NewProjectileSystem(world *engine.World, st *StatusSystem) *ProjectileSystem {
	s := &ProjectileSystem{world: world, status: st}
	s.statLive = world.Metrics.Ints.Get(status.KeyProjectilesLive)
	s.statHits = world.Metrics.Ints.Get(status.KeyProjectileHits)
	s.Init()
	return s
}

func (s *ProjectileSystem) Init() {
	s.statLive.Store(0)
	s.enabled = true
}

func (s *ProjectileSystem) Name() string {
	return "projectile"
}

func (s *ProjectileSystem) Priority() int {
	return parameter.PriorityProjectile
}

func (s *ProjectileSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventProjectileLaunch}
}

func (s *ProjectileSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventProjectileLaunch {
		return
	}
	if p, ok := ev.Payload.(*event.ProjectileLaunchPayload); ok {
		s.Launch(p)
	}
}

func (s *ProjectileSystem) Update() {
	if !s.enabled {
		return
	}
	w := s.world
	live := 0
	for _, e := range w.Projectiles.GetAllEntities() {
		if w.PendingRemoval(e) {
			continue
		}
		outcome := OutcomeExpired
		w.Isolate(s.Name(), e, func() {
			outcome = s.Advance(e)
		})
		if outcome == OutcomeFlying {
			live++
			continue
		}
		w.MarkForRemoval(e)
	}
	s.statLive.Store(int64(live))
}

// Launch creates a projectile entity from a launch command
// A launch whose owner left the live set before the flush is dropped; owner 0 is an unowned launch
func (s *ProjectileSystem) Launch(p *event.ProjectileLaunchPayload) core.Entity {
	w := s.world
	if p.Owner != 0 {
		if _, ok := w.LiveUnit(p.Owner); !ok {
			return 0
		}
	}
	st := p.Stats
	speed := st.Speed
	if speed <= 0 {
		return 0
	}
	hitRadius := st.HitRadius
	if hitRadius <= 0 {
		hitRadius = parameter.ProjectileHitRadius
	}

	dist := vmath.Dist(p.Origin, p.Dest)
	pc := &component.ProjectileComponent{
		Kinetic:   core.Kinetic{Pos: p.Origin},
		Owner:     p.Owner,
		Faction:   p.Faction,
		Target:    p.Target,
		Dest:      p.Dest,
		Origin:    p.Origin,
		Speed:     speed,
		HitRadius: hitRadius,
		Homing:    st.Homing,
		Payload:   p.Payload,
	}

	switch {
	case st.Arc:
		gravity := st.Gravity
		if gravity <= 0 {
			gravity = parameter.ArcGravity
		}
		frames, vz := physics.ArcPlan(dist, speed, gravity, parameter.ArcMinFlightFrames, parameter.ArcMaxFlightFrames)
		pc.Arc = true
		pc.Gravity = gravity
		pc.VZ = vz
		pc.FlightFrames = frames
		pc.Vel = physics.GroundStep(p.Origin, p.Dest, frames)
		pc.Lifetime = frames + parameter.ProjectileLifetimeSlack
	case st.Homing:
		if dist > 0 {
			pc.Vel = p.Dest.Sub(p.Origin).Scale(speed / dist)
		}
		// Homing paths curve; budget twice the straight flight
		pc.Lifetime = 2*int(math.Ceil(dist/speed)) + parameter.ProjectileLifetimeSlack
	default:
		pc.Lifetime = int(math.Ceil(dist/speed)) + parameter.ProjectileLifetimeSlack
	}

	e := w.CreateEntity()
	w.Projectiles.SetComponent(e, pc)
	return e
}

// Advance moves projectile e one frame and resolves hit or expiry
func (s *ProjectileSystem) Advance(e core.Entity) Outcome {
	w := s.world
	p, ok := w.Projectiles.GetComponent(e)
	if !ok {
		return OutcomeExpired
	}
	p.Age++

	var tu *component.UnitComponent
	if !p.Frozen {
		if tu, ok = w.LiveUnit(p.Target); !ok {
			// Target gone: fly on to the last-known point, deal nothing
			p.Frozen = true
			p.Target = 0
			p.Homing = false
		}
	}

	var outcome Outcome
	switch {
	case p.Arc:
		outcome = s.advanceArc(p, tu)
	case p.Homing:
		outcome = s.advanceHoming(p, tu)
	default:
		outcome = s.advanceStraight(p, tu)
	}
	if outcome != OutcomeFlying {
		return outcome
	}

	if p.Age >= p.Lifetime || !w.InBounds(p.Pos, parameter.WorldBoundsMargin) {
		return OutcomeExpired
	}
	return OutcomeFlying
}

// advanceStraight moves toward the launch-time point without overshooting
// The target is hit once within HitRadius, either on arrival or after it drifted off the aim point into the path
func (s *ProjectileSystem) advanceStraight(p *component.ProjectileComponent, tu *component.UnitComponent) Outcome {
	var arrived bool
	p.Pos, arrived = physics.StepStraight(p.Pos, p.Dest, p.Speed)

	if tu != nil {
		near := vmath.DistSq(p.Pos, tu.Pos) <= p.HitRadius*p.HitRadius
		drifted := vmath.DistSq(tu.Pos, p.Dest) > p.HitRadius*p.HitRadius
		if near && (arrived || drifted) {
			s.hit(p, p.Pos)
			return OutcomeHit
		}
	}
	if arrived {
		return OutcomeExpired
	}
	return OutcomeFlying
}

// advanceHoming re-aims at the live target every frame
func (s *ProjectileSystem) advanceHoming(p *component.ProjectileComponent, tu *component.UnitComponent) Outcome {
	p.Dest = tu.Pos
	physics.ApplyHoming(&p.Kinetic, p.Dest, &physics.HomingProfile{
		BaseSpeed:   p.Speed,
		HomingAccel: parameter.HomingAccel,
		Drag:        parameter.HomingTurnDrag,
	})
	if vmath.DistSq(p.Pos, tu.Pos) <= p.HitRadius*p.HitRadius {
		s.hit(p, p.Pos)
		return OutcomeHit
	}
	return OutcomeFlying
}

// advanceArc follows the lobbed path; only the landing frame can hit
func (s *ProjectileSystem) advanceArc(p *component.ProjectileComponent, tu *component.UnitComponent) Outcome {
	p.Height, p.VZ = physics.ArcStep(p.Height, p.VZ, p.Gravity)
	if p.Age < p.FlightFrames {
		p.Pos = p.Pos.Add(p.Vel)
		return OutcomeFlying
	}

	p.Pos = p.Dest
	p.Height = 0
	if p.Frozen {
		return OutcomeExpired
	}

	if tu != nil && vmath.DistSq(p.Pos, tu.Pos) <= p.HitRadius*p.HitRadius {
		s.hit(p, p.Pos)
		return OutcomeHit
	}
	// Ground burst: splash still lands around the impact point
	if p.Payload.SplashRadius > 0 {
		s.splash(p, p.Pos, 0)
		s.statHits.Add(1)
		return OutcomeHit
	}
	return OutcomeExpired
}

// hit delivers the payload to the primary target and splashes the rest
func (s *ProjectileSystem) hit(p *component.ProjectileComponent, impact vmath.Vec2) {
	w := s.world
	target := p.Target
	s.statHits.Add(1)

	_, killed := ApplyDamage(w, target, p.Owner, p.Payload.Damage)
	if !killed && p.Payload.HasEffect {
		eff := p.Payload.Effect
		eff.Origin = p.Origin
		s.status.Apply(target, eff)
	}
	if p.Payload.SplashRadius > 0 {
		s.splash(p, impact, target)
	}
}

// splash applies falloff damage to opposing units around impact, excluding the primary target
func (s *ProjectileSystem) splash(p *component.ProjectileComponent, impact vmath.Vec2, primary core.Entity) {
	w := s.world
	for _, v := range w.UnitsInRadius(impact, p.Payload.SplashRadius, p.Faction.Opponent()) {
		if v == primary {
			continue
		}
		vu, ok := w.LiveUnit(v)
		if !ok {
			continue
		}
		dmg := physics.Falloff(p.Payload.Damage, vmath.Dist(impact, vu.Pos), p.Payload.SplashRadius)
		if dmg > 0 {
			ApplyDamage(w, v, p.Owner, dmg)
		}
	}
}
