package system

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/physics"
	"github.com/lixenwraith/antcolony/vmath"
)

// MovementSystem is the decision step for motion: seek, wander, boss motion intents and confused stumbling
// Impulse velocity from knockback and stumbles is integrated here and decays through drag
type MovementSystem struct {
	world *engine.World

	enabled bool
}

func NewMovementSystem(world *engine.World) *MovementSystem {
	s := &MovementSystem{world: world}
	s.Init()
	return s
}

func (s *MovementSystem) Init() {
	s.enabled = true
}

func (s *MovementSystem) Name() string {
	return "movement"
}

func (s *MovementSystem) Priority() int {
	return parameter.PriorityMovement
}

func (s *MovementSystem) EventTypes() []event.EventType {
	return nil
}

func (s *MovementSystem) HandleEvent(event.GameEvent) {}

func (s *MovementSystem) Update() {
	if !s.enabled {
		return
	}
	w := s.world
	for _, e := range w.Units.GetAllEntities() {
		u, ok := w.LiveUnit(e)
		if !ok {
			continue
		}
		w.Isolate(s.Name(), e, func() {
			s.move(e, u)
		})
	}
}

func (s *MovementSystem) move(e core.Entity, u *component.UnitComponent) {
	w := s.world

	switch {
	case u.Mode == component.ModeConfused:
		if w.RNG.Chance(parameter.ConfusionImpulseChance) {
			physics.ApplyImpulse(&u.Kinetic, w.RNG.UnitVector().Scale(parameter.ConfusionImpulseMagnitude))
		}
	case w.Windups.HasEntity(e):
		// Rooted while winding up a shot
	default:
		if boss, ok := w.Bosses.GetComponent(e); ok {
			s.moveBoss(u, boss)
		} else if tu, ok := w.LiveUnit(u.Target); ok {
			u.Pos = physics.Seek(u.Pos, tu.Pos, u.Speed, u.Range*parameter.ArrivalSlack)
		} else {
			s.wander(u)
		}
	}

	physics.Integrate(&u.Kinetic)
	physics.ApplyDrag(&u.Kinetic, parameter.UnitDrag, parameter.VelocityEpsilon)
	width, height := w.Bounds()
	physics.ClampBounds(&u.Kinetic, width, height, 0)
}

// wander is a biased random walk: occasional new heading pulled toward home
func (s *MovementSystem) wander(u *component.UnitComponent) {
	rng := s.world.RNG
	if u.Heading.IsZero() || rng.Chance(parameter.WanderTurnChance) {
		heading := rng.UnitVector()
		if home := u.Home.Sub(u.Pos); !home.IsZero() {
			heading = heading.Add(home.Normalize().Scale(parameter.WanderHomeBias))
		}
		u.Heading = heading.Normalize()
	}
	u.Pos = u.Pos.Add(u.Heading.Scale(u.Speed * parameter.WanderSpeedFactor))
}

func (s *MovementSystem) moveBoss(u *component.UnitComponent, boss *component.BossComponent) {
	w := s.world
	switch boss.Motion {
	case component.MotionPatrol:
		next, arrived := vmath.MoveToward(u.Pos, boss.PatrolPoint, u.Speed*parameter.WanderSpeedFactor)
		u.Pos = next
		if arrived {
			radius := boss.PatrolRadius
			if boss.TerritoryRadius > 0 {
				radius = min(radius, boss.TerritoryRadius)
			}
			boss.PatrolPoint = u.Home.Add(w.RNG.UnitVector().Scale(w.RNG.Range(0.3, 1) * radius))
		}
	case component.MotionPursue:
		if tu, ok := w.LiveUnit(u.Target); ok {
			u.Pos = physics.Seek(u.Pos, tu.Pos, u.Speed, u.Range*parameter.ArrivalSlack)
		}
	case component.MotionDash:
		u.Pos, _ = vmath.MoveToward(u.Pos, boss.LockedPoint, u.Speed*boss.DiveSpeedFactor)
	}
}
