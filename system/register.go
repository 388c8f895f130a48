package system

import "github.com/lixenwraith/antcolony/engine"

// Options selects optional systems
type Options struct {
	// Waves enables the hostile wave director
	Waves bool
}

// Systems holds the installed systems for hosts and tests that drive them directly
type Systems struct {
	Status     *StatusSystem
	Targeting  *TargetingSystem
	Boss       *BossSystem
	Attack     *AttackSystem
	Movement   *MovementSystem
	Projectile *ProjectileSystem
	Explosion  *ExplosionSystem
	Death      *DeathSystem
	Wave       *WaveSystem
}

// Register builds the standard system set and installs it on sim
func Register(sim *engine.Simulation, opts Options) *Systems {
	w := sim.World()
	st := NewStatusSystem(w)
	s := &Systems{
		Status:     st,
		Targeting:  NewTargetingSystem(w),
		Boss:       NewBossSystem(w, st),
		Attack:     NewAttackSystem(w, st),
		Movement:   NewMovementSystem(w),
		Projectile: NewProjectileSystem(w, st),
		Explosion:  NewExplosionSystem(w),
		Death:      NewDeathSystem(w),
	}

	sim.AddSystem(s.Status)
	sim.AddSystem(s.Targeting)
	sim.AddSystem(s.Boss)
	sim.AddSystem(s.Attack)
	sim.AddSystem(s.Movement)
	sim.AddSystem(s.Projectile)
	sim.AddSystem(s.Explosion)
	sim.AddSystem(s.Death)

	if opts.Waves {
		s.Wave = NewWaveSystem(w, sim.Catalog())
		sim.AddSystem(s.Wave)
	}
	return s
}
