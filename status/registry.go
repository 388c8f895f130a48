// Package status is the telemetry facade read by the viewer HUD and the snapshot stream
package status

import "sync/atomic"

// Well-known metric keys written by the simulation
const (
	KeyFrame           = "engine.frame"
	KeyWarnings        = "engine.warnings"
	KeyLiveColony      = "units.colony"
	KeyLiveHostile     = "units.hostile"
	KeyKillsColony     = "kills.colony"
	KeyKillsHostile    = "kills.hostile"
	KeyRewardTotal     = "economy.reward"
	KeyExplosions      = "combat.explosions"
	KeyDamageDealt     = "combat.damage"
	KeyProjectilesLive = "projectile.live"
	KeyProjectileHits  = "projectile.hits"
	KeyWave            = "wave.current"
	KeyBossState       = "boss.state"
	KeyBossHP          = "boss.hp"
	KeyBossHPFraction  = "boss.hp_fraction"
	KeyPeers           = "net.peers"
	KeySnapshotsSent   = "net.snapshots"
)

// Registry is the central metrics facade
// Systems cache pointers during construction; update loops write directly to atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// IntValues copies every integer metric, used by the HUD and snapshot encoder
func (r *Registry) IntValues() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
