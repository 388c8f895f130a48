package system

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/status"
	"github.com/lixenwraith/antcolony/vmath"
)

// WaveSystem feeds hostile waves in from the world edges on a fixed frame schedule
type WaveSystem struct {
	world   *engine.World
	catalog *content.Catalog

	wave      int
	nextFrame uint64

	statWave *atomic.Int64

	enabled bool
}

func NewWaveSystem(world *engine.World, catalog *content.Catalog) *WaveSystem {
	s := &WaveSystem{world: world, catalog: catalog}
	s.statWave = world.Metrics.Ints.Get(status.KeyWave)
	s.Init()
	return s
}

// Init resets session state for new game
func (s *WaveSystem) Init() {
	s.wave = 0
	s.nextFrame = parameter.WaveFirstFrame
	s.statWave.Store(0)
	s.enabled = true
}

func (s *WaveSystem) Name() string {
	return "wave"
}

func (s *WaveSystem) Priority() int {
	return parameter.PriorityWave
}

func (s *WaveSystem) EventTypes() []event.EventType {
	return nil
}

func (s *WaveSystem) HandleEvent(event.GameEvent) {}

// Wave returns the number of waves started so far
func (s *WaveSystem) Wave() int {
	return s.wave
}

// WaveSize returns the regular hostile count of wave n, counting from 1
func WaveSize(n int) int {
	if n < 1 {
		return 0
	}
	return parameter.WaveBaseCount + parameter.WaveGrowth*(n-1)
}

func (s *WaveSystem) Update() {
	if !s.enabled || s.world.Frame() < s.nextFrame {
		return
	}
	s.nextFrame = s.world.Frame() + parameter.WaveIntervalFrames
	s.startWave()
}

func (s *WaveSystem) startWave() {
	w := s.world
	s.wave++
	s.statWave.Store(int64(s.wave))

	kinds := s.catalog.KindsOf("hostile")
	if len(kinds) == 0 {
		w.Logger.Warn("wave skipped, no hostile kinds", zap.Int("wave", s.wave))
		return
	}

	count := WaveSize(s.wave)
	for i := 0; i < count; i++ {
		s.request(kinds[w.RNG.Intn(len(kinds))])
	}

	if parameter.WaveBossEvery > 0 && s.wave%parameter.WaveBossEvery == 0 {
		if bosses := s.catalog.BossKinds(); len(bosses) > 0 {
			s.request(bosses[w.RNG.Intn(len(bosses))])
			count++
		}
	}

	w.Logger.Info("wave started",
		zap.Int("wave", s.wave),
		zap.Int("count", count),
		zap.Uint64("frame", w.Frame()))
	w.Emit(event.EventWaveStarted, &event.WaveStartedPayload{Wave: s.wave, Count: count})
}

func (s *WaveSystem) request(kind string) {
	s.world.Emit(event.EventSpawnRequest, &event.SpawnRequestPayload{
		Kind: kind,
		Pos:  s.edgePoint(),
	})
}

// edgePoint picks a random point just inside one of the four world edges
func (s *WaveSystem) edgePoint() vmath.Vec2 {
	w := s.world
	width, height := w.Bounds()
	in := parameter.WaveSpawnInset
	switch w.RNG.Intn(4) {
	case 0:
		return vmath.V2(w.RNG.Range(in, width-in), in)
	case 1:
		return vmath.V2(w.RNG.Range(in, width-in), height-in)
	case 2:
		return vmath.V2(in, w.RNG.Range(in, height-in))
	default:
		return vmath.V2(width-in, w.RNG.Range(in, height-in))
	}
}
