package audio

import (
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"go.uber.org/zap"
)

// AudioEngine plays cached sounds by piping PCM to a system player
// Without a backend it runs in silent mode and Play is a no-op
type AudioEngine struct {
	config *AudioConfig
	cache  *soundCache
	mixer  *Mixer
	logger *zap.Logger

	backend *BackendConfig
	cmd     *exec.Cmd
	output  io.WriteCloser

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	mu sync.RWMutex // Protects config
	wg sync.WaitGroup
}

// NewAudioEngine creates an audio engine; nil config uses defaults
func NewAudioEngine(cfg *AudioConfig, logger *zap.Logger) *AudioEngine {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ae := &AudioEngine{
		config: cfg,
		cache:  newSoundCache(beep.SampleRate(cfg.SampleRate)),
		logger: logger.Named("audio"),
	}
	ae.muted.Store(!cfg.Enabled)
	return ae
}

// Start detects a backend and launches the mixer
func (ae *AudioEngine) Start() error {
	backend, err := DetectBackend(ae.config.SampleRate)
	if err != nil {
		if !ae.running.CompareAndSwap(false, true) {
			return ErrRunning
		}
		ae.silentMode.Store(true)
		ae.logger.Info("no audio backend, running silent")
		return nil
	}
	return ae.startWith(backend)
}

func (ae *AudioEngine) startWith(backend *BackendConfig) error {
	if !ae.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	ae.backend = backend

	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			ae.goSilent(err)
			return nil
		}
		ae.output = f
	} else {
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			ae.goSilent(err)
			return nil
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			ae.goSilent(err)
			return nil
		}
		ae.cmd = cmd
		ae.output = stdin

		ae.wg.Add(1)
		go ae.monitorProcess()
	}

	ae.attach(ae.output)
	ae.logger.Info("audio started", zap.String("backend", backend.Name))
	return nil
}

// attach starts a mixer on w
func (ae *AudioEngine) attach(w io.Writer) {
	ae.cache.preload()
	ae.mixer = NewMixer(w, ae.cache)
	ae.mixer.Start()

	ae.wg.Add(1)
	go ae.monitorMixer(ae.mixer)
}

func (ae *AudioEngine) goSilent(err error) {
	ae.silentMode.Store(true)
	ae.logger.Warn("audio backend failed, running silent", zap.Error(err))
}

// monitorProcess watches for subprocess exit
func (ae *AudioEngine) monitorProcess() {
	defer ae.wg.Done()

	if err := ae.cmd.Wait(); err != nil && ae.running.Load() && !ae.silentMode.Load() {
		ae.goSilent(err)
	}
}

// monitorMixer watches for pipe errors
func (ae *AudioEngine) monitorMixer(m *Mixer) {
	defer ae.wg.Done()

	select {
	case err := <-m.Errors():
		ae.goSilent(err)
	case <-m.doneChan:
	}
}

// Stop terminates the engine
func (ae *AudioEngine) Stop() {
	if !ae.running.CompareAndSwap(true, false) {
		return
	}

	if ae.mixer != nil {
		ae.mixer.Stop()
	}
	if ae.output != nil {
		ae.output.Close()
	}
	if ae.cmd != nil && ae.cmd.Process != nil {
		ae.cmd.Process.Kill()
	}

	ae.wg.Wait()
}

// Play queues a sound for playback, scaled by master and effect volume
func (ae *AudioEngine) Play(st SoundType) bool {
	if !ae.IsEnabled() || ae.mixer == nil {
		return false
	}

	ae.mu.RLock()
	vol := ae.config.MasterVolume
	if ev, ok := ae.config.EffectVolumes[st]; ok {
		vol *= ev
	}
	ae.mu.RUnlock()

	return ae.mixer.Play(st, vol)
}

// ToggleMute toggles mute state, returns true if now audible
func (ae *AudioEngine) ToggleMute() bool {
	newMute := !ae.muted.Load()
	ae.muted.Store(newMute)
	return !newMute
}

// IsMuted returns current mute state
func (ae *AudioEngine) IsMuted() bool {
	return ae.muted.Load()
}

// IsEnabled returns true if running and unmuted
func (ae *AudioEngine) IsEnabled() bool {
	return ae.running.Load() && !ae.muted.Load() && !ae.silentMode.Load()
}

// IsRunning returns true if engine is running (even in silent mode)
func (ae *AudioEngine) IsRunning() bool {
	return ae.running.Load()
}

// SetVolume updates master volume (0.0-1.0)
func (ae *AudioEngine) SetVolume(vol float64) {
	ae.mu.Lock()
	ae.config.MasterVolume = clampVolume(vol)
	ae.mu.Unlock()
}

// Stats returns played and dropped counts
func (ae *AudioEngine) Stats() (played, dropped uint64) {
	if ae.mixer != nil {
		return ae.mixer.Stats()
	}
	return 0, 0
}
