package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundExplosion     SoundType = iota // Area damage resolved
	SoundBossPhase                      // Boss state machine transition
	SoundBossSpecial                    // Special ability windup
	SoundBossEscalate                   // One-way HP escalation
	SoundBossDefeat                     // Boss entered DEAD
	SoundColonyLost                     // Leader died
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	"explosion", "phase", "special", "escalate", "defeat", "lost",
}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSoundType maps a config key to a SoundType
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
	ErrRunning        = errors.New("audio engine already running")
)
