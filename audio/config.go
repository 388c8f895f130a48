package audio

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/antcolony/parameter"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns enabled audio at half volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundExplosion:    0.7,
			SoundBossPhase:    0.4,
			SoundBossSpecial:  0.8,
			SoundBossEscalate: 0.9,
			SoundBossDefeat:   1.0,
			SoundColonyLost:   1.0,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("ANTCOLONY_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100, converted to 0.0-1.0
	if volume := os.Getenv("ANTCOLONY_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	// Effect volumes as an inline YAML map, e.g. "{explosion: 0.3, defeat: 1}"
	if effectVols := os.Getenv("ANTCOLONY_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := yaml.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for name, v := range volumes {
				if st, ok := ParseSoundType(name); ok {
					cfg.EffectVolumes[st] = clampVolume(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv("ANTCOLONY_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
