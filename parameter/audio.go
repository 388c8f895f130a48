package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines latency and mixer tick rate
	AudioBufferDuration = 50 * time.Millisecond

	// AudioBufferSamples is frames per mixer tick at 44.1kHz
	AudioBufferSamples = (AudioSampleRate * 50) / 1000 // 2205

	// AudioPlayQueueSize bounds pending play requests before drops
	AudioPlayQueueSize = 32

	// AudioExplosionGapFrames suppresses explosion sounds closer together than this
	AudioExplosionGapFrames = 6
)

// Explosion Sound: filtered noise burst with a low thump
const (
	ExplosionSoundDuration = 350 * time.Millisecond
	ExplosionSoundAttack   = 3 * time.Millisecond
	ExplosionSoundRelease  = 300 * time.Millisecond
	ExplosionThumpFreq     = 55.0 // Hz
)

// Boss Phase Sound: short square blip
const (
	PhaseSoundDuration = 90 * time.Millisecond
	PhaseSoundAttack   = 5 * time.Millisecond
	PhaseSoundRelease  = 40 * time.Millisecond
	PhaseSoundFreq     = 440.0
)

// Boss Special Sound: rising two-note warning
const (
	SpecialSoundNoteDuration = 140 * time.Millisecond
	SpecialSoundAttack       = 5 * time.Millisecond
	SpecialSoundRelease      = 60 * time.Millisecond
	SpecialSoundFreqLow      = 392.0 // G4
	SpecialSoundFreqHigh     = 587.3 // D5
)

// Boss Escalation Sound: saw growl
const (
	EscalateSoundDuration = 500 * time.Millisecond
	EscalateSoundAttack   = 20 * time.Millisecond
	EscalateSoundRelease  = 250 * time.Millisecond
	EscalateSoundFreq     = 110.0
)

// Boss Defeat Sound: bell with octave overtone
const (
	DefeatSoundDuration           = 700 * time.Millisecond
	DefeatSoundAttack             = 5 * time.Millisecond
	DefeatSoundFundamentalRelease = 650 * time.Millisecond
	DefeatSoundOvertoneRelease    = 250 * time.Millisecond
	DefeatSoundFreq               = 880.0
)

// Colony Lost Sound: descending three-note fall
const (
	LostSoundNoteDuration = 220 * time.Millisecond
	LostSoundAttack       = 5 * time.Millisecond
	LostSoundRelease      = 150 * time.Millisecond
)
