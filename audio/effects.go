package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/antcolony/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// floatBuffer is a rendered mono sound at unity gain
type floatBuffer []float64

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
// Noise is seeded so cached sounds render identically across runs
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	o := &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
	if wave == WaveNoise {
		o.noise = rand.New(rand.NewSource(int64(freq*1000) + 1))
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase, kept in [0, 1)
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is an enveloped oscillator
func tone(freq float64, wave WaveType, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// CreateExplosionSound mixes a noise burst over a low sine thump
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.ExplosionSoundDuration
	noise := tone(0, WaveNoise, d, parameter.ExplosionSoundAttack, parameter.ExplosionSoundRelease, rate)
	thump := tone(parameter.ExplosionThumpFreq, WaveSine, d, parameter.ExplosionSoundAttack, parameter.ExplosionSoundRelease, rate)
	return beep.Mix(newVolume(noise, 0.5), newVolume(thump, 0.5))
}

// CreatePhaseSound generates a short blip for boss transitions
func CreatePhaseSound(rate beep.SampleRate) beep.Streamer {
	return tone(parameter.PhaseSoundFreq, WaveSquare, parameter.PhaseSoundDuration,
		parameter.PhaseSoundAttack, parameter.PhaseSoundRelease, rate)
}

// CreateSpecialSound generates a rising two-note warning
func CreateSpecialSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.SpecialSoundNoteDuration
	lo := tone(parameter.SpecialSoundFreqLow, WaveSquare, d, parameter.SpecialSoundAttack, parameter.SpecialSoundRelease, rate)
	hi := tone(parameter.SpecialSoundFreqHigh, WaveSquare, d, parameter.SpecialSoundAttack, parameter.SpecialSoundRelease, rate)
	return beep.Seq(lo, hi)
}

// CreateEscalateSound generates a low saw growl
func CreateEscalateSound(rate beep.SampleRate) beep.Streamer {
	return tone(parameter.EscalateSoundFreq, WaveSaw, parameter.EscalateSoundDuration,
		parameter.EscalateSoundAttack, parameter.EscalateSoundRelease, rate)
}

// CreateDefeatSound generates a bell with an octave overtone
func CreateDefeatSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.DefeatSoundDuration
	fund := tone(parameter.DefeatSoundFreq, WaveSine, d, parameter.DefeatSoundAttack, parameter.DefeatSoundFundamentalRelease, rate)
	over := tone(parameter.DefeatSoundFreq*2, WaveSine, d, parameter.DefeatSoundAttack, parameter.DefeatSoundOvertoneRelease, rate)
	return beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
}

// CreateLostSound generates a descending three-note fall
func CreateLostSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.LostSoundNoteDuration
	notes := []float64{523.25, 392.0, 261.63} // C5 G4 C4
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		parts[i] = tone(f, WaveSine, d, parameter.LostSoundAttack, parameter.LostSoundRelease, rate)
	}
	return beep.Seq(parts...)
}

// GetSoundEffect returns a unity-gain streamer for the given type
func GetSoundEffect(st SoundType, rate beep.SampleRate) beep.Streamer {
	switch st {
	case SoundExplosion:
		return CreateExplosionSound(rate)
	case SoundBossPhase:
		return CreatePhaseSound(rate)
	case SoundBossSpecial:
		return CreateSpecialSound(rate)
	case SoundBossEscalate:
		return CreateEscalateSound(rate)
	case SoundBossDefeat:
		return CreateDefeatSound(rate)
	case SoundColonyLost:
		return CreateLostSound(rate)
	default:
		return nil
	}
}

// maxRenderSamples caps a rendered sound at two seconds
const maxRenderSamples = parameter.AudioSampleRate * 2

// render drains s into a mono buffer
func render(s beep.Streamer) floatBuffer {
	if s == nil {
		return nil
	}
	var out floatBuffer
	chunk := make([][2]float64, 512)
	for len(out) < maxRenderSamples {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, (chunk[i][0]+chunk[i][1])/2)
		}
		if !ok || n == 0 {
			return out
		}
	}
	return out
}
