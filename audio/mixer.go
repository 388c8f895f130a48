package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/antcolony/parameter"
)

// activeSound tracks a playing sound instance
type activeSound struct {
	buffer floatBuffer
	pos    int
	volume float64
}

type playRequest struct {
	sound  SoundType
	volume float64
}

// Mixer sums active sounds and writes s16le stereo frames to output
type Mixer struct {
	output io.Writer
	cache  *soundCache

	samplesPerTick int
	tick           time.Duration

	playQueue chan playRequest
	stopChan  chan struct{}
	doneChan  chan struct{}
	stopped   atomic.Bool

	// Accessed only by mix goroutine
	active []activeSound

	played  atomic.Uint64
	dropped atomic.Uint64

	errChan chan error
}

// NewMixer creates a mixer writing to out at the cache's sample rate
func NewMixer(out io.Writer, cache *soundCache) *Mixer {
	return &Mixer{
		output:         out,
		cache:          cache,
		samplesPerTick: cache.rate.N(parameter.AudioBufferDuration),
		tick:           parameter.AudioBufferDuration,
		playQueue:      make(chan playRequest, parameter.AudioPlayQueueSize),
		stopChan:       make(chan struct{}),
		doneChan:       make(chan struct{}),
		active:         make([]activeSound, 0, 8),
		errChan:        make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	go m.loop()
}

// Stop signals the mixer to halt and waits for the loop to exit
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
	<-m.doneChan
}

// Play queues a sound at the given linear volume; full queue drops the request
func (m *Mixer) Play(st SoundType, volume float64) bool {
	if m.stopped.Load() {
		return false
	}

	select {
	case m.playQueue <- playRequest{sound: st, volume: volume}:
		return true
	default:
		m.dropped.Add(1)
		return false
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

// loop is the main mixing goroutine
func (m *Mixer) loop() {
	defer close(m.doneChan)

	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	mixBuf := make([]float64, m.samplesPerTick)
	outBytes := make([]byte, m.samplesPerTick*parameter.AudioBytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case req := <-m.playQueue:
			m.activate(req)
			m.drainQueue(4)

		case <-ticker.C:
			if _, err := m.output.Write(m.mixTick(mixBuf, outBytes)); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

// mixTick renders one buffer; silence keeps the backend pipe alive
func (m *Mixer) mixTick(mixBuf []float64, outBytes []byte) []byte {
	if len(m.active) == 0 {
		clear(outBytes)
		return outBytes
	}
	clear(mixBuf)
	m.active = m.mixActive(mixBuf, len(mixBuf))
	floatToBytes(mixBuf, outBytes)
	return outBytes
}

func (m *Mixer) activate(req playRequest) {
	buf := m.cache.get(req.sound)
	if len(buf) == 0 {
		return
	}
	m.active = append(m.active, activeSound{buffer: buf, volume: req.volume})
	m.played.Add(1)
}

// drainQueue processes up to n additional queued requests
func (m *Mixer) drainQueue(n int) {
	for i := 0; i < n; i++ {
		select {
		case req := <-m.playQueue:
			m.activate(req)
		default:
			return
		}
	}
}

// mixActive mixes all active sounds into buf, returns remaining sounds
func (m *Mixer) mixActive(buf []float64, samples int) []activeSound {
	remaining := m.active[:0]

	for i := range m.active {
		s := &m.active[i]
		for j := 0; j < samples && s.pos < len(s.buffer); j++ {
			buf[j] += s.buffer[s.pos] * s.volume
			s.pos++
		}
		if s.pos < len(s.buffer) {
			remaining = append(remaining, *s)
		}
	}

	return remaining
}

// floatToBytes converts float64 mono to interleaved stereo int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}

		v = max(-1.0, min(1.0, v))

		i16 := int16(v * 32767)
		idx := i * parameter.AudioBytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], uint16(i16))   // L
		binary.LittleEndian.PutUint16(out[idx+2:], uint16(i16)) // R
	}
}

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	return m.played.Load(), m.dropped.Load()
}
