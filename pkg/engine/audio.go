package engine

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/iamjwc/driving-without-turning/internal/logger"
	"github.com/iamjwc/driving-without-turning/internal/mathx"
	"github.com/iamjwc/driving-without-turning/pkg/config"
)

const (
	sampleRate      = 44100
	framesPerBuffer = 1024
	numChannels     = 2

	// Level changes are smoothed over roughly a quarter second
	levelSmoothing = 1.0 / (0.25 * sampleRate)
)

// Ambience plays street noise whose loudness follows the weather
type Ambience struct {
	stream *portaudio.Stream
	volume float32
	log    *logger.Logger

	// target is written by the main loop and read by the audio callback
	target atomic.Uint64

	// Callback-only state
	rng     *mathx.Rand
	level   float64
	lowpass [numChannels]float64
	rumble  float64
	running bool
}

// NewAmbience opens the default output device. The caller treats an error
// as "run silent".
func NewAmbience(cfg config.AudioConfig, seed uint64, log *logger.Logger) (*Ambience, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	a := &Ambience{
		volume: float32(cfg.Volume),
		log:    log,
		rng:    mathx.NewRand(seed),
	}

	var err error
	a.stream, err = portaudio.OpenDefaultStream(0, numChannels, sampleRate, framesPerBuffer, a.audioCallback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err := a.stream.Start(); err != nil {
		a.stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start audio stream: %w", err)
	}

	a.running = true
	log.Infof("audio started: %d Hz, %d channels", sampleRate, numChannels)
	return a, nil
}

// SetIntensity sets the 0..1 loudness the ambience fades towards
func (a *Ambience) SetIntensity(v float64) {
	a.target.Store(math.Float64bits(mathx.Clamp(v, 0, 1)))
}

// audioCallback is called by PortAudio to fill the audio buffer. Rain is
// low-passed white noise; a slower random walk under it stands in for
// traffic.
func (a *Ambience) audioCallback(out []float32) {
	target := math.Float64frombits(a.target.Load())

	for i := 0; i < len(out); i += numChannels {
		a.level += (target - a.level) * levelSmoothing

		a.rumble += (a.rng.Float64()*2 - 1) * 0.02
		a.rumble *= 0.995

		for ch := 0; ch < numChannels; ch++ {
			white := a.rng.Float64()*2 - 1
			a.lowpass[ch] += (white - a.lowpass[ch]) * 0.3

			sample := (a.lowpass[ch]*a.level + a.rumble*0.3) * float64(a.volume)
			out[i+ch] = float32(mathx.Clamp(sample, -1, 1))
		}
	}
}

// Shutdown stops the stream and releases PortAudio
func (a *Ambience) Shutdown() {
	if !a.running {
		return
	}
	a.running = false

	if err := a.stream.Stop(); err != nil {
		a.log.Warnf("failed to stop audio stream: %v", err)
	}
	if err := a.stream.Close(); err != nil {
		a.log.Warnf("failed to close audio stream: %v", err)
	}
	portaudio.Terminate()
}
