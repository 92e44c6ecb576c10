package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/pondsim/internal/config"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

var ErrNotStarted = errors.New("audio: stream not started")

// Bands is the output spectrum split into three smoothed levels in [0,1].
type Bands struct {
	Bass, Mid, High float64
}

// chord is a minor seventh add nine stack expressed as ratios over the base
// frequency.
var chord = []float64{1, 6.0 / 5, 3.0 / 2, 9.0 / 5, 9.0 / 4}

// Processor sonifies the pond: the mean level opens a low-pass filter and
// each active ripple adds a short swell. Output only.
type Processor struct {
	stream *portaudio.Stream
	logger *slog.Logger

	baseFreq float64
	volume   float64
	rest     float64

	maxLevel float64
	mono     []float64

	time      float64
	filter    [2]float64
	delayLine [2][]float64
	delayHead int

	mu            sync.Mutex
	bands         Bands
	level         float64
	ripples       int
	levelSmooth   float64
	ripplesSmooth float64

	Active bool
}

// NewProcessor builds a processor for a pond resting at rest.
func NewProcessor(cfg config.AudioConfig, rest float64, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	base := cfg.BaseFreq
	if base <= 0 {
		base = config.DefaultBaseFreq
	}
	vol := cfg.Volume
	if vol <= 0 {
		vol = config.DefaultVolume
	}
	delayLen := int(float64(SampleRate) * 0.45)
	return &Processor{
		logger:    logger,
		baseFreq:  base,
		volume:    math.Min(vol, 1),
		rest:      rest,
		level:     rest,
		maxLevel:  0.1,
		mono:      make([]float64, BufferSize),
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting output stream: %w", err)
	}

	a.logger.Info("audio started", "sample_rate", SampleRate, "base_freq", a.baseFreq)
	a.stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() error {
	if a.stream == nil {
		return ErrNotStarted
	}
	a.stream.Stop()
	a.stream.Close()
	a.stream = nil
	a.Active = false
	a.logger.Info("audio stopped")
	return portaudio.Terminate()
}

// UpdateLevel publishes the latest field statistics. Safe to call from the
// render loop while the stream callback runs.
func (a *Processor) UpdateLevel(mean float64, ripples int) {
	a.mu.Lock()
	a.level = mean
	a.ripples = ripples
	a.mu.Unlock()
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one-pole low-pass filter.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// cutoff maps the deviation of the field from rest onto 300..1500 Hz.
func cutoff(level, rest float64) float64 {
	dev := math.Min(math.Abs(level-rest)*4, 1)
	return 300 + 1200*dev
}

// ProcessAudio is the stream callback.
func (a *Processor) ProcessAudio(out [][]float32) {
	a.Synthesize(out)
	a.analyze(out[0])
}

// Synthesize fills out (two channels) with the next block of samples.
func (a *Processor) Synthesize(out [][]float32) {
	a.mu.Lock()
	target, ripples := a.level, a.ripples
	a.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	g := 1.0 / float64(len(chord))

	for i := range out[0] {
		a.levelSmooth = a.levelSmooth*0.995 + target*0.005
		a.ripplesSmooth = a.ripplesSmooth*0.999 + float64(ripples)*0.001
		fc := cutoff(a.levelSmooth, a.rest)
		swell := 0.6 + 0.4*math.Min(a.ripplesSmooth/8, 1)

		var l, r float64
		for j, ratio := range chord {
			f := a.baseFreq * ratio
			lfo := math.Sin(a.time*0.2 + float64(j))
			l += triangle(a.time*f*0.999) * g * (0.7 + 0.3*lfo)
			r += triangle(a.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		l, a.filter[0] = lpf(l*swell, fc, dt, a.filter[0])
		r, a.filter[1] = lpf(r*swell, fc, dt, a.filter[1])

		dl := a.delayLine[0][a.delayHead]
		dr := a.delayLine[1][a.delayHead]
		mixL := l + dl*0.3 + dr*0.1
		mixR := r + dr*0.3 + dl*0.1
		a.delayLine[0][a.delayHead] = mixL * 0.6
		a.delayLine[1][a.delayHead] = mixR * 0.6
		a.delayHead = (a.delayHead + 1) % len(a.delayLine[0])

		out[0][i] = float32(mixL * a.volume)
		if len(out) > 1 {
			out[1][i] = float32(mixR * a.volume)
		}
		a.time += dt
	}
}

// analyze splits the block spectrum into three bands for the HUD meter.
func (a *Processor) analyze(block []float32) {
	if len(block) == 0 {
		return
	}
	if cap(a.mono) < len(block) {
		a.mono = make([]float64, len(block))
	}
	a.mono = a.mono[:len(block)]
	n := float64(len(block) - 1)
	for i, v := range block {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/math.Max(n, 1)))
		a.mono[i] = float64(v) * w
	}
	spectrum := fft.FFTReal(a.mono)

	bins := len(block) / 2
	binHz := float64(SampleRate) / float64(len(block))
	var bass, mid, high float64
	for i := 1; i < bins; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch hz := float64(i) * binHz; {
		case hz < 250:
			bass += mag
		case hz < 2000:
			mid += mag
		default:
			high += mag
		}
	}

	peak := math.Max(bass, math.Max(mid, high))
	if peak > a.maxLevel {
		a.maxLevel = peak
	} else {
		a.maxLevel *= 0.999
	}
	gain := 1.0 / math.Max(a.maxLevel, 1e-3)

	a.mu.Lock()
	a.bands.Bass = a.bands.Bass*0.9 + math.Min(bass*gain, 1)*0.1
	a.bands.Mid = a.bands.Mid*0.9 + math.Min(mid*gain, 1)*0.1
	a.bands.High = a.bands.High*0.9 + math.Min(high*gain, 1)*0.1
	a.mu.Unlock()
}

// Bands returns the latest smoothed output analysis.
func (a *Processor) Bands() Bands {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bands
}

// Meter is the mean band level, used for the HUD bar.
func (a *Processor) Meter() float64 {
	b := a.Bands()
	return (b.Bass + b.Mid + b.High) / 3
}
