package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/pondsim/internal/pond"
)

// Simulator drives a pond.Program headlessly: events from a Script, then
// Tick, then Render, then metrics and observers, once per tick.
type Simulator struct {
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
	pools     *PixelPools
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.Default(),
		pools:     NewPixelPools(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetPools makes the simulator draw frame buffers from pools shared with
// other simulators.
func (s *Simulator) SetPools(p *PixelPools) {
	if p != nil {
		s.pools = p
	}
}

func (s *Simulator) Metrics() []Metric { return s.metrics }

// Run executes cfg.Ticks ticks. On cancellation the partial result is
// returned together with a *RunError wrapping the context error.
func (s *Simulator) Run(ctx context.Context, prog pond.Program, script Script, cfg Config) (*Result, error) {
	if prog == nil {
		return nil, ErrNilProgram
	}
	if script == nil {
		script = Idle
	}
	w, h := prog.Dimensions()
	if err := validateConfig(cfg, w, h); err != nil {
		return nil, err
	}

	result := &Result{
		Samples: make([]Sample, 0, cfg.Ticks/cfg.SampleEvery+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	pool := s.pools.For(w * h)
	buf := pool.Get()
	defer pool.Put(buf)

	counter, _ := prog.(rippleCounter)
	start := time.Now()
	s.logger.Debug("run started", "width", w, "height", h, "ticks", cfg.Ticks, "seed", cfg.Seed)

	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			s.collect(result)
			s.logger.Warn("run cancelled", "tick", tick, "err", ctx.Err())
			return result, &RunError{Tick: tick, Err: ctx.Err()}
		default:
		}

		events := script.Events(tick)
		prog.Tick(events)
		prog.Render(buf)

		frame := Frame{
			Tick:   tick + 1,
			Width:  w,
			Height: h,
			Pixels: buf,
			Events: len(events),
		}
		if counter != nil {
			frame.Ripples = counter.ActiveRipples()
		}

		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnFrame(frame)
		}

		result.Ticks++
		result.Events += len(events)
		if frame.Tick%cfg.SampleEvery == 0 {
			result.Samples = append(result.Samples, Sample{
				Tick:    frame.Tick,
				Mean:    frame.Mean(),
				Peak:    frame.Peak(),
				Probe:   frame.Level(cfg.Probe),
				Ripples: frame.Ripples,
				Events:  frame.Events,
			})
		}
	}

	result.Elapsed = time.Since(start)
	s.collect(result)
	s.logger.Debug("run complete", "ticks", result.Ticks, "events", result.Events, "elapsed", result.Elapsed)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config, w, h int) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, cfg.Ticks)
	}
	if cfg.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample interval must be positive, got %d", ErrInvalidConfig, cfg.SampleEvery)
	}
	if cfg.Probe.X < 0 || cfg.Probe.Y < 0 || cfg.Probe.X >= w || cfg.Probe.Y >= h {
		return fmt.Errorf("%w: probe %v outside %dx%d", ErrInvalidConfig, cfg.Probe, w, h)
	}
	return nil
}

// RunWithCallback ticks until the callback returns false, maxTicks is
// reached or ctx is done. Metrics and observers are not invoked.
func (s *Simulator) RunWithCallback(ctx context.Context, prog pond.Program, script Script, maxTicks int, callback func(Frame) bool) error {
	if prog == nil {
		return ErrNilProgram
	}
	if maxTicks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, maxTicks)
	}
	if script == nil {
		script = Idle
	}

	w, h := prog.Dimensions()
	pool := s.pools.For(w * h)
	buf := pool.Get()
	defer pool.Put(buf)
	counter, _ := prog.(rippleCounter)

	for tick := 0; tick < maxTicks; tick++ {
		select {
		case <-ctx.Done():
			return &RunError{Tick: tick, Err: ctx.Err()}
		default:
		}

		events := script.Events(tick)
		prog.Tick(events)
		prog.Render(buf)

		frame := Frame{Tick: tick + 1, Width: w, Height: h, Pixels: buf, Events: len(events)}
		if counter != nil {
			frame.Ripples = counter.ActiveRipples()
		}
		if !callback(frame) {
			return nil
		}
	}
	return nil
}
