package audio

import (
	"math"
	"sync"
	"testing"

	"github.com/san-kum/pondsim/internal/config"
)

func TestTriangle(t *testing.T) {
	tests := []struct {
		phase float64
		want  float64
	}{
		{0, 1},
		{0.25, 0},
		{0.5, -1},
		{0.75, 0},
		{1.5, -1},
	}
	for _, tt := range tests {
		if got := triangle(tt.phase); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("triangle(%v) = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestLPFConverges(t *testing.T) {
	state := 0.0
	var out float64
	for i := 0; i < 10000; i++ {
		out, state = lpf(1, 500, 1.0/SampleRate, state)
	}
	if math.Abs(out-1) > 1e-6 {
		t.Errorf("filter did not settle on a constant input: %v", out)
	}
}

func TestCutoff(t *testing.T) {
	if got := cutoff(0.5, 0.5); got != 300 {
		t.Errorf("cutoff at rest = %v, want 300", got)
	}
	if got := cutoff(1, 0.5); got != 1500 {
		t.Errorf("cutoff at full deviation = %v, want 1500", got)
	}
}

func TestSynthesizeBounded(t *testing.T) {
	p := NewProcessor(config.AudioConfig{BaseFreq: 220, Volume: 0.5}, 0.5, nil)
	p.UpdateLevel(0.9, 12)

	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	nonZero := false
	for block := 0; block < 20; block++ {
		p.ProcessAudio(out)
		for ch := range out {
			for _, s := range out[ch] {
				if math.IsNaN(float64(s)) || math.Abs(float64(s)) > 1 {
					t.Fatalf("sample out of range: %v", s)
				}
				if s != 0 {
					nonZero = true
				}
			}
		}
	}
	if !nonZero {
		t.Error("expected audible output")
	}
	if m := p.Meter(); m <= 0 || m > 1 {
		t.Errorf("meter = %v, want in (0,1]", m)
	}
}

func TestStopWithoutStart(t *testing.T) {
	p := NewProcessor(config.AudioConfig{}, 0.5, nil)
	if err := p.Stop(); err != ErrNotStarted {
		t.Errorf("Stop() = %v, want ErrNotStarted", err)
	}
	if p.baseFreq != config.DefaultBaseFreq || p.volume != config.DefaultVolume {
		t.Errorf("defaults not applied: %v %v", p.baseFreq, p.volume)
	}
}

func TestMeterConcurrentWithCallback(t *testing.T) {
	p := NewProcessor(config.AudioConfig{}, 0.5, nil)
	p.UpdateLevel(0.8, 4)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
		for i := 0; i < 50; i++ {
			p.ProcessAudio(out)
		}
	}()

	for i := 0; i < 200; i++ {
		if m := p.Meter(); m < 0 || m > 1 {
			t.Fatalf("meter = %v, want in [0,1]", m)
		}
		p.UpdateLevel(0.5+float64(i%5)*0.1, i%7)
	}
	wg.Wait()

	b := p.Bands()
	if b.Bass+b.Mid+b.High <= 0 {
		t.Errorf("expected non-zero bands after processing, got %+v", b)
	}
}
