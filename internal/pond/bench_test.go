package pond

import "testing"

func BenchmarkRender(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 256, 256
	p := MustNew(cfg)
	for i := 0; i < 8; i++ {
		p.Tick([]Event{Press()})
	}
	buf := make([]Pixel, cfg.Width*cfg.Height)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Render(buf)
	}
}

func BenchmarkTick(b *testing.B) {
	p := MustNew(DefaultConfig())
	events := []Event{Press(), Release()}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Tick(events)
	}
}
