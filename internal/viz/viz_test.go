package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pondsim/internal/pond"
)

func testPond(t *testing.T, mode pond.Mode) *pond.Pond {
	t.Helper()
	cfg := pond.DefaultConfig()
	cfg.Width, cfg.Height = 40, 40
	cfg.Anchor = pond.Coordinate{X: 10, Y: 10}
	cfg.FingerWidth = 3
	cfg.TouchedValue = 1
	cfg.Mode = mode
	return pond.MustNew(cfg)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestSpaceTogglesTouch(t *testing.T) {
	p := testPond(t, pond.InstantSet)
	m := NewModel(p, Options{FPS: 30})

	m = send(m, key(" "), TickMsg{})
	if p.State() != pond.Touching {
		t.Fatalf("expected touching after first space, got %v", p.State())
	}
	d, _ := p.Droplet(pond.Coordinate{X: 10, Y: 10})
	if d.Height != 1 {
		t.Errorf("expected epicenter at touched value, got %f", d.Height)
	}

	m = send(m, key(" "), TickMsg{})
	if p.State() != pond.Idle {
		t.Errorf("expected idle after second space, got %v", p.State())
	}
}

func TestEnterTapsRipple(t *testing.T) {
	p := testPond(t, pond.PropagatingRipple)
	m := NewModel(p, Options{})

	m = send(m, key("enter"), key("x"), TickMsg{})
	if p.ActiveRipples() != 1 {
		t.Errorf("expected one ripple, got %d", p.ActiveRipples())
	}
	if p.State() != pond.Idle {
		t.Errorf("expected idle after tap, got %v", p.State())
	}
	if len(m.meanHistory) != 1 {
		t.Errorf("expected one history sample, got %d", len(m.meanHistory))
	}
}

func TestPauseStopsTicks(t *testing.T) {
	p := testPond(t, pond.PropagatingRipple)
	m := NewModel(p, Options{})

	m = send(m, key("p"), TickMsg{}, TickMsg{})
	if p.Ticks() != 0 {
		t.Errorf("expected no ticks while paused, got %d", p.Ticks())
	}
	send(m, key("p"), TickMsg{})
	if p.Ticks() != 1 {
		t.Errorf("expected one tick after resume, got %d", p.Ticks())
	}
}

func TestViewRenders(t *testing.T) {
	p := testPond(t, pond.PropagatingRipple)
	m := send(NewModel(p, Options{}), key("enter"), TickMsg{}, TickMsg{})
	view := m.View()
	if !strings.Contains(view, "RIPPLE") || !strings.Contains(view, "Ripples") {
		t.Errorf("view missing header or stats:\n%s", view)
	}
}

func TestCanvasSample(t *testing.T) {
	px := make([]pond.Pixel, 4*4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x >= 2 {
				px[x+y*4].B = 1
			}
		}
	}
	c := NewCanvas(2, 1)
	c.Sample(px, 4, 4)
	if c.Level(0, 0) != 0 || c.Level(1, 0) != 1 || c.Level(1, 1) != 1 {
		t.Errorf("unexpected samples %v", c.levels)
	}
	if got := c.String(); got != " @\n" {
		t.Errorf("unexpected ascii %q", got)
	}
	if out := c.Render(ThemeOcean); strings.Count(out, string(upperHalf)) != 2 {
		t.Errorf("expected 2 half blocks, got %q", out)
	}
}

func TestThemes(t *testing.T) {
	if got := ThemeOcean.Water(1); got != "#0000ff" {
		t.Errorf("expected pure blue surface, got %s", got)
	}
	if got := ThemeOcean.Water(0); got != "#000000" {
		t.Errorf("expected black depth, got %s", got)
	}
	if NextTheme("sunset").Name != "ocean" {
		t.Error("expected theme cycle to wrap")
	}
	if GetTheme("missing").Name != "ocean" {
		t.Error("expected fallback to ocean")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
