package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pondsim/internal/export"
	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

const (
	defaultCols     = 64
	defaultRows     = 24
	sidePanelWidth  = 52
	historyCapacity = 600
)

type TickMsg time.Time

// Options configures the live host.
type Options struct {
	FPS     int
	Probe   pond.Coordinate
	GIFPath string
	GIFStep int
	Logger  *slog.Logger
}

// Model owns the pond for the lifetime of the Bubble Tea program.
type Model struct {
	pond        *pond.Pond
	buf         []pond.Pixel
	width       int
	height      int
	canvas      *Canvas
	opts        Options
	interval    time.Duration
	pending     []pond.Event
	touching    bool
	running     bool
	meanHistory []float64
	probeHist   []float64
	recording   bool
	recorder    *export.GIFRecorder
	status      string
	showHelp    bool
	theme       Theme
}

func NewModel(p *pond.Pond, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "pond.gif"
	}
	if opts.GIFStep <= 0 {
		opts.GIFStep = 4
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	w, h := p.Dimensions()
	return Model{
		pond:        p,
		buf:         make([]pond.Pixel, w*h),
		width:       w,
		height:      h,
		canvas:      NewCanvas(defaultCols, defaultRows),
		opts:        opts,
		interval:    time.Second / time.Duration(opts.FPS),
		running:     true,
		meanHistory: make([]float64, 0, historyCapacity),
		probeHist:   make([]float64, 0, historyCapacity),
		theme:       CurrentTheme,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update queues input events and advances the pond on every TickMsg.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ", "space":
			if m.touching {
				m.pending = append(m.pending, pond.Release())
			} else {
				m.pending = append(m.pending, pond.Press())
			}
			m.touching = !m.touching
		case "enter":
			m.pending = append(m.pending, pond.Press(), pond.Release())
			m.touching = false
		case "p":
			m.running = !m.running
		case "r":
			m.pond.Reset()
			m.pending = m.pending[:0]
			m.touching = false
			m.meanHistory = m.meanHistory[:0]
			m.probeHist = m.probeHist[:0]
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.recorder = export.NewGIFRecorder(m.width, m.height, m.opts.GIFStep, 100/m.opts.FPS)
				m.status = "recording"
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		case "up":
			m.pending = append(m.pending, pond.ButtonEvent{Button: pond.ButtonUp, State: pond.Pressed})
		case "down":
			m.pending = append(m.pending, pond.ButtonEvent{Button: pond.ButtonDown, State: pond.Pressed})
		case "left":
			m.pending = append(m.pending, pond.ButtonEvent{Button: pond.ButtonLeft, State: pond.Pressed})
		case "right":
			m.pending = append(m.pending, pond.ButtonEvent{Button: pond.ButtonRight, State: pond.Pressed})
		case "esc", "backspace":
			m.pending = append(m.pending, pond.ButtonEvent{Button: pond.ButtonBack, State: pond.Pressed})
		default:
			m.pending = append(m.pending, pond.UnknownEvent{Kind: "key:" + msg.String()})
		}
	case tea.WindowSizeMsg:
		cols := msg.Width - sidePanelWidth - 4
		rows := msg.Height - 2
		if cols > 8 && rows > 4 {
			m.canvas.Resize(cols, rows)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step delivers the queued events, renders and records one frame.
func (m *Model) step() {
	m.pond.Tick(m.pending)
	m.pending = m.pending[:0]
	m.pond.Render(m.buf)
	m.canvas.Sample(m.buf, m.width, m.height)

	frame := sim.Frame{Tick: int(m.pond.Ticks()), Width: m.width, Height: m.height, Pixels: m.buf}
	m.meanHistory = appendCapped(m.meanHistory, frame.Mean())
	m.probeHist = appendCapped(m.probeHist, frame.Level(m.opts.Probe))

	if m.recording {
		m.recorder.OnFrame(frame)
	}
}

func (m *Model) stopRecording() {
	if !m.recording {
		return
	}
	m.recording = false
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.status = "gif: " + err.Error()
		m.opts.Logger.Error("saving gif", "path", m.opts.GIFPath, "err", err)
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), m.opts.GIFPath)
	m.opts.Logger.Info("saved gif", "path", m.opts.GIFPath, "frames", m.recorder.Len())
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// View renders the canvas and the side panel.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme))

	var s strings.Builder
	s.WriteString(headerStyle.Render("POND · "+strings.ToUpper(m.pond.Config().Mode.String())) + "\n")

	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render("● REC") + "  ")
	case !m.running:
		s.WriteString(StatusPaused.Render("PAUSED") + "  ")
	default:
		s.WriteString(StatusRunning.Render("RUNNING") + "  ")
	}
	if m.pond.State() == pond.Touching {
		s.WriteString(StatusTouching.Render("TOUCHING"))
	} else {
		s.WriteString(valueStyle.Render("idle"))
	}
	s.WriteString("\n")

	if len(m.meanHistory) > 1 {
		chart := asciigraph.Plot(m.meanHistory, asciigraph.Height(6), asciigraph.Width(36), asciigraph.Caption("mean level"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	mean, probe := 0.0, 0.0
	if n := len(m.meanHistory); n > 0 {
		mean, probe = m.meanHistory[n-1], m.probeHist[n-1]
	}
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.pond.Ticks())) + "\n")
	s.WriteString(labelStyle.Render("Ripples") + valueStyle.Render(fmt.Sprintf("%d", m.pond.ActiveRipples())) + "\n")
	s.WriteString(labelStyle.Render("Mean") + ProgressBar(mean, 20) + valueStyle.Render(fmt.Sprintf(" %.3f", mean)) + "\n")
	s.WriteString(labelStyle.Render("Probe") + SparklineChart(m.probeHist, 20) + valueStyle.Render(fmt.Sprintf(" %.3f", probe)) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n")
	if m.status != "" {
		s.WriteString("\n" + labelStyle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Touch ⏎:Tap P:Pause R:Reset\nT:Theme G:Record ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Press / release          ║
║  Enter    - Tap                      ║
║  P        - Pause/Resume             ║
║  R        - Reset pond               ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live host on the alternate screen and blocks until quit.
func Run(p *pond.Pond, opts Options) error {
	_, err := tea.NewProgram(NewModel(p, opts), tea.WithAltScreen()).Run()
	return err
}
