package gui

import (
	"errors"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/pondsim/internal/audio"
	"github.com/san-kum/pondsim/internal/pond"
)

var ErrInvalidScale = errors.New("gui: scale must be positive")

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(120, 160, 255, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(170, 170, 190, 255)
	ColTextDim = rl.NewColor(90, 90, 110, 255)
	ColPanel   = rl.NewColor(0, 0, 0, 150)
)

const maxHistory = 240

type Options struct {
	Title  string
	Scale  int
	FPS    int
	HUD    bool
	Audio  *audio.Processor
	Logger *slog.Logger
}

// App hosts a pond in a raylib window. One texel per cell, stretched by
// Scale.
type App struct {
	Pond    *pond.Pond
	Opts    Options
	Width   int
	Height  int
	Running bool

	pixels   []pond.Pixel
	rgba     []color.RGBA
	texture  rl.Texture2D
	touching bool
	mean     float64
	History  []float64
	logger   *slog.Logger
}

func initWindow(title string, w, h, fps int) {
	rl.InitWindow(int32(w), int32(h), title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(p *pond.Pond, opts Options) (*App, error) {
	if opts.Scale <= 0 {
		return nil, ErrInvalidScale
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "pondsim"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	w, h := p.Dimensions()
	return &App{
		Pond:    p,
		Opts:    opts,
		Width:   w,
		Height:  h,
		Running: true,
		pixels:  make([]pond.Pixel, w*h),
		rgba:    make([]color.RGBA, w*h),
		History: make([]float64, 0, maxHistory),
		logger:  logger,
	}, nil
}

// Run opens the window and blocks until it is closed or q is pressed.
func Run(p *pond.Pond, opts Options) error {
	app, err := NewApp(p, opts)
	if err != nil {
		return err
	}

	initWindow(app.Opts.Title, app.Width*app.Opts.Scale, app.Height*app.Opts.Scale, app.Opts.FPS)
	defer rl.CloseWindow()

	img := rl.GenImageColor(app.Width, app.Height, rl.Black)
	app.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(app.texture)

	app.logger.Info("gui started", "width", app.Width, "height", app.Height, "scale", app.Opts.Scale)
	app.RunLoop()
	app.logger.Info("gui closed", "ticks", p.Ticks(), "spawned", p.Spawned())
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func pollInput() Input {
	in := Input{
		Action:      rl.IsMouseButtonDown(rl.MouseButtonLeft) || rl.IsKeyDown(rl.KeySpace),
		BackPressed: rl.IsKeyPressed(rl.KeyEscape),
	}
	for i, k := range []int32{rl.KeyLeft, rl.KeyRight, rl.KeyUp, rl.KeyDown} {
		in.Dirs[i] = dirKey{Pressed: rl.IsKeyPressed(k), Released: rl.IsKeyReleased(k)}
	}
	for c := rl.GetCharPressed(); c > 0; c = rl.GetCharPressed() {
		switch c {
		case ' ', 'q', 'p', 'r', 'h':
			continue
		}
		in.Chars = append(in.Chars, rune(c))
	}
	return in
}

// Update handles host keys, then ticks the pond once. It reports false when
// the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.Opts.HUD = !a.Opts.HUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Pond.Reset()
		a.touching = false
		a.History = a.History[:0]
		a.logger.Debug("pond reset")
	}

	events, touching := translate(pollInput(), a.touching)
	a.touching = touching
	if !a.Running {
		return true
	}

	a.Pond.Tick(events)
	a.Pond.Render(a.pixels)
	toRGBA(a.rgba, a.pixels)
	rl.UpdateTexture(a.texture, a.rgba)

	a.mean = meanLevel(a.pixels)
	a.History = pushHistory(a.History, a.mean, maxHistory)
	if a.Opts.Audio != nil {
		a.Opts.Audio.UpdateLevel(a.mean, a.Pond.ActiveRipples())
	}
	return true
}

func meanLevel(px []pond.Pixel) float64 {
	if len(px) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range px {
		sum += float64(p.B)
	}
	return sum / float64(len(px))
}

func (a *App) status() string {
	if !a.Running {
		return "PAUSED"
	}
	return a.Pond.State().String()
}
