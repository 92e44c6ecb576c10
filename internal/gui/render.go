package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.DrawTextureEx(a.texture, rl.NewVector2(0, 0), 0, float32(a.Opts.Scale), rl.White)
	if a.Opts.HUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w := int32(a.Width * a.Opts.Scale)
	h := int32(a.Height * a.Opts.Scale)

	rl.DrawRectangle(0, 0, w, 28, ColPanel)
	rl.DrawText("pondsim", 10, 6, 16, ColSelect)
	rl.DrawText(fmt.Sprintf("tick %d  ripples %d  mean %.3f", a.Pond.Ticks(), a.Pond.ActiveRipples(), a.mean), 100, 8, 14, ColText)

	col := ColText
	if !a.Running {
		col = ColTextDim
	}
	rl.DrawText(strings.ToUpper(a.status()), w-110, 8, 14, col)

	rl.DrawRectangle(0, h-24, w, 24, ColPanel)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 10, h-18, 12, ColTextDim)
	rl.DrawText("[SPACE/CLICK] TOUCH  [P] PAUSE  [R] RESET  [H] HUD  [Q] QUIT", 80, h-18, 12, ColTextDim)

	a.DrawTelemetry(10, 36, min(w-20, 240), 40)

	if a.Opts.Audio != nil && a.Opts.Audio.Active {
		bars := int(a.Opts.Audio.Meter() * 20)
		if bars > 20 {
			bars = 20
		}
		rl.DrawText(fmt.Sprintf("AUDIO [%-20s]", strings.Repeat("|", bars)), 10, 82, 12, ColAccent)
	}
}

// DrawTelemetry plots the mean-level history as a line strip.
func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.History) < 2 || width <= 0 {
		return
	}
	lo, hi := a.History[0], a.History[0]
	for _, v := range a.History {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1e-6
	}

	points := make([]rl.Vector2, len(a.History))
	for i, v := range a.History {
		px := float32(x) + float32(i)/float32(maxHistory)*float32(width)
		py := float32(y+height) - float32((v-lo)/(hi-lo))*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawRectangle(x-4, y-4, width+8, height+8, ColPanel)
	rl.DrawLineStrip(points, ColAccent)
}
