package wm

import "github.com/gowm/gowm/internal/config"

// BarRenderer is the status-bar collaborator (spec §4.5's opaque
// renderer, bound to internal/bar.Renderer for a real build). World
// tells it when a monitor's bar content changed, and asks it to turn
// an x coordinate of a click on the bar back into the region/argument
// buttonpress needs — the renderer is the only component that knows
// each cell's pixel width.
type BarRenderer interface {
	Draw(m *Monitor, status string)
	HitTest(m *Monitor, x int) (config.ClickRegion, config.Arg)
}

// drawBar repaints the selected monitor's bar; drawBars repaints all
// of them. Both are no-ops when no Bar is wired (headless tests).
func (w *World) drawBar() {
	if w.Bar == nil || w.Selected == nil {
		return
	}
	w.Bar.Draw(w.Selected, w.StatusText)
}

func (w *World) drawBars() {
	if w.Bar == nil {
		return
	}
	for _, m := range w.Monitors() {
		w.Bar.Draw(m, w.StatusText)
	}
}
