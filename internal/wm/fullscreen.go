package wm

import "github.com/gowm/gowm/internal/geom"

// SetFullscreen toggles c's fullscreen state, expanding it to fill
// its monitor's screen rectangle (border and gap stripped) and
// restoring its prior floating geometry on exit — dwm's
// setfullscreen(), spec invariant I3 / scenario S4.
func (w *World) SetFullscreen(c *Client, fullscreen bool) {
	if fullscreen && !c.IsFullscreen {
		c.IsFullscreen = true
		c.PriorFloatingState = c.IsFloating
		c.SavedBorderW = c.BorderW
		c.BorderW = 0
		c.IsFloating = true
		w.resizeClient(c, c.Mon.ScreenRect)
		w.Srv.RaiseWindow(c.Window)
		w.Srv.SetNetWMState(c.Window, true)
		return
	}
	if !fullscreen && c.IsFullscreen {
		c.IsFullscreen = false
		c.IsFloating = c.PriorFloatingState
		c.BorderW = c.SavedBorderW
		c.Geometry = c.Saved
		w.resizeClient(c, geom.Rect{X: c.Geometry.X, Y: c.Geometry.Y, W: c.Geometry.W, H: c.Geometry.H})
		w.Srv.SetNetWMState(c.Window, false)
		w.Arrange(c.Mon)
	}
}
