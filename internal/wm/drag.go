package wm

import "github.com/gowm/gowm/internal/geom"

// MoveMouse lets the user drag the selected client with the pointer,
// snapping to the selected monitor's window-area edges within
// cfg.SnapPixels and auto-floating a tiled client the moment the drag
// moves it more than the snap distance — dwm's movemouse(). Fullscreen
// clients cannot be dragged.
func (w *World) MoveMouse() {
	c := w.Selected.Selected
	if c == nil || c.IsFullscreen {
		return
	}
	w.Restack(c.Mon)
	ocx, ocy := c.Geometry.X, c.Geometry.Y

	if !w.Srv.GrabPointerForDrag(CursorMove) {
		return
	}
	x0, y0 := w.Srv.QueryPointer()

	w.Srv.PumpDrag(func(x, y int) {
		m := c.Mon
		wr := m.WindowRect
		nx, ny := ocx+(x-x0), ocy+(y-y0)

		if abs(wr.X-nx) < w.Cfg.SnapPixels {
			nx = wr.X
		} else if abs((wr.X+wr.W)-(nx+c.Geometry.W+2*c.BorderW)) < w.Cfg.SnapPixels {
			nx = wr.X + wr.W - c.Geometry.W - 2*c.BorderW
		}
		if abs(wr.Y-ny) < w.Cfg.SnapPixels {
			ny = wr.Y
		} else if abs((wr.Y+wr.H)-(ny+c.Geometry.H+2*c.BorderW)) < w.Cfg.SnapPixels {
			ny = wr.Y + wr.H - c.Geometry.H - 2*c.BorderW
		}

		tiled := !c.IsFloating && m.CurrentLayout() != nil && m.CurrentLayout().Arrange != nil
		if tiled && (abs(nx-c.Geometry.X) > w.Cfg.SnapPixels || abs(ny-c.Geometry.Y) > w.Cfg.SnapPixels) {
			w.ToggleFloating()
		}
		if !tiled || c.IsFloating {
			w.resize(c, geom.Rect{X: nx, Y: ny, W: c.Geometry.W, H: c.Geometry.H}, true)
		}
	})
	w.Srv.UngrabPointer()

	if target := w.monitorForRect(c.Geometry); target != nil && target != c.Mon {
		w.sendToMonitor(c, target)
		w.Selected = target
		w.Focus(nil)
	}
}

// ResizeMouse lets the user drag the selected client's bottom-right
// corner with the pointer, auto-floating a tiled client past the snap
// distance exactly as MoveMouse does — dwm's resizemouse().
func (w *World) ResizeMouse() {
	c := w.Selected.Selected
	if c == nil || c.IsFullscreen {
		return
	}
	w.Restack(c.Mon)
	ocx, ocy := c.Geometry.X, c.Geometry.Y

	if !w.Srv.GrabPointerForDrag(CursorResize) {
		return
	}
	w.Srv.WarpPointerToWindowCorner(c.Window, c.Geometry.W+c.BorderW-1, c.Geometry.H+c.BorderW-1)

	w.Srv.PumpDrag(func(x, y int) {
		m := c.Mon
		nw := max1(x-ocx-2*c.BorderW+1)
		nh := max1(y-ocy-2*c.BorderW+1)

		tiled := !c.IsFloating && m.CurrentLayout() != nil && m.CurrentLayout().Arrange != nil
		if tiled && (abs(nw-c.Geometry.W) > w.Cfg.SnapPixels || abs(nh-c.Geometry.H) > w.Cfg.SnapPixels) {
			w.ToggleFloating()
		}
		if !tiled || c.IsFloating {
			w.resize(c, geom.Rect{X: ocx, Y: ocy, W: nw, H: nh}, true)
		}
	})
	w.Srv.WarpPointerToWindowCorner(c.Window, c.Geometry.W+c.BorderW-1, c.Geometry.H+c.BorderW-1)
	w.Srv.UngrabPointer()

	if target := w.monitorForRect(c.Geometry); target != nil && target != c.Mon {
		w.sendToMonitor(c, target)
		w.Selected = target
		w.Focus(nil)
	}
}

// monitorForRect returns the monitor whose screen rectangle overlaps r
// the most, matching dwm's recttomon() (the fallback used when r
// doesn't intersect any monitor is the selected monitor, same as
// dwm's default-to-selmon initial value).
func (w *World) monitorForRect(r geom.Rect) *Monitor {
	best := w.Selected
	bestArea := 0
	for _, m := range w.Monitors() {
		if a := intersectArea(r, m.ScreenRect); a > bestArea {
			bestArea = a
			best = m
		}
	}
	return best
}

func intersectArea(a, b geom.Rect) int {
	x0, y0 := max2(a.X, b.X), max2(a.Y, b.Y)
	x1, y1 := min2(a.X+a.W, b.X+b.W), min2(a.Y+a.H, b.Y+b.H)
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}
