package wm

import "github.com/gowm/gowm/internal/geom"

// newMonitor builds a Monitor with the scalar defaults from cfg and
// the given screen rectangle, then computes BarY/WindowRect via
// updateBarPos.
func (w *World) newMonitor(rect geom.Rect, index int) *Monitor {
	m := &Monitor{
		Index:          index,
		ScreenRect:     rect,
		WindowRect:     rect,
		ShowBar:        w.Cfg.ShowBar,
		TopBar:         w.Cfg.TopBar,
		MasterFraction: w.Cfg.MasterFactor,
		MasterCount:    w.Cfg.MasterCount,
		Tagset:         [2]uint32{1, 1},
	}
	if len(w.Cfg.Layouts) > 0 {
		m.Layouts[0] = &w.Cfg.Layouts[0]
		m.Layouts[1] = &w.Cfg.Layouts[0]
		m.LayoutSymbol = w.Cfg.Layouts[0].Symbol
	}
	w.updateBarPos(m)
	return m
}

// appendMonitor links m onto the tail of the monitor list.
func (w *World) appendMonitor(m *Monitor) {
	if w.monitorsHead == nil {
		w.monitorsHead = m
		return
	}
	last := w.monitorsHead
	for last.nextMon != nil {
		last = last.nextMon
	}
	last.nextMon = m
}

// removeMonitor unlinks m from the monitor list.
func (w *World) removeMonitor(m *Monitor) {
	if w.monitorsHead == m {
		w.monitorsHead = m.nextMon
		return
	}
	for p := w.monitorsHead; p != nil; p = p.nextMon {
		if p.nextMon == m {
			p.nextMon = m.nextMon
			return
		}
	}
}

// updateBarPos recomputes bar_y/window_rect from show_bar/top_bar,
// per spec invariant P8: window_rect.h + bar_h == screen_rect.h when
// the bar is shown, window_rect == screen_rect when it's hidden.
func (w *World) updateBarPos(m *Monitor) {
	m.WindowRect = m.ScreenRect
	if !m.ShowBar {
		m.BarY = -w.BarHeight
		return
	}
	m.WindowRect.H -= w.BarHeight
	if m.TopBar {
		m.BarY = m.ScreenRect.Y
		m.WindowRect.Y = m.ScreenRect.Y + w.BarHeight
	} else {
		m.BarY = m.ScreenRect.Y + m.ScreenRect.H - w.BarHeight
		m.WindowRect.Y = m.ScreenRect.Y
	}
}

// UpdateGeom reconciles the monitor list against detected screens,
// per spec §4.3 "Monitor topology updates". It covers both the
// Xinerama path (screens queried via Server.PhysicalScreens) and the
// single-monitor fallback; the caller (cmd/gowm's startup, or a
// ConfigureNotify-on-root handler) is responsible for re-arranging and
// refocusing afterward.
func (w *World) UpdateGeom() (dirty bool) {
	screens, err := w.Srv.PhysicalScreens()
	if err != nil || len(screens) == 0 {
		return w.updateGeomSingleMonitor()
	}

	unique := dedupeRects(screens)
	monitors := w.Monitors()
	numMons := len(monitors)
	numScreens := len(unique)

	if numMons <= numScreens {
		for i := 0; i < numScreens-numMons; i++ {
			w.appendMonitor(w.newMonitor(geom.Rect{}, 0))
		}
		monitors = w.Monitors()
		for i := 0; i < numScreens; i++ {
			m := monitors[i]
			if i >= numMons || m.ScreenRect != unique[i] {
				dirty = true
				m.Index = i
				m.ScreenRect = unique[i]
				w.updateBarPos(m)
			}
		}
	} else {
		for i := numScreens; i < numMons; i++ {
			doomed := monitors[i]
			first := w.monitorsHead
			for _, c := range doomed.Clients() {
				dirty = true
				doomed.Detach(c)
				doomed.DetachStack(c)
				c.Mon = first
				first.Attach(c)
				first.AttachStack(c)
			}
			if w.Selected == doomed {
				w.Selected = first
			}
			w.removeMonitor(doomed)
		}
	}
	if dirty {
		w.Selected = w.monitorAtPointer()
	}
	return dirty
}

func (w *World) updateGeomSingleMonitor() bool {
	if w.monitorsHead == nil {
		w.appendMonitor(w.newMonitor(w.Srv.RootGeometry(), 0))
		return true
	}
	m := w.monitorsHead
	root := w.Srv.RootGeometry()
	if m.ScreenRect.W != root.W || m.ScreenRect.H != root.H {
		m.ScreenRect.W, m.ScreenRect.H = root.W, root.H
		w.updateBarPos(m)
		return true
	}
	return false
}

func (w *World) monitorAtPointer() *Monitor {
	rect := w.Srv.PointerScreen()
	for _, m := range w.Monitors() {
		if m.ScreenRect == rect {
			return m
		}
	}
	if w.monitorsHead != nil {
		return w.monitorsHead
	}
	return nil
}

func dedupeRects(rects []geom.Rect) []geom.Rect {
	var out []geom.Rect
	for _, r := range rects {
		dup := false
		for _, u := range out {
			if u == r {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}
