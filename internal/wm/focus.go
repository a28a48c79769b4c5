package wm

import "github.com/gowm/gowm/internal/config"

// Focus sets c as the selected client on its monitor, unfocusing
// whatever was selected before (on any monitor) and granting input
// focus to c — or, if c is nil, falls back to the most recently used
// visible client on the selected monitor, per dwm's focus(). Passing a
// client on a non-selected monitor switches the selected monitor too.
func (w *World) Focus(c *Client) {
	if c == nil || !c.visible(c.Mon.Tags()) {
		c = nil
		for t := w.Selected.stackHead; t != nil; t = t.snext {
			if t.visible(w.Selected.Tags()) {
				c = t
				break
			}
		}
	}
	if w.Selected.Selected != nil && w.Selected.Selected != c {
		w.unfocus(w.Selected.Selected, false)
	}
	if c != nil {
		if c.Mon != w.Selected {
			w.Selected = c.Mon
		}
		if c.IsUrgent {
			w.SetUrgent(c, false)
		}
		w.Selected.DetachStack(c)
		w.Selected.AttachStack(c)
		w.Srv.GrabButtons(c.Window, true)
		w.Srv.SetBorderColor(c.Window, w.Cfg.Schemes[config.SchemeSelected])
		w.setFocus(c)
	} else {
		w.Srv.SetInputFocus(0)
		w.Srv.RevertFocusToRoot()
	}
	w.Selected.Selected = c
	w.drawBars()
	w.updateActiveWindow()
}

// unfocus repaints c with the normal border and, if revert is set,
// reverts server-side input focus to the root window. Focus passes
// revert=false when it's about to grant focus elsewhere immediately
// after.
func (w *World) unfocus(c *Client, revert bool) {
	if c == nil {
		return
	}
	w.Srv.GrabButtons(c.Window, false)
	w.Srv.SetBorderColor(c.Window, w.Cfg.Schemes[config.SchemeNormal])
	if revert {
		w.Srv.SetInputFocus(0)
		w.Srv.RevertFocusToRoot()
	}
}

// setFocus grants server-side input focus to c and, if it advertises
// WM_TAKE_FOCUS among WM_PROTOCOLS, sends that ClientMessage too —
// dwm's setfocus().
func (w *World) setFocus(c *Client) {
	if !c.NeverFocus {
		w.Srv.SetInputFocus(c.Window)
		w.Srv.SetNetActiveWindow(c.Window, false)
	}
	for _, p := range w.Srv.WMProtocols(c.Window) {
		if p == "WM_TAKE_FOCUS" {
			w.Srv.SendWMProtocol(c.Window, "WM_TAKE_FOCUS")
			break
		}
	}
}

// updateActiveWindow clears _NET_ACTIVE_WINDOW when the selected
// monitor has no selected client; setFocus sets it when a client
// gains focus.
func (w *World) updateActiveWindow() {
	if w.Selected == nil || w.Selected.Selected == nil {
		w.Srv.SetNetActiveWindow(0, true)
	}
}

// SetUrgent toggles a client's urgency flag and, when clearing it,
// asks the server to drop WM_HINTS' urgency bit too.
func (w *World) SetUrgent(c *Client, urgent bool) {
	c.IsUrgent = urgent
	if !urgent {
		w.Srv.ClearUrgent(c.Window)
	}
}

// FocusStack moves selection by dir (+1 next, -1 previous) through the
// selected monitor's visible clients in arrangement order, wrapping
// around — dwm's focusstack().
func (w *World) FocusStack(dir int) {
	m := w.Selected
	if m.Selected == nil || (m.Selected.IsFullscreen && w.Cfg.LockFullscreen) {
		return
	}
	clients := m.Clients()
	if len(clients) == 0 {
		return
	}
	idx := -1
	for i, c := range clients {
		if c == m.Selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	n := len(clients)
	for i := 1; i <= n; i++ {
		var j int
		if dir > 0 {
			j = (idx + i) % n
		} else {
			j = ((idx-i)%n + n) % n
		}
		if clients[j].visible(m.Tags()) {
			w.Focus(clients[j])
			w.Restack(m)
			return
		}
	}
}

// Restack re-raises/re-stacks a single monitor, matching dwm's
// restack() wrapper (Monitor.Restack does the real work; this is the
// World-level entry point action handlers call).
func (w *World) Restack(m *Monitor) {
	m.Restack(w.Srv)
}
