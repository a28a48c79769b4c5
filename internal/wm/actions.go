package wm

import (
	"github.com/gowm/gowm/internal/config"
	"github.com/gowm/gowm/internal/layout"
)

// View switches the selected monitor's visible tagset to mask, keeping
// the tagset it replaces in the other slot — dwm's view(). Viewing the
// tagset already showing is a no-op; mask == 0 flips back to the
// previously viewed tagset (the MODKEY+Tab binding). mask is ANDed
// down to the configured tag bits here, so the "view all" binding's
// ^uint32(0) selects every tag.
func (w *World) View(mask uint32) {
	m := w.Selected
	mask &= tagMaskAll(w.Cfg)
	if mask == m.Tagset[m.SelTagsetIndex] {
		return
	}
	m.SelTagsetIndex ^= 1
	if mask != 0 {
		m.Tagset[m.SelTagsetIndex] = mask
	}
	w.Focus(nil)
	w.Arrange(m)
}

// ToggleView XORs mask into the selected monitor's visible tagset,
// provided the result isn't empty — dwm's toggleview().
func (w *World) ToggleView(mask uint32) {
	m := w.Selected
	newTagset := m.Tagset[m.SelTagsetIndex] ^ (mask & tagMaskAll(w.Cfg))
	if newTagset == 0 {
		return
	}
	m.Tagset[m.SelTagsetIndex] = newTagset
	w.Focus(nil)
	w.Arrange(m)
}

// Tag moves the selected client to mask — dwm's tag().
func (w *World) Tag(mask uint32) {
	c := w.Selected.Selected
	mask &= tagMaskAll(w.Cfg)
	if c == nil || mask == 0 {
		return
	}
	c.TagMask = mask
	w.Focus(nil)
	w.Arrange(w.Selected)
}

// ToggleTag XORs mask into the selected client's tags, provided the
// result isn't empty — dwm's toggletag().
func (w *World) ToggleTag(mask uint32) {
	c := w.Selected.Selected
	if c == nil {
		return
	}
	newTags := c.TagMask ^ (mask & tagMaskAll(w.Cfg))
	if newTags == 0 {
		return
	}
	c.TagMask = newTags
	w.Focus(nil)
	w.Arrange(w.Selected)
}

// FocusMon switches the selected monitor to the one whose Index
// equals index, refocusing and warping the pointer there — dwm's
// focusmon()/dirtomon().
func (w *World) FocusMon(index int) {
	monitors := w.Monitors()
	if len(monitors) < 2 {
		return
	}
	target := w.monitorByIndex(index)
	if target == nil || target == w.Selected {
		return
	}
	w.unfocus(w.Selected.Selected, false)
	w.Selected = target
	w.Focus(nil)
	if sel := w.Selected.Selected; sel != nil {
		w.warpToClient(sel)
	} else {
		w.warpToMonitorCenter(w.Selected)
	}
}

// TagMon moves the selected client to the monitor whose Index equals
// index — dwm's tagmon()/sendmon().
func (w *World) TagMon(index int) {
	monitors := w.Monitors()
	c := w.Selected.Selected
	if c == nil || len(monitors) < 2 {
		return
	}
	target := w.monitorByIndex(index)
	if target == nil {
		return
	}
	w.sendToMonitor(c, target)
}

// warpToMonitorCenter moves the pointer to the center of m's window
// area — the no-selected-client branch of dwm's warp().
func (w *World) warpToMonitorCenter(m *Monitor) {
	w.Srv.WarpPointer(m.WindowRect.X+m.WindowRect.W/2, m.WindowRect.Y+m.WindowRect.H/2)
}

// warpToClient moves the pointer onto c, unless the pointer is
// already over it or over the bar — dwm's warp().
func (w *World) warpToClient(c *Client) {
	x, y := w.Srv.QueryPointer()
	overClient := x > c.Geometry.X-c.BorderW && y > c.Geometry.Y-c.BorderW &&
		x < c.Geometry.X+c.Geometry.W+c.BorderW*2 && y < c.Geometry.Y+c.Geometry.H+c.BorderW*2
	overBar := y > c.Mon.BarY && y < c.Mon.BarY+w.BarHeight
	if overClient || overBar || (c.Mon.TopBar && y == 0) {
		return
	}
	w.Srv.WarpPointer(c.Geometry.X+c.Geometry.W/2, c.Geometry.Y+c.Geometry.H/2)
}

func (w *World) monitorByIndex(index int) *Monitor {
	var last *Monitor
	for _, m := range w.Monitors() {
		last = m
		if m.Index == index {
			return m
		}
	}
	return last
}

// sendToMonitor detaches c from its current monitor and reattaches it
// to target with target's current tagset — dwm's sendmon().
func (w *World) sendToMonitor(c *Client, target *Monitor) {
	if c.Mon == target {
		return
	}
	w.unfocus(c, true)
	c.Mon.Detach(c)
	c.Mon.DetachStack(c)
	c.Mon = target
	c.TagMask = target.Tags()
	target.Attach(c)
	target.AttachStack(c)
	w.Focus(nil)
	w.Arrange(nil)
}

// Zoom promotes the selected client to the master slot, or if it's
// already master, promotes the next tiled client instead — dwm's
// zoom()/pop().
func (w *World) Zoom() {
	m := w.Selected
	c := m.Selected
	if m.CurrentLayout() == nil || m.CurrentLayout().Arrange == nil {
		return
	}
	if c != nil && c.IsFloating {
		return
	}
	tiled := m.tiledVisible()
	if len(tiled) == 0 {
		return
	}
	if c == tiled[0] {
		if len(tiled) < 2 {
			return
		}
		c = tiled[1]
	}
	if c == nil {
		return
	}
	m.Detach(c)
	m.Attach(c)
	w.Focus(c)
	w.Arrange(m)
}

// KillClient asks the selected client to close via WM_DELETE_WINDOW,
// or force-kills it via the server if it doesn't support that
// protocol — dwm's killclient().
func (w *World) KillClient() {
	c := w.Selected.Selected
	if c == nil {
		return
	}
	if ok := w.sendProtocol(c, "WM_DELETE_WINDOW"); !ok {
		w.Srv.GrabServer()
		w.Srv.KillClient(c.Window)
		w.Srv.Sync()
		w.Srv.UngrabServer()
	}
}

func (w *World) sendProtocol(c *Client, proto string) bool {
	for _, p := range w.Srv.WMProtocols(c.Window) {
		if p == proto {
			w.Srv.SendWMProtocol(c.Window, proto)
			return true
		}
	}
	return false
}

// SetLayout installs l as the selected monitor's active layout,
// switching to the other slot of the two-slot layout history unless l
// is already the selected slot's layout — dwm's setlayout(). A nil l re-applies whichever
// layout is already in the other slot (the "toggle to last layout"
// binding).
func (w *World) SetLayout(l *layout.Layout) {
	m := w.Selected
	if l == nil || l != m.Layouts[m.SelLayoutIndex] {
		m.SelLayoutIndex ^= 1
	}
	if l != nil {
		m.Layouts[m.SelLayoutIndex] = l
	}
	if m.Layouts[m.SelLayoutIndex] != nil {
		m.LayoutSymbol = m.Layouts[m.SelLayoutIndex].Symbol
	}
	if m.Selected != nil {
		w.Arrange(m)
	} else {
		w.drawBar()
	}
}

// SetMasterFactor nudges (or, for values >= 1.0, absolutely sets) the
// selected monitor's master/stack split fraction within [0.1, 0.9] —
// dwm's setmfact().
func (w *World) SetMasterFactor(arg config.Arg) {
	m := w.Selected
	if m.CurrentLayout() == nil || m.CurrentLayout().Arrange == nil {
		return
	}
	f := arg.Float
	if f < 1.0 {
		f += m.MasterFraction
	} else {
		f -= 1.0
	}
	if f < 0.1 || f > 0.9 {
		return
	}
	m.MasterFraction = f
	w.Arrange(m)
}

// ToggleFloating flips the selected client's floating state, refusing
// fullscreen clients — dwm's togglefloating().
func (w *World) ToggleFloating() {
	c := w.Selected.Selected
	if c == nil || c.IsFullscreen {
		return
	}
	c.IsFloating = !c.IsFloating || c.IsFixed
	if c.IsFloating {
		w.resize(c, c.Geometry, false)
	}
	w.Arrange(c.Mon)
}

// ToggleBar flips the selected monitor's bar visibility and
// re-arranges it — dwm's togglebar().
func (w *World) ToggleBar() {
	m := w.Selected
	m.ShowBar = !m.ShowBar
	w.updateBarPos(m)
	w.Arrange(m)
}

// MoveMouse and ResizeMouse are implemented in drag.go; with them,
// *World satisfies config.WorldControl across the whole action set.

// Spawn execs argv detached from the window manager, per spec §6.5's
// "S" collaborator.
func (w *World) Spawn(argv []string) {
	if len(argv) == 0 {
		return
	}
	_ = w.Srv.Spawn(argv)
}

// Quit stops the event loop; cmd/gowm's key-press handler checks
// Running after each key binding it dispatches and ends the loop.
func (w *World) Quit() {
	w.Running = false
}
