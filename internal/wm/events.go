package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/gowm/gowm/internal/config"
)

// The On* methods below are the handlers spec §4.4's dispatch table
// names; a real build registers each with xgbutil/xevent's
// per-event-type hooks (xevent.MapRequestFun and friends, run from
// xevent.Main), which decode the wire event and call these with plain
// Go values so the state machine stays testable without an X
// connection — dwm's buttonpress/clientmessage/.../unmapnotify family.

// OnMapRequest manages win unless it's override-redirect or already
// managed — dwm's maprequest().
func (w *World) OnMapRequest(win xproto.Window, overrideRedirect bool) {
	if overrideRedirect || w.ClientOf(win) != nil {
		return
	}
	w.Manage(win)
}

// OnUnmapNotify withdraws c if the unmap was a real client action, or
// (for a synthetic/send_event unmap, per ICCCM 4.1.4) just marks it
// withdrawn without forgetting it — dwm's unmapnotify().
func (w *World) OnUnmapNotify(win xproto.Window, synthetic bool) {
	c := w.ClientOf(win)
	if c == nil {
		return
	}
	if synthetic {
		w.Srv.SetWMState(win, WithdrawnState)
		return
	}
	w.Unmanage(c, false)
}

// OnDestroyNotify forgets a destroyed client outright — dwm's
// destroynotify().
func (w *World) OnDestroyNotify(win xproto.Window) {
	if c := w.ClientOf(win); c != nil {
		w.Unmanage(c, true)
	}
}

// ConfigureRequestMask names which fields of a ConfigureRequest carry
// a value, mirroring xproto's CWX/CWY/.../CWBorderWidth bits.
type ConfigureRequestMask uint16

const (
	ConfigureReqX ConfigureRequestMask = 1 << iota
	ConfigureReqY
	ConfigureReqWidth
	ConfigureReqHeight
	ConfigureReqBorderWidth
)

// ConfigureRequestValues carries the subset of a ConfigureRequest's
// fields Mask marks as present.
type ConfigureRequestValues struct {
	Mask        ConfigureRequestMask
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	Sibling     xproto.Window
	StackMode   byte
}

// OnConfigureRequest honors an unmanaged window's raw request
// verbatim, and a managed floating (or floating-layout) window's
// request after clamping it back on-monitor; a managed tiled window
// just gets its current geometry echoed back — dwm's
// configurerequest().
func (w *World) OnConfigureRequest(win xproto.Window, v ConfigureRequestValues) {
	c := w.ClientOf(win)
	if c == nil {
		w.Srv.ConfigureWindowRaw(win, v)
		return
	}
	if v.Mask&ConfigureReqBorderWidth != 0 {
		c.BorderW = v.BorderWidth
		return
	}
	tiled := c.Mon.CurrentLayout() != nil && c.Mon.CurrentLayout().Arrange != nil
	if !c.IsFloating && tiled {
		w.sendConfigureNotify(c)
		return
	}
	m := c.Mon
	if v.Mask&ConfigureReqX != 0 {
		c.Geometry.X = m.ScreenRect.X + v.X
	}
	if v.Mask&ConfigureReqY != 0 {
		c.Geometry.Y = m.ScreenRect.Y + v.Y
	}
	if v.Mask&ConfigureReqWidth != 0 {
		c.Geometry.W = v.Width
	}
	if v.Mask&ConfigureReqHeight != 0 {
		c.Geometry.H = v.Height
	}
	if c.Geometry.X+c.Geometry.W > m.ScreenRect.X+m.ScreenRect.W && c.IsFloating {
		c.Geometry.X = m.ScreenRect.X + (m.ScreenRect.W/2 - (c.Geometry.W+2*c.BorderW)/2)
	}
	if c.Geometry.Y+c.Geometry.H > m.ScreenRect.Y+m.ScreenRect.H && c.IsFloating {
		c.Geometry.Y = m.ScreenRect.Y + (m.ScreenRect.H/2 - (c.Geometry.H+2*c.BorderW)/2)
	}
	if v.Mask&(ConfigureReqX|ConfigureReqY) != 0 && v.Mask&(ConfigureReqWidth|ConfigureReqHeight) == 0 {
		w.sendConfigureNotify(c)
	}
	if c.visible(c.Mon.Tags()) {
		w.Srv.MoveResizeWindow(win, c.Geometry)
	}
}

func (w *World) sendConfigureNotify(c *Client) {
	w.Srv.SendConfigureNotify(c.Window, c.Geometry, c.BorderW)
}

// OnConfigureNotifyRoot re-reconciles monitor topology when the root
// window's geometry changes (width/height genuinely differ, or
// UpdateGeom otherwise detects a change), matching dwm's
// configurenotify() root-window branch.
func (w *World) OnConfigureNotifyRoot(width, height int) {
	dirty := w.ScreenW != width || w.ScreenH != height
	w.ScreenW, w.ScreenH = width, height
	if w.UpdateGeom() || dirty {
		w.Focus(nil)
		w.Arrange(nil)
	}
}

// OnClientMessage handles _NET_WM_STATE fullscreen toggles and
// _NET_ACTIVE_WINDOW activation requests — dwm's clientmessage().
// action follows the EWMH _NET_WM_STATE convention: 0 remove, 1 add,
// 2 toggle.
func (w *World) OnClientMessage(win xproto.Window, messageType string, action int, prop1, prop2 string) {
	c := w.ClientOf(win)
	if c == nil {
		return
	}
	switch messageType {
	case "_NET_WM_STATE":
		if prop1 == "_NET_WM_STATE_FULLSCREEN" || prop2 == "_NET_WM_STATE_FULLSCREEN" {
			want := action == 1 || (action == 2 && !c.IsFullscreen)
			w.SetFullscreen(c, want)
		}
	case "_NET_ACTIVE_WINDOW":
		if !c.visible(c.Mon.Tags()) {
			c.Mon.SelTagsetIndex ^= 1
			c.Mon.Tagset[c.Mon.SelTagsetIndex] = c.TagMask
		}
		c.Mon.Detach(c)
		c.Mon.Attach(c)
		w.Focus(c)
		w.Arrange(c.Mon)
	}
}

// OnPropertyNotify reacts to the ICCCM/EWMH property changes dwm's
// propertynotify() switches on: WM_NAME/_NET_WM_NAME retitle, root
// WM_NAME refreshes the status text, WM_TRANSIENT_FOR may newly float
// a client, WM_NORMAL_HINTS re-negotiates size constraints,
// WM_HINTS re-reads urgency/input-model, and _NET_WM_WINDOW_TYPE
// may mark a window a dialog.
func (w *World) OnPropertyNotify(win xproto.Window, atom string, deleted bool) {
	if win == w.rootWindow && atom == "WM_NAME" {
		w.updateStatus()
		return
	}
	if deleted {
		return
	}
	c := w.ClientOf(win)
	if c == nil {
		return
	}
	switch atom {
	case "WM_TRANSIENT_FOR":
		if !c.IsFloating {
			if transient, ok := w.Srv.WMTransientFor(win); ok {
				c.IsFloating = w.ClientOf(transient) != nil
				if c.IsFloating {
					w.Arrange(c.Mon)
				}
			}
		}
	case "WM_NORMAL_HINTS":
		c.Hints = w.Srv.WMNormalHints(win)
		c.refreshFixed()
	case "WM_HINTS":
		urgent, neverFocus := w.Srv.WMHints(win)
		c.IsUrgent = urgent
		c.NeverFocus = neverFocus
		w.drawBars()
	}
	if atom == "WM_NAME" || atom == "_NET_WM_NAME" {
		c.Title = truncateTitle(w.Srv.WMName(win))
		if c == c.Mon.Selected && w.Bar != nil {
			w.Bar.Draw(c.Mon, w.StatusText)
		}
	}
	if atom == "_NET_WM_WINDOW_TYPE" && w.Srv.IsDialogType(win) {
		c.IsFloating = true
	}
}

func (w *World) updateStatus() {
	w.StatusText = w.Srv.RootName()
	w.drawBars()
}

// OnButtonPress resolves a click on the root/bar/client and dispatches
// the matching button binding — dwm's buttonpress().
func (w *World) OnButtonPress(win xproto.Window, x int, button uint8, state uint16) {
	m := w.monitorOfWindow(win)
	if m != nil && m != w.Selected {
		w.unfocus(w.Selected.Selected, true)
		w.Selected = m
		w.Focus(nil)
	}

	click := config.ClickRootWindow
	var arg config.Arg
	if w.Selected.BarWin != 0 && win == w.Selected.BarWin && w.Bar != nil {
		click, arg = w.Bar.HitTest(w.Selected, x)
	} else if c := w.ClientOf(win); c != nil {
		w.Focus(c)
		click = config.ClickClientWindow
	}

	clean := cleanModMask(state, w.Srv.NumlockMask())
	for _, b := range w.Cfg.Buttons {
		if b.Click != click || b.Button != button {
			continue
		}
		if cleanModMask(b.Mod, 0) != clean {
			continue
		}
		useArg := b.Arg
		if click == config.ClickTagBar && useArg.Kind == config.ArgNone {
			useArg = arg
		}
		b.Action(w, useArg)
	}
}

func (w *World) monitorOfWindow(win xproto.Window) *Monitor {
	if c := w.ClientOf(win); c != nil {
		return c.Mon
	}
	for _, m := range w.Monitors() {
		if m.BarWin == win {
			return m
		}
	}
	if win == w.rootWindow {
		return w.monitorAtPointer()
	}
	return nil
}

// relevantModMask covers the eight modifier bits X11 defines
// (Shift, Lock, Control, Mod1-Mod5); any other bit set on an event's
// state (button/motion noise) is not a modifier at all.
const relevantModMask = uint16(xproto.ModMaskShift | xproto.ModMaskLock | xproto.ModMaskControl |
	xproto.ModMask1 | xproto.ModMask2 | xproto.ModMask3 | xproto.ModMask4 | xproto.ModMask5)

// cleanModMask strips Caps-Lock and the server's cached Num-Lock bit
// from a modifier mask, mirroring dwm's CLEANMASK macro / a real
// build's keybind.CleanMask. lockMask is 0 when cleaning a configured
// binding's mask (which never carries Num-Lock) for comparison.
func cleanModMask(state, lockMask uint16) uint16 {
	mask := state &^ uint16(xproto.ModMaskLock)
	mask &^= lockMask
	return mask & relevantModMask
}

// OnMotionNotify switches the selected monitor when the pointer
// crosses into another monitor's screen rectangle while over the root
// window — dwm's motionnotify(). lastMon is the caller's memoized
// previous result (motionnotify's static local); it is passed back and
// forth so World stays the only owner of mutable state.
func (w *World) OnMotionNotify(rootX, rootY int, lastMon *Monitor) *Monitor {
	mon := w.monitorContaining(rootX, rootY)
	if mon != lastMon && lastMon != nil && mon != nil {
		w.unfocus(w.Selected.Selected, true)
		w.Selected = mon
		w.Focus(nil)
	}
	return mon
}

func (w *World) monitorContaining(x, y int) *Monitor {
	for _, m := range w.Monitors() {
		if x >= m.ScreenRect.X && x < m.ScreenRect.X+m.ScreenRect.W &&
			y >= m.ScreenRect.Y && y < m.ScreenRect.Y+m.ScreenRect.H {
			return m
		}
	}
	return w.monitorAtPointer()
}

// OnEnterNotify focuses the client (or monitor) the pointer entered,
// ignoring grab/ungrab-generated and inferior-to-inferior crossings
// per ICCCM — dwm's enternotify().
func (w *World) OnEnterNotify(win xproto.Window, normalMode, inferior bool) {
	if (!normalMode || inferior) && win != w.rootWindow {
		return
	}
	c := w.ClientOf(win)
	var mon *Monitor
	if c != nil {
		mon = c.Mon
	} else {
		mon = w.monitorOfWindow(win)
	}
	if mon == nil {
		return
	}
	if mon != w.Selected {
		w.unfocus(w.Selected.Selected, true)
		w.Selected = mon
	} else if c == nil || c == w.Selected.Selected {
		return
	}
	w.Focus(c)
}

// OnFocusIn re-asserts focus on the selected client when some other
// window steals input focus out from under it — dwm's focusin(),
// a workaround for clients with broken focus-acquisition.
func (w *World) OnFocusIn(win xproto.Window) {
	sel := w.Selected.Selected
	if sel != nil && win != sel.Window {
		w.setFocus(sel)
	}
}

// OnKeyPress dispatches the key binding matching keysym/state —
// dwm's keypress().
func (w *World) OnKeyPress(keysym uint32, state uint16) {
	clean := cleanModMask(state, w.Srv.NumlockMask())
	for _, k := range w.Cfg.Keys {
		if k.Keysym == keysym && cleanModMask(k.Mod, 0) == clean && k.Action != nil {
			k.Action(w, k.Arg)
		}
	}
}

// OnMappingNotify refreshes key grabs after a keyboard mapping change
// — dwm's mappingnotify().
func (w *World) OnMappingNotify() {
	w.Srv.RefreshNumlockMask()
	w.Srv.GrabKeys(w.Cfg.Keys)
}

// OnExpose redraws a monitor's bar on its final Expose in a run —
// dwm's expose().
func (w *World) OnExpose(win xproto.Window, count int) {
	if count != 0 || w.Bar == nil {
		return
	}
	if m := w.monitorOfWindow(win); m != nil {
		w.Bar.Draw(m, w.StatusText)
	}
}
