package wm

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/gowm/gowm/internal/config"
)

// Manage begins managing win, newly mapped (or found already mapped
// during the startup scan). It negotiates the client's monitor/tags
// from WM_TRANSIENT_FOR or the rule table, clamps its initial geometry
// onto its monitor, wires up ICCCM/EWMH bookkeeping, and finally maps
// and focuses it — dwm's manage().
func (w *World) Manage(win xproto.Window) {
	if w.ClientOf(win) != nil {
		return
	}
	rect, borderWidth := w.Srv.WindowGeometry(win)

	c := &Client{
		Window:       win,
		Geometry:     rect,
		Saved:        rect,
		BorderW:      w.Cfg.BorderPixel,
		SavedBorderW: borderWidth,
	}
	c.Title = truncateTitle(w.Srv.WMName(win))

	if transient, ok := w.Srv.WMTransientFor(win); ok {
		if t := w.ClientOf(transient); t != nil {
			c.Mon = t.Mon
			c.TagMask = t.TagMask
		}
	}
	isTransient := c.Mon != nil
	if c.Mon == nil {
		c.Mon = w.Selected
		w.applyRules(c)
	}

	mon := c.Mon
	if c.Geometry.X+c.Geometry.W+2*c.BorderW > mon.ScreenRect.X+mon.ScreenRect.W {
		c.Geometry.X = mon.ScreenRect.X + mon.ScreenRect.W - c.Geometry.W - 2*c.BorderW
	}
	if c.Geometry.Y+c.Geometry.H+2*c.BorderW > mon.ScreenRect.Y+mon.ScreenRect.H {
		c.Geometry.Y = mon.ScreenRect.Y + mon.ScreenRect.H - c.Geometry.H - 2*c.BorderW
	}
	if c.Geometry.X < mon.ScreenRect.X {
		c.Geometry.X = mon.ScreenRect.X
	}
	coversBar := mon.BarY == mon.ScreenRect.Y &&
		c.Geometry.X+c.Geometry.W/2 >= mon.WindowRect.X &&
		c.Geometry.X+c.Geometry.W/2 < mon.WindowRect.X+mon.WindowRect.W
	minY := mon.ScreenRect.Y
	if coversBar {
		minY = w.BarHeight
	}
	if c.Geometry.Y < minY {
		c.Geometry.Y = minY
	}

	w.Srv.ConfigureWindow(win, c.Geometry, c.BorderW)
	w.Srv.SetBorderColor(win, w.Cfg.Schemes[config.SchemeNormal])
	w.Srv.SendConfigureNotify(win, c.Geometry, c.BorderW)

	c.Hints = w.Srv.WMNormalHints(win)
	c.refreshFixed()
	urgent, neverFocus := w.Srv.WMHints(win)
	c.IsUrgent = urgent && c.Mon.Selected != c
	c.NeverFocus = neverFocus
	if w.Srv.IsDialogType(win) {
		c.IsFloating = true
	}

	w.Srv.SelectInput(win, selectInputManaged)
	w.Srv.GrabButtons(win, false)

	if !c.IsFloating {
		c.IsFloating = isTransient || c.IsFixed
	}
	if c.IsFloating {
		w.Srv.RaiseWindow(win)
	}

	c.Mon.Attach(c)
	c.Mon.AttachStack(c)
	w.clientsByWindow[win] = c
	w.syncClientList()

	w.Srv.MoveResizeWindow(win, c.Geometry)
	w.Srv.SetWMState(win, NormalState)

	if c.Mon == w.Selected {
		w.unfocus(w.Selected.Selected, false)
	}
	c.Mon.Selected = c
	w.Arrange(c.Mon)
	w.Srv.MapWindow(win)
	w.Focus(nil)
}

// selectInputManaged is the event mask a newly managed client's
// window is selected for, per dwm's manage().
const selectInputManaged = uint32(xproto.EventMaskEnterWindow | xproto.EventMaskFocusChange |
	xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify)

// Unmanage stops managing c. When destroyed is false the border width
// is restored and all button grabs on the window are dropped, and the
// window is withdrawn so a client that merely unmapped (rather than
// being destroyed) is left in a clean ICCCM state — dwm's unmanage().
func (w *World) Unmanage(c *Client, destroyed bool) {
	m := c.Mon
	m.Detach(c)
	m.DetachStack(c)
	if !destroyed {
		w.Srv.GrabServer()
		w.Srv.ConfigureWindow(c.Window, c.Geometry, c.SavedBorderW)
		w.Srv.UngrabAllButtons(c.Window)
		w.Srv.SetWMState(c.Window, WithdrawnState)
		w.Srv.Sync()
		w.Srv.UngrabServer()
	}
	delete(w.clientsByWindow, c.Window)
	w.Focus(nil)
	w.syncClientList()
	w.Arrange(m)
}

// syncClientList republishes _NET_CLIENT_LIST from every managed
// client across every monitor, in monitor/arrangement order.
func (w *World) syncClientList() {
	var wins []xproto.Window
	for _, m := range w.Monitors() {
		for _, c := range m.Clients() {
			wins = append(wins, c.Window)
		}
	}
	w.Srv.SetNetClientList(wins)
}

// applyRules matches c against the configured rule table by
// class/instance/title substring containment, taking floating state
// and monitor from the last matching rule and the union of every
// matching rule's tags — dwm's
// applyrules(). A client that matches no rule (or whose matched tags
// end up empty) inherits its monitor's currently selected tagset.
func (w *World) applyRules(c *Client) {
	class, instance := w.Srv.WMClass(c.Window)
	c.IsFloating = false
	c.TagMask = 0

	for _, r := range w.Cfg.Rules {
		if r.Title != "" && !strings.Contains(c.Title, r.Title) {
			continue
		}
		if r.Class != "" && !strings.Contains(class, r.Class) {
			continue
		}
		if r.Instance != "" && !strings.Contains(instance, r.Instance) {
			continue
		}
		c.IsFloating = r.IsFloating
		c.TagMask |= r.TagMask
		if r.Monitor >= 0 {
			for _, m := range w.Monitors() {
				if m.Index == r.Monitor {
					c.Mon = m
					break
				}
			}
		}
	}
	if c.TagMask&tagMaskAll(w.Cfg) == 0 {
		c.TagMask = c.Mon.Tags()
	} else {
		c.TagMask &= tagMaskAll(w.Cfg)
	}
}

func tagMaskAll(cfg *config.Config) uint32 {
	return (uint32(1) << uint(len(cfg.Tags))) - 1
}

// Scan manages every already-mapped (or iconic) top-level window found
// at startup, in two passes so transients resolve against an
// already-managed owner — dwm's scan().
func (w *World) Scan() {
	wins, err := w.Srv.QueryTree()
	if err != nil {
		return
	}
	type candidate struct {
		win        xproto.Window
		transient  bool
		manageable bool
	}
	var cands []candidate
	for _, win := range wins {
		overrideRedirect, viewable := w.Srv.WindowAttributes(win)
		if overrideRedirect {
			continue
		}
		_, isTransient := w.Srv.WMTransientFor(win)
		manageable := viewable || w.Srv.WMState(win) == IconicState
		cands = append(cands, candidate{win: win, transient: isTransient, manageable: manageable})
	}
	for _, cand := range cands {
		if !cand.transient && cand.manageable {
			w.Manage(cand.win)
		}
	}
	for _, cand := range cands {
		if cand.transient && cand.manageable {
			w.Manage(cand.win)
		}
	}
}
