// Package wm implements the client/monitor state model (C3) and the
// event-driven state machine (C4) described in spec.md §3-4: it owns
// the set of monitors, each monitor's two intrusively linked client
// lists, and the handlers that translate windowing-server events into
// mutations on that model while preserving spec §3's invariants.
package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/gowm/gowm/internal/config"
	"github.com/gowm/gowm/internal/geom"
)

// World bundles the process-wide state spec §3 and §9 describe:
// the monitor list, the server connection (via Server), colour
// schemes, screen dimensions, the bar height, and the running flag
// (the Num-Lock modifier mask is cached by the Server). Spec §9's Design Notes calls for
// bundling exactly this into one object threaded through handlers
// instead of C-style file-scope globals; World is that object.
type World struct {
	Srv Server
	Cfg *config.Config

	monitorsHead *Monitor
	Selected     *Monitor

	ScreenW, ScreenH int
	BarHeight        int
	rootWindow       xproto.Window

	Running bool

	// Bar renders the status bar for a monitor; nil is valid (no bar
	// configured) and drawBar becomes a no-op. Wired to an
	// internal/bar.Renderer by cmd/gowm's startup sequence.
	Bar        BarRenderer
	StatusText string

	// clientsByWindow indexes every managed client by its window id,
	// standing in for dwm's linear wintoclient() scan — an O(1)
	// improvement the pointer-list design (spec §9 option (a)) does
	// not preclude.
	clientsByWindow map[xproto.Window]*Client
}

// NewWorld constructs an unstarted World; cmd/gowm's main performs the
// startup sequence from SPEC_FULL.md §4.4.
func NewWorld(srv Server, cfg *config.Config) *World {
	return &World{
		Srv:             srv,
		Cfg:             cfg,
		clientsByWindow: make(map[xproto.Window]*Client),
	}
}

// SetRootWindow records the connection's root window id, used to
// recognize root-targeted PropertyNotify/ConfigureNotify events.
func (w *World) SetRootWindow(win xproto.Window) { w.rootWindow = win }

// Monitors iterates the monitor list in topology order.
func (w *World) Monitors() []*Monitor {
	var out []*Monitor
	for m := w.monitorsHead; m != nil; m = m.next() {
		out = append(out, m)
	}
	return out
}

// next returns the following monitor in World's list, linked through
// the unexported Monitor.nextMon field that monitorlist.go maintains.
func (m *Monitor) next() *Monitor { return m.nextMon }

// ClientOf looks up the managed client owning win, or nil.
func (w *World) ClientOf(win xproto.Window) *Client {
	return w.clientsByWindow[win]
}

// Arrange re-tiles one monitor (or every monitor when mon is nil) and
// restacks it, matching dwm's arrange()/arrangemon() split: showhide
// first (so floating/fullscreen bookkeeping and visibility are settled
// before geometry is computed), then the layout, then the stacking
// order.
func (w *World) Arrange(mon *Monitor) {
	if mon != nil {
		mon.ShowHide(w.Srv)
		mon.Arrange(w)
		mon.Restack(w.Srv)
		return
	}
	for _, m := range w.Monitors() {
		m.ShowHide(w.Srv)
	}
	for _, m := range w.Monitors() {
		m.Arrange(w)
	}
}

// resize negotiates r through ApplySizeHints and, if the result
// differs from c's current geometry, applies it via resizeClient.
// interactive selects screen-wide vs monitor-window-area clipping per
// spec §4.1 step 2.
func (w *World) resize(c *Client, r geom.Rect, interactive bool) {
	respect := w.Cfg.ResizeHints || c.IsFloating || c.Mon.CurrentLayout() == nil || c.Mon.CurrentLayout().Arrange == nil
	req := geom.Request{
		Current:      c.Geometry,
		BorderWidth:  c.BorderW,
		Hints:        c.Hints,
		RespectHints: respect,
	}
	var clip geom.ClipBounds
	if interactive {
		clip = geom.ClipBounds{X: 0, Y: 0, W: w.ScreenW, H: w.ScreenH}
	} else {
		wr := c.Mon.WindowRect
		clip = geom.ClipBounds{X: wr.X, Y: wr.Y, W: wr.W, H: wr.H}
	}
	x, y, width, height, changed := geom.ApplySizeHints(req, r.X, r.Y, r.W, r.H, interactive, clip, w.BarHeight)
	if changed {
		w.resizeClient(c, geom.Rect{X: x, Y: y, W: width, H: height})
	}
}

// resizeClient applies the gap/border policy spec §4.2 assigns to
// resize_client, then pushes the final rectangle to the server. A
// single visible tiled client, or the monocle layout, strips gap and
// border entirely for a borderless fullscreen-looking presentation;
// otherwise every tile is inset by cfg.WindowGap on all sides.
func (w *World) resizeClient(c *Client, r geom.Rect) {
	m := c.Mon
	borderWidth := c.BorderW
	var gapOffset, gapIncrement int

	tiledLayout := m.CurrentLayout() != nil && m.CurrentLayout().Arrange != nil
	if c.IsFloating || !tiledLayout {
		gapOffset, gapIncrement = 0, 0
	} else {
		n := len(m.tiledVisible())
		isMonocle := n == 1 || m.CurrentLayout().Symbol == "[M]"
		if isMonocle {
			gapOffset = 0
			gapIncrement = -2 * w.Cfg.BorderPixel
			borderWidth = 0
		} else {
			gapOffset = w.Cfg.WindowGap
			gapIncrement = 2 * w.Cfg.WindowGap
		}
	}

	c.Saved = c.Geometry
	c.Geometry = geom.Rect{
		X: r.X + gapOffset,
		Y: r.Y + gapOffset,
		W: r.W - gapIncrement,
		H: r.H - gapIncrement,
	}
	c.BorderW = borderWidth

	w.Srv.ConfigureWindow(c.Window, c.Geometry, c.BorderW)
	w.Srv.SendConfigureNotify(c.Window, c.Geometry, c.BorderW)
	w.Srv.Sync()
}
