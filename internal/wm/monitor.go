package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/gowm/gowm/internal/geom"
	"github.com/gowm/gowm/internal/layout"
)

// Monitor is one logical screen region (spec §3 "Monitor").
type Monitor struct {
	Index int

	ScreenRect geom.Rect
	WindowRect geom.Rect

	BarY    int
	ShowBar bool
	TopBar  bool
	BarWin  xproto.Window

	MasterFraction float64
	MasterCount    int

	Tagset         [2]uint32
	SelTagsetIndex int

	Layouts        [2]*layout.Layout
	SelLayoutIndex int
	LayoutSymbol   string

	clientsHead *Client
	stackHead   *Client
	Selected    *Client

	nextMon *Monitor // World's monitor list link
}

// Tags returns the currently visible tagset.
func (m *Monitor) Tags() uint32 { return m.Tagset[m.SelTagsetIndex] }

// CurrentLayout returns the monitor's active layout (nil means floating).
func (m *Monitor) CurrentLayout() *layout.Layout { return m.Layouts[m.SelLayoutIndex] }

// Attach prepends c to the arrangement-order list.
func (m *Monitor) Attach(c *Client) {
	c.next = m.clientsHead
	m.clientsHead = c
}

// AttachStack prepends c to the focus-recency stack.
func (m *Monitor) AttachStack(c *Client) {
	c.snext = m.stackHead
	m.stackHead = c
}

// Detach removes c from the arrangement-order list (O(n) scan, per
// spec §9's accepted cost for the pointer-list design).
func (m *Monitor) Detach(c *Client) {
	pp := &m.clientsHead
	for *pp != nil && *pp != c {
		pp = &(*pp).next
	}
	if *pp == c {
		*pp = c.next
	}
	c.next = nil
}

// DetachStack removes c from the focus-recency stack. If c was the
// selected client, the next visible client in the stack becomes
// selected (or nil) — matching dwm's detachstack.
func (m *Monitor) DetachStack(c *Client) {
	pp := &m.stackHead
	for *pp != nil && *pp != c {
		pp = &(*pp).snext
	}
	if *pp == c {
		*pp = c.snext
	}
	c.snext = nil

	if m.Selected == c {
		var next *Client
		for t := m.stackHead; t != nil; t = t.snext {
			if t.visible(m.Tags()) {
				next = t
				break
			}
		}
		m.Selected = next
	}
}

// Clients iterates the arrangement-order list.
func (m *Monitor) Clients() []*Client {
	var out []*Client
	for c := m.clientsHead; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Stack iterates the focus-recency list (MRU first).
func (m *Monitor) Stack() []*Client {
	var out []*Client
	for c := m.stackHead; c != nil; c = c.snext {
		out = append(out, c)
	}
	return out
}

// tiledVisible returns visible, non-floating, non-fullscreen clients
// in arrangement order — the subset layout.Workspace operates on.
func (m *Monitor) tiledVisible() []*Client {
	var out []*Client
	for c := m.clientsHead; c != nil; c = c.next {
		if c.visible(m.Tags()) && !c.IsFloating && !c.IsFullscreen {
			out = append(out, c)
		}
	}
	return out
}

// monitorResizer adapts World's gap/size-hint policy to layout.Resizer.
type monitorResizer struct {
	world   *World
	clients []*Client
}

func (r monitorResizer) Resize(i int, rect geom.Rect) {
	r.world.resize(r.clients[i], rect, false)
}

// Arrange runs the monitor's current layout over its tiled, visible
// clients (spec §4.2's "Common contract"). A nil arrange function
// (floating layout) leaves clients exactly where they are, per
// invariant I4.
func (m *Monitor) Arrange(world *World) {
	l := m.CurrentLayout()
	if l == nil || l.Arrange == nil {
		m.LayoutSymbol = "><>"
		return
	}
	clients := m.tiledVisible()
	tileable := make([]layout.Tileable, len(clients))
	for i, c := range clients {
		tileable[i] = c
	}
	ws := layout.Workspace{
		Clients:     tileable,
		WindowRect:  m.WindowRect,
		MasterCount: m.MasterCount,
		MasterFrac:  m.MasterFraction,
	}
	sym := l.Arrange(ws, monitorResizer{world: world, clients: clients})
	m.LayoutSymbol = sym
}

// ShowHide applies spec invariant I2: invisible clients move off-screen
// rather than unmap; visible clients keep their current (layout- or
// user-assigned) geometry.
func (m *Monitor) ShowHide(srv Server) {
	for c := m.stackHead; c != nil; c = c.snext {
		if c.visible(m.Tags()) {
			srv.MoveResizeWindow(c.Window, geom.Rect{X: c.Geometry.X, Y: c.Geometry.Y, W: c.Geometry.W, H: c.Geometry.H})
		} else {
			hidden := c.Geometry
			hidden.X = -2 * (c.Geometry.W + 2*c.BorderW)
			srv.MoveResizeWindow(c.Window, hidden)
		}
	}
}

// Restack raises the selected floating/floating-layout client, or
// (for a tiled layout) stacks every non-floating visible client below
// the bar window in stack order — spec §4.3 "Restack".
func (m *Monitor) Restack(srv Server) {
	if m.Selected == nil {
		return
	}
	tiled := m.CurrentLayout() != nil && m.CurrentLayout().Arrange != nil
	if m.Selected.IsFloating || !tiled {
		srv.RaiseWindow(m.Selected.Window)
	}
	if tiled {
		sibling := m.BarWin
		for c := m.stackHead; c != nil; c = c.snext {
			if !c.IsFloating && c.visible(m.Tags()) {
				srv.StackBelow(c.Window, sibling)
				sibling = c.Window
			}
		}
	}
	srv.Sync()
}
