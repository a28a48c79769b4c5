// Package layout implements the five arrangement functions dwm-derived
// tiling window managers ship: tile, floating, monocle, bstack and
// bstackhoriz. Each Arrange function walks a Workspace's tiled clients
// and calls Resizer.Resize for each one; callers (internal/wm) own the
// actual client geometry and gap/border policy inside Resize.
package layout

import "github.com/gowm/gowm/internal/geom"

// Tileable is the minimal view an arrange function needs of one visible,
// non-floating, non-fullscreen client.
type Tileable interface {
	BorderWidth() int
}

// Resizer applies a computed rectangle to the i'th tileable client.
// Implementations own size-hint negotiation and gap/border policy; the
// arrange functions below only compute raw target rectangles.
type Resizer interface {
	Resize(i int, r geom.Rect)
}

// Workspace is the slice of visible tiled clients an arrange function
// operates over, in arrangement order (master area first).
type Workspace struct {
	Clients     []Tileable
	WindowRect  geom.Rect
	MasterCount int
	MasterFrac  float64 // [0.1, 0.9]
}

// Layout names one of the five arrangement functions (or nil for
// floating, per spec's "arrange_fn = nil means floating behaviour").
type Layout struct {
	Symbol  string
	Arrange func(ws Workspace, r Resizer) (symbol string)
}

// Builtin returns the fixed, ordered set of layouts a gowm binary ships,
// the first of which is the default — mirrors dwm's config.h `layouts[]`
// table (symbol, arrange-function) pairs.
func Builtin() []Layout {
	return []Layout{
		{Symbol: "[]=", Arrange: Tile},
		{Symbol: "><>", Arrange: nil},
		{Symbol: "[M]", Arrange: Monocle},
		{Symbol: "TTT", Arrange: BStack},
		{Symbol: "===", Arrange: BStackHoriz},
	}
}

// Tile is the master-column-left-stack-right-column layout.
func Tile(ws Workspace, r Resizer) string {
	n := len(ws.Clients)
	if n == 0 {
		return "[]="
	}
	wr := ws.WindowRect
	var mw int
	if n > ws.MasterCount {
		if ws.MasterCount > 0 {
			mw = int(float64(wr.W) * ws.MasterFrac)
		}
	} else {
		mw = wr.W
	}

	my, ty := 0, 0
	for i, c := range ws.Clients {
		bw := c.BorderWidth()
		if i < ws.MasterCount {
			masters := ws.MasterCount
			if n < masters {
				masters = n
			}
			h := (wr.H - my) / (masters - i)
			rect := geom.Rect{X: wr.X, Y: wr.Y + my, W: mw - 2*bw, H: h - 2*bw}
			r.Resize(i, rect)
			my += h
		} else {
			h := (wr.H - ty) / (n - i)
			rect := geom.Rect{X: wr.X + mw, Y: wr.Y + ty, W: wr.W - mw - 2*bw, H: h - 2*bw}
			r.Resize(i, rect)
			ty += h
		}
	}
	return "[]="
}

// Monocle makes every visible tiled client fill the whole window area;
// the returned symbol encodes the visible count, e.g. "[3]".
func Monocle(ws Workspace, r Resizer) string {
	wr := ws.WindowRect
	for i, c := range ws.Clients {
		bw := c.BorderWidth()
		r.Resize(i, geom.Rect{X: wr.X, Y: wr.Y, W: wr.W - 2*bw, H: wr.H - 2*bw})
	}
	if n := len(ws.Clients); n > 0 {
		return symbolForCount(n)
	}
	return "[M]"
}

func symbolForCount(n int) string {
	digits := [...]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}
	if n < 10 {
		return "[" + string(digits[n]) + "]"
	}
	// fall back to a generic form for double-digit counts; dwm itself
	// uses snprintf with no width limit, so this just mirrors that.
	buf := []byte{'['}
	buf = appendInt(buf, n)
	buf = append(buf, ']')
	return string(buf)
}

func appendInt(buf []byte, n int) []byte {
	if n >= 10 {
		buf = appendInt(buf, n/10)
	}
	return append(buf, byte('0'+n%10))
}

// BStack is the horizontal-master-row-on-top layout.
func BStack(ws Workspace, r Resizer) string {
	n := len(ws.Clients)
	if n == 0 {
		return "TTT"
	}
	wr := ws.WindowRect
	var mh, tw, ty int
	if n > ws.MasterCount {
		if ws.MasterCount > 0 {
			mh = int(float64(wr.H) * ws.MasterFrac)
		}
		tw = wr.W / (n - ws.MasterCount)
		ty = wr.Y + mh
	} else {
		mh = wr.H
		tw = wr.W
		ty = wr.Y
	}

	mx, tx := 0, wr.X
	for i, c := range ws.Clients {
		bw := c.BorderWidth()
		if i < ws.MasterCount {
			masters := ws.MasterCount
			if n < masters {
				masters = n
			}
			w := (wr.W - mx) / (masters - i)
			rect := geom.Rect{X: wr.X + mx, Y: wr.Y, W: w - 2*bw, H: mh - 2*bw}
			r.Resize(i, rect)
			mx += w
		} else {
			h := wr.H - mh
			rect := geom.Rect{X: tx, Y: ty, W: tw - 2*bw, H: h - 2*bw}
			r.Resize(i, rect)
			if tw != wr.W {
				tx += tw
			}
		}
	}
	return "TTT"
}

// BStackHoriz is BStack's master row with the stack area arranged as a
// single vertical column instead of a horizontal row.
func BStackHoriz(ws Workspace, r Resizer) string {
	n := len(ws.Clients)
	if n == 0 {
		return "==="
	}
	wr := ws.WindowRect
	var mh, th, ty int
	if n > ws.MasterCount {
		if ws.MasterCount > 0 {
			mh = int(float64(wr.H) * ws.MasterFrac)
		}
		th = (wr.H - mh) / (n - ws.MasterCount)
		ty = wr.Y + mh
	} else {
		th = wr.H
		mh = wr.H
		ty = wr.Y
	}

	mx := 0
	for i, c := range ws.Clients {
		bw := c.BorderWidth()
		if i < ws.MasterCount {
			masters := ws.MasterCount
			if n < masters {
				masters = n
			}
			w := (wr.W - mx) / (masters - i)
			rect := geom.Rect{X: wr.X + mx, Y: wr.Y, W: w - 2*bw, H: mh - 2*bw}
			r.Resize(i, rect)
			mx += w
		} else {
			rect := geom.Rect{X: wr.X, Y: ty, W: wr.W - 2*bw, H: th - 2*bw}
			r.Resize(i, rect)
			if th != wr.H {
				ty += th
			}
		}
	}
	return "==="
}
