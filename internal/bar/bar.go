// Package bar renders the per-monitor status bar and turns a click's
// x coordinate back into the region dwm's buttonpress() dispatches
// on. It implements wm.BarRenderer against xgbutil/xgraphics.
package bar

import (
	"image"
	"image/color"
	"os"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/golang/freetype/truetype"

	"github.com/gowm/gowm/internal/config"
	"github.com/gowm/gowm/internal/wm"
)

// cell records one bar segment's pixel span and the click it produces,
// rebuilt on every Draw so HitTest always matches what's on screen.
type cell struct {
	region config.ClickRegion
	arg    config.Arg
	x, w   int
}

type monitorBar struct {
	win   *xwindow.Window
	img   *xgraphics.Image
	cells []cell
}

// Renderer is the real xgraphics-backed implementation of
// wm.BarRenderer, one bar window and offscreen image per monitor.
type Renderer struct {
	x        *xgbutil.XUtil
	cfg      *config.Config
	font     *truetype.Font
	fontSize float64
	height   int

	bars map[int]*monitorBar // keyed by Monitor.Index
}

// New loads cfg.Font and constructs a Renderer of the given bar
// height; it does not yet own any monitor's window, which Draw
// creates lazily on first use.
func New(X *xgbutil.XUtil, cfg *config.Config, barHeight int) (*Renderer, error) {
	font, err := loadFont(cfg.Font)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		x: X, cfg: cfg, font: font, fontSize: 12, height: barHeight,
		bars: make(map[int]*monitorBar),
	}, nil
}

func loadFont(spec string) (*truetype.Font, error) {
	fh, err := os.Open(fontPathFor(spec))
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return xgraphics.ParseFont(fh)
}

// fontPathFor resolves dwm's "family:size=N" config.Font spec to a
// file path. A full build would resolve this via fontconfig; this
// ships a single monospace fallback, which is all the default config
// ("monospace:size=10") ever asks for.
func fontPathFor(spec string) string {
	if path := os.Getenv("GOWM_FONT_PATH"); path != "" {
		return path
	}
	return "/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf"
}

func (r *Renderer) barFor(m *wm.Monitor) *monitorBar {
	mb, ok := r.bars[m.Index]
	if ok {
		return mb
	}
	win := xwindow.Must(xwindow.Generate(r.x))
	win.Create(r.x.RootWin(), m.ScreenRect.X, m.BarY, m.ScreenRect.W, r.height, 0)
	win.Map()
	m.BarWin = win.Id
	mb = &monitorBar{win: win}
	r.bars[m.Index] = mb
	return mb
}

// Draw repaints m's bar: tag cells with occupancy/urgency squares, the
// layout symbol, the status text and the selected client's title —
// dwm's drawbar(). The status text is drawn whenever status is
// non-empty; World passes the root status to every monitor's bar, so
// it is not limited to the selected monitor.
func (r *Renderer) Draw(m *wm.Monitor, status string) {
	mb := r.barFor(m)
	width := m.ScreenRect.W
	if width <= 0 || r.height <= 0 {
		return
	}
	img, err := xgraphics.New(r.x, image.Rect(0, 0, width, r.height))
	if err != nil {
		return
	}
	mb.img = img
	mb.cells = mb.cells[:0]

	var occ, urg uint32
	for _, c := range m.Clients() {
		occ |= c.TagMask
		if c.IsUrgent {
			urg |= c.TagMask
		}
	}

	dx := (r.fontSize2() + 2) / 4

	x := 0
	for i, tag := range r.cfg.Tags {
		mask := uint32(1) << uint(i)
		selected := m.Tags()&mask != 0
		scheme := r.scheme(selected)
		w, _, _ := xgraphics.TextMaxExtents(r.font, r.fontSize, tag)
		w += 2 * dx

		r.fill(img, x, 0, w, r.height, scheme.Background)
		textColor := scheme.Foreground
		if urg&mask != 0 {
			textColor = scheme.Background
		}
		img.Text(x+dx, 0, hexColor(textColor), r.fontSize, r.font, tag)

		if occ&mask != 0 {
			sq := dx
			filled := m.Selected != nil && m.Selected.TagMask&mask != 0
			r.drawSquare(img, x+1, 1, sq, filled, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		}

		mb.cells = append(mb.cells, cell{
			region: config.ClickTagBar,
			arg:    config.Arg{Kind: config.ArgUint, Uint: mask},
			x:      x, w: w,
		})
		x += w
	}

	symW, _, _ := xgraphics.TextMaxExtents(r.font, r.fontSize, m.LayoutSymbol)
	symW += 2 * dx
	normal := r.scheme(false)
	r.fill(img, x, 0, symW, r.height, normal.Background)
	img.Text(x+dx, 0, hexColor(normal.Foreground), r.fontSize, r.font, m.LayoutSymbol)
	mb.cells = append(mb.cells, cell{region: config.ClickLayoutSymbol, x: x, w: symW})
	x += symW

	rightEdge := width
	if status != "" {
		statusW, _, _ := xgraphics.TextMaxExtents(r.font, r.fontSize, status)
		statusW += 2 * dx
		sx := width - statusW
		if sx < x {
			sx = x
			statusW = width - x
		}
		r.fill(img, sx, 0, statusW, r.height, normal.Background)
		img.Text(sx+dx, 0, hexColor(normal.Foreground), r.fontSize, r.font, status)
		mb.cells = append(mb.cells, cell{region: config.ClickStatusText, x: sx, w: statusW})
		rightEdge = sx
	}

	if titleW := rightEdge - x; titleW > r.height {
		scheme := r.scheme(true)
		if m.Selected != nil {
			r.fill(img, x, 0, titleW, r.height, scheme.Background)
			img.Text(x+dx, 0, hexColor(scheme.Foreground), r.fontSize, r.font, m.Selected.Title)
		} else {
			r.fill(img, x, 0, titleW, r.height, r.scheme(false).Background)
		}
		mb.cells = append(mb.cells, cell{region: config.ClickWinTitle, x: x, w: titleW})
	}

	img.XSurfaceSet(mb.win.Id)
	img.XDraw()
	img.XPaint(mb.win.Id)
}

// HitTest maps x back to the region/arg a click at that position on
// m's bar should dispatch, matching the cells the last Draw produced.
func (r *Renderer) HitTest(m *wm.Monitor, x int) (config.ClickRegion, config.Arg) {
	mb, ok := r.bars[m.Index]
	if !ok {
		return config.ClickRootWindow, config.Arg{}
	}
	for _, c := range mb.cells {
		if x >= c.x && x < c.x+c.w {
			return c.region, c.arg
		}
	}
	return config.ClickStatusText, config.Arg{}
}

func (r *Renderer) scheme(selected bool) config.ColorScheme {
	if selected {
		return r.cfg.Schemes[config.SchemeSelected]
	}
	return r.cfg.Schemes[config.SchemeNormal]
}

func (r *Renderer) fontSize2() int {
	_, h, _ := xgraphics.TextMaxExtents(r.font, r.fontSize, "M")
	return h
}

func (r *Renderer) fill(img *xgraphics.Image, x, y, w, h int, hex string) {
	c := hexColor(hex)
	bgra := xgraphics.BGRA{B: c.B, G: c.G, R: c.R, A: c.A}
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			img.SetBGRA(xx, yy, bgra)
		}
	}
}

func (r *Renderer) drawSquare(img *xgraphics.Image, x, y, size int, filled bool, c color.RGBA) {
	bgra := xgraphics.BGRA{B: c.B, G: c.G, R: c.R, A: c.A}
	if filled {
		for yy := y; yy < y+size; yy++ {
			for xx := x; xx < x+size; xx++ {
				img.SetBGRA(xx, yy, bgra)
			}
		}
		return
	}
	for xx := x; xx < x+size; xx++ {
		img.SetBGRA(xx, y, bgra)
		img.SetBGRA(xx, y+size-1, bgra)
	}
	for yy := y; yy < y+size; yy++ {
		img.SetBGRA(x, yy, bgra)
		img.SetBGRA(x+size-1, yy, bgra)
	}
}

// hexColor parses "#rrggbb" into color.RGBA, defaulting to opaque
// black for an empty or malformed string.
func hexColor(hex string) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{A: 0xff}
	}
	var v uint32
	for i := 1; i < 7; i++ {
		v <<= 4
		c := hex[i]
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint32(c-'A') + 10
		}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
