// Package xserver implements wm.Server against a live X11 connection
// using xgbutil and its ewmh/icccm/keybind/mousebind/xinerama/xcursor/
// motif subpackages. cmd/gowm is the only caller; internal/wm never
// imports this package, only the wm.Server interface it satisfies.
package xserver

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/gowm/gowm/internal/config"
	"github.com/gowm/gowm/internal/geom"
	"github.com/gowm/gowm/internal/wm"
)

// Server wraps an xgbutil connection and the per-connection state the
// rest of the wm.Server surface needs: the resolved cursors, the
// Num-Lock modifier mask, and the inline dispatch hook PumpDrag's
// inner loop hands non-motion events to.
type Server struct {
	X    *xgbutil.XUtil
	root xproto.Window

	cursors     map[wm.CursorKind]xproto.Cursor
	numlockMask uint16

	inlineDispatch func(interface{})
}

// Connect opens the X connection named by displayName ("" uses
// $DISPLAY), initializes keybind/mousebind, and resolves the three
// cursors the drag actions need.
func Connect(displayName string) (*Server, error) {
	var (
		X   *xgbutil.XUtil
		err error
	)
	if displayName == "" {
		X, err = xgbutil.NewConn()
	} else {
		X, err = xgbutil.NewConnDisplay(displayName)
	}
	if err != nil {
		return nil, err
	}
	keybind.Initialize(X)
	mousebind.Initialize(X)

	s := &Server{
		X:       X,
		root:    X.RootWin(),
		cursors: make(map[wm.CursorKind]xproto.Cursor, 3),
	}
	s.cursors[wm.CursorNormal], err = xcursor.CreateCursor(X, xcursor.LeftPtr)
	if err != nil {
		return nil, err
	}
	s.cursors[wm.CursorMove], err = xcursor.CreateCursor(X, xcursor.Fleur)
	if err != nil {
		return nil, err
	}
	s.cursors[wm.CursorResize], err = xcursor.CreateCursor(X, xcursor.BottomRightCorner)
	if err != nil {
		return nil, err
	}
	s.RefreshNumlockMask()
	return s, nil
}

func (s *Server) RootWindow() xproto.Window { return s.root }
func (s *Server) Conn() *xgbutil.XUtil       { return s.X }

// KeysymForKeycode returns the unshifted (column 0) keysym bound to
// code, the value dwm's keypress() gets from XLookupKeysym(..., 0).
// keybind.Initialize loaded and keeps refreshing the underlying keymap.
func (s *Server) KeysymForKeycode(code xproto.Keycode) uint32 {
	return uint32(keybind.KeysymGet(s.X, code, 0))
}

// --- geometry and topology -------------------------------------------------

func (s *Server) RootGeometry() geom.Rect {
	g, err := xwindow.New(s.X, s.root).Geometry()
	if err != nil {
		return geom.Rect{}
	}
	return geom.Rect{X: int(g.X()), Y: int(g.Y()), W: g.Width(), H: g.Height()}
}

func (s *Server) PhysicalScreens() ([]geom.Rect, error) {
	heads, err := xinerama.PhysicalHeads(s.X)
	if err != nil {
		return nil, err
	}
	out := make([]geom.Rect, len(heads))
	for i, h := range heads {
		out[i] = geom.Rect{X: h.X(), Y: h.Y(), W: h.Width(), H: h.Height()}
	}
	return out, nil
}

func (s *Server) PointerScreen() geom.Rect {
	x, y := s.QueryPointer()
	screens, err := s.PhysicalScreens()
	if err != nil {
		return s.RootGeometry()
	}
	for _, r := range screens {
		if x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H {
			return r
		}
	}
	if len(screens) > 0 {
		return screens[0]
	}
	return s.RootGeometry()
}

func (s *Server) QueryPointer() (x, y int) {
	reply, err := xproto.QueryPointer(s.X.Conn(), s.root).Reply()
	if err != nil || reply == nil {
		return 0, 0
	}
	return int(reply.RootX), int(reply.RootY)
}

func (s *Server) WarpPointer(x, y int) {
	xproto.WarpPointer(s.X.Conn(), 0, s.root, 0, 0, 0, 0, int16(x), int16(y))
}

// --- window lifecycle and geometry -----------------------------------------

func (s *Server) QueryTree() ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(s.X.Conn(), s.root).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

func (s *Server) WindowAttributes(win xproto.Window) (overrideRedirect, viewable bool) {
	reply, err := xproto.GetWindowAttributes(s.X.Conn(), win).Reply()
	if err != nil || reply == nil {
		return false, false
	}
	return reply.OverrideRedirect, reply.MapState == xproto.MapStateViewable
}

func (s *Server) WindowGeometry(win xproto.Window) (r geom.Rect, borderWidth int) {
	g, err := xwindow.New(s.X, win).Geometry()
	if err != nil {
		return geom.Rect{}, 0
	}
	return geom.Rect{X: int(g.X()), Y: int(g.Y()), W: g.Width(), H: g.Height()}, g.BorderWidth()
}

func (s *Server) WMState(win xproto.Window) int {
	state, err := icccm.WmStateGet(s.X, win)
	if err != nil {
		return wm.WithdrawnState
	}
	return int(state.State)
}

func (s *Server) ConfigureWindow(win xproto.Window, r geom.Rect, borderWidth int) {
	xproto.ConfigureWindow(s.X.Conn(), win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|
			xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(r.X), uint32(r.Y), uint32(r.W), uint32(r.H), uint32(borderWidth)})
}

func (s *Server) ConfigureWindowRaw(win xproto.Window, v wm.ConfigureRequestValues) {
	var mask uint16
	var values []uint32
	add := func(bit uint16, val uint32) {
		mask |= bit
		values = append(values, val)
	}
	if v.Mask&wm.ConfigureReqX != 0 {
		add(xproto.ConfigWindowX, uint32(v.X))
	}
	if v.Mask&wm.ConfigureReqY != 0 {
		add(xproto.ConfigWindowY, uint32(v.Y))
	}
	if v.Mask&wm.ConfigureReqWidth != 0 {
		add(xproto.ConfigWindowWidth, uint32(v.Width))
	}
	if v.Mask&wm.ConfigureReqHeight != 0 {
		add(xproto.ConfigWindowHeight, uint32(v.Height))
	}
	if v.Mask&wm.ConfigureReqBorderWidth != 0 {
		add(xproto.ConfigWindowBorderWidth, uint32(v.BorderWidth))
	}
	if v.Sibling != 0 {
		add(xproto.ConfigWindowSibling, uint32(v.Sibling))
		add(xproto.ConfigWindowStackMode, uint32(v.StackMode))
	}
	xproto.ConfigureWindow(s.X.Conn(), win, mask, values)
}

func (s *Server) SendConfigureNotify(win xproto.Window, r geom.Rect, borderWidth int) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     0,
		X:                int16(r.X),
		Y:                int16(r.Y),
		Width:            uint16(r.W),
		Height:           uint16(r.H),
		BorderWidth:      uint16(borderWidth),
		OverrideRedirect: false,
	}
	xproto.SendEvent(s.X.Conn(), false, win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (s *Server) MoveResizeWindow(win xproto.Window, r geom.Rect) {
	xproto.ConfigureWindow(s.X.Conn(), win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(r.X), uint32(r.Y), uint32(r.W), uint32(r.H)})
}

func (s *Server) RaiseWindow(win xproto.Window) {
	xproto.ConfigureWindow(s.X.Conn(), win, xproto.ConfigWindowStackMode,
		[]uint32{uint32(xproto.StackModeAbove)})
}

func (s *Server) StackBelow(win, sibling xproto.Window) {
	xproto.ConfigureWindow(s.X.Conn(), win,
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), uint32(xproto.StackModeBelow)})
}

func (s *Server) MapWindow(win xproto.Window)   { xproto.MapWindow(s.X.Conn(), win) }
func (s *Server) UnmapWindow(win xproto.Window) { xproto.UnmapWindow(s.X.Conn(), win) }

func (s *Server) SelectInput(win xproto.Window, mask uint32) {
	xproto.ChangeWindowAttributes(s.X.Conn(), win, xproto.CwEventMask, []uint32{mask})
}

func (s *Server) SetBorderWidth(win xproto.Window, width int) {
	xproto.ConfigureWindow(s.X.Conn(), win, xproto.ConfigWindowBorderWidth, []uint32{uint32(width)})
}

func (s *Server) SetBorderColor(win xproto.Window, scheme config.ColorScheme) {
	pixel, err := parseColor(s.X, scheme.Border)
	if err != nil {
		return
	}
	xproto.ChangeWindowAttributes(s.X.Conn(), win, xproto.CwBorderPixel, []uint32{pixel})
}

// --- focus and input --------------------------------------------------------

func (s *Server) SetInputFocus(win xproto.Window) {
	if win == 0 {
		return
	}
	xproto.SetInputFocus(s.X.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
}

func (s *Server) RevertFocusToRoot() {
	xproto.SetInputFocus(s.X.Conn(), xproto.InputFocusPointerRoot, s.root, xproto.TimeCurrentTime)
}

func (s *Server) GrabButtons(win xproto.Window, focused bool) {
	s.UngrabAllButtons(win)
	if !focused {
		xproto.GrabButton(s.X.Conn(), false, win,
			uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
			xproto.GrabModeSync, xproto.GrabModeSync, 0, 0,
			xproto.ButtonIndexAny, uint16(xproto.ModMaskAny))
		return
	}
	for _, mod := range s.numlockVariants(0) {
		xproto.GrabButton(s.X.Conn(), false, win,
			uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
			xproto.GrabModeAsync, xproto.GrabModeSync, 0, 0,
			xproto.ButtonIndexAny, mod)
	}
}

func (s *Server) UngrabAllButtons(win xproto.Window) {
	xproto.UngrabButton(s.X.Conn(), xproto.ButtonIndexAny, win, uint16(xproto.ModMaskAny))
}

func (s *Server) GrabKeys(keys []config.KeyBinding) {
	xproto.UngrabKey(s.X.Conn(), xproto.GrabAny, s.root, uint16(xproto.ModMaskAny))
	for _, kb := range keys {
		code := keybind.KeysymToKeycode(s.X, kb.Keysym)
		if code == 0 {
			continue
		}
		for _, mod := range s.numlockVariants(kb.Mod) {
			xproto.GrabKey(s.X.Conn(), true, s.root, mod, code,
				xproto.GrabModeAsync, xproto.GrabModeAsync)
		}
	}
}

// numlockVariants returns mod combined with every Lock/Num-Lock bit
// combination, matching dwm's grabkeys() four-fold grab.
func (s *Server) numlockVariants(mod uint16) []uint16 {
	return []uint16{
		mod,
		mod | xproto.ModMaskLock,
		mod | s.numlockMask,
		mod | s.numlockMask | xproto.ModMaskLock,
	}
}

func (s *Server) NumlockMask() uint16 { return s.numlockMask }

// RefreshNumlockMask scans the server's modifier map for the keycode
// bound to XK_Num_Lock and records which ModN bit it lives under,
// matching dwm's updatenumlockmask().
func (s *Server) RefreshNumlockMask() {
	reply, err := xproto.GetModifierMapping(s.X.Conn()).Reply()
	if err != nil || reply == nil {
		return
	}
	numlockCode := keybind.KeysymToKeycode(s.X, xkNumLock)
	perMod := int(reply.KeycodesPerModifier)
	for i := 0; i < 8; i++ {
		for j := 0; j < perMod; j++ {
			if reply.Keycodes[i*perMod+j] == numlockCode {
				s.numlockMask = 1 << uint(i)
				return
			}
		}
	}
}

const xkNumLock = 0xff7f

// --- ICCCM/EWMH property access --------------------------------------------

func (s *Server) WMName(win xproto.Window) string {
	if name, err := ewmh.WmNameGet(s.X, win); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(s.X, win)
	return name
}

func (s *Server) WMClass(win xproto.Window) (class, instance string) {
	c, err := icccm.WmClassGet(s.X, win)
	if err != nil || c == nil {
		return "", ""
	}
	return c.Class, c.Instance
}

func (s *Server) WMNormalHints(win xproto.Window) geom.NormalHints {
	nh, err := icccm.WmNormalHintsGet(s.X, win)
	if err != nil || nh == nil {
		return geom.NormalHints{}
	}
	h := geom.NormalHints{
		BaseW: nh.BaseWidth, BaseH: nh.BaseHeight,
		IncW: nh.WidthInc, IncH: nh.HeightInc,
		MinW: nh.MinWidth, MinH: nh.MinHeight,
		MaxW: nh.MaxWidth, MaxH: nh.MaxHeight,
	}
	if nh.MinAspectNum != 0 && nh.MinAspectDen != 0 {
		h.MinAspect = float64(nh.MinAspectNum) / float64(nh.MinAspectDen)
	}
	if nh.MaxAspectNum != 0 && nh.MaxAspectDen != 0 {
		h.MaxAspect = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
	}
	return h
}

func (s *Server) WMHints(win xproto.Window) (urgent, neverFocus bool) {
	h, err := icccm.WmHintsGet(s.X, win)
	if err != nil || h == nil {
		return false, false
	}
	urgent = h.Flags&icccm.HintUrgency != 0
	neverFocus = h.Flags&icccm.HintInput != 0 && h.Input == 0
	return urgent, neverFocus
}

func (s *Server) ClearUrgent(win xproto.Window) {
	h, err := icccm.WmHintsGet(s.X, win)
	if err != nil || h == nil {
		return
	}
	h.Flags &^= icccm.HintUrgency
	icccm.WmHintsSet(s.X, win, h)
}

func (s *Server) WMTransientFor(win xproto.Window) (xproto.Window, bool) {
	t, err := icccm.WmTransientForGet(s.X, win)
	if err != nil || t == 0 {
		return 0, false
	}
	return t, true
}

func (s *Server) WMProtocols(win xproto.Window) []string {
	p, _ := icccm.WmProtocolsGet(s.X, win)
	return p
}

func (s *Server) SendWMProtocol(win xproto.Window, protocolAtom string) {
	ewmh.ClientEvent(s.X, win, "WM_PROTOCOLS", protocolAtom, int(xproto.TimeCurrentTime))
}

func (s *Server) IsDialogType(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(s.X, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DIALOG" {
			return true
		}
	}
	return false
}

func (s *Server) MotifRequestsNoDecoration(win xproto.Window) bool {
	hints, err := motif.WmHintsGet(s.X, win)
	if err != nil || hints == nil {
		return false
	}
	return hints.Flags&motif.HintDecorations != 0 && hints.Decoration == 0
}

func (s *Server) SetWMState(win xproto.Window, state int) {
	icccm.WmStateSet(s.X, win, &icccm.WmState{State: uint(state)})
}

func (s *Server) SetNetWMState(win xproto.Window, fullscreen bool) {
	if fullscreen {
		ewmh.WmStateSet(s.X, win, []string{"_NET_WM_STATE_FULLSCREEN"})
	} else {
		ewmh.WmStateSet(s.X, win, []string{})
	}
}

func (s *Server) SetNetClientList(wins []xproto.Window) {
	ewmh.ClientListSet(s.X, wins)
}

func (s *Server) SetNetActiveWindow(win xproto.Window, clear bool) {
	if clear {
		ewmh.ActiveWindowSet(s.X, 0)
		return
	}
	ewmh.ActiveWindowSet(s.X, win)
}

func (s *Server) SetSupported(atoms []string) {
	ewmh.SupportedSet(s.X, atoms)
}

func (s *Server) SetRootName(name string) {
	icccm.WmNameSet(s.X, s.root, name)
}

func (s *Server) RootName() string {
	name, _ := icccm.WmNameGet(s.X, s.root)
	return name
}

// --- cursors, grabs, sync ---------------------------------------------------

func (s *Server) SetCursor(win xproto.Window, which wm.CursorKind) {
	cur, ok := s.cursors[which]
	if !ok {
		return
	}
	xproto.ChangeWindowAttributes(s.X.Conn(), win, xproto.CwCursor, []uint32{uint32(cur)})
}

func (s *Server) GrabServer()   { xproto.GrabServer(s.X.Conn()) }
func (s *Server) UngrabServer() { xproto.UngrabServer(s.X.Conn()) }
func (s *Server) Sync()         { s.X.Sync() }

// --- mouse drag --------------------------------------------------------------

func (s *Server) GrabPointerForDrag(cursor wm.CursorKind) bool {
	cur := s.cursors[cursor]
	mask := uint16(xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion)
	reply, err := xproto.GrabPointer(s.X.Conn(), false, s.root, mask,
		xproto.GrabModeAsync, xproto.GrabModeAsync, 0, cur, xproto.TimeCurrentTime).Reply()
	return err == nil && reply != nil && reply.Status == xproto.GrabStatusSuccess
}

func (s *Server) UngrabPointer() {
	xproto.UngrabPointer(s.X.Conn(), xproto.TimeCurrentTime)
}

func (s *Server) WarpPointerToWindowCorner(win xproto.Window, dx, dy int) {
	xproto.WarpPointer(s.X.Conn(), 0, win, 0, 0, 0, 0, int16(dx), int16(dy))
}

// PumpDrag loops XNextEvent until a ButtonRelease arrives, throttling
// onMotion to at most one call per ~16ms and dispatching any
// ConfigureRequest/Expose/MapRequest through dispatch exactly as dwm's
// movemouse/resizemouse re-enter handler[ev.type] mid-grab. dispatch is
// set once via SetInlineDispatch by cmd/gowm's startup sequence, which
// is the same table the main event loop installs.
func (s *Server) PumpDrag(onMotion func(x, y int)) {
	const throttleMillis = 1000 / 60
	var lastTime xproto.Timestamp
	for {
		ev, xerr := s.X.Conn().WaitForEvent()
		if xerr != nil {
			continue
		}
		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			if e.Time-lastTime <= throttleMillis {
				continue
			}
			lastTime = e.Time
			onMotion(int(e.RootX), int(e.RootY))
		case xproto.ButtonReleaseEvent:
			return
		default:
			if s.inlineDispatch != nil {
				s.inlineDispatch(ev)
			}
		}
	}
}

// SetInlineDispatch wires f as the handler PumpDrag calls for any
// event that isn't motion/release, so ConfigureRequest/Expose/
// MapRequest keep working mid-drag; cmd/gowm's startup sequence passes
// the same dispatch closure the main event loop uses.
func (s *Server) SetInlineDispatch(f func(interface{})) { s.inlineDispatch = f }

// --- process spawn ----------------------------------------------------------

func (s *Server) Spawn(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd.Start()
}

func (s *Server) KillClient(win xproto.Window) {
	xproto.KillClient(s.X.Conn(), uint32(win))
}

// parseColor resolves a "#rrggbb" config string to an allocated pixel
// value on the default colormap, the way dwm's drw_clr_create does via
// XftColorAllocName.
func parseColor(X *xgbutil.XUtil, hex string) (uint32, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, err
	}
	r := uint16((v>>16)&0xff) * 0x101
	g := uint16((v>>8)&0xff) * 0x101
	b := uint16(v&0xff) * 0x101
	reply, err := xproto.AllocColor(X.Conn(), X.Screen().DefaultColormap, r, g, b).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Pixel, nil
}
