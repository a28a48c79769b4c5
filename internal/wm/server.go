package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/gowm/gowm/internal/config"
	"github.com/gowm/gowm/internal/geom"
)

// Server is the windowing-server façade the model and event state
// machine are built against (spec §1's "W" collaborator). A real
// instance wraps xgbutil/ewmh/icccm/keybind/mousebind/xinerama/xcursor
// (internal/xserver); tests substitute a recording fake so the model
// and dispatch logic can be exercised without an X connection.
type Server interface {
	// Geometry and topology.
	RootGeometry() geom.Rect
	PhysicalScreens() ([]geom.Rect, error) // xinerama.PhysicalHeads, or a single-screen fallback
	PointerScreen() geom.Rect              // the monitor rect currently under the root pointer
	QueryPointer() (x, y int)
	WarpPointer(x, y int)

	// Window lifecycle and geometry.
	QueryTree() ([]xproto.Window, error)
	WindowAttributes(win xproto.Window) (overrideRedirect, viewable bool)
	WindowGeometry(win xproto.Window) (r geom.Rect, borderWidth int)
	WMState(win xproto.Window) int
	ConfigureWindow(win xproto.Window, r geom.Rect, borderWidth int)
	// ConfigureWindowRaw passes an unmanaged window's ConfigureRequest
	// through verbatim, honoring only the fields v.Mask marks present.
	ConfigureWindowRaw(win xproto.Window, v ConfigureRequestValues)
	SendConfigureNotify(win xproto.Window, r geom.Rect, borderWidth int)
	MoveResizeWindow(win xproto.Window, r geom.Rect)
	RaiseWindow(win xproto.Window)
	StackBelow(win, sibling xproto.Window)
	MapWindow(win xproto.Window)
	UnmapWindow(win xproto.Window)
	SelectInput(win xproto.Window, mask uint32)
	SetBorderWidth(win xproto.Window, width int)
	SetBorderColor(win xproto.Window, scheme config.ColorScheme)

	// Focus and input.
	SetInputFocus(win xproto.Window)
	RevertFocusToRoot()
	GrabButtons(win xproto.Window, focused bool)
	UngrabAllButtons(win xproto.Window)
	GrabKeys(keys []config.KeyBinding)
	NumlockMask() uint16
	RefreshNumlockMask()

	// ICCCM/EWMH property access.
	WMName(win xproto.Window) string
	WMClass(win xproto.Window) (class, instance string)
	WMNormalHints(win xproto.Window) geom.NormalHints
	WMHints(win xproto.Window) (urgent, neverFocus bool)
	ClearUrgent(win xproto.Window)
	WMTransientFor(win xproto.Window) (xproto.Window, bool)
	WMProtocols(win xproto.Window) []string
	SendWMProtocol(win xproto.Window, protocolAtom string)
	IsDialogType(win xproto.Window) bool
	MotifRequestsNoDecoration(win xproto.Window) bool
	SetWMState(win xproto.Window, state int)
	SetNetWMState(win xproto.Window, fullscreen bool)
	SetNetClientList(wins []xproto.Window)
	SetNetActiveWindow(win xproto.Window, clear bool)
	SetSupported(atoms []string)
	SetRootName(name string)
	RootName() string

	// Cursors, grabs, sync.
	SetCursor(win xproto.Window, which CursorKind)
	GrabServer()
	UngrabServer()
	Sync()

	// Mouse drag (move/resize). GrabPointerForDrag grabs the pointer
	// with the given cursor for the duration of the drag; PumpDrag
	// blocks, invoking onMotion at most once per ~16ms as motion events
	// arrive (any interleaved ConfigureRequest/Expose/MapRequest is
	// dispatched by the same handler table the main loop uses, exactly
	// as dwm's movemouse/resizemouse re-enter handler[event.type]), and
	// returns once the button is released.
	GrabPointerForDrag(cursor CursorKind) bool
	PumpDrag(onMotion func(x, y int))
	UngrabPointer()
	WarpPointerToWindowCorner(win xproto.Window, dx, dy int)

	// Process spawn (spec's "S" collaborator).
	Spawn(argv []string) error
	KillClient(win xproto.Window)
}

// CursorKind names the three cursors spec §3's World carries.
type CursorKind int

const (
	CursorNormal CursorKind = iota
	CursorMove
	CursorResize
)

// ICCCM WM_STATE values (spec §6.2).
const (
	WithdrawnState = 0
	NormalState    = 1
	IconicState    = 3
)
