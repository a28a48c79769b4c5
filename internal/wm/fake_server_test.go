package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/gowm/gowm/internal/config"
	"github.com/gowm/gowm/internal/geom"
)

// fakeServer is a recording, in-memory Server double: enough of the
// real xserver.Server's behavior to exercise World's state machine
// without a live X connection, matching spec §8's expectation that
// the model and event logic are testable in isolation.
type fakeServer struct {
	screen geom.Rect
	screens []geom.Rect

	geometry map[xproto.Window]geom.Rect
	border   map[xproto.Window]int
	name     map[xproto.Window]string
	class    map[xproto.Window]string
	instance map[xproto.Window]string
	transientFor map[xproto.Window]xproto.Window
	protocols    map[xproto.Window][]string
	dialog       map[xproto.Window]bool
	hintsUrgent  map[xproto.Window]bool
	hintsNoFocus map[xproto.Window]bool
	tree         []xproto.Window
	overrideRedirect map[xproto.Window]bool
	wmState          map[xproto.Window]int

	mapped   map[xproto.Window]bool
	killed   map[xproto.Window]bool
	spawned  [][]string
	clientList []xproto.Window
	activeWindow xproto.Window
	netState     map[xproto.Window]bool

	pointerX, pointerY int
}

func newFakeServer(screen geom.Rect) *fakeServer {
	return &fakeServer{
		screen:           screen,
		geometry:         map[xproto.Window]geom.Rect{},
		border:           map[xproto.Window]int{},
		name:             map[xproto.Window]string{},
		class:            map[xproto.Window]string{},
		instance:         map[xproto.Window]string{},
		transientFor:     map[xproto.Window]xproto.Window{},
		protocols:        map[xproto.Window][]string{},
		dialog:           map[xproto.Window]bool{},
		hintsUrgent:      map[xproto.Window]bool{},
		hintsNoFocus:     map[xproto.Window]bool{},
		overrideRedirect: map[xproto.Window]bool{},
		wmState:          map[xproto.Window]int{},
		mapped:           map[xproto.Window]bool{},
		killed:           map[xproto.Window]bool{},
		netState:         map[xproto.Window]bool{},
	}
}

func (f *fakeServer) addWindow(win xproto.Window, r geom.Rect) {
	f.tree = append(f.tree, win)
	f.geometry[win] = r
	f.mapped[win] = true
}

func (f *fakeServer) RootGeometry() geom.Rect { return f.screen }
func (f *fakeServer) PhysicalScreens() ([]geom.Rect, error) {
	if f.screens != nil {
		return f.screens, nil
	}
	return []geom.Rect{f.screen}, nil
}
func (f *fakeServer) PointerScreen() geom.Rect { return f.screen }
func (f *fakeServer) QueryPointer() (int, int) { return f.pointerX, f.pointerY }
func (f *fakeServer) WarpPointer(x, y int)     { f.pointerX, f.pointerY = x, y }

func (f *fakeServer) QueryTree() ([]xproto.Window, error) { return f.tree, nil }
func (f *fakeServer) WindowAttributes(win xproto.Window) (overrideRedirect, viewable bool) {
	return f.overrideRedirect[win], f.mapped[win]
}
func (f *fakeServer) WindowGeometry(win xproto.Window) (geom.Rect, int) {
	return f.geometry[win], f.border[win]
}
func (f *fakeServer) WMState(win xproto.Window) int { return f.wmState[win] }
func (f *fakeServer) ConfigureWindow(win xproto.Window, r geom.Rect, borderWidth int) {
	f.geometry[win] = r
	f.border[win] = borderWidth
}
func (f *fakeServer) ConfigureWindowRaw(win xproto.Window, v ConfigureRequestValues) {}
func (f *fakeServer) SendConfigureNotify(win xproto.Window, r geom.Rect, borderWidth int) {}
func (f *fakeServer) MoveResizeWindow(win xproto.Window, r geom.Rect) { f.geometry[win] = r }
func (f *fakeServer) RaiseWindow(win xproto.Window)                  {}
func (f *fakeServer) StackBelow(win, sibling xproto.Window)          {}
func (f *fakeServer) MapWindow(win xproto.Window)                    { f.mapped[win] = true }
func (f *fakeServer) UnmapWindow(win xproto.Window)                  { f.mapped[win] = false }
func (f *fakeServer) SelectInput(win xproto.Window, mask uint32)     {}
func (f *fakeServer) SetBorderWidth(win xproto.Window, width int)    { f.border[win] = width }
func (f *fakeServer) SetBorderColor(win xproto.Window, scheme config.ColorScheme) {}

func (f *fakeServer) SetInputFocus(win xproto.Window) { f.activeWindow = win }
func (f *fakeServer) RevertFocusToRoot()               { f.activeWindow = 0 }
func (f *fakeServer) GrabButtons(win xproto.Window, focused bool) {}
func (f *fakeServer) UngrabAllButtons(win xproto.Window)          {}
func (f *fakeServer) GrabKeys(keys []config.KeyBinding)           {}
func (f *fakeServer) NumlockMask() uint16                         { return 0 }
func (f *fakeServer) RefreshNumlockMask()                         {}

func (f *fakeServer) WMName(win xproto.Window) string { return f.name[win] }
func (f *fakeServer) WMClass(win xproto.Window) (string, string) {
	return f.class[win], f.instance[win]
}
func (f *fakeServer) WMNormalHints(win xproto.Window) geom.NormalHints { return geom.NormalHints{} }
func (f *fakeServer) WMHints(win xproto.Window) (urgent, neverFocus bool) {
	return f.hintsUrgent[win], f.hintsNoFocus[win]
}
func (f *fakeServer) ClearUrgent(win xproto.Window) { f.hintsUrgent[win] = false }
func (f *fakeServer) WMTransientFor(win xproto.Window) (xproto.Window, bool) {
	t, ok := f.transientFor[win]
	return t, ok
}
func (f *fakeServer) WMProtocols(win xproto.Window) []string { return f.protocols[win] }
func (f *fakeServer) SendWMProtocol(win xproto.Window, protocolAtom string) {}
func (f *fakeServer) IsDialogType(win xproto.Window) bool         { return f.dialog[win] }
func (f *fakeServer) MotifRequestsNoDecoration(win xproto.Window) bool { return false }
func (f *fakeServer) SetWMState(win xproto.Window, state int)     { f.wmState[win] = state }
func (f *fakeServer) SetNetWMState(win xproto.Window, fullscreen bool) { f.netState[win] = fullscreen }
func (f *fakeServer) SetNetClientList(wins []xproto.Window)       { f.clientList = wins }
func (f *fakeServer) SetNetActiveWindow(win xproto.Window, clear bool) {
	if clear {
		f.activeWindow = 0
		return
	}
	f.activeWindow = win
}
func (f *fakeServer) SetSupported(atoms []string) {}
func (f *fakeServer) SetRootName(name string)     {}
func (f *fakeServer) RootName() string            { return "" }

func (f *fakeServer) SetCursor(win xproto.Window, which CursorKind) {}
func (f *fakeServer) GrabServer()                                   {}
func (f *fakeServer) UngrabServer()                                 {}
func (f *fakeServer) Sync()                                         {}

func (f *fakeServer) GrabPointerForDrag(cursor CursorKind) bool { return true }
func (f *fakeServer) PumpDrag(onMotion func(x, y int))          {}
func (f *fakeServer) UngrabPointer()                            {}
func (f *fakeServer) WarpPointerToWindowCorner(win xproto.Window, dx, dy int) {}

func (f *fakeServer) Spawn(argv []string) error { f.spawned = append(f.spawned, argv); return nil }
func (f *fakeServer) KillClient(win xproto.Window) { f.killed[win] = true }

var _ Server = (*fakeServer)(nil)
