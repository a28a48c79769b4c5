package main

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/gowm/gowm/internal/wm"
	"github.com/gowm/gowm/internal/xserver"
)

// registerHandlers wires one xevent hook per event type the event
// state machine cares about, each decoding the wire event into the
// plain values World's On* methods take. This is the one place in the
// module that touches xgb wire structs directly.
func registerHandlers(srv *xserver.Server, world *wm.World) {
	X := srv.Conn()
	root := srv.RootWindow()

	xevent.MapRequestFun(func(X *xgbutil.XUtil, e xevent.MapRequestEvent) {
		overrideRedirect, _ := srv.WindowAttributes(e.Window)
		world.OnMapRequest(e.Window, overrideRedirect)
	}).Connect(X, root)

	xevent.UnmapNotifyFun(func(X *xgbutil.XUtil, e xevent.UnmapNotifyEvent) {
		world.OnUnmapNotify(e.Window, e.FromConfigure)
	}).Connect(X, root)

	xevent.DestroyNotifyFun(func(X *xgbutil.XUtil, e xevent.DestroyNotifyEvent) {
		world.OnDestroyNotify(e.Window)
	}).Connect(X, root)

	xevent.ConfigureRequestFun(func(X *xgbutil.XUtil, e xevent.ConfigureRequestEvent) {
		world.OnConfigureRequest(e.Window, configureRequestValues(xproto.ConfigureRequestEvent(e)))
	}).Connect(X, root)

	xevent.ConfigureNotifyFun(func(X *xgbutil.XUtil, e xevent.ConfigureNotifyEvent) {
		if e.Window == root {
			world.OnConfigureNotifyRoot(int(e.Width), int(e.Height))
		}
	}).Connect(X, root)

	xevent.ClientMessageFun(func(X *xgbutil.XUtil, e xevent.ClientMessageEvent) {
		name, err := xprop.AtomName(X, e.Type)
		if err != nil {
			return
		}
		action := int(e.Data.Data32[0])
		prop1, _ := xprop.AtomName(X, xproto.Atom(e.Data.Data32[1]))
		prop2, _ := xprop.AtomName(X, xproto.Atom(e.Data.Data32[2]))
		world.OnClientMessage(e.Window, name, action, prop1, prop2)
	}).Connect(X, root)

	xevent.PropertyNotifyFun(func(X *xgbutil.XUtil, e xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(X, e.Atom)
		if err != nil {
			return
		}
		world.OnPropertyNotify(e.Window, name, e.State == xproto.PropertyDelete)
	}).Connect(X, root)

	xevent.ButtonPressFun(func(X *xgbutil.XUtil, e xevent.ButtonPressEvent) {
		world.OnButtonPress(e.Event, int(e.EventX), e.Detail, e.State)
	}).Connect(X, root)

	var lastMotionMon *wm.Monitor
	xevent.MotionNotifyFun(func(X *xgbutil.XUtil, e xevent.MotionNotifyEvent) {
		lastMotionMon = world.OnMotionNotify(int(e.RootX), int(e.RootY), lastMotionMon)
	}).Connect(X, root)

	xevent.EnterNotifyFun(func(X *xgbutil.XUtil, e xevent.EnterNotifyEvent) {
		normalMode := e.Mode == xproto.NotifyModeNormal
		inferior := e.Detail == xproto.NotifyDetailInferior
		world.OnEnterNotify(e.Event, normalMode, inferior)
	}).Connect(X, root)

	xevent.FocusInFun(func(X *xgbutil.XUtil, e xevent.FocusInEvent) {
		world.OnFocusIn(e.Event)
	}).Connect(X, root)

	xevent.KeyPressFun(func(X *xgbutil.XUtil, e xevent.KeyPressEvent) {
		keysym := srv.KeysymForKeycode(e.Detail)
		world.OnKeyPress(keysym, e.State)
		if !world.Running {
			xevent.Quit(X)
		}
	}).Connect(X, root)

	xevent.MappingNotifyFun(func(X *xgbutil.XUtil, e xevent.MappingNotifyEvent) {
		world.OnMappingNotify()
	}).Connect(X, root)

	xevent.ExposeFun(func(X *xgbutil.XUtil, e xevent.ExposeEvent) {
		world.OnExpose(e.Window, int(e.Count))
	}).Connect(X, root)
}

// dispatch replays any event PumpDrag sees mid-drag through the same
// decode-and-call path registerHandlers wires up, so a ConfigureRequest
// or Expose arriving during a mouse drag is still honored immediately
// instead of queued — dwm's movemouse/resizemouse re-entering
// handler[ev.type].
func dispatch(world *wm.World, ev interface{}) {
	switch e := ev.(type) {
	case xproto.ConfigureRequestEvent:
		world.OnConfigureRequest(e.Window, configureRequestValues(e))
	case xproto.MapRequestEvent:
		overrideRedirect, _ := world.Srv.WindowAttributes(e.Window)
		world.OnMapRequest(e.Window, overrideRedirect)
	case xproto.ExposeEvent:
		world.OnExpose(e.Window, int(e.Count))
	}
}

func configureRequestValues(e xproto.ConfigureRequestEvent) wm.ConfigureRequestValues {
	var v wm.ConfigureRequestValues
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		v.Mask |= wm.ConfigureReqX
		v.X = int(e.X)
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		v.Mask |= wm.ConfigureReqY
		v.Y = int(e.Y)
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		v.Mask |= wm.ConfigureReqWidth
		v.Width = int(e.Width)
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		v.Mask |= wm.ConfigureReqHeight
		v.Height = int(e.Height)
	}
	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		v.Mask |= wm.ConfigureReqBorderWidth
		v.BorderWidth = int(e.BorderWidth)
	}
	v.Sibling = e.Sibling
	v.StackMode = byte(e.StackMode)
	return v
}
