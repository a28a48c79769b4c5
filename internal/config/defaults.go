package config

import "github.com/gowm/gowm/internal/layout"

// Default returns the compiled-in configuration: nine tags, a couple
// of sample rules, the five built-in layouts, the colour schemes and
// the scalar knobs — the same shape as dwm's config.h, translated to
// Go literals per spec §6.3. Keys and Buttons are left empty; callers
// fill them from DefaultKeys and DefaultButtons.
func Default() Config {
	layouts := layout.Builtin()

	return Config{
		Tags:    []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Layouts: layouts,
		Rules: []Rule{
			{Class: "Gimp", IsFloating: true, Monitor: -1},
			{Class: "Firefox", TagMask: 1 << 8, Monitor: -1},
		},
		Schemes: map[string]ColorScheme{
			SchemeNormal:   {Border: "#444444", Foreground: "#bbbbbb", Background: "#222222"},
			SchemeSelected: {Border: "#005577", Foreground: "#eeeeee", Background: "#005577"},
		},
		MasterFactor:   0.55,
		MasterCount:    1,
		BorderPixel:    1,
		SnapPixels:     32,
		WindowGap:      6,
		ShowBar:        true,
		TopBar:         true,
		ResizeHints:    true,
		LockFullscreen: true,
		Font:           "monospace:size=10",
	}
}

// ModKey is the modifier every non-movement binding below is chorded
// with (Mod4, i.e. the "super"/"windows" key) — dwm's MODKEY.
const ModKey = ModMask4

// X11 modifier bit values (xproto.ModMaskShift and friends), named
// here so config literals stay readable without importing xproto.
const (
	ModMaskShift = 1 << 0
	ModMaskCtrl  = 1 << 2
	ModMask1     = 1 << 3 // Alt
	ModMask4     = 1 << 6 // Super
)

// DefaultKeys builds the key table: per-tag view/toggleview/tag/toggletag
// quadruplets (dwm's TAGKEYS macro) plus the fixed navigation/layout keys.
// keysym values are left as the plain X11 keysym constants a real build
// would import from xgbutil/keybind's keysym tables; spelled out as
// named constants here to keep this table self-contained.
func DefaultKeys(tags []string, layouts []layout.Layout) []KeyBinding {
	const (
		xkLeft   = 0xff51
		xkRight  = 0xff53
		xkReturn = 0xff0d
		xkTab    = 0xff09
		xkSpace  = 0x0020
		xkDelete = 0xffff
		xkPlus   = 0x002b
		xkMinus  = 0x002d
		xk0      = 0x0030
		xk1      = 0x0031
	)

	keys := []KeyBinding{
		{Mod: ModKey, Keysym: xkReturn, Action: actionSpawn, Arg: Arg{Kind: ArgStrings, Strings: []string{"dmenu_run"}}},
		{Mod: ModKey, Keysym: xkLeft, Action: actionFocusStack, Arg: Arg{Kind: ArgInt, Int: -1}},
		{Mod: ModKey, Keysym: xkRight, Action: actionFocusStack, Arg: Arg{Kind: ArgInt, Int: +1}},
		{Mod: ModKey, Keysym: xkPlus, Action: actionSetMFact, Arg: Arg{Kind: ArgFloat, Float: +0.05}},
		{Mod: ModKey, Keysym: xkMinus, Action: actionSetMFact, Arg: Arg{Kind: ArgFloat, Float: -0.05}},
		{Mod: ModKey, Keysym: xkReturn, Action: actionZoom},
		{Mod: ModKey, Keysym: xkTab, Action: actionView},
		{Mod: ModKey, Keysym: xkDelete, Action: actionKillClient},
		{Mod: ModKey, Keysym: xkSpace, Action: actionSetLayout, Arg: Arg{Kind: ArgLayout, Layout: nil}},
		{Mod: ModKey | ModMaskShift, Keysym: xkSpace, Action: actionToggleFloating},
		{Mod: ModKey, Keysym: xk0, Action: actionView, Arg: Arg{Kind: ArgUint, Uint: ^uint32(0)}},
		{Mod: ModKey | ModMaskShift, Keysym: xk0, Action: actionTag, Arg: Arg{Kind: ArgUint, Uint: ^uint32(0)}},
		{Mod: ModKey | ModMaskShift, Keysym: xkReturn, Action: actionQuit},
	}
	for i := range layouts {
		keys = append(keys, KeyBinding{
			Mod:    ModKey,
			Keysym: uint32(0x0074 + i), // consecutive letters from 't': 't','u','v','w','x'
			Action: actionSetLayout,
			Arg:    Arg{Kind: ArgLayout, Layout: &layouts[i]},
		})
	}
	for i, tagName := range tags {
		_ = tagName
		if i > 9 {
			break
		}
		sym := uint32(xk1 + i)
		mask := uint32(1) << uint(i)
		keys = append(keys,
			KeyBinding{Mod: ModKey, Keysym: sym, Action: actionView, Arg: Arg{Kind: ArgUint, Uint: mask}},
			KeyBinding{Mod: ModKey | ModMaskCtrl, Keysym: sym, Action: actionToggleView, Arg: Arg{Kind: ArgUint, Uint: mask}},
			KeyBinding{Mod: ModKey | ModMaskShift, Keysym: sym, Action: actionTag, Arg: Arg{Kind: ArgUint, Uint: mask}},
			KeyBinding{Mod: ModKey | ModMaskCtrl | ModMaskShift, Keysym: sym, Action: actionToggleTag, Arg: Arg{Kind: ArgUint, Uint: mask}},
		)
	}
	return keys
}

// DefaultButtons mirrors dwm's buttons[] table: clicking a tag cell
// views/tags it, the client window raises+moves/resizes on
// ModKey+drag, middle/right click toggles floating/zooms.
func DefaultButtons() []ButtonBinding {
	const btnLeft, btnMiddle, btnRight = 1, 2, 3
	return []ButtonBinding{
		{Click: ClickLayoutSymbol, Button: btnLeft, Action: actionSetLayout},
		{Click: ClickWinTitle, Button: btnMiddle, Action: actionZoom},
		{Click: ClickClientWindow, Mod: ModKey, Button: btnLeft, Action: actionMoveMouse},
		{Click: ClickClientWindow, Mod: ModKey, Button: btnMiddle, Action: actionToggleFloating},
		{Click: ClickClientWindow, Mod: ModKey, Button: btnRight, Action: actionResizeMouse},
		{Click: ClickTagBar, Button: btnLeft, Action: actionView},
		{Click: ClickTagBar, Button: btnMiddle, Action: actionToggleTag},
		{Click: ClickTagBar, Button: btnRight, Action: actionToggleView},
	}
}

func actionSpawn(w WorldControl, a Arg)          { w.Spawn(a.Strings) }
func actionFocusStack(w WorldControl, a Arg)     { w.FocusStack(a.Int) }
func actionSetMFact(w WorldControl, a Arg)       { w.SetMasterFactor(a) }
func actionZoom(w WorldControl, a Arg)           { w.Zoom() }
func actionView(w WorldControl, a Arg)           { w.View(a.Uint) }
func actionKillClient(w WorldControl, a Arg)     { w.KillClient() }
func actionSetLayout(w WorldControl, a Arg)      { w.SetLayout(a.Layout) }
func actionToggleFloating(w WorldControl, a Arg) { w.ToggleFloating() }
func actionTag(w WorldControl, a Arg)            { w.Tag(a.Uint) }
func actionToggleView(w WorldControl, a Arg)     { w.ToggleView(a.Uint) }
func actionToggleTag(w WorldControl, a Arg)      { w.ToggleTag(a.Uint) }
func actionQuit(w WorldControl, a Arg)           { w.Quit() }
func actionMoveMouse(w WorldControl, a Arg)      { w.MoveMouse() }
func actionResizeMouse(w WorldControl, a Arg)    { w.ResizeMouse() }
