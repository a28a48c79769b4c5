// Package config holds the compile-time tables the core reads: tags,
// rules, layouts, keys, buttons and colour schemes (spec §6.3). These
// are Go literals, not files, for the same reason dwm's config.h is a
// recompiled header: several fields carry behaviour (arrange
// functions, action closures) that cannot round-trip through a plain
// data format. See Overrides for the one layer that does load from
// disk.
package config

import "github.com/gowm/gowm/internal/layout"

// ClickRegion enumerates the bar/window areas wm's OnButtonPress
// dispatches on.
type ClickRegion int

const (
	ClickTagBar ClickRegion = iota
	ClickLayoutSymbol
	ClickStatusText
	ClickWinTitle
	ClickClientWindow
	ClickRootWindow
)

// ArgKind tags the union Arg carries, mirroring dwm's `Arg` union of
// int/uint/float/pointer.
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgInt
	ArgUint
	ArgFloat
	ArgLayout
	ArgStrings
)

// Arg is the tagged-union action argument spec §6.5 names.
type Arg struct {
	Kind    ArgKind
	Int     int
	Uint    uint32
	Float   float64
	Layout  *layout.Layout
	Strings []string
}

// Action is one of the user actions invokable from keys/buttons
// (spec §6.5). Receiver and argument are supplied by the dispatcher.
type Action func(world WorldControl, arg Arg)

// WorldControl is the subset of *wm.World that key/button actions are
// allowed to call; defined here (rather than importing internal/wm) to
// keep config free of a dependency on the model it configures.
type WorldControl interface {
	View(mask uint32)
	ToggleView(mask uint32)
	Tag(mask uint32)
	ToggleTag(mask uint32)
	FocusStack(dir int)
	FocusMon(index int)
	TagMon(index int)
	Zoom()
	KillClient()
	SetLayout(l *layout.Layout)
	SetMasterFactor(arg Arg)
	ToggleFloating()
	ToggleBar()
	MoveMouse()
	ResizeMouse()
	Spawn(argv []string)
	Quit()
}

// KeyBinding is one (modifier, keysym, action, arg) row of spec §6.3's
// Keys table.
type KeyBinding struct {
	Mod    uint16
	Keysym uint32
	Action Action
	Arg    Arg
}

// ButtonBinding is one (region, modifier, button, action, arg) row.
type ButtonBinding struct {
	Click  ClickRegion
	Mod    uint16
	Button uint8
	Action Action
	Arg    Arg
}

// Rule matches a newly managed client by class/instance/title
// substring (spec §9 "Rules as data" — `strstr`-style containment,
// an empty field matches anything).
type Rule struct {
	Class      string // empty matches anything
	Instance   string
	Title      string
	TagMask    uint32
	IsFloating bool
	Monitor    int // -1 keeps default
}

// ColorScheme is a (border, foreground, background) hex triple.
type ColorScheme struct {
	Border     string
	Foreground string
	Background string
}

// Config bundles every static table spec §6.3 names, plus the scalar
// knobs. The zero value is never used directly; Default returns a
// populated instance and Overrides (config/toml.go) may patch the
// scalar fields from a TOML file.
type Config struct {
	Tags    []string
	Rules   []Rule
	Layouts []layout.Layout
	Keys    []KeyBinding
	Buttons []ButtonBinding
	Schemes map[string]ColorScheme // "normal", "selected" at minimum

	MasterFactor float64
	MasterCount  int
	BorderPixel  int
	SnapPixels   int
	WindowGap    int
	ShowBar        bool
	TopBar         bool
	ResizeHints    bool
	LockFullscreen bool
	Font           string
}

const (
	SchemeNormal   = "normal"
	SchemeSelected = "selected"
)

// MaxTags bounds the workspace count per spec invariant I6: a u32
// bitmask needs len(Tags) <= 31.
const MaxTags = 31
