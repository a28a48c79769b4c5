package wm

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowm/gowm/internal/config"
	"github.com/gowm/gowm/internal/geom"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Keys = config.DefaultKeys(cfg.Tags, cfg.Layouts)
	cfg.Buttons = config.DefaultButtons()
	return &cfg
}

// newTestWorld builds a single-monitor World over a fake server, ready
// for Manage calls — covers the startup sequence SPEC_FULL.md §4.4
// describes (UpdateGeom, select first monitor).
func newTestWorld(t *testing.T, screen geom.Rect) (*World, *fakeServer) {
	t.Helper()
	srv := newFakeServer(screen)
	cfg := testConfig()
	w := NewWorld(srv, cfg)
	w.ScreenW, w.ScreenH = screen.W, screen.H
	w.UpdateGeom()
	require.NotEmpty(t, w.Monitors())
	w.Selected = w.Monitors()[0]
	return w, srv
}

func TestManageAddsClientToArrangementAndFocusesIt(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	win := xproto.Window(1)
	srv.addWindow(win, geom.Rect{X: 0, Y: 0, W: 800, H: 600})

	w.Manage(win)

	c := w.ClientOf(win)
	require.NotNil(t, c)
	assert.Equal(t, w.Selected, c.Mon)
	assert.Equal(t, c, w.Selected.Selected)
	assert.Contains(t, srv.clientList, win)
	assert.Equal(t, NormalState, srv.wmState[win])
	assert.True(t, srv.mapped[win])
}

func TestManageTransientInheritsOwnerMonitorAndTags(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	owner := xproto.Window(1)
	dialog := xproto.Window(2)
	srv.addWindow(owner, geom.Rect{X: 0, Y: 0, W: 800, H: 600})
	srv.addWindow(dialog, geom.Rect{X: 100, Y: 100, W: 300, H: 200})
	srv.transientFor[dialog] = owner
	w.Selected.Tagset[w.Selected.SelTagsetIndex] = 1 << 2

	w.Manage(owner)
	w.Manage(dialog)

	ownerClient := w.ClientOf(owner)
	dialogClient := w.ClientOf(dialog)
	require.NotNil(t, dialogClient)
	assert.Equal(t, ownerClient.Mon, dialogClient.Mon)
	assert.Equal(t, ownerClient.TagMask, dialogClient.TagMask)
	assert.True(t, dialogClient.IsFloating, "a transient window is always managed floating")
}

func TestUnmanageDetachesAndRestoresBorder(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	win := xproto.Window(1)
	srv.addWindow(win, geom.Rect{X: 0, Y: 0, W: 800, H: 600})
	srv.border[win] = 2
	w.Manage(win)
	c := w.ClientOf(win)

	w.Unmanage(c, false)

	assert.Nil(t, w.ClientOf(win))
	assert.Equal(t, 2, srv.border[win], "original border width restored")
	assert.Equal(t, WithdrawnState, srv.wmState[win])
	assert.NotContains(t, srv.clientList, win)
	assert.Nil(t, w.Selected.Selected)
}

func TestUnmanageDestroyedSkipsBorderRestore(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	win := xproto.Window(1)
	srv.addWindow(win, geom.Rect{X: 0, Y: 0, W: 800, H: 600})
	w.Manage(win)
	c := w.ClientOf(win)
	srv.wmState[win] = NormalState

	w.Unmanage(c, true)

	// destroyed: no ConfigureWindow/SetWMState(Withdrawn) round trip.
	assert.Equal(t, NormalState, srv.wmState[win])
}

func TestViewZeroArgSwitchesToPreviouslyViewedTagset(t *testing.T) {
	w, _ := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	m := w.Selected
	initial := m.Tags()

	w.View(1 << 3)
	assert.Equal(t, uint32(1<<3), m.Tags())

	w.View(0) // the "view previous" binding (MODKEY+Tab) passes mask 0
	assert.Equal(t, initial, m.Tags(), "View(0) flips back to the other tagset slot")
}

func TestViewSameTagsetIsANoOp(t *testing.T) {
	w, _ := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	m := w.Selected
	before := m.SelTagsetIndex

	w.View(m.Tags())

	assert.Equal(t, before, m.SelTagsetIndex, "re-viewing the already-visible tagset doesn't flip the slot")
}

func TestToggleTagRefusesToEmptyClientTags(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	win := xproto.Window(1)
	srv.addWindow(win, geom.Rect{X: 0, Y: 0, W: 800, H: 600})
	w.Manage(win)
	c := w.ClientOf(win)
	c.TagMask = 1 << 0

	w.ToggleTag(1 << 0)

	assert.Equal(t, uint32(1<<0), c.TagMask, "would-empty toggle is a no-op")
}

func TestKillClientPrefersWMDeleteProtocolOverForceKill(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	win := xproto.Window(1)
	srv.addWindow(win, geom.Rect{X: 0, Y: 0, W: 800, H: 600})
	srv.protocols[win] = []string{"WM_DELETE_WINDOW"}
	w.Manage(win)

	w.KillClient()

	assert.False(t, srv.killed[win], "a client supporting WM_DELETE_WINDOW is asked, not killed")
}

func TestKillClientForceKillsWhenProtocolUnsupported(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	win := xproto.Window(1)
	srv.addWindow(win, geom.Rect{X: 0, Y: 0, W: 800, H: 600})
	w.Manage(win)

	w.KillClient()

	assert.True(t, srv.killed[win])
}

func TestZoomPromotesSelectedToMaster(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	a, b := xproto.Window(1), xproto.Window(2)
	srv.addWindow(a, geom.Rect{W: 800, H: 600})
	srv.addWindow(b, geom.Rect{W: 800, H: 600})
	w.Manage(a)
	w.Manage(b)
	// b was managed last and is selected/master; focus a, then zoom it.
	w.Focus(w.ClientOf(a))

	w.Zoom()

	tiled := w.Selected.tiledVisible()
	require.Len(t, tiled, 2)
	assert.Equal(t, w.ClientOf(a), tiled[0], "zooming a non-master client promotes it to master")
}

func TestToggleFloatingRefusesFullscreenClient(t *testing.T) {
	w, srv := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	win := xproto.Window(1)
	srv.addWindow(win, geom.Rect{W: 800, H: 600})
	w.Manage(win)
	c := w.ClientOf(win)
	c.IsFullscreen = true

	w.ToggleFloating()

	assert.False(t, c.IsFloating)
}

func TestSendToMonitorMovesClientAndAdoptsTargetTags(t *testing.T) {
	srv := newFakeServer(geom.Rect{W: 1920, H: 1080})
	srv.screens = []geom.Rect{
		{X: 0, Y: 0, W: 1920, H: 1080},
		{X: 1920, Y: 0, W: 1920, H: 1080},
	}
	cfg := testConfig()
	w := NewWorld(srv, cfg)
	w.ScreenW, w.ScreenH = 1920, 1080
	w.UpdateGeom()
	require.Len(t, w.Monitors(), 2)
	w.Selected = w.Monitors()[0]

	win := xproto.Window(1)
	srv.addWindow(win, geom.Rect{W: 800, H: 600})
	w.Manage(win)
	c := w.ClientOf(win)
	target := w.Monitors()[1]

	w.sendToMonitor(c, target)

	assert.Equal(t, target, c.Mon)
	assert.Equal(t, target.Tags(), c.TagMask)
	assert.NotContains(t, w.Monitors()[0].Clients(), c)
	assert.Contains(t, target.Clients(), c)
}

func TestSetMasterFactorClampsToRange(t *testing.T) {
	w, _ := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	m := w.Selected
	m.MasterFraction = 0.88

	w.SetMasterFactor(config.Arg{Kind: config.ArgFloat, Float: 0.05})
	assert.InDelta(t, 0.88, m.MasterFraction, 1e-9, "clamp rejects going over 0.9")
}
