package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowm/gowm/internal/geom"
)

func TestIntersectAreaNonOverlappingIsZero(t *testing.T) {
	a := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	b := geom.Rect{X: 200, Y: 200, W: 100, H: 100}
	assert.Equal(t, 0, intersectArea(a, b))
}

func TestIntersectAreaPartialOverlap(t *testing.T) {
	a := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	b := geom.Rect{X: 50, Y: 50, W: 100, H: 100}
	assert.Equal(t, 50*50, intersectArea(a, b))
}

func TestMonitorForRectPicksMaxOverlap(t *testing.T) {
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

	// mostly over the second monitor (only 20px into the first).
	r := geom.Rect{X: 1900, Y: 0, W: 400, H: 400}
	target := w.monitorForRect(r)

	assert.Equal(t, w.Monitors()[1], target)
}

func TestMonitorForRectDefaultsToSelectedWhenNoOverlap(t *testing.T) {
	w, _ := newTestWorld(t, geom.Rect{W: 1920, H: 1080})
	r := geom.Rect{X: -5000, Y: -5000, W: 10, H: 10}

	target := w.monitorForRect(r)

	assert.Equal(t, w.Selected, target)
}

func TestAbsAndMax1(t *testing.T) {
	assert.Equal(t, 5, abs(-5))
	assert.Equal(t, 5, abs(5))
	assert.Equal(t, 1, max1(0))
	assert.Equal(t, 1, max1(-10))
	assert.Equal(t, 42, max1(42))
}
