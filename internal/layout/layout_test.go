package layout

import (
	"testing"

	"github.com/gowm/gowm/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct{ bw int }

func (f fakeClient) BorderWidth() int { return f.bw }

type recorder struct {
	rects []geom.Rect
}

func (r *recorder) Resize(i int, rect geom.Rect) {
	for len(r.rects) <= i {
		r.rects = append(r.rects, geom.Rect{})
	}
	r.rects[i] = rect
}

// TestTileScenarioS1 reproduces spec scenario S1: two clients, mfact=0.5,
// nmaster=1, border=1, on a 1920x1080 monitor whose window area excludes
// a 14px top bar.
func TestTileScenarioS1(t *testing.T) {
	ws := Workspace{
		Clients:     []Tileable{fakeClient{bw: 1}, fakeClient{bw: 1}},
		WindowRect:  geom.Rect{X: 0, Y: 14, W: 1920, H: 1066},
		MasterCount: 1,
		MasterFrac:  0.5,
	}
	rec := &recorder{}
	sym := Tile(ws, rec)
	assert.Equal(t, "[]=", sym)
	require.Len(t, rec.rects, 2)
	assert.Equal(t, geom.Rect{X: 0, Y: 14, W: 958, H: 1064}, rec.rects[0])
	assert.Equal(t, geom.Rect{X: 960, Y: 14, W: 958, H: 1064}, rec.rects[1])
}

func TestMonocleSymbolReflectsVisibleCount(t *testing.T) {
	ws := Workspace{
		Clients:    []Tileable{fakeClient{}, fakeClient{}, fakeClient{}},
		WindowRect: geom.Rect{X: 0, Y: 14, W: 1920, H: 1066},
	}
	rec := &recorder{}
	sym := Monocle(ws, rec)
	assert.Equal(t, "[3]", sym)
	for _, rect := range rec.rects {
		assert.Equal(t, geom.Rect{X: 0, Y: 14, W: 1920, H: 1066}, rect)
	}
}

func TestTileNoTiledClientsReturnsSymbolWithoutResizing(t *testing.T) {
	ws := Workspace{WindowRect: geom.Rect{W: 100, H: 100}}
	rec := &recorder{}
	sym := Tile(ws, rec)
	assert.Equal(t, "[]=", sym)
	assert.Empty(t, rec.rects)
}

func TestBStackSingleMasterFillsWidth(t *testing.T) {
	ws := Workspace{
		Clients:     []Tileable{fakeClient{bw: 1}},
		WindowRect:  geom.Rect{X: 0, Y: 0, W: 800, H: 600},
		MasterCount: 1,
		MasterFrac:  0.5,
	}
	rec := &recorder{}
	sym := BStack(ws, rec)
	assert.Equal(t, "TTT", sym)
	require.Len(t, rec.rects, 1)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 798, H: 598}, rec.rects[0])
}

func TestBStackHorizStacksRemainderVertically(t *testing.T) {
	ws := Workspace{
		Clients:     []Tileable{fakeClient{bw: 0}, fakeClient{bw: 0}, fakeClient{bw: 0}},
		WindowRect:  geom.Rect{X: 0, Y: 0, W: 900, H: 900},
		MasterCount: 1,
		MasterFrac:  (1.0 / 3.0),
	}
	rec := &recorder{}
	sym := BStackHoriz(ws, rec)
	assert.Equal(t, "===", sym)
	require.Len(t, rec.rects, 3)
	// master row occupies the top third
	assert.Equal(t, 0, rec.rects[0].Y)
	// the two stacked clients share the remaining height in a single column
	assert.Equal(t, rec.rects[1].X, rec.rects[2].X)
	assert.Less(t, rec.rects[1].Y, rec.rects[2].Y)
}
