package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySizeHintsIdempotent(t *testing.T) {
	req := Request{
		Current:      Rect{X: 100, Y: 100, W: 640, H: 480},
		BorderWidth:  1,
		RespectHints: true,
		Hints: NormalHints{
			BaseW: 0, BaseH: 0,
			IncW: 16, IncH: 16,
			MinW: 32, MinH: 32,
		},
	}
	clip := ClipBounds{X: 0, Y: 0, W: 1920, H: 1080}

	x1, y1, w1, h1, _ := ApplySizeHints(req, 105, 107, 641, 483, false, clip, 14)
	req.Current = Rect{X: x1, Y: y1, W: w1, H: h1}
	x2, y2, w2, h2, changed2 := ApplySizeHints(req, x1, y1, w1, h1, false, clip, 14)

	require.Equal(t, x1, x2)
	require.Equal(t, y1, y2)
	require.Equal(t, w1, w2)
	require.Equal(t, h1, h2)
	assert.False(t, changed2)
}

func TestApplySizeHintsClampsIncrement(t *testing.T) {
	req := Request{
		RespectHints: true,
		Hints:        NormalHints{IncW: 10, IncH: 10, MinW: 1, MinH: 1},
	}
	clip := ClipBounds{X: 0, Y: 0, W: 1000, H: 1000}
	_, _, w, h, _ := ApplySizeHints(req, 0, 0, 97, 53, false, clip, 0)
	assert.Equal(t, 90, w)
	assert.Equal(t, 50, h)
}

func TestApplySizeHintsRespectsFixedAspect(t *testing.T) {
	req := Request{
		RespectHints: true,
		Hints:        NormalHints{MinAspect: 1, MaxAspect: 1, MinW: 1, MinH: 1},
	}
	clip := ClipBounds{X: 0, Y: 0, W: 2000, H: 2000}
	_, _, w, h, _ := ApplySizeHints(req, 0, 0, 400, 200, false, clip, 0)
	assert.Equal(t, w, h)
}

func TestApplySizeHintsSkippedWhenNotRespected(t *testing.T) {
	req := Request{RespectHints: false, Hints: NormalHints{IncW: 100, IncH: 100, MinW: 1, MinH: 1}}
	clip := ClipBounds{X: 0, Y: 0, W: 2000, H: 2000}
	_, _, w, h, _ := ApplySizeHints(req, 0, 0, 57, 33, false, clip, 0)
	assert.Equal(t, 57, w)
	assert.Equal(t, 33, h)
}

func TestApplySizeHintsEnforcesBarMinimum(t *testing.T) {
	req := Request{}
	clip := ClipBounds{X: 0, Y: 0, W: 2000, H: 2000}
	_, _, w, h, _ := ApplySizeHints(req, 0, 0, 1, 1, false, clip, 14)
	assert.Equal(t, 14, w)
	assert.Equal(t, 14, h)
}

func TestApplySizeHintsClipsOffscreenNonInteractive(t *testing.T) {
	req := Request{Current: Rect{X: 50, Y: 50, W: 100, H: 100}}
	clip := ClipBounds{X: 0, Y: 0, W: 500, H: 500}
	x, y, _, _, changed := ApplySizeHints(req, -500, -500, 100, 100, false, clip, 0)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.True(t, changed)
}
