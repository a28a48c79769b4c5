package geom

// Request is the input to ApplySizeHints: a requested rectangle plus
// enough of the client's state to negotiate it.
type Request struct {
	Current     Rect // the client's current geometry
	BorderWidth int
	Hints       NormalHints
	RespectHints bool // layout's "resizehints" flag, or client is floating/layout is floating
}

// Clip bounds describe where a requested rectangle may not leave:
// the whole screen in interactive (mouse-driven) mode, or a single
// monitor's window area otherwise.
type ClipBounds struct {
	X, Y, W, H int
}

// ApplySizeHints produces the rectangle the manager actually applies,
// following dwm's applysizehints exactly: screen/monitor clipping,
// a minimum-size floor, then (conditionally) ICCCM base/increment/
// aspect/min-max enforcement. changed reports whether the result
// differs from req.Current.
func ApplySizeHints(req Request, x, y, w, h int, interactive bool, clip ClipBounds, barHeight int) (rx, ry, rw, rh int, changed bool) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	bw := req.BorderWidth
	if interactive {
		if x > clip.X+clip.W {
			x = clip.X + clip.W - (w + 2*bw)
		}
		if y > clip.Y+clip.H {
			y = clip.Y + clip.H - (h + 2*bw)
		}
		if x+w+2*bw < clip.X {
			x = clip.X
		}
		if y+h+2*bw < clip.Y {
			y = clip.Y
		}
	} else {
		if x >= clip.X+clip.W {
			x = clip.X + clip.W - (w + 2*bw)
		}
		if y >= clip.Y+clip.H {
			y = clip.Y + clip.H - (h + 2*bw)
		}
		if x+w+2*bw <= clip.X {
			x = clip.X
		}
		if y+h+2*bw <= clip.Y {
			y = clip.Y
		}
	}
	if h < barHeight {
		h = barHeight
	}
	if w < barHeight {
		w = barHeight
	}

	if req.RespectHints {
		nh := req.Hints
		baseIsMin := nh.BaseW == nh.MinW && nh.BaseH == nh.MinH
		if !baseIsMin {
			w -= nh.BaseW
			h -= nh.BaseH
		}
		if nh.MinAspect > 0 && nh.MaxAspect > 0 {
			if nh.MaxAspect < float64(w)/float64(h) {
				w = int(float64(h)*nh.MaxAspect + 0.5)
			} else if nh.MinAspect < float64(h)/float64(w) {
				h = int(float64(w)*nh.MinAspect + 0.5)
			}
		}
		if baseIsMin {
			w -= nh.BaseW
			h -= nh.BaseH
		}
		if nh.IncW != 0 {
			w -= w % nh.IncW
		}
		if nh.IncH != 0 {
			h -= h % nh.IncH
		}
		w = max(w+nh.BaseW, nh.MinW)
		h = max(h+nh.BaseH, nh.MinH)
		if nh.MaxW != 0 {
			w = min(w, nh.MaxW)
		}
		if nh.MaxH != 0 {
			h = min(h, nh.MaxH)
		}
	}

	changed = x != req.Current.X || y != req.Current.Y || w != req.Current.W || h != req.Current.H
	return x, y, w, h, changed
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
