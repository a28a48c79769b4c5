package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/gowm/gowm/internal/geom"
)

// Client represents one managed top-level window (spec §3 "Client").
// next/snext are the two singly-linked fields backing the arrangement
// list and the focus-recency stack respectively; the spec's §9 Design
// Notes choice (a) — intrusive linked lists over an arena-with-indices
// model, see SPEC_FULL.md §3.
type Client struct {
	Window xproto.Window
	Title  string // bounded to 256 bytes by truncateTitle

	Geometry geom.Rect
	Saved    geom.Rect // prior geometry, for fullscreen/float restoration

	BorderW      int
	SavedBorderW int

	Hints geom.NormalHints

	TagMask uint32

	IsFixed            bool
	IsFloating         bool
	IsUrgent           bool
	NeverFocus         bool
	IsFullscreen       bool
	PriorFloatingState bool

	Mon *Monitor

	next  *Client // arrangement-order list
	snext *Client // focus-recency stack
}

// BorderWidth satisfies layout.Tileable.
func (c *Client) BorderWidth() int { return c.BorderW }

const maxTitleBytes = 256

func truncateTitle(title string) string {
	if len(title) <= maxTitleBytes {
		return title
	}
	// Truncate on a rune boundary so we never split a UTF-8 sequence.
	b := []byte(title)[:maxTitleBytes]
	for len(b) > 0 && b[len(b)-1]&0xC0 == 0x80 {
		b = b[:len(b)-1]
	}
	return string(b)
}

// visible reports whether c is a member of the given tagset — spec
// invariant I2.
func (c *Client) visible(tagset uint32) bool {
	return c.TagMask&tagset != 0
}

// Fixed derives spec's is_fixed flag from the client's negotiated hints.
func (c *Client) refreshFixed() {
	c.IsFixed = c.Hints.Fixed()
}
