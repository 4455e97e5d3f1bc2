package model

import (
	"fmt"
	"math"
)

// Geometry limits for pills, in board pixels.
const (
	MinPill    = 40.0 // Smallest side of a freshly drawn pill
	MinSplit   = 20.0 // Smallest side a split may produce along the cut axis
	PillRadius = 20.0 // Corner radius of a rounded corner
	NudgeGap   = 2.0  // Gap left between a nudged pill and the click point
	DragJitter = 0.5  // Movement below this is not considered a drag
)

// PillID identifies a pill for its whole lifetime. Zero means "no pill".
type PillID int

// NoPill is the zero PillID, used when a press lands on the empty board.
const NoPill PillID = 0

// Point2D represents a position in board-local coordinates (pixels).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns Width * Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// TopLeft returns the anchor corner.
func (r Rect) TopLeft() Point2D { return Point2D{X: r.X, Y: r.Y} }

// InsideX reports whether x lies strictly between the left and right edges.
func (r Rect) InsideX(x float64) bool { return x > r.X && x < r.Right() }

// InsideY reports whether y lies strictly between the top and bottom edges.
func (r Rect) InsideY(y float64) bool { return y > r.Y && y < r.Bottom() }

// Contains reports whether p lies strictly inside r. Points on an edge are outside.
func (r Rect) Contains(p Point2D) bool {
	return r.InsideX(p.X) && r.InsideY(p.Y)
}

// ContainsInclusive reports whether p lies inside r or on its edge.
// This matches what a renderer considers the pill's clickable surface.
func (r Rect) ContainsInclusive(p Point2D) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Within reports whether r lies fully inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("%.0fx%.0f@(%.0f,%.0f)", r.Width, r.Height, r.X, r.Y)
}

// Corners records which corners of a pill are rounded.
type Corners struct {
	TL bool `json:"tl"`
	TR bool `json:"tr"`
	BL bool `json:"bl"`
	BR bool `json:"br"`
}

// AllRounded returns corners with every flag set, as on a freshly drawn pill.
func AllRounded() Corners {
	return Corners{TL: true, TR: true, BL: true, BR: true}
}

// Count returns how many corners are rounded.
func (c Corners) Count() int {
	n := 0
	for _, v := range []bool{c.TL, c.TR, c.BL, c.BR} {
		if v {
			n++
		}
	}
	return n
}

// Subset reports whether every corner rounded in c is also rounded in parent.
func (c Corners) Subset(parent Corners) bool {
	return (!c.TL || parent.TL) && (!c.TR || parent.TR) &&
		(!c.BL || parent.BL) && (!c.BR || parent.BR)
}

// String returns the rounded corners as a compact code, e.g. "tl,br" or "-".
func (c Corners) String() string {
	s := ""
	add := func(on bool, name string) {
		if !on {
			return
		}
		if s != "" {
			s += ","
		}
		s += name
	}
	add(c.TL, "tl")
	add(c.TR, "tr")
	add(c.BL, "bl")
	add(c.BR, "br")
	if s == "" {
		return "-"
	}
	return s
}

// Pill is a rectangle with independently rounded corners.
type Pill struct {
	ID      PillID  `json:"id"`
	Rect    Rect    `json:"rect"`
	Color   Color   `json:"color"`
	Corners Corners `json:"corners"`
}

// NewPill returns a freshly drawn pill with all four corners rounded.
func NewPill(id PillID, r Rect, c Color) Pill {
	return Pill{ID: id, Rect: r, Color: c, Corners: AllRounded()}
}

// Board is the drawing surface. A zero-sized board is not mounted yet.
type Board struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewBoard returns a board of the given size.
func NewBoard(w, h float64) Board {
	return Board{Width: w, Height: h}
}

// Mounted reports whether the board has a usable size.
func (b Board) Mounted() bool {
	return b.Width > 0 && b.Height > 0
}

// Bounds returns the board rectangle anchored at the origin.
func (b Board) Bounds() Rect {
	return Rect{Width: b.Width, Height: b.Height}
}

// ClampPoint pulls p onto the board.
func (b Board) ClampPoint(p Point2D) Point2D {
	return Point2D{X: Clamp(p.X, 0, b.Width), Y: Clamp(p.Y, 0, b.Height)}
}

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins, so a
// shape larger than the board is pinned to the origin.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Radii returns the corner radius for each corner in the order top-left,
// top-right, bottom-right, bottom-left. Square corners have radius 0 and the
// radius never exceeds half of either side.
func (p Pill) Radii() (tl, tr, br, bl float64) {
	r := PillRadius
	if half := p.Rect.Width / 2; half < r {
		r = half
	}
	if half := p.Rect.Height / 2; half < r {
		r = half
	}
	pick := func(on bool) float64 {
		if on {
			return r
		}
		return 0
	}
	return pick(p.Corners.TL), pick(p.Corners.TR), pick(p.Corners.BR), pick(p.Corners.BL)
}

// Covers reports whether pt lies on the pill's drawn surface: within its
// bounds, edges included, but not in the cut-away tip of a rounded corner.
func (p Pill) Covers(pt Point2D) bool {
	tl, tr, br, bl := p.Radii()
	return InsideRounded(p.Rect.Width, p.Rect.Height, [4]float64{tl, tr, br, bl},
		pt.X-p.Rect.X, pt.Y-p.Rect.Y, 0)
}

// InsideRounded reports whether (x, y) lies inside a w x h rounded rectangle
// anchored at the origin and shrunk by inset on every side. radii are ordered
// top-left, top-right, bottom-right, bottom-left; a zero radius is a square
// corner.
func InsideRounded(w, h float64, radii [4]float64, x, y, inset float64) bool {
	if x < inset || y < inset || x > w-inset || y > h-inset {
		return false
	}
	centers := [4][2]float64{
		{radii[0], radii[0]},
		{w - radii[1], radii[1]},
		{w - radii[2], h - radii[2]},
		{radii[3], h - radii[3]},
	}
	for i, r := range radii {
		if r <= 0 {
			continue
		}
		cx, cy := centers[i][0], centers[i][1]
		inCornerX := (i == 0 || i == 3) && x < cx || (i == 1 || i == 2) && x > cx
		inCornerY := (i == 0 || i == 1) && y < cy || (i == 2 || i == 3) && y > cy
		if inCornerX && inCornerY {
			dx, dy := x-cx, y-cy
			limit := math.Max(r-inset, 0)
			if dx*dx+dy*dy > limit*limit {
				return false
			}
		}
	}
	return true
}
