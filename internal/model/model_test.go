package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsIsStrict(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 50, Height: 30}

	assert.True(t, r.Contains(Point2D{X: 20, Y: 20}))
	assert.False(t, r.Contains(Point2D{X: 10, Y: 20}), "left edge is outside")
	assert.False(t, r.Contains(Point2D{X: 60, Y: 20}), "right edge is outside")
	assert.False(t, r.Contains(Point2D{X: 20, Y: 40}), "bottom edge is outside")

	assert.True(t, r.ContainsInclusive(Point2D{X: 10, Y: 40}))
	assert.False(t, r.ContainsInclusive(Point2D{X: 9, Y: 20}))
}

func TestRectWithin(t *testing.T) {
	outer := Rect{Width: 100, Height: 100}
	assert.True(t, Rect{X: 0, Y: 0, Width: 100, Height: 100}.Within(outer))
	assert.False(t, Rect{X: 1, Y: 0, Width: 100, Height: 100}.Within(outer))
}

func TestCorners(t *testing.T) {
	all := AllRounded()
	assert.Equal(t, 4, all.Count())
	assert.Equal(t, "tl,tr,bl,br", all.String())
	assert.Equal(t, "-", Corners{}.String())

	tl := Corners{TL: true}
	assert.True(t, tl.Subset(all))
	assert.False(t, all.Subset(tl))
}

func TestBoardClampPoint(t *testing.T) {
	b := NewBoard(200, 100)
	assert.True(t, b.Mounted())
	assert.False(t, Board{}.Mounted())

	assert.Equal(t, Point2D{X: 0, Y: 100}, b.ClampPoint(Point2D{X: -5, Y: 150}))
	assert.Equal(t, Point2D{X: 50, Y: 50}, b.ClampPoint(Point2D{X: 50, Y: 50}))
}

func TestClampLowerBoundWins(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(10, 0, -20))
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 10.0, Clamp(15, 0, 10))
}

func TestRandomColorRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		c := RandomColor(rng)
		assert.GreaterOrEqual(t, c.Hue, 0.0)
		assert.Less(t, c.Hue, 360.0)
		assert.GreaterOrEqual(t, c.Saturation, 55.0)
		assert.LessOrEqual(t, c.Saturation, 85.0)
		assert.Equal(t, 50.0, c.Lightness)
	}
}

func TestColorRGB(t *testing.T) {
	tests := []struct {
		name    string
		color   Color
		r, g, b uint8
	}{
		{"red", Color{Hue: 0, Saturation: 100, Lightness: 50}, 255, 0, 0},
		{"green", Color{Hue: 120, Saturation: 100, Lightness: 50}, 0, 255, 0},
		{"blue", Color{Hue: 240, Saturation: 100, Lightness: 50}, 0, 0, 255},
		{"grey", Color{Hue: 90, Saturation: 0, Lightness: 50}, 128, 128, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := tt.color.RGB()
			assert.Equal(t, tt.r, r)
			assert.Equal(t, tt.g, g)
			assert.Equal(t, tt.b, b)
		})
	}
}

func TestColorString(t *testing.T) {
	c := Color{Hue: 210.4, Saturation: 70, Lightness: 50}
	assert.Equal(t, "hsl(210, 70%, 50%)", c.String())
}

func TestPillRadii(t *testing.T) {
	p := NewPill(1, Rect{Width: 100, Height: 100}, Color{})
	tl, tr, br, bl := p.Radii()
	assert.Equal(t, []float64{PillRadius, PillRadius, PillRadius, PillRadius}, []float64{tl, tr, br, bl})

	p.Corners = Corners{BR: true}
	p.Rect.Height = 24
	tl, tr, br, bl = p.Radii()
	assert.Equal(t, []float64{0, 0, 12, 0}, []float64{tl, tr, br, bl})
}

func TestInsideRounded(t *testing.T) {
	rounded := [4]float64{20, 20, 20, 20}
	square := [4]float64{}

	tests := []struct {
		name   string
		radii  [4]float64
		x, y   float64
		inset  float64
		inside bool
	}{
		{"center", rounded, 50, 50, 0, true},
		{"rounded corner tip is cut", rounded, 1, 1, 0, false},
		{"square corner tip is kept", square, 1, 1, 0, true},
		{"on the arc", rounded, 20 - 14, 20 - 14, 0, true},
		{"outside the box", rounded, 101, 50, 0, false},
		{"inside the inset band", rounded, 1, 50, 1.5, false},
		{"past the inset band", rounded, 2, 50, 1.5, true},
		{"bottom right only", [4]float64{0, 0, 20, 0}, 99, 99, 0, false},
		{"bottom right only keeps top left", [4]float64{0, 0, 20, 0}, 0.5, 0.5, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, InsideRounded(100, 100, tt.radii, tt.x, tt.y, tt.inset))
		})
	}
}

func TestPillCovers(t *testing.T) {
	p := NewPill(1, Rect{X: 10, Y: 10, Width: 100, Height: 100}, Color{})

	assert.True(t, p.Covers(Point2D{X: 60, Y: 60}))
	assert.True(t, p.Covers(Point2D{X: 10, Y: 60}), "edge midpoint is on the surface")
	assert.False(t, p.Covers(Point2D{X: 10, Y: 10}), "rounded corner tip is cut away")
	assert.False(t, p.Covers(Point2D{X: 108, Y: 108}))
	assert.True(t, p.Covers(Point2D{X: 104, Y: 104}))

	p.Corners = Corners{}
	assert.True(t, p.Covers(Point2D{X: 10, Y: 10}), "square corner tip is kept")
	assert.True(t, p.Covers(Point2D{X: 110, Y: 110}))
	assert.False(t, p.Covers(Point2D{X: 111, Y: 60}))
}
