package model

import (
	"fmt"
	"math"
	"math/rand"
)

// Random color ranges for drawn pills.
const (
	minSaturation = 55.0
	maxSaturation = 85.0
	pillLightness = 50.0
)

// Color is an HSL color token. The model never interprets it beyond
// carrying it from a parent pill to its split pieces.
type Color struct {
	Hue        float64 `json:"h"` // [0, 360)
	Saturation float64 `json:"s"` // percent
	Lightness  float64 `json:"l"` // percent
}

// RandomColor rolls a hue in [0,360), a saturation in [55,85] and a fixed
// lightness of 50%.
func RandomColor(rng *rand.Rand) Color {
	return Color{
		Hue:        rng.Float64() * 360,
		Saturation: minSaturation + rng.Float64()*(maxSaturation-minSaturation),
		Lightness:  pillLightness,
	}
}

// String returns the CSS notation, e.g. "hsl(210, 70%, 50%)".
func (c Color) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.Hue, c.Saturation, c.Lightness)
}

// RGB converts the color to 8-bit sRGB components.
func (c Color) RGB() (r, g, b uint8) {
	h := math.Mod(c.Hue, 360)
	if h < 0 {
		h += 360
	}
	s := Clamp(c.Saturation, 0, 100) / 100
	l := Clamp(c.Lightness, 0, 100) / 100

	chroma := (1 - math.Abs(2*l-1)) * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - chroma/2

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = chroma, x, 0
	case h < 120:
		rf, gf, bf = x, chroma, 0
	case h < 180:
		rf, gf, bf = 0, chroma, x
	case h < 240:
		rf, gf, bf = 0, x, chroma
	case h < 300:
		rf, gf, bf = x, 0, chroma
	default:
		rf, gf, bf = chroma, 0, x
	}
	to8 := func(v float64) uint8 {
		return uint8(math.Round((v + m) * 255))
	}
	return to8(rf), to8(gf), to8(bf)
}
