package render

import (
	"fmt"
	"image/color"
)

type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMid:
		return "mid"
	case BandHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Color is a straight (non-premultiplied) colour with fractional alpha.
type Color struct {
	R, G, B uint8
	Alpha   float64
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.Alpha*255 + 0.5)}
}

// Palette picks the liquid colour from the fill fraction. Fills up to LowMax
// use Low, up to MidMax use Mid, anything above uses High.
type Palette struct {
	LowMax, MidMax float64
	Low, Mid, High Color
}

func DefaultPalette() Palette {
	return Palette{
		LowMax: 0.25,
		MidMax: 0.75,
		Low:    Color{0x3b, 0x82, 0xf6, 0.9},
		Mid:    Color{0x8b, 0x5c, 0xf6, 0.9},
		High:   Color{0xef, 0x44, 0x44, 0.9},
	}
}

func (p Palette) Band(fill float64) Band {
	switch {
	case fill <= p.LowMax:
		return BandLow
	case fill <= p.MidMax:
		return BandMid
	default:
		return BandHigh
	}
}

func (p Palette) Color(b Band) Color {
	switch b {
	case BandLow:
		return p.Low
	case BandMid:
		return p.Mid
	default:
		return p.High
	}
}

// ParseHex reads "#rrggbb".
func ParseHex(s string, alpha float64) (Color, error) {
	var c Color
	if _, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	c.Alpha = alpha
	return c, nil
}
