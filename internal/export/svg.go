package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/slosh/internal/render"
)

const background = "#0a0a0a"

// FrameToSVG draws a frame as a single filled path over a dark viewport of
// the given size.
func FrameToSVG(f render.Frame, width, height int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	world := f.World()
	if len(world) > 2 {
		sb.WriteString(`<path d="M`)
		for i, p := range world {
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
		}
		fmt.Fprintf(&sb, ` Z" fill="%s" fill-opacity="%.2f"/>
`, f.Color.Hex(), f.Color.Alpha)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// SeriesToSVG plots ys against their index as a polyline scaled to fill the
// image.
func SeriesToSVG(ys []float64, width, height int, strokeColor string) string {
	if len(ys) < 2 {
		return ""
	}

	lo, hi := ys[0], ys[0]
	for _, y := range ys {
		lo, hi = min(lo, y), max(hi, y)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	step := float64(width) / float64(len(ys)-1)
	for i, y := range ys {
		px := float64(i) * step
		py := float64(height) - (y-lo)/span*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", px, py)
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
