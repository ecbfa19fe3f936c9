package render

import "math"

type Point struct {
	X, Y float64
}

// Input is everything a frame depends on. Render never mutates it.
type Input struct {
	Positions     []float64
	Fill          float64
	Angle         float64
	Width, Height float64
	Palette       Palette
}

// Frame is a closed liquid polygon in local coordinates: origin at the
// viewport centre, y pointing down, before rotation. The polygon spans the
// viewport diagonal so no rotation exposes an empty corner. Surface is the
// top edge: one point per node plus a final point on the right edge at the
// last node's height.
type Frame struct {
	Surface  []Point
	Polygon  []Point
	Span     float64
	Baseline float64
	Fill     float64
	Angle    float64
	Center   Point
	Band     Band
	Color    Color
}

func Render(in Input) Frame {
	span := math.Hypot(in.Width, in.Height)
	half := span / 2
	baseline := half - in.Fill*span

	n := len(in.Positions)
	step := 0.0
	if n > 0 {
		step = span / float64(n)
	}

	poly := make([]Point, n, n+3)
	for i, p := range in.Positions {
		poly[i] = Point{X: -half + float64(i)*step, Y: baseline + p}
	}
	if n > 0 {
		// The last node sits one step short of the right edge.
		poly = append(poly, Point{X: half, Y: poly[n-1].Y})
	}
	top := len(poly)
	poly = append(poly, Point{X: half, Y: half}, Point{X: -half, Y: half})

	band := in.Palette.Band(in.Fill)
	return Frame{
		Surface:  poly[:top:top],
		Polygon:  poly,
		Span:     span,
		Baseline: baseline,
		Fill:     in.Fill,
		Angle:    in.Angle,
		Center:   Point{X: in.Width / 2, Y: in.Height / 2},
		Band:     band,
		Color:    in.Palette.Color(band),
	}
}

// ToWorld maps a local point to screen coordinates.
func (f Frame) ToWorld(p Point) Point {
	sin, cos := math.Sincos(f.Angle)
	return Point{
		X: f.Center.X + p.X*cos - p.Y*sin,
		Y: f.Center.Y + p.X*sin + p.Y*cos,
	}
}

// ToLocal is the inverse of ToWorld.
func (f Frame) ToLocal(p Point) Point {
	sin, cos := math.Sincos(f.Angle)
	dx, dy := p.X-f.Center.X, p.Y-f.Center.Y
	return Point{X: dx*cos + dy*sin, Y: -dx*sin + dy*cos}
}

func (f Frame) World() []Point {
	out := make([]Point, len(f.Polygon))
	for i, p := range f.Polygon {
		out[i] = f.ToWorld(p)
	}
	return out
}

// Contains reports whether the screen point lies inside the liquid.
func (f Frame) Contains(x, y float64) bool {
	return inside(f.Polygon, f.ToLocal(Point{X: x, Y: y}))
}

// Covered reports whether any sample point of a w×h viewport is inside the
// liquid, probing every stride pixels.
func (f Frame) Covered(w, h, stride float64) bool {
	if stride <= 0 {
		stride = 1
	}
	for y := 0.0; y <= h; y += stride {
		for x := 0.0; x <= w; x += stride {
			if f.Contains(x, y) {
				return true
			}
		}
	}
	return false
}

// Triangles splits the polygon into a strip of quads hanging from the surface
// down to the bottom edge. Vertices are in screen coordinates.
func (f Frame) Triangles() ([]Point, []uint16) {
	n := len(f.Surface)
	if n < 2 {
		return nil, nil
	}
	bottom := f.Span / 2

	verts := make([]Point, 0, 2*n)
	for _, p := range f.Surface {
		verts = append(verts, f.ToWorld(p), f.ToWorld(Point{X: p.X, Y: bottom}))
	}

	idx := make([]uint16, 0, 6*(n-1))
	for i := 0; i < n-1; i++ {
		t, b := uint16(2*i), uint16(2*i+1)
		idx = append(idx, t, t+2, b, b, t+2, b+2)
	}
	return verts, idx
}

// inside is an even-odd ray cast.
func inside(poly []Point, p Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}
