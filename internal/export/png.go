package export

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/slosh/internal/render"
)

// FramePlot builds a plot of the liquid polygon in screen space. The y axis
// is flipped so the picture matches the screen.
func FramePlot(f render.Frame, width, height float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "slosh"
	p.BackgroundColor = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	p.X.Min, p.X.Max = 0, width
	p.Y.Min, p.Y.Max = -height, 0
	p.HideAxes()

	world := f.World()
	pts := make(plotter.XYs, len(world))
	for i, w := range world {
		pts[i] = plotter.XY{X: w.X, Y: -w.Y}
	}
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return nil, err
	}
	poly.Color = f.Color.NRGBA()
	poly.LineStyle.Width = 0
	p.Add(poly)

	// NewPolygon widens the axes to the polygon, which spans the diagonal.
	p.X.Min, p.X.Max = 0, width
	p.Y.Min, p.Y.Max = -height, 0
	return p, nil
}

// SavePNG writes a frame snapshot. The image size is in pixels at 96 dpi.
func SavePNG(path string, f render.Frame, width, height float64) error {
	p, err := FramePlot(f, width, height)
	if err != nil {
		return err
	}
	return p.Save(pixels(width), pixels(height), path)
}

// SeriesPlot draws named series against a shared x axis.
func SeriesPlot(title, xLabel, yLabel string, xs []float64, series map[string][]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	palette := []color.Color{
		color.NRGBA{0x3b, 0x82, 0xf6, 0xff},
		color.NRGBA{0x8b, 0x5c, 0xf6, 0xff},
		color.NRGBA{0xef, 0x44, 0x44, 0xff},
		color.NRGBA{0x10, 0xb9, 0x81, 0xff},
	}

	i := 0
	for _, name := range sortedKeys(series) {
		ys := series[name]
		pts := make(plotter.XYs, min(len(xs), len(ys)))
		for j := range pts {
			pts[j] = plotter.XY{X: xs[j], Y: ys[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(name, line)
		i++
	}
	p.Legend.Top = true
	return p, nil
}

func SaveSeriesPNG(path, title, xLabel, yLabel string, xs []float64, series map[string][]float64) error {
	p, err := SeriesPlot(title, xLabel, yLabel, xs, series)
	if err != nil {
		return err
	}
	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}

func pixels(px float64) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}
