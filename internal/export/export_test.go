package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/slosh/internal/render"
)

func halfFrame() render.Frame {
	return render.Render(render.Input{
		Positions: make([]float64, 10),
		Fill:      0.5,
		Width:     200,
		Height:    100,
		Palette:   render.DefaultPalette(),
	})
}

func TestFrameToSVG(t *testing.T) {
	svg := FrameToSVG(halfFrame(), 200, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("malformed document:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#8b5cf6"`) {
		t.Error("expected mid-band fill colour")
	}
	if strings.Count(svg, " L") != 12 {
		t.Errorf("expected 13 path vertices, got %d segments", strings.Count(svg, " L"))
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := SeriesToSVG([]float64{0, 1, 0, 1}, 100, 50, "#fff")
	if !strings.Contains(svg, `stroke="#fff"`) {
		t.Error("expected stroke colour")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, halfFrame(), 200, 100); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty png, got %v %v", info, err)
	}
}

func TestSaveSeriesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fill.png")
	xs := []float64{0, 1, 2, 3}
	err := SaveSeriesPNG(path, "fill", "tick", "fraction", xs, map[string][]float64{
		"fill":   {0, 0.1, 0.2, 0.3},
		"target": {0.5, 0.5, 0.5, 0.5},
	})
	if err != nil {
		t.Fatalf("SaveSeriesPNG: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}
