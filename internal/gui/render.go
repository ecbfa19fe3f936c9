package gui

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/slosh/internal/render"
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)

	if g.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(image.White.C)
		g.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	frame := g.engine.Frame()
	var idx []uint16
	g.verts, idx = vertices(frame, g.verts)
	if len(idx) > 0 {
		screen.DrawTriangles(g.verts, idx, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}

	surface := frame.Surface
	for i := 1; i < len(surface); i++ {
		a, b := frame.ToWorld(surface[i-1]), frame.ToWorld(surface[i])
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, ColSurface, true)
	}

	if g.showHUD {
		ebitenutil.DebugPrint(screen, g.hud(frame))
	}
}

func (g *Game) hud(f render.Frame) string {
	status := "running"
	if g.paused {
		status = "paused"
	}
	s := fmt.Sprintf("slosh [%s] source: %s\nfill %.1f%% (%s)  tilt %+.1f°  tick %d  fps %.0f",
		status, g.source, f.Fill*100, f.Band, f.Angle*180/math.Pi, g.engine.Ticks(), ebiten.ActualFPS())
	if d := g.engine.Dropped(); d > 0 {
		s += fmt.Sprintf("\ndropped %d", d)
	}
	return s + "\narrows tilt/fill  space splash  p pause  r reset  h hud  q quit"
}

// vertices turns a frame's triangle strip into ebiten vertices tinted with
// the band colour, reusing dst.
func vertices(f render.Frame, dst []ebiten.Vertex) ([]ebiten.Vertex, []uint16) {
	pts, idx := f.Triangles()
	dst = dst[:0]
	c := f.Color.NRGBA()
	r, gr, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for _, p := range pts {
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: gr,
			ColorB: b,
			ColorA: a,
		})
	}
	return dst, idx
}
