package gui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/slosh/internal/dynamo"
	"github.com/san-kum/slosh/internal/engine"
)

var (
	ColBg      = color.NRGBA{10, 10, 10, 255}
	ColSurface = color.NRGBA{255, 255, 255, 90}
)

const (
	tiltStep  = 0.05
	fillStep  = 5.0
	keySplash = 40.0
)

type action int

const (
	actNone action = iota
	actSplash
	actTiltLeft
	actTiltRight
	actFillUp
	actFillDown
	actPause
	actReset
	actHUD
)

var keymap = []struct {
	keys []ebiten.Key
	act  action
}{
	{[]ebiten.Key{ebiten.KeySpace}, actSplash},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, actTiltLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, actTiltRight},
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyEqual}, actFillUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS, ebiten.KeyMinus}, actFillDown},
	{[]ebiten.Key{ebiten.KeyP}, actPause},
	{[]ebiten.Key{ebiten.KeyR}, actReset},
	{[]ebiten.Key{ebiten.KeyH}, actHUD},
}

// Game runs the engine at the ebiten tick rate, one engine step per Update.
type Game struct {
	engine *engine.Engine
	source string

	width, height int
	paused        bool
	showHUD       bool
	fill, tilt    float64

	white *ebiten.Image
	verts []ebiten.Vertex
}

func New(e *engine.Engine, source string) *Game {
	w, h := e.Size()
	return &Game{
		engine:  e,
		source:  source,
		width:   int(w),
		height:  int(h),
		showHUD: true,
		fill:    e.Config().Fill,
		tilt:    e.Angle(),
	}
}

func (g *Game) Update() error {
	for _, km := range keymap {
		for _, k := range km.keys {
			if inpututil.IsKeyJustPressed(k) {
				g.apply(km.act)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if !g.paused {
		g.engine.Step()
	}
	return nil
}

// apply handles one key action. Engine input goes through the inbox like
// any other sensor.
func (g *Game) apply(a action) {
	switch a {
	case actSplash:
		g.engine.Post(dynamo.Splash(keySplash))
	case actTiltLeft:
		g.tilt = dynamo.WrapAngle(g.tilt - tiltStep)
		g.engine.Post(dynamo.Tilt(g.tilt))
	case actTiltRight:
		g.tilt = dynamo.WrapAngle(g.tilt + tiltStep)
		g.engine.Post(dynamo.Tilt(g.tilt))
	case actFillUp:
		g.fill = math.Min(100, g.fill+fillStep)
		g.engine.Post(dynamo.Fill(g.fill))
	case actFillDown:
		g.fill = math.Max(0, g.fill-fillStep)
		g.engine.Post(dynamo.Fill(g.fill))
	case actPause:
		g.paused = !g.paused
	case actReset:
		g.engine.Reset()
		g.fill, g.tilt = g.engine.Config().Fill, 0
	case actHUD:
		g.showHUD = !g.showHUD
	}
}

// Layout follows the window size and keeps the engine viewport in step.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.engine.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.width, g.height
}

// Run opens a resizable window and blocks until it is closed or the user
// quits.
func Run(e *engine.Engine, source string) error {
	cfg := e.Config()
	w, h := e.Size()
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle("slosh")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(math.Round(cfg.TickRate)))

	return ebiten.RunGame(New(e, source))
}
