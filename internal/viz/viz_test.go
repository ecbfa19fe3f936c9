package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/slosh/internal/config"
	"github.com/san-kum/slosh/internal/engine"
	"github.com/san-kum/slosh/internal/render"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	if got := c.String(); got != "⠁⢀\n" {
		t.Errorf("got %q", got)
	}
	c.Unset(0, 0)
	if c.Lit() != 1 {
		t.Errorf("expected one dot, got %d", c.Lit())
	}
	c.Clear()
	if c.Lit() != 0 {
		t.Error("clear left dots set")
	}
}

func TestFillPolygon(t *testing.T) {
	tests := []struct {
		name string
		poly []render.Point
		want string
	}{
		{"full", []render.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 8}, {X: 0, Y: 8}}, "⣿⣿\n⣿⣿\n"},
		{"bottom half", []render.Point{{X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 8}, {X: 0, Y: 8}}, "⠀⠀\n⣿⣿\n"},
		{"oversized", []render.Point{{X: -10, Y: -10}, {X: 20, Y: -10}, {X: 20, Y: 20}, {X: -10, Y: 20}}, "⣿⣿\n⣿⣿\n"},
		{"outside", []render.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}, "⠀⠀\n⠀⠀\n"},
		{"degenerate", []render.Point{{X: 0, Y: 0}, {X: 4, Y: 8}}, "⠀⠀\n⠀⠀\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(2, 2)
			c.FillPolygon(tt.poly)
			if got := c.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	if c.Lit() != 8 {
		t.Errorf("expected 8 dots, got %d", c.Lit())
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("tank")

	if GetTheme("nope").Name != "tank" {
		t.Error("unknown theme should fall back to tank")
	}
	seen := map[string]bool{}
	for range Themes {
		seen[CurrentTheme.Name] = true
		NextTheme()
	}
	if len(seen) != len(Themes) || CurrentTheme.Name != "tank" {
		t.Errorf("cycle visited %v, ended on %s", seen, CurrentTheme.Name)
	}
}

func TestGaugeAndSparkline(t *testing.T) {
	if got := strings.Count(Gauge(0.5, 10, "#ffffff"), "█"); got != 5 {
		t.Errorf("half gauge has %d filled cells", got)
	}
	if Gauge(0.5, 0, "#ffffff") != "" {
		t.Error("zero width gauge should be empty")
	}
	if got := Sparkline([]float64{0, 1, 2, 3}, 2); got != "▁█" {
		t.Errorf("sparkline %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty sparkline %q", got)
	}
}

func newModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	e, err := engine.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(e, "keyboard")
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelResizesEngine(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(Model)
	w, h := m.engine.Size()
	if w != 2*(120-statsWidth-4) || h != 4*28 {
		t.Errorf("engine viewport %vx%v", w, h)
	}
}

func TestModelKeysPostToEngine(t *testing.T) {
	m := newModel(t)
	m = press(m, "up")
	m = press(m, "up")
	m = press(m, "left")
	if m.fill != 10 {
		t.Errorf("fill %v, want 10", m.fill)
	}
	m.engine.Step()
	if math.Abs(m.engine.FillTarget()-(0.05+0.95*0.1)) > 1e-12 {
		t.Errorf("fill target %v", m.engine.FillTarget())
	}
	for i := 0; i < 500; i++ {
		m.engine.Step()
	}
	if math.Abs(m.engine.Angle()+tiltStep) > 1e-6 {
		t.Errorf("angle %v, want %v", m.engine.Angle(), -tiltStep)
	}
}

func TestModelTicks(t *testing.T) {
	m := newModel(t)
	start := time.Unix(0, 0)

	next, cmd := m.Update(TickMsg(start))
	m = next.(Model)
	if cmd == nil || m.engine.Ticks() != 0 {
		t.Fatalf("first tick should only arm the clock, ran %d", m.engine.Ticks())
	}
	next, _ = m.Update(TickMsg(start.Add(50 * time.Millisecond)))
	m = next.(Model)
	if m.engine.Ticks() != 3 || len(m.fillHistory) != 1 {
		t.Errorf("ticks %d history %d", m.engine.Ticks(), len(m.fillHistory))
	}

	m = press(m, "p")
	next, _ = m.Update(TickMsg(start.Add(time.Second)))
	m = next.(Model)
	if m.engine.Ticks() != 3 {
		t.Errorf("paused model advanced to %d", m.engine.Ticks())
	}
}

func TestModelResetAndQuit(t *testing.T) {
	m := newModel(t)
	m = press(m, "up")
	m.engine.Step()
	m = press(m, "r")
	if m.fill != 0 || m.engine.Ticks() != 0 || m.engine.FillTarget() != 0 {
		t.Errorf("reset left fill %v ticks %d", m.fill, m.engine.Ticks())
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelView(t *testing.T) {
	m := newModel(t)
	m = press(m, "?")
	view := m.View()
	for _, want := range []string{"SLOSH", "keyboard", "Band", "Splash"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
