package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/slosh/internal/dynamo"
	"github.com/san-kum/slosh/internal/engine"
)

const (
	defaultCols     = 60
	defaultRows     = 20
	statsWidth      = 40
	historyCapacity = 600

	tiltStep  = 0.1
	fillStep  = 5.0
	keySplash = 40.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives an engine from the bubbletea loop. Keys act as a sensor: they
// post messages to the engine inbox like any other input source.
type Model struct {
	engine  *engine.Engine
	canvas  *Canvas
	source  string
	running bool
	last    time.Time

	tilt float64
	fill float64

	gauge    harmonica.Spring
	gaugePos float64
	gaugeVel float64

	fillHistory []float64
	energy      []float64
	showHelp    bool
}

// NewModel wraps e. source names the attached sensor input for the status
// panel.
func NewModel(e *engine.Engine, source string) Model {
	m := Model{
		engine:      e,
		canvas:      NewCanvas(defaultCols, defaultRows),
		source:      source,
		running:     true,
		fill:        e.Config().Fill,
		tilt:        e.Angle(),
		gauge:       harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.8),
		fillHistory: make([]float64, 0, historyCapacity),
		energy:      make([]float64, 0, historyCapacity),
	}
	m.resize(defaultCols, defaultRows)
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-4, msg.Height-2)
	case TickMsg:
		now := time.Time(msg)
		if m.running && !m.last.IsZero() {
			if m.engine.Tick(now.Sub(m.last)) > 0 {
				m.record()
			}
		}
		m.last = now
		m.gaugePos, m.gaugeVel = m.gauge.Update(m.gaugePos, m.gaugeVel, m.engine.Fill())
		return m, tick()
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.engine.Post(dynamo.Splash(keySplash))
	case "left", "h":
		m.tilt = dynamo.WrapAngle(m.tilt - tiltStep)
		m.engine.Post(dynamo.Tilt(m.tilt))
	case "right", "l":
		m.tilt = dynamo.WrapAngle(m.tilt + tiltStep)
		m.engine.Post(dynamo.Tilt(m.tilt))
	case "up", "k", "+", "=":
		m.fill = math.Min(100, m.fill+fillStep)
		m.engine.Post(dynamo.Fill(m.fill))
	case "down", "j", "-":
		m.fill = math.Max(0, m.fill-fillStep)
		m.engine.Post(dynamo.Fill(m.fill))
	case "p":
		m.running = !m.running
		m.last = time.Time{}
	case "r":
		m.engine.Reset()
		m.fill, m.tilt = m.engine.Config().Fill, 0
		m.gaugePos, m.gaugeVel = 0, 0
		m.fillHistory = m.fillHistory[:0]
		m.energy = m.energy[:0]
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	m.canvas.Resize(max(cols, 10), max(rows, 4))
	w, h := m.canvas.Dots()
	m.engine.Resize(float64(w), float64(h))
}

func (m *Model) record() {
	m.fillHistory = appendCapped(m.fillHistory, m.engine.Fill()*100)
	m.energy = appendCapped(m.energy, m.engine.Energy())
}

func appendCapped(s []float64, v float64) []float64 {
	if len(s) == historyCapacity {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

func (m Model) View() string {
	frame := m.engine.Frame()
	m.canvas.Clear()
	m.canvas.FillPolygon(frame.World())

	liquid := CurrentTheme.Liquid
	if liquid == "" {
		liquid = lipgloss.Color(frame.Color.Hex())
	}
	tank := panelStyle().Render(lipgloss.NewStyle().Foreground(liquid).Render(strings.TrimRight(m.canvas.String(), "\n")))

	var s strings.Builder
	s.WriteString(titleStyle().Render("SLOSH") + "\n")
	switch {
	case !m.running:
		s.WriteString(warnStyle().Render("PAUSED") + "\n\n")
	default:
		s.WriteString(valueStyle().Render("RUNNING") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Source", m.source)
	row("Fill", fmt.Sprintf("%5.1f%% → %.0f%%", m.gaugePos*100, m.fill))
	s.WriteString(Gauge(m.gaugePos, statsWidth-6, liquid) + "\n")
	row("Band", frame.Band.String())
	row("Tilt", fmt.Sprintf("%+6.1f°", frame.Angle*180/math.Pi))
	row("Tick", fmt.Sprintf("%d", m.engine.Ticks()))
	row("Energy", fmt.Sprintf("%.2f", m.engine.Energy()))
	row("Ripple", Sparkline(m.energy, statsWidth-16))
	if d := m.engine.Dropped(); d > 0 {
		s.WriteString(labelStyle().Render("Dropped") + warnStyle().Render(fmt.Sprintf("%d", d)) + "\n")
	}

	if len(m.fillHistory) > 1 {
		chart := asciigraph.Plot(m.fillHistory,
			asciigraph.Height(4),
			asciigraph.Width(statsWidth-12),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(100),
			asciigraph.Caption("Fill %"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Chart).Render(chart) + "\n")
	}

	s.WriteString("\n" + Separator(statsWidth-4) + "\n")
	s.WriteString(hintStyle().Render("←→ tilt  ↑↓ fill  SPC splash\np pause  r reset  t theme  q quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, tank, panelStyle().Width(statsWidth).Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
╔══════════════════════════════════════╗
║  ←/→ h/l   Tilt the tank             ║
║  ↑/↓ k/j   Raise or lower the fill   ║
║  Space     Splash a random node      ║
║  P         Pause/Resume              ║
║  R         Reset                     ║
║  T         Cycle themes              ║
║  ?         Toggle this help          ║
║  Q         Quit                      ║
╚══════════════════════════════════════╝`

// Run starts the full-screen view and blocks until the user quits.
func Run(e *engine.Engine, source string) error {
	p := tea.NewProgram(NewModel(e, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
