package analysis

import (
	"strings"

	"github.com/san-kum/slosh/internal/dynamo"
)

type Point struct {
	X, Y float64
}

// PhasePortrait traces one node's displacement against its velocity. It is
// an engine observer.
type PhasePortrait struct {
	Node   int
	Points []Point
}

func NewPhasePortrait(node int) *PhasePortrait {
	return &PhasePortrait{Node: node}
}

func (p *PhasePortrait) OnTick(s dynamo.Snapshot) {
	if p.Node < 0 || p.Node >= len(s.Positions) || p.Node >= len(s.Velocities) {
		return
	}
	p.Points = append(p.Points, Point{s.Positions[p.Node], s.Velocities[p.Node]})
}

// ASCII plots the portrait on a width×height character grid with axes where
// they cross the visible range.
func (p *PhasePortrait) ASCII(width, height int) string {
	if len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX, maxX = minX-rangeX*0.1, maxX+rangeX*0.1
	minY, maxY = minY-rangeY*0.1, maxY+rangeY*0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := range grid {
			grid[r][c] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := range grid[r] {
			if grid[r][c] == '│' {
				grid[r][c] = '┼'
			} else {
				grid[r][c] = '─'
			}
		}
	}
	for _, pt := range p.Points {
		r, c := row(pt.Y), col(pt.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = '•'
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
