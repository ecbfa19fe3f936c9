package tracker

import (
	"math"

	"github.com/san-kum/slosh/internal/dynamo"
)

// DefaultMinVisible keeps any non-empty fill above the bottom edge.
const DefaultMinVisible = 0.05

// FillTarget maps a percentage onto a [0,1] fill fraction. Empty or invalid
// input gives exactly 0; anything positive is lifted to at least minVisible.
func FillTarget(percent, minVisible float64) float64 {
	if math.IsNaN(percent) || percent <= 0 {
		return 0
	}
	return minVisible + (1-minVisible)*math.Min(percent, 100)/100
}

// Fill eases the displayed fill fraction toward its target with exponential
// smoothing.
type Fill struct {
	Target     float64
	Current    float64
	Smoothing  float64
	MinVisible float64
}

func NewFill(smoothing, minVisible float64) *Fill {
	return &Fill{Smoothing: smoothing, MinVisible: minVisible}
}

func (f *Fill) SetPercent(percent float64) {
	f.Target = FillTarget(percent, f.MinVisible)
}

func (f *Fill) SetTarget(target float64) {
	f.Target = dynamo.Clamp(target, 0, 1)
}

func (f *Fill) Tick() float64 {
	f.Current += (f.Target - f.Current) * f.Smoothing
	return f.Current
}

// Settled reports whether the current fill is within tol of the target.
func (f *Fill) Settled(tol float64) bool {
	return math.Abs(f.Target-f.Current) <= tol
}

func (f *Fill) Reset() {
	f.Target, f.Current = 0, 0
}
