package tracker

import "github.com/san-kum/slosh/internal/dynamo"

// Orientation eases the surface angle toward the measured tilt along the
// shorter way round the circle. Both angles stay in (-π, π].
type Orientation struct {
	Target    float64
	Current   float64
	Smoothing float64
}

func NewOrientation(smoothing float64) *Orientation {
	return &Orientation{Smoothing: smoothing}
}

func (o *Orientation) SetTarget(angle float64) {
	o.Target = dynamo.WrapAngle(angle)
}

func (o *Orientation) Tick() float64 {
	o.Current = dynamo.LerpAngle(o.Current, o.Target, o.Smoothing)
	return o.Current
}

// Gap is the signed rotation still to be covered.
func (o *Orientation) Gap() float64 {
	return dynamo.ShortestArc(o.Current, o.Target)
}

func (o *Orientation) Reset() {
	o.Target, o.Current = 0, 0
}
