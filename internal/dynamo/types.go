package dynamo

import "math"

// Node is one oscillator of the surface mesh. Position is the vertical
// displacement from the fill baseline in pixels, Velocity its rate per tick.
type Node struct {
	Position float64
	Velocity float64
}

type Kind int

const (
	TiltUpdate Kind = iota
	Impulse
	FillUpdate
)

func (k Kind) String() string {
	switch k {
	case TiltUpdate:
		return "tilt"
	case Impulse:
		return "impulse"
	case FillUpdate:
		return "fill"
	default:
		return "unknown"
	}
}

// RandomNode asks the receiver to pick the impulse target itself.
const RandomNode = -1

// Message is a unit of input queued for the next tick. Value is an angle in
// radians for TiltUpdate, a force for Impulse and a percentage for FillUpdate.
// Node is only read for Impulse.
type Message struct {
	Kind  Kind
	Value float64
	Node  int
}

func Tilt(angle float64) Message      { return Message{Kind: TiltUpdate, Value: angle} }
func Splash(force float64) Message    { return Message{Kind: Impulse, Value: force, Node: RandomNode} }
func Fill(percent float64) Message    { return Message{Kind: FillUpdate, Value: percent} }
func Strike(i int, f float64) Message { return Message{Kind: Impulse, Value: f, Node: i} }

// Sink accepts messages from producers that do not own the tick. Post must
// not block; it reports false when the message was dropped.
type Sink interface {
	Post(Message) bool
}

// Snapshot is a copy of engine state taken after a tick.
type Snapshot struct {
	Tick        int
	Time        float64
	Phase       float64
	Fill        float64
	FillTarget  float64
	Angle       float64
	AngleTarget float64
	Spread      float64
	Positions   []float64
	Velocities  []float64
}

type Observer interface {
	OnTick(s Snapshot)
}

type ObserverFunc func(s Snapshot)

func (f ObserverFunc) OnTick(s Snapshot) { f(s) }

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite replaces NaN and infinities with zero.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
