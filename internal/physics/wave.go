package physics

import "math"

// Wave is the ambient forcing that keeps an undisturbed surface alive. Each
// node chases a target built from two travelling components:
//
//	A·sin(phase + i·K1) + A·Ratio·cos(phase·Freq + i·K2)
type Wave struct {
	Amplitude float64
	K1, K2    float64
	Freq      float64
	Ratio     float64
}

func DefaultWave(amplitude float64) Wave {
	return Wave{Amplitude: amplitude, K1: 0.2, K2: 0.1, Freq: 0.7, Ratio: 0.6}
}

func (w Wave) Target(i int, phase float64) float64 {
	if w.Amplitude == 0 {
		return 0
	}
	x := float64(i)
	return w.Amplitude*math.Sin(phase+x*w.K1) + w.Amplitude*w.Ratio*math.Cos(phase*w.Freq+x*w.K2)
}

// Peak is the largest target magnitude the wave can produce.
func (w Wave) Peak() float64 {
	return math.Abs(w.Amplitude) * (1 + math.Abs(w.Ratio))
}
