package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/slosh/internal/dynamo"
)

// Spectrum is the one-sided amplitude spectrum of a real series.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum removes the mean from series and transforms it. sampleRate is
// in samples per second, so Freqs come out in Hz.
func PowerSpectrum(series []float64, sampleRate float64) (*Spectrum, error) {
	n := len(series)
	if n < 4 {
		return nil, dynamo.ErrNoData
	}

	mean := stat.Mean(series, nil)
	centred := make([]float64, n)
	for i, v := range series {
		centred[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, centred)

	s := &Spectrum{
		Freqs: make([]float64, len(coeff)),
		Power: make([]float64, len(coeff)),
	}
	for i, c := range coeff {
		s.Freqs[i] = fft.Freq(i) * sampleRate
		s.Power[i] = cmplx.Abs(c) / float64(n)
	}
	return s, nil
}

// Dominant returns the frequency carrying the most power, ignoring DC.
func (s *Spectrum) Dominant() float64 {
	best, at := 0.0, 0.0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > best {
			best, at = s.Power[i], s.Freqs[i]
		}
	}
	return at
}

// Summary describes one recorded series.
type Summary struct {
	Mean, StdDev float64
	Min, Max     float64
	Dominant     float64
}

func Summarize(series []float64, sampleRate float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, dynamo.ErrNoData
	}
	mean, std := stat.MeanStdDev(series, nil)
	s := Summary{Mean: mean, StdDev: std, Min: series[0], Max: series[0]}
	for _, v := range series {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	if spec, err := PowerSpectrum(series, sampleRate); err == nil {
		s.Dominant = spec.Dominant()
	}
	return s, nil
}
