// Package analysis inspects recorded surface motion.
//
//   - [PowerSpectrum]: amplitude spectrum of a series, e.g. one node's
//     displacement, via gonum's FFT
//   - [Summarize]: mean, spread, range and dominant frequency
//   - [PhasePortrait]: displacement against velocity for one node
//
// # Ringing
//
// A splash rings at a frequency set by tension and spread. The dominant
// frequency of a node after a splash is a quick check of a preset:
//
//	spec, _ := analysis.PowerSpectrum(series, 60)
//	fmt.Printf("rings at %.2f Hz\n", spec.Dominant())
package analysis
