// Package analysis characterizes the signals recorded by a pond run.
//
// The tools work on plain float64 series, typically a probe signal or the
// per-tick mean level taken from sim.Result:
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral content via FFT
//   - [Summarize]: mean, spread and quantiles of a series
//   - [DecayExponent]: power-law decay of a ripple envelope
//   - [RadialProfile]: average level as a function of distance from a point
//   - [GeneratePhasePortrait]: level against its per-tick change
//
// # Ripple Decay
//
// A single ripple's amplitude falls off as 1/age, so the envelope of a probe
// signal after one tap has a decay exponent close to -1:
//
//	k, err := analysis.DecayExponent(result.ProbeSeries(), cfg.DefaultValue)
package analysis
