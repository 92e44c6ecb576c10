package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k|^2 / N for k in [0, N/2], where N is len(data)
// zero padded to the next power of two. The mean is removed first so bin 0
// only carries padding effects.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := nextPow2(len(data))
	padded := make([]float64, n)
	copy(padded, data)
	floats.AddConst(-stat.Mean(data, nil), padded[:len(data)])

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2+1)
	for i := range ps {
		a := cmplx.Abs(spectrum[i])
		ps[i] = a * a / float64(n)
	}
	return ps
}

// DominantFrequency is the strongest non-DC component of data sampled every
// dt ticks, in cycles per tick.
func DominantFrequency(data []float64, dt float64) (freq, power float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0, 0
	}
	k := floats.MaxIdx(ps[1:]) + 1
	n := 2 * (len(ps) - 1)
	return float64(k) / (float64(n) * dt), ps[k]
}

// Frequencies returns the bin frequencies matching PowerSpectrum(data).
func Frequencies(n int, dt float64) []float64 {
	if n == 0 || dt <= 0 {
		return nil
	}
	size := nextPow2(n)
	out := make([]float64, size/2+1)
	for i := range out {
		out[i] = float64(i) / (float64(size) * dt)
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
