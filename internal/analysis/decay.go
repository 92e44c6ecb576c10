package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

var ErrTooFewPeaks = errors.New("analysis: too few envelope peaks")

// DecayExponent fits |x(t) - rest| ~ C * t^k over the local maxima of the
// deviation and returns k. Series index i is taken as t = i+1.
//
// Algorithm:
// 1. Subtract rest and take magnitudes
// 2. Keep strict local maxima as the envelope
// 3. Regress log(peak) on log(t)
func DecayExponent(series []float64, rest float64) (float64, error) {
	dev := make([]float64, len(series))
	for i, v := range series {
		dev[i] = math.Abs(v - rest)
	}

	var xs, ys []float64
	for i := 1; i < len(dev)-1; i++ {
		if dev[i] > dev[i-1] && dev[i] >= dev[i+1] && dev[i] > 0 {
			xs = append(xs, math.Log(float64(i+1)))
			ys = append(ys, math.Log(dev[i]))
		}
	}
	if len(xs) < 3 {
		return 0, ErrTooFewPeaks
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, nil
}
