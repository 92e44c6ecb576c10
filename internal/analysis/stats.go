package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P90    float64
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.4f sd=%.4f min=%.4f p50=%.4f p90=%.4f max=%.4f",
		s.Count, s.Mean, s.StdDev, s.Min, s.P50, s.P90, s.Max)
}

// Summarize computes descriptive statistics of data. An empty series yields
// the zero Summary.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	s := Summary{
		Count: len(data),
		Mean:  stat.Mean(data, nil),
		Min:   floats.Min(data),
		Max:   floats.Max(data),
		P50:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:   stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	if len(data) > 1 {
		s.StdDev = stat.StdDev(data, nil)
	}
	return s
}
