package engine

import (
	"sort"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
)

// BoxStats holds five-number summary statistics for one group plus the
// values falling outside the 1.5×IQR fences.
type BoxStats struct {
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
	Outliers []float64
	Count    int
}

// Quartiles computes per-group box statistics of valueCol grouped by
// groupCol, using the standard linear-interpolation quantile method.
// Groups with no usable values are omitted. Returns nil when either
// column is absent.
func Quartiles(v dataset.View, groupCol, valueCol string) map[string]BoxStats {
	if !v.HasColumn(groupCol) || !v.IsNumeric(valueCol) {
		return nil
	}
	grouped := make(map[string][]float64)
	for i := 0; i < v.Len(); i++ {
		if v.Missing(i, valueCol) {
			continue
		}
		key := v.Dim(i, groupCol)
		grouped[key] = append(grouped[key], v.Num(i, valueCol))
	}
	if len(grouped) == 0 {
		return nil
	}

	out := make(map[string]BoxStats, len(grouped))
	for key, vals := range grouped {
		sort.Float64s(vals)
		s := BoxStats{
			Min:    vals[0],
			Q1:     quantile(vals, 0.25),
			Median: quantile(vals, 0.5),
			Q3:     quantile(vals, 0.75),
			Max:    vals[len(vals)-1],
			Count:  len(vals),
		}
		iqr := s.Q3 - s.Q1
		lo, hi := s.Q1-1.5*iqr, s.Q3+1.5*iqr
		for _, x := range vals {
			if x < lo || x > hi {
				s.Outliers = append(s.Outliers, x)
			}
		}
		out[key] = s
	}
	return out
}

// quantile interpolates linearly between the two nearest order
// statistics. vals must be sorted and non-empty.
func quantile(vals []float64, p float64) float64 {
	n := len(vals)
	if n == 1 {
		return vals[0]
	}
	pos := p * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return vals[n-1]
	}
	frac := pos - float64(lo)
	return vals[lo] + frac*(vals[lo+1]-vals[lo])
}
