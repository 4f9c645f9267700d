package engine

import "github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"

// Bucket is one equal-width histogram bin over [Lower, Upper).
// The last bucket is closed on the right so the maximum lands in it.
type Bucket struct {
	Lower float64
	Upper float64
	Count int
}

// Histogram bins the non-missing values of a numeric column into
// equal-width buckets spanning min..max. An empty view, an absent
// column, or buckets <= 0 yields zero buckets.
func Histogram(v dataset.View, col string, buckets int) []Bucket {
	if buckets <= 0 || !v.IsNumeric(col) {
		return nil
	}
	var vals []float64
	for i := 0; i < v.Len(); i++ {
		if !v.Missing(i, col) {
			vals = append(vals, v.Num(i, col))
		}
	}
	if len(vals) == 0 {
		return nil
	}

	min, max := vals[0], vals[0]
	for _, x := range vals[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	if min == max {
		// Degenerate range: everything in one bucket.
		return []Bucket{{Lower: min, Upper: max, Count: len(vals)}}
	}

	width := (max - min) / float64(buckets)
	out := make([]Bucket, buckets)
	for i := range out {
		out[i].Lower = min + float64(i)*width
		out[i].Upper = min + float64(i+1)*width
	}
	out[buckets-1].Upper = max
	for _, x := range vals {
		idx := int((x - min) / width)
		if idx >= buckets {
			idx = buckets - 1
		}
		out[idx].Count++
	}
	return out
}
