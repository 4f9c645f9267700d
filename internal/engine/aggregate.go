package engine

import (
	"sort"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
)

// Order selects sort direction for grouped results.
type Order int

const (
	Ascending Order = iota
	Descending
)

// Count returns the number of records in the view.
func Count(v dataset.View) int { return v.Len() }

// Sum totals a numeric column, skipping missing cells. An empty view or
// an unknown column sums to 0.
func Sum(v dataset.View, col string) float64 {
	var total float64
	for i := 0; i < v.Len(); i++ {
		if x := v.Num(i, col); !v.Missing(i, col) {
			total += x
		}
	}
	return total
}

// Mean averages a numeric column over its non-missing cells. ok is false
// when no usable value exists, so callers never see NaN.
func Mean(v dataset.View, col string) (mean float64, ok bool) {
	var total float64
	n := 0
	for i := 0; i < v.Len(); i++ {
		if !v.Missing(i, col) {
			total += v.Num(i, col)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// GroupStat is one group's aggregate in a group-by result.
type GroupStat struct {
	Key   string
	Mean  float64
	Count int
	// Valid is false when the group had no non-missing values;
	// Mean is 0 in that case, never NaN.
	Valid bool
}

// GroupMean computes the per-group mean of valueCol grouped by groupCol.
// One entry per distinct group value in the view, so the groups partition
// the records exactly. Sorted by mean in the requested order, ties broken
// by group key lexical order for determinism. Returns nil when either
// column is absent.
func GroupMean(v dataset.View, groupCol, valueCol string, order Order) []GroupStat {
	if !v.HasColumn(groupCol) || !v.IsNumeric(valueCol) {
		return nil
	}

	type acc struct {
		sum   float64
		n     int
		total int
	}
	accs := make(map[string]*acc)
	var keys []string
	for i := 0; i < v.Len(); i++ {
		key := v.Dim(i, groupCol)
		a := accs[key]
		if a == nil {
			a = &acc{}
			accs[key] = a
			keys = append(keys, key)
		}
		a.total++
		if !v.Missing(i, valueCol) {
			a.sum += v.Num(i, valueCol)
			a.n++
		}
	}

	stats := make([]GroupStat, 0, len(keys))
	for _, key := range keys {
		a := accs[key]
		s := GroupStat{Key: key, Count: a.total}
		if a.n > 0 {
			s.Mean = a.sum / float64(a.n)
			s.Valid = true
		}
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Mean != stats[j].Mean {
			if order == Descending {
				return stats[i].Mean > stats[j].Mean
			}
			return stats[i].Mean < stats[j].Mean
		}
		return stats[i].Key < stats[j].Key
	})
	return stats
}

// GroupCount is one group's record tally.
type GroupCount struct {
	Key   string
	Count int
}

// CountBy tallies records per distinct value of a dimension column,
// sorted by count descending, ties by key. Nil when the column is absent.
func CountBy(v dataset.View, col string) []GroupCount {
	if !v.HasColumn(col) {
		return nil
	}
	counts := make(map[string]int)
	var keys []string
	for i := 0; i < v.Len(); i++ {
		key := v.Dim(i, col)
		if counts[key] == 0 {
			keys = append(keys, key)
		}
		counts[key]++
	}
	out := make([]GroupCount, 0, len(keys))
	for _, key := range keys {
		out = append(out, GroupCount{Key: key, Count: counts[key]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// TopN returns a view of the n records with the largest rankCol values,
// descending. The sort is stable, so ties keep their original row order
// and repeated runs reproduce the same ranking. Missing values rank
// below every real value. n >= Len returns all records sorted.
func TopN(v dataset.View, n int, rankCol string) dataset.View {
	positions := make([]int, v.Len())
	for i := range positions {
		positions[i] = i
	}
	sort.SliceStable(positions, func(a, b int) bool {
		pa, pb := positions[a], positions[b]
		ma, mb := v.Missing(pa, rankCol), v.Missing(pb, rankCol)
		if ma != mb {
			return mb // real values before missing
		}
		if ma {
			return false
		}
		return v.Num(pa, rankCol) > v.Num(pb, rankCol)
	})
	if n >= 0 && n < len(positions) {
		positions = positions[:n]
	}
	return v.Take(positions)
}
