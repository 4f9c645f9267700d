// Package format converts raw magnitudes into the strings shown on the
// dashboard and exported to files. Export formatting matches on-screen
// formatting so a re-parsed export reproduces the same records.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
)

// Unit selects the currency scale.
type Unit int

const (
	Trillion Unit = iota
	Billion
)

// ScaleCurrency renders a rupiah amount divided to the requested scale:
// trillions as "Rp 1.23T", billions as "Rp 4.5M" (miliar). Negative
// input keeps its sign in the scaled value.
func ScaleCurrency(v float64, unit Unit) string {
	switch unit {
	case Billion:
		return fmt.Sprintf("Rp %.1fM", v/1e9)
	default:
		return fmt.Sprintf("Rp %.2fT", v/1e12)
	}
}

// Percent renders an effectiveness ratio with two decimals. Missing
// values render as "n/a" instead of NaN leaking into output.
func Percent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// Number renders a plain numeric cell: grouped thousands for whole
// amounts, two decimals otherwise, empty string when missing.
func Number(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return GroupThousands(int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// GroupThousands formats an integer with comma separators.
func GroupThousands(n int64) string {
	if n < 0 {
		return "-" + GroupThousands(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

// Cell renders one dataset cell the way the detail table shows it.
func Cell(v dataset.View, i int, col string) string {
	if !v.IsNumeric(col) {
		return v.Dim(i, col)
	}
	if col == dataset.ColEfektivitas {
		x := v.Num(i, col)
		if math.IsNaN(x) {
			return ""
		}
		return Percent(x)
	}
	return Number(v.Num(i, col))
}

// CSVRows materializes the view as a header row plus one formatted row
// per record, restricted to the requested columns that actually exist.
// Formatting is identical to the on-screen table.
func CSVRows(v dataset.View, columns []string) [][]string {
	var present []string
	for _, c := range columns {
		if v.HasColumn(c) {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return nil
	}
	rows := make([][]string, 0, v.Len()+1)
	rows = append(rows, append([]string(nil), present...))
	for i := 0; i < v.Len(); i++ {
		row := make([]string, len(present))
		for j, c := range present {
			row[j] = Cell(v, i, c)
		}
		rows = append(rows, row)
	}
	return rows
}
