package dataset

import (
	"errors"
	"math"
)

// Canonical column names produced by the upstream PySpark export.
const (
	ColName        = "NAMA_WP"
	ColKategori    = "Kategori"
	ColSegmentasi  = "Segmentasi"
	ColOmset       = "Total_Omset_12Bulan"
	ColPajak       = "Total_Pajak_12Bulan"
	ColEfektivitas = "Efektivitas_Pajak"
	ColLabelRisiko = "Label_Risiko"
)

// ErrMissingColumn indicates a derived view asked for a column the source
// file does not carry. The view degrades; other views keep working.
var ErrMissingColumn = errors.New("column not present in dataset")

// Capability names a derived view the loaded dataset can support.
// The schema pass at load time decides the set once; consumers check it
// instead of re-probing columns everywhere.
type Capability string

const (
	CapIdentifiers        Capability = "identifiers"
	CapCategoryBreakdown  Capability = "category_breakdown"
	CapSegmentBreakdown   Capability = "segment_breakdown"
	CapRevenueTotals      Capability = "revenue_totals"
	CapTaxTotals          Capability = "tax_totals"
	CapEffectiveness      Capability = "effectiveness"
	CapUpstreamRiskLabels Capability = "upstream_risk_labels"
)

// Capabilities is the set of derived views available for a dataset.
type Capabilities map[Capability]bool

// Has reports whether every given capability is available.
func (c Capabilities) Has(caps ...Capability) bool {
	for _, want := range caps {
		if !c[want] {
			return false
		}
	}
	return true
}

// Dataset is an immutable columnar table loaded from the source CSV.
// String columns hold trimmed values; numeric columns use NaN for cells
// that were empty or failed to parse. Rows are never mutated after load;
// filtering and aggregation work on read-only Views.
type Dataset struct {
	columns  []string
	dims     map[string][]string
	nums     map[string][]float64
	rows     int
	caps     Capabilities
	warnings []string
}

// Columns returns header names in original file order.
func (d *Dataset) Columns() []string { return d.columns }

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Capabilities returns the derived views this dataset supports.
func (d *Dataset) Capabilities() Capabilities { return d.caps }

// Warnings returns non-fatal schema findings from the load pass
// (missing optional columns, coercion fallout).
func (d *Dataset) Warnings() []string { return d.warnings }

// HasColumn reports whether the named column exists in any form.
func (d *Dataset) HasColumn(name string) bool {
	_, dim := d.dims[name]
	_, num := d.nums[name]
	return dim || num
}

// IsNumeric reports whether the named column was coerced to numeric.
func (d *Dataset) IsNumeric(name string) bool {
	_, ok := d.nums[name]
	return ok
}

// View returns a read-only view over all rows.
func (d *Dataset) View() View {
	return View{d: d}
}

// View is a read-only projection of a Dataset: an index list into the
// parent table, so filtering never copies row data.
type View struct {
	d   *Dataset
	idx []int // nil means all rows
}

// Len returns the number of rows visible through the view.
func (v View) Len() int {
	if v.d == nil {
		return 0
	}
	if v.idx == nil {
		return v.d.rows
	}
	return len(v.idx)
}

// Dataset returns the parent dataset.
func (v View) Dataset() *Dataset { return v.d }

// HasColumn reports whether the parent dataset carries the column.
func (v View) HasColumn(name string) bool {
	return v.d != nil && v.d.HasColumn(name)
}

// IsNumeric reports whether the column holds coerced numeric values.
func (v View) IsNumeric(name string) bool {
	return v.d != nil && v.d.IsNumeric(name)
}

// Capabilities returns the parent dataset's capability set.
func (v View) Capabilities() Capabilities {
	if v.d == nil {
		return nil
	}
	return v.d.caps
}

func (v View) row(i int) int {
	if v.idx == nil {
		return i
	}
	return v.idx[i]
}

// Dim returns the string value of a dimension column at row i.
// Returns "" for unknown columns or out-of-range rows.
func (v View) Dim(i int, name string) string {
	if v.d == nil || i < 0 || i >= v.Len() {
		return ""
	}
	col, ok := v.d.dims[name]
	if !ok {
		return ""
	}
	return col[v.row(i)]
}

// Num returns the numeric value at row i, or NaN when the column is
// unknown or the cell did not parse. Callers skip NaN, never fail on it.
func (v View) Num(i int, name string) float64 {
	if v.d == nil || i < 0 || i >= v.Len() {
		return math.NaN()
	}
	col, ok := v.d.nums[name]
	if !ok {
		return math.NaN()
	}
	return col[v.row(i)]
}

// Missing reports whether the numeric cell at row i has no usable value.
func (v View) Missing(i int, name string) bool {
	return math.IsNaN(v.Num(i, name))
}

// Unique returns the distinct non-empty values of a dimension column in
// first-seen order. A missing column yields nil.
func (v View) Unique(name string) []string {
	if !v.HasColumn(name) {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < v.Len(); i++ {
		val := v.Dim(i, name)
		if val != "" && !seen[val] {
			seen[val] = true
			out = append(out, val)
		}
	}
	return out
}

// Take builds a sub-view from row positions within v, in the given
// order. Positions are view-relative, not parent-relative.
func (v View) Take(positions []int) View {
	return v.narrow(positions)
}

// narrow builds a sub-view from positions within v (not parent rows).
func (v View) narrow(positions []int) View {
	rows := make([]int, len(positions))
	for i, p := range positions {
		rows[i] = v.row(p)
	}
	return View{d: v.d, idx: rows}
}
