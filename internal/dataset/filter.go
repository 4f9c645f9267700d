package dataset

import "strings"

// Selection holds the user's filter choices: allowed Kategori values and
// allowed Segmentasi values. An empty slice on a dimension means "all":
// no selection never hides data. Dimensions combine with AND, values
// within one dimension with OR.
type Selection struct {
	Categories []string
	Segments   []string
}

// IsEmpty reports whether the selection restricts nothing.
func (s Selection) IsEmpty() bool {
	return len(s.Categories) == 0 && len(s.Segments) == 0
}

// Filter returns the sub-view of records whose Kategori is in
// sel.Categories AND whose Segmentasi is in sel.Segments. Matching is
// case-insensitive. A filter dimension absent from the dataset is
// vacuously true; records are never excluded just because the column
// doesn't exist.
func (v View) Filter(sel Selection) View {
	if sel.IsEmpty() {
		return v
	}

	type pred struct {
		col string
		set map[string]bool
	}
	var preds []pred
	if len(sel.Categories) > 0 && v.HasColumn(ColKategori) {
		preds = append(preds, pred{ColKategori, toLowerSet(sel.Categories)})
	}
	if len(sel.Segments) > 0 && v.HasColumn(ColSegmentasi) {
		preds = append(preds, pred{ColSegmentasi, toLowerSet(sel.Segments)})
	}
	if len(preds) == 0 {
		return v
	}

	keep := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		pass := true
		for _, p := range preds {
			if !p.set[strings.ToLower(v.Dim(i, p.col))] {
				pass = false
				break
			}
		}
		if pass {
			keep = append(keep, i)
		}
	}
	return v.narrow(keep)
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = true
	}
	return set
}
