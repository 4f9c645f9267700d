package dashboard

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/engine"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/format"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/risk"
)

// DisplayColumns is the detail-table column order.
var DisplayColumns = []string{
	dataset.ColName,
	dataset.ColKategori,
	dataset.ColOmset,
	dataset.ColPajak,
	dataset.ColEfektivitas,
	dataset.ColSegmentasi,
}

// KPI is one headline metric tile.
type KPI struct {
	Label string
	Value string
}

// Summary computes the KPI tiles for the current filter. Each tile is
// guarded by its own capability check, so a missing column drops that
// one tile and leaves the rest intact.
func Summary(s *Session) []KPI {
	v := s.Filtered()
	caps := v.Capabilities()

	tiles := []KPI{{Label: "Total WP", Value: format.GroupThousands(int64(engine.Count(v)))}}
	if caps.Has(dataset.CapRevenueTotals) {
		tiles = append(tiles, KPI{
			Label: "Total Omset (Triliun)",
			Value: format.ScaleCurrency(engine.Sum(v, dataset.ColOmset), format.Trillion),
		})
	}
	if caps.Has(dataset.CapTaxTotals) {
		tiles = append(tiles, KPI{
			Label: "Total Pajak (Triliun)",
			Value: format.ScaleCurrency(engine.Sum(v, dataset.ColPajak), format.Trillion),
		})
	}
	if caps.Has(dataset.CapEffectiveness) {
		if mean, ok := engine.Mean(v, dataset.ColEfektivitas); ok {
			tiles = append(tiles, KPI{Label: "Rata-rata Efektivitas", Value: format.Percent(mean)})
		}
	}
	return tiles
}

// SegmentDistribution feeds the pie chart: record counts per Segmentasi.
func SegmentDistribution(s *Session) ([]engine.GroupCount, error) {
	if err := require(s, dataset.CapSegmentBreakdown, dataset.ColSegmentasi); err != nil {
		return nil, err
	}
	return engine.CountBy(s.Filtered(), dataset.ColSegmentasi), nil
}

// CategoryMeanRevenue feeds the horizontal bar chart: mean Omset per
// Kategori in rupiah, sorted ascending like the source dashboard.
func CategoryMeanRevenue(s *Session) ([]engine.GroupStat, error) {
	if err := require(s, dataset.CapCategoryBreakdown, dataset.ColKategori); err != nil {
		return nil, err
	}
	if err := require(s, dataset.CapRevenueTotals, dataset.ColOmset); err != nil {
		return nil, err
	}
	return engine.GroupMean(s.Filtered(), dataset.ColKategori, dataset.ColOmset, engine.Ascending), nil
}

// ScatterPoint is one taxpayer in the omset-vs-pajak scatter.
type ScatterPoint struct {
	Name         string
	Segment      string
	Omset        float64
	Pajak        float64
	Efektivitas  float64
	DerivedLevel risk.Level
}

// ScatterPoints feeds the scatter chart. Records missing either measure
// are skipped; optional columns fill in when present.
func ScatterPoints(s *Session) ([]ScatterPoint, error) {
	if err := require(s, dataset.CapRevenueTotals, dataset.ColOmset); err != nil {
		return nil, err
	}
	if err := require(s, dataset.CapTaxTotals, dataset.ColPajak); err != nil {
		return nil, err
	}
	v := s.Filtered()
	pts := make([]ScatterPoint, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.Missing(i, dataset.ColOmset) || v.Missing(i, dataset.ColPajak) {
			continue
		}
		eff := v.Num(i, dataset.ColEfektivitas)
		pts = append(pts, ScatterPoint{
			Name:         v.Dim(i, dataset.ColName),
			Segment:      v.Dim(i, dataset.ColSegmentasi),
			Omset:        v.Num(i, dataset.ColOmset),
			Pajak:        v.Num(i, dataset.ColPajak),
			Efektivitas:  eff,
			DerivedLevel: risk.Classify(eff, s.RiskThreshold),
		})
	}
	return pts, nil
}

// EffectivenessHistogram feeds the distribution chart.
func EffectivenessHistogram(s *Session, buckets int) ([]engine.Bucket, error) {
	if err := require(s, dataset.CapEffectiveness, dataset.ColEfektivitas); err != nil {
		return nil, err
	}
	return engine.Histogram(s.Filtered(), dataset.ColEfektivitas, buckets), nil
}

// SegmentEffectivenessBox feeds the per-segment box plot.
func SegmentEffectivenessBox(s *Session) (map[string]engine.BoxStats, error) {
	if err := require(s, dataset.CapSegmentBreakdown, dataset.ColSegmentasi); err != nil {
		return nil, err
	}
	if err := require(s, dataset.CapEffectiveness, dataset.ColEfektivitas); err != nil {
		return nil, err
	}
	return engine.Quartiles(s.Filtered(), dataset.ColSegmentasi, dataset.ColEfektivitas), nil
}

// TopBy returns the n records with the largest values of rankCol.
func TopBy(s *Session, n int, rankCol string) (dataset.View, error) {
	v := s.Filtered()
	if !v.IsNumeric(rankCol) {
		return dataset.View{}, fmt.Errorf("%s: %w", rankCol, dataset.ErrMissingColumn)
	}
	return engine.TopN(v, n, rankCol), nil
}

// DetailRows materializes the sortable detail table: display columns,
// ordered by Omset descending when the column exists, original order
// otherwise.
func DetailRows(s *Session) [][]string {
	v := s.Filtered()
	if v.IsNumeric(dataset.ColOmset) {
		v = engine.TopN(v, v.Len(), dataset.ColOmset)
	}
	return format.CSVRows(v, DisplayColumns)
}

// RiskSummary tallies derived risk flags over the current filter.
func RiskSummary(s *Session) risk.Summary {
	return risk.Summarize(s.Filtered(), s.RiskThreshold)
}

// Validate checks the tax-vs-revenue invariant the source does not
// enforce: tax realized should never exceed revenue. Violations are
// reported, not rejected.
func Validate(s *Session) []string {
	v := s.Filtered()
	if !v.IsNumeric(dataset.ColOmset) || !v.IsNumeric(dataset.ColPajak) {
		return nil
	}
	var findings []string
	for i := 0; i < v.Len(); i++ {
		omset, pajak := v.Num(i, dataset.ColOmset), v.Num(i, dataset.ColPajak)
		if math.IsNaN(omset) || math.IsNaN(pajak) {
			continue
		}
		if pajak > omset {
			name := v.Dim(i, dataset.ColName)
			if name == "" {
				name = fmt.Sprintf("row %d", i+1)
			}
			findings = append(findings, fmt.Sprintf("%s: tax %.0f exceeds revenue %.0f", name, pajak, omset))
		}
	}
	if len(findings) > 0 {
		slog.Warn("tax exceeds revenue for some records", "count", len(findings))
	}
	return findings
}

func require(s *Session, c dataset.Capability, col string) error {
	if !s.Data.Capabilities().Has(c) {
		return fmt.Errorf("%s: %w", col, dataset.ErrMissingColumn)
	}
	return nil
}
