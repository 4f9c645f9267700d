// Package risk derives a high-risk flag from each taxpayer's
// effectiveness ratio. The upstream Label_Risiko column comes from a
// model outside this codebase and is carried through as opaque data,
// never recomputed here.
package risk

import (
	"math"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/engine"
)

// DefaultThreshold is the effectiveness percentage below which a
// taxpayer is flagged, matching the upstream dashboards.
const DefaultThreshold = 9.5

// Level is the derived risk classification.
type Level int

const (
	Normal Level = iota
	HighRisk
)

func (l Level) String() string {
	if l == HighRisk {
		return "high-risk"
	}
	return "normal"
}

// Classify flags a record as HighRisk when its effectiveness percentage
// is present and below thresholdPct. A missing value (NaN) is Normal,
// never flagged. Pure function, no state.
func Classify(effectivenessPct, thresholdPct float64) Level {
	if math.IsNaN(effectivenessPct) {
		return Normal
	}
	if effectivenessPct < thresholdPct {
		return HighRisk
	}
	return Normal
}

// Summary tallies derived risk over a filtered view.
type Summary struct {
	Total    int
	HighRisk int
	Normal   int
	Missing  int
	// HighRiskShare is HighRisk/Total; 0 for an empty view.
	HighRiskShare float64
	// UpstreamLabels tallies the opaque Label_Risiko column when present.
	UpstreamLabels []engine.GroupCount
}

// Summarize classifies every record in the view against the threshold.
func Summarize(v dataset.View, thresholdPct float64) Summary {
	s := Summary{Total: v.Len()}
	for i := 0; i < v.Len(); i++ {
		eff := v.Num(i, dataset.ColEfektivitas)
		if math.IsNaN(eff) {
			s.Missing++
		}
		if Classify(eff, thresholdPct) == HighRisk {
			s.HighRisk++
		} else {
			s.Normal++
		}
	}
	if s.Total > 0 {
		s.HighRiskShare = float64(s.HighRisk) / float64(s.Total)
	}
	if v.Capabilities().Has(dataset.CapUpstreamRiskLabels) {
		s.UpstreamLabels = engine.CountBy(v, dataset.ColLabelRisiko)
	}
	return s
}
