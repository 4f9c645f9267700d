package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tstrequire "github.com/stretchr/testify/require"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/risk"
)

const dashCSV = `NAMA_WP,Kategori,Segmentasi,Total_Omset_12Bulan,Total_Pajak_12Bulan,Efektivitas_Pajak,Label_Risiko
Warung Sari,Cafe,Besar,1000000000,100000000,10.0,Rendah
RM Padang Jaya,Restoran,Menengah,2000000000,300000000,15.0,Rendah
Kedai Kopi Lima,Cafe,Kecil,3000000000,200000000,6.67,Tinggi
Bakso Mas Tris,Restoran,Kecil,500000000,20000000,4.0,Tinggi
`

func newTestSession(t *testing.T, raw string) *Session {
	t.Helper()
	d, err := dataset.Parse([]byte(raw), dataset.Options{})
	tstrequire.NoError(t, err)
	return NewSession(d)
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession(t, dashCSV)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, risk.DefaultThreshold, s.RiskThreshold)
	assert.True(t, s.Selection.IsEmpty())
	assert.Equal(t, 4, s.Filtered().Len())
}

func TestSummaryKPIs(t *testing.T) {
	s := newTestSession(t, dashCSV)
	tiles := Summary(s)
	tstrequire.Len(t, tiles, 4)
	assert.Equal(t, KPI{Label: "Total WP", Value: "4"}, tiles[0])
	assert.Equal(t, KPI{Label: "Total Omset (Triliun)", Value: "Rp 0.01T"}, tiles[1])
	assert.Equal(t, KPI{Label: "Total Pajak (Triliun)", Value: "Rp 0.00T"}, tiles[2])
	// Mean of 10.0, 15.0, 6.67, 4.0.
	assert.Equal(t, KPI{Label: "Rata-rata Efektivitas", Value: "8.92%"}, tiles[3])
}

func TestSummaryRecomputesPerFilterChange(t *testing.T) {
	s := newTestSession(t, dashCSV)
	s.Selection = dataset.Selection{Categories: []string{"Cafe"}}
	tiles := Summary(s)
	assert.Equal(t, "2", tiles[0].Value)

	s.Selection = dataset.Selection{}
	tiles = Summary(s)
	assert.Equal(t, "4", tiles[0].Value)
}

func TestSummaryDegradesWithoutColumns(t *testing.T) {
	s := newTestSession(t, "NAMA_WP,Kategori\nA,Cafe\nB,Restoran\n")
	tiles := Summary(s)
	// Only the record-count tile remains.
	tstrequire.Len(t, tiles, 1)
	assert.Equal(t, "Total WP", tiles[0].Label)
}

func TestViewIsolationOnMissingColumns(t *testing.T) {
	s := newTestSession(t, "NAMA_WP,Kategori,Total_Omset_12Bulan\nA,Cafe,100\nB,Restoran,300\n")

	// Segment views degrade...
	_, err := SegmentDistribution(s)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	_, err = SegmentEffectivenessBox(s)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	_, err = ScatterPoints(s)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	// ...while category revenue still works.
	stats, err := CategoryMeanRevenue(s)
	tstrequire.NoError(t, err)
	tstrequire.Len(t, stats, 2)
	assert.Equal(t, "Cafe", stats[0].Key)
}

func TestSegmentEffectivenessBox(t *testing.T) {
	s := newTestSession(t, dashCSV)
	stats, err := SegmentEffectivenessBox(s)
	tstrequire.NoError(t, err)
	tstrequire.Len(t, stats, 3)

	// Kecil holds 6.67 and 4.0.
	kecil := stats["Kecil"]
	assert.Equal(t, 2, kecil.Count)
	assert.InDelta(t, 4.0, kecil.Min, 1e-9)
	assert.InDelta(t, 6.67, kecil.Max, 1e-9)
	assert.InDelta(t, 5.335, kecil.Median, 1e-9)

	besar := stats["Besar"]
	assert.Equal(t, 1, besar.Count)
	assert.InDelta(t, 10.0, besar.Median, 1e-9)
}

func TestSegmentDistribution(t *testing.T) {
	s := newTestSession(t, dashCSV)
	dist, err := SegmentDistribution(s)
	tstrequire.NoError(t, err)
	tstrequire.Len(t, dist, 3)
	assert.Equal(t, "Kecil", dist[0].Key)
	assert.Equal(t, 2, dist[0].Count)
}

func TestCategoryMeanRevenueSortedAscending(t *testing.T) {
	s := newTestSession(t, dashCSV)
	stats, err := CategoryMeanRevenue(s)
	tstrequire.NoError(t, err)
	tstrequire.Len(t, stats, 2)
	// Restoran mean 1.25e9 < Cafe mean 2e9.
	assert.Equal(t, "Restoran", stats[0].Key)
	assert.Equal(t, 1.25e9, stats[0].Mean)
	assert.Equal(t, "Cafe", stats[1].Key)
	assert.Equal(t, 2e9, stats[1].Mean)
}

func TestScatterPoints(t *testing.T) {
	s := newTestSession(t, dashCSV)
	pts, err := ScatterPoints(s)
	tstrequire.NoError(t, err)
	tstrequire.Len(t, pts, 4)
	assert.Equal(t, "Warung Sari", pts[0].Name)
	assert.Equal(t, risk.Normal, pts[0].DerivedLevel)
	assert.Equal(t, risk.HighRisk, pts[2].DerivedLevel) // 6.67 < 9.5
}

func TestTopByUnknownColumn(t *testing.T) {
	s := newTestSession(t, dashCSV)
	_, err := TopBy(s, 3, "No_Such_Column")
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	v, err := TopBy(s, 2, dataset.ColPajak)
	tstrequire.NoError(t, err)
	tstrequire.Equal(t, 2, v.Len())
	assert.Equal(t, "RM Padang Jaya", v.Dim(0, dataset.ColName))
}

func TestDetailRowsSortedByOmsetDescending(t *testing.T) {
	s := newTestSession(t, dashCSV)
	rows := DetailRows(s)
	tstrequire.Len(t, rows, 5) // header + 4 records
	assert.Equal(t, "Kedai Kopi Lima", rows[1][0])
	assert.Equal(t, "Bakso Mas Tris", rows[4][0])
}

func TestRiskSummary(t *testing.T) {
	s := newTestSession(t, dashCSV)
	rs := RiskSummary(s)
	assert.Equal(t, 4, rs.Total)
	assert.Equal(t, 2, rs.HighRisk) // 6.67 and 4.0 below 9.5
}

func TestValidateFlagsTaxAboveRevenue(t *testing.T) {
	s := newTestSession(t, `NAMA_WP,Total_Omset_12Bulan,Total_Pajak_12Bulan
ok,100,10
bad,100,150
`)
	findings := Validate(s)
	tstrequire.Len(t, findings, 1)
	assert.Contains(t, findings[0], "bad")
}
