package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		eff       float64
		threshold float64
		want      Level
	}{
		{"below threshold", 9.0, 9.5, HighRisk},
		{"at threshold", 9.5, 9.5, Normal},
		{"above threshold", 12.0, 9.5, Normal},
		{"zero", 0, 9.5, HighRisk},
		{"missing value is not risk", math.NaN(), 9.5, Normal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.eff, tt.threshold))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "high-risk", HighRisk.String())
	assert.Equal(t, "normal", Normal.String())
}

func TestSummarize(t *testing.T) {
	raw := `NAMA_WP,Efektivitas_Pajak,Label_Risiko
a,9.0,Tinggi
b,15.0,Rendah
c,,Rendah
d,5.0,Tinggi
`
	d, err := dataset.Parse([]byte(raw), dataset.Options{})
	require.NoError(t, err)

	s := Summarize(d.View(), DefaultThreshold)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.HighRisk)
	assert.Equal(t, 2, s.Normal)
	assert.Equal(t, 1, s.Missing)
	assert.InDelta(t, 0.5, s.HighRiskShare, 1e-9)

	require.Len(t, s.UpstreamLabels, 2)
	assert.Equal(t, "Rendah", s.UpstreamLabels[0].Key)
	assert.Equal(t, 2, s.UpstreamLabels[0].Count)
}

func TestSummarizeEmptyView(t *testing.T) {
	d, err := dataset.Parse([]byte("NAMA_WP,Efektivitas_Pajak\n"), dataset.Options{})
	require.NoError(t, err)
	s := Summarize(d.View(), DefaultThreshold)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.HighRiskShare)
}

func TestSummarizeWithoutUpstreamLabels(t *testing.T) {
	d, err := dataset.Parse([]byte("NAMA_WP,Efektivitas_Pajak\na,3.0\n"), dataset.Options{})
	require.NoError(t, err)
	s := Summarize(d.View(), DefaultThreshold)
	assert.Equal(t, 1, s.HighRisk)
	assert.Nil(t, s.UpstreamLabels)
}
