package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
)

func TestHistogramEqualWidthBuckets(t *testing.T) {
	raw := `NAMA_WP,Efektivitas_Pajak
a,0
b,2.5
c,5
d,7.5
e,10
`
	d, err := dataset.Parse([]byte(raw), dataset.Options{})
	require.NoError(t, err)

	buckets := Histogram(d.View(), dataset.ColEfektivitas, 2)
	require.Len(t, buckets, 2)
	assert.Equal(t, 0.0, buckets[0].Lower)
	assert.Equal(t, 5.0, buckets[0].Upper)
	assert.Equal(t, 10.0, buckets[1].Upper)
	// 0 and 2.5 in the first bucket; 5, 7.5 and the max 10 in the last.
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 3, buckets[1].Count)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 5, total)
}

func TestHistogramEmptyAndDegenerate(t *testing.T) {
	empty, err := dataset.Parse([]byte("NAMA_WP,Efektivitas_Pajak\n"), dataset.Options{})
	require.NoError(t, err)
	assert.Nil(t, Histogram(empty.View(), dataset.ColEfektivitas, 5))

	v := exampleView(t)
	assert.Nil(t, Histogram(v, "No_Such_Column", 5))
	assert.Nil(t, Histogram(v, dataset.ColEfektivitas, 0))

	// All values identical: one bucket, no division by zero.
	same, err := dataset.Parse([]byte("NAMA_WP,Efektivitas_Pajak\na,7\nb,7\n"), dataset.Options{})
	require.NoError(t, err)
	buckets := Histogram(same.View(), dataset.ColEfektivitas, 4)
	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets[0].Count)
}

func TestQuartilesLinearInterpolation(t *testing.T) {
	raw := `NAMA_WP,Segmentasi,Efektivitas_Pajak
a,Besar,1
b,Besar,2
c,Besar,3
d,Besar,4
e,Besar,5
`
	d, err := dataset.Parse([]byte(raw), dataset.Options{})
	require.NoError(t, err)

	stats := Quartiles(d.View(), dataset.ColSegmentasi, dataset.ColEfektivitas)
	require.Contains(t, stats, "Besar")
	s := stats["Besar"]
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 2.0, s.Q1)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 4.0, s.Q3)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 5, s.Count)
	assert.Empty(t, s.Outliers)
}

func TestQuartilesInterpolatesBetweenOrderStats(t *testing.T) {
	raw := `NAMA_WP,Segmentasi,Efektivitas_Pajak
a,Kecil,1
b,Kecil,2
c,Kecil,3
d,Kecil,4
`
	d, err := dataset.Parse([]byte(raw), dataset.Options{})
	require.NoError(t, err)

	s := Quartiles(d.View(), dataset.ColSegmentasi, dataset.ColEfektivitas)["Kecil"]
	assert.InDelta(t, 1.75, s.Q1, 1e-9)
	assert.InDelta(t, 2.5, s.Median, 1e-9)
	assert.InDelta(t, 3.25, s.Q3, 1e-9)
}

func TestQuartilesFlagsOutliers(t *testing.T) {
	raw := `NAMA_WP,Segmentasi,Efektivitas_Pajak
a,Besar,10
b,Besar,11
c,Besar,10.5
d,Besar,10.2
e,Besar,10.8
f,Besar,50
`
	d, err := dataset.Parse([]byte(raw), dataset.Options{})
	require.NoError(t, err)
	s := Quartiles(d.View(), dataset.ColSegmentasi, dataset.ColEfektivitas)["Besar"]
	require.Len(t, s.Outliers, 1)
	assert.Equal(t, 50.0, s.Outliers[0])
}

func TestQuartilesMissingColumn(t *testing.T) {
	v := exampleView(t)
	assert.Nil(t, Quartiles(v, "No_Such_Column", dataset.ColEfektivitas))
	assert.Nil(t, Quartiles(v, dataset.ColSegmentasi, "No_Such_Column"))
}
