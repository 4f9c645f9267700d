package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
)

func TestScaleCurrency(t *testing.T) {
	assert.Equal(t, "Rp 1.23T", ScaleCurrency(1.234e12, Trillion))
	assert.Equal(t, "Rp 2.5M", ScaleCurrency(2.5e9, Billion))
	assert.Equal(t, "Rp 0.00T", ScaleCurrency(0, Trillion))
	// Sign passes through unchanged.
	assert.Equal(t, "Rp -0.50T", ScaleCurrency(-0.5e12, Trillion))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "9.50%", Percent(9.5))
	assert.Equal(t, "n/a", Percent(math.NaN()))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0", GroupThousands(0))
	assert.Equal(t, "999", GroupThousands(999))
	assert.Equal(t, "1,000", GroupThousands(1000))
	assert.Equal(t, "2,500,000,000", GroupThousands(2500000000))
	assert.Equal(t, "-12,345", GroupThousands(-12345))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1,000,000,000", Number(1e9))
	assert.Equal(t, "10.25", Number(10.25))
	assert.Equal(t, "", Number(math.NaN()))
}

const exportCSV = `NAMA_WP,Kategori,Segmentasi,Total_Omset_12Bulan,Total_Pajak_12Bulan,Efektivitas_Pajak
Warung Sari,Cafe,Besar,1000000000,100000000,10.0
RM Padang Jaya,Restoran,Menengah,2000000000,300000000,15.0
Kedai Kopi Lima,Cafe,Kecil,3000000000,200000000,
`

func TestCSVRowsSkipsAbsentColumns(t *testing.T) {
	d, err := dataset.Parse([]byte("NAMA_WP,Kategori\nA,Cafe\n"), dataset.Options{})
	require.NoError(t, err)
	rows := CSVRows(d.View(), []string{dataset.ColName, dataset.ColOmset, dataset.ColKategori})
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"NAMA_WP", "Kategori"}, rows[0])
	assert.Equal(t, []string{"A", "Cafe"}, rows[1])
}

func TestCSVRowsRoundTrip(t *testing.T) {
	d, err := dataset.Parse([]byte(exportCSV), dataset.Options{})
	require.NoError(t, err)
	v := d.View()

	rows := CSVRows(v, []string{
		dataset.ColName, dataset.ColKategori, dataset.ColOmset,
		dataset.ColPajak, dataset.ColEfektivitas, dataset.ColSegmentasi,
	})
	require.Len(t, rows, 4)

	// Re-serialize and re-parse: same record count, same identifiers.
	var raw []byte
	for _, r := range rows {
		for j, cell := range r {
			if j > 0 {
				raw = append(raw, ';')
			}
			raw = append(raw, []byte(cell)...)
		}
		raw = append(raw, '\n')
	}
	back, err := dataset.Parse(raw, dataset.Options{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, v.Len(), back.Len())

	want := make(map[string]bool)
	for i := 0; i < v.Len(); i++ {
		want[v.Dim(i, dataset.ColName)] = true
	}
	bv := back.View()
	for i := 0; i < bv.Len(); i++ {
		assert.True(t, want[bv.Dim(i, dataset.ColName)])
	}

	// Numeric formatting survives the round trip.
	assert.Equal(t, 1000000000.0, bv.Num(0, dataset.ColOmset))
	assert.Equal(t, 10.0, bv.Num(0, dataset.ColEfektivitas))
}
