package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureView(t *testing.T) View {
	t.Helper()
	d, err := Parse([]byte(fixtureCSV), Options{})
	require.NoError(t, err)
	return d.View()
}

func TestFilterEmptySelectionShowsAll(t *testing.T) {
	v := fixtureView(t)
	filtered := v.Filter(Selection{})
	assert.Equal(t, v.Len(), filtered.Len())
}

func TestFilterIdentityWithAllValues(t *testing.T) {
	v := fixtureView(t)
	sel := Selection{
		Categories: v.Unique(ColKategori),
		Segments:   v.Unique(ColSegmentasi),
	}
	assert.Equal(t, v.Len(), v.Filter(sel).Len())
}

func TestFilterConjunction(t *testing.T) {
	v := fixtureView(t)
	// Cafe AND Besar matches only Warung Sari.
	got := v.Filter(Selection{Categories: []string{"Cafe"}, Segments: []string{"Besar"}})
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Warung Sari", got.Dim(0, ColName))

	// Cafe alone matches two records.
	got = v.Filter(Selection{Categories: []string{"Cafe"}})
	assert.Equal(t, 2, got.Len())
}

func TestFilterIsSubset(t *testing.T) {
	v := fixtureView(t)
	parent := make(map[string]bool)
	for i := 0; i < v.Len(); i++ {
		parent[v.Dim(i, ColName)] = true
	}
	got := v.Filter(Selection{Segments: []string{"Kecil", "Menengah"}})
	assert.LessOrEqual(t, got.Len(), v.Len())
	for i := 0; i < got.Len(); i++ {
		assert.True(t, parent[got.Dim(i, ColName)], "filtered record not in parent")
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	v := fixtureView(t)
	got := v.Filter(Selection{Categories: []string{"cafe"}})
	assert.Equal(t, 2, got.Len())
}

func TestFilterMissingColumnIsVacuouslyTrue(t *testing.T) {
	d, err := Parse([]byte("NAMA_WP,Kategori\nA,Cafe\nB,Restoran\n"), Options{})
	require.NoError(t, err)
	v := d.View()
	// Segmentasi does not exist: the segment predicate must not exclude anyone.
	got := v.Filter(Selection{Categories: []string{"Cafe"}, Segments: []string{"Besar"}})
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "A", got.Dim(0, ColName))
}

func TestFilterComposesOnViews(t *testing.T) {
	v := fixtureView(t)
	first := v.Filter(Selection{Categories: []string{"Cafe"}})
	second := first.Filter(Selection{Segments: []string{"Kecil"}})
	require.Equal(t, 1, second.Len())
	assert.Equal(t, "Kedai Kopi Lima", second.Dim(0, ColName))
}
