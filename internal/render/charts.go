// Package render draws the dashboard charts to PNG files. It is the
// file-based stand-in for the interactive chart layer: every function
// takes an already-computed view feed, so a failed chart never affects
// the others.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dashboard"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/engine"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/risk"
)

var (
	barBlue   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	okGreen   = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	riskRed   = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	histAmber = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// CategoryBarChart renders the mean-omset-per-kategori bar chart with
// values scaled to miliar (1e9).
func CategoryBarChart(stats []engine.GroupStat, path string) error {
	if len(stats) == 0 {
		return fmt.Errorf("no category data to chart")
	}
	p := plot.New()
	p.Title.Text = "Rata-rata Omset per Kategori"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Kategori"
	p.Y.Label.Text = "Omset (Miliar Rp)"

	values := make(plotter.Values, len(stats))
	labels := make([]string, len(stats))
	for i, st := range stats {
		values[i] = st.Mean / 1e9
		labels[i] = st.Key
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barBlue
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	p.Add(plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// HistogramChart renders effectiveness distribution buckets as bars
// labeled with their ranges.
func HistogramChart(buckets []engine.Bucket, path string) error {
	if len(buckets) == 0 {
		return fmt.Errorf("no histogram data to chart")
	}
	p := plot.New()
	p.Title.Text = "Distribusi Efektivitas Pajak"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Efektivitas (%)"
	p.Y.Label.Text = "Jumlah WP"

	values := make(plotter.Values, len(buckets))
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		values[i] = float64(b.Count)
		labels[i] = fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = histAmber
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// ScatterChart renders omset vs pajak, coloring each taxpayer by its
// derived risk flag.
func ScatterChart(points []dashboard.ScatterPoint, path string) error {
	if len(points) == 0 {
		return fmt.Errorf("no scatter data to chart")
	}
	p := plot.New()
	p.Title.Text = "Hubungan Omset vs Pajak"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Omset 12 Bulan (Miliar Rp)"
	p.Y.Label.Text = "Pajak 12 Bulan (Miliar Rp)"

	var normal, flagged plotter.XYs
	for _, pt := range points {
		xy := plotter.XY{X: pt.Omset / 1e9, Y: pt.Pajak / 1e9}
		if pt.DerivedLevel == risk.HighRisk {
			flagged = append(flagged, xy)
		} else {
			normal = append(normal, xy)
		}
	}
	for _, series := range []struct {
		xys plotter.XYs
		col color.RGBA
	}{{normal, okGreen}, {flagged, riskRed}} {
		if len(series.xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(series.xys)
		if err != nil {
			return fmt.Errorf("scatter: %w", err)
		}
		sc.GlyphStyle.Color = series.col
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
	}
	p.Add(plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// SegmentBoxChart renders per-segment effectiveness box plots from the
// filtered view.
func SegmentBoxChart(v dataset.View, path string) error {
	segments := v.Unique(dataset.ColSegmentasi)
	if len(segments) == 0 || !v.IsNumeric(dataset.ColEfektivitas) {
		return fmt.Errorf("no segment data to chart")
	}
	p := plot.New()
	p.Title.Text = "Efektivitas Pajak per Segmentasi"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Efektivitas (%)"

	added := 0
	var labels []string
	for _, seg := range segments {
		var vals plotter.Values
		for i := 0; i < v.Len(); i++ {
			if v.Dim(i, dataset.ColSegmentasi) == seg && !v.Missing(i, dataset.ColEfektivitas) {
				vals = append(vals, v.Num(i, dataset.ColEfektivitas))
			}
		}
		if len(vals) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(added), vals)
		if err != nil {
			return fmt.Errorf("box plot %s: %w", seg, err)
		}
		p.Add(box)
		labels = append(labels, seg)
		added++
	}
	if added == 0 {
		return fmt.Errorf("no segment data to chart")
	}
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
