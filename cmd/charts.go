package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dashboard"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/render"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/report"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/utils"
)

var (
	chartsOutDir  string
	chartsBuckets int
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the dashboard charts to PNG files",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		outDir := chartsOutDir
		if outDir == "" {
			outDir = c.ExportDir
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("ensure chart dir: %w", err)
		}

		s, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		printWarnings(s)

		if !cmd.Flags().Changed("buckets") && c.HistogramBuckets > 0 {
			chartsBuckets = c.HistogramBuckets
		}

		ws, err := report.Load(outDir)
		if err != nil {
			ws = report.New("pajak-restoran", s.ID, c.SourceURL, outDir)
		}

		// Each chart has its own failure boundary: one broken view must
		// not keep the others from rendering.
		rendered := 0
		run := func(name string, draw func(path string) error) {
			path := filepath.Join(outDir, name)
			if err := draw(path); err != nil {
				fmt.Printf("⚠ %s skipped: %v\n", name, err)
				return
			}
			ws.AddArtifact(path, "chart")
			fmt.Printf("✓ Wrote %s\n", path)
			rendered++
		}

		run("omset_per_kategori.png", func(path string) error {
			stats, err := dashboard.CategoryMeanRevenue(s)
			if err != nil {
				return err
			}
			return render.CategoryBarChart(stats, path)
		})
		run("distribusi_efektivitas.png", func(path string) error {
			buckets, err := dashboard.EffectivenessHistogram(s, chartsBuckets)
			if err != nil {
				return err
			}
			return render.HistogramChart(buckets, path)
		})
		run("omset_vs_pajak.png", func(path string) error {
			points, err := dashboard.ScatterPoints(s)
			if err != nil {
				return err
			}
			return render.ScatterChart(points, path)
		})
		run("efektivitas_per_segmentasi.png", func(path string) error {
			return render.SegmentBoxChart(s.Filtered(), path)
		})

		if rendered == 0 {
			return fmt.Errorf("no chart could be rendered from this dataset")
		}
		return ws.Save()
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().StringVarP(&chartsOutDir, "out", "o", "", "output directory (default: configured export_dir)")
	chartsCmd.Flags().IntVar(&chartsBuckets, "buckets", 10, "number of effectiveness histogram buckets")
}
