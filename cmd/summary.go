package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dashboard"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/format"
)

var sumHistBuckets int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show KPI metrics, group breakdowns, and risk tallies for the current filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		printWarnings(s)

		if !cmd.Flags().Changed("buckets") && cfg != nil && cfg.HistogramBuckets > 0 {
			sumHistBuckets = cfg.HistogramBuckets
		}

		fmt.Println("── Ringkasan ──")
		for _, kpi := range dashboard.Summary(s) {
			fmt.Printf("%-26s %s\n", kpi.Label, kpi.Value)
		}

		// Each derived view degrades independently: a missing column
		// skips that section and the rest still print.
		if dist, err := dashboard.SegmentDistribution(s); err == nil {
			fmt.Println("\n── Distribusi Segmentasi ──")
			for _, g := range dist {
				fmt.Printf("%-20s %s\n", g.Key, format.GroupThousands(int64(g.Count)))
			}
		} else if !errors.Is(err, dataset.ErrMissingColumn) {
			return err
		}

		if stats, err := dashboard.CategoryMeanRevenue(s); err == nil {
			fmt.Println("\n── Rata-rata Omset per Kategori ──")
			for _, st := range stats {
				if !st.Valid {
					fmt.Printf("%-20s (no data, %d WP)\n", st.Key, st.Count)
					continue
				}
				fmt.Printf("%-20s %s  (%d WP)\n", st.Key, format.ScaleCurrency(st.Mean, format.Billion), st.Count)
			}
		} else if !errors.Is(err, dataset.ErrMissingColumn) {
			return err
		}

		if buckets, err := dashboard.EffectivenessHistogram(s, sumHistBuckets); err == nil && len(buckets) > 0 {
			fmt.Println("\n── Distribusi Efektivitas ──")
			for _, b := range buckets {
				fmt.Printf("%7.2f - %7.2f  %s\n", b.Lower, b.Upper, format.GroupThousands(int64(b.Count)))
			}
		}

		if stats, err := dashboard.SegmentEffectivenessBox(s); err == nil && len(stats) > 0 {
			fmt.Println("\n── Efektivitas per Segmentasi ──")
			segments := make([]string, 0, len(stats))
			for seg := range stats {
				segments = append(segments, seg)
			}
			sort.Strings(segments)
			for _, seg := range segments {
				b := stats[seg]
				fmt.Printf("%-20s min %.2f  Q1 %.2f  median %.2f  Q3 %.2f  max %.2f", seg, b.Min, b.Q1, b.Median, b.Q3, b.Max)
				if len(b.Outliers) > 0 {
					fmt.Printf("  (%d outlier)", len(b.Outliers))
				}
				fmt.Println()
			}
		}

		rs := dashboard.RiskSummary(s)
		fmt.Println("\n── Risiko ──")
		fmt.Printf("%-26s %d dari %d (%s)\n", "WP berisiko tinggi", rs.HighRisk, rs.Total, format.Percent(rs.HighRiskShare*100))
		if rs.Missing > 0 {
			fmt.Printf("%-26s %d\n", "Efektivitas tidak tersedia", rs.Missing)
		}
		for _, lbl := range rs.UpstreamLabels {
			fmt.Printf("%-26s %d\n", "Label upstream "+lbl.Key, lbl.Count)
		}

		if findings := dashboard.Validate(s); len(findings) > 0 {
			fmt.Printf("\n⚠ %d record dengan pajak melebihi omset\n", len(findings))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&sumHistBuckets, "buckets", 10, "number of effectiveness histogram buckets")
}
