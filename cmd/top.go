package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dashboard"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/format"
)

var (
	topCount int
	topBy    string
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the highest-ranked taxpayers by omset, pajak, or efektivitas",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rankCol string
		switch strings.ToLower(topBy) {
		case "omset":
			rankCol = dataset.ColOmset
		case "pajak":
			rankCol = dataset.ColPajak
		case "efektivitas":
			rankCol = dataset.ColEfektivitas
		default:
			return fmt.Errorf("unsupported --by: %s (use omset|pajak|efektivitas)", topBy)
		}

		s, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("n") && cfg != nil && cfg.TopN > 0 {
			topCount = cfg.TopN
		}
		v, err := dashboard.TopBy(s, topCount, rankCol)
		if err != nil {
			return err
		}

		fmt.Printf("── Top %d berdasarkan %s ──\n", v.Len(), topBy)
		for i := 0; i < v.Len(); i++ {
			name := v.Dim(i, dataset.ColName)
			if name == "" {
				name = fmt.Sprintf("(record %d)", i+1)
			}
			fmt.Printf("%2d. %-32s %s\n", i+1, name, format.Cell(v, i, rankCol))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topCmd)
	topCmd.Flags().IntVarP(&topCount, "n", "n", 10, "number of records to show")
	topCmd.Flags().StringVar(&topBy, "by", "omset", "ranking column: omset|pajak|efektivitas")
}
