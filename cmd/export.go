package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/export"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/report"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/utils"
)

var (
	expOutDir string
	expFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered detail table to a date-named CSV or XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		outDir := expOutDir
		if outDir == "" {
			outDir = c.ExportDir
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("ensure export dir: %w", err)
		}

		s, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		printWarnings(s)

		ws, err := report.Load(outDir)
		if err != nil {
			ws = report.New("pajak-restoran", s.ID, c.SourceURL, outDir)
		}

		now := time.Now()
		wroteAny := false
		if expFormat == "csv" || expFormat == "all" {
			path, err := export.SessionCSV(s, outDir, now)
			if err != nil {
				return err
			}
			ws.AddArtifact(path, "csv")
			fmt.Printf("✓ Wrote %s\n", path)
			wroteAny = true
		}
		if expFormat == "xlsx" || expFormat == "all" {
			path, err := export.SessionXLSX(s, outDir, now)
			if err != nil {
				return err
			}
			ws.AddArtifact(path, "xlsx")
			fmt.Printf("✓ Wrote %s\n", path)
			wroteAny = true
		}
		if !wroteAny {
			return fmt.Errorf("unsupported --format: %s (use csv|xlsx|all)", expFormat)
		}
		return ws.Save()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expOutDir, "out", "o", "", "output directory (default: configured export_dir)")
	exportCmd.Flags().StringVar(&expFormat, "format", "csv", "export format: csv|xlsx|all")
}
