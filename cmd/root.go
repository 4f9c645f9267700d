package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/hadiswara/pajak-restoran-dashboard/internal/config"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/logging"
)

var (
	// Global flags (wired to config/viper)
	cfgFile            string
	debug              bool
	flagSource         string
	flagRiskThreshold  float64
	flagHTTPTimeoutSec int
	flagKategori       []string
	flagSegmentasi     []string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "pajakresto",
	Short: "Analisis pajak restoran: filter, agregasi, dan ekspor dari CSV hasil PySpark",
	Long: `Pajakresto loads the published restaurant-tax CSV, applies Kategori and
Segmentasi filters, and derives the dashboard views: KPI metrics, grouped
aggregates, rankings, risk flags, chart files, and downloadable exports.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pajakresto/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "dataset URL or path (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagRiskThreshold, "risk-threshold", 0, "effectiveness % below which a taxpayer is flagged (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP fetch timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().StringSliceVar(&flagKategori, "kategori", nil, "restrict to these Kategori values (default: all)")
	rootCmd.PersistentFlags().StringSliceVar(&flagSegmentasi, "segmentasi", nil, "restrict to these Segmentasi values (default: all)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("source") && flagSource != "" {
		cfg.SourceURL = flagSource
	}
	if f.Changed("risk-threshold") && flagRiskThreshold > 0 {
		cfg.RiskThresholdPct = flagRiskThreshold
	}
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logging.Setup(level, cfg.LogFormat)
}
