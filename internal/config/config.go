package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultSourceURL is the published CSV produced by the upstream
// PySpark analysis job.
const DefaultSourceURL = "https://raw.githubusercontent.com/hadiswara/pajak-restoran-dashboard/main/dashboard_pajak_data.csv"

// Global configuration structure.
type Global struct {
	SourceURL        string  `mapstructure:"source_url" yaml:"source_url"`
	HTTPTimeoutSec   int     `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RiskThresholdPct float64 `mapstructure:"risk_threshold_pct" yaml:"risk_threshold_pct"`
	HistogramBuckets int     `mapstructure:"histogram_buckets" yaml:"histogram_buckets"`
	TopN             int     `mapstructure:"top_n" yaml:"top_n"`
	ExportDir        string  `mapstructure:"export_dir" yaml:"export_dir"`
	LogLevel         string  `mapstructure:"log_level" yaml:"log_level"`
	LogFormat        string  `mapstructure:"log_format" yaml:"log_format"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.pajakresto/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".pajakresto")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PAJAKRESTO")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source_url", DefaultSourceURL)
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("risk_threshold_pct", 9.5)
	v.SetDefault("histogram_buckets", 10)
	v.SetDefault("top_n", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".pajakresto")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve export_dir default: ~/.pajakresto/exports
	if c.ExportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.ExportDir = filepath.Join(home, ".pajakresto", "exports")
	}
	return &c, nil
}
