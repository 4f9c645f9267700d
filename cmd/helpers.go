package cmd

import (
	"context"
	"fmt"
	"time"

	cfgpkg "github.com/hadiswara/pajak-restoran-dashboard/internal/config"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/dashboard"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
)

// ensureConfig falls back to defaults when OnInitialize could not load.
func ensureConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

// newSession loads the dataset once and wraps it with the filter
// selection and risk threshold from flags/config. Load failures are
// fatal: no command proceeds on a partial dataset.
func newSession(ctx context.Context) (*dashboard.Session, error) {
	c, err := ensureConfig()
	if err != nil {
		return nil, err
	}
	opt := dataset.DefaultOptions()
	if c.HTTPTimeoutSec > 0 {
		opt.HTTPTimeout = time.Duration(c.HTTPTimeoutSec) * time.Second
	}
	d, err := dataset.Load(ctx, c.SourceURL, opt)
	if err != nil {
		return nil, err
	}
	s := dashboard.NewSession(d)
	s.Selection = dataset.Selection{Categories: flagKategori, Segments: flagSegmentasi}
	if c.RiskThresholdPct > 0 {
		s.RiskThreshold = c.RiskThresholdPct
	}
	return s, nil
}

// printWarnings surfaces the non-fatal schema findings once per run.
func printWarnings(s *dashboard.Session) {
	for _, w := range s.Data.Warnings() {
		fmt.Printf("⚠ %s\n", w)
	}
}
