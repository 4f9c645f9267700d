// Package dashboard assembles the derived views the presentation layer
// consumes: KPI tiles, chart feeds, the detail table, and exports. All
// state lives in an explicit Session value threaded through pure
// functions, with no package-level mutable state.
package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dataset"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/risk"
)

// Session holds one loaded dataset and the user's current filter
// selection. The dataset is immutable; changing the selection produces
// fresh views, never in-place mutation. Reloading the source yields an
// independent new Session.
type Session struct {
	ID            string
	Data          *dataset.Dataset
	Selection     dataset.Selection
	RiskThreshold float64
	LoadedAt      time.Time
}

// NewSession wraps a freshly loaded dataset with default settings:
// no filter restriction and the stock risk threshold.
func NewSession(d *dataset.Dataset) *Session {
	return &Session{
		ID:            uuid.NewString(),
		Data:          d,
		RiskThreshold: risk.DefaultThreshold,
		LoadedAt:      time.Now(),
	}
}

// Filtered returns the view of records matching the current selection.
// Every derived view recomputes from this on each call; there is no
// incremental update and no stale cache to invalidate.
func (s *Session) Filtered() dataset.View {
	return s.Data.View().Filter(s.Selection)
}
