// Package export materializes dashboard views as downloadable files:
// the date-named CSV, and an XLSX workbook with summary, group, and
// detail sheets.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dashboard"
)

// CSVName builds the download filename for a given day,
// e.g. "pajak_restoran_2025-10-14.csv".
func CSVName(t time.Time) string {
	return "pajak_restoran_" + t.Format("2006-01-02") + ".csv"
}

// WriteCSV writes formatted rows to path.
func WriteCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	w.Flush()
	return w.Error()
}

// SessionCSV writes the current detail table into dir under the
// date-named filename and returns the full path.
func SessionCSV(s *dashboard.Session, dir string, now time.Time) (string, error) {
	rows := dashboard.DetailRows(s)
	if len(rows) == 0 {
		return "", fmt.Errorf("no exportable columns in dataset")
	}
	path := filepath.Join(dir, CSVName(now))
	if err := WriteCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}
