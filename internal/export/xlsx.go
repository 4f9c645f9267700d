package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/dashboard"
	"github.com/hadiswara/pajak-restoran-dashboard/internal/format"
)

// SessionXLSX writes an analysis workbook into dir and returns its path.
// Sheets: Ringkasan (KPIs + risk tallies), Per Kategori (group means),
// Detail (the filtered table). Sheets whose source view is unavailable
// are skipped, mirroring the per-view failure isolation of the
// dashboard itself.
func SessionXLSX(s *dashboard.Session, dir string, now time.Time) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Ringkasan"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	row := 1
	setCell(f, summarySheet, 1, row, "Metrik")
	setCell(f, summarySheet, 2, row, "Nilai")
	row++
	for _, kpi := range dashboard.Summary(s) {
		setCell(f, summarySheet, 1, row, kpi.Label)
		setCell(f, summarySheet, 2, row, kpi.Value)
		row++
	}

	rs := dashboard.RiskSummary(s)
	row++
	setCell(f, summarySheet, 1, row, "WP Berisiko Tinggi")
	setCell(f, summarySheet, 2, row, rs.HighRisk)
	row++
	setCell(f, summarySheet, 1, row, "Persentase Berisiko")
	setCell(f, summarySheet, 2, row, format.Percent(rs.HighRiskShare*100))
	row++
	for _, lbl := range rs.UpstreamLabels {
		setCell(f, summarySheet, 1, row, "Label Risiko: "+lbl.Key)
		setCell(f, summarySheet, 2, row, lbl.Count)
		row++
	}

	if stats, err := dashboard.CategoryMeanRevenue(s); err == nil {
		const sheet = "Per Kategori"
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("new sheet: %w", err)
		}
		headers := []string{"Kategori", "Rata-rata Omset", "Jumlah WP"}
		for i, h := range headers {
			setCell(f, sheet, i+1, 1, h)
		}
		for i, st := range stats {
			setCell(f, sheet, 1, i+2, st.Key)
			if st.Valid {
				setCell(f, sheet, 2, i+2, st.Mean)
			} else {
				setCell(f, sheet, 2, i+2, "")
			}
			setCell(f, sheet, 3, i+2, st.Count)
		}
	}

	rows := dashboard.DetailRows(s)
	if len(rows) > 0 {
		const sheet = "Detail"
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("new sheet: %w", err)
		}
		for i, r := range rows {
			for j, cell := range r {
				setCell(f, sheet, j+1, i+1, cell)
			}
		}
	}

	path := filepath.Join(dir, "pajak_restoran_"+now.Format("2006-01-02")+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, cell, value)
}
