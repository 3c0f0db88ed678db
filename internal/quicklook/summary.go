package quicklook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/drift"
)

// SummarySheet is the worksheet the summary table is written to.
const SummarySheet = "drift"

// SummaryHeader is the first row of the summary sheet.
var SummaryHeader = []string{"r", "step", "n", "mean", "ci_low", "ci_high"}

// WriteSummary saves one row per (radius, step) with the sample count, the
// mean drift and its 95% confidence interval.
func WriteSummary(path string, series []drift.Series) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(SummaryHeader))
	for i, h := range SummaryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(SummarySheet, 1, 1, bold); err != nil {
		return err
	}

	row := 2
	for _, s := range series {
		for _, p := range s.Points {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []interface{}{s.R, p.Step, p.N, p.Mean, p.Low, p.High}
			if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetPanes(SummarySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
