package export

import (
	"fmt"
	"io"

	"github.com/iwvelando/airfoil-tradeoff/internal/analysis"
	"github.com/iwvelando/airfoil-tradeoff/pkg/aero"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SummarySheet  = "Summary"
	WingSheet     = "Wing"
	TradeoffSheet = "Tradeoff"
	polarSheetFmt = "Polar %d"
)

// PolarSheetName returns the sheet holding the n-th dataset, counting from 1.
// Labels are not used as sheet names because Excel limits their length and
// character set.
func PolarSheetName(n int) string {
	return fmt.Sprintf(polarSheetFmt, n)
}

type sheetWriter struct {
	f      *excelize.File
	header int
}

func (s *sheetWriter) row(sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := s.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func (s *sheetWriter) headerRow(sheet string, rowNum int, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := s.row(sheet, rowNum, values); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, rowNum)
	last, _ := excelize.CoordinatesToCellName(len(headers), rowNum)
	return s.f.SetCellStyle(sheet, first, last, s.header)
}

// WriteWorkbook writes the summary, the wing sweep, the trade-off steps and
// one sheet per non-empty dataset to w as an XLSX workbook. Numbers are
// stored unrounded.
func WriteWorkbook(w io.Writer, report *analysis.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	s := &sheetWriter{f: f, header: style}

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := s.headerRow(SummarySheet, 1, SummaryHeader); err != nil {
		return err
	}

	if report.Comparison != nil {
		for i, row := range report.Comparison.Summary.Rows {
			if err := s.row(SummarySheet, i+2, []interface{}{row.Label, row.ClAt0, row.ClAt5, row.BestLD, row.BestAngle}); err != nil {
				return err
			}
		}
	}

	if report.Wing != nil {
		if _, err := f.NewSheet(WingSheet); err != nil {
			return fmt.Errorf("failed to create wing sheet: %w", err)
		}
		if err := s.headerRow(WingSheet, 1, WingDetailHeader); err != nil {
			return err
		}
		for i, c := range report.Wing.Result.Configurations {
			values := []interface{}{c.AspectRatio, c.InducedDragCoeff, c.TotalDragCoeff, c.LiftToDrag, c.RelativeWeight}
			if err := s.row(WingSheet, i+2, values); err != nil {
				return err
			}
		}

		if _, err := f.NewSheet(TradeoffSheet); err != nil {
			return fmt.Errorf("failed to create tradeoff sheet: %w", err)
		}
		if err := s.headerRow(TradeoffSheet, 1, TradeoffHeader); err != nil {
			return err
		}
		for i, step := range report.Wing.Result.Steps {
			values := []interface{}{step.FromAspectRatio, step.ToAspectRatio, step.LDImprovementPct, step.WeightIncreasePct, step.EfficiencyPerWeight, step.Skipped}
			if err := s.row(TradeoffSheet, i+2, values); err != nil {
				return err
			}
		}
	}

	if report.Comparison != nil {
		for i, ds := range report.Comparison.Datasets() {
			sheet := PolarSheetName(i + 1)
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create %s: %w", sheet, err)
			}
			if err := s.row(sheet, 1, []interface{}{"Airfoil", ds.Label}); err != nil {
				return err
			}
			if err := s.headerRow(sheet, 2, []string{"Alpha", "Cl", "Cd", "L/D"}); err != nil {
				return err
			}
			ratios := aero.LDRatios(ds.Points)
			for j, p := range ds.Points {
				if err := s.row(sheet, j+3, []interface{}{p.Angle, p.Cl, p.Cd, ratios[j]}); err != nil {
					return err
				}
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
