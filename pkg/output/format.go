// Package output provides utilities for formatting and displaying analysis results.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/airfoil-tradeoff/internal/analysis"
	"github.com/iwvelando/airfoil-tradeoff/internal/export"
	"github.com/iwvelando/airfoil-tradeoff/pkg/format"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WingTableHeader heads the lifting-line sweep table.
const WingTableHeader = "AR | Induced Drag | Total Cd | L/D Ratio | Rel. Weight"

func wingTableRow(c wing.Configuration) string {
	return fmt.Sprintf("%2s | %12s | %8s | %9s | %11s",
		format.Angle(c.AspectRatio),
		format.Drag(c.InducedDragCoeff),
		format.Drag(c.TotalDragCoeff),
		format.Ratio(c.LiftToDrag),
		format.Weight(c.RelativeWeight),
	)
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(report *analysis.Report) {
	FprintPretty(os.Stdout, report)
}

// FprintPretty writes the human-readable summary of report to w.
func FprintPretty(w io.Writer, report *analysis.Report) {
	p := message.NewPrinter(language.English)

	_, _ = fmt.Fprintf(w, "--- Airfoil summary (run %s) ---\n", report.RunID)
	_, _ = fmt.Fprintf(w, "Airfoil | Cl at 0° | Cl at 5° | Best L/D | Best angle\n")
	_, _ = fmt.Fprintf(w, "_______ | ________ | ________ | ________ | __________\n")
	if report.Comparison != nil {
		for _, row := range report.Comparison.Summary.Rows {
			_, _ = p.Fprintf(w, "%s | %.4f | %.4f | %.1f | %s°\n",
				row.Label,
				row.ClAt0,
				row.ClAt5,
				row.BestLD,
				format.Angle(row.BestAngle),
			)
		}
		for _, missing := range report.Comparison.Missing {
			_, _ = fmt.Fprintf(w, "%s | not found (%s)\n", missing.Label, missing.Path)
		}
		_, _ = p.Fprintf(w, "%d datasets, %d missing\n",
			len(report.Comparison.Summary.Rows), len(report.Comparison.Missing))
	}

	if report.Wing == nil {
		return
	}
	result := report.Wing.Result
	_, _ = fmt.Fprintf(w, "\n--- Wing trade-off (Cl = %s, Cd_2d = %s, e = %s) ---\n",
		format.Fixed(report.Wing.DesignPoint.Cl, 3),
		format.Drag(report.Wing.DesignPoint.Cd),
		format.Fixed(report.Wing.Params.OswaldEfficiency, 2),
	)
	_, _ = fmt.Fprintln(w, WingTableHeader)
	for _, c := range result.Configurations {
		_, _ = fmt.Fprintln(w, wingTableRow(c))
	}
	_, _ = p.Fprintf(w, "Optimal aspect ratio: %s (L/D %.1f, relative weight %.2f)\n",
		format.Angle(result.Optimal.AspectRatio),
		result.Optimal.LiftToDrag,
		result.Optimal.RelativeWeight,
	)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(report *analysis.Report) error {
	return FprintCsv(os.Stdout, report)
}

// FprintCsv writes the summary and, when present, the wing sweep of report
// to w with the same columns as the exported CSV files.
func FprintCsv(w io.Writer, report *analysis.Report) error {
	if report.Comparison != nil {
		if err := export.WriteSummaryCSV(w, report.Comparison.Summary); err != nil {
			return err
		}
	}
	if report.Wing == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return export.WriteWingCSV(w, report.Wing.Result.Configurations)
}
