// Package export writes analysis results as durable artifacts: CSV tables,
// an XLSX workbook and PNG charts.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/airfoil-tradeoff/pkg/comparison"
	"github.com/iwvelando/airfoil-tradeoff/pkg/format"
	"github.com/iwvelando/airfoil-tradeoff/pkg/optimization"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
)

// Column headers of the CSV artifacts.
var (
	SummaryHeader    = []string{"Airfoil", "Cl_0deg", "Cl_5deg", "Best_L/D", "Best_Angle"}
	WingHeader       = []string{"Aspect_Ratio", "L/D_ratio", "Relative_Weight"}
	WingDetailHeader = []string{"Aspect_Ratio", "Induced_Drag", "Total_Cd", "L/D_ratio", "Relative_Weight"}
	TradeoffHeader   = []string{"From_AR", "To_AR", "LD_Improvement_Pct", "Weight_Increase_Pct", "Efficiency_Per_Weight", "Skipped"}
)

// SummaryRecords renders the summary rows in header order.
func SummaryRecords(summary comparison.Summary) [][]string {
	records := make([][]string, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		records = append(records, []string{
			row.Label,
			format.Coefficient(row.ClAt0),
			format.Coefficient(row.ClAt5),
			format.Ratio(row.BestLD),
			format.Angle(row.BestAngle),
		})
	}
	return records
}

// WingRecords renders one record per configuration with L/D and weight.
func WingRecords(configs []wing.Configuration) [][]string {
	records := make([][]string, 0, len(configs))
	for _, c := range configs {
		records = append(records, []string{
			format.Angle(c.AspectRatio),
			format.Ratio(c.LiftToDrag),
			format.Weight(c.RelativeWeight),
		})
	}
	return records
}

// WingDetailRecords renders every field of each configuration.
func WingDetailRecords(configs []wing.Configuration) [][]string {
	records := make([][]string, 0, len(configs))
	for _, c := range configs {
		records = append(records, []string{
			format.Angle(c.AspectRatio),
			format.Drag(c.InducedDragCoeff),
			format.Drag(c.TotalDragCoeff),
			format.Ratio(c.LiftToDrag),
			format.Weight(c.RelativeWeight),
		})
	}
	return records
}

// TradeoffRecords renders one record per adjacent step.
func TradeoffRecords(steps []optimization.Step) [][]string {
	records := make([][]string, 0, len(steps))
	for _, s := range steps {
		records = append(records, []string{
			format.Angle(s.FromAspectRatio),
			format.Angle(s.ToAspectRatio),
			format.Ratio(s.LDImprovementPct),
			format.Ratio(s.WeightIncreasePct),
			format.Ratio(s.EfficiencyPerWeight),
			strconv.FormatBool(s.Skipped),
		})
	}
	return records
}

// WriteCSV writes headers followed by records to w.
func WriteCSV(w io.Writer, headers []string, records [][]string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummaryCSV writes the comparison summary.
func WriteSummaryCSV(w io.Writer, summary comparison.Summary) error {
	return WriteCSV(w, SummaryHeader, SummaryRecords(summary))
}

// WriteWingCSV writes aspect ratio, L/D and relative weight per configuration.
func WriteWingCSV(w io.Writer, configs []wing.Configuration) error {
	return WriteCSV(w, WingHeader, WingRecords(configs))
}

// WriteWingDetailCSV writes the full drag breakdown per configuration.
func WriteWingDetailCSV(w io.Writer, configs []wing.Configuration) error {
	return WriteCSV(w, WingDetailHeader, WingDetailRecords(configs))
}

// WriteTradeoffCSV writes the adjacent-step trade-off analysis.
func WriteTradeoffCSV(w io.Writer, steps []optimization.Step) error {
	return WriteCSV(w, TradeoffHeader, TradeoffRecords(steps))
}
