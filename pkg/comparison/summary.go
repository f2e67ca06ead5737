// Package comparison joins per-airfoil metrics into a comparative summary.
package comparison

import (
	"github.com/iwvelando/airfoil-tradeoff/pkg/aero"
	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
	"github.com/iwvelando/airfoil-tradeoff/pkg/polar"
)

// Entry pairs a dataset with the metrics computed from it.
type Entry struct {
	Dataset polar.Dataset
	Metrics aero.Metrics
}

// Row is one airfoil's line in the summary. Values that are unavailable
// are reported as zero.
type Row struct {
	Label     string  `json:"label"`
	ClAt0     float64 `json:"clAt0"`
	ClAt5     float64 `json:"clAt5"`
	BestLD    float64 `json:"bestLD"`
	BestAngle float64 `json:"bestAngle"`
}

// Summary holds one row per input entry, in input order.
type Summary struct {
	Rows []Row `json:"rows"`
}

// Build produces the summary for entries. Metrics must have been computed
// with the reference angles requested.
func Build(entries []Entry) Summary {
	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		row := Row{Label: entry.Dataset.Label}
		if cl, ok := entry.Metrics.Cl(constants.ReferenceAngleZero); ok {
			row.ClAt0 = cl
		}
		if cl, ok := entry.Metrics.Cl(constants.ReferenceAngleFive); ok {
			row.ClAt5 = cl
		}
		if best := entry.Metrics.Best; best != nil {
			row.BestLD = best.Value
			row.BestAngle = best.Angle
		}
		rows = append(rows, row)
	}
	return Summary{Rows: rows}
}

// ReferenceAngles returns the angles Build reads Cl at.
func ReferenceAngles() []float64 {
	return []float64{constants.ReferenceAngleZero, constants.ReferenceAngleFive}
}
