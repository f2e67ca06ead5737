// Package aero derives efficiency metrics from airfoil polar datasets.
package aero

import (
	"math"

	"github.com/iwvelando/airfoil-tradeoff/pkg/mathutil"
	"github.com/iwvelando/airfoil-tradeoff/pkg/polar"
)

// BestLD is the peak lift-to-drag ratio of a polar and the angle it occurs at.
type BestLD struct {
	Value float64 `json:"value"`
	Angle float64 `json:"angle"`
}

// Metrics holds the quantities derived from one Dataset.
type Metrics struct {
	DatasetLabel string `json:"datasetLabel"`
	// ClAtAngle only has entries for requested angles present in the dataset.
	ClAtAngle map[float64]float64 `json:"-"`
	// LDRatios is aligned 1:1 with the dataset points.
	LDRatios []float64 `json:"ldRatios"`
	// Best is nil when the dataset is empty.
	Best *BestLD `json:"best,omitempty"`
}

// Cl returns the lift coefficient recorded for angle, if it was requested
// and present.
func (m Metrics) Cl(angle float64) (float64, bool) {
	cl, ok := m.ClAtAngle[angle]
	return cl, ok
}

// Compute derives the metrics of ds, looking up Cl at each of angles.
func Compute(ds polar.Dataset, angles ...float64) Metrics {
	m := Metrics{
		DatasetLabel: ds.Label,
		ClAtAngle:    make(map[float64]float64, len(angles)),
		LDRatios:     LDRatios(ds.Points),
	}

	for _, angle := range angles {
		if cl, ok := ClAtAngle(ds, angle); ok {
			m.ClAtAngle[angle] = cl
		}
	}

	if best, ok := FindBest(ds.Points, m.LDRatios); ok {
		m.Best = &best
	}

	return m
}

// LDRatios returns Cl/Cd for every point. Points with a drag coefficient
// that is zero or negative get a ratio of zero.
func LDRatios(points []polar.DataPoint) []float64 {
	ratios := make([]float64, len(points))
	for i, p := range points {
		ratios[i] = mathutil.SafeRatio(p.Cl, p.Cd)
	}
	return ratios
}

// ClAtAngle returns the Cl of the first point whose angle equals target
// exactly. No interpolation is attempted.
func ClAtAngle(ds polar.Dataset, target float64) (float64, bool) {
	p, ok := ds.PointAt(target)
	if !ok {
		return 0, false
	}
	return p.Cl, true
}

// FindBest returns the maximum ratio and the angle at its first occurrence.
// ratios must be aligned with points. NaN ratios never win.
func FindBest(points []polar.DataPoint, ratios []float64) (BestLD, bool) {
	if len(ratios) == 0 || len(ratios) != len(points) {
		return BestLD{}, false
	}

	best := -1
	for i, ratio := range ratios {
		if math.IsNaN(ratio) {
			continue
		}
		if best < 0 || ratio > ratios[best] {
			best = i
		}
	}
	if best < 0 {
		return BestLD{}, false
	}

	return BestLD{Value: ratios[best], Angle: points[best].Angle}, true
}
