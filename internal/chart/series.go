// Package chart renders airfoil comparison and wing trade-off charts as PNG
// images.
package chart

import (
	"github.com/iwvelando/airfoil-tradeoff/pkg/aero"
	"github.com/iwvelando/airfoil-tradeoff/pkg/polar"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
)

// Series is one labelled curve. Tag selects its color.
type Series struct {
	Label string
	Tag   string
	X     []float64
	Y     []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.X)
}

// XY returns the i-th point. It lets a Series serve as a plotter.XYer.
func (s Series) XY(i int) (float64, float64) {
	return s.X[i], s.Y[i]
}

func datasetSeries(datasets []polar.Dataset, y func(polar.Dataset) []float64) []Series {
	var out []Series
	for _, ds := range datasets {
		if ds.Empty() {
			continue
		}
		out = append(out, Series{Label: ds.Label, Tag: ds.Tag, X: ds.Angles(), Y: y(ds)})
	}
	return out
}

// LiftSeries returns Cl against angle for each non-empty dataset.
func LiftSeries(datasets []polar.Dataset) []Series {
	return datasetSeries(datasets, polar.Dataset.Lift)
}

// DragSeries returns Cd against angle for each non-empty dataset.
func DragSeries(datasets []polar.Dataset) []Series {
	return datasetSeries(datasets, polar.Dataset.Drag)
}

// EfficiencySeries returns L/D against angle for each non-empty dataset.
func EfficiencySeries(datasets []polar.Dataset) []Series {
	return datasetSeries(datasets, func(ds polar.Dataset) []float64 {
		return aero.LDRatios(ds.Points)
	})
}

// WingSeries returns L/D and relative weight against aspect ratio.
func WingSeries(configs []wing.Configuration) (ld, weight Series) {
	ars := wing.AspectRatioSeries(configs)
	ld = Series{Label: "L/D", Tag: "blue", X: ars, Y: wing.LiftToDragSeries(configs)}
	weight = Series{Label: "Relative weight", Tag: "red", X: ars, Y: wing.WeightSeries(configs)}
	return ld, weight
}
