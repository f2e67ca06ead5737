// Package adapters converts configuration into the inputs of the analysis
// packages.
package adapters

import (
	"github.com/iwvelando/airfoil-tradeoff/internal/config"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
)

// WingParams returns the sweep parameters of a wing configuration, falling
// back to the defaults for unset values. A configured efficiency is passed
// through as is so that wing.Params.Validate can reject it.
func WingParams(w config.WingConfig) wing.Params {
	params := wing.DefaultParams()
	if w.OswaldEfficiency != nil {
		params.OswaldEfficiency = *w.OswaldEfficiency
	}
	if len(w.AspectRatios) > 0 {
		params.AspectRatios = append([]float64(nil), w.AspectRatios...)
	}
	return params
}

// DesignPointOverride returns the explicit design point of w, if both
// coefficients are configured.
func DesignPointOverride(w config.WingConfig) (wing.DesignPoint, bool) {
	if !w.HasDesignOverride() {
		return wing.DesignPoint{}, false
	}
	return wing.DesignPoint{
		Cl:      *w.ClDesign,
		Cd:      *w.CdDesign,
		Airfoil: w.Airfoil,
		Angle:   w.Angle(),
	}, true
}

// SourcePaths returns the file of every airfoil, in configuration order.
func SourcePaths(airfoils []config.Airfoil) []string {
	paths := make([]string, len(airfoils))
	for i, airfoil := range airfoils {
		paths[i] = airfoil.File
	}
	return paths
}
