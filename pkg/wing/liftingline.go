// Package wing extends 2D section coefficients to finite wings using
// lifting-line theory with an elliptical loading assumption.
package wing

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
)

var (
	// ErrEmptySweep is returned when no aspect ratios are given.
	ErrEmptySweep = errors.New("aspect ratio sweep is empty")
	// ErrNonPositiveAspectRatio is returned for an aspect ratio <= 0.
	ErrNonPositiveAspectRatio = errors.New("aspect ratio must be positive")
	// ErrInvalidOswald is returned for an efficiency factor outside (0, 1].
	ErrInvalidOswald = errors.New("oswald efficiency must be in (0, 1]")
	// ErrNonPositiveDrag is returned for a section drag coefficient <= 0.
	ErrNonPositiveDrag = errors.New("section drag coefficient must be positive")
)

// DesignPoint is the 2D operating point a wing is sized around.
type DesignPoint struct {
	Cl float64 `json:"clDesign"`
	Cd float64 `json:"cdDesign"`
	// Airfoil and Angle describe where the point was read from, if anywhere.
	Airfoil string  `json:"airfoil,omitempty"`
	Angle   float64 `json:"angle,omitempty"`
}

// Validate checks the point can be converted.
func (d DesignPoint) Validate() error {
	if !(d.Cd > 0) {
		return fmt.Errorf("%w: got %v", ErrNonPositiveDrag, d.Cd)
	}
	return nil
}

// Params are the explicit inputs of a sweep.
type Params struct {
	OswaldEfficiency float64   `json:"oswaldEfficiency"`
	AspectRatios     []float64 `json:"aspectRatios"`
}

// DefaultParams returns e = 0.9 over the aspect ratios 6 to 14.
func DefaultParams() Params {
	return Params{
		OswaldEfficiency: constants.DefaultOswaldEfficiency,
		AspectRatios:     constants.DefaultAspectRatios(),
	}
}

// Validate checks the efficiency factor and every aspect ratio.
func (p Params) Validate() error {
	if !(p.OswaldEfficiency > 0 && p.OswaldEfficiency <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidOswald, p.OswaldEfficiency)
	}
	if len(p.AspectRatios) == 0 {
		return ErrEmptySweep
	}
	for i, ar := range p.AspectRatios {
		if !(ar > 0) {
			return fmt.Errorf("%w: aspect ratio %d is %v", ErrNonPositiveAspectRatio, i, ar)
		}
	}
	return nil
}

// Configuration is the finite-wing performance at one aspect ratio.
type Configuration struct {
	AspectRatio      float64 `json:"aspectRatio"`
	InducedDragCoeff float64 `json:"inducedDragCoeff"`
	TotalDragCoeff   float64 `json:"totalDragCoeff"`
	LiftToDrag       float64 `json:"liftToDrag"`
	RelativeWeight   float64 `json:"relativeWeight"`
}

// InducedDrag returns cl^2 / (pi * ar * e).
func InducedDrag(cl, aspectRatio, oswald float64) float64 {
	return cl * cl / (math.Pi * aspectRatio * oswald)
}

// RelativeWeight returns the structural weight proxy ar^1.5.
func RelativeWeight(aspectRatio float64) float64 {
	return math.Pow(aspectRatio, constants.WeightExponent)
}

// Configure computes the wing at a single aspect ratio. Inputs are assumed
// valid; use Sweep for checked conversion.
func Configure(point DesignPoint, aspectRatio, oswald float64) Configuration {
	cdi := InducedDrag(point.Cl, aspectRatio, oswald)
	total := point.Cd + cdi
	return Configuration{
		AspectRatio:      aspectRatio,
		InducedDragCoeff: cdi,
		TotalDragCoeff:   total,
		LiftToDrag:       point.Cl / total,
		RelativeWeight:   RelativeWeight(aspectRatio),
	}
}

// Sweep converts point into one Configuration per aspect ratio in params,
// preserving their order.
func Sweep(point DesignPoint, params Params) ([]Configuration, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := point.Validate(); err != nil {
		return nil, err
	}

	configs := make([]Configuration, 0, len(params.AspectRatios))
	for _, ar := range params.AspectRatios {
		configs = append(configs, Configure(point, ar, params.OswaldEfficiency))
	}
	return configs, nil
}

// LiftToDragSeries returns the L/D of each configuration.
func LiftToDragSeries(configs []Configuration) []float64 {
	out := make([]float64, len(configs))
	for i, c := range configs {
		out[i] = c.LiftToDrag
	}
	return out
}

// WeightSeries returns the relative weight of each configuration.
func WeightSeries(configs []Configuration) []float64 {
	out := make([]float64, len(configs))
	for i, c := range configs {
		out[i] = c.RelativeWeight
	}
	return out
}

// AspectRatioSeries returns the aspect ratio of each configuration.
func AspectRatioSeries(configs []Configuration) []float64 {
	out := make([]float64, len(configs))
	for i, c := range configs {
		out[i] = c.AspectRatio
	}
	return out
}
