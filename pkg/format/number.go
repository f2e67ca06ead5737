// Package format renders numeric values with the fixed precisions used in
// reports and artifacts.
package format

import (
	"strconv"

	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
)

// Fixed returns value with exactly decimals digits after the point.
func Fixed(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// Coefficient formats a lift or drag coefficient (e.g., "0.7720").
func Coefficient(value float64) string {
	return Fixed(value, constants.CoefficientDecimals)
}

// Ratio formats an L/D ratio or a percentage (e.g., "83.7").
func Ratio(value float64) string {
	return Fixed(value, constants.RatioDecimals)
}

// Weight formats a relative weight (e.g., "31.62").
func Weight(value float64) string {
	return Fixed(value, constants.WeightDecimals)
}

// Drag formats a drag breakdown value (e.g., "0.02108").
func Drag(value float64) string {
	return Fixed(value, constants.DragDecimals)
}

// Efficiency formats an efficiency-per-weight figure for the console
// (e.g., "0.458"). Artifacts use Ratio.
func Efficiency(value float64) string {
	return Fixed(value, constants.EfficiencyDecimals)
}

// Angle formats an angle or aspect ratio in its shortest exact form
// (e.g., "5", "-2.5").
func Angle(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
