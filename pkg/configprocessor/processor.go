// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import "fmt"

// AirfoilInfo represents airfoil configuration information
type AirfoilInfo struct {
	Label string
	File  string
	Color string
}

// WingInfo represents wing study configuration information
type WingInfo struct {
	Airfoil      string
	HasCl        bool
	HasCd        bool
	CdDesign     float64
	AspectRatios []float64
}

// Processor handles configuration processing and validation
type Processor struct {
	knownColor func(string) bool
}

// NewProcessor creates a new configuration processor. knownColor decides
// whether a color tag can be rendered; nil accepts every tag.
func NewProcessor(knownColor func(string) bool) *Processor {
	if knownColor == nil {
		knownColor = func(string) bool { return true }
	}
	return &Processor{knownColor: knownColor}
}

// ValidateConfiguration validates the configuration and returns warnings
func (p *Processor) ValidateConfiguration(airfoils []AirfoilInfo, wing WingInfo) []string {
	var warnings []string

	seen := make(map[string]bool, len(airfoils))
	for _, airfoil := range airfoils {
		if seen[airfoil.Label] {
			warnings = append(warnings, fmt.Sprintf("Airfoil label '%s' is used more than once; later entries shadow earlier ones", airfoil.Label))
		}
		seen[airfoil.Label] = true

		if airfoil.Color != "" && !p.knownColor(airfoil.Color) {
			warnings = append(warnings, fmt.Sprintf("Airfoil '%s' color '%s' is not recognized; a default color will be used", airfoil.Label, airfoil.Color))
		}
	}

	overridden := wing.HasCl && wing.HasCd
	if wing.HasCl != wing.HasCd {
		warnings = append(warnings, "Wing design point needs both clDesign and cdDesign; the partial override is ignored")
	}
	if overridden && wing.CdDesign <= 0 {
		warnings = append(warnings, fmt.Sprintf("Wing cdDesign %v is not positive; the wing study will be rejected", wing.CdDesign))
	}
	if !overridden {
		if wing.Airfoil == "" {
			warnings = append(warnings, "Wing airfoil is not set and no design point override is given; the wing study will be skipped")
		} else if !seen[wing.Airfoil] {
			warnings = append(warnings, fmt.Sprintf("Wing airfoil '%s' does not match any configured airfoil", wing.Airfoil))
		}
	}

	for i := 1; i < len(wing.AspectRatios); i++ {
		if wing.AspectRatios[i] < wing.AspectRatios[i-1] {
			warnings = append(warnings, fmt.Sprintf("Aspect ratio %v follows %v; the sweep must be non-decreasing for the trade-off search", wing.AspectRatios[i], wing.AspectRatios[i-1]))
		}
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
