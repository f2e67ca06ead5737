// Package optimization provides shared data structures for trade-off results.
package optimization

// Step captures the comparison of two adjacent configurations in a sweep.
type Step struct {
	FromAspectRatio     float64 `json:"fromAspectRatio"`
	ToAspectRatio       float64 `json:"toAspectRatio"`
	LDImprovementPct    float64 `json:"ldImprovementPct"`
	WeightIncreasePct   float64 `json:"weightIncreasePct"`
	EfficiencyPerWeight float64 `json:"efficiencyPerWeight"`
	Skipped             bool    `json:"skipped,omitempty"`
	Reason              string  `json:"reason,omitempty"`
}

// Eligible reports whether the step can take part in selecting an optimum.
func (s Step) Eligible() bool {
	return !s.Skipped
}
