// Package polar defines airfoil polar datasets and parses the coefficient
// tables produced by panel-method solvers into them.
package polar

// DataPoint is one tabulated sample of a polar.
type DataPoint struct {
	Angle float64 `json:"angle"` // degrees
	Cl    float64 `json:"cl"`
	Cd    float64 `json:"cd"`
}

// Dataset holds the samples of one airfoil in the order they appeared in
// the source table. Tag is opaque display metadata such as a color name.
type Dataset struct {
	Label  string      `json:"label"`
	Points []DataPoint `json:"points"`
	Tag    string      `json:"tag,omitempty"`
}

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d.Points)
}

// Empty reports whether the parse accepted no samples.
func (d Dataset) Empty() bool {
	return len(d.Points) == 0
}

// Angles returns the angle column.
func (d Dataset) Angles() []float64 {
	out := make([]float64, len(d.Points))
	for i, p := range d.Points {
		out[i] = p.Angle
	}
	return out
}

// Lift returns the Cl column.
func (d Dataset) Lift() []float64 {
	out := make([]float64, len(d.Points))
	for i, p := range d.Points {
		out[i] = p.Cl
	}
	return out
}

// Drag returns the Cd column.
func (d Dataset) Drag() []float64 {
	out := make([]float64, len(d.Points))
	for i, p := range d.Points {
		out[i] = p.Cd
	}
	return out
}

// PointAt returns the first sample whose angle equals target exactly.
func (d Dataset) PointAt(target float64) (DataPoint, bool) {
	for _, p := range d.Points {
		if p.Angle == target {
			return p, true
		}
	}
	return DataPoint{}, false
}
