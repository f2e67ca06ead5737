package wing

import (
	"errors"
	"math"
	"testing"
)

var naca2408 = DesignPoint{Cl: 0.772, Cd: 0.00921}

func TestConfigureReferencePoint(t *testing.T) {
	c := Configure(naca2408, 10, 0.9)

	checks := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"induced drag", c.InducedDragCoeff, 0.02107, 0.00002},
		{"total drag", c.TotalDragCoeff, 0.03028, 0.00002},
		{"lift to drag", c.LiftToDrag, 25.5, 0.05},
		{"relative weight", c.RelativeWeight, 31.62, 0.005},
	}
	for _, check := range checks {
		if math.Abs(check.got-check.expected) > check.tolerance {
			t.Errorf("%s = %v, expected %v", check.name, check.got, check.expected)
		}
	}
	if c.AspectRatio != 10 {
		t.Errorf("AspectRatio = %v, expected 10", c.AspectRatio)
	}
}

func TestSweepMonotonic(t *testing.T) {
	params := Params{OswaldEfficiency: 0.9, AspectRatios: []float64{4, 6, 8, 10, 12, 14, 20}}

	configs, err := Sweep(naca2408, params)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if len(configs) != len(params.AspectRatios) {
		t.Fatalf("expected %d configurations, got %d", len(params.AspectRatios), len(configs))
	}

	for i := 1; i < len(configs); i++ {
		prev, cur := configs[i-1], configs[i]
		if !(cur.InducedDragCoeff < prev.InducedDragCoeff) {
			t.Errorf("induced drag not decreasing at AR %v", cur.AspectRatio)
		}
		if !(cur.LiftToDrag > prev.LiftToDrag) {
			t.Errorf("L/D not increasing at AR %v", cur.AspectRatio)
		}
		if !(cur.RelativeWeight > prev.RelativeWeight) {
			t.Errorf("weight not increasing at AR %v", cur.AspectRatio)
		}
	}
}

func TestSweepPreservesInputOrder(t *testing.T) {
	configs, err := Sweep(naca2408, Params{OswaldEfficiency: 0.8, AspectRatios: []float64{12, 6, 9}})
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	got := AspectRatioSeries(configs)
	expected := []float64{12, 6, 9}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("AspectRatioSeries() = %v, expected %v", got, expected)
		}
	}
}

func TestSweepPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		point    DesignPoint
		params   Params
		expected error
	}{
		{"Empty sweep", naca2408, Params{OswaldEfficiency: 0.9}, ErrEmptySweep},
		{"Zero aspect ratio", naca2408, Params{OswaldEfficiency: 0.9, AspectRatios: []float64{6, 0}}, ErrNonPositiveAspectRatio},
		{"Negative aspect ratio", naca2408, Params{OswaldEfficiency: 0.9, AspectRatios: []float64{-4}}, ErrNonPositiveAspectRatio},
		{"NaN aspect ratio", naca2408, Params{OswaldEfficiency: 0.9, AspectRatios: []float64{math.NaN()}}, ErrNonPositiveAspectRatio},
		{"Zero oswald", naca2408, Params{AspectRatios: []float64{6}}, ErrInvalidOswald},
		{"Oswald above one", naca2408, Params{OswaldEfficiency: 1.2, AspectRatios: []float64{6}}, ErrInvalidOswald},
		{"Zero drag", DesignPoint{Cl: 0.7}, DefaultParams(), ErrNonPositiveDrag},
		{"Negative drag", DesignPoint{Cl: 0.7, Cd: -0.01}, DefaultParams(), ErrNonPositiveDrag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs, err := Sweep(tt.point, tt.params)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Sweep() error = %v, expected %v", err, tt.expected)
			}
			if configs != nil {
				t.Errorf("expected no configurations, got %v", configs)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	params := DefaultParams()
	if params.OswaldEfficiency != 0.9 {
		t.Errorf("OswaldEfficiency = %v, expected 0.9", params.OswaldEfficiency)
	}
	if len(params.AspectRatios) != 5 || params.AspectRatios[0] != 6 || params.AspectRatios[4] != 14 {
		t.Errorf("AspectRatios = %v, expected [6 8 10 12 14]", params.AspectRatios)
	}
	if err := params.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestSeries(t *testing.T) {
	configs, err := Sweep(naca2408, DefaultParams())
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	ld := LiftToDragSeries(configs)
	weights := WeightSeries(configs)
	for i, c := range configs {
		if ld[i] != c.LiftToDrag || weights[i] != c.RelativeWeight {
			t.Errorf("series misaligned at %d", i)
		}
	}
}
