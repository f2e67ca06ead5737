package adapters

import (
	"reflect"
	"testing"

	"github.com/iwvelando/airfoil-tradeoff/internal/config"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestWingParams(t *testing.T) {
	tests := []struct {
		name          string
		wing          config.WingConfig
		expectedE     float64
		expectedSweep []float64
	}{
		{
			name:          "Defaults",
			wing:          config.WingConfig{},
			expectedE:     0.9,
			expectedSweep: []float64{6, 8, 10, 12, 14},
		},
		{
			name:          "Configured",
			wing:          config.WingConfig{OswaldEfficiency: floatPtr(0.8), AspectRatios: []float64{5, 7}},
			expectedE:     0.8,
			expectedSweep: []float64{5, 7},
		},
		{
			name:          "Explicit zero kept",
			wing:          config.WingConfig{OswaldEfficiency: floatPtr(0)},
			expectedE:     0,
			expectedSweep: []float64{6, 8, 10, 12, 14},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := WingParams(tt.wing)
			if params.OswaldEfficiency != tt.expectedE {
				t.Errorf("OswaldEfficiency = %v, expected %v", params.OswaldEfficiency, tt.expectedE)
			}
			if !reflect.DeepEqual(params.AspectRatios, tt.expectedSweep) {
				t.Errorf("AspectRatios = %v, expected %v", params.AspectRatios, tt.expectedSweep)
			}
		})
	}
}

func TestWingParamsCopiesSweep(t *testing.T) {
	w := config.WingConfig{AspectRatios: []float64{6, 8}}
	params := WingParams(w)
	params.AspectRatios[0] = 100
	if w.AspectRatios[0] != 6 {
		t.Error("WingParams() aliases the configured sweep")
	}
}

func TestDesignPointOverride(t *testing.T) {
	if _, ok := DesignPointOverride(config.WingConfig{ClDesign: floatPtr(0.7)}); ok {
		t.Error("expected no override with only clDesign")
	}

	point, ok := DesignPointOverride(config.WingConfig{
		Airfoil:  "NACA 2408",
		ClDesign: floatPtr(0.772),
		CdDesign: floatPtr(0.00921),
	})
	if !ok {
		t.Fatal("expected override")
	}
	if point.Cl != 0.772 || point.Cd != 0.00921 || point.Airfoil != "NACA 2408" || point.Angle != 5 {
		t.Errorf("unexpected design point %+v", point)
	}
}

func TestSourcePaths(t *testing.T) {
	paths := SourcePaths([]config.Airfoil{
		{Label: "A", File: "a.txt"},
		{Label: "B", File: "b.txt"},
	})
	if !reflect.DeepEqual(paths, []string{"a.txt", "b.txt"}) {
		t.Errorf("SourcePaths() = %v", paths)
	}
}
