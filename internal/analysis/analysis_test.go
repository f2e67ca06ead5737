package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/airfoil-tradeoff/internal/config"
	"github.com/iwvelando/airfoil-tradeoff/internal/source"
	"github.com/iwvelando/airfoil-tradeoff/pkg/aero"
	"github.com/iwvelando/airfoil-tradeoff/pkg/optimization"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"go.uber.org/zap"
)

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) add(format string, args ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) RunStarted(string) { r.add("run") }
func (r *recordingReporter) SourceMissing(label, path string, err error) {
	r.add("missing %s %s", label, path)
}
func (r *recordingReporter) DatasetParsed(label, path string, accepted int) {
	r.add("parsed %s %d", label, accepted)
}
func (r *recordingReporter) DatasetEmpty(label, path string) { r.add("empty %s", label) }
func (r *recordingReporter) ClAtAngle(label string, angle, cl float64) {
	r.add("cl %s %v %v", label, angle, cl)
}
func (r *recordingReporter) BestLD(label string, best aero.BestLD) {
	r.add("best %s %.1f %v", label, best.Value, best.Angle)
}
func (r *recordingReporter) DesignPointResolved(point wing.DesignPoint) {
	r.add("design %v %v", point.Cl, point.Cd)
}
func (r *recordingReporter) SweepStarted(params wing.Params) { r.add("sweep %v", params.AspectRatios) }
func (r *recordingReporter) WingConfiguration(c wing.Configuration) {
	r.add("config %v", c.AspectRatio)
}
func (r *recordingReporter) TradeoffStep(step optimization.Step) {
	r.add("step %v-%v", step.FromAspectRatio, step.ToAspectRatio)
}
func (r *recordingReporter) OptimumSelected(c wing.Configuration) { r.add("optimum %v", c.AspectRatio) }

func (r *recordingReporter) count(prefix string) int {
	n := 0
	for _, e := range r.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func testSource() *source.MapSource {
	return source.NewMapSource(map[string]string{
		"naca0012.txt": "  alpha CL CD\n ----- ----- -----\n 0 0.0000 0.0054\n 5 0.5500 0.0068\n",
		"naca2408.txt": "alpha CL CD\n0 0.2402 0.00573\n5 0.7720 0.00921\n8 1.058 0.0115\n",
		"empty.txt":    "alpha CL CD\n------\n",
	})
}

func testAirfoils() []config.Airfoil {
	return []config.Airfoil{
		{Label: "NACA 0012", File: "naca0012.txt", Color: "blue"},
		{Label: "NACA 4412", File: "naca4412.txt", Color: "orange"},
		{Label: "Empty", File: "empty.txt"},
		{Label: "NACA 2408", File: "naca2408.txt", Color: "red"},
	}
}

func TestCompare(t *testing.T) {
	reporter := &recordingReporter{}

	cmp := Compare(zap.NewNop(), testSource(), testAirfoils(), reporter)

	if cmp.RunID == "" {
		t.Error("expected run id")
	}
	if len(cmp.Missing) != 1 || cmp.Missing[0].Label != "NACA 4412" || !source.IsMissing(cmp.Missing[0].Err) {
		t.Fatalf("unexpected missing sources %+v", cmp.Missing)
	}

	labels := cmp.Labels()
	expectedLabels := []string{"NACA 0012", "Empty", "NACA 2408"}
	if strings.Join(labels, ",") != strings.Join(expectedLabels, ",") {
		t.Fatalf("Labels() = %v, expected %v", labels, expectedLabels)
	}

	if len(cmp.Summary.Rows) != 3 {
		t.Fatalf("expected 3 summary rows, got %d", len(cmp.Summary.Rows))
	}
	if cmp.Summary.Rows[1].BestLD != 0 || cmp.Summary.Rows[1].Label != "Empty" {
		t.Errorf("expected zero row for empty dataset, got %+v", cmp.Summary.Rows[1])
	}
	row := cmp.Summary.Rows[2]
	if row.ClAt0 != 0.2402 || row.ClAt5 != 0.772 || row.BestAngle != 8 {
		t.Errorf("unexpected NACA 2408 row %+v", row)
	}

	if got := len(cmp.Datasets()); got != 2 {
		t.Errorf("Datasets() returned %d, expected 2 non-empty", got)
	}

	entry, ok := cmp.Lookup("NACA 2408")
	if !ok || entry.Dataset.Len() != 3 || entry.Dataset.Tag != "red" {
		t.Errorf("Lookup(NACA 2408) = %+v, %v", entry, ok)
	}
	if entry.Stats.Skipped != 2 || entry.Stats.Accepted != 3 {
		t.Errorf("unexpected parse stats %+v", entry.Stats)
	}
	if _, ok := cmp.Lookup("NACA 4412"); ok {
		t.Error("missing airfoil should not be looked up")
	}

	if reporter.count("missing") != 1 || reporter.count("empty") != 1 || reporter.count("parsed") != 2 {
		t.Errorf("unexpected events %v", reporter.events)
	}
	if reporter.count("cl NACA 0012") != 2 || reporter.count("best") != 2 {
		t.Errorf("unexpected metric events %v", reporter.events)
	}
}

func TestCompareDuplicateLabelsLastWins(t *testing.T) {
	src := source.NewMapSource(map[string]string{
		"a.txt": "0 0.1 0.01\n",
		"b.txt": "0 0.2 0.01\n",
	})
	cmp := Compare(nil, src, []config.Airfoil{
		{Label: "A", File: "a.txt"},
		{Label: "A", File: "b.txt"},
	}, nil)

	if len(cmp.Entries) != 2 {
		t.Fatalf("expected both entries kept, got %d", len(cmp.Entries))
	}
	entry, _ := cmp.Lookup("A")
	if entry.Path != "b.txt" {
		t.Errorf("expected later entry to win, got %s", entry.Path)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestResolveDesignPoint(t *testing.T) {
	cmp := Compare(zap.NewNop(), testSource(), testAirfoils(), nil)

	tests := []struct {
		name      string
		wing      config.WingConfig
		expectErr bool
		cl        float64
		cd        float64
	}{
		{
			name: "Lookup at default angle",
			wing: config.WingConfig{Airfoil: "NACA 2408"},
			cl:   0.772,
			cd:   0.00921,
		},
		{
			name: "Lookup at configured angle",
			wing: config.WingConfig{Airfoil: "NACA 2408", DesignAngle: floatPtr(8)},
			cl:   1.058,
			cd:   0.0115,
		},
		{
			name: "Override wins",
			wing: config.WingConfig{Airfoil: "NACA 2408", ClDesign: floatPtr(0.5), CdDesign: floatPtr(0.01)},
			cl:   0.5,
			cd:   0.01,
		},
		{
			name:      "Angle not sampled",
			wing:      config.WingConfig{Airfoil: "NACA 2408", DesignAngle: floatPtr(4)},
			expectErr: true,
		},
		{
			name:      "Airfoil missing",
			wing:      config.WingConfig{Airfoil: "NACA 4412"},
			expectErr: true,
		},
		{
			name:      "Airfoil empty",
			wing:      config.WingConfig{Airfoil: "Empty"},
			expectErr: true,
		},
		{
			name:      "No airfoil",
			wing:      config.WingConfig{},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := ResolveDesignPoint(tt.wing, cmp)
			if tt.expectErr {
				if !errors.Is(err, ErrDesignPointUnavailable) {
					t.Errorf("expected ErrDesignPointUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDesignPoint() error = %v", err)
			}
			if point.Cl != tt.cl || point.Cd != tt.cd {
				t.Errorf("ResolveDesignPoint() = %+v, expected Cl %v Cd %v", point, tt.cl, tt.cd)
			}
		})
	}
}

func TestStudyWing(t *testing.T) {
	reporter := &recordingReporter{}

	study, err := StudyWing(zap.NewNop(), wing.DesignPoint{Cl: 0.772, Cd: 0.00921}, wing.DefaultParams(), reporter)
	if err != nil {
		t.Fatalf("StudyWing() error = %v", err)
	}

	if len(study.Result.Configurations) != 5 || len(study.Result.Steps) != 4 {
		t.Fatalf("unexpected result sizes %d/%d", len(study.Result.Configurations), len(study.Result.Steps))
	}
	if math.Abs(study.Result.Configurations[2].LiftToDrag-25.5) > 0.05 {
		t.Errorf("L/D at AR 10 = %v, expected ~25.5", study.Result.Configurations[2].LiftToDrag)
	}
	if study.Result.Optimal.AspectRatio != 8 {
		t.Errorf("expected optimum AR 8, got %v", study.Result.Optimal.AspectRatio)
	}
	if reporter.count("config") != 5 || reporter.count("step") != 4 || reporter.count("optimum 8") != 1 {
		t.Errorf("unexpected events %v", reporter.events)
	}
}

func TestStudyWingPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		point    wing.DesignPoint
		params   wing.Params
		expected error
	}{
		{"Empty sweep", wing.DesignPoint{Cl: 0.7, Cd: 0.01}, wing.Params{OswaldEfficiency: 0.9}, wing.ErrEmptySweep},
		{"Zero drag", wing.DesignPoint{Cl: 0.7}, wing.DefaultParams(), wing.ErrNonPositiveDrag},
		{"Negative aspect ratio", wing.DesignPoint{Cl: 0.7, Cd: 0.01}, wing.Params{OswaldEfficiency: 0.9, AspectRatios: []float64{-1}}, wing.ErrNonPositiveAspectRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := StudyWing(nil, tt.point, tt.params, nil); !errors.Is(err, tt.expected) {
				t.Errorf("StudyWing() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestRun(t *testing.T) {
	conf := config.Configuration{
		Airfoils: testAirfoils(),
		Wing:     config.WingConfig{Airfoil: "NACA 2408", AspectRatios: []float64{6, 8, 10, 12, 14}},
	}
	reporter := &recordingReporter{}

	report, err := Run(zap.NewNop(), conf, testSource(), reporter)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.RunID == "" || report.RunID != report.Comparison.RunID || report.Wing.RunID != report.RunID {
		t.Errorf("run ids not shared: %s %s", report.RunID, report.Comparison.RunID)
	}
	if report.Wing == nil || report.Wing.DesignPoint.Airfoil != "NACA 2408" || report.Wing.DesignPoint.Angle != 5 {
		t.Fatalf("unexpected wing study %+v", report.Wing)
	}
	if report.Wing.Result.Optimal.AspectRatio != 8 {
		t.Errorf("expected AR 8, got %v", report.Wing.Result.Optimal.AspectRatio)
	}
	if reporter.events[0] != "run" {
		t.Errorf("expected run event first, got %v", reporter.events)
	}
}

func TestRunSkipsWingWithoutAirfoil(t *testing.T) {
	conf := config.Configuration{Airfoils: testAirfoils()}

	report, err := Run(nil, conf, testSource(), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Wing != nil {
		t.Errorf("expected no wing study, got %+v", report.Wing)
	}
	if len(report.Comparison.Summary.Rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(report.Comparison.Summary.Rows))
	}
}

func TestRunWingErrors(t *testing.T) {
	conf := config.Configuration{
		Airfoils: testAirfoils(),
		Wing:     config.WingConfig{Airfoil: "NACA 4412"},
	}

	report, err := Run(nil, conf, testSource(), nil)
	if !errors.Is(err, ErrDesignPointUnavailable) {
		t.Fatalf("expected ErrDesignPointUnavailable, got %v", err)
	}
	if report == nil || report.Comparison == nil {
		t.Fatal("expected comparison to be returned alongside the error")
	}

	conf.Wing = config.WingConfig{ClDesign: floatPtr(0.7), CdDesign: floatPtr(0.01), AspectRatios: []float64{8, 6}}
	if _, err := Run(nil, conf, testSource(), nil); err == nil {
		t.Error("expected error for decreasing sweep")
	}
	conf.Wing = config.WingConfig{Airfoil: "NACA 2408", OswaldEfficiency: floatPtr(0)}
	if _, err := Run(nil, conf, testSource(), nil); !errors.Is(err, wing.ErrInvalidOswald) {
		t.Errorf("expected ErrInvalidOswald for an explicit zero efficiency, got %v", err)
	}
}
