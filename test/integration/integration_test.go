package integration

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/airfoil-tradeoff/internal/analysis"
	"github.com/iwvelando/airfoil-tradeoff/internal/config"
	"github.com/iwvelando/airfoil-tradeoff/internal/export"
	"github.com/iwvelando/airfoil-tradeoff/internal/source"
	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
	"github.com/iwvelando/airfoil-tradeoff/pkg/output"
	"github.com/iwvelando/airfoil-tradeoff/pkg/testutil"
	"go.uber.org/zap"
)

const testConfigPath = "../test_config.yaml"

// runTestConfig loads the shared test configuration and runs it exactly as
// main() does.
func runTestConfig(t *testing.T, reporter analysis.Reporter) (*config.Configuration, *analysis.Report) {
	t.Helper()

	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	src := source.NewFileSource(filepath.Join(filepath.Dir(testConfigPath), conf.SourceDirectory))
	report, err := analysis.Run(zap.NewNop(), *conf, src, reporter)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return conf, report
}

// TestMainIntegrationBaseline checks the comparison and wing study of the
// test configuration against values computed by hand from the fixtures.
func TestMainIntegrationBaseline(t *testing.T) {
	_, report := runTestConfig(t, nil)

	rows := report.Comparison.Summary.Rows
	if len(rows) != 4 {
		t.Fatalf("Expected 4 summary rows, got %d", len(rows))
	}

	tests := []struct {
		label     string
		clAt0     float64
		clAt5     float64
		bestLD    float64
		bestAngle float64
	}{
		{"NACA 0012 (Symmetric)", 0, 0.55, 94.945, 8},
		{"NACA 1408 (1% camber)", 0.112, 0.656, 93.333, 8},
		{"NACA 2408 (2% camber)", 0.2402, 0.772, 92.0, 8},
		{"Empty table", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			row := testutil.FindRow(rows, tt.label)
			if row == nil {
				t.Fatalf("Missing row for %s", tt.label)
			}
			if row.ClAt0 != tt.clAt0 || row.ClAt5 != tt.clAt5 {
				t.Errorf("Cl = %v/%v, expected %v/%v", row.ClAt0, row.ClAt5, tt.clAt0, tt.clAt5)
			}
			if math.Abs(row.BestLD-tt.bestLD) > 0.001 {
				t.Errorf("BestLD = %v, expected %v", row.BestLD, tt.bestLD)
			}
			if row.BestAngle != tt.bestAngle {
				t.Errorf("BestAngle = %v, expected %v", row.BestAngle, tt.bestAngle)
			}
		})
	}

	if len(report.Comparison.Missing) != 1 || report.Comparison.Missing[0].Label != "NACA 4412 (missing)" {
		t.Errorf("Expected NACA 4412 to be missing, got %+v", report.Comparison.Missing)
	}
	if !source.IsMissing(report.Comparison.Missing[0].Err) {
		t.Errorf("Expected a not-exist error, got %v", report.Comparison.Missing[0].Err)
	}

	if report.Wing == nil {
		t.Fatal("Expected a wing study")
	}
	if report.Wing.DesignPoint.Cl != 0.772 || report.Wing.DesignPoint.Cd != 0.00921 {
		t.Errorf("Unexpected design point %+v", report.Wing.DesignPoint)
	}

	expectedLD := map[float64]float64{6: 17.41, 8: 21.71, 10: 25.49, 12: 28.83, 14: 31.81}
	for ar, ld := range expectedLD {
		c := testutil.FindConfiguration(report.Wing.Result.Configurations, ar)
		if c == nil {
			t.Fatalf("Missing configuration for AR %v", ar)
		}
		if math.Abs(c.LiftToDrag-ld) > 0.01 {
			t.Errorf("AR %v L/D = %v, expected %v", ar, c.LiftToDrag, ld)
		}
	}

	if report.Wing.Result.Optimal.AspectRatio != 8 {
		t.Errorf("Expected optimal AR 8, got %v", report.Wing.Result.Optimal.AspectRatio)
	}
	first := report.Wing.Result.Steps[0]
	if math.Abs(first.LDImprovementPct-24.70) > 0.01 || math.Abs(first.WeightIncreasePct-53.96) > 0.01 {
		t.Errorf("Unexpected first step %+v", first)
	}
}

func TestPrettyOutputFormat(t *testing.T) {
	var buf bytes.Buffer
	_, report := runTestConfig(t, output.NewConsole(&buf))
	output.FprintPretty(&buf, report)
	out := buf.String()

	expected := []string{
		"Reading NACA 4412 (missing) from naca4412_results.txt...",
		"  ✗ naca4412_results.txt not found",
		"  ⚠ No data found in empty_results.txt",
		"  ✓ Found 6 data points",
		"NACA 2408 (2% camber): Cl at α=5° = 0.7720",
		"NACA 2408 (2% camber): Best L/D = 92.0 at α = 8°",
		"Design point: Cl = 0.772, Cd_2d = 0.00921 at α=5°",
		output.WingTableHeader,
		" OPTIMAL ASPECT RATIO: AR = 8",
		"Higher AR wings are aerodynamically better but heavier.",
		"Optimal aspect ratio: 8 (L/D 21.7, relative weight 22.63)",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Pretty output missing %q", want)
		}
	}
}

func TestCsvOutputFormat(t *testing.T) {
	_, report := runTestConfig(t, nil)

	var buf bytes.Buffer
	if err := output.FprintCsv(&buf, report); err != nil {
		t.Fatalf("FprintCsv() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		"Airfoil,Cl_0deg,Cl_5deg,Best_L/D,Best_Angle",
		"NACA 0012 (Symmetric),0.0000,0.5500,94.9,8",
		"NACA 1408 (1% camber),0.1120,0.6560,93.3,8",
		"NACA 2408 (2% camber),0.2402,0.7720,92.0,8",
		"Empty table,0.0000,0.0000,0.0,0",
		"",
		"Aspect_Ratio,L/D_ratio,Relative_Weight",
		"6,17.4,14.70",
		"8,21.7,22.63",
		"10,25.5,31.62",
		"12,28.8,41.57",
		"14,31.8,52.38",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(lines), buf.String())
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("Line %d = %q, expected %q", i, lines[i], want)
		}
	}
}

func TestExportArtifacts(t *testing.T) {
	conf, report := runTestConfig(t, nil)

	dir := export.NewDirectory(filepath.Join(t.TempDir(), conf.Output.Directory), zap.NewNop())
	artifacts, err := dir.WriteReport(report, export.Options{
		Charts:   conf.Output.ChartsEnabled(),
		Workbook: conf.Output.WorkbookEnabled(),
	})
	if err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	if len(artifacts) != 7 {
		t.Fatalf("Expected 7 artifacts, got %d", len(artifacts))
	}

	summary, err := os.ReadFile(filepath.Join(dir.Dir, constants.SummaryCSVFile))
	if err != nil {
		t.Fatalf("Failed to read summary: %v", err)
	}
	if !strings.HasPrefix(string(summary), "Airfoil,Cl_0deg,Cl_5deg,Best_L/D,Best_Angle\nNACA 0012 (Symmetric),0.0000,0.5500,94.9,8\n") {
		t.Errorf("Unexpected summary CSV:\n%s", summary)
	}

	wingCSV, err := os.ReadFile(filepath.Join(dir.Dir, constants.WingCSVFile))
	if err != nil {
		t.Fatalf("Failed to read wing CSV: %v", err)
	}
	if !strings.Contains(string(wingCSV), "\n8,21.7,22.63\n") {
		t.Errorf("Unexpected wing CSV:\n%s", wingCSV)
	}

	for _, name := range []string{constants.ComparisonChartFile, constants.WingTradeoffChartFile} {
		data, err := os.ReadFile(filepath.Join(dir.Dir, name))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("%s is not a PNG", name)
		}
	}
}

func TestConfigurationValidation(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		expectErr bool
		warnings  []string
	}{
		{
			name: "Clean configuration",
			yaml: `airfoils:
  - {label: A, file: a.txt, color: blue}
wing: {airfoil: A}
`,
		},
		{
			name: "Unknown wing airfoil and color",
			yaml: `airfoils:
  - {label: A, file: a.txt, color: chartreuse}
wing: {airfoil: B}
`,
			warnings: []string{"chartreuse", "'B'"},
		},
		{
			name: "Partial override",
			yaml: `airfoils:
  - {label: A, file: a.txt}
wing: {airfoil: A, clDesign: 0.7}
`,
			warnings: []string{"clDesign"},
		},
		{
			name: "Invalid oswald efficiency",
			yaml: `airfoils:
  - {label: A, file: a.txt}
wing: {oswaldEfficiency: 1.2}
`,
			expectErr: true,
		},
		{
			name: "Missing file",
			yaml: `airfoils:
  - {label: A}
`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := config.LoadConfigurationFromReader(strings.NewReader(tt.yaml))
			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}

			warnings := strings.Join(conf.ValidateConfiguration(), "\n")
			if len(tt.warnings) == 0 && warnings != "" {
				t.Errorf("Expected no warnings, got %s", warnings)
			}
			for _, want := range tt.warnings {
				if !strings.Contains(warnings, want) {
					t.Errorf("Warnings %q missing %q", warnings, want)
				}
			}
		})
	}
}
