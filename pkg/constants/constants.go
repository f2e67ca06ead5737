// Package constants provides shared constants for the airfoil-tradeoff application.
package constants

// Aerodynamic defaults
const (
	// DefaultOswaldEfficiency is the span efficiency used when none is configured
	DefaultOswaldEfficiency = 0.9
	// WeightExponent is the exponent of the aspect-ratio structural weight proxy
	WeightExponent = 1.5
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// DefaultAspectRatios is the aspect-ratio sweep used when none is configured.
func DefaultAspectRatios() []float64 {
	return []float64{6, 8, 10, 12, 14}
}

// Comparison reference angles (degrees) reported in the summary.
const (
	// ReferenceAngleZero is the first summary angle of attack
	ReferenceAngleZero = 0.0
	// ReferenceAngleFive is the second summary angle of attack
	ReferenceAngleFive = 5.0
	// DefaultDesignAngle is the angle the wing design point is read at
	DefaultDesignAngle = 5.0
)

// Output precision (decimal places)
const (
	// CoefficientDecimals is the precision of Cl and Cd in artifacts
	CoefficientDecimals = 4
	// RatioDecimals is the precision of L/D and percentage values
	RatioDecimals = 1
	// WeightDecimals is the precision of relative weight values
	WeightDecimals = 2
	// DragDecimals is the precision of drag breakdowns in the wing table
	DragDecimals = 5
	// EfficiencyDecimals is the console precision of efficiency-per-weight figures
	EfficiencyDecimals = 3
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"
	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Artifact file names
const (
	SummaryCSVFile        = "airfoil_summary.csv"
	WingCSVFile           = "wing_analysis.csv"
	WingDetailCSVFile     = "wing_configurations.csv"
	TradeoffCSVFile       = "tradeoff_steps.csv"
	WorkbookFile          = "airfoil_analysis.xlsx"
	ComparisonChartFile   = "airfoil_comparison.png"
	WingTradeoffChartFile = "wing_tradeoff.png"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
	// EnvPrefix is the prefix for environment overrides of configuration keys
	EnvPrefix = "AIRFOIL"
	// DefaultOutputDirectory is where artifacts are written when none is configured
	DefaultOutputDirectory = "results"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
	// DefaultMaxUploadSizeBytes is the default maximum upload size for polar tables (1 MB)
	DefaultMaxUploadSizeBytes int64 = 1024 * 1024
)

// Source loading
const (
	// MaxConcurrentReads bounds the number of polar files read at once
	MaxConcurrentReads = 4
)
