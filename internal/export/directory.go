package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iwvelando/airfoil-tradeoff/internal/analysis"
	"github.com/iwvelando/airfoil-tradeoff/internal/chart"
	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Options selects the optional artifacts.
type Options struct {
	Charts   bool
	Workbook bool
}

// Artifact is one written file.
type Artifact struct {
	Kind string
	Path string
}

// Directory writes artifacts into a directory of a file system.
type Directory struct {
	Fs     afero.Fs
	Dir    string
	Logger *zap.Logger
}

// NewDirectory returns a Directory on the operating system file system.
func NewDirectory(dir string, logger *zap.Logger) *Directory {
	return &Directory{Fs: afero.NewOsFs(), Dir: dir, Logger: logger}
}

func (d *Directory) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// write creates name in the directory, replacing an existing file.
func (d *Directory) write(name string, fill func(io.Writer) error) (string, error) {
	path := filepath.Join(d.Dir, name)
	file, err := d.Fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}

	if err := fill(file); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	d.logger().Debug("artifact written",
		zap.String("op", "export.Directory.write"),
		zap.String("path", path),
	)
	return path, nil
}

// WriteReport writes every artifact of report and returns them in the
// order written. A comparison chart is only drawn when at least one dataset
// holds data. Wing artifacts are skipped when the report has no wing study.
func (d *Directory) WriteReport(report *analysis.Report, opts Options) ([]Artifact, error) {
	if err := d.Fs.MkdirAll(d.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	var artifacts []Artifact
	add := func(kind, name string, fill func(io.Writer) error) error {
		path, err := d.write(name, fill)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, Artifact{Kind: kind, Path: path})
		return nil
	}

	if report.Comparison != nil {
		summary := report.Comparison.Summary
		if err := add("summary", constants.SummaryCSVFile, func(w io.Writer) error {
			return WriteSummaryCSV(w, summary)
		}); err != nil {
			return artifacts, err
		}

		datasets := report.Comparison.Datasets()
		if opts.Charts && len(datasets) > 0 {
			if err := add("comparison plot", constants.ComparisonChartFile, func(w io.Writer) error {
				return chart.RenderComparison(w, chart.LiftSeries(datasets), chart.DragSeries(datasets), chart.EfficiencySeries(datasets))
			}); err != nil {
				return artifacts, err
			}
		}
	}

	if study := report.Wing; study != nil {
		result := study.Result
		if err := add("wing analysis", constants.WingCSVFile, func(w io.Writer) error {
			return WriteWingCSV(w, result.Configurations)
		}); err != nil {
			return artifacts, err
		}
		if err := add("wing configurations", constants.WingDetailCSVFile, func(w io.Writer) error {
			return WriteWingDetailCSV(w, result.Configurations)
		}); err != nil {
			return artifacts, err
		}
		if err := add("trade-off steps", constants.TradeoffCSVFile, func(w io.Writer) error {
			return WriteTradeoffCSV(w, result.Steps)
		}); err != nil {
			return artifacts, err
		}
		if opts.Charts {
			if err := add("wing trade-off plot", constants.WingTradeoffChartFile, func(w io.Writer) error {
				return chart.RenderWingTradeoff(w, result.Configurations, result.OptimalIndex)
			}); err != nil {
				return artifacts, err
			}
		}
	}

	if opts.Workbook {
		if err := add("workbook", constants.WorkbookFile, func(w io.Writer) error {
			return WriteWorkbook(w, report)
		}); err != nil {
			return artifacts, err
		}
	}

	d.logger().Info("artifacts written",
		zap.String("op", "export.Directory.WriteReport"),
		zap.String("runId", report.RunID),
		zap.String("directory", d.Dir),
		zap.Int("count", len(artifacts)),
	)
	return artifacts, nil
}
