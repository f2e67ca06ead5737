package analysis

import (
	"errors"
	"fmt"

	"github.com/iwvelando/airfoil-tradeoff/internal/config"
	"github.com/iwvelando/airfoil-tradeoff/internal/optimizer"
	"github.com/iwvelando/airfoil-tradeoff/internal/source"
	"github.com/iwvelando/airfoil-tradeoff/pkg/adapters"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"go.uber.org/zap"
)

// ErrDesignPointUnavailable is returned when the design point cannot be
// read from the configured airfoil.
var ErrDesignPointUnavailable = errors.New("design point unavailable")

// WingStudy is the result of a lifting-line sweep and trade-off search.
type WingStudy struct {
	RunID       string
	DesignPoint wing.DesignPoint
	Params      wing.Params
	Result      optimizer.Result
}

// ResolveDesignPoint returns the explicit design point of w when both
// coefficients are set, otherwise Cl and Cd of the first sample of the
// configured airfoil at exactly the design angle.
func ResolveDesignPoint(w config.WingConfig, cmp *Comparison) (wing.DesignPoint, error) {
	if point, ok := adapters.DesignPointOverride(w); ok {
		return point, nil
	}
	if w.Airfoil == "" {
		return wing.DesignPoint{}, fmt.Errorf("%w: no wing airfoil configured", ErrDesignPointUnavailable)
	}
	if cmp == nil {
		return wing.DesignPoint{}, fmt.Errorf("%w: no comparison data", ErrDesignPointUnavailable)
	}

	entry, ok := cmp.Lookup(w.Airfoil)
	if !ok {
		return wing.DesignPoint{}, fmt.Errorf("%w: airfoil %q was not loaded", ErrDesignPointUnavailable, w.Airfoil)
	}
	angle := w.Angle()
	p, ok := entry.Dataset.PointAt(angle)
	if !ok {
		return wing.DesignPoint{}, fmt.Errorf("%w: airfoil %q has no sample at %v deg", ErrDesignPointUnavailable, w.Airfoil, angle)
	}

	return wing.DesignPoint{Cl: p.Cl, Cd: p.Cd, Airfoil: w.Airfoil, Angle: angle}, nil
}

// StudyWing sweeps point across params and selects the optimal aspect ratio.
func StudyWing(logger *zap.Logger, point wing.DesignPoint, params wing.Params, reporter Reporter) (*WingStudy, error) {
	return studyWing(logger, NewRunID(), point, params, reporter)
}

func studyWing(logger *zap.Logger, runID string, point wing.DesignPoint, params wing.Params, reporter Reporter) (*WingStudy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	reporter.DesignPointResolved(point)

	configs, err := wing.Sweep(point, params)
	if err != nil {
		return nil, fmt.Errorf("lifting-line sweep failed: %w", err)
	}

	reporter.SweepStarted(params)
	for _, c := range configs {
		reporter.WingConfiguration(c)
	}

	result, err := optimizer.NewRunner(logger.With(zap.String("runId", runID))).Run(configs)
	if err != nil {
		return nil, fmt.Errorf("trade-off search failed: %w", err)
	}

	for _, step := range result.Steps {
		reporter.TradeoffStep(step)
	}
	reporter.OptimumSelected(result.Optimal)

	return &WingStudy{RunID: runID, DesignPoint: point, Params: params, Result: *result}, nil
}

// Report is the outcome of a full run.
type Report struct {
	RunID      string
	Comparison *Comparison
	// Wing is nil when no wing study was configured.
	Wing *WingStudy
}

// Run performs the comparison of every configured airfoil followed by the
// wing study. The wing study is skipped when neither a wing airfoil nor an
// explicit design point is configured.
func Run(logger *zap.Logger, conf config.Configuration, src source.Source, reporter Reporter) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	runID := NewRunID()
	reporter.RunStarted(runID)

	report := &Report{RunID: runID}
	report.Comparison = compare(logger, runID, src, conf.Airfoils, reporter)

	logger.Info("airfoil comparison complete",
		zap.String("op", "analysis.Run"),
		zap.String("runId", runID),
		zap.Int("airfoils", len(report.Comparison.Entries)),
		zap.Int("missing", len(report.Comparison.Missing)),
	)

	if conf.Wing.Airfoil == "" && !conf.Wing.HasDesignOverride() {
		logger.Debug("skipping wing study: no design airfoil configured",
			zap.String("op", "analysis.Run"),
			zap.String("runId", runID),
		)
		return report, nil
	}

	point, err := ResolveDesignPoint(conf.Wing, report.Comparison)
	if err != nil {
		return report, err
	}

	study, err := studyWing(logger, runID, point, adapters.WingParams(conf.Wing), reporter)
	if err != nil {
		return report, err
	}
	report.Wing = study

	return report, nil
}
