package analysis

import (
	"github.com/iwvelando/airfoil-tradeoff/pkg/aero"
	"github.com/iwvelando/airfoil-tradeoff/pkg/optimization"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"go.uber.org/zap"
)

// Reporter receives progress events from an analysis run.
type Reporter interface {
	RunStarted(runID string)
	SourceMissing(label, path string, err error)
	DatasetParsed(label, path string, accepted int)
	DatasetEmpty(label, path string)
	ClAtAngle(label string, angle, cl float64)
	BestLD(label string, best aero.BestLD)
	DesignPointResolved(point wing.DesignPoint)
	SweepStarted(params wing.Params)
	WingConfiguration(c wing.Configuration)
	TradeoffStep(step optimization.Step)
	OptimumSelected(c wing.Configuration)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) RunStarted(string)                    {}
func (NopReporter) SourceMissing(string, string, error)  {}
func (NopReporter) DatasetParsed(string, string, int)    {}
func (NopReporter) DatasetEmpty(string, string)          {}
func (NopReporter) ClAtAngle(string, float64, float64)   {}
func (NopReporter) BestLD(string, aero.BestLD)           {}
func (NopReporter) DesignPointResolved(wing.DesignPoint) {}
func (NopReporter) SweepStarted(wing.Params)             {}
func (NopReporter) WingConfiguration(wing.Configuration) {}
func (NopReporter) TradeoffStep(optimization.Step)       {}
func (NopReporter) OptimumSelected(wing.Configuration)   {}

// MultiReporter forwards every event to each of its reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) RunStarted(runID string) {
	for _, r := range m {
		r.RunStarted(runID)
	}
}

func (m MultiReporter) SourceMissing(label, path string, err error) {
	for _, r := range m {
		r.SourceMissing(label, path, err)
	}
}

func (m MultiReporter) DatasetParsed(label, path string, accepted int) {
	for _, r := range m {
		r.DatasetParsed(label, path, accepted)
	}
}

func (m MultiReporter) DatasetEmpty(label, path string) {
	for _, r := range m {
		r.DatasetEmpty(label, path)
	}
}

func (m MultiReporter) ClAtAngle(label string, angle, cl float64) {
	for _, r := range m {
		r.ClAtAngle(label, angle, cl)
	}
}

func (m MultiReporter) BestLD(label string, best aero.BestLD) {
	for _, r := range m {
		r.BestLD(label, best)
	}
}

func (m MultiReporter) DesignPointResolved(point wing.DesignPoint) {
	for _, r := range m {
		r.DesignPointResolved(point)
	}
}

func (m MultiReporter) SweepStarted(params wing.Params) {
	for _, r := range m {
		r.SweepStarted(params)
	}
}

func (m MultiReporter) WingConfiguration(c wing.Configuration) {
	for _, r := range m {
		r.WingConfiguration(c)
	}
}

func (m MultiReporter) TradeoffStep(step optimization.Step) {
	for _, r := range m {
		r.TradeoffStep(step)
	}
}

func (m MultiReporter) OptimumSelected(c wing.Configuration) {
	for _, r := range m {
		r.OptimumSelected(c)
	}
}

// LogReporter writes events as structured log entries.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter returns a LogReporter. A nil logger discards events.
func NewLogReporter(logger *zap.Logger) *LogReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogReporter{logger: logger}
}

// RunStarted tags all later entries with the run id.
func (l *LogReporter) RunStarted(runID string) {
	l.logger = l.logger.With(zap.String("runId", runID))
	l.logger.Info("analysis run started",
		zap.String("op", "analysis.RunStarted"),
	)
}

func (l *LogReporter) SourceMissing(label, path string, err error) {
	l.logger.Warn("polar table unavailable, airfoil omitted",
		zap.String("op", "analysis.SourceMissing"),
		zap.String("airfoil", label),
		zap.String("path", path),
		zap.Error(err),
	)
}

func (l *LogReporter) DatasetParsed(label, path string, accepted int) {
	l.logger.Info("parsed polar table",
		zap.String("op", "analysis.DatasetParsed"),
		zap.String("airfoil", label),
		zap.String("path", path),
		zap.Int("points", accepted),
	)
}

func (l *LogReporter) DatasetEmpty(label, path string) {
	l.logger.Warn("polar table yielded no data points",
		zap.String("op", "analysis.DatasetEmpty"),
		zap.String("airfoil", label),
		zap.String("path", path),
	)
}

func (l *LogReporter) ClAtAngle(label string, angle, cl float64) {
	l.logger.Debug("lift coefficient at reference angle",
		zap.String("op", "analysis.ClAtAngle"),
		zap.String("airfoil", label),
		zap.Float64("angle", angle),
		zap.Float64("cl", cl),
	)
}

func (l *LogReporter) BestLD(label string, best aero.BestLD) {
	l.logger.Info("best lift-to-drag ratio",
		zap.String("op", "analysis.BestLD"),
		zap.String("airfoil", label),
		zap.Float64("ld", best.Value),
		zap.Float64("angle", best.Angle),
	)
}

func (l *LogReporter) DesignPointResolved(point wing.DesignPoint) {
	l.logger.Info("wing design point resolved",
		zap.String("op", "analysis.DesignPointResolved"),
		zap.String("airfoil", point.Airfoil),
		zap.Float64("angle", point.Angle),
		zap.Float64("clDesign", point.Cl),
		zap.Float64("cdDesign", point.Cd),
	)
}

func (l *LogReporter) SweepStarted(params wing.Params) {
	l.logger.Debug("lifting-line sweep started",
		zap.String("op", "analysis.SweepStarted"),
		zap.Float64("oswaldEfficiency", params.OswaldEfficiency),
		zap.Float64s("aspectRatios", params.AspectRatios),
	)
}

func (l *LogReporter) WingConfiguration(c wing.Configuration) {
	l.logger.Debug("wing configuration",
		zap.String("op", "analysis.WingConfiguration"),
		zap.Float64("aspectRatio", c.AspectRatio),
		zap.Float64("inducedDrag", c.InducedDragCoeff),
		zap.Float64("totalDrag", c.TotalDragCoeff),
		zap.Float64("liftToDrag", c.LiftToDrag),
		zap.Float64("relativeWeight", c.RelativeWeight),
	)
}

func (l *LogReporter) TradeoffStep(step optimization.Step) {
	l.logger.Debug("trade-off step",
		zap.String("op", "analysis.TradeoffStep"),
		zap.Float64("fromAspectRatio", step.FromAspectRatio),
		zap.Float64("toAspectRatio", step.ToAspectRatio),
		zap.Float64("efficiencyPerWeight", step.EfficiencyPerWeight),
		zap.Bool("skipped", step.Skipped),
	)
}

func (l *LogReporter) OptimumSelected(c wing.Configuration) {
	l.logger.Info("optimal aspect ratio selected",
		zap.String("op", "analysis.OptimumSelected"),
		zap.Float64("aspectRatio", c.AspectRatio),
		zap.Float64("liftToDrag", c.LiftToDrag),
		zap.Float64("relativeWeight", c.RelativeWeight),
	)
}
