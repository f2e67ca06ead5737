// Package optimizer selects the aspect ratio that best trades aerodynamic
// efficiency against structural weight.
package optimizer

import (
	"errors"
	"fmt"

	"github.com/iwvelando/airfoil-tradeoff/pkg/mathutil"
	"github.com/iwvelando/airfoil-tradeoff/pkg/optimization"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"go.uber.org/zap"
)

var (
	// ErrEmptySweep is returned when there are no configurations to compare.
	ErrEmptySweep = errors.New("optimizer: no wing configurations")
	// ErrUnorderedSweep is returned when aspect ratios decrease along the sweep.
	ErrUnorderedSweep = errors.New("optimizer: aspect ratios must be non-decreasing")
)

const (
	reasonZeroWeightIncrease = "weight does not change between aspect ratios"
	reasonZeroBaselineLD     = "previous L/D is zero"
)

// Result is the outcome of a trade-off search.
type Result struct {
	Configurations []wing.Configuration `json:"configurations"`
	Steps          []optimization.Step  `json:"steps"`
	Optimal        wing.Configuration   `json:"optimal"`
	OptimalIndex   int                  `json:"optimalIndex"`
	// BestStep indexes Steps, or is -1 when no step was eligible.
	BestStep int `json:"bestStep"`
}

// Compare evaluates the step from prev to next.
func Compare(prev, next wing.Configuration) optimization.Step {
	step := optimization.Step{
		FromAspectRatio: prev.AspectRatio,
		ToAspectRatio:   next.AspectRatio,
	}

	ldPct, ok := mathutil.PercentChange(prev.LiftToDrag, next.LiftToDrag)
	if !ok {
		step.Skipped = true
		step.Reason = reasonZeroBaselineLD
		return step
	}
	step.LDImprovementPct = ldPct

	weightPct, ok := mathutil.PercentChange(prev.RelativeWeight, next.RelativeWeight)
	step.WeightIncreasePct = weightPct
	if !ok || weightPct == 0 {
		step.Skipped = true
		step.Reason = reasonZeroWeightIncrease
		return step
	}

	step.EfficiencyPerWeight = ldPct / weightPct
	return step
}

// Optimize compares every adjacent pair of configs and recommends the later
// aspect ratio of the step with the highest efficiency gain per unit of
// weight growth. Ties go to the earliest step. A single configuration is
// returned as its own optimum with no steps.
func Optimize(configs []wing.Configuration) (Result, error) {
	if len(configs) == 0 {
		return Result{}, ErrEmptySweep
	}
	for i := 1; i < len(configs); i++ {
		if configs[i].AspectRatio < configs[i-1].AspectRatio {
			return Result{}, fmt.Errorf("%w: %v follows %v", ErrUnorderedSweep,
				configs[i].AspectRatio, configs[i-1].AspectRatio)
		}
	}

	result := Result{
		Configurations: configs,
		Steps:          make([]optimization.Step, 0, len(configs)-1),
		Optimal:        configs[0],
		OptimalIndex:   0,
		BestStep:       -1,
	}

	for i := 1; i < len(configs); i++ {
		step := Compare(configs[i-1], configs[i])
		result.Steps = append(result.Steps, step)
		if !step.Eligible() {
			continue
		}
		if result.BestStep < 0 || step.EfficiencyPerWeight > result.Steps[result.BestStep].EfficiencyPerWeight {
			result.BestStep = len(result.Steps) - 1
			result.OptimalIndex = i
			result.Optimal = configs[i]
		}
	}

	return result, nil
}

// Runner wraps Optimize with logging.
type Runner struct {
	logger *zap.Logger
}

// NewRunner constructs a Runner. A nil logger disables logging.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run executes the trade-off search over configs.
func (r *Runner) Run(configs []wing.Configuration) (*Result, error) {
	result, err := Optimize(configs)
	if err != nil {
		return nil, err
	}

	for _, step := range result.Steps {
		if step.Skipped {
			r.logger.Warn("skipping trade-off step",
				zap.String("op", "optimizer.Run"),
				zap.Float64("fromAspectRatio", step.FromAspectRatio),
				zap.Float64("toAspectRatio", step.ToAspectRatio),
				zap.String("reason", step.Reason),
			)
			continue
		}
		r.logger.Debug("evaluated trade-off step",
			zap.String("op", "optimizer.Run"),
			zap.Float64("fromAspectRatio", step.FromAspectRatio),
			zap.Float64("toAspectRatio", step.ToAspectRatio),
			zap.Float64("ldImprovementPct", step.LDImprovementPct),
			zap.Float64("weightIncreasePct", step.WeightIncreasePct),
			zap.Float64("efficiencyPerWeight", step.EfficiencyPerWeight),
		)
	}

	r.logger.Info("selected optimal aspect ratio",
		zap.String("op", "optimizer.Run"),
		zap.Float64("aspectRatio", result.Optimal.AspectRatio),
		zap.Float64("liftToDrag", result.Optimal.LiftToDrag),
		zap.Float64("relativeWeight", result.Optimal.RelativeWeight),
		zap.Int("steps", len(result.Steps)),
		zap.Int("bestStep", result.BestStep),
	)

	return &result, nil
}
