package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/airfoil-tradeoff/pkg/aero"
	"github.com/iwvelando/airfoil-tradeoff/pkg/format"
	"github.com/iwvelando/airfoil-tradeoff/pkg/optimization"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const bannerWidth = 30

// Console narrates an analysis run for a human reader.
type Console struct {
	p          *message.Printer
	w          io.Writer
	stepsBegun bool
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{p: message.NewPrinter(language.English), w: w}
}

func (c *Console) banner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	_, _ = fmt.Fprintf(c.w, "\n%s\n%s\n%s\n", rule, title, rule)
}

func (c *Console) RunStarted(runID string) {
	c.stepsBegun = false
	c.banner("AIRFOIL COMPARISON FROM XFOIL DATA")
	_, _ = fmt.Fprintf(c.w, "Run %s\n", runID)
}

func (c *Console) SourceMissing(label, path string, err error) {
	_, _ = fmt.Fprintf(c.w, "\nReading %s from %s...\n", label, path)
	_, _ = fmt.Fprintf(c.w, "  ✗ %s not found\n", path)
}

func (c *Console) DatasetParsed(label, path string, accepted int) {
	_, _ = fmt.Fprintf(c.w, "\nReading %s from %s...\n", label, path)
	_, _ = c.p.Fprintf(c.w, "  ✓ Found %d data points\n", accepted)
}

func (c *Console) DatasetEmpty(label, path string) {
	_, _ = fmt.Fprintf(c.w, "\nReading %s from %s...\n", label, path)
	_, _ = fmt.Fprintf(c.w, "  ⚠ No data found in %s\n", path)
}

func (c *Console) ClAtAngle(label string, angle, cl float64) {
	_, _ = fmt.Fprintf(c.w, "%s: Cl at α=%s° = %s\n", label, format.Angle(angle), format.Coefficient(cl))
}

func (c *Console) BestLD(label string, best aero.BestLD) {
	_, _ = fmt.Fprintf(c.w, "%s: Best L/D = %s at α = %s°\n", label, format.Ratio(best.Value), format.Angle(best.Angle))
}

func (c *Console) DesignPointResolved(point wing.DesignPoint) {
	c.banner("3D WING ANALYSIS - ASPECT RATIO TRADE-OFFS")
	if point.Airfoil != "" {
		_, _ = fmt.Fprintf(c.w, "Using %s as baseline\n", point.Airfoil)
		_, _ = fmt.Fprintf(c.w, "Design point: Cl = %s, Cd_2d = %s at α=%s°\n",
			format.Fixed(point.Cl, 3), format.Drag(point.Cd), format.Angle(point.Angle))
		return
	}
	_, _ = fmt.Fprintf(c.w, "Design point: Cl = %s, Cd_2d = %s\n", format.Fixed(point.Cl, 3), format.Drag(point.Cd))
}

func (c *Console) SweepStarted(params wing.Params) {
	ratios := make([]string, len(params.AspectRatios))
	for i, ar := range params.AspectRatios {
		ratios[i] = format.Angle(ar)
	}
	_, _ = fmt.Fprintf(c.w, "\nStudying Aspect Ratios: [%s] (e = %s)\n", strings.Join(ratios, ", "), format.Fixed(params.OswaldEfficiency, 2))
	c.banner("CONVERTING 2D TO 3D (Lifting Line Theory)")
	_, _ = fmt.Fprintln(c.w, WingTableHeader)
	_, _ = fmt.Fprintln(c.w, strings.Repeat("-", len(WingTableHeader)))
}

func (c *Console) WingConfiguration(cfg wing.Configuration) {
	_, _ = fmt.Fprintln(c.w, wingTableRow(cfg))
}

func (c *Console) TradeoffStep(step optimization.Step) {
	if !c.stepsBegun {
		c.banner("FINDING OPTIMAL ASPECT RATIO")
		c.stepsBegun = true
	}
	_, _ = fmt.Fprintf(c.w, "AR %s→%s:\n", format.Angle(step.FromAspectRatio), format.Angle(step.ToAspectRatio))
	if step.Skipped {
		_, _ = fmt.Fprintf(c.w, "  skipped: %s\n", step.Reason)
		return
	}
	_, _ = fmt.Fprintf(c.w, "  L/D increases by %s%%\n", format.Ratio(step.LDImprovementPct))
	_, _ = fmt.Fprintf(c.w, "  Weight increases by %s%%\n", format.Ratio(step.WeightIncreasePct))
	_, _ = fmt.Fprintf(c.w, "  Efficiency gain per weight: %s\n", format.Efficiency(step.EfficiencyPerWeight))
}

func (c *Console) OptimumSelected(cfg wing.Configuration) {
	_, _ = fmt.Fprintf(c.w, "\n OPTIMAL ASPECT RATIO: AR = %s\n", format.Angle(cfg.AspectRatio))
	_, _ = fmt.Fprintf(c.w, "   L/D = %s\n", format.Ratio(cfg.LiftToDrag))
	_, _ = fmt.Fprintf(c.w, "   Relative Weight = %s\n", format.Weight(cfg.RelativeWeight))
	c.banner("Conclusion:")
	_, _ = fmt.Fprintln(c.w, "Higher AR wings are aerodynamically better but heavier.")
	_, _ = fmt.Fprintf(c.w, "AR=%s provides the best trade-off for general purpose aviation.\n", format.Angle(cfg.AspectRatio))
}

// Saved announces an artifact written to path.
func (c *Console) Saved(kind, path string) {
	_, _ = fmt.Fprintf(c.w, "✓ Saved %s as '%s'\n", kind, path)
}
