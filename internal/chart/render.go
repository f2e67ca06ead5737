package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/iwvelando/airfoil-tradeoff/pkg/format"
	"github.com/iwvelando/airfoil-tradeoff/pkg/palette"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	// ErrNoSeries is returned when there is nothing to draw.
	ErrNoSeries = errors.New("chart: no data series")
	// ErrOptimumOutOfRange is returned when the optimum index does not name
	// a configuration.
	ErrOptimumOutOfRange = errors.New("chart: optimum index out of range")
)

const (
	panelWidth  = 5 * vg.Inch
	panelHeight = 5 * vg.Inch
	lineWidth   = 2
	ringRadius  = 9
)

// Panel describes one plot of a multi-panel figure.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

func newPlot(panel Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range panel.Series {
		line, points, err := plotter.NewLinePoints(s)
		if err != nil {
			return nil, fmt.Errorf("failed to build series %q: %w", s.Label, err)
		}
		c := palette.Resolve(s.Tag, i)
		line.Color = c
		line.Width = vg.Points(lineWidth)
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		if s.Label != "" {
			p.Legend.Add(s.Label, line, points)
		}
	}
	return p, nil
}

func render(w io.Writer, plots []*plot.Plot) error {
	img := vgimg.New(panelWidth*vg.Length(len(plots)), panelHeight)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for j, p := range plots {
		p.Draw(canvases[0][j])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// RenderPanels draws panels side by side and writes the PNG to w. Panels
// without series are rejected.
func RenderPanels(w io.Writer, panels ...Panel) error {
	if len(panels) == 0 {
		return ErrNoSeries
	}
	plots := make([]*plot.Plot, len(panels))
	for i, panel := range panels {
		if len(panel.Series) == 0 {
			return fmt.Errorf("%w: panel %q", ErrNoSeries, panel.Title)
		}
		p, err := newPlot(panel)
		if err != nil {
			return err
		}
		plots[i] = p
	}
	return render(w, plots)
}

// RenderComparison draws the lift, drag and L/D curves of the compared
// airfoils as three panels.
func RenderComparison(w io.Writer, lift, drag, ld []Series) error {
	return RenderPanels(w,
		Panel{Title: "Lift Coefficient", XLabel: "Angle of Attack (deg)", YLabel: "Cl", Series: lift},
		Panel{Title: "Drag Coefficient", XLabel: "Angle of Attack (deg)", YLabel: "Cd", Series: drag},
		Panel{Title: "Lift-to-Drag Ratio", XLabel: "Angle of Attack (deg)", YLabel: "L/D", Series: ld},
	)
}

func ringOptimum(p *plot.Plot, x, y float64, tag string, label string) error {
	ring, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
	if err != nil {
		return err
	}
	ring.GlyphStyle = draw.GlyphStyle{
		Color:  palette.Resolve(tag, 0),
		Radius: vg.Points(ringRadius),
		Shape:  draw.RingGlyph{},
	}
	p.Add(ring)

	if label == "" {
		return nil
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{label},
	})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: vg.Points(-20), Y: vg.Points(-28)}
	p.Add(labels)
	return nil
}

// RenderWingTradeoff draws L/D and relative weight against aspect ratio
// with the configuration at optimalIndex ringed on both panels.
func RenderWingTradeoff(w io.Writer, configs []wing.Configuration, optimalIndex int) error {
	if len(configs) == 0 {
		return ErrNoSeries
	}
	if optimalIndex < 0 || optimalIndex >= len(configs) {
		return fmt.Errorf("%w: %d of %d", ErrOptimumOutOfRange, optimalIndex, len(configs))
	}

	ld, weight := WingSeries(configs)
	ldPlot, err := newPlot(Panel{
		Title:  "Aerodynamic Efficiency vs Aspect Ratio",
		XLabel: "Aspect Ratio (AR)",
		YLabel: "Lift/Drag Ratio (L/D)",
		Series: []Series{ld},
	})
	if err != nil {
		return err
	}
	weightPlot, err := newPlot(Panel{
		Title:  "Structural Weight vs Aspect Ratio",
		XLabel: "Aspect Ratio (AR)",
		YLabel: "Relative Structural Weight",
		Series: []Series{weight},
	})
	if err != nil {
		return err
	}

	optimal := configs[optimalIndex]
	label := "Optimal AR=" + format.Angle(optimal.AspectRatio)
	if err := ringOptimum(ldPlot, optimal.AspectRatio, optimal.LiftToDrag, "red", label); err != nil {
		return fmt.Errorf("failed to mark optimum: %w", err)
	}
	if err := ringOptimum(weightPlot, optimal.AspectRatio, optimal.RelativeWeight, "blue", ""); err != nil {
		return fmt.Errorf("failed to mark optimum: %w", err)
	}

	return render(w, []*plot.Plot{ldPlot, weightPlot})
}
