// Package analysis runs airfoil comparisons and wing trade-off studies from
// configuration, reporting progress to a Reporter.
package analysis

import (
	"github.com/google/uuid"
	"github.com/iwvelando/airfoil-tradeoff/internal/config"
	"github.com/iwvelando/airfoil-tradeoff/internal/source"
	"github.com/iwvelando/airfoil-tradeoff/pkg/adapters"
	"github.com/iwvelando/airfoil-tradeoff/pkg/aero"
	"github.com/iwvelando/airfoil-tradeoff/pkg/comparison"
	"github.com/iwvelando/airfoil-tradeoff/pkg/polar"
	"go.uber.org/zap"
)

// Entry is one parsed airfoil of a comparison.
type Entry struct {
	Dataset polar.Dataset
	Metrics aero.Metrics
	Path    string
	Stats   polar.ParseStats
}

// MissingSource records an airfoil whose table could not be read.
type MissingSource struct {
	Label string
	Path  string
	Err   error
}

// Comparison holds the parsed airfoils of a run keyed by label in
// configuration order.
type Comparison struct {
	RunID   string
	Entries []Entry
	Missing []MissingSource
	Summary comparison.Summary
	index   map[string]int
}

// Lookup returns the entry for label. When labels repeat the last one wins.
func (c *Comparison) Lookup(label string) (Entry, bool) {
	i, ok := c.index[label]
	if !ok {
		return Entry{}, false
	}
	return c.Entries[i], true
}

// Labels returns the entry labels in order.
func (c *Comparison) Labels() []string {
	labels := make([]string, len(c.Entries))
	for i, entry := range c.Entries {
		labels[i] = entry.Dataset.Label
	}
	return labels
}

// Datasets returns the parsed datasets that hold at least one point.
func (c *Comparison) Datasets() []polar.Dataset {
	var out []polar.Dataset
	for _, entry := range c.Entries {
		if !entry.Dataset.Empty() {
			out = append(out, entry.Dataset)
		}
	}
	return out
}

// NewRunID returns a fresh identifier for an analysis run.
func NewRunID() string {
	return uuid.NewString()
}

// Compare reads, parses and measures every airfoil, then builds the
// summary. Unreadable tables are recorded in Missing and do not stop the run.
func Compare(logger *zap.Logger, src source.Source, airfoils []config.Airfoil, reporter Reporter) *Comparison {
	return compare(logger, NewRunID(), src, airfoils, reporter)
}

func compare(logger *zap.Logger, runID string, src source.Source, airfoils []config.Airfoil, reporter Reporter) *Comparison {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	result := &Comparison{
		RunID: runID,
		index: make(map[string]int, len(airfoils)),
	}

	reads := source.LoadAll(src, adapters.SourcePaths(airfoils))
	for i, airfoil := range airfoils {
		read := reads[i]
		if read.Err != nil {
			result.Missing = append(result.Missing, MissingSource{Label: airfoil.Label, Path: airfoil.File, Err: read.Err})
			reporter.SourceMissing(airfoil.Label, airfoil.File, read.Err)
			continue
		}

		ds, stats := polar.ParseWithStats(airfoil.Label, read.Text, airfoil.Color)
		logger.Debug("classified polar table lines",
			zap.String("op", "analysis.Compare"),
			zap.String("runId", runID),
			zap.String("airfoil", airfoil.Label),
			zap.Int("lines", stats.Lines),
			zap.Int("skipped", stats.Skipped),
			zap.Int("rejected", stats.Rejected),
			zap.Int("accepted", stats.Accepted),
		)

		metrics := aero.Compute(ds, comparison.ReferenceAngles()...)
		result.index[airfoil.Label] = len(result.Entries)
		result.Entries = append(result.Entries, Entry{Dataset: ds, Metrics: metrics, Path: airfoil.File, Stats: stats})

		if ds.Empty() {
			reporter.DatasetEmpty(airfoil.Label, airfoil.File)
			continue
		}
		reporter.DatasetParsed(airfoil.Label, airfoil.File, ds.Len())
		for _, angle := range comparison.ReferenceAngles() {
			if cl, ok := metrics.Cl(angle); ok {
				reporter.ClAtAngle(airfoil.Label, angle, cl)
			}
		}
		if metrics.Best != nil {
			reporter.BestLD(airfoil.Label, *metrics.Best)
		}
	}

	entries := make([]comparison.Entry, len(result.Entries))
	for i, entry := range result.Entries {
		entries[i] = comparison.Entry{Dataset: entry.Dataset, Metrics: entry.Metrics}
	}
	result.Summary = comparison.Build(entries)

	return result
}
