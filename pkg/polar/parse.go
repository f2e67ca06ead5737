package polar

import (
	"strconv"
	"strings"

	"github.com/iwvelando/airfoil-tradeoff/pkg/mathutil"
)

const separatorChars = "-=_~*+"

// ParseStats counts how the lines of a table were classified.
type ParseStats struct {
	Lines    int // total lines seen
	Skipped  int // blank, separator and header lines
	Rejected int // candidate lines that did not yield a sample
	Accepted int
}

// Parse turns the raw text of one coefficient table into a Dataset. Lines
// that cannot be interpreted are dropped; a table with no usable lines
// yields an empty Dataset.
func Parse(label, text, tag string) Dataset {
	ds, _ := ParseWithStats(label, text, tag)
	return ds
}

// ParseWithStats is Parse but also reports the line classification.
func ParseWithStats(label, text, tag string) (Dataset, ParseStats) {
	ds := Dataset{Label: label, Tag: tag, Points: []DataPoint{}}
	var stats ParseStats

	for _, line := range strings.Split(text, "\n") {
		stats.Lines++
		if !IsCandidate(line) {
			stats.Skipped++
			continue
		}
		point, ok := ParseLine(line)
		if !ok {
			stats.Rejected++
			continue
		}
		ds.Points = append(ds.Points, point)
		stats.Accepted++
	}

	return ds, stats
}

// IsCandidate reports whether line may hold a sample: it is not blank, not
// a separator rule and not a header row mentioning alpha.
func IsCandidate(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if isSeparator(trimmed) {
		return false
	}
	return !strings.Contains(strings.ToLower(trimmed), "alpha")
}

// ParseLine reads angle, Cl and Cd from the first three whitespace
// separated fields of line. Extra fields are ignored; NaN and infinite
// values reject the line.
func ParseLine(line string) (DataPoint, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return DataPoint{}, false
	}

	var values [3]float64
	for i := range values {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || !mathutil.IsFinite(v) {
			return DataPoint{}, false
		}
		values[i] = v
	}

	return DataPoint{Angle: values[0], Cl: values[1], Cd: values[2]}, true
}

// isSeparator matches rules made of one repeated character such as
// "-----" or "=====".
func isSeparator(trimmed string) bool {
	first := rune(trimmed[0])
	if !strings.ContainsRune(separatorChars, first) {
		return false
	}
	for _, r := range trimmed {
		if r != first {
			return false
		}
	}
	return true
}
