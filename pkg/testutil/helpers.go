// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/airfoil-tradeoff/pkg/comparison"
	"github.com/iwvelando/airfoil-tradeoff/pkg/wing"
)

// FindRow finds a summary row by airfoil label.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []comparison.Row, label string) *comparison.Row {
	for i := range rows {
		if rows[i].Label == label {
			return &rows[i]
		}
	}
	return nil
}

// FindConfiguration finds the configuration at aspectRatio.
// Returns a pointer to the configuration if found, nil otherwise.
func FindConfiguration(configs []wing.Configuration, aspectRatio float64) *wing.Configuration {
	for i := range configs {
		if configs[i].AspectRatio == aspectRatio {
			return &configs[i]
		}
	}
	return nil
}
