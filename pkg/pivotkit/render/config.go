// Package render assigns chart kinds to relationships and rasterizes them
// through a primary (interactive-capable) backend with a static fallback.
package render

import (
	"fmt"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// SnapshotFunc rasterizes rendered chart content to a PNG file at path. The
// default implementation drives a headless browser and fails when none is
// available; tests inject fakes for both outcomes.
type SnapshotFunc func(content []byte, path string) error

// Config is the renderer's immutable configuration. It is passed in
// explicitly so the renderer carries no ambient global state.
type Config struct {
	// Width and Height are the rendered image dimensions in pixels.
	Width  int
	Height int
	// Snapshot overrides the primary rasterization step. Nil selects the
	// headless-browser default.
	Snapshot SnapshotFunc
}

// DefaultConfig returns the standard 600x400 configuration.
func DefaultConfig() Config {
	return Config{Width: 600, Height: 400}
}

// kindCycle is the fixed chart-kind rotation. A relationship at position i is
// assigned kindCycle[i mod 6], giving reproducible, evenly distributed variety.
var kindCycle = []models.ChartKind{
	models.ChartBar,
	models.ChartPie,
	models.ChartLine,
	models.ChartHeatmap,
	models.ChartScatter,
	models.ChartArea,
}

// KindFor returns the chart kind for the relationship at the given position
// among all selected relationships.
func KindFor(position int) models.ChartKind {
	return kindCycle[position%len(kindCycle)]
}

// titleSuffix names the kind in the chart title, e.g. " Bar Chart".
func titleSuffix(kind models.ChartKind) string {
	switch kind {
	case models.ChartBar:
		return " Bar Chart"
	case models.ChartPie:
		return " Pie Chart"
	case models.ChartLine:
		return " Line Chart"
	case models.ChartHeatmap:
		return " Heatmap"
	case models.ChartScatter:
		return " Scatter Chart"
	case models.ChartArea:
		return " Area Chart"
	default:
		return ""
	}
}

// RenderError reports a single backend failure for a single chart. It is
// recovered locally and never propagates out of the renderer.
type RenderError struct {
	Chart   string
	Backend models.Backend
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q via %s backend: %v", e.Chart, e.Backend, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
