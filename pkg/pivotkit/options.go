// Package pivotkit turns a raw tabular file into cleaned data, pivot-table
// summaries, rendered charts and a downloadable workbook, bundled into one
// JSON-safe result.
package pivotkit

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/render"
)

// DefaultOutputName is the workbook file name echoed in the bundle when the
// caller does not supply one.
const DefaultOutputName = "processed_file.xlsx"

// Options configures one processing request.
type Options struct {
	// RemoveFields is a comma-separated list of column names to drop during
	// cleaning. Names not present in the dataset are silently ignored.
	RemoveFields string
	// Relations is the requested relationship count, coerced to at least 1.
	Relations int
	// RequireDashboard controls whether charts are rendered and a dashboard
	// sheet is built. If nil, defaults to true.
	RequireDashboard *bool
	// Description is free-text request metadata, passed through to the bundle.
	Description string
	// OutputName is the workbook file name echoed in the bundle.
	OutputName string
	// Render configures the chart renderer.
	Render render.Config
	// Logger receives pipeline progress and per-chart failure logs. Nil
	// disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the standard processing options.
func DefaultOptions() Options {
	return Options{
		Relations:  3,
		OutputName: DefaultOutputName,
		Render:     render.DefaultConfig(),
	}
}

// ShouldRequireDashboard reports whether a dashboard was requested.
func (o Options) ShouldRequireDashboard() bool {
	if o.RequireDashboard != nil {
		return *o.RequireDashboard
	}
	return true
}

// normalized fills defaults for zero-valued fields.
func (o Options) normalized() Options {
	if o.Relations < 1 {
		o.Relations = 1
	}
	if o.OutputName == "" {
		o.OutputName = DefaultOutputName
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// removeList splits RemoveFields into trimmed column names.
func (o Options) removeList() []string {
	if strings.TrimSpace(o.RemoveFields) == "" {
		return nil
	}
	parts := strings.Split(o.RemoveFields, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
