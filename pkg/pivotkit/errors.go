package pivotkit

import (
	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/dataset"
	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/pivot"
)

// Fatal pipeline errors, surfaced verbatim to the caller. Per-chart rendering
// failures are not errors at this level: they degrade the affected chart to
// backend "none" and the pipeline continues.
var (
	// ErrNoInput indicates no source file was available.
	ErrNoInput = dataset.ErrNoInput
	// ErrUnsupportedFormat indicates the source file is not a supported
	// spreadsheet or delimited-text format.
	ErrUnsupportedFormat = dataset.ErrUnsupportedFormat
	// ErrNoUsableColumns indicates cleaning left no categorical or numeric
	// column to summarize.
	ErrNoUsableColumns = pivot.ErrNoUsableColumns
)
