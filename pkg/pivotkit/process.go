package pivotkit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/dataset"
	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/output"
	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/pivot"
	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/render"
	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/workbook"
)

// Process runs the full pipeline for one source file: load, clean, discover
// relationships, build pivots, render charts (primary backend with static
// fallback, per-chart failure isolation), assemble the workbook, and
// serialize everything into a ResultBundle.
//
// The path may name a file or a directory holding uploaded files; see
// dataset.Load. Process is synchronous and owns no state across calls; the
// returned bundle is immutable and the caller owns its persistence.
func Process(path string, opts Options) (*models.ResultBundle, error) {
	opts = opts.normalized()
	logger := opts.Logger

	ds, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded dataset",
		zap.Int("rows", ds.RowCount()),
		zap.Int("columns", len(ds.Columns)),
	)

	policy := dataset.DefaultCleaningPolicy()
	policy.ColumnsToRemove = opts.removeList()
	cleaned := dataset.Clean(ds, policy, logger)

	relationships, err := pivot.Discover(cleaned, opts.Relations)
	if err != nil {
		return nil, err
	}

	pivots := make([]*models.PivotTable, len(relationships))
	for i, rel := range relationships {
		pivots[i] = pivot.Build(cleaned, rel)
	}
	logger.Info("built pivot tables",
		zap.Int("requested", opts.Relations),
		zap.Int("generated", len(pivots)),
	)

	withDashboard := opts.ShouldRequireDashboard()
	var charts []models.ChartSpec
	if withDashboard && len(pivots) > 0 {
		renderer := render.New(opts.Render, logger)
		charts = make([]models.ChartSpec, len(pivots))
		for i, p := range pivots {
			charts[i] = renderer.Render(p, i)
		}
	}

	wb, err := workbook.Assemble(cleaned, pivots, charts, withDashboard, logger)
	if err != nil {
		return nil, fmt.Errorf("assemble workbook: %w", err)
	}
	defer wb.Close()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	bundle := output.BuildBundle(cleaned, pivots, charts, wb.GetSheetList(), buf.Bytes(), output.BundleParams{
		FileName:           opts.OutputName,
		Description:        opts.Description,
		RequestedRelations: opts.Relations,
		DashboardRequested: withDashboard,
	})
	return bundle, nil
}
