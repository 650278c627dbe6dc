package render

import (
	"go.uber.org/zap"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// Renderer turns pivot tables into ChartSpecs. Per chart it attempts the
// primary backend, falls back to the secondary, and records BackendNone when
// both fail; a failure never aborts other charts or the workbook.
type Renderer struct {
	cfg    Config
	logger *zap.Logger
}

// New returns a Renderer with the given configuration. A nil logger disables
// logging.
func New(cfg Config, logger *zap.Logger) *Renderer {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		if cfg.Width <= 0 {
			cfg.Width = def.Width
		}
		if cfg.Height <= 0 {
			cfg.Height = def.Height
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{cfg: cfg, logger: logger}
}

// Render produces the ChartSpec for the pivot at the given position among all
// selected relationships. The result is always a valid spec; Backend tells
// the caller which tier (if any) produced the image.
func (r *Renderer) Render(p *models.PivotTable, position int) models.ChartSpec {
	kind := KindFor(position)
	spec := models.ChartSpec{
		Title:   p.Title + titleSuffix(kind),
		Kind:    kind,
		Backend: models.BackendNone,
	}

	image, figure, err := r.renderPrimary(p, kind, spec.Title)
	if err == nil {
		spec.Backend = models.BackendPrimary
		spec.Image = image
		spec.Figure = figure
		return spec
	}
	r.logger.Warn("primary chart backend failed, falling back",
		zap.String("chart", spec.Title),
		zap.Error(&RenderError{Chart: spec.Title, Backend: models.BackendPrimary, Err: err}),
	)

	image, err = r.renderSecondary(p, kind, spec.Title)
	if err == nil {
		spec.Backend = models.BackendSecondary
		spec.Image = image
		return spec
	}
	r.logger.Warn("secondary chart backend failed, chart skipped",
		zap.String("chart", spec.Title),
		zap.Error(&RenderError{Chart: spec.Title, Backend: models.BackendSecondary, Err: err}),
	)
	return spec
}
