package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	chromedpsnap "github.com/go-echarts/snapshot-chromedp/render"
	"github.com/google/uuid"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// renderPrimary builds the interactive figure and rasterizes it to PNG. On
// success it also returns the structured figure description the caller can
// re-render interactively. The temporary image file is removed on every exit
// path.
func (r *Renderer) renderPrimary(p *models.PivotTable, kind models.ChartKind, title string) ([]byte, map[string]any, error) {
	content, err := r.primaryContent(p, kind, title)
	if err != nil {
		return nil, nil, err
	}

	snapshot := r.cfg.Snapshot
	if snapshot == nil {
		snapshot = chromedpsnap.MakeChartSnapshot
	}

	path := filepath.Join(os.TempDir(), "pivotkit-"+uuid.NewString()+".png")
	defer os.Remove(path)

	if err := snapshot(content, path); err != nil {
		return nil, nil, err
	}
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return image, r.figure(p, kind, title), nil
}

// primaryContent builds the renderable chart page for the headless browser.
func (r *Renderer) primaryContent(p *models.PivotTable, kind models.ChartKind, title string) ([]byte, error) {
	size := charts.WithInitializationOpts(opts.Initialization{
		Width:  fmt.Sprintf("%dpx", r.cfg.Width),
		Height: fmt.Sprintf("%dpx", r.cfg.Height),
	})
	titled := charts.WithTitleOpts(opts.Title{Title: title})
	labels, values := p.Series()

	switch kind {
	case models.ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(size, titled)
		data := make([]opts.BarData, len(values))
		for i, v := range values {
			data[i] = opts.BarData{Value: v}
		}
		bar.SetXAxis(labels).AddSeries(seriesName(p), data)
		return bar.RenderContent(), nil

	case models.ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(size, titled)
		data := make([]opts.PieData, len(values))
		for i, v := range values {
			data[i] = opts.PieData{Name: labels[i], Value: v}
		}
		pie.AddSeries(seriesName(p), data)
		return pie.RenderContent(), nil

	case models.ChartLine, models.ChartArea:
		line := charts.NewLine()
		line.SetGlobalOptions(size, titled)
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		if kind == models.ChartArea {
			line.SetXAxis(labels).AddSeries(seriesName(p), data,
				charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.4)}))
		} else {
			line.SetXAxis(labels).AddSeries(seriesName(p), data)
		}
		return line.RenderContent(), nil

	case models.ChartScatter:
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(size, titled)
		data := make([]opts.ScatterData, len(values))
		for i, v := range values {
			data[i] = opts.ScatterData{Value: v}
		}
		scatter.SetXAxis(labels).AddSeries(seriesName(p), data)
		return scatter.RenderContent(), nil

	case models.ChartHeatmap:
		hm := charts.NewHeatMap()
		hm.SetGlobalOptions(size, titled,
			charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: p.Headers}),
			charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: p.Index}),
			charts.WithVisualMapOpts(opts.VisualMap{Min: 0, Max: float32(maxCell(p))}),
		)
		var data []opts.HeatMapData
		for yi, row := range p.Matrix() {
			for xi, v := range row {
				data = append(data, opts.HeatMapData{Value: [3]any{xi, yi, v}})
			}
		}
		hm.AddSeries("Count", data)
		return hm.RenderContent(), nil

	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
}

// figure builds the structured, JSON-safe chart description retained for
// interactive re-rendering by the caller.
func (r *Renderer) figure(p *models.PivotTable, kind models.ChartKind, title string) map[string]any {
	fig := map[string]any{
		"kind":   string(kind),
		"title":  title,
		"width":  r.cfg.Width,
		"height": r.cfg.Height,
	}
	if kind == models.ChartHeatmap {
		fig["x_labels"] = p.Headers
		fig["y_labels"] = p.Index
		fig["matrix"] = p.Matrix()
		return fig
	}
	labels, values := p.Series()
	fig["labels"] = labels
	fig["values"] = values
	fig["series"] = seriesName(p)
	return fig
}

// seriesName is the header of the plotted value column.
func seriesName(p *models.PivotTable) string {
	if len(p.Headers) == 0 {
		return ""
	}
	return p.Headers[0]
}

// maxCell returns the largest cell value, used to scale heatmap color ranges.
func maxCell(p *models.PivotTable) int {
	max := 0
	for _, row := range p.Cells {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}
