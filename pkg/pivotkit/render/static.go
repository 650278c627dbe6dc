package render

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// segmentPalette colors the per-header segments of the static heatmap
// stand-in.
var segmentPalette = []drawing.Color{
	drawing.ColorBlue,
	drawing.ColorRed,
	drawing.ColorGreen,
	drawing.Color{R: 255, G: 165, B: 0, A: 255},
	drawing.Color{R: 128, G: 0, B: 128, A: 255},
	drawing.Color{R: 0, G: 139, B: 139, A: 255},
}

// renderSecondary reproduces the chart statically from the same pivot data,
// with the same axis mapping and dimensions as the primary backend. It runs
// fully in-process with no external rendering surface.
func (r *Renderer) renderSecondary(p *models.PivotTable, kind models.ChartKind, title string) ([]byte, error) {
	labels, counts := p.Series()
	if len(labels) == 0 {
		return nil, fmt.Errorf("pivot %q has no rows to chart", p.Title)
	}

	var buf bytes.Buffer
	var err error
	switch kind {
	case models.ChartBar:
		graph := chart.BarChart{
			Title:  title,
			Width:  r.cfg.Width,
			Height: r.cfg.Height,
			Bars:   barValues(labels, counts),
		}
		err = graph.Render(chart.PNG, &buf)

	case models.ChartPie:
		graph := chart.PieChart{
			Title:  title,
			Width:  r.cfg.Width,
			Height: r.cfg.Height,
			Values: barValues(labels, counts),
		}
		err = graph.Render(chart.PNG, &buf)

	case models.ChartLine, models.ChartArea, models.ChartScatter:
		graph := chart.Chart{
			Title:  title,
			Width:  r.cfg.Width,
			Height: r.cfg.Height,
			XAxis:  chart.XAxis{Ticks: labelTicks(labels)},
			Series: []chart.Series{continuousSeries(p, kind, counts)},
		}
		err = graph.Render(chart.PNG, &buf)

	case models.ChartHeatmap:
		// go-chart has no heatmap type; a stacked bar carries the full
		// matrix with the same index/header labels.
		graph := chart.StackedBarChart{
			Title:  title,
			Width:  r.cfg.Width,
			Height: r.cfg.Height,
			Bars:   stackedBars(p),
		}
		err = graph.Render(chart.PNG, &buf)

	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}

	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func barValues(labels []string, counts []int) []chart.Value {
	values := make([]chart.Value, len(labels))
	for i := range labels {
		values[i] = chart.Value{Label: labels[i], Value: float64(counts[i])}
	}
	return values
}

func labelTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: l}
	}
	return ticks
}

func continuousSeries(p *models.PivotTable, kind models.ChartKind, counts []int) chart.Series {
	xs := make([]float64, len(counts))
	ys := make([]float64, len(counts))
	for i, v := range counts {
		xs[i] = float64(i)
		ys[i] = float64(v)
	}

	series := chart.ContinuousSeries{
		Name:    seriesName(p),
		XValues: xs,
		YValues: ys,
	}
	switch kind {
	case models.ChartArea:
		series.Style = chart.Style{
			StrokeColor: chart.ColorBlue,
			FillColor:   chart.ColorBlue.WithAlpha(64),
		}
	case models.ChartScatter:
		series.Style = chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    5,
			DotColor:    chart.ColorBlue,
		}
	}
	return series
}

func stackedBars(p *models.PivotTable) []chart.StackedBar {
	bars := make([]chart.StackedBar, len(p.Index))
	for i, idx := range p.Index {
		values := make([]chart.Value, len(p.Headers))
		for j, h := range p.Headers {
			values[j] = chart.Value{
				Label: h,
				Value: float64(p.Cells[idx][h]),
				Style: chart.Style{FillColor: segmentPalette[j%len(segmentPalette)]},
			}
		}
		bars[i] = chart.StackedBar{Name: idx, Values: values}
	}
	return bars
}
