// Package output serializes pipeline results into the JSON-safe ResultBundle.
package output

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// BundleParams carries the request metadata echoed back in the bundle.
type BundleParams struct {
	FileName           string
	Description        string
	RequestedRelations int
	DashboardRequested bool
}

// BuildBundle converts the pipeline's in-memory structures into the terminal
// ResultBundle. The workbook binary is base64-encoded so it can travel inside
// the same structured payload as the tabular data; all values are sanitized
// to JSON-safe forms.
func BuildBundle(ds *models.TabularDataset, pivots []*models.PivotTable, charts []models.ChartSpec, sheets []string, workbook []byte, params BundleParams) *models.ResultBundle {
	bundle := &models.ResultBundle{
		CleanedData:        sanitizeRecords(ds.Records()),
		PivotTables:        make([]models.PivotPayload, 0, len(pivots)),
		HasDashboard:       params.DashboardRequested && len(pivots) > 0,
		Sheets:             sheets,
		FileContentBase64:  base64.StdEncoding.EncodeToString(workbook),
		FileName:           params.FileName,
		RequestedRelations: params.RequestedRelations,
		GeneratedRelations: len(pivots),
		Description:        params.Description,
	}

	for _, p := range pivots {
		bundle.PivotTables = append(bundle.PivotTables, models.PivotPayload{
			Title:         p.Title,
			IndexColumn:   p.IndexColumn,
			ColumnHeaders: p.Headers,
			Data:          sanitizeRecords(p.Records()),
		})
	}

	if bundle.HasDashboard {
		bundle.Charts = make([]models.ChartPayload, 0, len(charts))
		for _, spec := range charts {
			bundle.Charts = append(bundle.Charts, models.ChartPayload{
				Title:   spec.Title,
				Kind:    spec.Kind,
				Backend: spec.Backend,
				Figure:  spec.Figure,
			})
		}
	}
	return bundle
}

// DecodeWorkbook restores the workbook binary from a bundle. Encoding and
// decoding are lossless: the bytes round-trip identically.
func DecodeWorkbook(b *models.ResultBundle) ([]byte, error) {
	return base64.StdEncoding.DecodeString(b.FileContentBase64)
}

// ToJSON serializes a bundle, optionally pretty-printed.
func ToJSON(b *models.ResultBundle, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(b, "", "  ")
	}
	return json.Marshal(b)
}

func sanitizeRecords(records []map[string]any) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		out[i] = sanitizeMap(rec)
	}
	return out
}

func sanitizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Sanitize(v)
	}
	return out
}

// Sanitize recursively converts values to JSON-safe forms: date/time values
// become their canonical RFC 3339 text, nested maps and slices are walked,
// everything else passes through.
func Sanitize(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case map[string]any:
		return sanitizeMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Sanitize(e)
		}
		return out
	default:
		return v
	}
}
