package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

func sampleDataset() *models.TabularDataset {
	return &models.TabularDataset{Columns: []models.Column{
		{Name: "region", Kind: models.KindCategorical, Values: []any{"East"}},
		{Name: "order_date", Kind: models.KindDatetime, Values: []any{time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}},
	}}
}

func samplePivot() *models.PivotTable {
	return &models.PivotTable{
		Title:       "region Frequency",
		IndexColumn: "region",
		Index:       []string{"East"},
		Headers:     []string{"Count"},
		Cells:       map[string]map[string]int{"East": {"Count": 1}},
	}
}

func TestBuildBundle(t *testing.T) {
	workbook := []byte{0x50, 0x4b, 0x03, 0x04, 0xff, 0x00}
	charts := []models.ChartSpec{{
		Title:   "region Frequency Bar Chart",
		Kind:    models.ChartBar,
		Backend: models.BackendPrimary,
		Image:   []byte("png"),
		Figure:  map[string]any{"kind": "bar"},
	}}

	b := BuildBundle(sampleDataset(), []*models.PivotTable{samplePivot()}, charts,
		[]string{"CleanedData", "PivotTables", "Dashboard"}, workbook, BundleParams{
			FileName:           "out.xlsx",
			Description:        "quarterly sales",
			RequestedRelations: 3,
			DashboardRequested: true,
		})

	if !b.HasDashboard {
		t.Error("Expected has_dashboard true")
	}
	if b.RequestedRelations != 3 || b.GeneratedRelations != 1 {
		t.Errorf("Unexpected relation counts: requested=%d generated=%d", b.RequestedRelations, b.GeneratedRelations)
	}
	if b.FileName != "out.xlsx" {
		t.Errorf("Unexpected file name %q", b.FileName)
	}
	if len(b.CleanedData) != 1 {
		t.Fatalf("Expected 1 cleaned record, got %d", len(b.CleanedData))
	}
	if b.CleanedData[0]["order_date"] != "2024-03-01T12:00:00Z" {
		t.Errorf("Expected datetime sanitized to RFC 3339 text, got %v", b.CleanedData[0]["order_date"])
	}
	if len(b.PivotTables) != 1 {
		t.Fatalf("Expected 1 pivot payload, got %d", len(b.PivotTables))
	}
	if b.PivotTables[0].Data[0]["index"] != "East" {
		t.Errorf("Expected index key in pivot records, got %v", b.PivotTables[0].Data[0])
	}
	if len(b.Charts) != 1 || b.Charts[0].Backend != models.BackendPrimary {
		t.Errorf("Unexpected charts payload: %+v", b.Charts)
	}
}

// TestWorkbookRoundTrip checks the binary-to-text encoding is lossless.
func TestWorkbookRoundTrip(t *testing.T) {
	workbook := make([]byte, 512)
	for i := range workbook {
		workbook[i] = byte(i % 251)
	}

	b := BuildBundle(sampleDataset(), nil, nil, nil, workbook, BundleParams{})

	decoded, err := DecodeWorkbook(b)
	if err != nil {
		t.Fatalf("DecodeWorkbook failed: %v", err)
	}
	if !bytes.Equal(decoded, workbook) {
		t.Error("Expected byte-identical workbook after round trip")
	}
}

// TestHasDashboardWithoutImages pins the boundary: the flag reflects the
// request outcome, not rendering success, so it stays true when every chart
// failed as long as a relationship was selected.
func TestHasDashboardWithoutImages(t *testing.T) {
	charts := []models.ChartSpec{{
		Title:   "region Frequency Bar Chart",
		Kind:    models.ChartBar,
		Backend: models.BackendNone,
	}}

	b := BuildBundle(sampleDataset(), []*models.PivotTable{samplePivot()}, charts, nil, nil, BundleParams{
		DashboardRequested: true,
	})
	if !b.HasDashboard {
		t.Error("Expected has_dashboard true despite zero embedded images")
	}

	// Not requested, or no relationships: flag is false.
	b = BuildBundle(sampleDataset(), []*models.PivotTable{samplePivot()}, nil, nil, nil, BundleParams{})
	if b.HasDashboard {
		t.Error("Expected has_dashboard false when not requested")
	}
	b = BuildBundle(sampleDataset(), nil, nil, nil, nil, BundleParams{DashboardRequested: true})
	if b.HasDashboard {
		t.Error("Expected has_dashboard false with no relationships")
	}
}

func TestToJSONKeys(t *testing.T) {
	b := BuildBundle(sampleDataset(), []*models.PivotTable{samplePivot()}, nil, []string{"CleanedData"}, []byte("wb"), BundleParams{
		FileName:           "out.xlsx",
		RequestedRelations: 1,
	})

	data, err := ToJSON(b, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Bundle JSON does not parse: %v", err)
	}
	for _, key := range []string{
		"cleaned_data", "pivot_tables", "has_dashboard", "sheets",
		"file_content_base64", "file_name", "requested_relations", "generated_relations",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Missing bundle key %q", key)
		}
	}
}

func TestSanitizeNested(t *testing.T) {
	ts := time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)
	in := map[string]any{
		"when": ts,
		"list": []any{ts, "x", int64(3)},
		"deep": map[string]any{"also": ts},
	}

	out := Sanitize(in).(map[string]any)
	if out["when"] != "2023-07-04T00:00:00Z" {
		t.Errorf("Unexpected sanitized value %v", out["when"])
	}
	if out["list"].([]any)[0] != "2023-07-04T00:00:00Z" {
		t.Errorf("Sequence values not sanitized: %v", out["list"])
	}
	if out["deep"].(map[string]any)["also"] != "2023-07-04T00:00:00Z" {
		t.Errorf("Nested map values not sanitized: %v", out["deep"])
	}
}
