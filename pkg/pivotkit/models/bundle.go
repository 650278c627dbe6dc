package models

// PivotPayload is the serialized form of one PivotTable inside a ResultBundle.
type PivotPayload struct {
	Title         string           `json:"title"`
	IndexColumn   string           `json:"index_column"`
	ColumnHeaders []string         `json:"column_headers"`
	Data          []map[string]any `json:"data"`
}

// ChartPayload is the serialized chart metadata inside a ResultBundle.
type ChartPayload struct {
	Title   string         `json:"title"`
	Kind    ChartKind      `json:"kind"`
	Backend Backend        `json:"backend"`
	Figure  map[string]any `json:"figure,omitempty"`
}

// ResultBundle is the terminal, JSON-safe artifact of the pipeline. It is
// constructed once per processing request and never mutated afterwards; the
// caller owns persistence.
type ResultBundle struct {
	CleanedData        []map[string]any `json:"cleaned_data"`
	PivotTables        []PivotPayload   `json:"pivot_tables"`
	HasDashboard       bool             `json:"has_dashboard"`
	Sheets             []string         `json:"sheets"`
	FileContentBase64  string           `json:"file_content_base64"`
	FileName           string           `json:"file_name"`
	RequestedRelations int              `json:"requested_relations"`
	GeneratedRelations int              `json:"generated_relations"`
	Description        string           `json:"description,omitempty"`
	Charts             []ChartPayload   `json:"charts,omitempty"`
}
