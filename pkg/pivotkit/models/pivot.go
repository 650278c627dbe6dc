package models

// PivotTable is a cross-tabulation (or single-column frequency count) derived
// from a cleaned dataset. It is the single canonical representation: both the
// rectangular sheet layout and the nested-record frontend form are derived
// views of this value, so the two can never diverge.
type PivotTable struct {
	// Title is the relationship title, e.g. "region vs category".
	Title string
	// IndexColumn is the name of the column supplying the index values.
	IndexColumn string
	// Index holds the ordered index values in string form.
	Index []string
	// Headers holds the ordered value-column headers. For a frequency table
	// this is the single literal header "Count".
	Headers []string
	// Cells maps index value to header to a non-negative count. Every
	// index/header combination is present (zero-filled, never sparse).
	Cells map[string]map[string]int
}

// Sum returns the total of all cell values. For a pivot built from n cleaned
// rows this equals n.
func (p *PivotTable) Sum() int {
	total := 0
	for _, row := range p.Cells {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Records returns the nested-record form: one record per index value, mapping
// each header to its count, with the index value stored under the key "index".
func (p *PivotTable) Records() []map[string]any {
	records := make([]map[string]any, 0, len(p.Index))
	for _, idx := range p.Index {
		rec := make(map[string]any, len(p.Headers)+1)
		rec["index"] = idx
		for _, h := range p.Headers {
			rec[h] = p.Cells[idx][h]
		}
		records = append(records, rec)
	}
	return records
}

// Rows returns the rectangular layout used by the workbook sheet: a header
// row (index column name followed by the value headers) and one data row per
// index value.
func (p *PivotTable) Rows() [][]any {
	rows := make([][]any, 0, len(p.Index)+1)
	header := make([]any, 0, len(p.Headers)+1)
	header = append(header, p.IndexColumn)
	for _, h := range p.Headers {
		header = append(header, h)
	}
	rows = append(rows, header)
	for _, idx := range p.Index {
		row := make([]any, 0, len(p.Headers)+1)
		row = append(row, idx)
		for _, h := range p.Headers {
			row = append(row, p.Cells[idx][h])
		}
		rows = append(rows, row)
	}
	return rows
}

// Series returns the index labels paired with the counts of the first value
// column. Charts other than heatmaps plot exactly this series.
func (p *PivotTable) Series() (labels []string, values []int) {
	if len(p.Headers) == 0 {
		return nil, nil
	}
	first := p.Headers[0]
	labels = make([]string, len(p.Index))
	values = make([]int, len(p.Index))
	for i, idx := range p.Index {
		labels[i] = idx
		values[i] = p.Cells[idx][first]
	}
	return labels, values
}

// Matrix returns the full count matrix, row-major in Index then Headers order.
// Heatmaps plot this with Index and Headers as the axis labels.
func (p *PivotTable) Matrix() [][]int {
	m := make([][]int, len(p.Index))
	for i, idx := range p.Index {
		row := make([]int, len(p.Headers))
		for j, h := range p.Headers {
			row[j] = p.Cells[idx][h]
		}
		m[i] = row
	}
	return m
}
