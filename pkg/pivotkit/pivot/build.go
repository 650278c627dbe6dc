package pivot

import (
	"sort"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// CountHeader is the single value-column header of a frequency table.
const CountHeader = "Count"

// Build computes the pivot table for one relationship over a cleaned dataset.
// Rows whose summarized cells are missing are skipped, so on an empty dataset
// the result is an empty (but valid) table.
func Build(ds *models.TabularDataset, rel Relationship) *models.PivotTable {
	if rel.Second == "" {
		return buildFrequency(ds, rel)
	}
	return buildCrossTab(ds, rel)
}

// buildCrossTab cross-tabulates two columns: the index is the distinct values
// of the first, the headers the distinct values of the second, each cell the
// co-occurrence count. Index and headers sort ascending; every cell is
// present, zero-filled.
func buildCrossTab(ds *models.TabularDataset, rel Relationship) *models.PivotTable {
	first, okFirst := ds.Column(rel.First)
	second, okSecond := ds.Column(rel.Second)

	table := &models.PivotTable{
		Title:       rel.Title(),
		IndexColumn: rel.First,
		Cells:       map[string]map[string]int{},
	}
	if !okFirst || !okSecond {
		return table
	}

	pairs := map[string]map[string]int{}
	indexSeen := map[string]bool{}
	headerSeen := map[string]bool{}
	for i := 0; i < ds.RowCount(); i++ {
		iv, hv := first.Values[i], second.Values[i]
		if isMissingValue(iv) || isMissingValue(hv) {
			continue
		}
		idx, hdr := models.Stringify(iv), models.Stringify(hv)
		if pairs[idx] == nil {
			pairs[idx] = map[string]int{}
		}
		pairs[idx][hdr]++
		indexSeen[idx] = true
		headerSeen[hdr] = true
	}

	table.Index = sortedKeys(indexSeen)
	table.Headers = sortedKeys(headerSeen)
	for _, idx := range table.Index {
		row := make(map[string]int, len(table.Headers))
		for _, hdr := range table.Headers {
			row[hdr] = pairs[idx][hdr]
		}
		table.Cells[idx] = row
	}
	return table
}

// buildFrequency counts occurrences of each distinct value of one column,
// ordered by descending count with ties in first-seen order.
func buildFrequency(ds *models.TabularDataset, rel Relationship) *models.PivotTable {
	table := &models.PivotTable{
		Title:       rel.Title(),
		IndexColumn: rel.First,
		Headers:     []string{CountHeader},
		Cells:       map[string]map[string]int{},
	}

	col, ok := ds.Column(rel.First)
	if !ok {
		return table
	}

	counts := map[string]int{}
	var order []string
	for _, v := range col.Values {
		if isMissingValue(v) {
			continue
		}
		s := models.Stringify(v)
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	table.Index = order
	for _, idx := range order {
		table.Cells[idx] = map[string]int{CountHeader: counts[idx]}
	}
	return table
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isMissingValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
