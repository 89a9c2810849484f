package stats

import "sort"

// Crosstab is a two-way frequency table with deterministic, sorted label
// order on both axes.
type Crosstab struct {
	Rows   []string
	Cols   []string
	Counts [][]int

	rowIndex map[string]int
	colIndex map[string]int
}

// NewCrosstab tabulates paired categorical observations. The slices must
// be the same length; extra elements of the longer one are ignored.
func NewCrosstab(rowValues, colValues []string) *Crosstab {
	n := len(rowValues)
	if len(colValues) < n {
		n = len(colValues)
	}

	ct := &Crosstab{
		Rows:     sortedUnique(rowValues[:n]),
		Cols:     sortedUnique(colValues[:n]),
		rowIndex: make(map[string]int),
		colIndex: make(map[string]int),
	}
	for i, label := range ct.Rows {
		ct.rowIndex[label] = i
	}
	for j, label := range ct.Cols {
		ct.colIndex[label] = j
	}

	ct.Counts = make([][]int, len(ct.Rows))
	for i := range ct.Counts {
		ct.Counts[i] = make([]int, len(ct.Cols))
	}
	for k := 0; k < n; k++ {
		ct.Counts[ct.rowIndex[rowValues[k]]][ct.colIndex[colValues[k]]]++
	}
	return ct
}

// Count returns the cell count for a label pair, zero when either label is
// absent.
func (ct *Crosstab) Count(row, col string) int {
	i, okRow := ct.rowIndex[row]
	j, okCol := ct.colIndex[col]
	if !okRow || !okCol {
		return 0
	}
	return ct.Counts[i][j]
}

// RowTotal sums one row; zero for an unknown label.
func (ct *Crosstab) RowTotal(row string) int {
	i, ok := ct.rowIndex[row]
	if !ok {
		return 0
	}
	var total int
	for _, v := range ct.Counts[i] {
		total += v
	}
	return total
}

// Total is the grand total of the table.
func (ct *Crosstab) Total() int {
	var total int
	for _, row := range ct.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// RowPercentages returns each cell as a percentage of its row total,
// keyed row label then column label.
func (ct *Crosstab) RowPercentages() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(ct.Rows))
	for i, row := range ct.Rows {
		var rowTotal int
		for _, v := range ct.Counts[i] {
			rowTotal += v
		}
		cells := make(map[string]float64, len(ct.Cols))
		for j, col := range ct.Cols {
			if rowTotal > 0 {
				cells[col] = float64(ct.Counts[i][j]) / float64(rowTotal) * 100
			}
		}
		out[row] = cells
	}
	return out
}

// CountMap returns the counts keyed row label then column label.
func (ct *Crosstab) CountMap() map[string]map[string]int {
	out := make(map[string]map[string]int, len(ct.Rows))
	for i, row := range ct.Rows {
		cells := make(map[string]int, len(ct.Cols))
		for j, col := range ct.Cols {
			cells[col] = ct.Counts[i][j]
		}
		out[row] = cells
	}
	return out
}

// Matrix returns the counts as float rows for the chi-square test.
func (ct *Crosstab) Matrix() [][]float64 {
	out := make([][]float64, len(ct.Counts))
	for i, row := range ct.Counts {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = float64(v)
		}
	}
	return out
}

func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
