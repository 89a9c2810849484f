package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrDegenerateTable = errors.New("stats: contingency table has a zero margin")
	ErrTableTooSmall   = errors.New("stats: contingency table needs at least 2x2 cells")
)

// ChiSquareResult is the outcome of a chi-square test of independence.
type ChiSquareResult struct {
	Statistic float64 `json:"chi2"`
	PValue    float64 `json:"p_value"`
	DoF       int     `json:"degrees_of_freedom"`
}

// ChiSquareContingency runs a chi-square test of independence on an RxC
// table of observed counts. With one degree of freedom the Yates
// continuity correction is applied, matching the convention of common
// statistics packages.
func ChiSquareContingency(observed [][]float64) (ChiSquareResult, error) {
	rows := len(observed)
	if rows < 2 || len(observed[0]) < 2 {
		return ChiSquareResult{}, ErrTableTooSmall
	}
	cols := len(observed[0])

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	var total float64
	for i, row := range observed {
		if len(row) != cols {
			return ChiSquareResult{}, ErrTableTooSmall
		}
		for j, v := range row {
			rowSums[i] += v
			colSums[j] += v
			total += v
		}
	}
	for _, s := range rowSums {
		if s == 0 {
			return ChiSquareResult{}, ErrDegenerateTable
		}
	}
	for _, s := range colSums {
		if s == 0 {
			return ChiSquareResult{}, ErrDegenerateTable
		}
	}

	dof := (rows - 1) * (cols - 1)
	yates := dof == 1

	var stat float64
	for i := range observed {
		for j := range observed[i] {
			expected := rowSums[i] * colSums[j] / total
			diff := math.Abs(observed[i][j] - expected)
			if yates {
				diff = math.Max(0, diff-0.5)
			}
			stat += diff * diff / expected
		}
	}

	dist := distuv.ChiSquared{K: float64(dof)}
	return ChiSquareResult{
		Statistic: stat,
		PValue:    dist.Survival(stat),
		DoF:       dof,
	}, nil
}
