package stats

import (
	"errors"
	"math"
	"testing"
)

func TestChiSquareContingency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		observed [][]float64
		stat     float64
		p        float64
		dof      int
	}{
		{
			// 2x2 tables get the Yates continuity correction.
			name:     "2x2 with correction",
			observed: [][]float64{{10, 20}, {30, 40}},
			stat:     0.4464285714,
			p:        0.5040358665,
			dof:      1,
		},
		{
			name:     "2x3 without correction",
			observed: [][]float64{{10, 20, 30}, {20, 20, 20}},
			stat:     5.3333333333,
			p:        0.0694834512,
			dof:      2,
		},
		{
			name:     "independent table",
			observed: [][]float64{{10, 10}, {10, 10}},
			stat:     0,
			p:        1,
			dof:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ChiSquareContingency(tt.observed)
			if err != nil {
				t.Fatalf("ChiSquareContingency() error = %v", err)
			}
			if math.Abs(got.Statistic-tt.stat) > 1e-6 {
				t.Errorf("Statistic = %.10f, want %.10f", got.Statistic, tt.stat)
			}
			if math.Abs(got.PValue-tt.p) > 1e-6 {
				t.Errorf("PValue = %.10f, want %.10f", got.PValue, tt.p)
			}
			if got.DoF != tt.dof {
				t.Errorf("DoF = %d, want %d", got.DoF, tt.dof)
			}
		})
	}
}

func TestChiSquareContingencyErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		observed [][]float64
		wantErr  error
	}{
		{
			name:     "single row",
			observed: [][]float64{{10, 20}},
			wantErr:  ErrTableTooSmall,
		},
		{
			name:     "single column",
			observed: [][]float64{{10}, {20}},
			wantErr:  ErrTableTooSmall,
		},
		{
			name:     "zero column margin",
			observed: [][]float64{{10, 0}, {20, 0}},
			wantErr:  ErrDegenerateTable,
		},
		{
			name:     "zero row margin",
			observed: [][]float64{{0, 0}, {20, 30}},
			wantErr:  ErrDegenerateTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ChiSquareContingency(tt.observed)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ChiSquareContingency() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
