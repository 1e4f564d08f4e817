package lbo

import (
	"context"
	"sync"
)

// SensitivityAxis is one varied dimension of a sensitivity grid: a name
// for reporting, the values to sweep, and a mutator that applies one
// value onto a copy of the base input.
type SensitivityAxis struct {
	Name   string
	Values []float64
	Apply  func(in *AssumptionsInput, v float64)
}

// SensitivityCell is one grid cell's outcome.
type SensitivityCell struct {
	RowValue float64
	ColValue float64
	MOIC     *float64 // nil if indeterminate for this cell's assumptions
	IRR      *float64
	Err      error
}

// SensitivityGrid is the full row x column matrix produced by
// RunSensitivityGrid.
type SensitivityGrid struct {
	RowAxis string
	ColAxis string
	Cells   [][]SensitivityCell
}

// RunSensitivityGrid runs one full RunProjection per (row, col) pair,
// concurrently, and assembles the results into a matrix. Each cell is
// computed from an independent copy of base, so cells never share
// mutable state; a WaitGroup fan-out (one goroutine per cell) plus a mutex
// guarding only the shared cancellation flag is enough, no lock is needed around the matrix
// itself since every goroutine owns a disjoint cell. Cancelling ctx stops
// launching new cells; in-flight cells still finish. Grounded on the
// multi-track WaitGroup fan-out in pkg/core/fee/semantic_layer.go,
// generalized from a fixed track count to an arbitrary row x col grid.
func RunSensitivityGrid(ctx context.Context, base AssumptionsInput, rowAxis, colAxis SensitivityAxis) *SensitivityGrid {
	grid := &SensitivityGrid{
		RowAxis: rowAxis.Name,
		ColAxis: colAxis.Name,
		Cells:   make([][]SensitivityCell, len(rowAxis.Values)),
	}
	for r := range grid.Cells {
		grid.Cells[r] = make([]SensitivityCell, len(colAxis.Values))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	cancelled := false

	for r, rv := range rowAxis.Values {
		for c, cv := range colAxis.Values {
			mu.Lock()
			stop := cancelled
			select {
			case <-ctx.Done():
				cancelled = true
				stop = true
			default:
			}
			mu.Unlock()
			if stop {
				grid.Cells[r][c] = SensitivityCell{RowValue: rv, ColValue: cv, Err: ctx.Err()}
				continue
			}

			wg.Add(1)
			go func(r, c int, rv, cv float64) {
				defer wg.Done()
				grid.Cells[r][c] = runSensitivityCell(base, rowAxis, colAxis, rv, cv)
			}(r, c, rv, cv)
		}
	}

	wg.Wait()
	return grid
}

func runSensitivityCell(base AssumptionsInput, rowAxis, colAxis SensitivityAxis, rv, cv float64) SensitivityCell {
	in := base
	in.RevenueGrowthRate = append([]float64(nil), base.RevenueGrowthRate...)
	in.DebtInstruments = append([]DebtInstrumentInput(nil), base.DebtInstruments...)

	rowAxis.Apply(&in, rv)
	colAxis.Apply(&in, cv)

	a, err := NewAssumptions(in)
	if err != nil {
		return SensitivityCell{RowValue: rv, ColValue: cv, Err: err}
	}
	result, err := RunProjection(a)
	if err != nil {
		return SensitivityCell{RowValue: rv, ColValue: cv, Err: err}
	}
	return SensitivityCell{RowValue: rv, ColValue: cv, MOIC: result.Returns.MOIC, IRR: result.Returns.IRR}
}
