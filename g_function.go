package main

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
Non-dimensional temperature response table of a borehole or coil field.

Each entry maps the natural log of elapsed time over the steady state
time of the field to the g-function value. The axis is strictly
increasing and the table size is fixed at setup.
*/
type GFunctionTable struct {
	_lntts *mat.VecDense // ln(t/ts), [nPairs]
	_gfnc  *mat.VecDense // g-function value, [nPairs]
}

/*
	Args:
		lntts: ln(t/ts) of each pair, strictly increasing, [nPairs]
		gfnc: g-function value of each pair, [nPairs]

	Returns:
		g-function table

	Notes:
		At least two pairs are required because lookups outside the
		tabulated range extrapolate from the two boundary pairs.
*/
func NewGFunctionTable(lntts []float64, gfnc []float64) (*GFunctionTable, error) {
	if len(lntts) != len(gfnc) {
		return nil, fmt.Errorf("g-function table: %d ln(t/ts) values but %d g values", len(lntts), len(gfnc))
	}
	if len(lntts) < 2 {
		return nil, fmt.Errorf("g-function table: at least 2 pairs required, got %d", len(lntts))
	}
	for i := 1; i < len(lntts); i++ {
		if lntts[i] <= lntts[i-1] {
			return nil, fmt.Errorf("g-function table: ln(t/ts) axis not strictly increasing at pair %d", i+1)
		}
	}

	l := make([]float64, len(lntts))
	g := make([]float64, len(gfnc))
	copy(l, lntts)
	copy(g, gfnc)

	return &GFunctionTable{
		_lntts: mat.NewVecDense(len(l), l),
		_gfnc:  mat.NewVecDense(len(g), g),
	}, nil
}

// Number of tabulated pairs
func (t *GFunctionTable) n_pairs() int {
	return t._lntts.Len()
}

/*
Interpolate or extrapolate the g-function value for a known ln(t/ts).

	Args:
		lnttsVal: ln(t/ts)

	Returns:
		g-function value

	Notes:
		Values outside the tabulated range are extrapolated linearly
		from the two pairs adjacent to the nearer boundary, not clamped.
*/
func (t *GFunctionTable) interp_g_func(lnttsVal float64) float64 {
	lntts := t._lntts
	gfnc := t._gfnc
	nPairs := lntts.Len()

	// below the first pair: extrapolate from the first two pairs
	if lnttsVal <= lntts.AtVec(0) {
		return (lnttsVal-lntts.AtVec(0))/(lntts.AtVec(1)-lntts.AtVec(0))*(gfnc.AtVec(1)-gfnc.AtVec(0)) + gfnc.AtVec(0)
	}

	// above the last pair: extrapolate from the last two pairs
	if lnttsVal > lntts.AtVec(nPairs-1) {
		return (lnttsVal-lntts.AtVec(nPairs-1))/(lntts.AtVec(nPairs-2)-lntts.AtVec(nPairs-1))*(gfnc.AtVec(nPairs-2)-gfnc.AtVec(nPairs-1)) + gfnc.AtVec(nPairs-1)
	}

	// bounded binary search for an exact hit or the bracketing pair
	low := 0
	high := nPairs - 1
	for low <= high {
		mid := (low + high) / 2
		if lntts.AtVec(mid) < lnttsVal {
			low = mid + 1
		} else if lntts.AtVec(mid) > lnttsVal {
			high = mid - 1
		} else {
			return gfnc.AtVec(mid)
		}
	}

	// low now indexes the first pair above lnttsVal
	i := low

	return (lnttsVal-lntts.AtVec(i))/(lntts.AtVec(i-1)-lntts.AtVec(i))*(gfnc.AtVec(i-1)-gfnc.AtVec(i)) + gfnc.AtVec(i)
}
