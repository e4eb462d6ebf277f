package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIntegrator(numTrenches int, numCoils int, vertical bool) *RingSourceIntegrator {
	return NewRingSourceIntegrator(
		numTrenches,
		numCoils,
		0.8,    // coil diameter, m
		0.4,    // coil pitch, m
		2.0,    // trench spacing, m
		1.5,    // coil depth, m
		0.0267, // pipe outer diameter, m
		6.0e-7, // ground diffusivity, m2/s
		vertical,
		1,
	)
}

func TestRingSource_RingLayout(t *testing.T) {
	r := testIntegrator(2, 3, false)

	assert.InDelta(t, 0.0, r.dist_to_center(1, 1, 1, 1), 1e-12)
	assert.InDelta(t, 0.4, r.dist_to_center(1, 1, 1, 2), 1e-12)
	assert.InDelta(t, 0.8, r.dist_to_center(1, 1, 1, 3), 1e-12)
	assert.InDelta(t, 2.0, r.dist_to_center(1, 1, 2, 1), 1e-12)
	assert.InDelta(t, math.Sqrt(0.4*0.4+2.0*2.0), r.dist_to_center(1, 2, 2, 1), 1e-12)
}

func TestRingSource_SymmetryWeights(t *testing.T) {
	// odd x odd multi trench field: 0.25 at the double midline crossing,
	// 0.5 on a single midline, 1 elsewhere
	r := testIntegrator(3, 3, false)
	numRC := 2
	numLC := 2

	assert.Equal(t, 0.25, r.symmetry_weight(2, 2, numRC, numLC))
	assert.Equal(t, 0.5, r.symmetry_weight(2, 1, numRC, numLC))
	assert.Equal(t, 0.5, r.symmetry_weight(1, 2, numRC, numLC))
	assert.Equal(t, 1.0, r.symmetry_weight(1, 1, numRC, numLC))

	// a single trench has no trench midline, only the coil one
	r1 := testIntegrator(1, 3, false)
	assert.Equal(t, 0.5, r1.symmetry_weight(1, 2, 1, 2))
	assert.Equal(t, 1.0, r1.symmetry_weight(1, 1, 1, 2))
}

func TestRingSource_SelfDistanceStaysPositive(t *testing.T) {
	r := testIntegrator(1, 1, false)

	// the self response quadrature touches theta == eta, where the
	// tube wall averaging keeps the distance at the pipe radius
	d := r.distance(1, 1, 1, 1, 0.7, 0.7)
	assert.InDelta(t, 0.0267/2.0, d, 1e-12)
	assert.Greater(t, d, 0.0)
}

func TestRingSource_NearFieldKernelFinite(t *testing.T) {
	for _, vertical := range []bool{false, true} {
		r := testIntegrator(1, 2, vertical)
		tSec := 100.0 * get_sec_in_hour()

		for _, eta := range []float64{0.0, 0.7, math.Pi, 5.0} {
			for _, theta := range []float64{0.0, 0.7, math.Pi, 5.0} {
				v := r.near_field_response(1, 1, 1, 1, eta, theta, tSec)
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "vertical=%v eta=%f theta=%f", vertical, eta, theta)
			}
		}
	}
}

func TestRingSource_MidFieldDecaysWithDistance(t *testing.T) {
	// coil pitch 4 m puts neighbouring rings in the mid field band
	r := NewRingSourceIntegrator(1, 3, 0.8, 4.0, 2.0, 1.5, 0.0267, 6.0e-7, false, 1)
	tSec := 1000.0 * get_sec_in_hour()

	near := r.mid_field_response(1, 1, 1, 2, tSec)
	far := r.mid_field_response(1, 1, 1, 3, tSec)

	assert.Greater(t, near, 0.0)
	assert.Greater(t, near, far)
}

func TestRingSource_QuadrantSymmetryMatchesFullField(t *testing.T) {
	r := testIntegrator(3, 3, false)

	lntts, gfnc := r.calc_g_functions()
	require.NotEmpty(t, gfnc)

	// reference: every ring acts as a source with weight one and no
	// quadrant fraction; the reflective shortcut must reproduce it
	for i := range gfnc {
		tSec := math.Exp(lntts[i]) * get_sec_in_hour()

		type ringOffset struct{ dm, dn int }
		cache := map[ringOffset]float64{}

		sum := 0.0
		for m1 := 1; m1 <= r._numTrenches; m1++ {
			for n1 := 1; n1 <= r._numCoils; n1++ {
				for m := 1; m <= r._numTrenches; m++ {
					for n := 1; n <= r._numCoils; n++ {
						d := r.dist_to_center(m, n, m1, n1)
						if d > 10.0+r._coilDiameter {
							continue
						}
						key := ringOffset{abs_int(m - m1), abs_int(n - n1)}
						v, ok := cache[key]
						if !ok {
							if d <= 2.5+r._coilDiameter {
								innerN := innerNodes
								if m == m1 && n == n1 {
									innerN = innerNodesSelf
								}
								v = r.double_integral(m, n, m1, n1, tSec, outerNodes, innerN)
							} else {
								v = r.mid_field_response(m, n, m1, n1, tSec)
							}
							cache[key] = v
						}
						sum += v
					}
				}
			}
		}

		full := sum * (r._coilDiameter / 2.0) / (4.0 * math.Pi * float64(r._numTrenches) * float64(r._numCoils))
		assert.InEpsilon(t, full, gfnc[i], 1e-9, "time sample %d", i)
	}
}

func TestRingSource_GFunctionTableShape(t *testing.T) {
	r := testIntegrator(1, 1, false)

	lntts, gfnc := r.calc_g_functions()
	require.Equal(t, len(lntts), len(gfnc))
	require.GreaterOrEqual(t, len(lntts), 2)

	// decadic grid of 0.25 translated onto the natural log axis
	assert.InDelta(t, -2.0*math.Ln10, lntts[0], 1e-12)
	for i := 1; i < len(lntts); i++ {
		assert.InDelta(t, 0.25*math.Ln10, lntts[i]-lntts[i-1], 1e-9)
	}

	// a single ring's response grows monotonically with elapsed time and
	// stays finite
	for i, g := range gfnc {
		require.False(t, math.IsNaN(g) || math.IsInf(g, 0), "pair %d", i)
	}
	assert.Greater(t, gfnc[0], 0.0)
	for i := 1; i < len(gfnc); i++ {
		assert.Greater(t, gfnc[i], gfnc[i-1], "pair %d", i)
	}
}
