package main

import (
	"math"

	"gonum.org/v1/gonum/integrate"
)

/*
Ring source model of a slinky heat exchanger field.

Every coil loop is treated as a ring source buried at the coil depth,
with a mirror ring reflected across the ground surface enforcing the
constant temperature boundary at grade. The g-function of the field is
the mean non-dimensional wall temperature response of all rings to a
unit pulse, computed by direct numerical quadrature over all ring
pairs.

Because of the reflective symmetry of the field only one quadrant of
source rings (one half for a single trench) has to be evaluated; the
responses of rings on a symmetry axis are scaled by 0.5, and by 0.25
when the ring sits at the crossing of both axes of an odd-count field.
*/
type RingSourceIntegrator struct {
	_numTrenches       int
	_numCoils          int
	_coilDiameter      float64 // m
	_coilPitch         float64 // m
	_trenchSpacing     float64 // m
	_coilDepth         float64 // m
	_pipeOutDia        float64 // m
	_diffusivityGround float64 // m2/s
	_verticalConfig    bool
	_maxSimYears       int

	// ring center coordinates
	_x0 []float64 // per coil, m
	_y0 []float64 // per trench, m
	_z0 float64   // m
}

// Simpson node counts for the double quadrature. A ring's response to
// itself needs the finer inner resolution.
const outerNodes = 33
const innerNodes = 561
const innerNodesSelf = 1089

// Log-time grid of the precomputed table
const tLgMin = -2.0
const tLgGrid = 0.25

func NewRingSourceIntegrator(
	numTrenches int,
	numCoils int,
	coilDiameter float64,
	coilPitch float64,
	trenchSpacing float64,
	coilDepth float64,
	pipeOutDia float64,
	diffusivityGround float64,
	verticalConfig bool,
	maxSimYears int,
) *RingSourceIntegrator {
	x0 := make([]float64, numCoils)
	for coil := 1; coil <= numCoils; coil++ {
		x0[coil-1] = coilPitch * float64(coil-1)
	}
	y0 := make([]float64, numTrenches)
	for trench := 1; trench <= numTrenches; trench++ {
		y0[trench-1] = trenchSpacing * float64(trench-1)
	}

	return &RingSourceIntegrator{
		_numTrenches:       numTrenches,
		_numCoils:          numCoils,
		_coilDiameter:      coilDiameter,
		_coilPitch:         coilPitch,
		_trenchSpacing:     trenchSpacing,
		_coilDepth:         coilDepth,
		_pipeOutDia:        pipeOutDia,
		_diffusivityGround: diffusivityGround,
		_verticalConfig:    verticalConfig,
		_maxSimYears:       maxSimYears,
		_x0:                x0,
		_y0:                y0,
		_z0:                coilDepth,
	}
}

/*
Compute the g-function table of the whole field.

	Returns:
		(1) ln(t/ts) of each pair with ts = 1 h, [nPairs]
		(2) g-function value of each pair, [nPairs]

	Notes:
		The grid is laid out in decadic log time and converted to the
		natural log axis the lookups use. The responses are cached per
		time value by the index difference pair (|m-m1|, |n-n1|), since
		the kernel depends only on the relative ring offset; that
		collapses the quadruple ring pair loop to one integration per
		distinct offset.
*/
func (r *RingSourceIntegrator) calc_g_functions() ([]float64, []float64) {
	tLgMax := math.Log10(float64(r._maxSimYears) * get_days_in_year() * hrsPerDay)
	nPairs := int((tLgMax-tLgMin)/tLgGrid) + 1

	lntts := make([]float64, nPairs)
	gfnc := make([]float64, nPairs)

	// number of source rings per trench and source trenches in the
	// symmetric quadrant
	numLC := (r._numCoils + 1) / 2
	numRC := (r._numTrenches + 1) / 2

	var fraction float64
	if r._numTrenches > 1 {
		fraction = 0.25
	} else {
		fraction = 0.5
	}

	valStored := make([][]float64, r._numTrenches+1)
	for i := range valStored {
		valStored[i] = make([]float64, r._numCoils+1)
	}

	for nt := 1; nt <= nPairs; nt++ {
		tLg := tLgMin + tLgGrid*float64(nt-1)
		t := math.Pow(10.0, tLg) * get_sec_in_hour()

		gFunc := 0.0

		for i := range valStored {
			for j := range valStored[i] {
				valStored[i][j] = -1.0
			}
		}

		for m1 := 1; m1 <= numRC; m1++ {
			for n1 := 1; n1 <= numLC; n1++ {
				for m := 1; m <= r._numTrenches; m++ {
					for n := 1; n <= r._numCoils; n++ {

						disRing := r.dist_to_center(m, n, m1, n1)

						mm1 := abs_int(m - m1)
						nn1 := abs_int(n - n1)

						var val float64
						if disRing <= 2.5+r._coilDiameter {
							// near field: full double quadrature
							if valStored[mm1][nn1] < 0.0 {
								innerN := innerNodes
								if m1 == m && n1 == n {
									innerN = innerNodesSelf
								}
								valStored[mm1][nn1] = r.double_integral(m, n, m1, n1, t, outerNodes, innerN)
							}
							val = valStored[mm1][nn1]
						} else if disRing > 10.0+r._coilDiameter {
							// far field: no contribution
							gFunc += 0.0
							continue
						} else {
							// mid field: closed form on the center distance
							if valStored[mm1][nn1] < 0.0 {
								valStored[mm1][nn1] = r.mid_field_response(m, n, m1, n1, t)
							}
							val = valStored[mm1][nn1]
						}

						gFunc += r.symmetry_weight(m1, n1, numRC, numLC) * val
					}
				}
			}
		}

		gfnc[nt-1] = gFunc * (r._coilDiameter / 2.0) / (4.0 * math.Pi * fraction * float64(r._numTrenches) * float64(r._numCoils))
		lntts[nt-1] = tLg * math.Ln10
	}

	return lntts, gfnc
}

/*
Weight of a source ring's response under quadrant symmetry: 0.25 on the
crossing of both odd-count midlines (multi-trench fields only), 0.5 on
a single midline, 1 elsewhere.
*/
func (r *RingSourceIntegrator) symmetry_weight(m1 int, n1 int, numRC int, numLC int) float64 {
	oddTrenches := r._numTrenches%2 != 0
	oddCoils := r._numCoils%2 != 0

	if oddTrenches && oddCoils && m1 == numRC && n1 == numLC && r._numTrenches > 1 {
		return 0.25
	} else if oddTrenches && m1 == numRC && r._numTrenches > 1 {
		return 0.5
	} else if oddCoils && n1 == numLC {
		return 0.5
	}
	return 1.0
}

/*
Temperature response of a point on ring (m, n) to a point source on
ring (m1, n1), with the mirror source above grade subtracted.

	Args:
		eta: angular parameter on the source ring, rad
		theta: angular parameter on the observation ring, rad
		t: elapsed time, s

	Returns:
		point to point response kernel value, 1/m
*/
func (r *RingSourceIntegrator) near_field_response(m int, n int, m1 int, n1 int, eta float64, theta float64, t float64) float64 {
	distance1 := r.distance(m, n, m1, n1, eta, theta)

	sqrtAlphaT := math.Sqrt(r._diffusivityGround * t)

	if !r._verticalConfig {
		sqrtDistDepth := math.Sqrt(distance1*distance1 + 4.0*r._coilDepth*r._coilDepth)
		errFunc1 := math.Erfc(0.5 * distance1 / sqrtAlphaT)
		errFunc2 := math.Erfc(0.5 * sqrtDistDepth / sqrtAlphaT)

		return errFunc1/distance1 - errFunc2/sqrtDistDepth
	}

	distance2 := r.distance_to_fict_ring(m, n, m1, n1, eta, theta)

	errFunc1 := math.Erfc(0.5 * distance1 / sqrtAlphaT)
	errFunc2 := math.Erfc(0.5 * distance2 / sqrtAlphaT)

	return errFunc1/distance1 - errFunc2/distance2
}

/*
Mid field approximation of the ring to ring response: the rings are far
enough apart that the center to center distance stands in for the full
quadrature, with the image term from the depth-reflected mirror source.
*/
func (r *RingSourceIntegrator) mid_field_response(m int, n int, m1 int, n1 int, t float64) float64 {
	sqrtAlphaT := math.Sqrt(r._diffusivityGround * t)

	distance := r.dist_to_center(m, n, m1, n1)
	sqrtDistDepth := math.Sqrt(distance*distance + 4.0*r._coilDepth*r._coilDepth)

	errFunc1 := math.Erfc(0.5 * distance / sqrtAlphaT)
	errFunc2 := math.Erfc(0.5 * sqrtDistDepth / sqrtAlphaT)

	return 4.0*math.Pi*math.Pi*errFunc1/distance - errFunc2/sqrtDistDepth
}

/*
Distance between a point on the observation ring (m, n) and a point on
the source ring (m1, n1), averaged over the inner and outer tube wall
of the source.
*/
func (r *RingSourceIntegrator) distance(m int, n int, m1 int, n1 int, eta float64, theta float64) float64 {
	pipeOuterRadius := r._pipeOutDia / 2.0

	x := r._x0[n-1] + math.Cos(theta)*(r._coilDiameter/2.0)
	y := r._y0[m-1] + math.Sin(theta)*(r._coilDiameter/2.0)

	xIn := r._x0[n1-1] + math.Cos(eta)*(r._coilDiameter/2.0-pipeOuterRadius)
	yIn := r._y0[m1-1] + math.Sin(eta)*(r._coilDiameter/2.0-pipeOuterRadius)

	xOut := r._x0[n1-1] + math.Cos(eta)*(r._coilDiameter/2.0+pipeOuterRadius)
	yOut := r._y0[m1-1] + math.Sin(eta)*(r._coilDiameter/2.0+pipeOuterRadius)

	if !r._verticalConfig {
		return 0.5*math.Sqrt(pow_2(x-xIn)+pow_2(y-yIn)) +
			0.5*math.Sqrt(pow_2(x-xOut)+pow_2(y-yOut))
	}

	z := r._z0 + math.Sin(theta)*(r._coilDiameter/2.0)

	zIn := r._z0 + math.Sin(eta)*(r._coilDiameter/2.0-pipeOuterRadius)
	zOut := r._z0 + math.Sin(eta)*(r._coilDiameter/2.0+pipeOuterRadius)

	return 0.5*math.Sqrt(pow_2(x-xIn)+pow_2(r._y0[m1-1]-r._y0[m-1])+pow_2(z-zIn)) +
		0.5*math.Sqrt(pow_2(x-xOut)+pow_2(r._y0[m1-1]-r._y0[m-1])+pow_2(z-zOut))
}

/*
Distance between a point on the observation ring (m, n) and a point on
the fictitious mirror ring of (m1, n1) reflected across grade; used for
upright coils where the mirror ring is a real ring shape rather than a
point image.
*/
func (r *RingSourceIntegrator) distance_to_fict_ring(m int, n int, m1 int, n1 int, eta float64, theta float64) float64 {
	pipeOuterRadius := r._pipeOutDia / 2.0

	x := r._x0[n-1] + math.Cos(theta)*(r._coilDiameter/2.0)
	z := r._z0 + math.Sin(theta)*(r._coilDiameter/2.0) + 2.0*r._coilDepth

	xIn := r._x0[n1-1] + math.Cos(eta)*(r._coilDiameter/2.0-pipeOuterRadius)
	zIn := r._z0 + math.Sin(eta)*(r._coilDiameter/2.0-pipeOuterRadius)

	xOut := r._x0[n1-1] + math.Cos(eta)*(r._coilDiameter/2.0+pipeOuterRadius)
	zOut := r._z0 + math.Sin(eta)*(r._coilDiameter/2.0+pipeOuterRadius)

	return 0.5*math.Sqrt(pow_2(x-xIn)+pow_2(r._y0[m1-1]-r._y0[m-1])+pow_2(z-zIn)) +
		0.5*math.Sqrt(pow_2(x-xOut)+pow_2(r._y0[m1-1]-r._y0[m-1])+pow_2(z-zOut))
}

// Center to center distance between rings (m, n) and (m1, n1), m
func (r *RingSourceIntegrator) dist_to_center(m int, n int, m1 int, n1 int) float64 {
	return math.Sqrt(pow_2(r._x0[n-1]-r._x0[n1-1]) + pow_2(r._y0[m-1]-r._y0[m1-1]))
}

/*
Inner integral: response of one observation point to the whole source
ring, Simpson quadrature over the source angular parameter.

	Args:
		t: elapsed time, s
		eta: angular parameter on the source ring, rad
		nodes: Simpson node count, odd
*/
func (r *RingSourceIntegrator) ring_integral(m int, n int, m1 int, n1 int, t float64, eta float64, nodes int) float64 {
	h := 2.0 * math.Pi / float64(nodes-1)

	thetas := make([]float64, nodes)
	f := make([]float64, nodes)
	for j := 0; j < nodes; j++ {
		theta := float64(j) * h
		thetas[j] = theta
		f[j] = r.near_field_response(m, n, m1, n1, eta, theta, t)
	}

	return integrate.Simpsons(thetas, f)
}

/*
Double integral: mean response of ring (m, n) to ring (m1, n1), Simpson
quadrature of the inner ring integral over the observation angular
parameter.
*/
func (r *RingSourceIntegrator) double_integral(m int, n int, m1 int, n1 int, t float64, outer int, inner int) float64 {
	h := 2.0 * math.Pi / float64(outer-1)

	etas := make([]float64, outer)
	g := make([]float64, outer)
	for i := 0; i < outer; i++ {
		eta := float64(i) * h
		etas[i] = eta
		g[i] = r.ring_integral(m, n, m1, n1, t, eta, inner)
	}

	return integrate.Simpsons(etas, g)
}

func pow_2(v float64) float64 {
	return v * v
}

func abs_int(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
