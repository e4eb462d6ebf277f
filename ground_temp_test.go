package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testDiffusivity = 6.0e-7 // m2/s, moist soil

func TestFarFieldGroundTemp_SurfaceMinimumAtPhaseShift(t *testing.T) {
	f := NewFarFieldGroundTemp(13.5, 10.0, 35.0)

	// at the surface on the phase shift day the wave is at its minimum
	assert.InDelta(t, 3.5, f.temperature(0.0, 35.0, testDiffusivity), 1e-9)

	// half a year later it peaks
	assert.InDelta(t, 23.5, f.temperature(0.0, 35.0+get_days_in_year()/2.0, testDiffusivity), 0.01)
}

func TestFarFieldGroundTemp_DampsWithDepth(t *testing.T) {
	f := NewFarFieldGroundTemp(13.5, 10.0, 35.0)

	surface := f.temperature(0.0, 35.0, testDiffusivity)
	shallow := f.temperature(1.0, 35.0, testDiffusivity)
	deep := f.temperature(50.0, 35.0, testDiffusivity)

	assert.Greater(t, shallow, surface, "the coldest day is milder below grade")
	assert.InDelta(t, 13.5, deep, 0.01, "far below grade only the annual average remains")
}

func TestFarFieldFromSurfaceTemps(t *testing.T) {
	// annual profile around 10 with the minimum in month 2
	temps := []float64{4.0, 2.0, 4.0, 8.0, 12.0, 16.0, 18.0, 16.0, 14.0, 12.0, 8.0, 6.0}

	f := make_far_field_from_surface_temps(temps)

	assert.InDelta(t, 10.0, f._aveGroundTemp, 1e-9)

	// mean absolute deviation of the profile
	assert.InDelta(t, 56.0/12.0, f._aveGroundTempAmplitude, 1e-9)

	// minimum month positions the phase shift
	assert.InDelta(t, 2.0*get_days_in_year()/12.0, f._phaseShiftDays, 1e-9)
}
