package main

import (
	"math"
)

/*
Undisturbed ground temperature model after Kusuda and Achenbach.

The surface temperature wave decays and lags with depth; the far field
temperature seen by a buried coil is therefore a damped, phase shifted
copy of the annual cycle around the long term average.
*/
type FarFieldGroundTemp struct {
	// Annual average ground temperature, degree C
	_aveGroundTemp float64
	// Amplitude of the annual ground temperature cycle, K
	_aveGroundTempAmplitude float64
	// Phase shift of the minimum ground temperature, d
	_phaseShiftDays float64
}

func NewFarFieldGroundTemp(aveGroundTemp float64, aveGroundTempAmplitude float64, phaseShiftDays float64) *FarFieldGroundTemp {
	return &FarFieldGroundTemp{
		_aveGroundTemp:          aveGroundTemp,
		_aveGroundTempAmplitude: aveGroundTempAmplitude,
		_phaseShiftDays:         phaseShiftDays,
	}
}

/*
Derive the far field parameters from twelve monthly surface ground
temperatures when they were not entered directly.

	Args:
		monthlySurfaceTemps: surface ground temperature of each month, degree C, [12]

	Returns:
		far field ground temperature model
*/
func make_far_field_from_surface_temps(monthlySurfaceTemps []float64) *FarFieldGroundTemp {
	const monthsInYear = 12
	avgDaysInMonth := get_days_in_year() / monthsInYear

	aveTemp := 0.0
	for _, t := range monthlySurfaceTemps {
		aveTemp += t
	}
	aveTemp /= monthsInYear

	amplitude := 0.0
	for _, t := range monthlySurfaceTemps {
		amplitude += math.Abs(t - aveTemp)
	}
	amplitude /= monthsInYear

	// month of the minimum surface temperature sets the phase shift
	monthOfMin := 0
	minTemp := math.Inf(1)
	for i, t := range monthlySurfaceTemps {
		if t <= minTemp {
			monthOfMin = i + 1
			minTemp = t
		}
	}

	return NewFarFieldGroundTemp(aveTemp, amplitude, float64(monthOfMin)*avgDaysInMonth)
}

/*
Ground temperature at a given depth and day of year.

	Args:
		z: depth, m
		dayOfYear: day of the simulated year, d
		diffusivityGround: thermal diffusivity of the ground, m2/s

	Returns:
		undisturbed ground temperature, degree C
*/
func (f *FarFieldGroundTemp) temperature(z float64, dayOfYear float64, diffusivityGround float64) float64 {
	secsInYear := get_secs_in_day() * get_days_in_year()

	term1 := -z * math.Sqrt(math.Pi/(secsInYear*diffusivityGround))
	term2 := (2.0 * math.Pi / secsInYear) * ((dayOfYear-f._phaseShiftDays)*get_secs_in_day() - (z/2.0)*math.Sqrt(secsInYear/(math.Pi*diffusivityGround)))

	return f._aveGroundTemp - f._aveGroundTempAmplitude*math.Exp(term1)*math.Cos(term2)
}
