package main

import (
	"math"
)

/*
Temperature dependent property evaluators for the circulating fluid.

The enclosing plant loop owns the working fluid, so the heat exchanger
only sees these four functions. Any glycol blend can be plugged in by
implementing this interface.
*/
type FluidProperties interface {
	// Density, kg/m3
	density(theta float64) float64
	// Specific heat, J/kg K
	specific_heat(theta float64) float64
	// Dynamic viscosity, Pa s
	viscosity(theta float64) float64
	// Thermal conductivity, W/m K
	conductivity(theta float64) float64
}

// Pure water, valid between 0 and 100 degree C.
type WaterProperties struct{}

func NewWaterProperties() *WaterProperties {
	return &WaterProperties{}
}

/*
Density of water.

	Args:
		theta: fluid temperature, degree C

	Returns:
		density, kg/m3

	Notes:
		Kell correlation truncated to the liquid range.
*/
func (w *WaterProperties) density(theta float64) float64 {
	return 1000.0 * (1.0 - (theta+288.9414)/(508929.2*(theta+68.12963))*math.Pow(theta-3.9863, 2.0))
}

/*
Specific heat of water.

	Args:
		theta: fluid temperature, degree C

	Returns:
		specific heat, J/kg K
*/
func (w *WaterProperties) specific_heat(theta float64) float64 {
	const a0 = 4217.4
	const a1 = -3.720283
	const a2 = 0.1412855
	const a3 = -2.654387e-3
	const a4 = 2.093236e-5

	return a0 + a1*theta + a2*theta*theta + a3*math.Pow(theta, 3.0) + a4*math.Pow(theta, 4.0)
}

/*
Dynamic viscosity of water.

	Args:
		theta: fluid temperature, degree C

	Returns:
		dynamic viscosity, Pa s

	Notes:
		Vogel type fit.
*/
func (w *WaterProperties) viscosity(theta float64) float64 {
	t := theta + 273.15

	return 2.414e-5 * math.Pow(10.0, 247.8/(t-140.0))
}

/*
Thermal conductivity of water.

	Args:
		theta: fluid temperature, degree C

	Returns:
		thermal conductivity, W/m K
*/
func (w *WaterProperties) conductivity(theta float64) float64 {
	return 0.5706 + 1.756e-3*theta - 6.46e-6*theta*theta
}
