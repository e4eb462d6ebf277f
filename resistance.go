package main

import (
	"math"
)

/*
Thermal resistance between the circulating fluid and the outer coupling
point of the heat exchanger, per unit of tube length, K/(W/m).

The resistance is the series sum of the convective film inside the pipe,
conduction through the pipe wall, and (for a grouted vertical borehole)
conduction through the grout annulus. The convective part depends on the
flow rate and the fluid state, so it is recalculated every time step.
*/

/*
Convective resistance of the fluid film inside one pipe.

	Args:
		theta_f: fluid temperature, degree C
		mDot: mass flow rate through one parallel unit, kg/s
		pipeInnerDia: pipe inner diameter, m
		props: fluid property evaluators

	Returns:
		convective resistance, K/(W/m)

	Notes:
		Dittus-Boelter with exponent 0.35 on Prandtl.
		Zero flow means stagnant fluid and no forced convection path;
		the resistance is taken as zero and the caller's zero-flow
		branch guarantees it is never multiplied by a heat rate.
*/
func calc_convective_resistance(theta_f float64, mDot float64, pipeInnerDia float64, props FluidProperties) float64 {
	if mDot == 0.0 {
		return 0.0
	}

	cpFluid := props.specific_heat(theta_f)
	kFluid := props.conductivity(theta_f)
	fluidDensity := props.density(theta_f)
	fluidViscosity := props.viscosity(theta_f)

	pipeInnerRad := pipeInnerDia / 2.0

	// Re = rho*V*D/mu
	reynoldsNum := fluidDensity * pipeInnerDia * (mDot / fluidDensity / (math.Pi * pipeInnerRad * pipeInnerRad)) / fluidViscosity
	prandtlNum := cpFluid * fluidViscosity / kFluid

	nusseltNum := 0.023 * math.Pow(reynoldsNum, 0.8) * math.Pow(prandtlNum, 0.35)
	hci := nusseltNum * kFluid / pipeInnerDia

	return 1.0 / (2.0 * math.Pi * pipeInnerDia * hci)
}

/*
Conduction resistance of the pipe wall.

	Args:
		pipeOuterRad: pipe outer radius, m
		pipeInnerRad: pipe inner radius, m
		kPipe: pipe thermal conductivity, W/m K

	Returns:
		conduction resistance, K/(W/m)
*/
func calc_pipe_resistance(pipeOuterRad float64, pipeInnerRad float64, kPipe float64) float64 {
	// the two U-tube legs conduct in parallel, hence the final /2
	return math.Log(pipeOuterRad/pipeInnerRad) / (2.0 * math.Pi * kPipe) / 2.0
}

/*
Grout resistance of a vertical borehole.

	Args:
		boreholeRadius: borehole radius, m
		pipeOutDia: pipe outer diameter, m
		uTubeDist: U-tube leg separation, m
		kGrout: grout thermal conductivity, W/m K

	Returns:
		grout resistance, K/(W/m)

	Notes:
		Piecewise curve fit on the shank spacing ratio; each regime
		carries its own pair of fit coefficients.
*/
func calc_grout_resistance(boreholeRadius float64, pipeOutDia float64, uTubeDist float64, kGrout float64) float64 {
	pipeOuterRad := pipeOutDia / 2.0

	maxDistance := 2.0*boreholeRadius - 2.0*pipeOutDia
	distanceRatio := uTubeDist / maxDistance

	var b0, b1 float64
	if distanceRatio >= 0.0 && distanceRatio <= 0.25 {
		b0 = 14.450872
		b1 = -0.8176
	} else if distanceRatio > 0.25 && distanceRatio < 0.5 {
		b0 = 20.100377
		b1 = -0.94467
	} else if distanceRatio >= 0.5 && distanceRatio <= 0.75 {
		b0 = 17.44268
		b1 = -0.605154
	} else {
		b0 = 21.90587
		b1 = -0.3796
	}

	return 1.0 / (kGrout * b0 * math.Pow(boreholeRadius/pipeOuterRad, b1))
}
