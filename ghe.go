package main

import (
	"fmt"
	"log"
	"math"
)

/*
Closed loop ground heat exchanger, vertical borehole or horizontal
slinky variant. Configuration is immutable after setup; all mutable
state lives in the per-device history and the per-step results.
*/
type GroundHeatExchanger interface {
	// Reset per-environment state; dayOfYear positions the far field
	// ground temperature model for the slinky variant.
	begin_environment(dayOfYear int) error
	// Simulate one time step.
	calc_ground_heat_exchanger(clk *SimulationClock, inletTemp float64, massFlowRate float64) error

	inlet_temp() float64
	outlet_temp() float64
	ave_fluid_temp() float64
	wall_temp() float64
	heat_rate() float64
	mass_flow_rate() float64
	temp_ground() float64
}

// Configuration of a vertical borehole field.
type VerticalSpec struct {
	Name string `json:"name"`
	// design volumetric flow rate, m3/s
	DesignFlow float64 `json:"design_flow"`
	// number of boreholes
	NumBoreholes int `json:"num_boreholes"`
	// borehole length, m
	BoreholeLength float64 `json:"borehole_length"`
	// borehole radius, m
	BoreholeRadius float64 `json:"borehole_radius"`
	// ground thermal conductivity, W/m K
	KGround float64 `json:"k_ground"`
	// ground volumetric heat capacity, J/m3 K
	CpRhoGround float64 `json:"cp_rho_ground"`
	// undisturbed ground temperature, degree C
	TempGround float64 `json:"temp_ground"`
	// grout thermal conductivity, W/m K
	KGrout float64 `json:"k_grout"`
	// pipe thermal conductivity, W/m K
	KPipe float64 `json:"k_pipe"`
	// pipe outer diameter, m
	PipeOutDia float64 `json:"pipe_out_dia"`
	// U-tube leg separation, m
	UTubeDist float64 `json:"u_tube_dist"`
	// pipe wall thickness, m
	PipeThick float64 `json:"pipe_thick"`
	// maximum number of simulated years, y
	MaxSimYears int `json:"max_sim_years"`
	// reference borehole radius over length ratio of the g-function data
	GReferenceRatio float64 `json:"g_reference_ratio"`
	// g-function seed data
	LnTTs []float64 `json:"lntts"`
	GFunc []float64 `json:"g_func"`
}

// Configuration of a horizontal slinky (coil) field.
type SlinkySpec struct {
	Name string `json:"name"`
	// design volumetric flow rate, m3/s
	DesignFlow float64 `json:"design_flow"`
	// ground thermal conductivity, W/m K
	KGround float64 `json:"k_ground"`
	// ground density, kg/m3
	RhoGround float64 `json:"rho_ground"`
	// ground specific heat, J/kg K
	CpGround float64 `json:"cp_ground"`
	// pipe thermal conductivity, W/m K
	KPipe float64 `json:"k_pipe"`
	// pipe outer diameter, m
	PipeOutDia float64 `json:"pipe_out_dia"`
	// pipe wall thickness, m
	PipeThick float64 `json:"pipe_thick"`
	// true when the coils stand upright in the trench
	VerticalConfig bool `json:"vertical_config"`
	// coil (ring) diameter, m
	CoilDiameter float64 `json:"coil_diameter"`
	// distance between successive coil centers along the trench, m
	CoilPitch float64 `json:"coil_pitch"`
	// trench depth below grade, m
	TrenchDepth float64 `json:"trench_depth"`
	// trench length, m
	TrenchLength float64 `json:"trench_length"`
	// number of parallel trenches
	NumTrenches int `json:"num_trenches"`
	// distance between trenches, m
	TrenchSpacing float64 `json:"trench_spacing"`
	// maximum number of simulated years, y
	MaxSimYears int `json:"max_sim_years"`
	// far field parameters; all three nil means derive them from the
	// monthly surface ground temperatures instead
	AveGroundTemp          *float64 `json:"ave_ground_temp"`
	AveGroundTempAmplitude *float64 `json:"ave_ground_temp_amplitude"`
	PhaseShiftDays         *float64 `json:"phase_shift_days"`
	// surface ground temperature of each month, degree C, [12]
	MonthlySurfaceTemps []float64 `json:"monthly_surface_temps"`
}

// Vertical borehole field heat exchanger.
type GLHEVert struct {
	glheCore

	_numBoreholes    int
	_boreholeLength  float64 // m
	_boreholeRadius  float64 // m
	_gReferenceRatio float64
	_gTable          *GFunctionTable
}

// Horizontal slinky field heat exchanger.
type GLHESlinky struct {
	glheCore

	_numTrenches       int
	_numCoils          int
	_coilDepth         float64 // m
	_diffusivityGround float64 // m2/s
	_farField          *FarFieldGroundTemp
	_integrator        *RingSourceIntegrator
	_gTable            *GFunctionTable
}

/*
Build a vertical borehole heat exchanger from its configuration.

	Args:
		spec: device configuration
		props: fluid property evaluators
		runPeriodYears: length of the requested run period, y

	Returns:
		heat exchanger, or a configuration error that aborts setup for
		this device before any time step runs
*/
func NewGLHEVert(spec *VerticalSpec, props FluidProperties, runPeriodYears int) (*GLHEVert, error) {
	if spec.PipeThick >= spec.PipeOutDia/2.0 {
		return nil, fmt.Errorf("%s: pipe thickness %.3f m leaves inner radius <= 0 with outer diameter %.3f m", spec.Name, spec.PipeThick, spec.PipeOutDia)
	}
	if spec.NumBoreholes < 1 {
		return nil, fmt.Errorf("%s: at least one borehole required", spec.Name)
	}

	gTable, err := NewGFunctionTable(spec.LnTTs, spec.GFunc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}

	maxSimYears := spec.MaxSimYears
	if maxSimYears < runPeriodYears {
		log.Printf("%s: maximum years of simulation %d less than run period request, set to %d", spec.Name, maxSimYears, runPeriodYears)
		maxSimYears = runPeriodYears
	}

	diffusivityGround := spec.KGround / spec.CpRhoGround
	totalTubeLength := float64(spec.NumBoreholes) * spec.BoreholeLength

	// annual time constant for ground conduction
	timeSS := (spec.BoreholeLength * spec.BoreholeLength / (9.0 * diffusivityGround)) / get_sec_in_hour() / 8760.0
	timeSSFactor := timeSS * 8760.0

	g := &GLHEVert{
		glheCore: glheCore{
			_name:             spec.Name,
			_totalTubeLength:  totalTubeLength,
			_kGround:          spec.KGround,
			_tempGround:       spec.TempGround,
			_timeSSFactor:     timeSSFactor,
			_maxSimYears:      maxSimYears,
			_props:            props,
			_history:          NewLoadHistoryAggregator(maxSimYears),
			_updateCurSimTime: true,
			_gFunctionsDone:   true,
		},
		_numBoreholes:    spec.NumBoreholes,
		_boreholeLength:  spec.BoreholeLength,
		_boreholeRadius:  spec.BoreholeRadius,
		_gReferenceRatio: spec.GReferenceRatio,
		_gTable:          gTable,
	}

	pipeOuterRad := spec.PipeOutDia / 2.0
	pipeInnerRad := pipeOuterRad - spec.PipeThick
	rCond := calc_pipe_resistance(pipeOuterRad, pipeInnerRad, spec.KPipe)
	rGrout := calc_grout_resistance(spec.BoreholeRadius, spec.PipeOutDia, spec.UTubeDist, spec.KGrout)

	g._gFunc = func(lntts float64) float64 {
		gFuncVal := g._gTable.interp_g_func(lntts)

		// the tabulated g-function is referenced to a specific radius
		// over length ratio; correct when this field differs
		ratio := g._boreholeRadius / g._boreholeLength
		if ratio != g._gReferenceRatio {
			gFuncVal -= math.Log(g._boreholeRadius / (g._boreholeLength * g._gReferenceRatio))
		}

		return gFuncVal
	}
	g._hxResistance = func(theta_f float64, massFlowRate float64) float64 {
		bholeMdot := massFlowRate / float64(g._numBoreholes)
		rConv := calc_convective_resistance(theta_f, bholeMdot, 2.0*pipeInnerRad, props)
		return rCond + rConv + rGrout
	}

	return g, nil
}

func (g *GLHEVert) begin_environment(dayOfYear int) error {
	return g.glheCore.begin_environment()
}

/*
Build a slinky heat exchanger from its configuration.

	Args:
		spec: device configuration
		props: fluid property evaluators
		runPeriodYears: length of the requested run period, y

	Returns:
		heat exchanger, or a configuration error that aborts setup for
		this device before any time step runs

	Notes:
		The g-function table of a coil field is not input data; it is
		computed once from the ring source model before the first step.
*/
func NewGLHESlinky(spec *SlinkySpec, props FluidProperties, runPeriodYears int) (*GLHESlinky, error) {
	if spec.PipeThick >= spec.PipeOutDia/2.0 {
		return nil, fmt.Errorf("%s: pipe thickness %.3f m leaves inner radius <= 0 with outer diameter %.3f m", spec.Name, spec.PipeThick, spec.PipeOutDia)
	}
	if spec.NumTrenches < 1 {
		return nil, fmt.Errorf("%s: at least one trench required", spec.Name)
	}
	if spec.CoilPitch <= 0.0 {
		return nil, fmt.Errorf("%s: coil pitch must be positive", spec.Name)
	}

	// average coil depth
	var coilDepth float64
	if spec.VerticalConfig {
		if spec.TrenchDepth-spec.CoilDiameter < 0.0 {
			return nil, fmt.Errorf("%s: trench depth %.3f m puts part of the coil above ground", spec.Name, spec.TrenchDepth)
		}
		coilDepth = spec.TrenchDepth - spec.CoilDiameter/2.0
	} else {
		coilDepth = spec.TrenchDepth
	}

	var farField *FarFieldGroundTemp
	if spec.AveGroundTemp != nil && spec.AveGroundTempAmplitude != nil && spec.PhaseShiftDays != nil {
		farField = NewFarFieldGroundTemp(*spec.AveGroundTemp, *spec.AveGroundTempAmplitude, *spec.PhaseShiftDays)
	} else {
		if len(spec.MonthlySurfaceTemps) != 12 {
			return nil, fmt.Errorf("%s: far field parameters missing and no monthly surface ground temperatures supplied", spec.Name)
		}
		farField = make_far_field_from_surface_temps(spec.MonthlySurfaceTemps)
	}

	maxSimYears := spec.MaxSimYears
	if maxSimYears < runPeriodYears {
		log.Printf("%s: maximum years of simulation %d less than run period request, set to %d", spec.Name, maxSimYears, runPeriodYears)
		maxSimYears = runPeriodYears
	}

	cpRhoGround := spec.RhoGround * spec.CpGround
	diffusivityGround := spec.KGround / cpRhoGround

	numCoils := int(spec.TrenchLength / spec.CoilPitch)
	totalTubeLength := math.Pi * spec.CoilDiameter * spec.TrenchLength * float64(spec.NumTrenches) / spec.CoilPitch

	// the slinky g-function grid is already expressed in elapsed hours,
	// so the steady state time factor is one
	timeSSFactor := 1.0

	g := &GLHESlinky{
		glheCore: glheCore{
			_name:             spec.Name,
			_totalTubeLength:  totalTubeLength,
			_kGround:          spec.KGround,
			_timeSSFactor:     timeSSFactor,
			_maxSimYears:      maxSimYears,
			_props:            props,
			_history:          NewLoadHistoryAggregator(maxSimYears),
			_updateCurSimTime: true,
		},
		_numTrenches:       spec.NumTrenches,
		_numCoils:          numCoils,
		_coilDepth:         coilDepth,
		_diffusivityGround: diffusivityGround,
		_farField:          farField,
	}

	g._integrator = NewRingSourceIntegrator(
		spec.NumTrenches,
		numCoils,
		spec.CoilDiameter,
		spec.CoilPitch,
		spec.TrenchSpacing,
		coilDepth,
		spec.PipeOutDia,
		diffusivityGround,
		spec.VerticalConfig,
		maxSimYears,
	)

	g._calcGFunctions = func() error {
		lntts, gfnc := g._integrator.calc_g_functions()
		table, err := NewGFunctionTable(lntts, gfnc)
		if err != nil {
			return fmt.Errorf("%s: ring source g-functions: %w", g._name, err)
		}
		g._gTable = table
		return nil
	}
	g._gFunc = func(lntts float64) float64 {
		return g._gTable.interp_g_func(lntts)
	}

	pipeOuterRad := spec.PipeOutDia / 2.0
	pipeInnerRad := pipeOuterRad - spec.PipeThick
	rCond := calc_pipe_resistance(pipeOuterRad, pipeInnerRad, spec.KPipe)

	// no grout annulus around a buried coil
	g._hxResistance = func(theta_f float64, massFlowRate float64) float64 {
		singleSlinkyMassFlowRate := massFlowRate / float64(g._numTrenches)
		rConv := calc_convective_resistance(theta_f, singleSlinkyMassFlowRate, 2.0*pipeInnerRad, props)
		return rCond + rConv
	}

	return g, nil
}

/*
Reset the slinky for a new environment. The undisturbed ground
temperature seen by the coils follows the annual surface wave, so it is
re-evaluated at the starting day of the environment.
*/
func (g *GLHESlinky) begin_environment(dayOfYear int) error {
	g._tempGround = g._farField.temperature(g._coilDepth, float64(dayOfYear), g._diffusivityGround)
	return g.glheCore.begin_environment()
}
