package main

import (
	"log"
	"math"
)

/*
Shared runtime core of a ground heat exchanger.

The per-step calculation superposes the ground's g-function response
over the aggregated heat pulse history and solves a small implicit
energy balance for the new heat rate and outlet temperature. The
variant specific pieces (g-function source, local resistance, one time
g-function precomputation) are supplied as function fields by the
vertical and slinky constructors.
*/
type glheCore struct {
	_name string

	// total tube length of the field, m
	_totalTubeLength float64
	// ground thermal conductivity, W/m K
	_kGround float64
	// undisturbed ground temperature, degree C
	_tempGround float64
	// steady state time factor used to non-dimensionalize elapsed hours
	_timeSSFactor float64
	// maximum number of simulated years, y
	_maxSimYears int

	_props   FluidProperties
	_history *LoadHistoryAggregator

	// g-function value at ln(t/ts), including any variant correction
	_gFunc func(lntts float64) float64
	// local fluid-to-ground resistance at the current fluid state, K/(W/m)
	_hxResistance func(theta_f float64, massFlowRate float64) float64
	// one time g-function precomputation, nil when the table is input data
	_calcGFunctions func() error

	_gFunctionsDone bool

	// reset bookkeeping, per device
	_updateCurSimTime      bool
	_triggerDesignDayReset bool

	// per-step results
	_inletTemp    float64 // degree C
	_outletTemp   float64 // degree C
	_aveFluidTemp float64 // degree C
	_wallTemp     float64 // degree C
	_massFlowRate float64 // kg/s
	_qGLHE        float64 // W

	_numWarnings int
}

// Inlet fluid temperature of the last step, degree C
func (c *glheCore) inlet_temp() float64 {
	return c._inletTemp
}

// Outlet fluid temperature of the last step, degree C
func (c *glheCore) outlet_temp() float64 {
	return c._outletTemp
}

// Average fluid temperature of the last step, degree C
func (c *glheCore) ave_fluid_temp() float64 {
	return c._aveFluidTemp
}

// Average borehole or coil wall temperature of the last step, degree C
func (c *glheCore) wall_temp() float64 {
	return c._wallTemp
}

// Heat transfer rate of the last step, positive when the fluid gains
// heat from the ground, W
func (c *glheCore) heat_rate() float64 {
	return c._qGLHE
}

// Mass flow rate of the last step, kg/s
func (c *glheCore) mass_flow_rate() float64 {
	return c._massFlowRate
}

// Undisturbed ground temperature in use, degree C
func (c *glheCore) temp_ground() float64 {
	return c._tempGround
}

/*
Reset the heat pulse history at the start of a new environment.

Must be applied before the next step's history push, never between the
push and the solve.
*/
func (c *glheCore) begin_environment() error {
	if !c._gFunctionsDone {
		if c._calcGFunctions != nil {
			if err := c._calcGFunctions(); err != nil {
				return err
			}
		}
		c._gFunctionsDone = true
	}

	c._history.reset()
	c._updateCurSimTime = true
	c._triggerDesignDayReset = false

	return nil
}

/*
Simulate one time step of the heat exchanger.

	Args:
		clk: simulation clock of the enclosing loop
		inletTemp: inlet fluid temperature, degree C
		massFlowRate: mass flow rate through the device, kg/s

	Returns:
		error only from a failed one time g-function precomputation

	Notes:
		Calling again without advancing the clock recomputes the same
		result from unchanged history; the outer iteration of the
		enclosing fluid network relies on that.
*/
func (c *glheCore) calc_ground_heat_exchanger(clk *SimulationClock, inletTemp float64, massFlowRate float64) error {
	// the g-function precomputation must have completed before the
	// first step; the guard keeps it one time only
	if !c._gFunctionsDone {
		if c._calcGFunctions != nil {
			if err := c._calcGFunctions(); err != nil {
				return err
			}
		}
		c._gFunctionsDone = true
	}

	c._inletTemp = inletTemp
	c._massFlowRate = massFlowRate

	cpFluid := c._props.specific_heat(inletTemp)
	kGroundFactor := 2.0 * math.Pi * c._kGround

	// a repeated warmup design day restarts elapsed time from zero
	if c._triggerDesignDayReset && clk.warmup() {
		c._updateCurSimTime = true
	}
	if clk.day_of_sim() == 1 && c._updateCurSimTime {
		c._history.reset()
		c._updateCurSimTime = false
		c._triggerDesignDayReset = false
	}

	currentSimTime := clk.current_sim_time()

	if clk.day_of_sim() > 1 {
		c._updateCurSimTime = true
	}
	if !clk.warmup() {
		c._triggerDesignDayReset = true
	}

	// inactive: the very first instant, or elapsed time rounded back to
	// zero during warmup; pass the fluid straight through
	if currentSimTime <= 0.0 {
		c._history.reset_timestamps()
		c._outletTemp = inletTemp
		c._aveFluidTemp = inletTemp
		c._wallTemp = c._tempGround
		c._qGLHE = 0.0
		return nil
	}

	c._history.roll(currentSimTime)

	hxResistance := c._hxResistance(inletTemp, massFlowRate)

	n := c._history.step_count()

	var tmpQnSubHourly float64
	var fluidAveTemp float64
	var toutNew float64
	sumTotal := 0.0

	if n == 1 {
		// first step: no history yet, single pulse steady form
		if massFlowRate <= 0.0 {
			tmpQnSubHourly = 0.0
			fluidAveTemp = c._tempGround
			toutNew = inletTemp
		} else {
			xi := math.Log(currentSimTime / c._timeSSFactor)
			gFuncVal := c._gFunc(xi)

			cOne := c._totalTubeLength / (2.0 * massFlowRate * cpFluid)
			tmpQnSubHourly = (c._tempGround - inletTemp) / (gFuncVal/kGroundFactor + hxResistance + cOne)
			fluidAveTemp = c._tempGround - tmpQnSubHourly*hxResistance
			toutNew = c._tempGround - tmpQnSubHourly*(gFuncVal/kGroundFactor+hxResistance-cOne)
		}
	} else if currentSimTime < hrsPerMonth+agg+subAGG {
		// superposition over sub-hourly and hourly buckets only

		sumQnSubHourly := 0.0
		var indexN int
		if int(currentSimTime) < subAGG {
			indexN = int(currentSimTime) + 1
		} else {
			indexN = subAGG + 1
		}
		subHourlyLimit := n - c._history.last_hour_n(indexN)

		for i := 1; i <= subHourlyLimit; i++ {
			xi := math.Log((currentSimTime - c._history.prev_time_step(i+1)) / c._timeSSFactor)
			rqSubHr := c._gFunc(xi) / kGroundFactor
			if i == subHourlyLimit {
				// the oldest sub-hourly entry is referenced against the
				// head of the hourly bucket so the pulse energy crossing
				// the resolution boundary is neither lost nor doubled
				if int(currentSimTime) >= subAGG {
					sumQnSubHourly += (c._history.qn_sub_hr(i) - c._history.qn_hr(indexN)) * rqSubHr
				} else {
					sumQnSubHourly += c._history.qn_sub_hr(i) * rqSubHr
				}
				break
			}
			sumQnSubHourly += (c._history.qn_sub_hr(i) - c._history.qn_sub_hr(i+1)) * rqSubHr
		}

		sumQnHourly := 0.0
		hourlyLimit := int(currentSimTime)
		for i := subAGG + 1; i <= hourlyLimit; i++ {
			if i == hourlyLimit {
				xi := math.Log(currentSimTime / c._timeSSFactor)
				rqHour := c._gFunc(xi) / kGroundFactor
				sumQnHourly += c._history.qn_hr(i) * rqHour
				break
			}
			xi := math.Log((currentSimTime - float64(int(currentSimTime)) + float64(i)) / c._timeSSFactor)
			rqHour := c._gFunc(xi) / kGroundFactor
			sumQnHourly += (c._history.qn_hr(i) - c._history.qn_hr(i+1)) * rqHour
		}

		sumTotal = sumQnSubHourly + sumQnHourly

		tmpQnSubHourly, fluidAveTemp, toutNew = c.solve_outlet(currentSimTime, inletTemp, massFlowRate, cpFluid, kGroundFactor, hxResistance, sumTotal)
	} else {
		// monthly aggregation joins the superposition

		numOfMonths := int((currentSimTime + 1.0) / hrsPerMonth)
		var currentMonth int
		if currentSimTime < float64(numOfMonths)*hrsPerMonth+agg+subAGG {
			currentMonth = numOfMonths - 1
		} else {
			currentMonth = numOfMonths
		}

		sumQnMonthly := 0.0
		for i := 1; i <= currentMonth; i++ {
			if i == 1 {
				xi := math.Log(currentSimTime / c._timeSSFactor)
				rqMonth := c._gFunc(xi) / kGroundFactor
				sumQnMonthly += c._history.qn_monthly(1) * rqMonth
				continue
			}
			xi := math.Log((currentSimTime - float64(i-1)*hrsPerMonth) / c._timeSSFactor)
			rqMonth := c._gFunc(xi) / kGroundFactor
			sumQnMonthly += (c._history.qn_monthly(i) - c._history.qn_monthly(i-1)) * rqMonth
		}

		sumQnHourly := 0.0
		hourlyLimit := int(currentSimTime - float64(currentMonth)*hrsPerMonth)
		for i := subAGG + 1; i <= hourlyLimit; i++ {
			xi := math.Log((currentSimTime - float64(int(currentSimTime)) + float64(i)) / c._timeSSFactor)
			rqHour := c._gFunc(xi) / kGroundFactor
			if i == hourlyLimit {
				sumQnHourly += (c._history.qn_hr(i) - c._history.qn_monthly(currentMonth)) * rqHour
				break
			}
			sumQnHourly += (c._history.qn_hr(i) - c._history.qn_hr(i+1)) * rqHour
		}

		sumQnSubHourly := 0.0
		subHourlyLimit := n - c._history.last_hour_n(subAGG+1)
		for i := 1; i <= subHourlyLimit; i++ {
			xi := math.Log((currentSimTime - c._history.prev_time_step(i+1)) / c._timeSSFactor)
			rqSubHr := c._gFunc(xi) / kGroundFactor
			if i == subHourlyLimit {
				sumQnSubHourly += (c._history.qn_sub_hr(i) - c._history.qn_hr(subAGG+1)) * rqSubHr
				break
			}
			sumQnSubHourly += (c._history.qn_sub_hr(i) - c._history.qn_sub_hr(i+1)) * rqSubHr
		}

		sumTotal = sumQnMonthly + sumQnHourly + sumQnSubHourly

		tmpQnSubHourly, fluidAveTemp, toutNew = c.solve_outlet(currentSimTime, inletTemp, massFlowRate, cpFluid, kGroundFactor, hxResistance, sumTotal)
	}

	c._wallTemp = c._tempGround - sumTotal

	// the freshly solved pulse becomes history at the next distinct step
	c._history.set_last_pulse(tmpQnSubHourly)
	c._outletTemp = toutNew
	c._aveFluidTemp = fluidAveTemp
	c._qGLHE = tmpQnSubHourly * c._totalTubeLength

	c.check_excursion(clk)

	return nil
}

/*
Solve the two-equation energy balance for the current step.

	Args:
		currentSimTime: elapsed simulation time, h
		inletTemp: inlet fluid temperature, degree C
		massFlowRate: mass flow rate, kg/s
		cpFluid: fluid specific heat, J/kg K
		kGroundFactor: 2*pi*kGround, W/m K
		hxResistance: local fluid-to-ground resistance, K/(W/m)
		sumTotal: superposed temperature drop of all historical pulses, K

	Returns:
		(1) heat pulse of the current step, W/m
		(2) average fluid temperature, degree C
		(3) new outlet temperature, degree C

	Notes:
		The current step's own pulse is excluded from sumTotal's closed
		history and re-enters through C0 with the unknown heat rate. At
		zero flow the balance is singular and the solve is bypassed.
*/
func (c *glheCore) solve_outlet(currentSimTime float64, inletTemp float64, massFlowRate float64, cpFluid float64, kGroundFactor float64, hxResistance float64, sumTotal float64) (float64, float64, float64) {
	xi := math.Log((currentSimTime - c._history.prev_time_step(2)) / c._timeSSFactor)
	rqSubHr := c._gFunc(xi) / kGroundFactor

	if massFlowRate <= 0.0 {
		// Q(N)*RB = 0
		return 0.0, c._tempGround - sumTotal, inletTemp
	}

	c0 := rqSubHr
	c1 := c._tempGround - (sumTotal - c._history.qn_sub_hr(1)*rqSubHr)
	c2 := c._totalTubeLength / (2.0 * massFlowRate * cpFluid)
	c3 := massFlowRate * cpFluid / c._totalTubeLength

	tmpQnSubHourly := (c1 - inletTemp) / (hxResistance + c0 - c2 + 1.0/c3)
	fluidAveTemp := c1 - (c0+hxResistance)*tmpQnSubHourly
	toutNew := c1 + (c2-c0-hxResistance)*tmpQnSubHourly

	return tmpQnSubHourly, fluidAveTemp, toutNew
}

/*
Warn once per device when the inlet-outlet temperature difference
exceeds the sanity limit after warmup. The computed values are kept and
the simulation continues.
*/
func (c *glheCore) check_excursion(clk *SimulationClock) {
	deltaTemp := math.Abs(c._outletTemp - c._inletTemp)
	if deltaTemp > deltaTempLimit && c._numWarnings < 1 && !clk.warmup() {
		log.Printf("check design inputs & g-functions for consistency")
		log.Printf("for ground heat exchanger %s delta temp > %.0fC", c._name, deltaTempLimit)
		log.Printf("this can be encountered when the flow rate is significantly lower than the design value or changes rapidly")
		log.Printf("current flow rate=%.3f kg/s", c._massFlowRate)
		c._numWarnings++
	}
}
