package main

/*
Calendar position supplied by the enclosing simulation each call.

The heat exchanger does not own time; it only converts the clock into a
continuous elapsed-hours value and reacts to the warmup flag. Warmup
design days repeat the same calendar day, so the elapsed time can
advance and then restart; the solver's reset logic is driven by that.
*/
type SimulationClock struct {
	// day of the simulation period, 1-based
	_dayOfSim int
	// hour of the day, 1..24
	_hourOfDay int
	// zone time step index within the hour, 1-based
	_timeStep int
	// zone time step length, h
	_timeStepZone float64
	// system time elapsed within the zone time step, h
	_sysTimeElapsed float64
	// true while the environment is warming up
	_warmupFlag bool
}

func NewSimulationClock(timeStepZone float64) *SimulationClock {
	return &SimulationClock{
		_dayOfSim:       1,
		_hourOfDay:      1,
		_timeStep:       1,
		_timeStepZone:   timeStepZone,
		_sysTimeElapsed: 0.0,
		_warmupFlag:     false,
	}
}

// Continuous elapsed simulation time since environment start, h
func (c *SimulationClock) current_sim_time() float64 {
	return float64(c._dayOfSim-1)*hrsPerDay + float64(c._hourOfDay-1) + float64(c._timeStep-1)*c._timeStepZone + c._sysTimeElapsed
}

func (c *SimulationClock) day_of_sim() int {
	return c._dayOfSim
}

func (c *SimulationClock) warmup() bool {
	return c._warmupFlag
}

func (c *SimulationClock) set_warmup(flag bool) {
	c._warmupFlag = flag
}

// Advance by one zone time step.
func (c *SimulationClock) advance() {
	c._timeStep++
	stepsPerHour := int(1.0/c._timeStepZone + 0.5)
	if c._timeStep > stepsPerHour {
		c._timeStep = 1
		c._hourOfDay++
		if c._hourOfDay > hrsPerDay {
			c._hourOfDay = 1
			c._dayOfSim++
		}
	}
}

// Restart at day 1 hour 1, keeping the time step length.
func (c *SimulationClock) restart() {
	c._dayOfSim = 1
	c._hourOfDay = 1
	c._timeStep = 1
	c._sysTimeElapsed = 0.0
}
