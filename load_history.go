package main

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

/*
Bounded most-recent-first ring of float64 history values.

A push makes the new value entry 0 and silently discards the oldest
entry; entries that were never written read as zero, matching a history
that extends with zero pulses before the simulation start. The logical
head replaces the dense array shift of older implementations, so a push
is O(1) while the read pattern stays most-recent-first.
*/
type historyRing struct {
	_buf  []float64
	_head int
}

func new_history_ring(n int) *historyRing {
	return &historyRing{
		_buf:  make([]float64, n),
		_head: 0,
	}
}

// Capacity of the ring
func (r *historyRing) size() int {
	return len(r._buf)
}

// Push v as the most recent entry, discarding the oldest.
func (r *historyRing) push(v float64) {
	n := len(r._buf)
	r._head = (r._head - 1 + n) % n
	r._buf[r._head] = v
}

// Entry i, with i = 0 the most recent.
func (r *historyRing) at(i int) float64 {
	return r._buf[(r._head+i)%len(r._buf)]
}

// Zero all entries.
func (r *historyRing) reset() {
	for i := range r._buf {
		r._buf[i] = 0.0
	}
	r._head = 0
}

// Same as historyRing for integer step counters.
type stepRing struct {
	_buf  []int
	_head int
}

func new_step_ring(n int) *stepRing {
	return &stepRing{
		_buf:  make([]int, n),
		_head: 0,
	}
}

func (r *stepRing) push(v int) {
	n := len(r._buf)
	r._head = (r._head - 1 + n) % n
	r._buf[r._head] = v
}

func (r *stepRing) at(i int) int {
	return r._buf[(r._head+i)%len(r._buf)]
}

func (r *stepRing) reset() {
	for i := range r._buf {
		r._buf[i] = 0
	}
	r._head = 0
}

/*
Multi resolution heat pulse history of one ground heat exchanger.

Per-substep pulses are kept at full resolution for the most recent
subAGG hours, folded into hourly pulses for the following
hrsPerMonth+agg hours, and into monthly pulses beyond that. Sub-hourly
fidelity is only needed for recent history because the ground response
to a pulse flattens logarithmically with elapsed time, so the
superposition cost per step stays bounded no matter how long the
simulation runs.

Each exchanger owns exactly one aggregator; nothing here is shared
between devices.
*/
type LoadHistoryAggregator struct {
	// per-substep heat pulses, most-recent-first, W/m
	_qnSubHr *historyRing
	// hourly aggregated pulses, most-recent-first, W/m
	_qnHr *historyRing
	// monthly aggregated pulses, chronological (month 1 first), W/m
	_qnMonthlyAgg []float64
	// elapsed-hour stamps matching _qnSubHr pushes, most-recent-first, h
	_prevTimeSteps *historyRing
	// value of the step counter when each of the last subAGG+1 hours began
	_lastHourN *stepRing
	// count of distinct time steps seen
	_n int
	// step counter value at the previous call
	_prevN int
	// completed hour index at the last aggregation (floor of elapsed hours)
	_prevHour int
	// completed hours since environment start
	_hoursElapsed int
	// heat pulse solved at the previous step, pushed on the next distinct time, W/m
	_lastQnSubHr float64
}

/*
	Args:
		maxSimYears: maximum number of simulated years, y

	Returns:
		load history aggregator with all buckets zeroed
*/
func NewLoadHistoryAggregator(maxSimYears int) *LoadHistoryAggregator {
	subHrSize := (subAGG+1)*maxTSinHr + 1

	return &LoadHistoryAggregator{
		_qnSubHr:       new_history_ring(subHrSize),
		_qnHr:          new_history_ring(hrsPerMonth + agg + subAGG),
		_qnMonthlyAgg:  make([]float64, maxSimYears*12),
		_prevTimeSteps: new_history_ring(subHrSize),
		_lastHourN:     new_step_ring(subAGG + 1),
		_n:             0,
		_prevN:         0,
		_prevHour:      0,
		_hoursElapsed:  0,
		_lastQnSubHr:   0.0,
	}
}

// Clear the whole history at an environment start.
func (a *LoadHistoryAggregator) reset() {
	a._qnSubHr.reset()
	a._qnHr.reset()
	for i := range a._qnMonthlyAgg {
		a._qnMonthlyAgg[i] = 0.0
	}
	a._prevTimeSteps.reset()
	a._lastHourN.reset()
	a._n = 0
	a._prevN = 0
	a._prevHour = 0
	a._hoursElapsed = 0
	a._lastQnSubHr = 0.0
}

/*
Roll the history forward to the given elapsed time.

Pushes the previous step's realized pulse when the elapsed time value
has not been seen before, then folds completed hours and months into
the coarser buckets. Repeated calls at an unchanged elapsed time leave
the history untouched, which makes the enclosing solver's outer
iteration safe.

	Args:
		currentSimTime: elapsed simulation time, h
*/
func (a *LoadHistoryAggregator) roll(currentSimTime float64) {
	if currentSimTime <= 0.0 {
		return
	}

	// a new distinct time step: stamp it and advance the counter
	if a._prevTimeSteps.at(0) != currentSimTime {
		a._prevTimeSteps.push(currentSimTime)
		a._n++
	}

	// the pulse solved at the previous call becomes history
	if a._n != a._prevN {
		a._prevN = a._n
		a._qnSubHr.push(a._lastQnSubHr)
	}

	a.aggregate(currentSimTime)
}

/*
Fold sub-hourly pulses into the hourly bucket at each completed hour and
hourly pulses into the monthly bucket at each completed equivalent month.

Month boundaries are counted from an explicit completed-hours counter
rather than inferred from calendar arithmetic, so warmup restarts cannot
desynchronise the monthly bucket.
*/
func (a *LoadHistoryAggregator) aggregate(currentSimTime float64) {
	hour := int(currentSimTime)
	if hour == a._prevHour {
		return
	}

	// time-span-weighted average of the sub-hourly pulses of the hour
	// that just completed
	count := a._n - a._lastHourN.at(0)
	sumQnHr := 0.0
	for j := 0; j < count; j++ {
		sumQnHr += a._qnSubHr.at(j) * math.Abs(a._prevTimeSteps.at(j)-a._prevTimeSteps.at(j+1))
	}
	span := math.Abs(a._prevTimeSteps.at(0) - a._prevTimeSteps.at(count))
	if span > 0.0 {
		sumQnHr /= span
	}
	a._qnHr.push(sumQnHr)
	a._lastHourN.push(a._n)

	a._hoursElapsed++
	if a._hoursElapsed%hrsPerMonth == 0 {
		monthNum := a._hoursElapsed / hrsPerMonth
		if monthNum <= len(a._qnMonthlyAgg) {
			hrs := make([]float64, hrsPerMonth)
			for j := 0; j < hrsPerMonth; j++ {
				hrs[j] = a._qnHr.at(j)
			}
			a._qnMonthlyAgg[monthNum-1] = floats.Sum(hrs) / hrsPerMonth
		}
	}

	a._prevHour = hour
}

// Record the pulse solved for the step that just completed, W/m.
func (a *LoadHistoryAggregator) set_last_pulse(q float64) {
	a._lastQnSubHr = q
}

// Count of distinct time steps seen
func (a *LoadHistoryAggregator) step_count() int {
	return a._n
}

// Sub-hourly pulse i (1-based, i = 1 the most recent), W/m.
// The superposition loops index every bucket by age starting at 1, so
// all accessors here are 1-based.
func (a *LoadHistoryAggregator) qn_sub_hr(i int) float64 {
	return a._qnSubHr.at(i - 1)
}

// Hourly pulse i (1-based, i = 1 the most recent), W/m
func (a *LoadHistoryAggregator) qn_hr(i int) float64 {
	return a._qnHr.at(i - 1)
}

// Monthly pulse of month m (1-based, chronological), W/m
func (a *LoadHistoryAggregator) qn_monthly(m int) float64 {
	return a._qnMonthlyAgg[m-1]
}

// Elapsed-hour stamp i (1-based, i = 1 the most recent), h
func (a *LoadHistoryAggregator) prev_time_step(i int) float64 {
	return a._prevTimeSteps.at(i - 1)
}

// Step counter value recorded when the hour i-1 aggregation levels ago began
func (a *LoadHistoryAggregator) last_hour_n(i int) int {
	return a._lastHourN.at(i - 1)
}

// Clear only the time stamps, used when elapsed time rounds back to zero
// during warmup without a full environment reset.
func (a *LoadHistoryAggregator) reset_timestamps() {
	a._prevTimeSteps.reset()
}
