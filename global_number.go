package main

// Number of hours in a day
const hrsPerDay = 24

// Number of hours in an equivalent month used by the load aggregation scheme
const hrsPerMonth = 730

// Max number of system time steps in an hour
const maxTSinHr = 60

// Width of the sub-hourly history window, h
const subAGG = 15

// Additional width of the hourly history window, h
const agg = 192

// Inlet-outlet temperature difference triggering a warning, K
const deltaTempLimit = 100.0

// Number of seconds in an hour, s
func get_sec_in_hour() float64 {
	return 3600.0
}

// Number of days in a year, d
func get_days_in_year() float64 {
	return 365.0
}

// Number of seconds in a day, s
func get_secs_in_day() float64 {
	return 86400.0
}
