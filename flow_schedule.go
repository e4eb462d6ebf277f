package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

/*
Time series of the conditions the plant loop imposes on the exchanger:
inlet temperature and mass flow rate per hour of the year.

The exchanger itself is driven one step at a time; this schedule is the
stand-in for a full plant loop when the module runs from the command
line.
*/
type FlowSchedule struct {
	// inlet fluid temperature per hour, degree C, [8760]
	_theta_in_ns []float64
	// fluid mass flow rate per hour, kg/s, [8760]
	_m_dot_ns []float64
}

type FlowScheduleRow struct {
	InletTemperature float64 `csv:"inlet_temperature"`
	MassFlowRate     float64 `csv:"mass_flow_rate"`
}

/*
Load a flow schedule from a CSV file with 8760 hourly rows.

	Args:
		file_path: path of the schedule CSV file

	Returns:
		(1) FlowSchedule
		(2) error when the file is missing or malformed
*/
func NewFlowSchedule(file_path string) (*FlowSchedule, error) {
	if _, err := os.Stat(file_path); os.IsNotExist(err) {
		return nil, fmt.Errorf("flow schedule file %s does not exist", file_path)
	}

	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var pp []*FlowScheduleRow
	if err := gocsv.UnmarshalFile(file, &pp); err != nil {
		return nil, err
	}

	if len(pp) != int(get_days_in_year())*hrsPerDay {
		return nil, fmt.Errorf("flow schedule should have %d rows, got %d", int(get_days_in_year())*hrsPerDay, len(pp))
	}

	theta_in_ns := make([]float64, len(pp))
	m_dot_ns := make([]float64, len(pp))
	for i, row := range pp {
		if row.MassFlowRate < 0.0 {
			return nil, fmt.Errorf("flow schedule row %d has a negative mass flow rate", i+1)
		}
		theta_in_ns[i] = row.InletTemperature
		m_dot_ns[i] = row.MassFlowRate
	}

	return &FlowSchedule{
		_theta_in_ns: theta_in_ns,
		_m_dot_ns:    m_dot_ns,
	}, nil
}

// Inlet fluid temperature of the hour holding elapsed hour h of the year, degree C
func (s *FlowSchedule) inlet_temperature(h int) float64 {
	return s._theta_in_ns[h%len(s._theta_in_ns)]
}

// Fluid mass flow rate of the hour holding elapsed hour h of the year, kg/s
func (s *FlowSchedule) mass_flow_rate(h int) float64 {
	return s._m_dot_ns[h%len(s._m_dot_ns)]
}
