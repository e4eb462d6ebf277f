package main

import (
	"encoding/csv"
	"os"
	"strconv"
)

/*
Per-step simulation results of one ground heat exchanger, kept in
preallocated columns and written to a CSV file after the run.
*/
type Recorder struct {
	// elapsed simulation time per step, h, [n]
	_sim_time_ns []float64
	// inlet fluid temperature per step, degree C, [n]
	_theta_in_ns []float64
	// outlet fluid temperature per step, degree C, [n]
	_theta_out_ns []float64
	// average fluid temperature per step, degree C, [n]
	_theta_ave_ns []float64
	// borehole or coil wall temperature per step, degree C, [n]
	_theta_wall_ns []float64
	// fluid mass flow rate per step, kg/s, [n]
	_m_dot_ns []float64
	// heat transfer rate per step (positive when the fluid gains heat), W, [n]
	_q_ns []float64
}

func NewRecorder(n_step int) *Recorder {
	return &Recorder{
		_sim_time_ns:   make([]float64, 0, n_step),
		_theta_in_ns:   make([]float64, 0, n_step),
		_theta_out_ns:  make([]float64, 0, n_step),
		_theta_ave_ns:  make([]float64, 0, n_step),
		_theta_wall_ns: make([]float64, 0, n_step),
		_m_dot_ns:      make([]float64, 0, n_step),
		_q_ns:          make([]float64, 0, n_step),
	}
}

// Append the exchanger's state after one step.
func (r *Recorder) recording(simTime float64, ghe GroundHeatExchanger) {
	r._sim_time_ns = append(r._sim_time_ns, simTime)
	r._theta_in_ns = append(r._theta_in_ns, ghe.inlet_temp())
	r._theta_out_ns = append(r._theta_out_ns, ghe.outlet_temp())
	r._theta_ave_ns = append(r._theta_ave_ns, ghe.ave_fluid_temp())
	r._theta_wall_ns = append(r._theta_wall_ns, ghe.wall_temp())
	r._m_dot_ns = append(r._m_dot_ns, ghe.mass_flow_rate())
	r._q_ns = append(r._q_ns, ghe.heat_rate())
}

// Number of recorded steps
func (r *Recorder) n_recorded() int {
	return len(r._sim_time_ns)
}

/*
Write the recorded columns to a CSV file.

	Args:
		file_path: path of the output CSV file
*/
func (r *Recorder) export_csv(file_path string) error {
	file, err := os.Create(file_path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"sim_time",
		"inlet_temperature",
		"outlet_temperature",
		"ave_fluid_temperature",
		"wall_temperature",
		"mass_flow_rate",
		"heat_rate",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	f := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 6, 64)
	}

	for n := range r._sim_time_ns {
		row := []string{
			f(r._sim_time_ns[n]),
			f(r._theta_in_ns[n]),
			f(r._theta_out_ns[n]),
			f(r._theta_ave_ns[n]),
			f(r._theta_wall_ns[n]),
			f(r._m_dot_ns[n]),
			f(r._q_ns[n]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
