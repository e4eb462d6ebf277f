package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ExportCSV(t *testing.T) {
	g := newTestVertical(t)
	clk := NewSimulationClock(0.25)
	rec := NewRecorder(4)

	require.NoError(t, g.calc_ground_heat_exchanger(clk, 5.0, 0.5))
	for n := 0; n < 4; n++ {
		clk.advance()
		require.NoError(t, g.calc_ground_heat_exchanger(clk, 5.0, 0.5))
		rec.recording(clk.current_sim_time(), g)
	}
	require.Equal(t, 4, rec.n_recorded())

	out := filepath.Join(t.TempDir(), "result.csv")
	require.NoError(t, rec.export_csv(out))

	file, err := os.Open(out)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 5, "header plus one row per step")
	assert.Equal(t, "sim_time", rows[0][0])
	assert.Equal(t, "heat_rate", rows[0][6])
	assert.Equal(t, "0.250000", rows[1][0])
	assert.Equal(t, "5.000000", rows[1][1])
}

func TestFlowSchedule_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.csv")

	file, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(file)
	require.NoError(t, w.Write([]string{"inlet_temperature", "mass_flow_rate"}))
	for h := 0; h < int(get_days_in_year())*hrsPerDay; h++ {
		require.NoError(t, w.Write([]string{"12.5", "0.4"}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, file.Close())

	scd, err := NewFlowSchedule(path)
	require.NoError(t, err)

	assert.Equal(t, 12.5, scd.inlet_temperature(0))
	assert.Equal(t, 0.4, scd.mass_flow_rate(100))

	// lookups past the last hour wrap into the next year
	assert.Equal(t, 12.5, scd.inlet_temperature(int(get_days_in_year())*hrsPerDay+5))
}

func TestFlowSchedule_RejectsBadFiles(t *testing.T) {
	_, err := NewFlowSchedule(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	// wrong row count
	path := filepath.Join(t.TempDir(), "short.csv")
	file, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(file)
	require.NoError(t, w.Write([]string{"inlet_temperature", "mass_flow_rate"}))
	require.NoError(t, w.Write([]string{"12.5", "0.4"}))
	w.Flush()
	require.NoError(t, file.Close())

	_, err = NewFlowSchedule(path)
	assert.Error(t, err)
}
