package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlinkySpec() *SlinkySpec {
	ave := 15.5
	amp := 12.8
	phase := 17.3

	return &SlinkySpec{
		Name:                   "test slinky field",
		DesignFlow:             0.0003,
		KGround:                1.2,
		RhoGround:              3200.0,
		CpGround:               850.0,
		KPipe:                  0.4,
		PipeOutDia:             0.0267,
		PipeThick:              0.00243,
		VerticalConfig:         false,
		CoilDiameter:           1.0,
		CoilPitch:              0.4,
		TrenchDepth:            2.5,
		TrenchLength:           40.0,
		NumTrenches:            15,
		TrenchSpacing:          2.0,
		MaxSimYears:            1,
		AveGroundTemp:          &ave,
		AveGroundTempAmplitude: &amp,
		PhaseShiftDays:         &phase,
	}
}

func TestNewGLHEVert_Validation(t *testing.T) {
	props := NewWaterProperties()

	spec := testVerticalSpec()
	spec.PipeThick = spec.PipeOutDia / 2.0
	_, err := NewGLHEVert(spec, props, 1)
	assert.Error(t, err, "pipe wall thicker than the pipe radius")

	spec = testVerticalSpec()
	spec.NumBoreholes = 0
	_, err = NewGLHEVert(spec, props, 1)
	assert.Error(t, err)

	spec = testVerticalSpec()
	spec.GFunc = spec.GFunc[:3]
	_, err = NewGLHEVert(spec, props, 1)
	assert.Error(t, err, "g-function data length mismatch")
}

func TestNewGLHEVert_GFunctionCorrection(t *testing.T) {
	props := NewWaterProperties()

	matched, err := NewGLHEVert(testVerticalSpec(), props, 1)
	require.NoError(t, err)

	spec := testVerticalSpec()
	spec.GReferenceRatio = 0.0005
	shifted, err := NewGLHEVert(spec, props, 1)
	require.NoError(t, err)

	// a field whose radius over length ratio differs from the data's
	// reference gets a constant ln shift
	x := -6.0
	expectedShift := math.Log(spec.BoreholeRadius / (spec.BoreholeLength * spec.GReferenceRatio))
	assert.InDelta(t, matched._gFunc(x)-expectedShift, shifted._gFunc(x), 1e-12)
}

func TestNewGLHESlinky_Validation(t *testing.T) {
	props := NewWaterProperties()

	spec := testSlinkySpec()
	spec.NumTrenches = 0
	_, err := NewGLHESlinky(spec, props, 1)
	assert.Error(t, err)

	spec = testSlinkySpec()
	spec.CoilPitch = 0.0
	_, err = NewGLHESlinky(spec, props, 1)
	assert.Error(t, err)

	spec = testSlinkySpec()
	spec.VerticalConfig = true
	spec.TrenchDepth = 0.5
	_, err = NewGLHESlinky(spec, props, 1)
	assert.Error(t, err, "an upright coil deeper than the trench sticks out of the ground")

	spec = testSlinkySpec()
	spec.AveGroundTemp = nil
	_, err = NewGLHESlinky(spec, props, 1)
	assert.Error(t, err, "no far field parameters and no monthly surface temperatures")

	spec = testSlinkySpec()
	spec.AveGroundTemp = nil
	spec.MonthlySurfaceTemps = []float64{4, 2, 4, 8, 12, 16, 18, 16, 14, 12, 8, 6}
	_, err = NewGLHESlinky(spec, props, 1)
	assert.NoError(t, err, "monthly surface temperatures substitute for far field parameters")
}

func TestNewGLHESlinky_Geometry(t *testing.T) {
	g, err := NewGLHESlinky(testSlinkySpec(), NewWaterProperties(), 1)
	require.NoError(t, err)

	// 40 m of trench at 0.4 m pitch is 100 coils
	assert.Equal(t, 100, g._numCoils)

	// tube length: pi D per coil times coils per trench times trenches
	expected := math.Pi * 1.0 * 40.0 * 15.0 / 0.4
	assert.InDelta(t, expected, g._totalTubeLength, 1e-9)

	// flat coils sit at the trench depth
	assert.InDelta(t, 2.5, g._coilDepth, 1e-12)

	upright := testSlinkySpec()
	upright.VerticalConfig = true
	gu, err := NewGLHESlinky(upright, NewWaterProperties(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, gu._coilDepth, 1e-12, "upright coil center is half a diameter above the trench bottom")
}

func TestGLHESlinky_BeginEnvironmentSetsGroundTemp(t *testing.T) {
	g, err := NewGLHESlinky(testSlinkySpec(), NewWaterProperties(), 1)
	require.NoError(t, err)

	winter := 17 // near the phase shift day
	summer := winter + 182

	require.NoError(t, g.begin_environment(winter))
	coldGround := g.temp_ground()

	require.NoError(t, g.begin_environment(summer))
	warmGround := g.temp_ground()

	assert.Less(t, coldGround, warmGround, "the coil depth ground follows the annual wave")
	assert.Greater(t, coldGround, 15.5-12.8)
	assert.Less(t, warmGround, 15.5+12.8)
}

func TestVertical_MaxSimYearsClampedToRunPeriod(t *testing.T) {
	spec := testVerticalSpec()
	spec.MaxSimYears = 1

	g, err := NewGLHEVert(spec, NewWaterProperties(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, g._maxSimYears)
}
