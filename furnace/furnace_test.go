package furnace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heattreat/calculator"
)

func testPlan() calculator.Plan {
	return calculator.Plan{
		Material:         "304L",
		InitialGrainSize: 10,
		TargetStrength:   500,
		FinalGrainSize:   562.43,
		AnnealingTime:    39.16,
	}
}

func TestFurnaceLifecycle(t *testing.T) {
	f := NewFurnace(1)
	assert.Equal(t, Idle, f.State())
	assert.Nil(t, f.Status().Plan)

	require.NoError(t, f.Load(testPlan()))
	assert.Equal(t, Loaded, f.State())

	require.NoError(t, f.Start())
	assert.Equal(t, Heating, f.State())

	for p := 10; p < 100; p += 10 {
		state, err := f.Advance(p)
		require.NoError(t, err)
		assert.Equal(t, Heating, state)
		assert.Equal(t, p, f.Status().Progress)
	}
	state, err := f.Advance(100)
	require.NoError(t, err)
	assert.Equal(t, Complete, state)

	plan, err := f.Unload()
	require.NoError(t, err)
	assert.Equal(t, testPlan(), plan)

	status := f.Status()
	assert.Equal(t, Idle, status.State)
	assert.Zero(t, status.Progress)
	assert.Nil(t, status.Plan)
}

func TestFurnaceInvalidTransitions(t *testing.T) {
	f := NewFurnace(1)

	assert.ErrorIs(t, f.Start(), ErrInvalidTransition)
	_, err := f.Advance(50)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.Unload()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, f.Load(testPlan()))
	assert.ErrorIs(t, f.Load(testPlan()), ErrInvalidTransition)
	_, err = f.Unload()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, Loaded, f.State())
}

func TestFurnaceRefusesNegativeTime(t *testing.T) {
	f := NewFurnace(1)
	plan := testPlan()
	plan.AnnealingTime = -11.1

	err := f.Load(plan)
	assert.True(t, errors.Is(err, ErrNegativeTime))
	assert.Equal(t, Idle, f.State())
}

func TestFurnaceAdvanceClamps(t *testing.T) {
	f := NewFurnace(2)
	require.NoError(t, f.Load(testPlan()))
	require.NoError(t, f.Start())

	_, err := f.Advance(60)
	require.NoError(t, err)
	// 进度不回退
	_, err = f.Advance(30)
	require.NoError(t, err)
	assert.Equal(t, 60, f.Status().Progress)

	state, err := f.Advance(250)
	require.NoError(t, err)
	assert.Equal(t, Complete, state)
	assert.Equal(t, 100, f.Status().Progress)
}

func TestFurnaceStatusCopiesPlan(t *testing.T) {
	f := NewFurnace(1)
	require.NoError(t, f.Load(testPlan()))

	status := f.Status()
	status.Plan.AnnealingTime = 0
	assert.Equal(t, 39.16, f.Status().Plan.AnnealingTime)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "heating", Heating.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "state(9)", State(9).String())
}
