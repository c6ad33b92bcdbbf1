package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heattreat/calculator"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", "testdata/config.ini"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "heattreat", cmd.Use)
	assert.Contains(t, cmd.Long, "Hall-Petch")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"predict", "serve"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "false", verboseFlag.DefValue)
}

func TestPredictText(t *testing.T) {
	out, err := execute(t, "predict", "--g0", "10", "--sigma", "500")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "predict_text", []byte(out))
}

func TestPredictJSON(t *testing.T) {
	out, err := execute(t, "predict", "--g0", "10", "--sigma", "2000", "--format", "json")
	require.NoError(t, err)

	var plan calculator.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "304L", plan.Material)
	assert.InDelta(t, 17.387, plan.FinalGrainSize, 0.01)
	assert.InDelta(t, 0.0250, plan.AnnealingTime, 0.0001)
}

func TestPredictDomainError(t *testing.T) {
	out, err := execute(t, "predict", "--g0", "300", "--sigma", "2000")
	require.Error(t, err)
	assert.True(t, calculator.IsUnreachableByAnnealing(err))
	assert.Empty(t, out)

	_, err = execute(t, "predict", "--g0", "10", "--sigma", "179")
	assert.True(t, calculator.IsBelowFrictionStress(err))
}

func TestPredictFlags(t *testing.T) {
	_, err := execute(t, "predict", "--g0", "10")
	assert.Error(t, err, "sigma is required")

	_, err = execute(t, "predict", "--g0", "10", "--sigma", "500", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestServeFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serveCmd.Flags().Lookup("addr"))
}
