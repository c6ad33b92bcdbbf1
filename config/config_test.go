package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heattreat/calculator"
	"heattreat/steel_type"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, steel_type.Default304L(), *cfg.Steel.Parameter)
	assert.Equal(t, calculator.PolicyStrict, cfg.Policy)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Furnace.ProgressStep)
	assert.Zero(t, cfg.Furnace.Tick)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[material]
friction_stress = 190

[calculator]
policy = clamp

[server]
addr = :8080
rate_limit = 0

[furnace]
progress_step = 25
tick = 50ms

[log]
level = debug
format = json
`))
	require.NoError(t, err)
	assert.Equal(t, 190.0, cfg.Steel.Parameter.FrictionStress)
	assert.Equal(t, calculator.PolicyClamp, cfg.Policy)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, 25, cfg.Furnace.ProgressStep)
	assert.Equal(t, 50*time.Millisecond, cfg.Furnace.Tick)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"policy":        "[calculator]\npolicy = maybe\n",
		"material":      "[material]\ngrowth_rate_constant = 0\n",
		"progress step": "[furnace]\nprogress_step = 0\n",
		"tick":          "[furnace]\ntick = -1s\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = :7000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.ini")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, steel_type.Default304L(), *cfg.Steel.Parameter)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.ini")
	require.NoError(t, os.WriteFile(path, []byte("[calculator]\npolicy = warn\n"), 0o644))
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvAddr, ":9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, calculator.PolicyWarn, cfg.Policy)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestSetupLogger(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	require.NoError(t, SetupLogger(LogCfg{Level: "warn", Format: "json"}))
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	assert.Error(t, SetupLogger(LogCfg{Level: "loud"}))
	assert.Error(t, SetupLogger(LogCfg{Level: "info", Format: "xml"}))
	require.NoError(t, SetupLogger(LogCfg{Level: "info", Format: "text"}))
}
