package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "700", cfg.Datev.Version)
	assert.Equal(t, "EUR", cfg.Datev.DefaultCurrency)
	assert.Equal(t, "camt.053.001.02", cfg.Camt.Version)
	assert.True(t, cfg.Camt.StrictValidation)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("DATEV_CONVERT_LOG_LEVEL", "debug")
	t.Setenv("DATEV_CONVERT_CSV_DELIMITER", ";")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.CSV.Delimiter = ";"
		cfg.Datev.DefaultCurrency = "EUR"
		return cfg
	}

	assert.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.Log.Level = "loud"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Log.Format = "xml"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.CSV.Delimiter = ";;"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Datev.DefaultCurrency = "EURO"
	assert.Error(t, validateConfig(cfg))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DATEV_CONVERT_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("DATEV_CONVERT_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("DATEV_CONVERT_MISSING_KEY", "fallback"))
}
