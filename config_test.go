package xdgshell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_AppliesDefaultsForMissingFields(t *testing.T) {
	cfg, err := LoadConfig([]byte(`ping_interval_ms = 2000`))
	require.NoError(t, err)

	assert.Equal(t, 2000*time.Millisecond, cfg.PingInterval())
	assert.Equal(t, DefaultConfig.ConfigureCoalesce(), cfg.ConfigureCoalesce())
}

func TestLoadConfig_RejectsMalformedTOML(t *testing.T) {
	_, err := LoadConfig([]byte(`not = [valid`))
	require.Error(t, err)
}

func TestConfig_WithDefaultsLeavesExplicitPositiveValuesAlone(t *testing.T) {
	cfg := Config{PingIntervalMS: 500, ConfigureCoalesceMS: 10}.withDefaults()
	assert.Equal(t, int64(500), cfg.PingIntervalMS)
	assert.Equal(t, int64(10), cfg.ConfigureCoalesceMS)
}
