package xdgshell

import (
	"time"

	"github.com/pelletier/go-toml"
)

// Config carries the timing constants spec.md leaves as
// implementation choices (section 5): the ping interval and the
// configure-coalescing delay, both in milliseconds since go-toml
// has no native time.Duration codec. Zero-valued fields fall back to
// DefaultConfig's values in NewShell.
type Config struct {
	PingIntervalMS      int64 `toml:"ping_interval_ms"`
	ConfigureCoalesceMS int64 `toml:"configure_coalesce_ms"`
}

// PingInterval returns the configured ping interval as a Duration.
func (c Config) PingInterval() time.Duration {
	return time.Duration(c.PingIntervalMS) * time.Millisecond
}

// ConfigureCoalesce returns the configured coalescing delay as a
// Duration.
func (c Config) ConfigureCoalesce() time.Duration {
	return time.Duration(c.ConfigureCoalesceMS) * time.Millisecond
}

// DefaultConfig matches the values named in spec.md section 5: a
// 1000ms base ping interval, and a coalescing delay short enough that
// a single event-loop turn can batch multiple geometry updates into
// one configure.
var DefaultConfig = Config{
	PingIntervalMS:      1000,
	ConfigureCoalesceMS: 0,
}

func (c Config) withDefaults() Config {
	if c.PingIntervalMS <= 0 {
		c.PingIntervalMS = DefaultConfig.PingIntervalMS
	}
	if c.ConfigureCoalesceMS < 0 {
		c.ConfigureCoalesceMS = DefaultConfig.ConfigureCoalesceMS
	}
	return c
}

// LoadConfig reads a Config from TOML data, the way
// mstarongithub-way2gay's config.Config is tagged for file loading.
// Any field absent from data keeps its DefaultConfig value.
func LoadConfig(data []byte) (Config, error) {
	cfg := Config{}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}
