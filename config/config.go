// Package config loads particle-pool settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Environment variable overrides
const (
	EnvCapacity     = "PARTICLE_POOL_CAPACITY"
	EnvTickInterval = "PARTICLE_POOL_TICK"
	EnvOTLPEndpoint = "PARTICLE_POOL_OTLP_ENDPOINT"
)

// PoolConfig sizes the particle pool and its validity region
type PoolConfig struct {
	Capacity int     `yaml:"capacity"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

// SpawnConfig shapes each burst and limits how often bursts fire
type SpawnConfig struct {
	Burst     int     `yaml:"burst"`
	MinSpeed  float64 `yaml:"minSpeed"`
	MaxSpeed  float64 `yaml:"maxSpeed"`
	Rate      float64 `yaml:"rate"`
	RateBurst int     `yaml:"rateBurst"`
}

// EngineConfig sets the tick period
type EngineConfig struct {
	TickInterval time.Duration `yaml:"tickInterval"`
}

// RenderConfig controls on-screen notices
type RenderConfig struct {
	ExhaustedNotice time.Duration `yaml:"exhaustedNotice"`
}

// AudioConfig toggles sound cues
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TelemetryConfig configures OTLP metric export; empty endpoint disables it
type TelemetryConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	ServiceName string        `yaml:"serviceName"`
	Interval    time.Duration `yaml:"interval"`
}

// Config is the full application configuration
type Config struct {
	Pool      PoolConfig      `yaml:"pool"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Engine    EngineConfig    `yaml:"engine"`
	Render    RenderConfig    `yaml:"render"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Pool: PoolConfig{
			Capacity: 50,
			Width:    400,
			Height:   400,
		},
		Spawn: SpawnConfig{
			Burst:     5,
			MinSpeed:  2,
			MaxSpeed:  4,
			Rate:      20,
			RateBurst: 5,
		},
		Engine: EngineConfig{
			TickInterval: 16 * time.Millisecond,
		},
		Render: RenderConfig{
			ExhaustedNotice: time.Second,
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "particle-pool",
			Interval:    15 * time.Second,
		},
	}
}

// Load reads path over the defaults, applies env overrides and validates
// An empty path skips the file
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	cfg.Telemetry.Endpoint = strings.TrimSpace(cfg.Telemetry.Endpoint)
	cfg.Telemetry.ServiceName = strings.TrimSpace(cfg.Telemetry.ServiceName)
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "particle-pool"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvCapacity)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCapacity, err)
		}
		c.Pool.Capacity = n
	}
	if v := strings.TrimSpace(getenv(EnvTickInterval)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTickInterval, err)
		}
		c.Engine.TickInterval = d
	}
	if v := strings.TrimSpace(getenv(EnvOTLPEndpoint)); v != "" {
		c.Telemetry.Endpoint = v
	}
	return nil
}

// Validate performs semantic validation
func (c Config) Validate() error {
	switch {
	case c.Pool.Capacity < 0:
		return fmt.Errorf("%w: pool capacity must be >= 0", ErrInvalidConfig)
	case c.Pool.Width <= 0 || c.Pool.Height <= 0:
		return fmt.Errorf("%w: pool width and height must be > 0", ErrInvalidConfig)
	case c.Spawn.Burst <= 0:
		return fmt.Errorf("%w: spawn burst must be > 0", ErrInvalidConfig)
	case c.Spawn.MinSpeed < 0 || c.Spawn.MaxSpeed < c.Spawn.MinSpeed:
		return fmt.Errorf("%w: spawn speeds must satisfy 0 <= minSpeed <= maxSpeed", ErrInvalidConfig)
	case c.Spawn.Rate <= 0:
		return fmt.Errorf("%w: spawn rate must be > 0", ErrInvalidConfig)
	case c.Spawn.RateBurst <= 0:
		return fmt.Errorf("%w: spawn rateBurst must be > 0", ErrInvalidConfig)
	case c.Engine.TickInterval <= 0:
		return fmt.Errorf("%w: engine tickInterval must be > 0", ErrInvalidConfig)
	case c.Render.ExhaustedNotice < 0:
		return fmt.Errorf("%w: render exhaustedNotice must be >= 0", ErrInvalidConfig)
	case c.Telemetry.Endpoint != "" && c.Telemetry.Interval <= 0:
		return fmt.Errorf("%w: telemetry interval must be > 0", ErrInvalidConfig)
	}
	return nil
}
