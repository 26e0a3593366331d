package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "particle-pool.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.Pool.Capacity != 50 || cfg.Pool.Width != 400 || cfg.Pool.Height != 400 {
		t.Errorf("Unexpected pool defaults %+v", cfg.Pool)
	}
	if cfg.Spawn.Burst != 5 || cfg.Spawn.MinSpeed != 2 || cfg.Spawn.MaxSpeed != 4 {
		t.Errorf("Unexpected spawn defaults %+v", cfg.Spawn)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Engine.TickInterval != 16*time.Millisecond {
		t.Errorf("Expected 16ms tick, got %v", cfg.Engine.TickInterval)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
pool:
  capacity: 3
  width: 80
spawn:
  burst: 2
engine:
  tickInterval: 33ms
telemetry:
  endpoint: "  http://localhost:4318  "
  serviceName: ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pool.Capacity != 3 || cfg.Pool.Width != 80 {
		t.Errorf("Pool not overlaid: %+v", cfg.Pool)
	}
	if cfg.Pool.Height != 400 {
		t.Errorf("Expected untouched height default, got %v", cfg.Pool.Height)
	}
	if cfg.Spawn.Burst != 2 || cfg.Spawn.MaxSpeed != 4 {
		t.Errorf("Spawn not overlaid: %+v", cfg.Spawn)
	}
	if cfg.Engine.TickInterval != 33*time.Millisecond {
		t.Errorf("Expected 33ms tick, got %v", cfg.Engine.TickInterval)
	}
	if cfg.Telemetry.Endpoint != "http://localhost:4318" {
		t.Errorf("Expected trimmed endpoint, got %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.ServiceName != "particle-pool" {
		t.Errorf("Expected default service name, got %q", cfg.Telemetry.ServiceName)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvCapacity, "7")
	t.Setenv(EnvTickInterval, "20ms")
	t.Setenv(EnvOTLPEndpoint, "collector:4318")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pool.Capacity != 7 {
		t.Errorf("Expected capacity 7, got %d", cfg.Pool.Capacity)
	}
	if cfg.Engine.TickInterval != 20*time.Millisecond {
		t.Errorf("Expected 20ms, got %v", cfg.Engine.TickInterval)
	}
	if cfg.Telemetry.Endpoint != "collector:4318" {
		t.Errorf("Expected endpoint override, got %q", cfg.Telemetry.Endpoint)
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv(EnvCapacity, "many")
	if _, err := Load(""); err == nil {
		t.Error("Expected error for non-numeric capacity")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "pool: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("Expected unmarshal error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative capacity", func(c *Config) { c.Pool.Capacity = -1 }},
		{"zero width", func(c *Config) { c.Pool.Width = 0 }},
		{"zero burst", func(c *Config) { c.Spawn.Burst = 0 }},
		{"inverted speeds", func(c *Config) { c.Spawn.MinSpeed, c.Spawn.MaxSpeed = 5, 1 }},
		{"zero rate", func(c *Config) { c.Spawn.Rate = 0 }},
		{"zero rate burst", func(c *Config) { c.Spawn.RateBurst = 0 }},
		{"zero tick", func(c *Config) { c.Engine.TickInterval = 0 }},
		{"negative notice", func(c *Config) { c.Render.ExhaustedNotice = -time.Second }},
		{"telemetry without interval", func(c *Config) {
			c.Telemetry.Endpoint = "localhost:4318"
			c.Telemetry.Interval = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestZeroCapacityIsValid(t *testing.T) {
	cfg := Default()
	cfg.Pool.Capacity = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Zero capacity should be valid, got %v", err)
	}
}
