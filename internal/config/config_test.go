package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig_IsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "MIN", cfg.Mapping.Theory)
	assert.Equal(t, "all_or_sssr", cfg.Mapping.CycleStrategy)
	assert.Equal(t, 30*time.Second, cfg.Mapping.ShutdownTimeout)
	assert.Zero(t, cfg.Mapping.Workers)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"stderr"}, cfg.Log.OutputPaths)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 9090},
		Mapping: MappingConfig{Theory: "RINGS", CycleLimit: 7},
	}
	ApplyDefaults(cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "RINGS", cfg.Mapping.Theory)
	assert.Equal(t, 7, cfg.Mapping.CycleLimit)
	assert.Equal(t, DefaultMappingKernelStepLimit, cfg.Mapping.KernelStepLimit)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8081", ServerConfig{Host: "127.0.0.1", Port: 8081}.Addr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"lowercase theory accepted", func(c *Config) { c.Mapping.Theory = "mixture" }, ""},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad server mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"negative body size", func(c *Config) { c.Server.MaxBodySize = -1 }, "server.max_body_size"},
		{"unknown theory", func(c *Config) { c.Mapping.Theory = "BOND" }, "mapping.theory"},
		{"negative workers", func(c *Config) { c.Mapping.Workers = -2 }, "mapping.workers"},
		{"negative shutdown", func(c *Config) { c.Mapping.ShutdownTimeout = -time.Second }, "mapping.shutdown_timeout"},
		{"bad cycle strategy", func(c *Config) { c.Mapping.CycleStrategy = "relevant" }, "mapping.cycle_strategy"},
		{"zero cycle limit", func(c *Config) { c.Mapping.CycleLimit = 0 }, "mapping.cycle_limit"},
		{"zero step limit", func(c *Config) { c.Mapping.KernelStepLimit = 0 }, "mapping.kernel_step_limit"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "text" }, "log.format"},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"metrics path ignored when disabled", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Path = "metrics"
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
