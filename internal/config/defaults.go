package config

import (
	"time"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 30 * time.Second
	DefaultServerWriteTimeout    = 5 * time.Minute
	DefaultServerMaxBodySize     = 8 << 20
	DefaultServerShutdownTimeout = 15 * time.Second

	DefaultMappingTheory          = "MIN"
	DefaultMappingShutdownTimeout = 30 * time.Second
	DefaultMappingCycleStrategy   = "all_or_sssr"
	DefaultMappingCycleLimit      = 1024
	DefaultMappingKernelStepLimit = 200000

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "rxnmap"
	DefaultMetricsSubsystem = "matching"
	DefaultMetricsPath      = "/metrics"
)

// NewDefaultConfig returns a Config with every field set to its default.
// Metrics are enabled by default.
func NewDefaultConfig() *Config {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with the default.
// Fields that have already been set (non-zero values) are left unchanged so
// that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	// ── Mapping ───────────────────────────────────────────────────────────────
	if cfg.Mapping.Theory == "" {
		cfg.Mapping.Theory = DefaultMappingTheory
	}
	if cfg.Mapping.ShutdownTimeout == 0 {
		cfg.Mapping.ShutdownTimeout = DefaultMappingShutdownTimeout
	}
	if cfg.Mapping.CycleStrategy == "" {
		cfg.Mapping.CycleStrategy = DefaultMappingCycleStrategy
	}
	if cfg.Mapping.CycleLimit == 0 {
		cfg.Mapping.CycleLimit = DefaultMappingCycleLimit
	}
	if cfg.Mapping.KernelStepLimit == 0 {
		cfg.Mapping.KernelStepLimit = DefaultMappingKernelStepLimit
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stderr"}
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

// registerDefaults seeds v with every known key so that AutomaticEnv can
// resolve RXNMAP_* variables for keys absent from the config file.
func registerDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("mapping.theory", d.Mapping.Theory)
	v.SetDefault("mapping.workers", d.Mapping.Workers)
	v.SetDefault("mapping.shutdown_timeout", d.Mapping.ShutdownTimeout)
	v.SetDefault("mapping.cycle_strategy", d.Mapping.CycleStrategy)
	v.SetDefault("mapping.cycle_limit", d.Mapping.CycleLimit)
	v.SetDefault("mapping.strict_identifiers", d.Mapping.StrictIdentifiers)
	v.SetDefault("mapping.indexed_jobs", d.Mapping.IndexedJobs)
	v.SetDefault("mapping.kernel_step_limit", d.Mapping.KernelStepLimit)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_paths", d.Log.OutputPaths)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.subsystem", d.Metrics.Subsystem)
	v.SetDefault("metrics.path", d.Metrics.Path)
}
