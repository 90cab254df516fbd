// Package config defines the configuration structures for ReactionMapper.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables for `rxnmap serve`.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MappingConfig holds the matching engine tunables.
type MappingConfig struct {
	// Theory is the default matching theory: MIN, MAX, MIXTURE or RINGS.
	Theory string `mapstructure:"theory"`

	// Workers overrides runtime.NumCPU() as the processor count.  The pool
	// still runs max(1, min(workers-1, jobs)) goroutines.  Zero means NumCPU.
	Workers int `mapstructure:"workers"`

	// ShutdownTimeout bounds how long the dispatcher waits for every job of
	// a run to report, counted from the first submission.  Zero waits
	// without bound.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CycleStrategy is one of all, sssr, all_or_sssr, all_or_all.
	CycleStrategy string `mapstructure:"cycle_strategy"`

	// CycleLimit caps the number of simple cycles enumerated before the
	// "all" strategy reports the graph as intractable.
	CycleLimit int `mapstructure:"cycle_limit"`

	// StrictIdentifiers turns the atom identifier precondition into a hard
	// failure instead of a warning.
	StrictIdentifiers bool `mapstructure:"strict_identifiers"`

	// IndexedJobs enables the hashed job lookup instead of the linear scan.
	IndexedJobs bool `mapstructure:"indexed_jobs"`

	// KernelStepLimit caps the search steps of the baseline kernel per job.
	KernelStepLimit int `mapstructure:"kernel_step_limit"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
	Path      string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Mapping MappingConfig `mapstructure:"mapping"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxBodySize < 0 {
		return fmt.Errorf("config: server.max_body_size must be >= 0, got %d", c.Server.MaxBodySize)
	}

	// Mapping
	switch strings.ToUpper(c.Mapping.Theory) {
	case "MIN", "MAX", "MIXTURE", "RINGS":
	default:
		return fmt.Errorf("config: mapping.theory %q is invalid; expected MIN|MAX|MIXTURE|RINGS", c.Mapping.Theory)
	}
	if c.Mapping.Workers < 0 {
		return fmt.Errorf("config: mapping.workers must be >= 0, got %d", c.Mapping.Workers)
	}
	if c.Mapping.ShutdownTimeout < 0 {
		return fmt.Errorf("config: mapping.shutdown_timeout must be >= 0, got %s", c.Mapping.ShutdownTimeout)
	}
	switch c.Mapping.CycleStrategy {
	case "all", "sssr", "all_or_sssr", "all_or_all":
	default:
		return fmt.Errorf("config: mapping.cycle_strategy %q is invalid; expected all|sssr|all_or_sssr|all_or_all", c.Mapping.CycleStrategy)
	}
	if c.Mapping.CycleLimit < 1 {
		return fmt.Errorf("config: mapping.cycle_limit must be >= 1, got %d", c.Mapping.CycleLimit)
	}
	if c.Mapping.KernelStepLimit < 1 {
		return fmt.Errorf("config: mapping.kernel_step_limit must be >= 1, got %d", c.Mapping.KernelStepLimit)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Metrics
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics.path %q must start with /", c.Metrics.Path)
	}

	return nil
}
