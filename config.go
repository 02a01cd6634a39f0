package boardkit

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// KVBucketConfig configures NATS JetStream KV bucket names for deployments
// using the natskv persistence adapter.
type KVBucketConfig struct {
	// AssignmentBucket is the bucket name for item assignment mirrors.
	AssignmentBucket string `yaml:"assignmentBucket" env:"ASSIGNMENT_BUCKET"`

	// LockBucket is the bucket name for lock/binding records.
	LockBucket string `yaml:"lockBucket" env:"LOCK_BUCKET"`
}

// Config is the configuration for a Board.
//
// All duration fields accept standard Go duration strings like "2s", "500ms".
type Config struct {
	// DebounceInterval is the quiet period after the last dirtying edit
	// before the autosave batch fires. Rapid successive edits collapse
	// into one save.
	// Recommended: 2 seconds.
	DebounceInterval time.Duration `yaml:"debounceInterval" env:"DEBOUNCE_INTERVAL"`

	// SaveTimeout bounds one whole save batch (all assignment writes plus
	// the lock records).
	// Recommended: 30 seconds.
	SaveTimeout time.Duration `yaml:"saveTimeout" env:"SAVE_TIMEOUT"`

	// OperationTimeout bounds individual backing-store operations issued
	// by persistence adapters (get, put, delete).
	// Recommended: 10 seconds.
	OperationTimeout time.Duration `yaml:"operationTimeout" env:"OPERATION_TIMEOUT"`

	// KVBuckets controls NATS JetStream KV bucket configuration for the
	// natskv adapter. Ignored by other adapters.
	KVBuckets KVBucketConfig `yaml:"kvBuckets" envPrefix:"KV_"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		DebounceInterval: 2 * time.Second,
		SaveTimeout:      30 * time.Second,
		OperationTimeout: 10 * time.Second,
		KVBuckets: KVBucketConfig{
			AssignmentBucket: "boardkit-assignment",
			LockBucket:       "boardkit-locks",
		},
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = defaults.DebounceInterval
	}
	if cfg.SaveTimeout == 0 {
		cfg.SaveTimeout = defaults.SaveTimeout
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
	if cfg.KVBuckets.AssignmentBucket == "" {
		cfg.KVBuckets.AssignmentBucket = defaults.KVBuckets.AssignmentBucket
	}
	if cfg.KVBuckets.LockBucket == "" {
		cfg.KVBuckets.LockBucket = defaults.KVBuckets.LockBucket
	}
}

// FromEnv returns the default configuration overridden by BOARDKIT_*
// environment variables (e.g. BOARDKIT_DEBOUNCE_INTERVAL=500ms,
// BOARDKIT_KV_LOCK_BUCKET=mycompany-locks).
//
// Returns:
//   - Config: Parsed configuration
//   - error: Parse error for malformed variable values
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "BOARDKIT_"}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration constraints and returns an error for
// invalid values.
//
// Hard Validation Rules:
//   - DebounceInterval > 0 (a zero debounce would save on every keystroke)
//   - SaveTimeout > 0
//   - OperationTimeout > 0
//   - SaveTimeout >= DebounceInterval (the batch deadline must cover at
//     least one quiet period)
//   - SaveTimeout >= OperationTimeout (a batch outlives its operations)
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.DebounceInterval <= 0 {
		return fmt.Errorf("DebounceInterval must be > 0, got %v", cfg.DebounceInterval)
	}
	if cfg.SaveTimeout <= 0 {
		return fmt.Errorf("SaveTimeout must be > 0, got %v", cfg.SaveTimeout)
	}
	if cfg.OperationTimeout <= 0 {
		return fmt.Errorf("OperationTimeout must be > 0, got %v", cfg.OperationTimeout)
	}
	if cfg.SaveTimeout < cfg.DebounceInterval {
		return fmt.Errorf(
			"SaveTimeout (%v) must be >= DebounceInterval (%v)",
			cfg.SaveTimeout, cfg.DebounceInterval,
		)
	}
	if cfg.SaveTimeout < cfg.OperationTimeout {
		return fmt.Errorf(
			"SaveTimeout (%v) must be >= OperationTimeout (%v)",
			cfg.SaveTimeout, cfg.OperationTimeout,
		)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for
// non-recommended values.
//
// This is called after Validate() in New() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.DebounceInterval < 500*time.Millisecond {
		logger.Warn(
			"DebounceInterval is very short, rapid edits will hammer the backing store",
			"debounce", cfg.DebounceInterval,
			"recommended", "2s",
		)
	}
	if cfg.DebounceInterval > 30*time.Second {
		logger.Warn(
			"DebounceInterval is very long, unsaved changes linger",
			"debounce", cfg.DebounceInterval,
			"recommended", "2s",
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are much faster than production defaults to enable rapid
// iteration without sacrificing coverage. Use DefaultConfig() for
// production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.DebounceInterval = 25 * time.Millisecond
	cfg.SaveTimeout = 2 * time.Second
	cfg.OperationTimeout = 2 * time.Second

	return cfg
}
