package idempotency

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config tunes the coordinator and reaper. The retry values are tuning knobs, not
// semantic guarantees.
type Config struct {
	// MaxAttempts bounds the claim phase under storage conflicts.
	MaxAttempts int `yaml:"max_attempts" validate:"min=1,max=20"`
	// InitialBackoff is the delay before the second attempt; it doubles per attempt.
	InitialBackoff time.Duration `yaml:"initial_backoff" validate:"min=0"`
	MaxBackoff     time.Duration `yaml:"max_backoff" validate:"gtefield=InitialBackoff"`
	// RecordTTL is added to the creation time to compute ExpiresAt.
	RecordTTL time.Duration `yaml:"record_ttl" validate:"gt=0"`
	// StuckTimeout is the default age after which a processing record is reclaimed.
	StuckTimeout time.Duration `yaml:"stuck_timeout" validate:"gt=0"`
	// ReapBatchSize is how many stuck records CleanupStuckKeys loads per scan.
	ReapBatchSize int `yaml:"reap_batch_size" validate:"min=1"`
	// ReapInterval is the tick of Reaper.Run.
	ReapInterval time.Duration `yaml:"reap_interval" validate:"gt=0"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		RecordTTL:      24 * time.Hour,
		StuckTimeout:   30 * time.Minute,
		ReapBatchSize:  500,
		ReapInterval:   5 * time.Minute,
	}
}

// Validate checks the config ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid idempotency config: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
