package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/detector"
	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	BodyLimitMB int    `envconfig:"BODY_LIMIT_MB" default:"4"`

	// Geometry
	DetectorFormat  string  `envconfig:"DETECTOR_FORMAT" default:"keypoints"`
	DirectionFactor float64 `envconfig:"DIRECTION_FACTOR" default:"3"`
	ReadoutInterval int     `envconfig:"READOUT_INTERVAL" default:"10"`

	// Rate limiting
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"600"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if _, err := detector.ParseFormat(c.DetectorFormat); err != nil {
		return fmt.Errorf("DETECTOR_FORMAT: %w", err)
	}
	if err := landmark.ValidateFactor(c.DirectionFactor); err != nil {
		return fmt.Errorf("DIRECTION_FACTOR: %w", err)
	}
	if c.ReadoutInterval < 1 {
		return fmt.Errorf("READOUT_INTERVAL must be at least 1, got %d", c.ReadoutInterval)
	}
	if c.BodyLimitMB < 1 {
		return fmt.Errorf("BODY_LIMIT_MB must be at least 1, got %d", c.BodyLimitMB)
	}
	return nil
}

// Format returns the parsed default detector format. Call after Validate.
func (c *Config) Format() detector.Format {
	f, _ := detector.ParseFormat(c.DetectorFormat)
	return f
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
