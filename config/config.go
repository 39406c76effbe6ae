package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"thumbcrop/models"
)

const (
	DefaultWidth    = 800
	DefaultHeight   = 250
	DefaultLogLevel = "warn"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	OutputDir   string `validate:"required"`
	Size        Size
	Quiet       bool
	Workers     int    `validate:"gte=0"`
	JPEGQuality int    `validate:"min=1,max=100"`
	LogLevel    string `validate:"oneof=debug info warn error"`
}

// Load returns the defaults, taking overrides from THUMBCROP_* environment
// variables. Command-line flags are applied on top by the caller.
func Load() *Config {
	return &Config{
		OutputDir:   getEnv("THUMBCROP_OUTPUT_DIR", "."),
		Size:        Size{Width: DefaultWidth, Height: DefaultHeight},
		Workers:     getEnvAsInt("THUMBCROP_WORKERS", 0),
		JPEGQuality: getEnvAsInt("THUMBCROP_JPEG_QUALITY", models.DefaultJPEGQuality),
		LogLevel:    getEnv("THUMBCROP_LOG_LEVEL", DefaultLogLevel),
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) Options() models.Options {
	return models.Options{
		OutputDir:    c.OutputDir,
		TargetWidth:  c.Size.Width,
		TargetHeight: c.Size.Height,
		JPEGQuality:  c.JPEGQuality,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
