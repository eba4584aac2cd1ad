// Package config loads gochart runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvConfigPath names the environment variable holding a default config file.
const EnvConfigPath = "GOCHART_CONFIG"

// Errors for configuration operations.
var (
	// ErrConfigNotFound indicates the configuration file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidFormat indicates the configuration format is invalid.
	ErrInvalidFormat = errors.New("invalid configuration format")

	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrValidationFailed indicates configuration validation failed.
	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrMissingEnvVar indicates a required environment variable is not set.
	ErrMissingEnvVar = errors.New("required environment variable not set")
)

// Config is the root configuration document.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Render RenderConfig `yaml:"render"`
	Icons  IconsConfig  `yaml:"icons"`
	Decode DecodeConfig `yaml:"decode"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RenderConfig configures raster export.
type RenderConfig struct {
	Width       int      `yaml:"width"`
	Format      string   `yaml:"format"`
	JPEGQuality int      `yaml:"jpeg_quality"`
	FontDirs    []string `yaml:"font_dirs"`
}

// IconsConfig points at an additional icon pack.
type IconsConfig struct {
	// Path is a YAML icon pack merged over the builtin icons.
	Path string `yaml:"path"`
}

// DecodeConfig bounds pictogram icon decoding.
type DecodeConfig struct {
	Workers int           `yaml:"workers"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Render: RenderConfig{
			Width:       1080,
			Format:      "png",
			JPEGQuality: 90,
		},
		Decode: DecodeConfig{
			Workers: 4,
			Timeout: 2 * time.Second,
		},
	}
}

// Validate checks value ranges and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format: must be console or json, got %q", c.Log.Format))
	}
	if c.Render.Width <= 0 {
		errs = append(errs, fmt.Sprintf("render.width: must be positive, got %d", c.Render.Width))
	}
	switch strings.ToLower(c.Render.Format) {
	case "png", "jpg", "jpeg":
	default:
		errs = append(errs, fmt.Sprintf("render.format: must be png or jpeg, got %q", c.Render.Format))
	}
	if c.Render.JPEGQuality < 1 || c.Render.JPEGQuality > 100 {
		errs = append(errs, fmt.Sprintf("render.jpeg_quality: must be 1-100, got %d", c.Render.JPEGQuality))
	}
	if c.Decode.Workers <= 0 {
		errs = append(errs, fmt.Sprintf("decode.workers: must be positive, got %d", c.Decode.Workers))
	}
	if c.Decode.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("decode.timeout: must be positive, got %s", c.Decode.Timeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrValidationFailed, strings.Join(errs, "\n  "))
	}
	return nil
}

// Resolve loads path, or the file named by GOCHART_CONFIG when path is
// empty, or the defaults when neither is set.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	return NewLoader().LoadFile(path)
}
