// Package config loads settings for the descent command from a YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultPath is the config file read when no path is given.
const DefaultPath = "descent.yaml"

// Evaluation modes.
const (
	ModeFloat   = "float"
	ModeBig     = "big"
	ModeDecimal = "decimal"
)

// Parser engines.
const (
	EngineDescent    = "descent"
	EngineCombinator = "combinator"
)

// Config is the descent command configuration.
type Config struct {
	// Mode selects the arithmetic: float, big, or decimal.
	Mode string `yaml:"mode"`
	// Engine selects the parser: descent or combinator.
	Engine string `yaml:"engine"`
	// Prec is the mantissa precision in bits for big mode.
	Prec uint `yaml:"prec"`
	// Places is the number of decimal places of quotients in decimal mode.
	Places *int32 `yaml:"places,omitempty"`
	// Format is the fmt verb used to print results.
	Format string `yaml:"format"`
	// RequireEnd rejects inputs with text after the expression.
	RequireEnd bool `yaml:"require_end"`
	// Echo prints the parse tree before each result.
	Echo bool `yaml:"echo"`
	// Samples are the inputs evaluated by --samples.
	Samples []string `yaml:"samples"`
}

// DefaultSamples are smoke-test inputs covering grouping on either side.
var DefaultSamples = []string{
	"1 + 2",
	"(1 + 2)",
	"(1 + 2) + 3",
	"1 + (2 + 3)",
	"(1 + 2) + (3 + 4)",
	"((1 + 2) + (3 + 4))",
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

// DecimalPlaces returns the configured places, or 16 if unset.
func (c *Config) DecimalPlaces() int32 {
	if c.Places == nil {
		return 16
	}
	return *c.Places
}

// Load loads configuration from the specified file. A missing file yields
// the defaults. A .env file in the working directory is loaded first so
// that ${VAR} references in the config can use it.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		config := Default()
		expandConfigEnvVars(config)
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strict mode rejects unknown keys.
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration for invalid values.
func Validate(config *Config) error {
	switch config.Mode {
	case ModeFloat, ModeBig, ModeDecimal:
	default:
		return fmt.Errorf("%w: invalid mode '%s': must be one of float, big, decimal", ErrConfigValidation, config.Mode)
	}
	switch config.Engine {
	case EngineDescent, EngineCombinator:
	default:
		return fmt.Errorf("%w: invalid engine '%s': must be one of descent, combinator", ErrConfigValidation, config.Engine)
	}
	if config.Places != nil && *config.Places < 0 {
		return fmt.Errorf("%w: places must be non-negative, got %d", ErrConfigValidation, *config.Places)
	}
	if config.Format == "" {
		return fmt.Errorf("%w: format is required", ErrConfigValidation)
	}
	return nil
}

func applyDefaults(config *Config) {
	if config.Mode == "" {
		config.Mode = ModeFloat
	}
	if config.Engine == "" {
		config.Engine = EngineDescent
	}
	if config.Prec == 0 {
		config.Prec = 64
	}
	if config.Format == "" {
		config.Format = "%g"
	}
	if config.Samples == nil {
		config.Samples = append([]string(nil), DefaultSamples...)
	}
}

// loadEnvFiles loads .env if it exists.
func loadEnvFiles() error {
	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return nil
}

var (
	bracedVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
	return bareVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.Mode = expandEnvVars(config.Mode)
	config.Engine = expandEnvVars(config.Engine)
	config.Format = expandEnvVars(config.Format)
	for i, s := range config.Samples {
		config.Samples[i] = expandEnvVars(s)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
