package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDSN      = "ITEMPATCH_DSN"
	EnvProfile  = "ITEMPATCH_PROFILE"
	EnvLogLevel = "ITEMPATCH_LOG_LEVEL"
)

type ClientConfig struct {
	Version  int                `yaml:"version" validate:"eq=1"`
	Database DatabaseConfig     `yaml:"database"`
	Items    ItemsConfig        `yaml:"items"`
	Log      LogConfig          `yaml:"log"`
	Profile  string             `yaml:"profile" validate:"required"`
	Profiles map[string]Profile `yaml:"profiles" validate:"min=1,dive,keys,required,notblank,endkeys"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" validate:"required,notblank"`
}

type ItemsConfig struct {
	Path string `yaml:"path" validate:"required,notblank"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Profile holds the per-profile patch settings. Values outside 0-3 are kept
// as written and read back as 0.
type Profile struct {
	NamePatchLevel   int  `yaml:"name_patch_level"`
	CommandPatchMode int  `yaml:"command_patch_mode"`
	SpeedrunOverride bool `yaml:"speedrun_override"`
}

func LoadClientConfig(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading client config: %w", err)
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading client config: %w", err)
	}

	applyEnv(&cfg)

	if err := validateClientConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading client config: %w", err)
	}

	return &cfg, nil
}

// LoadEnv reads a .env file when one is present. Missing files are fine;
// real environment variables take precedence either way.
func LoadEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

func applyEnv(cfg *ClientConfig) {
	if v, ok := os.LookupEnv(EnvDSN); ok && strings.TrimSpace(v) != "" {
		cfg.Database.DSN = v
	}
	if v, ok := os.LookupEnv(EnvProfile); ok && strings.TrimSpace(v) != "" {
		cfg.Profile = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.Log.Level = v
	}
}

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank ships with validator but is not registered by default
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

func validateClientConfig(cfg *ClientConfig) error {
	if err := structValidator.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	if _, ok := cfg.Profiles[cfg.Profile]; !ok {
		return fmt.Errorf("current profile %q is not defined", cfg.Profile)
	}
	return nil
}

// formatValidationError reports the first failing field by its yaml path.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}
	e := validationErrors[0]
	field := strings.ToLower(strings.TrimPrefix(e.Namespace(), "ClientConfig."))
	switch e.Tag() {
	case "required", "notblank":
		return fmt.Errorf("%s is required", field)
	case "eq":
		return fmt.Errorf("unsupported %s: %v", field, e.Value())
	case "min":
		return fmt.Errorf("at least one entry is required in %s", field)
	case "oneof":
		return fmt.Errorf("%s must be one of %s, got %q", field, e.Param(), e.Value())
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}
