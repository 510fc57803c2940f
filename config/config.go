package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete run configuration.
type Config struct {
	// Fraction of optimal growth enforced by flux variability analysis.
	Fraction float64 `yaml:"fraction" validate:"gte=0,lte=1"`

	// Parallelism bounds concurrent fractions in the growth sweep.
	Parallelism int `yaml:"parallelism" validate:"gte=1"`

	// Format selects report output: json or tsv.
	Format string `yaml:"format" validate:"oneof=json tsv"`

	Log    LogConfig    `yaml:"log"`
	Solver SolverConfig `yaml:"solver"`
	Store  StoreConfig  `yaml:"store"`

	// MetricsFile, if set, receives a Prometheus textfile after each run.
	MetricsFile string `yaml:"metrics_file"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// SolverConfig tunes the simplex oracle.
type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance" validate:"gt=0"`
	BoundCap      float64 `yaml:"bound_cap" validate:"gt=0"`
	GeneThreshold float64 `yaml:"gene_threshold" validate:"gte=0,lte=1"`
}

// StoreConfig locates the run database. An empty path disables it.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Fraction:    1.0,
		Parallelism: 1,
		Format:      "json",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Solver: SolverConfig{
			Tolerance:     1e-10,
			BoundCap:      1e6,
			GeneThreshold: 0.01,
		},
	}
}

// Load reads path over Default. Keys absent from the file keep their
// default values. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("Load: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("Load: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and reports the first violation.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("Validate: %s fails %q (got %v): %w", fe.Namespace(), fe.Tag(), fe.Value(), ErrInvalid)
	}
	return fmt.Errorf("Validate: %v: %w", err, ErrInvalid)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
