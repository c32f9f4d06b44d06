package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultConfigPaths returns the search order for config files.
func DefaultConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "alignpipe", "config.yaml"))
	}
	paths = append(paths, "/etc/alignpipe/config.yaml")
	return paths
}

// Resolve loads the config from the given explicit path, or searches the
// default locations. No config file at all yields Default.
func Resolve(explicit string) (*Config, error) {
	path, err := findConfig(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func findConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultConfigPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// Prepare validates the config, resolves the report path, fills zero values
// with defaults and creates the output directory. It must run before any
// stage starts.
func (c *Config) Prepare() error {
	if c.Pipeline.Threads == 0 {
		c.Pipeline.Threads = DefaultThreads
	}
	if c.Sampling.Interval <= 0 {
		c.Sampling.Interval = Duration(DefaultInterval)
	}

	if err := validate(c); err != nil {
		return err
	}

	c.Pipeline.Report = ReportPath(c.Pipeline.OutputDir, c.Pipeline.Report)

	if err := os.MkdirAll(c.Pipeline.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// ReportPath places the report inside outputDir unless the given path
// already carries a directory component.
func ReportPath(outputDir, report string) string {
	switch {
	case report == "":
		return filepath.Join(outputDir, DefaultReportName)
	case filepath.Dir(report) == ".":
		if strings.HasPrefix(report, "."+string(filepath.Separator)) {
			return report
		}
		return filepath.Join(outputDir, report)
	default:
		return report
	}
}

// SampleInterval returns the sampling cadence as a time.Duration.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.Sampling.Interval)
}

var structValidator = newValidator()

// newValidator reports field names by their yaml keys.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	return v
}

func validate(c *Config) error {
	err := structValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "file":
		return fmt.Sprintf("%s not found: %v", name, fe.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be >= %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", name, fe.Tag())
	}
}
