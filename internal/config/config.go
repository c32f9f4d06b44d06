package config

import (
	"fmt"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"github.com/goccy/go-yaml"
)

// Artifact names inside the output directory.
const (
	DefaultReportName = "report.txt"
	DefaultThreads    = 4
	DefaultMemoryGB   = 16
	DefaultInterval   = time.Second
)

type Config struct {
	Pipeline Pipeline       `yaml:"pipeline"`
	Tools    Tools          `yaml:"tools"`
	Budget   ResourceBudget `yaml:"budget"`
	Sampling Sampling       `yaml:"sampling"`
	Notify   []NotifyTarget `yaml:"notify" validate:"dive"`
}

// Pipeline is the per-run input. Read2 empty means a single-ended run.
type Pipeline struct {
	Read1             string `yaml:"read1" validate:"required,file"`
	Read2             string `yaml:"read2" validate:"omitempty,file"`
	Reference         string `yaml:"reference" validate:"required,file"`
	OutputDir         string `yaml:"output_dir" validate:"required"`
	Threads           int    `yaml:"threads" validate:"min=1"`
	Report            string `yaml:"report"`
	KeepIntermediates bool   `yaml:"keep_intermediates"`
}

// Paired reports whether a second reads file was given.
func (p Pipeline) Paired() bool { return p.Read2 != "" }

// Tools names the external executables. Bare names are looked up in PATH.
type Tools struct {
	Aligner  string `yaml:"aligner" validate:"required"`
	Samtools string `yaml:"samtools" validate:"required"`
}

// ResourceBudget is the address-space ceiling applied once at start-up.
// It also serves as the peak-memory warning threshold.
type ResourceBudget struct {
	MemoryLimitGB float64 `yaml:"memory_limit_gb" validate:"gte=0"`
}

// MemoryLimitMB returns the ceiling in megabytes, or 0 when unlimited.
func (b ResourceBudget) MemoryLimitMB() float64 {
	return b.MemoryLimitGB * 1024
}

// MemoryLimitBytes returns the ceiling in bytes, or 0 when unlimited.
func (b ResourceBudget) MemoryLimitBytes() uint64 {
	return uint64(b.MemoryLimitGB * 1024 * 1024 * 1024)
}

type Sampling struct {
	Interval Duration `yaml:"interval"`
}

// Duration accepts Go duration strings ("1s", "500ms") in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return fmt.Errorf("duration: must be a string like 1s or 500ms")
	}
	parsed, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = Duration(parsed)
	return nil
}

// NotifyTarget handles a plain URL string or an object with a template override.
type NotifyTarget struct {
	URL      string `yaml:"url" validate:"required"`
	Template string `yaml:"template"`
}

func (n *NotifyTarget) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err == nil {
		n.URL = str
		return nil
	}

	type notifyAlias NotifyTarget
	var obj notifyAlias
	if err := unmarshal(&obj); err != nil {
		return fmt.Errorf("notify: must be a URL string or an object with url/template")
	}
	*n = NotifyTarget(obj)
	return nil
}

// Default returns a config with every default applied and no inputs set.
func Default() *Config {
	return &Config{
		Pipeline: Pipeline{
			OutputDir: "results",
			Threads:   DefaultThreads,
		},
		Tools: Tools{
			Aligner:  "bwa",
			Samtools: "samtools",
		},
		Budget:   ResourceBudget{MemoryLimitGB: DefaultMemoryGB},
		Sampling: Sampling{Interval: Duration(DefaultInterval)},
	}
}

// Load reads a YAML config on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}
