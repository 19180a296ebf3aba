package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/markuid/internal/uid"
	"github.com/vvka-141/markuid/pkg/markuid"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override file values. Flags override both.
const (
	EnvWorkers         = "MARKUID_WORKERS"
	EnvIntermediateDir = "MARKUID_INTERMEDIATE_DIR"
)

// UidConfig names the identifier attribute and how new values are formed.
type UidConfig struct {
	Namespace     string `yaml:"namespace,omitempty"`
	Attribute     string `yaml:"attribute,omitempty"`
	NameAttribute string `yaml:"name_attribute,omitempty"`
	Prefix        string `yaml:"prefix,omitempty"`
	Separator     string `yaml:"separator,omitempty"`
	Fallback      string `yaml:"fallback,omitempty"`
}

type ProjectConfig struct {
	Include         []string  `yaml:"include,omitempty"`
	Exclude         []string  `yaml:"exclude,omitempty"`
	IntermediateDir string    `yaml:"intermediate_dir,omitempty"`
	Workers         int       `yaml:"workers,omitempty"`
	Uid             UidConfig `yaml:"uid,omitempty"`
}

const ConfigFileName = markuid.ConfigFileName

// Default returns the configuration used when no file is present.
func Default() *ProjectConfig {
	opts := uid.DefaultOptions()
	return &ProjectConfig{
		Include:         append([]string(nil), markuid.DefaultInclude...),
		Exclude:         append([]string(nil), markuid.DefaultExclude...),
		IntermediateDir: markuid.DefaultIntermediateDir,
		Workers:         markuid.DefaultWorkers,
		Uid: UidConfig{
			Namespace:     opts.Namespace,
			Attribute:     opts.Attribute,
			NameAttribute: opts.NameAttribute,
			Prefix:        opts.Prefix,
			Separator:     opts.Separator,
			Fallback:      opts.Fallback,
		},
	}
}

// Load reads markuid.yaml from sourcePath exactly as written. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %v: %w", configPath, err, markuid.ErrInvalidConfig)
	}
	return &cfg, nil
}

// WithDefaults returns a copy where every unset field takes its default.
func (c *ProjectConfig) WithDefaults() *ProjectConfig {
	d := Default()
	out := *c
	out.Include = append([]string(nil), c.Include...)
	out.Exclude = append([]string(nil), c.Exclude...)

	if len(out.Include) == 0 {
		out.Include = d.Include
	}
	if c.Exclude == nil {
		out.Exclude = d.Exclude
	}
	if out.IntermediateDir == "" {
		out.IntermediateDir = d.IntermediateDir
	}
	if out.Workers == 0 {
		out.Workers = d.Workers
	}

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&out.Uid.Namespace, d.Uid.Namespace)
	fill(&out.Uid.Attribute, d.Uid.Attribute)
	fill(&out.Uid.NameAttribute, d.Uid.NameAttribute)
	fill(&out.Uid.Prefix, d.Uid.Prefix)
	fill(&out.Uid.Separator, d.Uid.Separator)
	fill(&out.Uid.Fallback, d.Uid.Fallback)
	return &out
}

// ApplyEnv overrides fields from environment variables read through lookup
// (os.LookupEnv in production).
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvWorkers); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q is not a number: %w", EnvWorkers, v, markuid.ErrInvalidConfig)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvIntermediateDir); ok && strings.TrimSpace(v) != "" {
		c.IntermediateDir = strings.TrimSpace(v)
	}
	return nil
}

// Validate checks the resolved configuration.
// It returns a multi-error if multiple validation failures occur.
func (c *ProjectConfig) Validate() error {
	var errs []error

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, markuid.ErrInvalidConfig))
	}
	if c.IntermediateDir == "" {
		errs = append(errs, fmt.Errorf("intermediate_dir is required: %w", markuid.ErrInvalidConfig))
	}
	if len(c.Include) == 0 {
		errs = append(errs, fmt.Errorf("at least one include pattern is required: %w", markuid.ErrInvalidConfig))
	}
	if err := c.Options().Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Options converts the uid block into engine options.
func (c *ProjectConfig) Options() uid.Options {
	return uid.Options{
		Namespace:     c.Uid.Namespace,
		Attribute:     c.Uid.Attribute,
		NameAttribute: c.Uid.NameAttribute,
		Prefix:        c.Uid.Prefix,
		Separator:     c.Uid.Separator,
		Fallback:      c.Uid.Fallback,
	}
}

// ResolveIntermediateDir returns the intermediate directory, made absolute
// against projectRoot when relative.
func (c *ProjectConfig) ResolveIntermediateDir(projectRoot string) string {
	if filepath.IsAbs(c.IntermediateDir) {
		return filepath.Clean(c.IntermediateDir)
	}
	return filepath.Join(projectRoot, c.IntermediateDir)
}
