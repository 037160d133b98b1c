package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/evalexpr"
)

// Config holds the settings that may come from a config file. Flags given on
// the command line take precedence over the file.
type Config struct {
	// Precision is the precision of calculations in bits.
	Precision uint `yaml:"precision"`
	// Format is the fmt verb used to print results.
	Format string `yaml:"format"`
	// Group inserts thousands separators into results.
	Group bool `yaml:"group"`
	// Color is "auto", "always", or "never".
	Color string `yaml:"color"`
	// Jobs is the number of expressions evaluated at once.
	Jobs int `yaml:"jobs"`
	// MaxDepth is the nesting limit for expressions.
	MaxDepth int `yaml:"max_depth"`
	// Strict disables unary operators.
	Strict bool `yaml:"strict"`
}

// DefaultConfig returns the configuration used when there is no config file.
func DefaultConfig() Config {
	return Config{
		Precision: evalexpr.DefaultPrec,
		Format:    "%g",
		Color:     "auto",
		Jobs:      1,
		MaxDepth:  evalexpr.DefaultMaxDepth,
	}
}

// defaultConfigPath returns the config file used when --config is not given,
// or the empty string if there is no user config directory.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "evalexpr", "config.yaml")
}

// LoadConfig reads a config file over the defaults. A missing file is an
// error only if required is true.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Validate reports every invalid setting in the config.
func (c Config) Validate() error {
	var errs *multierror.Error
	if c.Precision == 0 {
		errs = multierror.Append(errs, fmt.Errorf("precision must be positive"))
	}
	if c.Format == "" {
		errs = multierror.Append(errs, fmt.Errorf("format must not be empty"))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs = multierror.Append(errs, fmt.Errorf("color must be auto, always, or never, not %q", c.Color))
	}
	if c.Jobs < 1 {
		errs = multierror.Append(errs, fmt.Errorf("jobs (%d) must be at least 1", c.Jobs))
	}
	if c.MaxDepth < 1 {
		errs = multierror.Append(errs, fmt.Errorf("max depth (%d) must be at least 1", c.MaxDepth))
	}
	return errs.ErrorOrNil()
}

// Override replaces settings with the values of flags that were set
// explicitly.
func (c Config) Override(flags *pflag.FlagSet, opts *options) Config {
	if flags.Changed("prec") {
		c.Precision = opts.prec
	}
	if flags.Changed("fmt") {
		c.Format = opts.format
	}
	if flags.Changed("group") {
		c.Group = opts.group
	}
	if flags.Changed("color") {
		c.Color = opts.color
	}
	if flags.Changed("jobs") {
		c.Jobs = opts.jobs
	}
	if flags.Changed("max-depth") {
		c.MaxDepth = opts.maxDepth
	}
	if flags.Changed("strict") {
		c.Strict = opts.strict
	}
	return c
}

// parseOptions returns the parse options the config describes.
func (c Config) parseOptions() evalexpr.ParseOption {
	opts := []evalexpr.ParseOption{evalexpr.MaxDepth(c.MaxDepth)}
	if c.Strict {
		opts = append(opts, evalexpr.DisableUnary())
	}
	return evalexpr.ParsingPreset(opts...)
}
