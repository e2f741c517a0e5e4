// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package app

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
)

// Default configuration values.
//
const (
	DefaultPresses    = 1000
	DefaultTerminal   = "rx"
	DefaultMaxPresses = 100000
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// ErrInvalidConfig is returned for configuration values out of range.
//
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all the necessary configuration for an App instance to run.
//
type Config struct {
	Input      string // declaration file
	Presses    int    // presses for the pulse totals
	Terminal   string // sink or module analyzed for its first low pulse
	MaxPresses int    // analyzer budget

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns a Config with default values and no input.
//
func DefaultConfig() Config {
	return Config{
		Presses:    DefaultPresses,
		Terminal:   DefaultTerminal,
		MaxPresses: DefaultMaxPresses,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}
}

// NewConfig validates cfg and returns a copy of it.
//
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Input == "" {
		return nil, errors.WithMessage(ErrInvalidConfig, "input is a required configuration field and cannot be empty")
	}
	if cfg.Presses < 0 {
		return nil, errors.WithMessagef(ErrInvalidConfig, "presses must not be negative, got %d", cfg.Presses)
	}
	if cfg.MaxPresses < 1 {
		return nil, errors.WithMessagef(ErrInvalidConfig, "max_presses must be positive, got %d", cfg.MaxPresses)
	}
	if cfg.Terminal == "" {
		return nil, errors.WithMessage(ErrInvalidConfig, "terminal cannot be empty")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.WithMessagef(ErrInvalidConfig, "log level must be 'debug', 'info', 'warn', or 'error', got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.WithMessagef(ErrInvalidConfig, "log format must be 'text' or 'json', got %q", cfg.LogFormat)
	}
	return &cfg, nil
}

// fileConfig is the HCL schema of a run configuration file. Unset attributes
// keep their base value.
//
type fileConfig struct {
	Input      *string   `hcl:"input,optional"`
	Presses    *int      `hcl:"presses,optional"`
	Terminal   *string   `hcl:"terminal,optional"`
	MaxPresses *int      `hcl:"max_presses,optional"`
	Log        *logBlock `hcl:"log,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// evalContext exposes the base configuration to expressions as the "default"
// object, e.g. presses = default.presses * 2.
//
func evalContext(base Config) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default": cty.ObjectVal(map[string]cty.Value{
				"presses":     cty.NumberIntVal(int64(base.Presses)),
				"max_presses": cty.NumberIntVal(int64(base.MaxPresses)),
				"terminal":    cty.StringVal(base.Terminal),
			}),
		},
	}
}

// ParseConfig decodes an HCL run configuration and overlays it on base.
// filename is only used in diagnostics.
//
func ParseConfig(src []byte, filename string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return base, errors.Wrapf(diags, "failed to parse %s", filename)
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, evalContext(base), &fc); diags.HasErrors() {
		return base, errors.Wrapf(diags, "failed to decode %s", filename)
	}

	cfg := base
	setString(&cfg.Input, fc.Input)
	setInt(&cfg.Presses, fc.Presses)
	setString(&cfg.Terminal, fc.Terminal)
	setInt(&cfg.MaxPresses, fc.MaxPresses)
	if fc.Log != nil {
		setString(&cfg.LogLevel, fc.Log.Level)
		setString(&cfg.LogFormat, fc.Log.Format)
	}
	return cfg, nil
}

// LoadConfigFile reads the HCL run configuration at path and overlays it on
// base.
//
func LoadConfigFile(path string, base Config) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrap(err, "failed to read configuration")
	}
	return ParseConfig(src, path, base)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
