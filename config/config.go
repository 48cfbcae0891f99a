// Package config loads the parser's tunables from a TOML file, the way
// a gotypst.toml project file would configure font paths and project
// root for the teacher's FileWorld. Here it configures the handful of
// knobs syntax.Options exposes plus a couple of CLI-only settings.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dlang-tools/dparse/syntax"
)

// Config is the on-disk shape of a dparse.toml file. Every field mirrors
// a syntax.Options knob or a CLI-only concern; fields the file leaves
// unset fall back to Default().
type Config struct {
	Parser     ParserConfig     `toml:"parser"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

// ParserConfig mirrors syntax.Options.
type ParserConfig struct {
	MinimizeFunctionBodies *bool `toml:"minimize_function_bodies"`
	MaxSuppressedErrors    *int  `toml:"max_suppressed_errors"`
}

// DiagnosticsConfig controls how the CLI reports parse diagnostics;
// these have no equivalent in syntax.Options since they're a presentation
// concern, not a parsing one.
type DiagnosticsConfig struct {
	EmitDeprecationWarnings bool `toml:"emit_deprecation_warnings"`
	MaxDisplayed            int  `toml:"max_displayed"`
}

// Default returns the configuration that applies when no dparse.toml is
// present, derived from syntax.DefaultOptions() plus sensible CLI
// defaults.
func Default() Config {
	defs := syntax.DefaultOptions()
	return Config{
		Parser: ParserConfig{
			MinimizeFunctionBodies: &defs.MinimizeFunctionBodies,
			MaxSuppressedErrors:    &defs.MaxSuppressedErrors,
		},
		Diagnostics: DiagnosticsConfig{
			EmitDeprecationWarnings: true,
			MaxDisplayed:            200,
		},
	}
}

// Load reads a dparse.toml file at path, falling back to Default() field
// by field for anything the file leaves unset. A missing file is not an
// error: Load(Default-path) on a project with no config file behaves
// exactly like Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var onDisk Config
	md, err := toml.Decode(string(data), &onDisk)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if onDisk.Parser.MinimizeFunctionBodies != nil {
		cfg.Parser.MinimizeFunctionBodies = onDisk.Parser.MinimizeFunctionBodies
	}
	if onDisk.Parser.MaxSuppressedErrors != nil {
		cfg.Parser.MaxSuppressedErrors = onDisk.Parser.MaxSuppressedErrors
	}
	if md.IsDefined("diagnostics", "max_displayed") {
		cfg.Diagnostics.MaxDisplayed = onDisk.Diagnostics.MaxDisplayed
	}
	if md.IsDefined("diagnostics", "emit_deprecation_warnings") {
		cfg.Diagnostics.EmitDeprecationWarnings = onDisk.Diagnostics.EmitDeprecationWarnings
	}

	return cfg, nil
}

// ParserOptions converts the loaded configuration into syntax.Options.
func (c Config) ParserOptions() syntax.Options {
	opts := syntax.DefaultOptions()
	if c.Parser.MinimizeFunctionBodies != nil {
		opts.MinimizeFunctionBodies = *c.Parser.MinimizeFunctionBodies
	}
	if c.Parser.MaxSuppressedErrors != nil {
		opts.MaxSuppressedErrors = *c.Parser.MaxSuppressedErrors
	}
	return opts
}
