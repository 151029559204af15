// Package config loads the optional .ktfmt.toml project configuration file
// named in spec.md §6.2, using github.com/BurntSushi/toml — the same
// decoding style the rest of the corpus reaches for whenever it needs a
// human-editable config file rather than a generated one.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file ktfmt looks for, starting at the
// formatted file's directory and walking up to the filesystem root.
const FileName = ".ktfmt.toml"

// Config holds the subset of Formatter construction parameters a project can
// override. Zero values mean "not set"; Load leaves them zero so callers can
// layer CLI flags, then Config, then built-in defaults.
type Config struct {
	MaxLineLength      int `toml:"max_line_length"`
	StandardIndent     int `toml:"standard_indent"`
	ContinuationIndent int `toml:"continuation_indent"`
}

// Error wraps a malformed configuration file (spec.md's ConfigurationError).
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return "ktfmt: invalid config " + e.Path + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Load searches dir and its ancestors for FileName and decodes the first one
// found. It returns a zero Config, not an error, if none exists anywhere up
// to the filesystem root.
func Load(dir string) (Config, error) {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return decode(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Config{}, nil
		}
		dir = parent
	}
}

func decode(path string) (Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, &Error{Path: path, Err: err}
	}
	return c, nil
}

// Defaults holds ktfmt's built-in layout parameters, used whenever neither a
// CLI flag nor a project Config supplies a value.
var Defaults = Config{
	MaxLineLength:      100,
	StandardIndent:     4,
	ContinuationIndent: 8,
}

// Merge layers override on top of base: any non-zero field in override wins.
func Merge(base, override Config) Config {
	out := base
	if override.MaxLineLength != 0 {
		out.MaxLineLength = override.MaxLineLength
	}
	if override.StandardIndent != 0 {
		out.StandardIndent = override.StandardIndent
	}
	if override.ContinuationIndent != 0 {
		out.ContinuationIndent = override.ContinuationIndent
	}
	return out
}
