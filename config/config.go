// Package config loads the settings of the cfgbin command.
//
// A configuration file is optional. When present it is decoded on top of Default, so a
// file only needs the keys it changes. The decoder is chosen by file extension:
//
//   - .yaml, .yml: YAML
//   - .toml: TOML
//   - .json, .jsonc: JSON, with comments and trailing commas allowed
//
// Unknown keys are rejected so that a typo never silently falls back to a default.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/cfgbin/errs"
	"github.com/arloliu/cfgbin/format"
)

// MaxIndent is the widest accepted document indentation.
const MaxIndent = 8

var logFormats = []string{"text", "json"}

// Config is the complete cfgbin configuration.
type Config struct {
	// Output controls the exported documents.
	Output Output `yaml:"output" toml:"output" json:"output"`

	// Log controls diagnostics on stderr.
	Log Log `yaml:"log" toml:"log" json:"log"`

	// Jobs is the number of files decoded concurrently. Zero uses one job per CPU.
	Jobs int `yaml:"jobs" toml:"jobs" json:"jobs"`
}

// Output configures export documents.
type Output struct {
	// Format is the document encoding: json, yaml or cbor.
	Format string `yaml:"format" toml:"format" json:"format"`

	// Compression is the output codec: none, zstd, s2 or lz4.
	Compression string `yaml:"compression" toml:"compression" json:"compression"`

	// Directory receives the documents. Empty writes each one next to its input.
	Directory string `yaml:"directory" toml:"directory" json:"directory"`

	// Indent is the JSON and YAML indentation width.
	Indent int `yaml:"indent" toml:"indent" json:"indent"`
}

// Log configures the logger.
type Log struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `yaml:"level" toml:"level" json:"level"`

	// Format is the handler: text or json.
	Format string `yaml:"format" toml:"format" json:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output: Output{
			Format:      "json",
			Compression: "none",
			Indent:      2,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := Default()
	if err := cfg.decode(filepath.Ext(path), data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) decode(ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing YAML: %w", err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("parsing TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%w: unknown key %q", errs.ErrInvalidConfig, undecoded[0].String())
		}
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return fmt.Errorf("%w: unsupported config extension %q", errs.ErrInvalidConfig, ext)
	}

	return nil
}

// Validate checks every setting and reports all problems at once.
// Each reported problem wraps errs.ErrInvalidConfig.
func (c *Config) Validate() error {
	var problems []error

	if _, err := format.ParseExportFormat(c.Output.Format); err != nil {
		problems = append(problems, fmt.Errorf("%w: output.format: %w", errs.ErrInvalidConfig, err))
	}

	if _, err := format.ParseCompressionType(c.Output.Compression); err != nil {
		problems = append(problems, fmt.Errorf("%w: output.compression: %w", errs.ErrInvalidConfig, err))
	}

	if c.Output.Indent < 0 || c.Output.Indent > MaxIndent {
		problems = append(problems, fmt.Errorf("%w: output.indent must be between 0 and %d", errs.ErrInvalidConfig, MaxIndent))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		problems = append(problems, fmt.Errorf("%w: log.level: %w", errs.ErrInvalidConfig, err))
	}

	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		problems = append(problems, fmt.Errorf("%w: log.format must be one of %v", errs.ErrInvalidConfig, logFormats))
	}

	if c.Jobs < 0 {
		problems = append(problems, fmt.Errorf("%w: jobs must not be negative", errs.ErrInvalidConfig))
	}

	return errors.Join(problems...)
}

// ExportFormat returns the parsed output format. Call Validate first.
func (c *Config) ExportFormat() format.ExportFormat {
	f, _ := format.ParseExportFormat(c.Output.Format)
	return f
}

// Compression returns the parsed output codec. Call Validate first.
func (c *Config) Compression() format.CompressionType {
	ct, _ := format.ParseCompressionType(c.Output.Compression)
	return ct
}

// LogLevel returns the parsed log level, Info when the level is invalid.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// JSONLogs reports whether logs use the JSON handler.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.Log.Format, "json")
}
