// Package config loads the optional project configuration of record-gen and
// layers command-line flags over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the source directory.
const FileName = ".record-gen.yaml"

// Config is the project configuration.
type Config struct {
	Runtime string        `yaml:"runtime"` // Import path prefix of the is and record packages
	Output  string        `yaml:"output"`  // Output directory, relative to the source directory
	Package string        `yaml:"package"`
	Method  string        `yaml:"method"` // Equality method name for the equals subtool
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads the configuration at path over Defaults. A missing file is not
// an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read file %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse yaml %s: %w", path, err)
	}
	return Merge(cfg, file)
}

// Find returns the configuration file for a source directory: explicit when
// set, otherwise FileName inside dir.
func Find(dir, explicit string) (path string, required bool) {
	if explicit != "" {
		return explicit, true
	}
	return filepath.Join(dir, FileName), false
}

// Merge returns base with every non-empty value of override applied.
func Merge(base, override Config) (Config, error) {
	out := base
	if err := copier.CopyWithOption(&out, &override, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		return Config{}, fmt.Errorf("merging config: %w", err)
	}
	return out, nil
}
