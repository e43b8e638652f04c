// Package settings handles the confgen.yaml project file.
package settings

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"confgen/internal/gen"
	"confgen/internal/naming"
)

// FileName is the project file looked up in the working directory.
const FileName = "confgen.yaml"

// CurrentVersion is the current version of the settings file format.
const CurrentVersion = 1

// Settings represents the confgen.yaml project file.
type Settings struct {
	Version     int      `yaml:"version"`
	Packages    []string `yaml:"packages,omitempty"`
	Runtime     string   `yaml:"runtime,omitempty"`
	Parallelism int      `yaml:"parallelism,omitempty"`
	FileSuffix  string   `yaml:"file_suffix,omitempty"`
	Naming      string   `yaml:"naming,omitempty"`
	Comments    *bool    `yaml:"comments,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Version:  CurrentVersion,
		Packages: []string{"./..."},
		Runtime:  gen.DefaultRuntimePath,
	}
}

// Load reads Settings from a file path.
func Load(path string) (*Settings, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var s Settings
	if err := yaml.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// LoadOrDefault reads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Settings, error) {
	s, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return s, err
}

// Save writes the Settings to a file path.
func (s *Settings) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(s)
}

// Validate checks the settings for supported values.
func (s *Settings) Validate() error {
	if s.Version != CurrentVersion {
		return errors.New("unsupported settings version")
	}
	if s.Parallelism < 0 {
		return errors.New("parallelism must not be negative")
	}
	if _, err := s.Pattern(); err != nil {
		return err
	}
	return nil
}

// Pattern parses the default naming pattern.
func (s *Settings) Pattern() (naming.Pattern, error) {
	if s.Naming == "" {
		return naming.Identity, nil
	}
	return naming.ParsePattern(s.Naming)
}

// GeneratorConfig derives the rendering configuration.
func (s *Settings) GeneratorConfig() gen.GeneratorConfig {
	cfg := gen.DefaultGeneratorConfig()
	if s.Runtime != "" {
		cfg.RuntimePath = s.Runtime
	}
	if s.FileSuffix != "" {
		cfg.FileSuffix = s.FileSuffix
	}
	if s.Comments != nil {
		cfg.GenerateComments = *s.Comments
	}
	return cfg
}
