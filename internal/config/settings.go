package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"harmonize/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Codec is the output codec for lossless sources ("mp3" or "opus").
	Codec string `toml:"codec"`

	// Concurrency bounds how many conversions run at once.
	// Zero means available parallelism.
	Concurrency int `toml:"concurrency"`

	// Exclude lists glob patterns matched against each file's
	// source-relative path; matches are never processed.
	Exclude []string `toml:"exclude"`

	// EncoderOptions are passed through to the encoder. Empty means the
	// codec's defaults.
	EncoderOptions []string `toml:"encoder_options"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"quiet"`

	// SourceDir and TargetDir come from the command line, not the file.
	SourceDir string `toml:"-"`
	TargetDir string `toml:"-"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Codec:       string(model.CodecMP3),
		Concurrency: runtime.NumCPU(),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "harmonize", "config.toml"), nil
}

// Load reads settings from a TOML file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a TOML file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks settings for values no run can proceed with.
func (s *Settings) Validate() error {
	if _, err := model.ParseCodec(s.Codec); err != nil {
		return err
	}
	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", s.Concurrency)
	}
	return nil
}
