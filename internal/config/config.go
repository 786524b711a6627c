// ABOUTME: Run configuration for the tone generator
// ABOUTME: Holds CLI-derived settings and validates them before any output
package config

import (
	"errors"
	"path/filepath"

	"github.com/twe4ked/phreaking/pkg/audio"
	"github.com/twe4ked/phreaking/pkg/dtmf"
)

// DefaultOutput is where the waveform is written when -o is not given
const DefaultOutput = "tone.wav"

// ErrEmptyInput is returned for an explicit but empty symbol argument
var ErrEmptyInput = errors.New("symbol argument is empty")

// Config holds all run settings
type Config struct {
	// Input settings
	Input    string
	HasInput bool

	// Output settings
	Output   string
	Quantize audio.Quantization
	Title    string

	// Playback settings
	Play   bool
	Volume int
	TUI    bool

	// Logging settings
	LogLevel string
}

// Default returns the settings used when no flags are given
func Default() *Config {
	return &Config{
		Output:   DefaultOutput,
		Quantize: audio.QuantizeRound,
		Volume:   100,
		LogLevel: "info",
	}
}

// Mode reports keyed mode when a symbol argument was given, demo otherwise
func (c *Config) Mode() dtmf.Mode {
	if c.HasInput {
		return dtmf.ModeKeyed
	}
	return dtmf.ModeDemo
}

// Validate checks that settings are usable
func (c *Config) Validate() error {
	if c.HasInput && c.Input == "" {
		return ErrEmptyInput
	}

	if c.Output == "" {
		return errors.New("output path must not be empty")
	}
	if base := filepath.Base(c.Output); base == "." || base == string(filepath.Separator) {
		return errors.New("output path must name a file")
	}

	if c.Quantize != audio.QuantizeRound && c.Quantize != audio.QuantizeTruncate {
		return errors.New("quantization must be round or truncate")
	}

	if c.Volume < 0 || c.Volume > 100 {
		return errors.New("volume must be between 0 and 100")
	}

	if c.TUI && !c.Play {
		return errors.New("-tui requires -play")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return errors.New("log level must be one of: debug, info, warn, error")
	}

	return nil
}
