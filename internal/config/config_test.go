// ABOUTME: Tests for run configuration
// ABOUTME: Tests defaults, mode selection and validation
package config

import (
	"errors"
	"testing"

	"github.com/twe4ked/phreaking/pkg/audio"
	"github.com/twe4ked/phreaking/pkg/dtmf"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output != "tone.wav" {
		t.Errorf("expected output tone.wav, got %s", cfg.Output)
	}
	if cfg.Quantize != audio.QuantizeRound {
		t.Errorf("expected round quantization, got %s", cfg.Quantize)
	}
	if cfg.Volume != 100 {
		t.Errorf("expected volume 100, got %d", cfg.Volume)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestMode(t *testing.T) {
	cfg := Default()
	if cfg.Mode() != dtmf.ModeDemo {
		t.Errorf("expected demo mode without input, got %s", cfg.Mode())
	}

	cfg.Input = "123"
	cfg.HasInput = true
	if cfg.Mode() != dtmf.ModeKeyed {
		t.Errorf("expected keyed mode with input, got %s", cfg.Mode())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"empty input", func(c *Config) { c.HasInput = true }, "symbol argument is empty"},
		{"empty output", func(c *Config) { c.Output = "" }, "output path must not be empty"},
		{"directory output", func(c *Config) { c.Output = "/" }, "output path must name a file"},
		{"bad quantization", func(c *Config) { c.Quantize = audio.Quantization(9) }, "quantization must be round or truncate"},
		{"volume low", func(c *Config) { c.Volume = -1 }, "volume must be between 0 and 100"},
		{"volume high", func(c *Config) { c.Volume = 101 }, "volume must be between 0 and 100"},
		{"tui without play", func(c *Config) { c.TUI = true }, "-tui requires -play"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log level must be one of: debug, info, warn, error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.errMsg {
				t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestValidate_EmptyInputSentinel(t *testing.T) {
	cfg := Default()
	cfg.HasInput = true
	if err := cfg.Validate(); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestValidate_PlaybackWithTUI(t *testing.T) {
	cfg := Default()
	cfg.Play = true
	cfg.TUI = true
	cfg.Volume = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
