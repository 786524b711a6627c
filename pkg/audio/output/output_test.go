// ABOUTME: Audio output interface tests
// ABOUTME: Verifies Output implementations and volume scaling
package output

import (
	"testing"
)

func TestOtoImplementsOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
}

func TestNewOto(t *testing.T) {
	out := NewOto(nil)
	if out == nil {
		t.Fatal("NewOto returned nil")
	}
	if out.volume != 100 {
		t.Errorf("expected default volume 100, got %d", out.volume)
	}
}

func TestOtoWriteBeforeOpen(t *testing.T) {
	out := NewOto(nil)
	err := out.Write([]int16{1, 2, 3})
	if err == nil {
		t.Fatal("expected error writing to unopened output")
	}
	if err.Error() != "output not initialized" {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestOtoCloseUnopened(t *testing.T) {
	if err := NewOto(nil).Close(); err != nil {
		t.Errorf("closing an unopened output should succeed, got %v", err)
	}
}

func TestSetVolume(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"normal", 50, 50},
		{"zero", 0, 0},
		{"max", 100, 100},
		{"below", -10, 0},
		{"above", 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewOto(nil)
			out.SetVolume(tt.input)
			if out.volume != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, out.volume)
			}
		})
	}
}

func TestApplyVolume(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32767, -32768}

	full := applyVolume(samples, 100)
	for i := range samples {
		if full[i] != samples[i] {
			t.Errorf("full volume changed sample %d: %d -> %d", i, samples[i], full[i])
		}
	}

	half := applyVolume(samples, 50)
	expected := []int16{0, 500, -500, 16383, -16384}
	for i := range expected {
		if half[i] != expected[i] {
			t.Errorf("half volume sample %d: expected %d, got %d", i, expected[i], half[i])
		}
	}

	muted := applyVolume(samples, 0)
	for i, s := range muted {
		if s != 0 {
			t.Errorf("muted sample %d: expected 0, got %d", i, s)
		}
	}
}
