// ABOUTME: Audio type definitions
// ABOUTME: Defines the PCM format, sample quantization and int16 helpers
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

const (
	// DefaultSampleRate is the rate every generated file is written at
	DefaultSampleRate = 44100
	// DefaultChannels is mono
	DefaultChannels = 1
	// DefaultBitDepth is 16-bit signed PCM
	DefaultBitDepth = 16

	// Amplitude is the full-scale value a unit sample is multiplied by
	Amplitude = math.MaxInt16
)

// Format describes a PCM stream
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat returns mono 44.1kHz 16-bit
func DefaultFormat() Format {
	return Format{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		BitDepth:   DefaultBitDepth,
	}
}

// Validate checks the format can be written as signed 16-bit PCM
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", f.Channels)
	}
	if f.BitDepth != 16 {
		return fmt.Errorf("unsupported bit depth: %d (supported: 16)", f.BitDepth)
	}
	return nil
}

// BytesPerSample returns the size of one sample of one channel
func (f Format) BytesPerSample() int {
	return f.BitDepth / 8
}

// BlockAlign returns the size of one frame across all channels
func (f Format) BlockAlign() int {
	return f.Channels * f.BytesPerSample()
}

// Samples returns how many samples span d at the format's rate
func (f Format) Samples(d time.Duration) int {
	return int(int64(f.SampleRate) * int64(d) / int64(time.Second))
}

// Duration returns the playing time of n mono samples
func (f Format) Duration(n int) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(int64(n) * int64(time.Second) / int64(f.SampleRate))
}

// Quantization selects how a scaled float sample becomes an int16
type Quantization int

const (
	// QuantizeRound rounds to the nearest integer, halves away from zero
	QuantizeRound Quantization = iota
	// QuantizeTruncate drops the fractional part (toward zero)
	QuantizeTruncate
)

func (q Quantization) String() string {
	switch q {
	case QuantizeRound:
		return "round"
	case QuantizeTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("quantization(%d)", int(q))
	}
}

// Sample scales a unit-range value to full scale and quantizes it
func (q Quantization) Sample(v float64) int16 {
	scaled := v * Amplitude
	if q == QuantizeTruncate {
		scaled = math.Trunc(scaled)
	} else {
		scaled = math.Round(scaled)
	}
	return ClampInt16(scaled)
}

// ClampInt16 saturates v into the int16 range
func ClampInt16(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// PutInt16LE packs samples little-endian into dst, which must hold 2*len(samples) bytes
func PutInt16LE(dst []byte, samples []int16) {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(s))
	}
}
