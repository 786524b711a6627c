// ABOUTME: Lazy sample streams for tones and silence
// ABOUTME: Dual-sinusoid synthesis, zero blocks and windowed tone blocks
package dtmf

import (
	"io"
	"math"

	"github.com/twe4ked/phreaking/pkg/audio"
)

// Stream is a finite, forward-only source of mono samples.
// Read fills samples and returns io.EOF once nothing remains.
type Stream interface {
	Read(samples []int16) (int, error)
	// Remaining returns how many samples are left to read
	Remaining() int
}

// pi32 is π rounded to single precision
const pi32 float32 = math.Pi

// SampleAt evaluates the dual tone for pair at sample index t:
//
//	raw = (sin(2π·low·t/rate) + sin(2π·high·t/rate)) / 2
//
// Truncation is evaluated in single precision, rounding after every step,
// so each sample matches an int16 cast of the float32 pipeline exactly.
func SampleAt(pair Pair, t, sampleRate int, q audio.Quantization) int16 {
	if q == audio.QuantizeTruncate {
		return sampleAt32(pair, t, sampleRate)
	}
	tm := float64(t) / float64(sampleRate)
	low := math.Sin(2 * math.Pi * pair.Low * tm)
	high := math.Sin(2 * math.Pi * pair.High * tm)
	return q.Sample((low + high) / 2)
}

func sampleAt32(pair Pair, t, sampleRate int) int16 {
	tm := float32(t) / float32(sampleRate)
	high := sin32(tm * float32(pair.High) * 2 * pi32)
	low := sin32(tm * float32(pair.Low) * 2 * pi32)
	sample := float32(high+low) / 2
	scaled := float32(sample * audio.Amplitude)
	return audio.ClampInt16(math.Trunc(float64(scaled)))
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// windowStream sounds the pair for the first tone samples, then silence until total
type windowStream struct {
	pair       Pair
	sampleRate int
	quant      audio.Quantization
	tone       int
	total      int
	pos        int
}

// NewTone returns n samples of the dual tone for pair
func NewTone(pair Pair, n, sampleRate int, q audio.Quantization) Stream {
	return NewWindow(pair, n, n, sampleRate, q)
}

// NewWindow returns total samples where t < tone sounds pair and the rest is silent
func NewWindow(pair Pair, tone, total, sampleRate int, q audio.Quantization) Stream {
	if total < 0 {
		total = 0
	}
	if tone > total {
		tone = total
	}
	return &windowStream{
		pair:       pair,
		sampleRate: sampleRate,
		quant:      q,
		tone:       tone,
		total:      total,
	}
}

func (s *windowStream) Read(samples []int16) (int, error) {
	if s.pos >= s.total {
		return 0, io.EOF
	}

	n := min(len(samples), s.total-s.pos)
	for i := 0; i < n; i++ {
		t := s.pos + i
		if t < s.tone {
			samples[i] = SampleAt(s.pair, t, s.sampleRate, s.quant)
		} else {
			samples[i] = 0
		}
	}
	s.pos += n

	return n, nil
}

func (s *windowStream) Remaining() int { return s.total - s.pos }

type silenceStream struct {
	left int
}

// NewSilence returns n zero samples
func NewSilence(n int) Stream {
	if n < 0 {
		n = 0
	}
	return &silenceStream{left: n}
}

func (s *silenceStream) Read(samples []int16) (int, error) {
	if s.left == 0 {
		return 0, io.EOF
	}
	n := min(len(samples), s.left)
	clear(samples[:n])
	s.left -= n
	return n, nil
}

func (s *silenceStream) Remaining() int { return s.left }

type concatStream struct {
	streams []Stream
}

// Concat plays streams back to back
func Concat(streams ...Stream) Stream {
	return &concatStream{streams: streams}
}

func (c *concatStream) Read(samples []int16) (int, error) {
	total := 0
	for total < len(samples) && len(c.streams) > 0 {
		n, err := c.streams[0].Read(samples[total:])
		total += n
		if err == io.EOF {
			c.streams = c.streams[1:]
			continue
		}
		if err != nil {
			return total, err
		}
	}
	if total == 0 && len(samples) > 0 {
		return 0, io.EOF
	}
	return total, nil
}

func (c *concatStream) Remaining() int {
	n := 0
	for _, s := range c.streams {
		n += s.Remaining()
	}
	return n
}

// ReadAll drains s into memory. Intended for short blocks and tests.
func ReadAll(s Stream) ([]int16, error) {
	out := make([]int16, 0, s.Remaining())
	buf := make([]int16, 1024)
	for {
		n, err := s.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
