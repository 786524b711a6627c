// ABOUTME: Sequence assembler laying DTMF tones out in time
// ABOUTME: Keyed (per-input) and demo (alphabet sweep) modes over one renderer
package dtmf

import (
	"fmt"
	"io"
	"time"

	"github.com/twe4ked/phreaking/pkg/audio"
)

const (
	// KeyedTone is how long each key sounds in keyed mode
	KeyedTone = 100 * time.Millisecond
	// KeyedGap is the silence after each key in keyed mode
	KeyedGap = 100 * time.Millisecond

	// DemoTone is how long each key sounds in the alphabet sweep
	DemoTone = 150 * time.Millisecond
	// DemoWindow is where each sweep block stops, tone included
	DemoWindow = 250 * time.Millisecond

	// BatchSize is how many samples Render hands the writer at once
	BatchSize = 4096
)

// SampleWriter consumes rendered samples in order
type SampleWriter interface {
	Write(samples []int16) error
}

// Mode names how a Sequence was built
type Mode string

const (
	ModeKeyed Mode = "keyed"
	ModeDemo  Mode = "demo"
)

// Sequence renders symbols as tone blocks separated by silence
type Sequence struct {
	Mode    Mode
	Symbols []Symbol
	// ToneSamples is the length of each tone, GapSamples the silence after it
	ToneSamples int
	GapSamples  int
	SampleRate  int
	Quantize    audio.Quantization
	// Windowed evaluates each block as one time-windowed function instead of tone then silence
	Windowed bool
	// OnSymbol, if set, is called as each block starts streaming
	OnSymbol func(index int, s Symbol)
}

// Keyed builds the per-input sequence: 100ms of tone then 100ms of silence per symbol
func Keyed(symbols []Symbol, sampleRate int) *Sequence {
	return &Sequence{
		Mode:        ModeKeyed,
		Symbols:     symbols,
		ToneSamples: sampleRate / 10,
		GapSamples:  sampleRate / 10,
		SampleRate:  sampleRate,
	}
}

// Demo builds the alphabet sweep: every symbol in index order, 150ms tone, 100ms silence
func Demo(sampleRate int) *Sequence {
	format := audio.Format{SampleRate: sampleRate}
	tone := format.Samples(DemoTone)
	return &Sequence{
		Mode:        ModeDemo,
		Symbols:     Alphabet(),
		ToneSamples: tone,
		GapSamples:  format.Samples(DemoWindow) - tone,
		SampleRate:  sampleRate,
		Windowed:    true,
	}
}

// Validate checks the sequence can be rendered
func (s *Sequence) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", s.SampleRate)
	}
	if s.ToneSamples < 0 || s.GapSamples < 0 {
		return fmt.Errorf("invalid block lengths: tone=%d gap=%d", s.ToneSamples, s.GapSamples)
	}
	for i, sym := range s.Symbols {
		if !sym.Valid() {
			return fmt.Errorf("symbol %d out of range at position %d", sym, i)
		}
	}
	return nil
}

// BlockLen returns the samples one symbol occupies, tone plus gap
func (s *Sequence) BlockLen() int {
	return s.ToneSamples + s.GapSamples
}

// Len returns the total samples the sequence renders
func (s *Sequence) Len() int {
	return len(s.Symbols) * s.BlockLen()
}

// Duration returns the playing time of the whole sequence
func (s *Sequence) Duration() time.Duration {
	return audio.Format{SampleRate: s.SampleRate}.Duration(s.Len())
}

// Block returns the samples for one symbol
func (s *Sequence) Block(sym Symbol) Stream {
	if s.Windowed {
		return NewWindow(sym.Pair(), s.ToneSamples, s.BlockLen(), s.SampleRate, s.Quantize)
	}
	return Concat(
		NewTone(sym.Pair(), s.ToneSamples, s.SampleRate, s.Quantize),
		NewSilence(s.GapSamples),
	)
}

// Stream returns the whole sequence as one lazy stream
func (s *Sequence) Stream() Stream {
	return &sequenceStream{seq: s}
}

// Render streams every sample to w in batches and returns how many were written
func (s *Sequence) Render(w SampleWriter) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	stream := s.Stream()
	buf := make([]int16, BatchSize)
	written := 0

	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if werr := w.Write(buf[:n]); werr != nil {
				return written, fmt.Errorf("failed to write samples: %w", werr)
			}
			written += n
		}
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}

type sequenceStream struct {
	seq  *Sequence
	next int
	cur  Stream
}

func (ss *sequenceStream) Read(samples []int16) (int, error) {
	total := 0
	for total < len(samples) {
		if ss.cur == nil {
			if ss.next >= len(ss.seq.Symbols) {
				break
			}
			sym := ss.seq.Symbols[ss.next]
			ss.cur = ss.seq.Block(sym)
			if ss.seq.OnSymbol != nil {
				ss.seq.OnSymbol(ss.next, sym)
			}
			ss.next++
		}

		n, err := ss.cur.Read(samples[total:])
		total += n
		if err == io.EOF {
			ss.cur = nil
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

func (ss *sequenceStream) Remaining() int {
	n := (len(ss.seq.Symbols) - ss.next) * ss.seq.BlockLen()
	if ss.cur != nil {
		n += ss.cur.Remaining()
	}
	return n
}
