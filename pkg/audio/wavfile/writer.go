// ABOUTME: Streaming WAV writer backed by go-audio/wav
// ABOUTME: Buffers int16 samples and finalizes headers atomically on Close
package wavfile

import (
	"errors"
	"fmt"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"github.com/twe4ked/phreaking/pkg/audio"
)

// wavFormatPCM is the RIFF audio format code for integer PCM
const wavFormatPCM = 1

// flushSize is how many samples are buffered before encoding
const flushSize = 8192

// ErrClosed is returned when writing to a finalized or aborted Writer
var ErrClosed = errors.New("wav writer closed")

// IOError reports a failure creating, writing or finalizing a file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Metadata is written as a LIST/INFO chunk after the sample data
type Metadata struct {
	Title    string
	Artist   string
	Comments string
	Software string
}

// Writer streams mono or interleaved 16-bit samples to a WAV file
type Writer struct {
	path    string
	tmp     *renameio.PendingFile
	enc     *wav.Encoder
	format  audio.Format
	buf     *goaudio.IntBuffer
	samples int64
	done    bool
	logger  *zap.Logger
}

// Option configures a Writer
type Option func(*Writer)

// WithLogger attaches a logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Create opens a pending file beside path and prepares an encoder for format.
// The destination is only replaced when Close succeeds.
func Create(path string, format audio.Format, opts ...Option) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	tmp, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644),
	)
	if err != nil {
		return nil, &IOError{Op: "create", Path: path, Err: err}
	}

	w := &Writer{
		path:   path,
		tmp:    tmp,
		enc:    wav.NewEncoder(tmp, format.SampleRate, format.BitDepth, format.Channels, wavFormatPCM),
		format: format,
		buf: &goaudio.IntBuffer{
			Data:           make([]int, 0, flushSize),
			Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
			SourceBitDepth: format.BitDepth,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.logger.Debug("wav writer opened",
		zap.String("path", path),
		zap.String("tmp", tmp.Name()),
		zap.Int("sample_rate", format.SampleRate),
		zap.Int("channels", format.Channels),
		zap.Int("bit_depth", format.BitDepth),
	)

	return w, nil
}

// SetMetadata attaches INFO tags written when the file is finalized
func (w *Writer) SetMetadata(md Metadata) {
	if md == (Metadata{}) {
		w.enc.Metadata = nil
		return
	}
	w.enc.Metadata = &wav.Metadata{
		Title:    md.Title,
		Artist:   md.Artist,
		Comments: md.Comments,
		Software: md.Software,
	}
}

// Path returns the destination path
func (w *Writer) Path() string { return w.path }

// Samples returns how many samples have been accepted so far
func (w *Writer) Samples() int64 { return w.samples }

// WriteSample appends one sample
func (w *Writer) WriteSample(v int16) error {
	if w.done {
		return ErrClosed
	}
	return w.add(v)
}

// Write appends samples in order
func (w *Writer) Write(samples []int16) error {
	if w.done {
		return ErrClosed
	}
	for _, v := range samples {
		if err := w.add(v); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) add(v int16) error {
	w.buf.Data = append(w.buf.Data, int(v))
	w.samples++
	if len(w.buf.Data) >= flushSize {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	if len(w.buf.Data) == 0 {
		return nil
	}
	if err := w.enc.Write(w.buf); err != nil {
		return &IOError{Op: "write", Path: w.path, Err: err}
	}
	w.buf.Data = w.buf.Data[:0]
	return nil
}

// Close finalizes the container headers, syncs, and atomically replaces the destination.
// It runs at most once; later calls return nil.
func (w *Writer) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	if err := w.finalize(); err != nil {
		w.discard()
		return err
	}

	if err := w.tmp.CloseAtomicallyReplace(); err != nil {
		w.discard()
		return &IOError{Op: "rename", Path: w.path, Err: err}
	}

	w.logger.Info("wav file written",
		zap.String("path", w.path),
		zap.Int64("samples", w.samples),
		zap.Duration("duration", w.format.Duration(int(w.samples/int64(w.format.Channels)))),
	)

	return nil
}

// Abort discards everything written. It is a no-op after Close.
func (w *Writer) Abort() {
	if w.done {
		return
	}
	w.done = true
	w.discard()
	w.logger.Debug("wav writer aborted", zap.String("path", w.path))
}

func (w *Writer) finalize() error {
	// An empty buffer still emits the fmt and data chunk headers
	if w.samples == 0 {
		if err := w.enc.Write(w.buf); err != nil {
			return &IOError{Op: "write", Path: w.path, Err: err}
		}
	}
	if err := w.flush(); err != nil {
		return err
	}
	if err := w.enc.Close(); err != nil {
		return &IOError{Op: "finalize", Path: w.path, Err: err}
	}
	return nil
}

func (w *Writer) discard() {
	if err := w.tmp.Cleanup(); err != nil {
		w.logger.Warn("failed to remove pending file", zap.String("tmp", w.tmp.Name()), zap.Error(err))
	}
}
