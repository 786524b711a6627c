// ABOUTME: Tone generator application orchestration
// ABOUTME: Validates input, renders the sequence to WAV and optionally plays it
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/twe4ked/phreaking/internal/config"
	"github.com/twe4ked/phreaking/internal/ui"
	"github.com/twe4ked/phreaking/internal/version"
	"github.com/twe4ked/phreaking/pkg/audio"
	"github.com/twe4ked/phreaking/pkg/audio/output"
	"github.com/twe4ked/phreaking/pkg/audio/wavfile"
	"github.com/twe4ked/phreaking/pkg/dtmf"
)

// Result summarizes a completed run
type Result struct {
	Path    string
	Mode    dtmf.Mode
	Symbols []dtmf.Symbol
	Samples int
	Info    wavfile.Info
	// Interrupted is set when playback was stopped early; the file is still complete
	Interrupted bool
}

// App renders DTMF sequences
type App struct {
	config    *config.Config
	format    audio.Format
	logger    *zap.Logger
	newOutput func() output.Output
}

// Option configures an App
type Option func(*App)

// WithOutput replaces the playback backend
func WithOutput(newOutput func() output.Output) Option {
	return func(a *App) {
		a.newOutput = newOutput
	}
}

// New creates an app for cfg
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		config: cfg,
		format: audio.DefaultFormat(),
		logger: logger,
	}
	a.newOutput = func() output.Output { return output.NewOto(a.logger) }
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sequence builds the sequence for the configured mode.
// Keyed input is validated in full here, before anything touches the disk.
func (a *App) Sequence() (*dtmf.Sequence, error) {
	var seq *dtmf.Sequence
	switch a.config.Mode() {
	case dtmf.ModeKeyed:
		symbols, err := dtmf.ParseSequence(a.config.Input)
		if err != nil {
			return nil, err
		}
		seq = dtmf.Keyed(symbols, a.format.SampleRate)
	default:
		seq = dtmf.Demo(a.format.SampleRate)
	}
	seq.Quantize = a.config.Quantize
	return seq, nil
}

// Run renders the configured sequence to the output file, then plays it if requested
func (a *App) Run(ctx context.Context) (Result, error) {
	if err := a.config.Validate(); err != nil {
		return Result{}, err
	}

	seq, err := a.Sequence()
	if err != nil {
		return Result{}, err
	}

	a.logger.Info("rendering sequence",
		zap.String("mode", string(seq.Mode)),
		zap.String("symbols", dtmf.FormatSequence(seq.Symbols)),
		zap.Int("samples", seq.Len()),
		zap.Duration("duration", seq.Duration()),
		zap.Stringer("quantization", seq.Quantize),
	)

	n, err := a.render(seq)
	if err != nil {
		return Result{}, err
	}

	info, err := wavfile.Inspect(a.config.Output)
	if err != nil {
		return Result{}, fmt.Errorf("failed to verify %s: %w", a.config.Output, err)
	}
	if info.Samples != int64(n) {
		return Result{}, fmt.Errorf("header declares %d samples, wrote %d", info.Samples, n)
	}

	result := Result{
		Path:    a.config.Output,
		Mode:    seq.Mode,
		Symbols: seq.Symbols,
		Samples: n,
		Info:    info,
	}

	if a.config.Play {
		interrupted, err := a.play(ctx, seq)
		if err != nil {
			return result, err
		}
		result.Interrupted = interrupted
	}

	return result, nil
}

// render writes seq to the configured path; nothing is left behind on failure
func (a *App) render(seq *dtmf.Sequence) (int, error) {
	w, err := wavfile.Create(a.config.Output, a.format, wavfile.WithLogger(a.logger))
	if err != nil {
		return 0, err
	}
	defer w.Abort()

	if a.config.Title != "" {
		w.SetMetadata(wavfile.Metadata{
			Title:    a.config.Title,
			Artist:   version.Manufacturer,
			Comments: fmt.Sprintf("DTMF %s sequence %s", seq.Mode, dtmf.FormatSequence(seq.Symbols)),
			Software: version.String(),
		})
	}

	n, err := seq.Render(w)
	if err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return n, nil
}

// volumeSetter is implemented by outputs with software volume
type volumeSetter interface {
	SetVolume(volume int)
}

// play streams seq to the sound card. It reports true if playback was cut short.
func (a *App) play(ctx context.Context, seq *dtmf.Sequence) (bool, error) {
	out := a.newOutput()
	if err := out.Open(a.format.SampleRate, a.format.Channels); err != nil {
		return false, fmt.Errorf("failed to open audio output: %w", err)
	}
	if vs, ok := out.(volumeSetter); ok {
		vs.SetVolume(a.config.Volume)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	playback := *seq
	var tui *tuiSession
	if a.config.TUI {
		tui = startTUI(ui.Options{
			Mode:    seq.Mode,
			Symbols: seq.Symbols,
			Output:  a.config.Output,
			Volume:  a.config.Volume,
		}, cancel)
		playback.OnSymbol = tui.symbol
	} else {
		playback.OnSymbol = func(index int, s dtmf.Symbol) {
			a.logger.Debug("playing", zap.Int("index", index), zap.String("symbol", s.String()))
		}
	}

	_, err := playback.Render(&cancelableWriter{ctx: ctx, out: out})
	closeErr := out.Close()

	interrupted := errors.Is(err, context.Canceled)
	if interrupted {
		err = nil
		a.logger.Info("playback interrupted")
	}
	if err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close audio output: %w", closeErr)
	}

	if tui != nil {
		tui.finish(err)
	}
	return interrupted, err
}

// cancelableWriter stops a render once ctx is done
type cancelableWriter struct {
	ctx context.Context
	out output.Output
}

func (w *cancelableWriter) Write(samples []int16) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	return w.out.Write(samples)
}
