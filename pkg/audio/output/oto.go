// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams int16 PCM to the sound card with software volume control
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/twe4ked/phreaking/pkg/audio"
)

// drainPoll is how often Close checks whether the player has gone quiet
const drainPoll = 10 * time.Millisecond

// Oto output implementation using oto library
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	volume     int
	ready      bool
	logger     *zap.Logger
}

// NewOto creates a new Oto output
func NewOto(logger *zap.Logger) *Oto {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Oto{
		volume: 100,
		logger: logger,
	}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	if o.ready {
		return fmt.Errorf("output already open")
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	// Create pipe for continuous streaming
	o.pipeReader, o.pipeWriter = io.Pipe()

	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	o.logger.Info("audio output initialized",
		zap.Int("sample_rate", sampleRate),
		zap.Int("channels", channels),
	)

	return nil
}

// Write outputs audio samples (blocks until the player has taken them)
func (o *Oto) Write(samples []int16) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	scaled := applyVolume(samples, o.volume)

	out := make([]byte, len(scaled)*2)
	audio.PutInt16LE(out, scaled)

	if _, err := o.pipeWriter.Write(out); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close drains queued audio, then releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		// EOF on the pipe lets the player run out naturally
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		for o.player.IsPlaying() {
			time.Sleep(drainPoll)
		}
		if err := o.player.Close(); err != nil {
			o.logger.Warn("failed to close player", zap.Error(err))
		}
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			o.logger.Warn("failed to suspend audio context", zap.Error(err))
		}
	}
	o.ready = false
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
	o.logger.Debug("volume set", zap.Int("volume", volume))
}

// applyVolume scales samples by volume percent with clipping protection
func applyVolume(samples []int16, volume int) []int16 {
	if volume == 100 {
		return samples
	}

	multiplier := float64(volume) / 100.0
	result := make([]int16, len(samples))
	for i, sample := range samples {
		result[i] = audio.ClampInt16(float64(sample) * multiplier)
	}

	return result
}
