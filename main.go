// ABOUTME: Entry point for the DTMF tone generator
// ABOUTME: Parses CLI flags, renders tone.wav and optionally plays it
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/twe4ked/phreaking/internal/app"
	"github.com/twe4ked/phreaking/internal/config"
	"github.com/twe4ked/phreaking/internal/logging"
	"github.com/twe4ked/phreaking/internal/version"
	"github.com/twe4ked/phreaking/pkg/audio"
	"github.com/twe4ked/phreaking/pkg/dtmf"
)

var (
	outputPath  = flag.String("o", config.DefaultOutput, "Output WAV file path")
	truncate    = flag.Bool("truncate", false, "Truncate samples toward zero instead of rounding")
	play        = flag.Bool("play", false, "Play the sequence after writing it")
	volume      = flag.Int("volume", 100, "Playback volume (0-100)")
	useTUI      = flag.Bool("tui", false, "Show the keypad while playing (requires -play)")
	title       = flag.String("title", "", "Title stored in the WAV INFO chunk")
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [0123456789ABCD*#]\n\n", version.Product)
		fmt.Fprintf(flag.CommandLine.Output(), "Without symbols, every key is swept in keypad order.\n\n")
		flag.PrintDefaults()
	}
	// CommandLine exits on a parse error
	args, _ := parseArgs(flag.CommandLine, os.Args[1:])

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if len(args) > 1 {
		flag.Usage()
		os.Exit(exitUsage)
	}

	cfg := config.Default()
	cfg.Output = *outputPath
	cfg.Play = *play
	cfg.Volume = *volume
	cfg.TUI = *useTUI
	cfg.Title = *title
	cfg.LogLevel = *logLevel
	if *truncate {
		cfg.Quantize = audio.QuantizeTruncate
	}
	if len(args) == 1 {
		cfg.Input = args[0]
		cfg.HasInput = true
	}

	if err := cfg.Validate(); err != nil {
		// Use stderr before logger is initialized
		fmt.Fprintf(os.Stderr, "%s: %v\n", version.Product, err)
		flag.Usage()
		os.Exit(exitUsage)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := app.New(cfg, logger).Run(ctx)
	if err != nil {
		logger.Error("failed to generate tones", zap.Error(err))
		_ = logger.Sync()
		if errors.Is(err, dtmf.ErrInvalidSymbol) {
			os.Exit(exitUsage)
		}
		os.Exit(exitFailure)
	}

	logger.Info("done",
		zap.String("path", result.Path),
		zap.String("mode", string(result.Mode)),
		zap.Int("symbols", len(result.Symbols)),
		zap.Int64("data_bytes", result.Info.DataBytes),
		zap.Duration("duration", result.Info.Duration),
		zap.Bool("interrupted", result.Interrupted),
	)
}

// parseArgs parses fs from args, accepting flags after the symbols as well as
// before them, and returns the positional arguments in order
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}
