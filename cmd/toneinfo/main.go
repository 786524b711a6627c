// ABOUTME: Reports the header fields of a WAV file
// ABOUTME: Used to check what the tone generator wrote
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/twe4ked/phreaking/internal/logging"
	"github.com/twe4ked/phreaking/pkg/audio/wavfile"
)

var logLevel = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: toneinfo [flags] FILE...\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.New(*logLevel)
	defer func() { _ = logger.Sync() }()

	failed := false
	for _, path := range flag.Args() {
		info, err := wavfile.Inspect(path)
		if err != nil {
			logger.Error("failed to inspect", zap.String("path", path), zap.Error(err))
			failed = true
			continue
		}
		printInfo(os.Stdout, path, info)
	}

	if failed {
		os.Exit(1)
	}
}

func printInfo(w io.Writer, path string, info wavfile.Info) {
	fmt.Fprintf(w, "%s:\n", path)
	fmt.Fprintf(w, "  channels:     %d\n", info.Format.Channels)
	fmt.Fprintf(w, "  sample rate:  %d Hz\n", info.Format.SampleRate)
	fmt.Fprintf(w, "  bit depth:    %d\n", info.Format.BitDepth)
	fmt.Fprintf(w, "  audio format: %d\n", info.AudioFormat)
	fmt.Fprintf(w, "  data bytes:   %d\n", info.DataBytes)
	fmt.Fprintf(w, "  samples:      %d\n", info.Samples)
	fmt.Fprintf(w, "  duration:     %v\n", info.Duration)
	if info.Metadata.Title != "" {
		fmt.Fprintf(w, "  title:        %s\n", info.Metadata.Title)
	}
	if info.Metadata.Artist != "" {
		fmt.Fprintf(w, "  artist:       %s\n", info.Metadata.Artist)
	}
	if info.Metadata.Comments != "" {
		fmt.Fprintf(w, "  comments:     %s\n", info.Metadata.Comments)
	}
	if info.Metadata.Software != "" {
		fmt.Fprintf(w, "  software:     %s\n", info.Metadata.Software)
	}
}
