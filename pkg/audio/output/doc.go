// ABOUTME: Audio output package for playing rendered tones
// ABOUTME: Provides the Output interface and an oto implementation
// Package output provides audio playback for rendered DTMF sequences.
//
// Example:
//
//	out := output.NewOto(logger)
//	err := out.Open(44100, 1)
//	_, err = seq.Render(out)
//	err = out.Close()
package output
