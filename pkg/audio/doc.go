// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, quantization policies and int16 helpers
// Package audio provides the PCM primitives shared by the synthesizer,
// the WAV writer and the playback backend.
//
// Every file this tool produces is mono, 44100 Hz, 16-bit signed PCM:
//
//	format := audio.DefaultFormat()
//	n := format.Samples(100 * time.Millisecond) // 4410
//
// Unit-range float samples are converted with a Quantization policy:
//
//	s := audio.QuantizeRound.Sample(0.5) // 16384
package audio
