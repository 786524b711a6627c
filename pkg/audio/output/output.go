// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write queues 16-bit samples for playback (blocks until accepted)
	Write(samples []int16) error

	// Close waits for queued audio to finish and releases the device
	Close() error
}
