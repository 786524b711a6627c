// ABOUTME: WAV header inspection and sample read-back
// ABOUTME: Decodes files with go-audio/wav to verify what the writer produced
package wavfile

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/twe4ked/phreaking/pkg/audio"
)

// Info describes a WAV file as declared by its headers
type Info struct {
	Format      audio.Format
	AudioFormat int
	// DataBytes is the declared length of the data chunk
	DataBytes int64
	// Samples is DataBytes divided by the block size (frames)
	Samples  int64
	Duration time.Duration
	Metadata Metadata
}

// Inspect reads the headers of the file at path
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return inspect(f, path)
}

func inspect(r io.ReadSeeker, path string) (Info, error) {
	dec := wav.NewDecoder(r)
	if err := dec.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := dec.Err(); err != nil {
		return Info{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if dec.NumChans < 1 || dec.PCMChunk == nil {
		return Info{}, fmt.Errorf("failed to read %s: not a PCM wav file", path)
	}

	info := Info{
		Format: audio.Format{
			SampleRate: int(dec.SampleRate),
			Channels:   int(dec.NumChans),
			BitDepth:   int(dec.BitDepth),
		},
		AudioFormat: int(dec.WavAudioFormat),
		DataBytes:   dec.PCMLen(),
	}
	if block := info.Format.BlockAlign(); block > 0 {
		info.Samples = info.DataBytes / int64(block)
	}
	info.Duration = info.Format.Duration(int(info.Samples))

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("failed to rewind %s: %w", path, err)
	}
	meta := wav.NewDecoder(r)
	meta.ReadMetadata()
	if meta.Metadata != nil {
		info.Metadata = Metadata{
			Title:    meta.Metadata.Title,
			Artist:   meta.Metadata.Artist,
			Comments: meta.Metadata.Comments,
			Software: meta.Metadata.Software,
		}
	}

	return info, nil
}

// ReadSamples decodes every 16-bit sample of the file at path
func ReadSamples(path string) ([]int16, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	info, err := inspect(f, path)
	if err != nil {
		return nil, Info{}, err
	}
	if info.Format.BitDepth != 16 {
		return nil, info, fmt.Errorf("unsupported bit depth: %d (supported: 16)", info.Format.BitDepth)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, info, fmt.Errorf("failed to rewind %s: %w", path, err)
	}
	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		return nil, info, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return samples, info, nil
}
