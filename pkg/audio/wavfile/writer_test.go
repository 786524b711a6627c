// ABOUTME: Tests for the WAV writer
// ABOUTME: Tests header round-trips, finalize-once semantics and aborted writes
package wavfile

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/twe4ked/phreaking/pkg/audio"
)

func writeFile(t *testing.T, path string, samples []int16) {
	t.Helper()
	w, err := Create(path, audio.DefaultFormat())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := w.Write(samples); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestWriter_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	samples := make([]int16, 8820)
	for i := range samples {
		samples[i] = int16(i - 4410)
	}
	writeFile(t, path, samples)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(data) != 44+8820*2 {
		t.Fatalf("expected %d bytes, got %d", 44+8820*2, len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE header")
	}
	if string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		t.Error("missing fmt or data chunk")
	}

	if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(36+8820*2) {
		t.Errorf("riff size = %d, want %d", got, 36+8820*2)
	}
	if got := binary.LittleEndian.Uint16(data[20:22]); got != 1 {
		t.Errorf("audio format = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 88200 {
		t.Errorf("byte rate = %d, want 88200", got)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 2 {
		t.Errorf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != 8820*2 {
		t.Errorf("data size = %d, want %d", got, 8820*2)
	}

	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(data[44+i*2:]))
		if got != want {
			t.Fatalf("sample %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestWriter_WriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	w, err := Create(path, audio.DefaultFormat())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Crosses the internal flush boundary
	for i := 0; i < flushSize+10; i++ {
		if err := w.WriteSample(int16(i % 100)); err != nil {
			t.Fatalf("write sample %d failed: %v", i, err)
		}
	}
	if w.Samples() != int64(flushSize+10) {
		t.Errorf("expected %d samples counted, got %d", flushSize+10, w.Samples())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	samples, info, err := ReadSamples(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(samples) != flushSize+10 || info.Samples != int64(flushSize+10) {
		t.Fatalf("expected %d samples, got %d (header %d)", flushSize+10, len(samples), info.Samples)
	}
	for i, s := range samples {
		if s != int16(i%100) {
			t.Fatalf("sample %d: expected %d, got %d", i, i%100, s)
		}
	}
}

func TestWriter_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	writeFile(t, path, nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) != 44 {
		t.Fatalf("expected 44 byte header-only file, got %d bytes", len(data))
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != 0 {
		t.Errorf("data size = %d, want 0", got)
	}
}

func TestWriter_CloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	w, err := Create(path, audio.DefaultFormat())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := w.Write([]int16{1, 2, 3}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}

	// Abort after Close must not remove the finished file
	w.Abort()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to survive Abort after Close: %v", err)
	}

	if err := w.WriteSample(4); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestWriter_AbortLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")

	w, err := Create(path, audio.DefaultFormat())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := w.Write(make([]int16, 20000)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	w.Abort()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory after abort, found %d entries", len(entries))
	}

	if err := w.Close(); err != nil {
		t.Errorf("close after abort should be a no-op, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file at destination, stat err = %v", err)
	}
}

func TestWriter_DestinationUntouchedUntilClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	w, err := Create(path, audio.DefaultFormat())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := w.Write(make([]int16, 100)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "previous" {
		t.Error("destination changed before Close")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	info, err := Inspect(path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if info.Samples != 100 {
		t.Errorf("expected 100 samples, got %d", info.Samples)
	}
}

func TestCreate_InvalidFormat(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "x.wav"), audio.Format{SampleRate: 44100, Channels: 1, BitDepth: 24})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "invalid format: unsupported bit depth: 24 (supported: 16)" {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestCreate_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tone.wav")
	_, err := Create(path, audio.DefaultFormat())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T", err)
	}
	if ioErr.Op != "create" || ioErr.Path != path {
		t.Errorf("unexpected IOError %+v", ioErr)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected IOError to unwrap to ErrNotExist, got %v", ioErr.Err)
	}
}

func TestIOError(t *testing.T) {
	inner := errors.New("no space left on device")
	err := &IOError{Op: "write", Path: "tone.wav", Err: inner}
	if err.Error() != "write tone.wav: no space left on device" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected IOError to unwrap")
	}
}

func TestWriter_CloseLeavesOnlyDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeFile(t, path, make([]int16, 300))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "tone.wav" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only tone.wav, found %v", names)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if st.Mode().Perm()&0o044 == 0 {
		t.Errorf("expected a world-readable file, got mode %v", st.Mode().Perm())
	}
}
