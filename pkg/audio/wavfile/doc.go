// ABOUTME: WAV file writer and inspector
// ABOUTME: Wraps go-audio/wav behind an open, write, finalize contract
// Package wavfile writes and inspects RIFF/WAVE PCM files.
//
// A Writer streams into a temporary file next to the destination and only
// renames it into place once the container headers have been finalized, so
// a failed run never leaves a truncated file behind:
//
//	w, err := wavfile.Create("tone.wav", audio.DefaultFormat())
//	if err != nil {
//	    return err
//	}
//	defer w.Abort()
//	if err := w.Write(samples); err != nil {
//	    return err
//	}
//	return w.Close()
package wavfile
