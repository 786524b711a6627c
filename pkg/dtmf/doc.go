// ABOUTME: DTMF tone synthesis package
// ABOUTME: Maps keypad symbols to frequency pairs and renders them as PCM
// Package dtmf synthesizes Dual-Tone Multi-Frequency keypad signals.
//
//	       | 1209hz | 1336hz | 1477hz | 1633hz |
//	697hz  | 1      | 2      | 3      | A      |
//	770hz  | 4      | 5      | 6      | B      |
//	852hz  | 7      | 8      | 9      | C      |
//	941hz  | *      | 0      | #      | D      |
//
// Each symbol sounds as the average of two sinusoids, one from the low
// (row) group and one from the high (column) group. A Sequence lays the
// tones out in time with silent gaps and streams them to any SampleWriter:
//
//	symbols, err := dtmf.ParseSequence("555*1234#")
//	if err != nil {
//	    return err
//	}
//	seq := dtmf.Keyed(symbols, audio.DefaultSampleRate)
//	n, err := seq.Render(w)
//
// See https://en.wikipedia.org/wiki/Dual-tone_multi-frequency_signaling
package dtmf
