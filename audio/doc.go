// SPDX-License-Identifier: EPL-2.0

// Package audio turns decoded audio into 16-bit PCM for a fixed target
// format.
//
// The package has two halves:
//   - Source, Decoder and Registry describe streaming decoder output
//   - Buffer, Target, ResampleChannel, Mix and Encode convert a whole
//     in-memory buffer into PCM
//
// ReadBuffer joins the two by draining a Source into a Buffer.
//
// # Source Interface
//
// Decoders hand out a Source of interleaved float32 samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// # Encoding
//
// Encoding always works on the complete buffer:
//
//	buf, _ := audio.ReadBuffer(src)
//	pcm, err := audio.Encode(buf, audio.Target{SampleRate: 16000, Channels: 1})
//
// Each of the first two channels is resampled on its own with linear
// interpolation, the result is mixed to the target channel count (a mono
// source is duplicated for stereo, a stereo source is averaged for mono)
// and every sample is quantized with utils.Float32ToInt16.
//
// There is no anti-aliasing filter. The output is meant for speech played
// back on small devices, not for high fidelity work.
//
// # Targets
//
// Options holds the supported sample rates and channel counts and resolves
// a caller's request against them:
//
//	opts := audio.DefaultOptions()
//	target, substituted, err := opts.Resolve(44100, 3) // 44100 Hz, 2 ch, true
//
// By default unsupported values are replaced by the default target. Strict
// options reject them with ErrUnsupportedTarget instead.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Encode reports
// ErrNoChannels and ErrEmptyBuffer; compare with errors.Is.
package audio
