// SPDX-License-Identifier: EPL-2.0

// Package raw reads and writes headerless PCM: signed 16-bit little-endian
// samples, interleaved when there is more than one channel.
//
// Write and Encode produce the "bin" output, exactly 2*len(samples) bytes.
// Decoder turns such a stream back into an audio.Source; since the bytes
// say nothing about their format, the sample rate and channel count must be
// given:
//
//	src, err := raw.Decoder{SampleRate: 16000, Channels: 2}.Decode(f)
package raw
