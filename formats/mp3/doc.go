// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// The output is always stereo at the file's own sample rate; mono files are
// duplicated onto both channels by go-mp3. It is the format edge-tts
// produces, so the synth package decodes through it as well:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf, err := audio.ReadBuffer(src)
//
// MP3 encoding is not supported.
package mp3
