// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Samples are produced as interleaved float32 in [-1.0, 1.0] at the
// stream's own rate and channel count:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	buf, err := audio.ReadBuffer(src)
package vorbis
