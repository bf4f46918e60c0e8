// SPDX-License-Identifier: EPL-2.0

// Package ffmpeg is the fallback decoder for inputs no built-in decoder
// handles (AAC, M4A, FLAC, Opus, video containers, ...). It shells out to
// the ffmpeg binary:
//
//	ffmpeg -nostdin -hide_banner -loglevel error -y -i input -vn \
//	    -acodec pcm_s16le -f wav output.wav
//
// and hands the result to the wav package. Failures wrap ErrDecode and
// carry ffmpeg's stderr.
package ffmpeg
