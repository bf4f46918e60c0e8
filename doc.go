// SPDX-License-Identifier: EPL-2.0

// Package pcmexport converts audio into 16-bit PCM for embedded playback:
// a raw s16le blob, a WAV file, or a C header that firmware compiles in and
// streams to an I2S DAC.
//
// # Pipeline
//
// Input is decoded into an audio.Buffer, resampled per channel with linear
// interpolation, mixed to one or two channels, quantized to int16 and
// interleaved (see the audio package). The result is rendered in one of
// the output Formats.
//
// # Quick Start
//
//	in := pcmexport.NewInputs(nil)
//	buf, err := in.Decode(ctx, "voice.mp3", file)
//	if err != nil {
//	    return err
//	}
//
//	exp := pcmexport.New(audio.DefaultOptions())
//	art, err := exp.Export(buf, pcmexport.Request{
//	    SampleRate: 16000,
//	    Channels:   1,
//	    Format:     pcmexport.FormatHeader,
//	    FileName:   "voice.mp3",
//	})
//	// art.FileName == "voice.h"
//
// # Targets
//
// Requested sample rates and channel counts are resolved against an
// audio.Options value. By default unsupported values are replaced by the
// default target and Artifact.TargetSubstituted is set; strict options
// reject them with audio.ErrUnsupportedTarget.
//
// # Inputs
//
// Inputs picks a decoder by file extension: WAV, MP3, Ogg Vorbis, AIFF and,
// when registered with a known format, headerless PCM. Anything else, or a
// file a built-in decoder rejects, goes through ffmpeg when a fallback
// decoder is configured.
package pcmexport
