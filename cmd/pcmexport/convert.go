// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/pcmexport"
	"github.com/ik5/pcmexport/internal/config"
)

func convertCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("convert", stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	in := fs.String("in", "", "input audio file (required)")
	out := fs.String("out", ".", "output directory")
	rate := fs.Int("rate", 0, "output sample rate (0 for the default)")
	channels := fs.Int("channels", 0, "output channels, 1 or 2 (0 for the default)")
	format := fs.String("format", "", "output format: bin, header or wav")
	name := fs.String("name", "", "output base name (defaults to the input name)")
	rawRate := fs.Int("raw-rate", 0, "sample rate of headerless .pcm/.raw input")
	rawChannels := fs.Int("raw-channels", 0, "channels of headerless .pcm/.raw input")
	ffmpegCmd := fs.String("ffmpeg", "", "ffmpeg binary for other input formats")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return fmt.Errorf("%w: -in is required", errUsage)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *rawRate > 0 || *rawChannels > 0 {
		cfg.Audio.RawSampleRate = *rawRate
		cfg.Audio.RawChannels = *rawChannels
	}
	if *ffmpegCmd != "" {
		cfg.FFmpeg.Enabled = true
		cfg.FFmpeg.Command = *ffmpegCmd
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := a.inputs.Decode(ctx, filepath.Base(*in), f)
	if err != nil {
		return err
	}

	fileName := *name
	if fileName == "" {
		fileName = filepath.Base(*in)
	}

	outFormat := cfg.Format()
	if *format != "" {
		outFormat = pcmexport.ParseFormat(*format)
	}

	art, err := a.exporter.Export(buf, pcmexport.Request{
		SampleRate: *rate,
		Channels:   *channels,
		Format:     outFormat,
		FileName:   fileName,
		Label:      filepath.Base(*in),
	})
	if err != nil {
		return err
	}

	path, err := writeArtifact(*out, art)
	if err != nil {
		return err
	}
	report(stdout, path, art)

	return nil
}
