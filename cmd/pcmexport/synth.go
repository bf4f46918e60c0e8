// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ik5/pcmexport"
	"github.com/ik5/pcmexport/internal/config"
	"github.com/ik5/pcmexport/synth"
)

func synthCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("synth", stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	text := fs.String("text", "", "text to speak (required)")
	voice := fs.String("voice", "", "voice id (defaults to the configured voice)")
	rate := fs.String("rate", "", `speaking rate, e.g. "+10%"`)
	pitch := fs.String("pitch", "", `pitch shift, e.g. "-5Hz"`)
	engine := fs.String("engine", "", "synthesis engine: edge or command")
	out := fs.String("out", ".", "output directory")
	sampleRate := fs.Int("sample-rate", 0, "output sample rate (0 for the default)")
	channels := fs.Int("channels", 0, "output channels, 1 or 2 (0 for the default)")
	format := fs.String("format", "", "output format: bin, header or wav")
	name := fs.String("name", "", "output base name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *engine != "" {
		cfg.TTS.Engine = *engine
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if *voice == "" {
		*voice = cfg.TTS.DefaultVoice
	}
	req, err := synth.Request{Text: *text, Voice: *voice, Rate: *rate, Pitch: *pitch}.Validate(cfg.TTS.MaxTextLength)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if cfg.TTS.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TTS.Timeout)
		defer cancel()
	}

	buf, err := a.engine.Synthesize(ctx, req)
	if err != nil {
		return err
	}

	outFormat := cfg.Format()
	if *format != "" {
		outFormat = pcmexport.ParseFormat(*format)
	}

	art, err := a.exporter.Export(buf, pcmexport.Request{
		SampleRate: *sampleRate,
		Channels:   *channels,
		Format:     outFormat,
		FileName:   *name,
		Label:      synth.Snippet(req.Text),
		Voice:      req.Voice,
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
