// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ik5/pcmexport"
	"github.com/ik5/pcmexport/formats/ffmpeg"
	"github.com/ik5/pcmexport/internal/config"
	"github.com/ik5/pcmexport/internal/logger"
	"github.com/ik5/pcmexport/synth"
)

var errUsage = errors.New("usage")

// app is the pipeline built from a configuration.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	exporter *pcmexport.Exporter
	inputs   *pcmexport.Inputs
	engine   synth.Engine
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func newApp(cfg *config.Config) (*app, error) {
	log, err := logger.New(cfg.Logger())
	if err != nil {
		return nil, err
	}

	opts, err := cfg.AudioOptions()
	if err != nil {
		return nil, err
	}

	var fallback *ffmpeg.Decoder
	if cfg.FFmpeg.Enabled {
		fallback = &ffmpeg.Decoder{Command: cfg.FFmpeg.Command, Logger: log}
	}
	inputs := pcmexport.NewInputs(fallback)
	if cfg.Audio.RawSampleRate > 0 && cfg.Audio.RawChannels > 0 {
		inputs.RegisterRaw(cfg.Audio.RawSampleRate, cfg.Audio.RawChannels)
	}

	var engine synth.Engine
	switch cfg.TTS.Engine {
	case config.EngineCommand:
		engine = &synth.CommandEngine{Command: cfg.TTS.Command, Logger: log}
	default:
		engine = synth.NewEdgeEngine(log)
	}

	return &app{
		cfg:      cfg,
		logger:   log,
		exporter: pcmexport.New(opts),
		inputs:   inputs,
		engine:   engine,
	}, nil
}

// writeArtifact stores art in dir under its own file name.
func writeArtifact(dir string, art *pcmexport.Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(dir, art.FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := art.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, f.Close()
}

func report(w io.Writer, path string, art *pcmexport.Artifact) {
	fmt.Fprintf(w, "wrote %s (%s, %d frames, %v)\n",
		path, art.PCM.Target(), art.PCM.Frames, art.PCM.Duration())
	if art.TargetSubstituted {
		fmt.Fprintf(w, "note: requested target unsupported, used %s\n", art.PCM.Target())
	}
}
