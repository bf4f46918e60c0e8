// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/pcmexport/audio"
)

// DefaultCommand is the edge-tts executable used when none is configured.
const DefaultCommand = "edge-tts"

// CommandEngine runs the edge-tts command line tool, which writes an MP3
// file, and decodes the result. Unlike EdgeEngine it honours rate and
// pitch.
type CommandEngine struct {
	// Command is the edge-tts binary, looked up in PATH when not absolute.
	Command string

	// TempDir is where the working directory is created; empty means
	// os.TempDir().
	TempDir string

	Logger *zap.Logger
}

func (c *CommandEngine) Synthesize(ctx context.Context, req Request) (*audio.Buffer, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("engine", "command"))

	command := c.Command
	if command == "" {
		command = DefaultCommand
	}

	dir, err := os.MkdirTemp(c.TempDir, "edge-tts-")
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp dir: %w", ErrSynthesis, err)
	}
	defer os.RemoveAll(dir)

	media := filepath.Join(dir, "tts_media.mp3")

	// The = forms keep a leading "-" from being read as a flag.
	args := []string{
		"--voice", req.Voice,
		"--text", req.Text,
		"--rate=" + req.Rate,
		"--pitch=" + req.Pitch,
		"--write-media", media,
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stderr = &stderr

	logger.Info("synthesizing",
		zap.Int("chars", len([]rune(req.Text))),
		zap.String("voice", req.Voice),
		zap.String("rate", req.Rate),
		zap.String("pitch", req.Pitch))

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		logger.Warn("edge-tts failed", zap.Error(err), zap.String("stderr", msg))
		if msg == "" {
			return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
		}
		return nil, fmt.Errorf("%w: %w: %s", ErrSynthesis, err, msg)
	}

	data, err := os.ReadFile(media)
	if err != nil {
		return nil, fmt.Errorf("%w: reading media: %w", ErrSynthesis, err)
	}

	return decodeMP3(data)
}
