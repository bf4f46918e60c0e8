// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/formats/wav"
)

// DefaultCommand is used when Decoder.Command is empty.
const DefaultCommand = "ffmpeg"

// ErrDecode wraps every failure to run or read back ffmpeg.
var ErrDecode = errors.New("ffmpeg decode failed")

// Decoder transcodes anything ffmpeg can read into 16-bit WAV, keeping the
// native sample rate and channel count, and decodes that with wav.Decoder.
// The whole input and output are held in memory and in a temporary
// directory that is removed before returning.
type Decoder struct {
	// Command is the ffmpeg binary, looked up in PATH when not absolute.
	Command string

	// TempDir is where the working directory is created; empty means
	// os.TempDir().
	TempDir string

	Logger *zap.Logger
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.DecodeContext(context.Background(), r)
}

// DecodeContext is Decode with ffmpeg bound to ctx.
func (d Decoder) DecodeContext(ctx context.Context, r io.Reader) (audio.Source, error) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	command := d.Command
	if command == "" {
		command = DefaultCommand
	}

	dir, err := os.MkdirTemp(d.TempDir, "pcmexport-ffmpeg-")
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp dir: %w", ErrDecode, err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input")
	out := filepath.Join(dir, "output.wav")

	if err := writeFile(in, r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	args := []string{
		"-nostdin",
		"-hide_banner", "-loglevel", "error",
		"-y",
		"-i", in,
		"-vn",
		"-acodec", "pcm_s16le",
		"-f", "wav",
		out,
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stderr = &stderr

	logger.Debug("running ffmpeg", zap.String("command", command))

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		logger.Warn("ffmpeg failed", zap.Error(err), zap.String("stderr", msg))
		if msg == "" {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return nil, fmt.Errorf("%w: %w: %s", ErrDecode, err, msg)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %w", ErrDecode, err)
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	logger.Debug("ffmpeg decoded input",
		zap.Int("sampleRate", src.SampleRate()),
		zap.Int("channels", src.Channels()),
		zap.Int("bytes", len(data)))

	return src, nil
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating input: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing input: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("writing input: %w", err)
	}

	return nil
}
