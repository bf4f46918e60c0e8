// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pp-group/edge-tts-go/biz/service/tts/edge"
	"go.uber.org/zap"

	"github.com/ik5/pcmexport/audio"
)

// streamFunc starts a synthesis and yields edge-tts messages.
type streamFunc func(text, voice string) (<-chan map[string]interface{}, error)

func edgeStream(text, voice string) (<-chan map[string]interface{}, error) {
	comm, err := edge.NewCommunicate(text, edge.WithVoice(voice))
	if err != nil {
		return nil, err
	}

	return comm.Stream()
}

// EdgeEngine talks to the Microsoft Edge speech service directly through
// edge-tts-go and decodes the MP3 it returns. Rate and pitch are not
// supported by this engine and are ignored.
type EdgeEngine struct {
	logger *zap.Logger
	stream streamFunc
}

func NewEdgeEngine(logger *zap.Logger) *EdgeEngine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &EdgeEngine{
		logger: logger.With(zap.String("engine", "edge")),
		stream: edgeStream,
	}
}

func (e *EdgeEngine) Synthesize(ctx context.Context, req Request) (*audio.Buffer, error) {
	if req.Rate != DefaultRate && req.Rate != "" || req.Pitch != DefaultPitch && req.Pitch != "" {
		e.logger.Debug("ignoring prosody", zap.String("rate", req.Rate), zap.String("pitch", req.Pitch))
	}

	e.logger.Info("synthesizing",
		zap.Int("chars", len([]rune(req.Text))),
		zap.String("voice", req.Voice))

	ch, err := e.stream(req.Text, req.Voice)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	var mp3Buf bytes.Buffer
	for msg := range ch {
		if err := ctx.Err(); err != nil {
			// Let the producer finish without blocking on us.
			go func() {
				for range ch {
				}
			}()
			return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
		}

		if msgType, ok := msg["type"].(string); ok && msgType == "audio" {
			if data, ok := msg["data"].([]byte); ok {
				mp3Buf.Write(data)
			}
		}
	}

	e.logger.Debug("received audio", zap.Int("bytes", mp3Buf.Len()))

	buf, err := decodeMP3(mp3Buf.Bytes())
	if err != nil {
		return nil, err
	}

	e.logger.Info("synthesized",
		zap.Int("sampleRate", buf.SampleRate),
		zap.Int("frames", buf.Frames()))

	return buf, nil
}
