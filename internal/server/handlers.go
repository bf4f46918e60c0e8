// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/pcmexport"
	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/synth"
)

// Response headers describing the exported audio.
const (
	headerFrames      = "X-Audio-Frames"
	headerSampleRate  = "X-Audio-Sample-Rate"
	headerChannels    = "X-Audio-Channels"
	headerSubstituted = "X-Audio-Target-Substituted"
)

var exposedHeaders = []string{
	"Content-Disposition",
	headerFrames,
	headerSampleRate,
	headerChannels,
	headerSubstituted,
	requestIDHeader,
}

// multipartMemory is how much of an upload is held in memory before
// spilling to disk.
const multipartMemory = 8 << 20

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type configResponse struct {
	Voices            []synth.Voice      `json:"voices"`
	DefaultVoice      string             `json:"defaultVoice"`
	SampleRates       []int              `json:"sampleRates"`
	DefaultSampleRate int                `json:"defaultSampleRate"`
	ChannelOptions    []int              `json:"channelOptions"`
	DefaultChannels   int                `json:"defaultChannels"`
	Formats           []pcmexport.Format `json:"formats"`
	DefaultFormat     pcmexport.Format   `json:"defaultFormat"`
	InputFormats      []string           `json:"inputFormats"`
	FFmpegFallback    bool               `json:"ffmpegFallback"`
	MaxTextLength     int                `json:"maxTextLength"`
	Strict            bool               `json:"strict"`
}

func (s *Server) config(w http.ResponseWriter, r *http.Request) {
	opts := s.opts.Exporter.Options()

	writeJSON(w, http.StatusOK, configResponse{
		Voices:            s.opts.Voices,
		DefaultVoice:      s.opts.DefaultVoice,
		SampleRates:       opts.SampleRates(),
		DefaultSampleRate: opts.Default().SampleRate,
		ChannelOptions:    opts.ChannelCounts(),
		DefaultChannels:   opts.Default().Channels,
		Formats:           pcmexport.Formats(),
		DefaultFormat:     s.opts.DefaultFormat,
		InputFormats:      s.opts.Inputs.Formats(),
		FFmpegFallback:    s.opts.Inputs.HasFallback(),
		MaxTextLength:     s.opts.MaxTextLength,
		Strict:            opts.Strict(),
	})
}

type synthesizeRequest struct {
	Text       string  `json:"text"`
	Voice      string  `json:"voice"`
	Rate       string  `json:"rate"`
	Pitch      string  `json:"pitch"`
	Output     string  `json:"output"`
	SampleRate flexInt `json:"sampleRate"`
	Channels   flexInt `json:"channels"`
	FileName   string  `json:"fileName"`
}

func (s *Server) synthesize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	var body synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			s.writeError(w, r, err)
			return
		}
		s.writeError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	voice := body.Voice
	if strings.TrimSpace(voice) == "" {
		voice = s.opts.DefaultVoice
	}

	req, err := synth.Request{
		Text:  body.Text,
		Voice: voice,
		Rate:  body.Rate,
		Pitch: body.Pitch,
	}.Validate(s.opts.MaxTextLength)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	if s.opts.SynthTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SynthTimeout)
		defer cancel()
	}

	started := time.Now()
	buf, err := s.opts.Engine.Synthesize(ctx, req)
	s.metrics.ObserveStage("synthesize", started, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.export(w, r, "synthesize", buf, pcmexport.Request{
		SampleRate: int(body.SampleRate),
		Channels:   int(body.Channels),
		Format:     s.format(body.Output),
		FileName:   body.FileName,
		Label:      synth.Snippet(req.Text),
		Voice:      req.Voice,
	})
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			s.writeError(w, r, err)
			return
		}
		s.writeError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, hdr, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errNoFile, err))
		return
	}
	defer file.Close()

	ctx := r.Context()
	if s.opts.DecodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.DecodeTimeout)
		defer cancel()
	}

	s.requestLogger(r).Debug("decoding upload",
		zap.String("name", hdr.Filename),
		zap.Int64("size", hdr.Size))

	started := time.Now()
	buf, err := s.opts.Inputs.Decode(ctx, hdr.Filename, file)
	s.metrics.ObserveStage("decode", started, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	fileName := r.FormValue("fileName")
	if strings.TrimSpace(fileName) == "" {
		fileName = hdr.Filename
	}

	s.export(w, r, "convert", buf, pcmexport.Request{
		SampleRate: parseInt(r.FormValue("sampleRate")),
		Channels:   parseInt(r.FormValue("channels")),
		Format:     s.format(r.FormValue("output")),
		FileName:   fileName,
		Label:      hdr.Filename,
	})
}

func (s *Server) format(name string) pcmexport.Format {
	if strings.TrimSpace(name) == "" {
		return s.opts.DefaultFormat
	}
	return pcmexport.ParseFormat(name)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, source string, buf *audio.Buffer, req pcmexport.Request) {
	started := time.Now()
	art, err := s.opts.Exporter.Export(buf, req)
	s.metrics.ObserveStage("export", started, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.ObserveExport(source, string(art.Format), art.PCM.Duration())

	s.requestLogger(r).Info("exported",
		zap.String("source", source),
		zap.String("file", art.FileName),
		zap.Stringer("target", art.PCM.Target()),
		zap.Int("frames", art.PCM.Frames),
		zap.Bool("substituted", art.TargetSubstituted))

	h := w.Header()
	h.Set("Content-Type", art.ContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.FileName))
	h.Set("Content-Length", strconv.Itoa(len(art.Body)))
	h.Set(headerFrames, strconv.Itoa(art.PCM.Frames))
	h.Set(headerSampleRate, strconv.Itoa(art.PCM.SampleRate))
	h.Set(headerChannels, strconv.Itoa(art.PCM.Channels))
	if art.TargetSubstituted {
		h.Set(headerSubstituted, "true")
	}
	w.WriteHeader(http.StatusOK)

	if _, err := art.WriteTo(w); err != nil {
		s.requestLogger(r).Warn("writing response", zap.Error(err))
	}
}
