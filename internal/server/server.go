// SPDX-License-Identifier: EPL-2.0

// Package server is the HTTP front end of pcmexport: speech synthesis and
// file conversion to PCM, WAV or C headers.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ik5/pcmexport"
	"github.com/ik5/pcmexport/internal/metrics"
	"github.com/ik5/pcmexport/synth"
)

// Options wires a Server. Exporter, Inputs and Engine are required.
type Options struct {
	Exporter *pcmexport.Exporter
	Inputs   *pcmexport.Inputs
	Engine   synth.Engine

	Voices        []synth.Voice
	DefaultVoice  string
	DefaultFormat pcmexport.Format
	MaxTextLength int

	// MaxUploadBytes bounds /api/convert bodies, MaxBodyBytes JSON bodies.
	MaxUploadBytes int64
	MaxBodyBytes   int64

	SynthTimeout  time.Duration
	DecodeTimeout time.Duration

	CORSOrigins []string

	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

type Server struct {
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.DefaultVoice == "" {
		opts.DefaultVoice = synth.DefaultVoice
	}
	if len(opts.Voices) == 0 {
		opts.Voices = synth.DefaultVoices
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = pcmexport.DefaultFormat
	}
	if opts.MaxTextLength <= 0 {
		opts.MaxTextLength = synth.DefaultMaxTextLength
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 50 << 20
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2 << 20
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	return &Server{
		opts:    opts,
		logger:  opts.Logger.With(zap.String("component", "server")),
		metrics: opts.Metrics,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.health)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.config)
		r.Post("/synthesize", s.synthesize)
		r.Post("/convert", s.convert)
	})

	return r
}
