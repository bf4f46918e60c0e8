// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/pcmexport/internal/config"
	"github.com/ik5/pcmexport/internal/metrics"
	"github.com/ik5/pcmexport/internal/server"
)

func serveCmd(ctx context.Context, args []string, stderr io.Writer) error {
	fs := newFlagSet("serve", stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	srv := server.New(server.Options{
		Exporter:       a.exporter,
		Inputs:         a.inputs,
		Engine:         a.engine,
		Voices:         cfg.TTS.Voices,
		DefaultVoice:   cfg.TTS.DefaultVoice,
		DefaultFormat:  cfg.Format(),
		MaxTextLength:  cfg.TTS.MaxTextLength,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		MaxBodyBytes:   int64(cfg.Server.MaxBodyKB) << 10,
		SynthTimeout:   cfg.TTS.Timeout,
		DecodeTimeout:  cfg.FFmpeg.Timeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		Logger:         a.logger,
		Metrics:        metrics.New(),
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("listening",
			zap.String("addr", httpSrv.Addr),
			zap.String("engine", cfg.TTS.Engine),
			zap.Bool("ffmpeg", cfg.FFmpeg.Enabled))

		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
