// SPDX-License-Identifier: EPL-2.0

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/formats/ffmpeg"
	"github.com/ik5/pcmexport/synth"
)

var (
	errBadRequest = errors.New("invalid request")
	errNoFile     = errors.New("missing file field")
)

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.Is(err, errNoFile),
		errors.Is(err, synth.ErrEmptyText),
		errors.Is(err, synth.ErrTextTooLong),
		errors.Is(err, synth.ErrInvalidProsody):
		return http.StatusBadRequest
	case errors.Is(err, audio.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, audio.ErrNoChannels),
		errors.Is(err, audio.ErrEmptyBuffer),
		errors.Is(err, audio.ErrUnsupportedTarget),
		errors.Is(err, audio.ErrChannelLengthMismatch),
		errors.Is(err, audio.ErrInvalidSampleRate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, synth.ErrSynthesis),
		errors.Is(err, ffmpeg.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	log := s.requestLogger(r)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err), zap.Int("status", status))
	} else {
		log.Warn("request rejected", zap.Error(err), zap.Int("status", status))
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
