// Package respond writes JSON responses and maps domain errors to status codes.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func JSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func StatusCode(err error) int {
	switch {
	case eris.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case eris.Is(err, domain.ErrInvalidTransition), eris.Is(err, domain.ErrAlreadyRunning):
		return http.StatusConflict
	case eris.Is(err, domain.ErrInvalidCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	logger := zerolog.Ctx(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	JSON(w, r, status, api.Error{Error: msg})
}
