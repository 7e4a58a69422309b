package http

import (
	"errors"
	"net/http"

	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/service"
	"github.com/mwbots/ircservserv/internal/store"
	"github.com/mwbots/ircservserv/internal/utils"
)

// errorResponse is the JSON error envelope all endpoints share.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors to HTTP status codes and writes the
// JSON error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrChannelNotConfigured), errors.Is(err, store.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSyncInProgress):
		status = http.StatusConflict
	case errors.Is(err, errHistoryDisabled):
		status = http.StatusNotImplemented
	case errors.Is(err, errBadLimit):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed")
	}

	utils.WriteJSON(w, errorResponse{Error: err.Error()}, status) //nolint:errcheck
}
