package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mwbots/ircservserv/internal/store"
	"github.com/mwbots/ircservserv/internal/utils"
	"github.com/mwbots/ircservserv/models"
)

// defaultRunsLimit bounds unpaginated history listings.
const defaultRunsLimit = 50

var (
	errHistoryDisabled = errors.New("sync history persistence is disabled")
	errBadLimit        = errors.New("limit must be a positive integer")
)

// listRuns serves GET /api/runs?channel=&status=&limit=.
func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, r, errHistoryDisabled)
		return
	}

	filter := store.RunFilter{
		Channel: r.URL.Query().Get("channel"),
		Status:  models.SyncStatus(r.URL.Query().Get("status")),
		Limit:   defaultRunsLimit,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, r, errBadLimit)
			return
		}
		filter.Limit = limit
	}

	runs, err := h.runs.ListRuns(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, runs, http.StatusOK) //nolint:errcheck
}

// runDetails is the GET /api/runs/{id} response envelope.
type runDetails struct {
	Run      models.SyncRun             `json:"run"`
	Commands []models.SyncCommandRecord `json:"commands"`
}

func (h *Handler) getRun(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, r, errHistoryDisabled)
		return
	}

	run, commands, err := h.runs.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, runDetails{Run: run, Commands: commands}, http.StatusOK) //nolint:errcheck
}
