package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwbots/ircservserv/internal/service"
	"github.com/mwbots/ircservserv/internal/utils"
)

// syncChannel serves POST /api/sync/{channel}. The channel name comes
// without the leading '#', same as the config repository file names.
//
// The sync runs synchronously: the response carries the finished
// report. A sync that planned commands but could not finish them still
// produced a report, so those come back as 502 with the report body
// instead of the error envelope.
func (h *Handler) syncChannel(w http.ResponseWriter, r *http.Request) {
	channel := "#" + chi.URLParam(r, "channel")

	report, err := h.services.ChannelSyncService.SyncChannel(r.Context(), channel)
	if err != nil {
		if errors.Is(err, service.ErrSyncInProgress) || errors.Is(err, service.ErrChannelNotConfigured) {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, report, http.StatusBadGateway) //nolint:errcheck
		return
	}

	utils.WriteJSON(w, report, http.StatusOK) //nolint:errcheck
}

// syncAll serves POST /api/sync. Per-channel failures are folded into
// the individual reports, so the batch itself always answers 200.
func (h *Handler) syncAll(w http.ResponseWriter, r *http.Request) {
	reports, err := h.services.ChannelSyncService.SyncAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, reports, http.StatusOK) //nolint:errcheck
}
