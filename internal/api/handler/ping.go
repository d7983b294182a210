package handler

import (
	"net/http"
	"time"
)

// pingResponse is the static status payload of /api/ping.
type pingResponse struct {
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	Environment string    `json:"environment"`
}

// Ping returns the liveness handler. It reports static configuration values
// and must never consult the database: it is the endpoint that keeps working
// when everything else is down.
func (h *Handler) Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, pingResponse{
			Message:     "backoffice api is running",
			Timestamp:   time.Now().UTC(),
			Status:      "OK",
			Database:    h.opts.DatabaseName,
			Environment: h.opts.Environment,
		})
	}
}
