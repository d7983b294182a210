package handler

import (
	"backoffice/pkg/domain"
	"backoffice/pkg/serrors"
	"net/http"
	"time"
)

// databaseCheckResponse is the success payload of /api/database-check.
type databaseCheckResponse struct {
	Status        string             `json:"status"`
	Timestamp     time.Time          `json:"timestamp"`
	ServerVersion int                `json:"serverVersion,omitempty"`
	Counts        domain.TableCounts `json:"counts"`
}

// DatabaseCheck returns the on-demand connectivity probe. Every call performs
// a fresh ping and row count; nothing is cached.
func (h *Handler) DatabaseCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := h.deps.Storage.Ping(ctx); err != nil {
			h.writeProblem(ctx, w, serrors.Wrap(serrors.ErrInternal, err, "database check failed"))

			return
		}

		counts, err := h.deps.Storage.TableCounts(ctx)
		if err != nil {
			h.writeProblem(ctx, w, serrors.Wrap(serrors.ErrInternal, err, "database check failed"))

			return
		}

		version, err := h.deps.Storage.ServerVersion(ctx)
		if err != nil {
			// counts already succeeded; report them without the version
			version = 0
		}

		writeJSON(ctx, w, http.StatusOK, databaseCheckResponse{
			Status:        "Connected",
			Timestamp:     time.Now().UTC(),
			ServerVersion: version,
			Counts:        counts,
		})
	}
}
