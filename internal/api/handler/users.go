package handler

import (
	"backoffice/pkg/domain"
	"backoffice/pkg/serrors"
	"backoffice/pkg/storage"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is the page size used when the client does not specify one.
const DefaultLimit = 20

// MaxLimit caps the page size.
const MaxLimit = 100

type userItem struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type userListResponse struct {
	Items      []userItem `json:"items"`
	Total      int64      `json:"total"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// encodeCursor serializes a keyset cursor as "<RFC3339Nano>,<uuid>".
func encodeCursor(c storage.UserCursor) string {
	return c.CreatedAt.Format(time.RFC3339Nano) + "," + uuid.UUID(c.ID).String()
}

// decodeCursor parses the "<RFC3339Nano>,<uuid>" cursor format.
func decodeCursor(raw string) (storage.UserCursor, error) {
	ts, ids, found := strings.Cut(raw, ",")
	if !found {
		return storage.UserCursor{}, serrors.With(serrors.ErrBadRequest, "invalid cursor")
	}

	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return storage.UserCursor{}, serrors.With(serrors.ErrBadRequest, "invalid cursor")
	}

	id, err := uuid.Parse(ids)
	if err != nil {
		return storage.UserCursor{}, serrors.With(serrors.ErrBadRequest, "invalid cursor")
	}

	return storage.UserCursor{CreatedAt: t, ID: domain.UserID(id)}, nil
}

// ListUsers returns a paginated list of users. The route is bearer-protected.
func (h *Handler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := uint(DefaultLimit)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || n == 0 || n > MaxLimit {
				h.writeProblem(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid limit"))

				return
			}
			limit = uint(n)
		}

		var cursor storage.UserCursor
		if raw := r.URL.Query().Get("cursor"); raw != "" {
			c, err := decodeCursor(raw)
			if err != nil {
				h.writeProblem(ctx, w, err)

				return
			}
			cursor = c
		}

		users, next, err := h.deps.Storage.ListUsers(ctx, cursor, limit)
		if err != nil {
			h.writeProblem(ctx, w, err)

			return
		}

		total, err := h.deps.Storage.CountUsers(ctx)
		if err != nil {
			h.writeProblem(ctx, w, err)

			return
		}

		items := make([]userItem, 0, len(users))
		for i := range users {
			items = append(items, userItem{
				ID:        uuid.UUID(users[i].ID).String(),
				Email:     users[i].Email,
				FullName:  users[i].FullName,
				Active:    users[i].Active,
				CreatedAt: users[i].CreatedAt,
			})
		}

		resp := userListResponse{Items: items, Total: total}
		if !next.IsZero() {
			resp.NextCursor = encodeCursor(next)
		}

		writeJSON(ctx, w, http.StatusOK, resp)
	}
}
