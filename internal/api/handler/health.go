package handler

import (
	"backoffice/pkg/logger"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

const (
	healthStatusHealthy   = "Healthy"
	healthStatusUnhealthy = "Unhealthy"
)

// Health returns the health-report handler shared by /health and
// /health/ready. Both routes are intentionally identical; there is no
// readiness-specific logic. The payload is written with jx to keep the entry
// order stable.
func (h *Handler) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		start := time.Now()
		pingErr := h.deps.Storage.Ping(ctx)
		pingDur := time.Since(start)

		status := healthStatusHealthy
		code := http.StatusOK
		if pingErr != nil {
			status = healthStatusUnhealthy
			code = http.StatusServiceUnavailable
			logger.Warn(ctx, "health check: database unreachable", zap.Error(pingErr))
		}

		var e jx.Encoder
		e.ObjStart()
		e.FieldStart("status")
		e.Str(status)
		e.FieldStart("totalDuration")
		e.Str(time.Since(start).String())
		e.FieldStart("entries")
		e.ObjStart()
		e.FieldStart("database")
		e.ObjStart()
		e.FieldStart("status")
		e.Str(status)
		e.FieldStart("duration")
		e.Str(pingDur.String())
		if pingErr != nil {
			e.FieldStart("error")
			e.Str("database unreachable")
		}
		e.ObjEnd()
		e.ObjEnd()
		e.ObjEnd()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if _, err := w.Write(e.Bytes()); err != nil {
			logger.Error(ctx, "could not write health response", zap.Error(err))
		}
	}
}
