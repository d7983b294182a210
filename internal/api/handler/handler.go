// Package handler contains the HTTP handlers of the back-office API:
// diagnostics (ping, database-check, health), authentication and user
// administration.
package handler

import (
	"backoffice/internal/auth"
	"backoffice/pkg/logger"
	"backoffice/pkg/serrors"
	"backoffice/pkg/storage"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Deps carries the capability contracts the handlers consume.
type Deps struct {
	// Storage provides connectivity probes, table statistics and user lookups.
	Storage storage.AllStorage
	// Auth authenticates email/password credentials.
	Auth *auth.Service
	// Tokens verifies bearer tokens for protected routes.
	Tokens *auth.TokenService
}

// Options carries static values echoed by the diagnostic endpoints.
type Options struct {
	// Environment is the running environment reported by /api/ping.
	Environment string
	// DatabaseName is the configured database name reported by /api/ping.
	DatabaseName string
}

// Handler implements the API endpoints.
type Handler struct {
	deps Deps
	opts Options
}

// New returns a Handler backed by the given dependencies.
func New(deps Deps, opts Options) *Handler {
	return &Handler{deps: deps, opts: opts}
}

// problemResponse is the structured error payload returned to clients. The
// underlying error detail is logged, never echoed.
type problemResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusOf maps a semantic error kind to an HTTP status code.
func statusOf(err error) (int, serrors.Kind) {
	var k serrors.Kind
	if !errors.As(err, &k) {
		return http.StatusInternalServerError, serrors.ErrInternal
	}

	switch {
	case errors.Is(k, serrors.ErrNotFound):
		return http.StatusNotFound, k
	case errors.Is(k, serrors.ErrUnauthorized):
		return http.StatusUnauthorized, k
	case errors.Is(k, serrors.ErrForbidden):
		return http.StatusForbidden, k
	case errors.Is(k, serrors.ErrBadRequest):
		return http.StatusBadRequest, k
	case errors.Is(k, serrors.ErrConflict):
		return http.StatusConflict, k
	case errors.Is(k, serrors.ErrUnavailable):
		return http.StatusServiceUnavailable, k
	default:
		return http.StatusInternalServerError, serrors.ErrInternal
	}
}

// messageOf returns the client-safe message for the error: the semantic
// message for client errors, a generic one for server errors.
func messageOf(err error, status int) string {
	if status < http.StatusInternalServerError {
		var se *serrors.Error
		if errors.As(err, &se) && se.Message() != "" {
			return se.Message()
		}
	}
	if status == http.StatusInternalServerError {
		return "internal error"
	}

	return http.StatusText(status)
}

// writeProblem logs the error and writes the mapped problem response.
func (h *Handler) writeProblem(ctx context.Context, w http.ResponseWriter, err error) {
	status, kind := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}

	writeJSON(ctx, w, status, problemResponse{
		Code:    kind.Error(),
		Message: messageOf(err, status),
	})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
	}
}
