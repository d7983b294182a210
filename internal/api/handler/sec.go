package handler

import (
	"backoffice/pkg/serrors"
	"context"
	"net/http"
	"strings"
)

// ctxKey is the context key type for values stored by the auth middleware.
type ctxKey struct{}

// UserIDKey is the context key under which the authenticated subject is stored.
var UserIDKey = ctxKey{} //nolint: gochecknoglobals

// SubjectFromContext returns the authenticated subject, or "" when the
// request is unauthenticated.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(UserIDKey).(string)

	return s
}

// RequireAuth wraps next with bearer-token validation. The token must carry a
// valid signature, issuer, audience and lifetime; any failure yields a 401
// problem response. Rejection logic lives in the token service, this
// middleware only extracts and forwards the credential.
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			h.writeProblem(ctx, w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		claims, err := h.deps.Tokens.Verify(token)
		if err != nil {
			h.writeProblem(ctx, w, err)

			return
		}

		ctx = context.WithValue(ctx, UserIDKey, claims.Subject)
		next(w, r.WithContext(ctx))
	}
}
