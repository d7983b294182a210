package controller

import (
	"backoffice/pkg/logger"
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// WithRecovery returns a middleware that converts panics in downstream
// handlers into 500 responses. When verbose is true (non-production), the
// response carries the panic value and stack trace; otherwise a generic
// problem body is returned and the detail is only logged.
func WithRecovery(verbose bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			stack := debug.Stack()
			logger.Error(r.Context(), "panic while handling request",
				zap.Any("panic", p),
				zap.ByteString("stack", stack),
			)

			if verbose {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprintf(w, "panic: %v\n\n%s", p, stack)

				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":"INTERNAL","message":"internal error"}`))
		}()

		next.ServeHTTP(w, r)
	})
}
