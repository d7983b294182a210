package controller_test

import (
	"backoffice/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithStrictTransport_RedirectsPlainHTTP(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/admin?x=1", nil)
	rec := httptest.NewRecorder()

	controller.WithStrictTransport(next).ServeHTTP(rec, req)

	require.False(t, called, "plain HTTP request should not reach the handler")
	require.Equal(t, http.StatusPermanentRedirect, rec.Code)
	require.Equal(t, "https://example.com/admin?x=1", rec.Header().Get("Location"))
}

func TestWithStrictTransport_ForwardedHTTPSPassesWithHSTS(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()

	controller.WithStrictTransport(next).ServeHTTP(rec, req)

	require.True(t, called)
	require.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=")
}
