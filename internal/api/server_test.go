package api_test

import (
	"backoffice/internal/api"
	"backoffice/internal/auth"
	"backoffice/pkg/domain"
	"backoffice/pkg/logger"
	"backoffice/pkg/storage"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// stubStorage implements storage.AllStorage for pipeline tests.
type stubStorage struct {
	pingErr error
	counts  domain.TableCounts
}

func (s *stubStorage) Ping(ctx context.Context) error { return s.pingErr }

func (s *stubStorage) TableCounts(ctx context.Context) (domain.TableCounts, error) {
	return s.counts, nil
}

func (s *stubStorage) ServerVersion(ctx context.Context) (int, error) { return 170000, nil }

func (s *stubStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil //nolint: nilnil
}

func (s *stubStorage) CountUsers(ctx context.Context) (int64, error) { return 0, nil }

func (s *stubStorage) ListUsers(ctx context.Context,
	cursor storage.UserCursor,
	limit uint) ([]domain.User, storage.UserCursor, error) {
	return nil, storage.UserCursor{}, nil
}

func newServer(t *testing.T, environment string, strg *stubStorage) *http.Server {
	t.Helper()

	tokens, err := auth.NewTokenService(auth.TokenServiceOptions{
		Issuer:    "backoffice",
		Audience:  "backoffice-clients",
		SecretKey: "pipeline-test-secret",
		TTL:       time.Hour,
	})
	require.NoError(t, err)

	srv, err := api.NewServer(api.Deps{
		Storage: strg,
		Auth:    auth.NewService(strg, tokens),
		Tokens:  tokens,
	}, api.Options{
		Environment:    environment,
		DatabaseName:   "backoffice",
		Addr:           ":0",
		RequestTimeout: 5 * time.Second,
		MetricsPath:    "/metrics",
	})
	require.NoError(t, err)

	return srv
}

// do sends a request through the full middleware chain.
func do(srv *http.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	return rec
}

func TestPipeline_PingSucceedsWithDatabaseDown(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment, &stubStorage{pingErr: errors.New("down")})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "OK", body["status"])
}

func TestPipeline_CORSAttachedOutsideProduction(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment, &stubStorage{})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPipeline_CORSNeverAttachedInProduction(t *testing.T) {
	srv := newServer(t, logger.ProductionEnvironment, &stubStorage{})

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := do(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestPipeline_ProductionRedirectsPlainHTTP(t *testing.T) {
	srv := newServer(t, logger.ProductionEnvironment, &stubStorage{})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "http://example.com/api/ping", nil))

	require.Equal(t, http.StatusPermanentRedirect, rec.Code)
}

func TestPipeline_HealthRoutesIdentical(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment, &stubStorage{})

	live := do(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	ready := do(srv, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, live.Code)
	require.Equal(t, live.Code, ready.Code)

	var a, b map[string]any
	require.NoError(t, json.Unmarshal(live.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(ready.Body.Bytes(), &b))
	require.Equal(t, a["status"], b["status"])
}

func TestPipeline_DatabaseCheck(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment,
		&stubStorage{counts: domain.TableCounts{Users: 1}})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/api/database-check", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Connected")
}

func TestPipeline_ProtectedRouteRejectsWrongIssuer(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment, &stubStorage{})

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "not-backoffice",
		Audience:  jwt.ClaimStrings{"backoffice-clients"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("pipeline-test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := do(srv, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPipeline_ProtectedRouteAcceptsValidToken(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment, &stubStorage{})

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "backoffice",
		Audience:  jwt.ClaimStrings{"backoffice-clients"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("pipeline-test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := do(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPipeline_DefaultRouteServesHome(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment, &stubStorage{})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "backoffice", body["service"])
}

func TestPipeline_SpecAndMetricsServed(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment, &stubStorage{})

	spec := do(srv, httptest.NewRequest(http.MethodGet, "/specs/v1.yaml", nil))
	require.Equal(t, http.StatusOK, spec.Code)
	require.Contains(t, spec.Body.String(), "openapi")

	m := do(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, m.Code)
}

func TestPipeline_UnknownRouteIs404(t *testing.T) {
	srv := newServer(t, logger.DevelopmentEnvironment, &stubStorage{})

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/nope/nothing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
