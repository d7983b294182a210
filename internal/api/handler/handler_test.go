package handler_test

import (
	"backoffice/internal/api/handler"
	"backoffice/internal/auth"
	"backoffice/pkg/domain"
	"backoffice/pkg/logger"
	"backoffice/pkg/storage"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// stubStorage implements storage.AllStorage for handler tests.
type stubStorage struct {
	pingErr    error
	counts     domain.TableCounts
	countsErr  error
	version    int
	versionErr error

	user     *domain.User
	userErr  error
	users    []domain.User
	next     storage.UserCursor
	listErr  error
	total    int64
	totalErr error

	pings int
}

func (s *stubStorage) Ping(ctx context.Context) error {
	s.pings++

	return s.pingErr
}

func (s *stubStorage) TableCounts(ctx context.Context) (domain.TableCounts, error) {
	return s.counts, s.countsErr
}

func (s *stubStorage) ServerVersion(ctx context.Context) (int, error) {
	return s.version, s.versionErr
}

func (s *stubStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.user, s.userErr
}

func (s *stubStorage) CountUsers(ctx context.Context) (int64, error) {
	return s.total, s.totalErr
}

func (s *stubStorage) ListUsers(ctx context.Context,
	cursor storage.UserCursor,
	limit uint) ([]domain.User, storage.UserCursor, error) {
	return s.users, s.next, s.listErr
}

const (
	testIssuer   = "backoffice"
	testAudience = "backoffice-clients"
	testSecret   = "handler-test-secret"
)

func newTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(auth.TokenServiceOptions{
		Issuer:    testIssuer,
		Audience:  testAudience,
		SecretKey: testSecret,
		TTL:       time.Hour,
	})
	require.NoError(t, err)

	return svc
}

// newHandler wires a Handler around the stub storage.
func newHandler(t *testing.T, strg *stubStorage) *handler.Handler {
	t.Helper()
	tokens := newTokens(t)

	return handler.New(handler.Deps{
		Storage: strg,
		Auth:    auth.NewService(strg, tokens),
		Tokens:  tokens,
	}, handler.Options{
		Environment:  "development",
		DatabaseName: "backoffice",
	})
}

func testUser(email string) domain.User {
	return domain.User{
		ID:        domain.UserID(uuid.New()),
		Email:     email,
		FullName:  "Test User",
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}
