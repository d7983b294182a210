package auth

import (
	"backoffice/pkg/domain"
	"backoffice/pkg/logger"
	"backoffice/pkg/serrors"
	"backoffice/pkg/storage"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service authenticates users by email/password and hands out bearer tokens.
type Service struct {
	users  storage.UserStorage
	tokens *TokenService
}

// NewService returns a Service backed by the given user storage and token service.
func NewService(users storage.UserStorage, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// dummyPasswordHash is a bcrypt hash of a throwaway string. The unknown-user
// path compares against it so both login paths spend the same bcrypt cost and
// response time does not reveal whether the account exists.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy") //nolint: gochecknoglobals, lll

// Login verifies the credentials against the users table and returns a signed
// token plus the authenticated user. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("could not look up user: %w", err)
	}
	if user == nil {
		// burn the same bcrypt cost as the known-user path
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		logger.Debug(ctx, "login attempt for unknown user", zap.String("email", email))

		return "", nil, serrors.With(serrors.ErrUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, serrors.With(serrors.ErrUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.Issue(uuid.UUID(user.ID).String())
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// HashPassword produces a bcrypt hash suitable for the users table.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}

	return string(b), nil
}
