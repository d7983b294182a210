package storage

import (
	"backoffice/pkg/domain"
	"context"
	"time"
)

// UserCursor is a keyset pagination position over (created_at, id). Both
// fields are required: created_at alone is not unique, rows created in the
// same transaction share a timestamp.
type UserCursor struct {
	CreatedAt time.Time
	ID        domain.UserID
}

// IsZero reports whether the cursor points at the start of the listing.
func (c UserCursor) IsZero() bool {
	return c.CreatedAt.IsZero()
}

// UserStorage provides read access to user accounts for authentication and
// administration.
type UserStorage interface {
	// GetUserByEmail returns the active user with the given email, or nil when
	// no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CountUsers returns the total number of active users.
	CountUsers(ctx context.Context) (int64, error)

	// ListUsers returns a page of users ordered by created_at DESC, id DESC.
	// A zero cursor starts from the newest user. The returned cursor is zero
	// when there is no further page.
	ListUsers(ctx context.Context, cursor UserCursor, limit uint) ([]domain.User, UserCursor, error)
}

// StatsStorage exposes the connectivity and statistics probes used by the
// startup diagnostic and the health/database-check endpoints.
type StatsStorage interface {
	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// TableCounts counts the rows of the four core tables.
	TableCounts(ctx context.Context) (domain.TableCounts, error)

	// ServerVersion returns the numeric server version (e.g. 170002).
	ServerVersion(ctx context.Context) (int, error)
}
