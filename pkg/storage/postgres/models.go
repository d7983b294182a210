package postgres

import (
	"backoffice/pkg/domain"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PgUser is the database representation of a user row.
type PgUser struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	PasswordHash string         `db:"password_hash"`
	ProfileID    uuid.NullUUID  `db:"profile_id"`
	Active       bool           `db:"active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}

// ToDomain converts a database row to the domain representation.
func (u *PgUser) ToDomain() *domain.User {
	out := &domain.User{
		ID:           domain.UserID(u.ID),
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
	}
	if u.ProfileID.Valid {
		pid := domain.ProfileID(u.ProfileID.UUID)
		out.ProfileID = &pid
	}
	if u.UpdatedAt.Valid {
		out.UpdatedAt = u.UpdatedAt.Time
	}

	return out
}
