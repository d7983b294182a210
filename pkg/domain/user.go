package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user. It is a thin wrapper around uuid.UUID to
// provide type safety at the domain layer.
type UserID uuid.UUID

// ProfileID uniquely identifies an access profile.
type ProfileID uuid.UUID

// User represents an operator account of the back office.
type User struct {
	ID        UserID
	Email     string
	FullName  string
	ProfileID *ProfileID
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// PasswordHash is the bcrypt hash of the user's password. It is never
	// serialized into API responses.
	PasswordHash string
}

// Profile is a named set of permissions a user can be assigned to.
type Profile struct {
	ID          ProfileID
	Name        string
	Description string
	CreatedAt   time.Time
}
