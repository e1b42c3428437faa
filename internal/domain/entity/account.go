// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents one registered user of the service. The email is stored
// in its normalized (lower-cased, trimmed) form and is unique across all
// accounts; the unique index on the accounts table is the source of truth.
type Account struct {
	ID           uuid.UUID // Assigned by PostgreSQL at creation, immutable afterwards.
	Email        string    // Normalized sign-in key.
	Name         string    // Display name, minimum length 3, not unique.
	PasswordHash string    // bcrypt digest of the password. Never serialized or logged.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
