// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatehouse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, never on the concrete
// GORM implementation.
type AccountRepository interface {
	// Create persists a new account. The accounts table enforces a unique
	// index on the normalized email; a violation is mapped to the domain's
	// duplicate-account error so a race between two concurrent signups with
	// the same email yields exactly one success.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail retrieves a single account by its normalized email.
	// Returns ErrAccountNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID retrieves a single account by its unique ID.
	// Returns ErrAccountNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
}
