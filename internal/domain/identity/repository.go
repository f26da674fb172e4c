package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a user (insert or update)
	Save(ctx context.Context, user *User) error
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role with its permissions by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByCode finds a role by its unique code
	FindByCode(ctx context.Context, code string) (*Role, error)

	// FindAll returns all roles
	FindAll(ctx context.Context) ([]Role, error)

	// Save persists a role and its permission rows
	Save(ctx context.Context, role *Role) error

	// Delete removes a non-system role
	Delete(ctx context.Context, id uuid.UUID) error
}
