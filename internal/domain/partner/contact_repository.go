package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByID finds a contact by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindByEmail finds contacts sharing an email address
	FindByEmail(ctx context.Context, email string) ([]Contact, error)

	// FindAll finds all contacts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Contact, error)

	// FindByType finds contacts of a given type
	FindByType(ctx context.Context, contactType ContactType, filter shared.Filter) ([]Contact, error)

	// Count counts contacts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists a contact (insert or update)
	Save(ctx context.Context, contact *Contact) error

	// Delete removes a contact by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
