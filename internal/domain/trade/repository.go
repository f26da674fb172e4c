package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its line items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate finds an order by ID acquiring a row lock on the header.
	// Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByDocumentNumber finds an order by its document number
	FindByDocumentNumber(ctx context.Context, number string) (*Order, error)

	// FindAll finds orders of a kind matching the filter
	FindAll(ctx context.Context, kind OrderKind, filter shared.Filter) ([]Order, error)

	// Count counts orders of a kind matching the filter
	Count(ctx context.Context, kind OrderKind, filter shared.Filter) (int64, error)

	// Insert persists a new order header plus all line items
	Insert(ctx context.Context, order *Order) error

	// DocumentSequence reads back the database-assigned sequence of an
	// inserted order, used to derive the document number
	DocumentSequence(ctx context.Context, orderID uuid.UUID) (int64, error)

	// UpdateDocumentNumber writes the assigned document number to the header
	UpdateDocumentNumber(ctx context.Context, orderID uuid.UUID, number string) error

	// Update persists header changes (and line changes while Draft)
	Update(ctx context.Context, order *Order) error

	// ExistsByCounterpart reports whether any order references the contact
	ExistsByCounterpart(ctx context.Context, contactID uuid.UUID) (bool, error)

	// ExistsByInventoryItem reports whether any order line references the item
	ExistsByInventoryItem(ctx context.Context, itemID uuid.UUID) (bool, error)

	// Delete removes the order's line rows then its header row
	Delete(ctx context.Context, id uuid.UUID) error
}
