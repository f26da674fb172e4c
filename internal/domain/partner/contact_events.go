package partner

import (
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeContact = "Contact"

// Event type constants
const (
	EventTypeContactCreated = "ContactCreated"
	EventTypeContactDeleted = "ContactDeleted"
)

// ContactCreatedEvent is published when a new contact is created
type ContactCreatedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID   `json:"contact_id"`
	Name      string      `json:"name"`
	Type      ContactType `json:"type"`
}

// NewContactCreatedEvent creates a new ContactCreatedEvent
func NewContactCreatedEvent(contact *Contact) *ContactCreatedEvent {
	return &ContactCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactCreated, contact.ID, AggregateTypeContact),
		ContactID:       contact.ID,
		Name:            contact.Name,
		Type:            contact.Type,
	}
}

// ContactDeletedEvent is published when a contact is deleted
type ContactDeletedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	Name      string    `json:"name"`
}

// NewContactDeletedEvent creates a new ContactDeletedEvent
func NewContactDeletedEvent(contact *Contact) *ContactDeletedEvent {
	return &ContactDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactDeleted, contact.ID, AggregateTypeContact),
		ContactID:       contact.ID,
		Name:            contact.Name,
	}
}
