package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/partner"
)

// CreateContactRequest represents a request to create a contact
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Type    string `json:"type" binding:"required,oneof=CUSTOMER VENDOR PROSPECT"`
	Company string `json:"company" binding:"max=200"`
	Notes   string `json:"notes" binding:"max=2000"`
}

// UpdateContactRequest represents a request to update a contact
type UpdateContactRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Type    *string `json:"type"`
	Company *string `json:"company"`
	Notes   *string `json:"notes"`
}

// ContactListFilter represents filter options for contact lists
type ContactListFilter struct {
	Search   string  `form:"search"`
	Type     *string `form:"type"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email,omitempty"`
	Phone     string              `json:"phone,omitempty"`
	Type      partner.ContactType `json:"type"`
	Company   string              `json:"company,omitempty"`
	Notes     string              `json:"notes,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToContactResponse converts a contact aggregate to its response DTO
func ToContactResponse(contact *partner.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Type:      contact.Type,
		Company:   contact.Company,
		Notes:     contact.Notes,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

// ToContactResponses converts contacts to response DTOs
func ToContactResponses(contacts []partner.Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}
