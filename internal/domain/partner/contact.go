package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/ledgerline/backend/internal/domain/shared"
)

// ContactType represents the business relationship of a contact
type ContactType string

const (
	ContactTypeCustomer ContactType = "CUSTOMER"
	ContactTypeVendor   ContactType = "VENDOR"
	ContactTypeProspect ContactType = "PROSPECT"
)

// IsValid checks if the contact type is a known value
func (t ContactType) IsValid() bool {
	switch t {
	case ContactTypeCustomer, ContactTypeVendor, ContactTypeProspect:
		return true
	}
	return false
}

// String returns the string representation of ContactType
func (t ContactType) String() string {
	return string(t)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Contact represents a customer, vendor or prospect in the CRM context.
// It is the aggregate root for contact-related operations.
// Email is intentionally not unique: multiple contacts may share an address
// (e.g. several people at the same company inbox).
type Contact struct {
	shared.BaseAggregateRoot
	Name    string      `gorm:"type:varchar(200);not null"`
	Email   string      `gorm:"type:varchar(200);index"`
	Phone   string      `gorm:"type:varchar(50)"`
	Type    ContactType `gorm:"type:varchar(20);not null;index"`
	Company string      `gorm:"type:varchar(200)"`
	Notes   string      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact with required fields
func NewContact(name, email, phone string, contactType ContactType) (*Contact, error) {
	if err := validateContactName(name); err != nil {
		return nil, err
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	if !contactType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONTACT_TYPE", "Contact type must be CUSTOMER, VENDOR or PROSPECT")
	}

	contact := &Contact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             email,
		Phone:             phone,
		Type:              contactType,
	}

	contact.AddDomainEvent(NewContactCreatedEvent(contact))

	return contact, nil
}

// Update changes the mutable contact fields
func (c *Contact) Update(name, email, phone, company string, contactType ContactType) error {
	if err := validateContactName(name); err != nil {
		return err
	}
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	if !contactType.IsValid() {
		return shared.NewDomainError("INVALID_CONTACT_TYPE", "Contact type must be CUSTOMER, VENDOR or PROSPECT")
	}

	c.Name = strings.TrimSpace(name)
	c.Email = email
	c.Phone = phone
	c.Company = company
	c.Type = contactType
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCompany sets the company name
func (c *Contact) SetCompany(company string) {
	c.Company = company
	c.UpdatedAt = time.Now()
}

// SetNotes sets the free-form notes
func (c *Contact) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
}

// IsVendor reports whether the contact can act as an order counterpart on the purchasing side
func (c *Contact) IsVendor() bool {
	return c.Type == ContactTypeVendor
}

// IsCustomer reports whether the contact can act as an order counterpart on the sales side
func (c *Contact) IsCustomer() bool {
	return c.Type == ContactTypeCustomer
}

func validateContactName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot exceed 200 characters")
	}
	return nil
}
