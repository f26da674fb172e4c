package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// ContactService handles contact business operations
type ContactService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewContactService creates a new ContactService
func NewContactService(scope TransactionScope) *ContactService {
	return &ContactService{scope: scope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ContactService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new contact
func (s *ContactService) Create(ctx context.Context, req CreateContactRequest) (*ContactResponse, error) {
	var created *partner.Contact
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		contact, err := partner.NewContact(req.Name, req.Email, req.Phone, partner.ContactType(strings.ToUpper(req.Type)))
		if err != nil {
			return err
		}
		if req.Company != "" {
			contact.SetCompany(req.Company)
		}
		if req.Notes != "" {
			contact.SetNotes(req.Notes)
		}

		if err := repos.ContactRepo().Save(ctx, contact); err != nil {
			return err
		}

		created = contact
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, created)

	response := ToContactResponse(created)
	return &response, nil
}

// Update changes a contact's fields
func (s *ContactService) Update(ctx context.Context, contactID uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	var updated *partner.Contact
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		contact, err := repos.ContactRepo().FindByID(ctx, contactID)
		if err != nil {
			return err
		}

		name := contact.Name
		if req.Name != nil {
			name = *req.Name
		}
		email := contact.Email
		if req.Email != nil {
			email = *req.Email
		}
		phone := contact.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		company := contact.Company
		if req.Company != nil {
			company = *req.Company
		}
		contactType := contact.Type
		if req.Type != nil {
			contactType = partner.ContactType(strings.ToUpper(*req.Type))
		}

		if err := contact.Update(name, email, phone, company, contactType); err != nil {
			return err
		}
		if req.Notes != nil {
			contact.SetNotes(*req.Notes)
		}

		if err := repos.ContactRepo().Save(ctx, contact); err != nil {
			return err
		}

		updated = contact
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(updated)
	return &response, nil
}

// Delete removes a contact. Contacts referenced by orders cannot be deleted;
// the order history keeps pointing at a real counterpart.
func (s *ContactService) Delete(ctx context.Context, contactID uuid.UUID) error {
	var deleted *partner.Contact
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		contact, err := repos.ContactRepo().FindByID(ctx, contactID)
		if err != nil {
			return err
		}

		referenced, err := repos.OrderRepo().ExistsByCounterpart(ctx, contact.ID)
		if err != nil {
			return err
		}
		if referenced {
			return shared.ErrHasDependents
		}

		if err := repos.ContactRepo().Delete(ctx, contact.ID); err != nil {
			return err
		}

		contact.AddDomainEvent(partner.NewContactDeletedEvent(contact))
		deleted = contact
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvents(ctx, deleted)
	return nil
}

// GetByID retrieves a contact by ID
func (s *ContactService) GetByID(ctx context.Context, contactID uuid.UUID) (*ContactResponse, error) {
	var found *partner.Contact
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		contact, err := repos.ContactRepo().FindByID(ctx, contactID)
		if err != nil {
			return err
		}
		found = contact
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(found)
	return &response, nil
}

// List retrieves contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, filter ContactListFilter) ([]ContactResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Type != nil {
		domainFilter.Filters["type"] = strings.ToUpper(*filter.Type)
	}

	var contacts []partner.Contact
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		contacts, err = repos.ContactRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.ContactRepo().Count(ctx, domainFilter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return ToContactResponses(contacts), total, nil
}

func (s *ContactService) publishEvents(ctx context.Context, contact *partner.Contact) {
	if s.eventPublisher == nil || contact == nil {
		return
	}
	for _, event := range contact.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	contact.ClearDomainEvents()
}
