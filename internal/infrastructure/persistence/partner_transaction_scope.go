package persistence

import (
	"context"

	"gorm.io/gorm"

	apppartner "github.com/ledgerline/backend/internal/application/partner"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// GormPartnerTransactionScope implements the contact module's
// TransactionScope using GORM transactions
type GormPartnerTransactionScope struct {
	db *gorm.DB
}

// NewGormPartnerTransactionScope creates a new GormPartnerTransactionScope
func NewGormPartnerTransactionScope(db *gorm.DB) *GormPartnerTransactionScope {
	return &GormPartnerTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormPartnerTransactionScope) Execute(ctx context.Context, fn func(repos apppartner.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPartnerRepositories{tx: tx})
	})
}

type gormPartnerRepositories struct {
	tx *gorm.DB
}

// ContactRepo returns the contact repository scoped to the current transaction
func (r *gormPartnerRepositories) ContactRepo() partner.ContactRepository {
	return NewGormContactRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormPartnerRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Ensure GormPartnerTransactionScope implements TransactionScope
var _ apppartner.TransactionScope = (*GormPartnerTransactionScope)(nil)

// Ensure gormPartnerRepositories implements TransactionalRepositories
var _ apppartner.TransactionalRepositories = (*gormPartnerRepositories)(nil)
