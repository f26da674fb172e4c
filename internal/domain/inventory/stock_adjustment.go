package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// StockAdjustment is an append-only audit record of a stock movement.
// Every AdjustStock call, whether manual or order-driven, leaves one row so
// the stock history of an item is reconstructable.
type StockAdjustment struct {
	shared.BaseEntity
	ItemID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Delta          int64      `gorm:"not null"`
	ResultingStock int64      `gorm:"not null"`
	Reason         string     `gorm:"type:varchar(500);not null"`
	ActorID        *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// NewStockAdjustment creates an audit record for an applied stock delta
func NewStockAdjustment(itemID uuid.UUID, delta, resultingStock int64, reason string, actorID *uuid.UUID) *StockAdjustment {
	return &StockAdjustment{
		BaseEntity:     shared.NewBaseEntity(),
		ItemID:         itemID,
		Delta:          delta,
		ResultingStock: resultingStock,
		Reason:         reason,
		ActorID:        actorID,
	}
}

// Age returns how long ago the adjustment was recorded
func (a *StockAdjustment) Age() time.Duration {
	return time.Since(a.CreatedAt)
}
