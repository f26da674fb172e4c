package trade

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// StockShortage describes a single order line that cannot be fulfilled
type StockShortage struct {
	LineIndex int       `json:"line_index"`
	ItemID    uuid.UUID `json:"item_id"`
	SKU       string    `json:"sku"`
	Requested int64     `json:"requested"`
	Available int64     `json:"available"`
}

// InsufficientStockError is returned when one or more order lines would drive
// stock negative. It carries every failing line, not just the first, so the
// caller can report the whole order in one pass.
type InsufficientStockError struct {
	Shortages []StockShortage
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		parts[i] = fmt.Sprintf("line %d (%s): requested %d, available %d", s.LineIndex, s.SKU, s.Requested, s.Available)
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// Code returns the domain error code for API mapping
func (e *InsufficientStockError) Code() string {
	return "INSUFFICIENT_STOCK"
}
