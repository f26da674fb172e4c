package trade

import (
	"fmt"
	"time"
)

// Document number prefixes per order kind
const (
	DocumentPrefixPurchase = "PO"
	DocumentPrefixSale     = "PV"
)

// DocumentPrefix returns the human-readable prefix for an order kind
func DocumentPrefix(kind OrderKind) string {
	if kind == OrderKindPurchase {
		return DocumentPrefixPurchase
	}
	return DocumentPrefixSale
}

// FormatDocumentNumber builds the document number for an order.
// The format is "<PREFIX>-<YYYYMM>-<seq>", e.g. "PV-202407-42" for a sale.
// seq is the order's database sequence value, assigned on insert, so
// uniqueness follows from row uniqueness and no counter table is needed.
func FormatDocumentNumber(kind OrderKind, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%d", DocumentPrefix(kind), date.Format("200601"), seq)
}
