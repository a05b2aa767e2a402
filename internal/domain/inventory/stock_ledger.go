package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLedger tracks per-article quantity on hand, scoped by company.
// Implementations must guarantee that a committed DecreaseStock never drives
// stock negative: the availability check and the debit must be atomic with
// respect to concurrent callers.
type StockLedger interface {
	// IncreaseStock unconditionally adds to the article's stock. No upper bound.
	IncreaseStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) error

	// HasEnoughStock reports whether current stock covers the requested
	// quantity, returning the available quantity for error reporting.
	// The read is advisory: a passing check does not reserve stock.
	HasEnoughStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) (bool, decimal.Decimal, error)

	// DecreaseStock atomically subtracts from stock. Returns
	// *InsufficientStockError if the debit would drive stock negative.
	DecreaseStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) error
}

// InsufficientStockError reports a rejected stock debit. ArticleName is
// filled in by the caller when it knows the article; the ledger itself only
// knows the ID.
type InsufficientStockError struct {
	ArticleID   uuid.UUID
	ArticleName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	name := e.ArticleName
	if name == "" {
		name = e.ArticleID.String()
	}
	return fmt.Sprintf("insufficient stock for article %s: available %s, requested %s",
		name, e.Available.String(), e.Requested.String())
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(articleID uuid.UUID, available, requested decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		ArticleID: articleID,
		Available: available,
		Requested: requested,
	}
}
