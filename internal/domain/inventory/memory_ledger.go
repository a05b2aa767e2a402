package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

type stockKey struct {
	companyID uuid.UUID
	articleID uuid.UUID
}

// MemoryStockLedger is an in-memory StockLedger. It is the reference
// implementation of the ledger contract, used by unit tests and by the
// application layer's contract tests; a single mutex makes the
// check-and-debit in DecreaseStock atomic.
type MemoryStockLedger struct {
	mu     sync.Mutex
	stocks map[stockKey]decimal.Decimal
}

// NewMemoryStockLedger creates an empty in-memory ledger
func NewMemoryStockLedger() *MemoryStockLedger {
	return &MemoryStockLedger{
		stocks: make(map[stockKey]decimal.Decimal),
	}
}

// SetStock seeds the ledger with an absolute quantity for an article
func (l *MemoryStockLedger) SetStock(companyID, articleID uuid.UUID, quantity decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stocks[stockKey{companyID, articleID}] = quantity
}

// StockOf returns the current quantity on hand for an article
func (l *MemoryStockLedger) StockOf(companyID, articleID uuid.UUID) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stocks[stockKey{companyID, articleID}]
}

// IncreaseStock unconditionally adds to the article's stock
func (l *MemoryStockLedger) IncreaseStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := stockKey{companyID, articleID}
	l.stocks[key] = l.stocks[key].Add(quantity)
	return nil
}

// HasEnoughStock reports whether current stock covers the requested quantity
func (l *MemoryStockLedger) HasEnoughStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) (bool, decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	available := l.stocks[stockKey{companyID, articleID}]
	return available.GreaterThanOrEqual(quantity), available, nil
}

// DecreaseStock atomically subtracts from stock, failing instead of driving
// the quantity negative
func (l *MemoryStockLedger) DecreaseStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := stockKey{companyID, articleID}
	available := l.stocks[key]
	if available.LessThan(quantity) {
		return NewInsufficientStockError(articleID, available, quantity)
	}

	l.stocks[key] = available.Sub(quantity)
	return nil
}

// Ensure MemoryStockLedger implements StockLedger
var _ StockLedger = (*MemoryStockLedger)(nil)
