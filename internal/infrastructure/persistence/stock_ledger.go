package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/inventory"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStockLedger implements StockLedger on the articles table.
// The debit is a single conditional UPDATE with a stock >= quantity guard,
// so concurrent sales can never drive committed stock negative regardless
// of isolation level.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// IncreaseStock unconditionally adds to the article's stock
func (l *GormStockLedger) IncreaseStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) error {
	result := l.db.WithContext(ctx).
		Model(&articleStockRow{}).
		Where("company_id = ? AND id = ?", companyID, articleID).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasEnoughStock reports whether current stock covers the requested
// quantity. The read is advisory and does not reserve anything.
func (l *GormStockLedger) HasEnoughStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) (bool, decimal.Decimal, error) {
	available, err := l.stockOf(ctx, companyID, articleID)
	if err != nil {
		return false, decimal.Zero, err
	}
	return available.GreaterThanOrEqual(quantity), available, nil
}

// DecreaseStock atomically subtracts from stock. The row is only updated
// when it still covers the quantity; zero affected rows means the debit
// was rejected.
func (l *GormStockLedger) DecreaseStock(ctx context.Context, companyID, articleID uuid.UUID, quantity decimal.Decimal) error {
	result := l.db.WithContext(ctx).
		Model(&articleStockRow{}).
		Where("company_id = ? AND id = ? AND stock >= ?", companyID, articleID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Rejected: either the article is gone or stock is short
	available, err := l.stockOf(ctx, companyID, articleID)
	if err != nil {
		return err
	}
	return inventory.NewInsufficientStockError(articleID, available, quantity)
}

func (l *GormStockLedger) stockOf(ctx context.Context, companyID, articleID uuid.UUID) (decimal.Decimal, error) {
	var row articleStockRow
	if err := l.db.WithContext(ctx).
		Select("stock").
		Where("company_id = ? AND id = ?", companyID, articleID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, err
	}
	return row.Stock, nil
}

// articleStockRow maps the stock-relevant columns of the articles table
type articleStockRow struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Stock     decimal.Decimal
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (articleStockRow) TableName() string {
	return "articles"
}

var _ inventory.StockLedger = (*GormStockLedger)(nil)
