package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/nubeerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Article represents a sellable/purchasable product in the catalog.
// It belongs to exactly one company and one family; the family carries the
// IVA percentage applied to every line the article appears on.
// Invariant: Stock >= 0 after any committed operation.
type Article struct {
	shared.CompanyAggregateRoot
	FamilyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_article_company_code,priority:2"`
	Name      string          `gorm:"type:varchar(200);not null"`
	BuyPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Article) TableName() string {
	return "articles"
}

// NewArticle creates a new article
func NewArticle(companyID, familyID uuid.UUID, code, name string, buyPrice, sellPrice decimal.Decimal) (*Article, error) {
	if familyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FAMILY", "Family ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Article code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Article code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Article name cannot be empty")
	}
	if buyPrice.IsNegative() || sellPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Article prices cannot be negative")
	}

	return &Article{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		FamilyID:             familyID,
		Code:                 strings.ToUpper(code),
		Name:                 name,
		BuyPrice:             buyPrice,
		SellPrice:            sellPrice,
		Stock:                decimal.Zero,
	}, nil
}

// BuyPriceMoney returns the base purchase price as Money
func (a *Article) BuyPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(a.BuyPrice)
}

// SellPriceMoney returns the base sale price as Money
func (a *Article) SellPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(a.SellPrice)
}

// UpdatePrices updates the base buy and sell prices
func (a *Article) UpdatePrices(buyPrice, sellPrice decimal.Decimal) error {
	if buyPrice.IsNegative() || sellPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Article prices cannot be negative")
	}

	a.BuyPrice = buyPrice
	a.SellPrice = sellPrice
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// HasStock returns true if at least the requested quantity is on hand
func (a *Article) HasStock(quantity decimal.Decimal) bool {
	return a.Stock.GreaterThanOrEqual(quantity)
}
