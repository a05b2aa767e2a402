package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TariffType distinguishes purchase price lists from sale price lists
type TariffType string

const (
	TariffTypeBuy  TariffType = "BUY"
	TariffTypeSell TariffType = "SELL"
)

// IsValid checks if the type is a valid TariffType
func (t TariffType) IsValid() bool {
	return t == TariffTypeBuy || t == TariffTypeSell
}

// String returns the string representation of TariffType
func (t TariffType) String() string {
	return string(t)
}

// TariffItem is a per-article price override within a tariff.
// A soft-deleted item is skipped during price resolution; resolution then
// falls through to the article's base price.
type TariffItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	TariffID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tariff_item_tariff_article,priority:1"`
	ArticleID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tariff_item_tariff_article,priority:2"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for GORM
func (TariffItem) TableName() string {
	return "tariff_items"
}

// NewTariffItem creates a new tariff item
func NewTariffItem(tariffID, articleID uuid.UUID, price decimal.Decimal) (*TariffItem, error) {
	if articleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARTICLE", "Article ID cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Tariff item price cannot be negative")
	}

	now := time.Now()
	return &TariffItem{
		ID:        uuid.New(),
		TariffID:  tariffID,
		ArticleID: articleID,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Tariff is a named price list of type Buy or Sell, owned by a company and
// optionally assigned to suppliers (buy) or customers (sell).
type Tariff struct {
	shared.CompanyAggregateRoot
	Name  string       `gorm:"type:varchar(200);not null"`
	Type  TariffType   `gorm:"type:varchar(10);not null"`
	Items []TariffItem `gorm:"foreignKey:TariffID;references:ID"`
}

// TableName returns the table name for GORM
func (Tariff) TableName() string {
	return "tariffs"
}

// NewTariff creates a new tariff
func NewTariff(companyID uuid.UUID, name string, tariffType TariffType) (*Tariff, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tariff name cannot be empty")
	}
	if !tariffType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Tariff type must be BUY or SELL")
	}

	return &Tariff{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Type:                 tariffType,
		Items:                make([]TariffItem, 0),
	}, nil
}

// AddItem adds a per-article price override to the tariff
func (t *Tariff) AddItem(articleID uuid.UUID, price decimal.Decimal) (*TariffItem, error) {
	for _, item := range t.Items {
		if item.ArticleID == articleID && !item.DeletedAt.Valid {
			return nil, shared.NewDomainError("DUPLICATE_ARTICLE", "Article already has a price in this tariff")
		}
	}

	item, err := NewTariffItem(t.ID, articleID, price)
	if err != nil {
		return nil, err
	}

	t.Items = append(t.Items, *item)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return item, nil
}

// ItemFor returns the live price override for the given article, or nil if
// the tariff has none. Soft-deleted items are skipped.
func (t *Tariff) ItemFor(articleID uuid.UUID) *TariffItem {
	for idx := range t.Items {
		if t.Items[idx].ArticleID == articleID && !t.Items[idx].DeletedAt.Valid {
			return &t.Items[idx]
		}
	}
	return nil
}
