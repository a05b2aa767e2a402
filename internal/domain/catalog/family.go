package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Family groups articles that share a tax (IVA) percentage.
// It is mutated rarely but read on every delivery note line calculation.
type Family struct {
	shared.CompanyAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	IvaPercentage decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Family) TableName() string {
	return "families"
}

// NewFamily creates a new article family
func NewFamily(companyID uuid.UUID, name string, ivaPercentage decimal.Decimal) (*Family, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Family name cannot be empty")
	}
	if ivaPercentage.IsNegative() {
		return nil, shared.NewDomainError("INVALID_IVA", "IVA percentage cannot be negative")
	}
	if ivaPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_IVA", "IVA percentage cannot exceed 100")
	}

	return &Family{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		IvaPercentage:        ivaPercentage,
	}, nil
}

// UpdateIvaPercentage changes the tax rate applied to the family's articles
func (f *Family) UpdateIvaPercentage(ivaPercentage decimal.Decimal) error {
	if ivaPercentage.IsNegative() {
		return shared.NewDomainError("INVALID_IVA", "IVA percentage cannot be negative")
	}
	if ivaPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_IVA", "IVA percentage cannot exceed 100")
	}

	f.IvaPercentage = ivaPercentage
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}
