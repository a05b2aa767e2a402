package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
)

// Supplier represents a goods supplier in the partner context.
// A supplier may have a buy tariff assigned; purchase delivery notes use it
// to resolve per-article price overrides.
type Supplier struct {
	shared.CompanyAggregateRoot
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_company_code,priority:2"`
	Name        string     `gorm:"type:varchar(200);not null"`
	TaxID       string     `gorm:"type:varchar(50)"`
	Phone       string     `gorm:"type:varchar(50)"`
	Email       string     `gorm:"type:varchar(200)"`
	Address     string     `gorm:"type:text"`
	BuyTariffID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(companyID uuid.UUID, code, name string) (*Supplier, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 strings.ToUpper(code),
		Name:                 name,
	}, nil
}

// AssignBuyTariff assigns a buy tariff to the supplier
func (s *Supplier) AssignBuyTariff(tariffID uuid.UUID) error {
	if tariffID == uuid.Nil {
		return shared.NewDomainError("INVALID_TARIFF", "Tariff ID cannot be empty")
	}

	s.BuyTariffID = &tariffID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ClearBuyTariff removes the tariff assignment
func (s *Supplier) ClearBuyTariff() {
	s.BuyTariffID = nil
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// HasTariff returns true if the supplier has a buy tariff assigned
func (s *Supplier) HasTariff() bool {
	return s.BuyTariffID != nil
}

func validatePartnerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Partner code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Partner code cannot exceed 50 characters")
	}
	return nil
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot exceed 200 characters")
	}
	return nil
}
