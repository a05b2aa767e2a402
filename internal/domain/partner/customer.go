package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
)

// Customer represents a goods customer in the partner context.
// A customer may have a sell tariff assigned; sales delivery notes use it
// to resolve per-article price overrides.
type Customer struct {
	shared.CompanyAggregateRoot
	Code         string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_company_code,priority:2"`
	Name         string     `gorm:"type:varchar(200);not null"`
	TaxID        string     `gorm:"type:varchar(50)"`
	Phone        string     `gorm:"type:varchar(50)"`
	Email        string     `gorm:"type:varchar(200)"`
	Address      string     `gorm:"type:text"`
	SellTariffID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(companyID uuid.UUID, code, name string) (*Customer, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Customer{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 strings.ToUpper(code),
		Name:                 name,
	}, nil
}

// AssignSellTariff assigns a sell tariff to the customer
func (c *Customer) AssignSellTariff(tariffID uuid.UUID) error {
	if tariffID == uuid.Nil {
		return shared.NewDomainError("INVALID_TARIFF", "Tariff ID cannot be empty")
	}

	c.SellTariffID = &tariffID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// ClearSellTariff removes the tariff assignment
func (c *Customer) ClearSellTariff() {
	c.SellTariffID = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// HasTariff returns true if the customer has a sell tariff assigned
func (c *Customer) HasTariff() bool {
	return c.SellTariffID != nil
}
