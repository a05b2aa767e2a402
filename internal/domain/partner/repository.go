package partner

import (
	"github.com/nubeerp/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.CompanyRepository[Supplier]
}

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.CompanyRepository[Customer]
}
