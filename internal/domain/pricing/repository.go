package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
)

// TariffRepository defines persistence operations for tariffs.
// FindByIDForCompany loads the tariff with its live (non-deleted) items.
type TariffRepository interface {
	shared.CompanyRepository[Tariff]
	FindByTypeForCompany(ctx context.Context, companyID uuid.UUID, tariffType TariffType, filter shared.Filter) ([]Tariff, error)
}
