package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
)

// ArticleRepository defines persistence operations for articles.
// All lookups are company-scoped and exclude soft-deleted rows.
type ArticleRepository interface {
	shared.CompanyRepository[Article]
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Article, error)
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)
}

// FamilyRepository defines persistence operations for article families
type FamilyRepository interface {
	shared.CompanyRepository[Family]
}
