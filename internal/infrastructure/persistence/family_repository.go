package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFamilyRepository implements FamilyRepository using GORM
type GormFamilyRepository struct {
	db *gorm.DB
}

// NewGormFamilyRepository creates a new GormFamilyRepository
func NewGormFamilyRepository(db *gorm.DB) *GormFamilyRepository {
	return &GormFamilyRepository{db: db}
}

// FindByID finds a family by its ID
func (r *GormFamilyRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Family, error) {
	var family catalog.Family
	if err := r.db.WithContext(ctx).First(&family, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &family, nil
}

// FindByIDForCompany finds a family by ID within a company
func (r *GormFamilyRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*catalog.Family, error) {
	var family catalog.Family
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &family, nil
}

// FindAllForCompany finds all families for a company
func (r *GormFamilyRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Family, error) {
	var families []catalog.Family
	query := applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Family{}).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Find(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

// CountForCompany counts families for a company
func (r *GormFamilyRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Family{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a family
func (r *GormFamilyRepository) Save(ctx context.Context, family *catalog.Family) error {
	return r.db.WithContext(ctx).Save(family).Error
}

// Delete soft-deletes a family
func (r *GormFamilyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Family{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.FamilyRepository = (*GormFamilyRepository)(nil)
