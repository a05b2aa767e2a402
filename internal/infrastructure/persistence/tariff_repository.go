package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/pricing"
	"github.com/nubeerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTariffRepository implements TariffRepository using GORM.
// Lookups preload the tariff's items; soft-deleted items are excluded by
// GORM's deleted_at handling.
type GormTariffRepository struct {
	db *gorm.DB
}

// NewGormTariffRepository creates a new GormTariffRepository
func NewGormTariffRepository(db *gorm.DB) *GormTariffRepository {
	return &GormTariffRepository{db: db}
}

// FindByID finds a tariff with its items by ID
func (r *GormTariffRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.Tariff, error) {
	var tariff pricing.Tariff
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&tariff, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tariff, nil
}

// FindByIDForCompany finds a tariff with its items by ID within a company
func (r *GormTariffRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*pricing.Tariff, error) {
	var tariff pricing.Tariff
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&tariff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tariff, nil
}

// FindAllForCompany finds all tariffs for a company
func (r *GormTariffRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]pricing.Tariff, error) {
	var tariffs []pricing.Tariff
	query := applyFilter(
		r.db.WithContext(ctx).Model(&pricing.Tariff{}).
			Preload("Items").
			Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Find(&tariffs).Error; err != nil {
		return nil, err
	}
	return tariffs, nil
}

// FindByTypeForCompany finds tariffs of one type for a company
func (r *GormTariffRepository) FindByTypeForCompany(ctx context.Context, companyID uuid.UUID, tariffType pricing.TariffType, filter shared.Filter) ([]pricing.Tariff, error) {
	var tariffs []pricing.Tariff
	query := applyFilter(
		r.db.WithContext(ctx).Model(&pricing.Tariff{}).
			Preload("Items").
			Where("company_id = ? AND type = ?", companyID, tariffType),
		filter,
	)
	if err := query.Find(&tariffs).Error; err != nil {
		return nil, err
	}
	return tariffs, nil
}

// CountForCompany counts tariffs for a company
func (r *GormTariffRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&pricing.Tariff{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a tariff and its items
func (r *GormTariffRepository) Save(ctx context.Context, tariff *pricing.Tariff) error {
	return r.db.WithContext(ctx).Save(tariff).Error
}

// Delete soft-deletes a tariff. Items are left in place; a deleted tariff
// is never resolved against because the partner lookup fails first.
func (r *GormTariffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.Tariff{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ pricing.TariffRepository = (*GormTariffRepository)(nil)
