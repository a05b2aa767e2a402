package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDeliveryNoteRepository implements DeliveryNoteRepository using GORM.
// Notes are loaded with their lines in line-number order; Save persists the
// note and its lines as one unit within the ambient transaction.
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

// NewGormDeliveryNoteRepository creates a new GormDeliveryNoteRepository
func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_number ASC")
	})
}

// FindByID finds a delivery note with its lines by ID
func (r *GormDeliveryNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.DeliveryNote, error) {
	var note delivery.DeliveryNote
	if err := preloadLines(r.db.WithContext(ctx)).
		First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindByIDForCompany finds a delivery note with its lines within a company
func (r *GormDeliveryNoteRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*delivery.DeliveryNote, error) {
	var note delivery.DeliveryNote
	if err := preloadLines(r.db.WithContext(ctx)).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindAllForCompany finds all delivery notes for a company
func (r *GormDeliveryNoteRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]delivery.DeliveryNote, error) {
	var notes []delivery.DeliveryNote
	query := applyFilter(
		applyNoteFilters(
			preloadLines(r.db.WithContext(ctx)).Model(&delivery.DeliveryNote{}).
				Where("company_id = ?", companyID),
			filter,
		),
		filter,
	)
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// FindByTypeForCompany finds delivery notes of one type for a company
func (r *GormDeliveryNoteRepository) FindByTypeForCompany(ctx context.Context, companyID uuid.UUID, noteType delivery.NoteType, filter shared.Filter) ([]delivery.DeliveryNote, error) {
	var notes []delivery.DeliveryNote
	query := applyFilter(
		applyNoteFilters(
			preloadLines(r.db.WithContext(ctx)).Model(&delivery.DeliveryNote{}).
				Where("company_id = ? AND note_type = ?", companyID, noteType),
			filter,
		),
		filter,
	)
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// CountForCompany counts delivery notes for a company
func (r *GormDeliveryNoteRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyNoteFilters(
		r.db.WithContext(ctx).Model(&delivery.DeliveryNote{}).
			Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByTypeForCompany counts delivery notes of one type for a company
func (r *GormDeliveryNoteRepository) CountByTypeForCompany(ctx context.Context, companyID uuid.UUID, noteType delivery.NoteType, filter shared.Filter) (int64, error) {
	var count int64
	query := applyNoteFilters(
		r.db.WithContext(ctx).Model(&delivery.DeliveryNote{}).
			Where("company_id = ? AND note_type = ?", companyID, noteType),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a delivery note together with its lines
func (r *GormDeliveryNoteRepository) Save(ctx context.Context, note *delivery.DeliveryNote) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(note).Error
}

// Delete soft-deletes a delivery note. Lines are kept for audit.
func (r *GormDeliveryNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&delivery.DeliveryNote{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ delivery.DeliveryNoteRepository = (*GormDeliveryNoteRepository)(nil)
