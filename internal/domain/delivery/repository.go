package delivery

import (
	"context"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/shared"
)

// DeliveryNoteRepository defines persistence operations for delivery notes.
// Save persists the note and all its lines as one unit; lookups load the
// note with its lines and are company-scoped.
type DeliveryNoteRepository interface {
	shared.CompanyRepository[DeliveryNote]
	FindByTypeForCompany(ctx context.Context, companyID uuid.UUID, noteType NoteType, filter shared.Filter) ([]DeliveryNote, error)
	CountByTypeForCompany(ctx context.Context, companyID uuid.UUID, noteType NoteType, filter shared.Filter) (int64, error)
}
