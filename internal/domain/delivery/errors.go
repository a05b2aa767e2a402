package delivery

import (
	"fmt"

	"github.com/google/uuid"
)

// PartnerNotFoundError reports a supplier or customer that is absent,
// soft-deleted, or belongs to another company.
type PartnerNotFoundError struct {
	CompanyID uuid.UUID
	PartnerID uuid.UUID
}

// Error implements the error interface
func (e *PartnerNotFoundError) Error() string {
	return fmt.Sprintf("partner %s not found in company %s", e.PartnerID, e.CompanyID)
}

// ArticleNotFoundError reports an article referenced by a note line that is
// absent, soft-deleted, or belongs to another company.
type ArticleNotFoundError struct {
	CompanyID uuid.UUID
	ArticleID uuid.UUID
}

// Error implements the error interface
func (e *ArticleNotFoundError) Error() string {
	return fmt.Sprintf("article %s not found in company %s", e.ArticleID, e.CompanyID)
}

// NoteNotFoundError reports a confirm or read against an absent or
// soft-deleted delivery note.
type NoteNotFoundError struct {
	CompanyID uuid.UUID
	NoteID    uuid.UUID
}

// Error implements the error interface
func (e *NoteNotFoundError) Error() string {
	return fmt.Sprintf("delivery note %s not found in company %s", e.NoteID, e.CompanyID)
}
