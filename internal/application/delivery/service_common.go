package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/pricing"
	"github.com/nubeerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// loadTariff fetches the partner's assigned tariff with its live items.
// A nil tariffID or a tariff that has been deleted since assignment both
// resolve to no tariff: price resolution then falls through to base prices.
func loadTariff(ctx context.Context, repos TxRepositories, companyID uuid.UUID, tariffID *uuid.UUID) (*pricing.Tariff, error) {
	if tariffID == nil {
		return nil, nil
	}

	tariff, err := repos.Tariffs().FindByIDForCompany(ctx, companyID, *tariffID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load tariff: %w", err)
	}
	return tariff, nil
}

// loadArticleWithFamily fetches an article and the family that determines
// its tax rate
func loadArticleWithFamily(ctx context.Context, repos TxRepositories, companyID, articleID uuid.UUID) (*catalog.Article, *catalog.Family, error) {
	article, err := repos.Articles().FindByIDForCompany(ctx, companyID, articleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, &delivery.ArticleNotFoundError{CompanyID: companyID, ArticleID: articleID}
		}
		return nil, nil, fmt.Errorf("load article: %w", err)
	}

	family, err := repos.Families().FindByIDForCompany(ctx, companyID, article.FamilyID)
	if err != nil {
		return nil, nil, fmt.Errorf("load family for article %s: %w", articleID, err)
	}

	return article, family, nil
}

// loadNoteOfType fetches a note and verifies it is of the expected kind.
// A note of the other kind behaves as not found so that the purchase and
// sales endpoints stay disjoint.
func loadNoteOfType(ctx context.Context, repo delivery.DeliveryNoteRepository, companyID, noteID uuid.UUID, noteType delivery.NoteType) (*delivery.DeliveryNote, error) {
	note, err := repo.FindByIDForCompany(ctx, companyID, noteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &delivery.NoteNotFoundError{CompanyID: companyID, NoteID: noteID}
		}
		return nil, fmt.Errorf("load delivery note: %w", err)
	}
	if note.NoteType != noteType {
		return nil, &delivery.NoteNotFoundError{CompanyID: companyID, NoteID: noteID}
	}
	return note, nil
}

func confirmNote(ctx context.Context, tx TransactionScope, companyID, noteID uuid.UUID, noteType delivery.NoteType, logger *zap.Logger) (*DeliveryNoteResponse, error) {
	var note *delivery.DeliveryNote
	err := tx.Execute(ctx, func(repos TxRepositories) error {
		var err error
		note, err = loadNoteOfType(ctx, repos.Notes(), companyID, noteID, noteType)
		if err != nil {
			return err
		}

		note.Confirm()
		return repos.Notes().Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("delivery note confirmed",
		zap.String("note_id", note.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.String("note_type", noteType.String()))

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

func getNote(ctx context.Context, repo delivery.DeliveryNoteRepository, companyID, noteID uuid.UUID, noteType delivery.NoteType) (*DeliveryNoteResponse, error) {
	note, err := loadNoteOfType(ctx, repo, companyID, noteID, noteType)
	if err != nil {
		return nil, err
	}

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

func listNotes(ctx context.Context, repo delivery.DeliveryNoteRepository, companyID uuid.UUID, noteType delivery.NoteType, filter NoteListFilter) (*shared.Paginated[DeliveryNoteResponse], error) {
	domainFilter := filter.toDomainFilter()

	notes, err := repo.FindByTypeForCompany(ctx, companyID, noteType, domainFilter)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}

	total, err := repo.CountByTypeForCompany(ctx, companyID, noteType, domainFilter)
	if err != nil {
		return nil, fmt.Errorf("count delivery notes: %w", err)
	}

	paginated := shared.NewPaginated(ToDeliveryNoteResponses(notes), total, domainFilter.Page, domainFilter.PageSize)
	return &paginated, nil
}

// guardDuplicateCreate claims the note reference for the duration of the
// guard TTL. A second create with the same reference inside the window is
// rejected as a duplicate. References are optional; requests without one
// are never guarded.
func guardDuplicateCreate(ctx context.Context, store shared.IdempotencyStore, companyID uuid.UUID, noteType delivery.NoteType, reference string, ttl time.Duration, logger *zap.Logger) error {
	if store == nil || reference == "" {
		return nil
	}

	key := fmt.Sprintf("delivery-note:%s:%s:%s", companyID, noteType, reference)
	fresh, err := store.MarkProcessed(ctx, key, ttl)
	if err != nil {
		// The guard is best-effort: a store outage must not block creates.
		logger.Warn("idempotency store unavailable, skipping duplicate guard",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	if !fresh {
		return shared.NewDomainError("DUPLICATE_REFERENCE", "A delivery note with this reference was just submitted")
	}
	return nil
}
