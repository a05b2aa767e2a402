package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/inventory"
	"github.com/nubeerp/backend/internal/domain/pricing"
	"github.com/nubeerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SalesNoteService creates and manages sales delivery notes. Creation ships
// goods to a customer: every line must be covered by current stock, which is
// debited inside the same transaction that inserts the note.
type SalesNoteService struct {
	tx          TransactionScope
	noteRepo    delivery.DeliveryNoteRepository
	idempotency shared.IdempotencyStore
	guardTTL    time.Duration
	logger      *zap.Logger
}

// NewSalesNoteService creates a new sales note service
func NewSalesNoteService(tx TransactionScope, noteRepo delivery.DeliveryNoteRepository, logger *zap.Logger) *SalesNoteService {
	return &SalesNoteService{
		tx:       tx,
		noteRepo: noteRepo,
		guardTTL: defaultCreateGuardTTL,
		logger:   logger,
	}
}

// SetIdempotencyStore enables duplicate-submission protection for create
// requests that carry a reference
func (s *SalesNoteService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetCreateGuardTTL overrides the duplicate-submission window
func (s *SalesNoteService) SetCreateGuardTTL(ttl time.Duration) {
	if ttl > 0 {
		s.guardTTL = ttl
	}
}

// Create builds a sales delivery note. Availability is checked for every
// line before any line is created, so a request that cannot be fully served
// fails on the first uncoverable line without touching stock. The actual
// debit is still conditional: a concurrent sale that drains stock between
// the check and the debit rolls the whole transaction back.
func (s *SalesNoteService) Create(ctx context.Context, companyID uuid.UUID, req CreateDeliveryNoteRequest) (*DeliveryNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.guardDuplicate(ctx, companyID, req.Reference); err != nil {
		return nil, err
	}

	var note *delivery.DeliveryNote
	err := s.tx.Execute(ctx, func(repos TxRepositories) error {
		customer, err := repos.Customers().FindByIDForCompany(ctx, companyID, req.PartnerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return &delivery.PartnerNotFoundError{CompanyID: companyID, PartnerID: req.PartnerID}
			}
			return fmt.Errorf("load customer: %w", err)
		}

		tariff, err := loadTariff(ctx, repos, companyID, customer.SellTariffID)
		if err != nil {
			return err
		}

		// Resolve all articles and check availability up front, in request
		// order, so the first uncoverable line is the one reported.
		type resolvedLine struct {
			article *catalog.Article
			family  *catalog.Family
			request CreateNoteLineRequest
		}
		resolved := make([]resolvedLine, 0, len(req.Lines))
		for _, lineReq := range req.Lines {
			article, family, err := loadArticleWithFamily(ctx, repos, companyID, lineReq.ArticleID)
			if err != nil {
				return err
			}

			enough, available, err := repos.StockLedger().HasEnoughStock(ctx, companyID, article.ID, lineReq.Quantity)
			if err != nil {
				return fmt.Errorf("check stock for article %s: %w", article.ID, err)
			}
			if !enough {
				return &inventory.InsufficientStockError{
					ArticleID:   article.ID,
					ArticleName: article.Name,
					Available:   available,
					Requested:   lineReq.Quantity,
				}
			}

			resolved = append(resolved, resolvedLine{article: article, family: family, request: lineReq})
		}

		note, err = delivery.NewDeliveryNote(companyID, delivery.NoteTypeSales, customer.ID, customer.Name, req.Date, req.Reference)
		if err != nil {
			return err
		}

		for _, line := range resolved {
			price := pricing.ResolvePrice(line.request.Price, tariff, line.article, pricing.TariffTypeSell)
			if _, err := note.AddLine(line.article, line.request.Quantity, price, line.family.IvaPercentage); err != nil {
				return err
			}

			if err := repos.StockLedger().DecreaseStock(ctx, companyID, line.article.ID, line.request.Quantity); err != nil {
				var insufficient *inventory.InsufficientStockError
				if errors.As(err, &insufficient) && insufficient.ArticleName == "" {
					insufficient.ArticleName = line.article.Name
				}
				return err
			}
		}

		return repos.Notes().Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales delivery note created",
		zap.String("note_id", note.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.String("customer_id", note.PartnerID.String()),
		zap.Int("lines", note.LineCount()),
		zap.String("total", note.TotalAmount().String()))

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// Confirm touches the note's update timestamp. Stock and billing status are
// left untouched.
func (s *SalesNoteService) Confirm(ctx context.Context, companyID, noteID uuid.UUID) (*DeliveryNoteResponse, error) {
	return confirmNote(ctx, s.tx, companyID, noteID, delivery.NoteTypeSales, s.logger)
}

// GetByID loads a sales note with its lines
func (s *SalesNoteService) GetByID(ctx context.Context, companyID, noteID uuid.UUID) (*DeliveryNoteResponse, error) {
	return getNote(ctx, s.noteRepo, companyID, noteID, delivery.NoteTypeSales)
}

// List returns a page of the company's sales notes
func (s *SalesNoteService) List(ctx context.Context, companyID uuid.UUID, filter NoteListFilter) (*shared.Paginated[DeliveryNoteResponse], error) {
	return listNotes(ctx, s.noteRepo, companyID, delivery.NoteTypeSales, filter)
}

func (s *SalesNoteService) guardDuplicate(ctx context.Context, companyID uuid.UUID, reference string) error {
	return guardDuplicateCreate(ctx, s.idempotency, companyID, delivery.NoteTypeSales, reference, s.guardTTL, s.logger)
}
