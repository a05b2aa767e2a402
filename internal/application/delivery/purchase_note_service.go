package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/pricing"
	"github.com/nubeerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// defaultCreateGuardTTL is how long a reference-carrying create request is
// held against duplicate submission.
const defaultCreateGuardTTL = 2 * time.Minute

// PurchaseNoteService creates and manages purchase delivery notes.
// Creation records goods received from a supplier and increases stock for
// every line inside one transaction.
type PurchaseNoteService struct {
	tx          TransactionScope
	noteRepo    delivery.DeliveryNoteRepository
	idempotency shared.IdempotencyStore
	guardTTL    time.Duration
	logger      *zap.Logger
}

// NewPurchaseNoteService creates a new purchase note service
func NewPurchaseNoteService(tx TransactionScope, noteRepo delivery.DeliveryNoteRepository, logger *zap.Logger) *PurchaseNoteService {
	return &PurchaseNoteService{
		tx:       tx,
		noteRepo: noteRepo,
		guardTTL: defaultCreateGuardTTL,
		logger:   logger,
	}
}

// SetIdempotencyStore enables duplicate-submission protection for create
// requests that carry a reference
func (s *PurchaseNoteService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetCreateGuardTTL overrides the duplicate-submission window
func (s *PurchaseNoteService) SetCreateGuardTTL(ttl time.Duration) {
	if ttl > 0 {
		s.guardTTL = ttl
	}
}

// Create builds a purchase delivery note. Price resolution, line amount
// computation, stock increases and the note insert all happen inside one
// transaction; any failure leaves no trace.
func (s *PurchaseNoteService) Create(ctx context.Context, companyID uuid.UUID, req CreateDeliveryNoteRequest) (*DeliveryNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.guardDuplicate(ctx, companyID, req.Reference); err != nil {
		return nil, err
	}

	var note *delivery.DeliveryNote
	err := s.tx.Execute(ctx, func(repos TxRepositories) error {
		supplier, err := repos.Suppliers().FindByIDForCompany(ctx, companyID, req.PartnerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return &delivery.PartnerNotFoundError{CompanyID: companyID, PartnerID: req.PartnerID}
			}
			return fmt.Errorf("load supplier: %w", err)
		}

		tariff, err := loadTariff(ctx, repos, companyID, supplier.BuyTariffID)
		if err != nil {
			return err
		}

		note, err = delivery.NewDeliveryNote(companyID, delivery.NoteTypePurchase, supplier.ID, supplier.Name, req.Date, req.Reference)
		if err != nil {
			return err
		}

		for _, lineReq := range req.Lines {
			article, family, err := loadArticleWithFamily(ctx, repos, companyID, lineReq.ArticleID)
			if err != nil {
				return err
			}

			price := pricing.ResolvePrice(lineReq.Price, tariff, article, pricing.TariffTypeBuy)
			if _, err := note.AddLine(article, lineReq.Quantity, price, family.IvaPercentage); err != nil {
				return err
			}

			if err := repos.StockLedger().IncreaseStock(ctx, companyID, article.ID, lineReq.Quantity); err != nil {
				return fmt.Errorf("increase stock for article %s: %w", article.ID, err)
			}
		}

		return repos.Notes().Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase delivery note created",
		zap.String("note_id", note.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.String("supplier_id", note.PartnerID.String()),
		zap.Int("lines", note.LineCount()),
		zap.String("total", note.TotalAmount().String()))

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// Confirm touches the note's update timestamp. Stock and billing status are
// left untouched.
func (s *PurchaseNoteService) Confirm(ctx context.Context, companyID, noteID uuid.UUID) (*DeliveryNoteResponse, error) {
	return confirmNote(ctx, s.tx, companyID, noteID, delivery.NoteTypePurchase, s.logger)
}

// GetByID loads a purchase note with its lines
func (s *PurchaseNoteService) GetByID(ctx context.Context, companyID, noteID uuid.UUID) (*DeliveryNoteResponse, error) {
	return getNote(ctx, s.noteRepo, companyID, noteID, delivery.NoteTypePurchase)
}

// List returns a page of the company's purchase notes
func (s *PurchaseNoteService) List(ctx context.Context, companyID uuid.UUID, filter NoteListFilter) (*shared.Paginated[DeliveryNoteResponse], error) {
	return listNotes(ctx, s.noteRepo, companyID, delivery.NoteTypePurchase, filter)
}

func (s *PurchaseNoteService) guardDuplicate(ctx context.Context, companyID uuid.UUID, reference string) error {
	return guardDuplicateCreate(ctx, s.idempotency, companyID, delivery.NoteTypePurchase, reference, s.guardTTL, s.logger)
}
