package delivery

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateNoteLineRequest is one requested line of a delivery note.
// Price is optional: when present it overrides tariff and base prices.
type CreateNoteLineRequest struct {
	ArticleID uuid.UUID        `json:"article_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// CreateDeliveryNoteRequest is the request to create a purchase or sales
// delivery note
type CreateDeliveryNoteRequest struct {
	PartnerID uuid.UUID               `json:"partner_id"`
	Date      time.Time               `json:"date"`
	Reference string                  `json:"reference,omitempty"`
	Lines     []CreateNoteLineRequest `json:"lines"`
}

// Validate checks the request before any mutation happens
func (r CreateDeliveryNoteRequest) Validate() error {
	if r.PartnerID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Partner ID is required")
	}
	if r.Date.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Note date is required")
	}
	if len(r.Lines) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "At least one line is required")
	}
	for i, line := range r.Lines {
		if line.ArticleID == uuid.Nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Line "+itoa(i)+": article ID is required")
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("VALIDATION_ERROR", "Line "+itoa(i)+": quantity must be positive")
		}
		if line.Price != nil && line.Price.IsNegative() {
			return shared.NewDomainError("VALIDATION_ERROR", "Line "+itoa(i)+": price cannot be negative")
		}
	}
	return nil
}

func itoa(i int) string {
	return strconv.Itoa(i + 1)
}

// PartnerResponse identifies the note's partner in API responses
type PartnerResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NoteLineResponse is one persisted line in API responses
type NoteLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	LineNumber  int             `json:"line_number"`
	ArticleID   uuid.UUID       `json:"article_id"`
	ArticleName string          `json:"article_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	IvaAmount   decimal.Decimal `json:"iva_amount"`
	Total       decimal.Decimal `json:"total"`
}

// DeliveryNoteResponse is the persisted note with partner and lines populated
type DeliveryNoteResponse struct {
	ID            uuid.UUID          `json:"id"`
	CompanyID     uuid.UUID          `json:"company_id"`
	NoteType      string             `json:"note_type"`
	Partner       PartnerResponse    `json:"partner"`
	Date          time.Time          `json:"date"`
	Reference     string             `json:"reference,omitempty"`
	BillingStatus string             `json:"billing_status"`
	Lines         []NoteLineResponse `json:"lines"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	IvaAmount     decimal.Decimal    `json:"iva_amount"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToDeliveryNoteResponse converts a domain note to its API representation
func ToDeliveryNoteResponse(note *delivery.DeliveryNote) DeliveryNoteResponse {
	lines := make([]NoteLineResponse, 0, len(note.Lines))
	for _, line := range note.Lines {
		lines = append(lines, NoteLineResponse{
			ID:          line.ID,
			LineNumber:  line.LineNumber,
			ArticleID:   line.ArticleID,
			ArticleName: line.ArticleName,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Subtotal:    line.Subtotal,
			IvaAmount:   line.IvaAmount,
			Total:       line.Total,
		})
	}

	return DeliveryNoteResponse{
		ID:        note.ID,
		CompanyID: note.CompanyID,
		NoteType:  note.NoteType.String(),
		Partner: PartnerResponse{
			ID:   note.PartnerID,
			Name: note.PartnerName,
		},
		Date:          note.Date,
		Reference:     note.Reference,
		BillingStatus: note.BillingStatus.String(),
		Lines:         lines,
		Subtotal:      note.SubtotalAmount(),
		IvaAmount:     note.IvaAmount(),
		Total:         note.TotalAmount(),
		CreatedAt:     note.CreatedAt,
		UpdatedAt:     note.UpdatedAt,
	}
}

// ToDeliveryNoteResponses converts a slice of domain notes
func ToDeliveryNoteResponses(notes []delivery.DeliveryNote) []DeliveryNoteResponse {
	responses := make([]DeliveryNoteResponse, 0, len(notes))
	for idx := range notes {
		responses = append(responses, ToDeliveryNoteResponse(&notes[idx]))
	}
	return responses
}

// NoteListFilter holds list filtering and pagination options
type NoteListFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	PartnerID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

func (f NoteListFilter) toDomainFilter() shared.Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.OrderBy == "" {
		f.OrderBy = "created_at"
	}
	if f.OrderDir == "" {
		f.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if f.PartnerID != nil {
		domainFilter.Filters["partner_id"] = *f.PartnerID
	}
	if f.StartDate != nil {
		domainFilter.Filters["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		domainFilter.Filters["end_date"] = *f.EndDate
	}
	return domainFilter
}
