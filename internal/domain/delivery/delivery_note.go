package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/nubeerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// NoteType distinguishes purchase delivery notes (goods received from a
// supplier) from sales delivery notes (goods shipped to a customer).
type NoteType string

const (
	NoteTypePurchase NoteType = "PURCHASE"
	NoteTypeSales    NoteType = "SALES"
)

// IsValid checks if the type is a valid NoteType
func (t NoteType) IsValid() bool {
	return t == NoteTypePurchase || t == NoteTypeSales
}

// String returns the string representation of NoteType
func (t NoteType) String() string {
	return string(t)
}

// DeliveryNoteLine is one line of a delivery note. Its amounts are computed
// and frozen at creation time and never recomputed afterward.
type DeliveryNoteLine struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	DeliveryNoteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNumber     int             `gorm:"not null"`
	ArticleID      uuid.UUID       `gorm:"type:uuid;not null"`
	ArticleName    string          `gorm:"type:varchar(200);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IvaAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeliveryNoteLine) TableName() string {
	return "delivery_note_lines"
}

// PriceMoney returns the frozen unit price as Money
func (l *DeliveryNoteLine) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(l.Price)
}

// TotalMoney returns the frozen line total as Money
func (l *DeliveryNoteLine) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(l.Total)
}

// DeliveryNote records goods received (purchase) or shipped (sales) for one
// partner. It is the aggregate root: it exclusively owns its lines, which
// are cascade-created with the note and never independently mutated.
type DeliveryNote struct {
	shared.CompanyAggregateRoot
	NoteType      NoteType           `gorm:"type:varchar(10);not null;index"`
	PartnerID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	PartnerName   string             `gorm:"type:varchar(200);not null"`
	Date          time.Time          `gorm:"not null;index"`
	Reference     string             `gorm:"type:varchar(100)"`
	BillingStatus BillingStatus      `gorm:"not null;default:0"`
	Lines         []DeliveryNoteLine `gorm:"foreignKey:DeliveryNoteID;references:ID"`
}

// TableName returns the table name for GORM
func (DeliveryNote) TableName() string {
	return "delivery_notes"
}

// NewDeliveryNote creates a delivery note shell with no lines and billing
// status Pending
func NewDeliveryNote(companyID uuid.UUID, noteType NoteType, partnerID uuid.UUID, partnerName string, date time.Time, reference string) (*DeliveryNote, error) {
	if !noteType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTE_TYPE", "Note type must be PURCHASE or SALES")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID cannot be empty")
	}
	if partnerName == "" {
		return nil, shared.NewDomainError("INVALID_PARTNER_NAME", "Partner name cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Note date cannot be empty")
	}

	return &DeliveryNote{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		NoteType:             noteType,
		PartnerID:            partnerID,
		PartnerName:          partnerName,
		Date:                 date,
		Reference:            reference,
		BillingStatus:        BillingStatusPending,
		Lines:                make([]DeliveryNoteLine, 0),
	}, nil
}

// AddLine computes the amounts for one line and appends it to the note.
// The line is frozen from this point on. Lines are appended strictly in the
// order the caller supplies them.
func (n *DeliveryNote) AddLine(article *catalog.Article, quantity decimal.Decimal, price valueobject.Money, ivaPercentage decimal.Decimal) (*DeliveryNoteLine, error) {
	if article == nil {
		return nil, shared.NewDomainError("INVALID_ARTICLE", "Article cannot be nil")
	}

	amounts, err := ComputeLineAmounts(quantity, price, ivaPercentage)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	line := DeliveryNoteLine{
		ID:             uuid.New(),
		DeliveryNoteID: n.ID,
		LineNumber:     len(n.Lines) + 1,
		ArticleID:      article.ID,
		ArticleName:    article.Name,
		Quantity:       quantity,
		Price:          price.Amount(),
		Subtotal:       amounts.Subtotal,
		IvaAmount:      amounts.IvaAmount,
		Total:          amounts.Total,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	n.Lines = append(n.Lines, line)
	n.UpdatedAt = now

	return &n.Lines[len(n.Lines)-1], nil
}

// Confirm touches the update timestamp only. It performs no stock or
// billing-status change; the operation is a stable contract point for a
// future invoicing step.
func (n *DeliveryNote) Confirm() {
	n.Touch()
}

// LineCount returns the number of lines on the note
func (n *DeliveryNote) LineCount() int {
	return len(n.Lines)
}

// SubtotalAmount returns the sum of all line subtotals
func (n *DeliveryNote) SubtotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range n.Lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

// IvaAmount returns the sum of all line tax amounts
func (n *DeliveryNote) IvaAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range n.Lines {
		total = total.Add(line.IvaAmount)
	}
	return total
}

// TotalAmount returns the sum of all line totals
func (n *DeliveryNote) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range n.Lines {
		total = total.Add(line.Total)
	}
	return total
}

// TotalAmountMoney returns the note total as Money
func (n *DeliveryNote) TotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(n.TotalAmount())
}

// IsPurchase returns true for purchase notes
func (n *DeliveryNote) IsPurchase() bool {
	return n.NoteType == NoteTypePurchase
}

// IsSales returns true for sales notes
func (n *DeliveryNote) IsSales() bool {
	return n.NoteType == NoteTypeSales
}
