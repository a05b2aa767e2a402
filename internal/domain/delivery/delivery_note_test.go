package delivery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNote(t *testing.T, noteType NoteType) *DeliveryNote {
	note, err := NewDeliveryNote(uuid.New(), noteType, uuid.New(), "Test Partner",
		time.Now(), "REF-001")
	require.NoError(t, err)
	return note
}

func createNoteTestArticle(t *testing.T, companyID uuid.UUID) *catalog.Article {
	article, err := catalog.NewArticle(companyID, uuid.New(), "ART-001", "Test Article",
		decimal.NewFromFloat(8), decimal.NewFromFloat(12))
	require.NoError(t, err)
	return article
}

func TestNoteType_IsValid(t *testing.T) {
	assert.True(t, NoteTypePurchase.IsValid())
	assert.True(t, NoteTypeSales.IsValid())
	assert.False(t, NoteType("RETURN").IsValid())
	assert.False(t, NoteType("").IsValid())
}

func TestBillingStatus(t *testing.T) {
	assert.True(t, BillingStatusPending.IsValid())
	assert.True(t, BillingStatusInvoiced.IsValid())
	assert.False(t, BillingStatus(99).IsValid())

	assert.Equal(t, "PENDING", BillingStatusPending.String())
	assert.Equal(t, "INVOICED", BillingStatusInvoiced.String())
	assert.Equal(t, "UNKNOWN", BillingStatus(99).String())
}

func TestNewDeliveryNote(t *testing.T) {
	t.Run("creates pending note with no lines", func(t *testing.T) {
		note := createTestNote(t, NoteTypePurchase)

		assert.Equal(t, BillingStatusPending, note.BillingStatus)
		assert.Equal(t, 0, note.LineCount())
		assert.True(t, note.IsPurchase())
		assert.False(t, note.IsSales())
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewDeliveryNote(uuid.New(), NoteType("BAD"), uuid.New(), "Partner", time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("rejects empty partner", func(t *testing.T) {
		_, err := NewDeliveryNote(uuid.New(), NoteTypeSales, uuid.Nil, "Partner", time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewDeliveryNote(uuid.New(), NoteTypeSales, uuid.New(), "Partner", time.Time{}, "")
		assert.Error(t, err)
	})
}

func TestDeliveryNote_AddLine(t *testing.T) {
	note := createTestNote(t, NoteTypeSales)
	article := createNoteTestArticle(t, note.CompanyID)

	line, err := note.AddLine(article, decimal.NewFromInt(3),
		valueobject.NewMoneyEURFromFloat(10), decimal.NewFromInt(21))
	require.NoError(t, err)

	assert.Equal(t, article.ID, line.ArticleID)
	assert.Equal(t, article.Name, line.ArticleName)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, line.IvaAmount.Equal(decimal.RequireFromString("6.3")))
	assert.True(t, line.Total.Equal(decimal.RequireFromString("36.3")))
	assert.Equal(t, 1, note.LineCount())

	t.Run("lines keep caller order", func(t *testing.T) {
		second := createNoteTestArticle(t, note.CompanyID)
		_, err := note.AddLine(second, decimal.NewFromInt(1),
			valueobject.NewMoneyEURFromFloat(5), decimal.NewFromInt(10))
		require.NoError(t, err)

		assert.Equal(t, article.ID, note.Lines[0].ArticleID)
		assert.Equal(t, second.ID, note.Lines[1].ArticleID)
	})

	t.Run("rejects nil article", func(t *testing.T) {
		_, err := note.AddLine(nil, decimal.NewFromInt(1),
			valueobject.NewMoneyEURFromFloat(5), decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := note.AddLine(article, decimal.Zero,
			valueobject.NewMoneyEURFromFloat(5), decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestDeliveryNote_Totals(t *testing.T) {
	note := createTestNote(t, NoteTypePurchase)
	articleA := createNoteTestArticle(t, note.CompanyID)
	articleB := createNoteTestArticle(t, note.CompanyID)

	_, err := note.AddLine(articleA, decimal.NewFromInt(3),
		valueobject.NewMoneyEURFromFloat(10), decimal.NewFromInt(21))
	require.NoError(t, err)
	_, err = note.AddLine(articleB, decimal.NewFromInt(2),
		valueobject.NewMoneyEURFromFloat(5), decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, note.SubtotalAmount().Equal(decimal.NewFromInt(40)))
	assert.True(t, note.IvaAmount().Equal(decimal.RequireFromString("7.3")))
	assert.True(t, note.TotalAmount().Equal(decimal.RequireFromString("47.3")))
	assert.Equal(t, valueobject.EUR, note.TotalAmountMoney().Currency())
}

func TestDeliveryNote_Confirm(t *testing.T) {
	note := createTestNote(t, NoteTypeSales)
	article := createNoteTestArticle(t, note.CompanyID)
	_, err := note.AddLine(article, decimal.NewFromInt(1),
		valueobject.NewMoneyEURFromFloat(10), decimal.NewFromInt(21))
	require.NoError(t, err)

	before := note.UpdatedAt
	version := note.GetVersion()
	lineUpdatedAt := note.Lines[0].UpdatedAt
	status := note.BillingStatus

	time.Sleep(time.Millisecond)
	note.Confirm()

	// Confirm touches only the note's own timestamp and version
	assert.True(t, note.UpdatedAt.After(before))
	assert.Equal(t, version+1, note.GetVersion())
	assert.Equal(t, status, note.BillingStatus)
	assert.Equal(t, lineUpdatedAt, note.Lines[0].UpdatedAt)
}
