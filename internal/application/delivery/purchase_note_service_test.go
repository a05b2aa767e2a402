package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/partner"
	"github.com/nubeerp/backend/internal/domain/pricing"
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type purchaseFixture struct {
	companyID uuid.UUID
	repos     *fakeTxRepos
	service   *PurchaseNoteService
	family    *catalog.Family
	article   *catalog.Article
	supplier  *partner.Supplier
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	ctx := context.Background()
	companyID := uuid.New()
	repos := newFakeTxRepos()

	family, err := catalog.NewFamily(companyID, "Electronics", decimal.NewFromInt(21))
	require.NoError(t, err)
	require.NoError(t, repos.families.Save(ctx, family))

	article, err := catalog.NewArticle(companyID, family.ID, "ART-001", "USB Cable",
		decimal.RequireFromString("10.0000"), decimal.RequireFromString("15.0000"))
	require.NoError(t, err)
	require.NoError(t, repos.articles.Save(ctx, article))

	supplier, err := partner.NewSupplier(companyID, "SUP-001", "Acme Components")
	require.NoError(t, err)
	require.NoError(t, repos.suppliers.Save(ctx, supplier))

	service := NewPurchaseNoteService(&fakeScope{repos: repos}, repos.notes, zap.NewNop())

	return &purchaseFixture{
		companyID: companyID,
		repos:     repos,
		service:   service,
		family:    family,
		article:   article,
		supplier:  supplier,
	}
}

func (f *purchaseFixture) request(lines ...CreateNoteLineRequest) CreateDeliveryNoteRequest {
	return CreateDeliveryNoteRequest{
		PartnerID: f.supplier.ID,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Lines:     lines,
	}
}

func TestPurchaseNoteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the article buy price when there is no tariff or explicit price", func(t *testing.T) {
		f := newPurchaseFixture(t)

		resp, err := f.service.Create(ctx, f.companyID, f.request(CreateNoteLineRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(3),
		}))

		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, "PURCHASE", resp.NoteType)
		assert.Equal(t, "PENDING", resp.BillingStatus)
		assert.Equal(t, f.supplier.Name, resp.Partner.Name)
		assert.True(t, resp.Lines[0].Price.Equal(decimal.RequireFromString("10.0000")))
		assert.True(t, resp.Lines[0].Subtotal.Equal(decimal.RequireFromString("30.0000")))
		assert.True(t, resp.Lines[0].IvaAmount.Equal(decimal.RequireFromString("6.3000")))
		assert.True(t, resp.Lines[0].Total.Equal(decimal.RequireFromString("36.3000")))
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("36.3000")))

		stock := f.repos.ledger.StockOf(f.companyID, f.article.ID)
		assert.True(t, stock.Equal(decimal.NewFromInt(3)), "stock should be increased, got %s", stock)
	})

	t.Run("prefers the supplier tariff price over the buy price", func(t *testing.T) {
		f := newPurchaseFixture(t)

		tariff, err := pricing.NewTariff(f.companyID, "Preferred supplier", pricing.TariffTypeBuy)
		require.NoError(t, err)
		_, err = tariff.AddItem(f.article.ID, decimal.RequireFromString("8.5000"))
		require.NoError(t, err)
		require.NoError(t, f.repos.tariffs.Save(ctx, tariff))
		require.NoError(t, f.supplier.AssignBuyTariff(tariff.ID))

		resp, err := f.service.Create(ctx, f.companyID, f.request(CreateNoteLineRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(2),
		}))

		require.NoError(t, err)
		assert.True(t, resp.Lines[0].Price.Equal(decimal.RequireFromString("8.5000")))
	})

	t.Run("prefers an explicit line price over the tariff", func(t *testing.T) {
		f := newPurchaseFixture(t)

		tariff, err := pricing.NewTariff(f.companyID, "Preferred supplier", pricing.TariffTypeBuy)
		require.NoError(t, err)
		_, err = tariff.AddItem(f.article.ID, decimal.RequireFromString("8.5000"))
		require.NoError(t, err)
		require.NoError(t, f.repos.tariffs.Save(ctx, tariff))
		require.NoError(t, f.supplier.AssignBuyTariff(tariff.ID))

		explicit := decimal.RequireFromString("7.2500")
		resp, err := f.service.Create(ctx, f.companyID, f.request(CreateNoteLineRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(2),
			Price:     &explicit,
		}))

		require.NoError(t, err)
		assert.True(t, resp.Lines[0].Price.Equal(explicit))
	})

	t.Run("falls through to the buy price when the assigned tariff no longer exists", func(t *testing.T) {
		f := newPurchaseFixture(t)
		require.NoError(t, f.supplier.AssignBuyTariff(uuid.New()))

		resp, err := f.service.Create(ctx, f.companyID, f.request(CreateNoteLineRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(1),
		}))

		require.NoError(t, err)
		assert.True(t, resp.Lines[0].Price.Equal(decimal.RequireFromString("10.0000")))
	})

	t.Run("rejects an unknown supplier", func(t *testing.T) {
		f := newPurchaseFixture(t)
		req := f.request(CreateNoteLineRequest{ArticleID: f.article.ID, Quantity: decimal.NewFromInt(1)})
		req.PartnerID = uuid.New()

		_, err := f.service.Create(ctx, f.companyID, req)

		var notFound *delivery.PartnerNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, req.PartnerID, notFound.PartnerID)
	})

	t.Run("rejects a supplier that belongs to another company", func(t *testing.T) {
		f := newPurchaseFixture(t)

		_, err := f.service.Create(ctx, uuid.New(), f.request(CreateNoteLineRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(1),
		}))

		var notFound *delivery.PartnerNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("rejects an unknown article", func(t *testing.T) {
		f := newPurchaseFixture(t)
		missingID := uuid.New()

		_, err := f.service.Create(ctx, f.companyID, f.request(CreateNoteLineRequest{
			ArticleID: missingID,
			Quantity:  decimal.NewFromInt(1),
		}))

		var notFound *delivery.ArticleNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, missingID, notFound.ArticleID)
	})

	t.Run("rejects invalid requests before touching anything", func(t *testing.T) {
		f := newPurchaseFixture(t)

		tests := []struct {
			name   string
			mutate func(*CreateDeliveryNoteRequest)
		}{
			{"missing partner", func(r *CreateDeliveryNoteRequest) { r.PartnerID = uuid.Nil }},
			{"missing date", func(r *CreateDeliveryNoteRequest) { r.Date = time.Time{} }},
			{"no lines", func(r *CreateDeliveryNoteRequest) { r.Lines = nil }},
			{"zero quantity", func(r *CreateDeliveryNoteRequest) { r.Lines[0].Quantity = decimal.Zero }},
			{"negative quantity", func(r *CreateDeliveryNoteRequest) { r.Lines[0].Quantity = decimal.NewFromInt(-1) }},
			{"negative price", func(r *CreateDeliveryNoteRequest) {
				negative := decimal.NewFromInt(-5)
				r.Lines[0].Price = &negative
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := f.request(CreateNoteLineRequest{ArticleID: f.article.ID, Quantity: decimal.NewFromInt(1)})
				tt.mutate(&req)

				_, err := f.service.Create(ctx, f.companyID, req)

				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
				assert.True(t, f.repos.ledger.StockOf(f.companyID, f.article.ID).IsZero())
			})
		}
	})

	t.Run("rejects a duplicate reference inside the guard window", func(t *testing.T) {
		f := newPurchaseFixture(t)
		f.service.SetIdempotencyStore(newFakeIdempotencyStore())

		req := f.request(CreateNoteLineRequest{ArticleID: f.article.ID, Quantity: decimal.NewFromInt(1)})
		req.Reference = "PO-2025-0042"

		_, err := f.service.Create(ctx, f.companyID, req)
		require.NoError(t, err)

		_, err = f.service.Create(ctx, f.companyID, req)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_REFERENCE", domainErr.Code)
	})

	t.Run("allows the same reference in different companies", func(t *testing.T) {
		f := newPurchaseFixture(t)
		f.service.SetIdempotencyStore(newFakeIdempotencyStore())
		ctxBg := context.Background()

		otherCompany := uuid.New()
		otherSupplier, err := partner.NewSupplier(otherCompany, "SUP-OTH", "Other Supplier")
		require.NoError(t, err)
		require.NoError(t, f.repos.suppliers.Save(ctxBg, otherSupplier))
		otherFamily, err := catalog.NewFamily(otherCompany, "Electronics", decimal.NewFromInt(21))
		require.NoError(t, err)
		require.NoError(t, f.repos.families.Save(ctxBg, otherFamily))
		otherArticle, err := catalog.NewArticle(otherCompany, otherFamily.ID, "ART-001", "USB Cable",
			decimal.NewFromInt(10), decimal.NewFromInt(15))
		require.NoError(t, err)
		require.NoError(t, f.repos.articles.Save(ctxBg, otherArticle))

		req := f.request(CreateNoteLineRequest{ArticleID: f.article.ID, Quantity: decimal.NewFromInt(1)})
		req.Reference = "DN-SHARED"
		_, err = f.service.Create(ctx, f.companyID, req)
		require.NoError(t, err)

		otherReq := CreateDeliveryNoteRequest{
			PartnerID: otherSupplier.ID,
			Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Reference: "DN-SHARED",
			Lines:     []CreateNoteLineRequest{{ArticleID: otherArticle.ID, Quantity: decimal.NewFromInt(1)}},
		}
		_, err = f.service.Create(ctx, otherCompany, otherReq)
		require.NoError(t, err)
	})
}

func TestPurchaseNoteService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("touches the note without changing status or stock", func(t *testing.T) {
		f := newPurchaseFixture(t)

		created, err := f.service.Create(ctx, f.companyID, f.request(CreateNoteLineRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(3),
		}))
		require.NoError(t, err)

		confirmed, err := f.service.Confirm(ctx, f.companyID, created.ID)
		require.NoError(t, err)

		assert.Equal(t, "PENDING", confirmed.BillingStatus)
		assert.False(t, confirmed.UpdatedAt.Before(created.UpdatedAt))
		assert.True(t, f.repos.ledger.StockOf(f.companyID, f.article.ID).Equal(decimal.NewFromInt(3)))
	})

	t.Run("reports not found for an unknown note", func(t *testing.T) {
		f := newPurchaseFixture(t)

		_, err := f.service.Confirm(ctx, f.companyID, uuid.New())

		var notFound *delivery.NoteNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("reports not found for a note of another company", func(t *testing.T) {
		f := newPurchaseFixture(t)

		created, err := f.service.Create(ctx, f.companyID, f.request(CreateNoteLineRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(1),
		}))
		require.NoError(t, err)

		_, err = f.service.Confirm(ctx, uuid.New(), created.ID)

		var notFound *delivery.NoteNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestPurchaseNoteService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the note with its lines", func(t *testing.T) {
		f := newPurchaseFixture(t)

		created, err := f.service.Create(ctx, f.companyID, f.request(CreateNoteLineRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(2),
		}))
		require.NoError(t, err)

		got, err := f.service.GetByID(ctx, f.companyID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, f.article.Name, got.Lines[0].ArticleName)
	})

	t.Run("does not serve sales notes", func(t *testing.T) {
		f := newPurchaseFixture(t)

		customer, err := partner.NewCustomer(f.companyID, "CUS-001", "Retail GmbH")
		require.NoError(t, err)
		require.NoError(t, f.repos.customers.Save(ctx, customer))
		f.repos.ledger.SetStock(f.companyID, f.article.ID, decimal.NewFromInt(10))

		sales := NewSalesNoteService(&fakeScope{repos: f.repos}, f.repos.notes, zap.NewNop())
		salesNote, err := sales.Create(ctx, f.companyID, CreateDeliveryNoteRequest{
			PartnerID: customer.ID,
			Date:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			Lines:     []CreateNoteLineRequest{{ArticleID: f.article.ID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)

		_, err = f.service.GetByID(ctx, f.companyID, salesNote.ID)

		var notFound *delivery.NoteNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
