package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/partner"
	"github.com/nubeerp/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens an isolated in-memory database with the full schema
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A second pool connection would see a fresh empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&catalog.Family{},
		&catalog.Article{},
		&pricing.Tariff{},
		&pricing.TariffItem{},
		&partner.Supplier{},
		&partner.Customer{},
		&delivery.DeliveryNote{},
		&delivery.DeliveryNoteLine{},
	)
	require.NoError(t, err)

	return db
}

// companyFixture is a seeded company with one family, one article, one
// supplier and one customer
type companyFixture struct {
	companyID uuid.UUID
	family    *catalog.Family
	article   *catalog.Article
	supplier  *partner.Supplier
	customer  *partner.Customer
}

func seedCompany(t *testing.T, db *gorm.DB) *companyFixture {
	t.Helper()
	ctx := context.Background()
	companyID := uuid.New()

	family, err := catalog.NewFamily(companyID, "Electronics", decimal.NewFromInt(21))
	require.NoError(t, err)
	require.NoError(t, NewGormFamilyRepository(db).Save(ctx, family))

	article, err := catalog.NewArticle(companyID, family.ID, "ART-001", "USB Cable",
		decimal.RequireFromString("10.0000"), decimal.RequireFromString("15.0000"))
	require.NoError(t, err)
	require.NoError(t, NewGormArticleRepository(db).Save(ctx, article))

	supplier, err := partner.NewSupplier(companyID, "SUP-001", "Acme Components")
	require.NoError(t, err)
	require.NoError(t, NewGormSupplierRepository(db).Save(ctx, supplier))

	customer, err := partner.NewCustomer(companyID, "CUS-001", "Retail GmbH")
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(ctx, customer))

	return &companyFixture{
		companyID: companyID,
		family:    family,
		article:   article,
		supplier:  supplier,
		customer:  customer,
	}
}

func setStock(t *testing.T, db *gorm.DB, articleID uuid.UUID, stock string) {
	t.Helper()
	err := db.Model(&catalog.Article{}).
		Where("id = ?", articleID).
		Update("stock", decimal.RequireFromString(stock)).Error
	require.NoError(t, err)
}

func stockOf(t *testing.T, db *gorm.DB, articleID uuid.UUID) decimal.Decimal {
	t.Helper()
	var article catalog.Article
	require.NoError(t, db.First(&article, "id = ?", articleID).Error)
	return article.Stock
}
