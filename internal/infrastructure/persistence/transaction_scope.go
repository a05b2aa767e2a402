package persistence

import (
	"context"

	appdelivery "github.com/nubeerp/backend/internal/application/delivery"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/inventory"
	"github.com/nubeerp/backend/internal/domain/partner"
	"github.com/nubeerp/backend/internal/domain/pricing"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every repository handed to fn is bound to the same transaction; an error
// from fn rolls everything back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appdelivery.TxRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepositories{tx: tx})
	})
}

// gormTxRepositories provides transaction-bound repositories
type gormTxRepositories struct {
	tx *gorm.DB
}

func (r *gormTxRepositories) Articles() catalog.ArticleRepository {
	return NewGormArticleRepository(r.tx)
}

func (r *gormTxRepositories) Families() catalog.FamilyRepository {
	return NewGormFamilyRepository(r.tx)
}

func (r *gormTxRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *gormTxRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTxRepositories) Tariffs() pricing.TariffRepository {
	return NewGormTariffRepository(r.tx)
}

func (r *gormTxRepositories) Notes() delivery.DeliveryNoteRepository {
	return NewGormDeliveryNoteRepository(r.tx)
}

func (r *gormTxRepositories) StockLedger() inventory.StockLedger {
	return NewGormStockLedger(r.tx)
}

var _ appdelivery.TransactionScope = (*GormTransactionScope)(nil)
var _ appdelivery.TxRepositories = (*gormTxRepositories)(nil)
