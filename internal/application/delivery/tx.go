package delivery

import (
	"context"

	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/inventory"
	"github.com/nubeerp/backend/internal/domain/partner"
	"github.com/nubeerp/backend/internal/domain/pricing"
)

// TxRepositories exposes the repositories bound to one running transaction.
// Every repository and the stock ledger obtained from it share the same
// transaction; work done through them commits or rolls back as one unit.
type TxRepositories interface {
	Articles() catalog.ArticleRepository
	Families() catalog.FamilyRepository
	Suppliers() partner.SupplierRepository
	Customers() partner.CustomerRepository
	Tariffs() pricing.TariffRepository
	Notes() delivery.DeliveryNoteRepository
	StockLedger() inventory.StockLedger
}

// TransactionScope runs a function inside a single database transaction.
// If fn returns an error the transaction rolls back and no partial writes
// survive; otherwise it commits.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TxRepositories) error) error
}
