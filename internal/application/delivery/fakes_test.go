package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/delivery"
	"github.com/nubeerp/backend/internal/domain/inventory"
	"github.com/nubeerp/backend/internal/domain/partner"
	"github.com/nubeerp/backend/internal/domain/pricing"
	"github.com/nubeerp/backend/internal/domain/shared"
)

// fakeCompanyRepo is a map-backed in-memory repository. ID and company
// accessors are injected because the entity types do not share a common
// field interface.
type fakeCompanyRepo[T any] struct {
	mu      sync.Mutex
	items   map[uuid.UUID]*T
	id      func(*T) uuid.UUID
	company func(*T) uuid.UUID
}

func newFakeCompanyRepo[T any](id, company func(*T) uuid.UUID) *fakeCompanyRepo[T] {
	return &fakeCompanyRepo[T]{
		items:   make(map[uuid.UUID]*T),
		id:      id,
		company: company,
	}
}

func (r *fakeCompanyRepo[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo[T]) Save(_ context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[r.id(entity)] = entity
	return nil
}

func (r *fakeCompanyRepo[T]) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeCompanyRepo[T]) FindByIDForCompany(_ context.Context, companyID, id uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok && r.company(item) == companyID {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo[T]) FindAllForCompany(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, item := range r.items {
		if r.company(item) == companyID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo[T]) CountForCompany(_ context.Context, companyID uuid.UUID, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, item := range r.items {
		if r.company(item) == companyID {
			count++
		}
	}
	return count, nil
}

type fakeArticleRepo struct {
	*fakeCompanyRepo[catalog.Article]
}

func (r *fakeArticleRepo) FindByCode(_ context.Context, companyID uuid.UUID, code string) (*catalog.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, article := range r.items {
		if article.CompanyID == companyID && article.Code == code {
			return article, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeArticleRepo) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	_, err := r.FindByCode(ctx, companyID, code)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeTariffRepo struct {
	*fakeCompanyRepo[pricing.Tariff]
}

func (r *fakeTariffRepo) FindByTypeForCompany(_ context.Context, companyID uuid.UUID, tariffType pricing.TariffType, _ shared.Filter) ([]pricing.Tariff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []pricing.Tariff
	for _, tariff := range r.items {
		if tariff.CompanyID == companyID && tariff.Type == tariffType {
			out = append(out, *tariff)
		}
	}
	return out, nil
}

type fakeNoteRepo struct {
	*fakeCompanyRepo[delivery.DeliveryNote]
}

func (r *fakeNoteRepo) FindByTypeForCompany(_ context.Context, companyID uuid.UUID, noteType delivery.NoteType, _ shared.Filter) ([]delivery.DeliveryNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []delivery.DeliveryNote
	for _, note := range r.items {
		if note.CompanyID == companyID && note.NoteType == noteType {
			out = append(out, *note)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) CountByTypeForCompany(_ context.Context, companyID uuid.UUID, noteType delivery.NoteType, _ shared.Filter) (int64, error) {
	notes, _ := r.FindByTypeForCompany(context.Background(), companyID, noteType, shared.DefaultFilter())
	return int64(len(notes)), nil
}

// fakeTxRepos bundles the in-memory repositories as one transaction view.
// It cannot roll back; rollback behavior is covered by the persistence
// layer tests.
type fakeTxRepos struct {
	articles  *fakeArticleRepo
	families  *fakeCompanyRepo[catalog.Family]
	suppliers *fakeCompanyRepo[partner.Supplier]
	customers *fakeCompanyRepo[partner.Customer]
	tariffs   *fakeTariffRepo
	notes     *fakeNoteRepo
	ledger    *inventory.MemoryStockLedger
}

func newFakeTxRepos() *fakeTxRepos {
	return &fakeTxRepos{
		articles: &fakeArticleRepo{newFakeCompanyRepo(
			func(a *catalog.Article) uuid.UUID { return a.ID },
			func(a *catalog.Article) uuid.UUID { return a.CompanyID },
		)},
		families: newFakeCompanyRepo(
			func(f *catalog.Family) uuid.UUID { return f.ID },
			func(f *catalog.Family) uuid.UUID { return f.CompanyID },
		),
		suppliers: newFakeCompanyRepo(
			func(s *partner.Supplier) uuid.UUID { return s.ID },
			func(s *partner.Supplier) uuid.UUID { return s.CompanyID },
		),
		customers: newFakeCompanyRepo(
			func(c *partner.Customer) uuid.UUID { return c.ID },
			func(c *partner.Customer) uuid.UUID { return c.CompanyID },
		),
		tariffs: &fakeTariffRepo{newFakeCompanyRepo(
			func(t *pricing.Tariff) uuid.UUID { return t.ID },
			func(t *pricing.Tariff) uuid.UUID { return t.CompanyID },
		)},
		notes: &fakeNoteRepo{newFakeCompanyRepo(
			func(n *delivery.DeliveryNote) uuid.UUID { return n.ID },
			func(n *delivery.DeliveryNote) uuid.UUID { return n.CompanyID },
		)},
		ledger: inventory.NewMemoryStockLedger(),
	}
}

func (r *fakeTxRepos) Articles() catalog.ArticleRepository    { return r.articles }
func (r *fakeTxRepos) Families() catalog.FamilyRepository     { return r.families }
func (r *fakeTxRepos) Suppliers() partner.SupplierRepository  { return r.suppliers }
func (r *fakeTxRepos) Customers() partner.CustomerRepository  { return r.customers }
func (r *fakeTxRepos) Tariffs() pricing.TariffRepository      { return r.tariffs }
func (r *fakeTxRepos) Notes() delivery.DeliveryNoteRepository { return r.notes }
func (r *fakeTxRepos) StockLedger() inventory.StockLedger     { return r.ledger }

type fakeScope struct {
	repos *fakeTxRepos
}

func (s *fakeScope) Execute(_ context.Context, fn func(repos TxRepositories) error) error {
	return fn(s.repos)
}

// fakeIdempotencyStore remembers marked keys without expiry
type fakeIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{keys: make(map[string]struct{})}
}

func (s *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = struct{}{}
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *fakeIdempotencyStore) Close() error { return nil }
