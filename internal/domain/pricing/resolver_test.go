package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createResolverFixture(t *testing.T) (*catalog.Article, *Tariff) {
	companyID := uuid.New()

	article, err := catalog.NewArticle(companyID, uuid.New(), "ART-001", "Test Article",
		decimal.NewFromFloat(8), decimal.NewFromFloat(12))
	require.NoError(t, err)

	tariff, err := NewTariff(companyID, "Preferred suppliers", TariffTypeBuy)
	require.NoError(t, err)
	_, err = tariff.AddItem(article.ID, decimal.NewFromFloat(7.5))
	require.NoError(t, err)

	return article, tariff
}

func TestResolvePrice_Precedence(t *testing.T) {
	article, tariff := createResolverFixture(t)
	explicit := decimal.NewFromFloat(6.25)

	t.Run("explicit price wins over tariff item", func(t *testing.T) {
		price := ResolvePrice(&explicit, tariff, article, TariffTypeBuy)
		assert.True(t, price.Amount().Equal(explicit))
	})

	t.Run("tariff item wins over base price", func(t *testing.T) {
		price := ResolvePrice(nil, tariff, article, TariffTypeBuy)
		assert.True(t, price.Amount().Equal(decimal.NewFromFloat(7.5)))
	})

	t.Run("falls back to buy price without tariff", func(t *testing.T) {
		price := ResolvePrice(nil, nil, article, TariffTypeBuy)
		assert.True(t, price.Amount().Equal(article.BuyPrice))
	})

	t.Run("falls back to sell price on the sell side", func(t *testing.T) {
		price := ResolvePrice(nil, nil, article, TariffTypeSell)
		assert.True(t, price.Amount().Equal(article.SellPrice))
	})

	t.Run("tariff without item for the article falls through", func(t *testing.T) {
		other, err := catalog.NewArticle(article.CompanyID, uuid.New(), "ART-002", "Other",
			decimal.NewFromFloat(3), decimal.NewFromFloat(5))
		require.NoError(t, err)

		price := ResolvePrice(nil, tariff, other, TariffTypeBuy)
		assert.True(t, price.Amount().Equal(other.BuyPrice))
	})

	t.Run("soft-deleted tariff item falls through to base price", func(t *testing.T) {
		tariff.Items[0].DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		defer func() { tariff.Items[0].DeletedAt = gorm.DeletedAt{} }()

		price := ResolvePrice(nil, tariff, article, TariffTypeBuy)
		assert.True(t, price.Amount().Equal(article.BuyPrice))
	})
}

func TestNewTariff(t *testing.T) {
	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewTariff(uuid.New(), "", TariffTypeBuy)
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewTariff(uuid.New(), "General", TariffType("RENT"))
		assert.Error(t, err)
	})
}

func TestTariff_AddItem(t *testing.T) {
	tariff, err := NewTariff(uuid.New(), "General", TariffTypeSell)
	require.NoError(t, err)
	articleID := uuid.New()

	_, err = tariff.AddItem(articleID, decimal.NewFromInt(10))
	require.NoError(t, err)

	t.Run("rejects duplicate article", func(t *testing.T) {
		_, err := tariff.AddItem(articleID, decimal.NewFromInt(11))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := tariff.AddItem(uuid.New(), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}
