package pricing

import (
	"github.com/nubeerp/backend/internal/domain/catalog"
	"github.com/nubeerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ResolvePrice returns the effective unit price for one delivery note line.
// Precedence, strictly ordered, first match wins:
//
//  1. the explicit price supplied by the caller on the line, if any;
//  2. the live tariff item for the article, if the partner has a tariff
//     assigned and the tariff carries an item for this article;
//  3. the article's own base price: buy price for purchase notes, sell
//     price for sales notes.
//
// Resolution always terminates at step 3 because every article carries a
// base price; there is no error path. The function is a pure read.
func ResolvePrice(explicitPrice *decimal.Decimal, tariff *Tariff, article *catalog.Article, side TariffType) valueobject.Money {
	if explicitPrice != nil {
		return valueobject.NewMoneyEUR(*explicitPrice)
	}

	if tariff != nil {
		if item := tariff.ItemFor(article.ID); item != nil {
			return valueobject.NewMoneyEUR(item.Price)
		}
	}

	if side == TariffTypeBuy {
		return article.BuyPriceMoney()
	}
	return article.SellPriceMoney()
}
