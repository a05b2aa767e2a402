package delivery

import (
	"github.com/nubeerp/backend/internal/domain/shared"
	"github.com/nubeerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LineAmounts holds the computed monetary amounts for one note line.
// All fields carry 4 fractional digits.
type LineAmounts struct {
	Subtotal  decimal.Decimal
	IvaAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeLineAmounts computes subtotal, tax and total for one line:
//
//	subtotal  = quantity * price
//	ivaAmount = subtotal * (ivaPercentage / 100)
//	total     = subtotal + ivaAmount
//
// Each amount is rounded half-up to 4 fractional digits. Quantity must be
// strictly positive and price non-negative; both are rejected before any
// arithmetic so a bad line never reaches the stock ledger.
func ComputeLineAmounts(quantity decimal.Decimal, price valueobject.Money, ivaPercentage decimal.Decimal) (LineAmounts, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineAmounts{}, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if price.IsNegative() {
		return LineAmounts{}, shared.NewDomainError("INVALID_PRICE", "Line price cannot be negative")
	}
	if ivaPercentage.IsNegative() {
		return LineAmounts{}, shared.NewDomainError("INVALID_IVA", "IVA percentage cannot be negative")
	}

	subtotal := quantity.Mul(price.Amount()).Round(valueobject.MoneyPrecision)
	ivaAmount := subtotal.Mul(ivaPercentage.Div(decimal.NewFromInt(100))).Round(valueobject.MoneyPrecision)
	total := subtotal.Add(ivaAmount)

	return LineAmounts{
		Subtotal:  subtotal,
		IvaAmount: ivaAmount,
		Total:     total,
	}, nil
}
