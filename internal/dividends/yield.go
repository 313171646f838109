package dividends

import (
	"github.com/shopspring/decimal"
)

const (
	dividendPlaces = 6
	pricePlaces    = 4
	yieldPlaces    = 4
)

var hundred = decimal.NewFromInt(100)

// RoundDividend rounds a dividend amount to 6 decimal places (half away from zero)
func RoundDividend(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(dividendPlaces)
}

// RoundPrice rounds a close to 4 decimal places (half away from zero)
func RoundPrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(pricePlaces)
}

// ComputeYield returns round(dividend / price * 100, 4) using the rounded
// dividend and the rounded price as divisor. The yield is absent when the
// price is absent or not positive.
func ComputeYield(amount decimal.Decimal, price decimal.NullDecimal) decimal.NullDecimal {
	if !price.Valid {
		return decimal.NullDecimal{}
	}

	divisor := RoundPrice(price.Decimal)
	if !divisor.IsPositive() {
		return decimal.NullDecimal{}
	}

	yield := RoundDividend(amount).Div(divisor).Mul(hundred).Round(yieldPlaces)
	return decimal.NewNullDecimal(yield)
}
