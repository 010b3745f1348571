package domain

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimal places kept for currency amounts.
const CurrencyPlaces = 2

// SharePlaces is the number of decimal places kept for share quantities.
const SharePlaces = 2

// RoundCurrency rounds an amount to CurrencyPlaces, half away from zero.
// Amounts are rounded at the point of persistence and never carried unrounded
// between operations.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// RoundShares rounds a share quantity to SharePlaces, half away from zero.
func RoundShares(d decimal.Decimal) decimal.Decimal {
	return d.Round(SharePlaces)
}

// TradeValue returns shares * price rounded to currency precision.
func TradeValue(shares, price decimal.Decimal) decimal.Decimal {
	return RoundCurrency(shares.Mul(price))
}
