package domain

import "github.com/shopspring/decimal"

// DefaultExchangeRate is the ARS-per-USD rate assumed before any exchange has
// been recorded. A business default, not an error condition.
var DefaultExchangeRate = decimal.NewFromInt(1000)

// AverageRate returns the arithmetic mean of the recorded exchange rates, or
// DefaultExchangeRate when no exchanges exist.
func AverageRate(exchanges []*Exchange) decimal.Decimal {
	if len(exchanges) == 0 {
		return DefaultExchangeRate
	}
	sum := decimal.Zero
	for _, exchange := range exchanges {
		sum = sum.Add(exchange.Rate)
	}
	return sum.Div(decimal.NewFromInt(int64(len(exchanges))))
}

// ToLocalCurrency converts an amount to ARS using the given rate. ARS amounts
// pass through unchanged; no rounding happens here, only at presentation.
func ToLocalCurrency(amount decimal.Decimal, currency Currency, rate decimal.Decimal) decimal.Decimal {
	if currency == CurrencyUSD {
		return amount.Mul(rate)
	}
	return amount
}
