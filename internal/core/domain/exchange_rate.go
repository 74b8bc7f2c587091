package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tirtatour/travel_billing_app/internal/apperrors"
)

// RateTable is the injected exchange-rate configuration: currency code to
// the rate into the base currency (IDR). Market-data acquisition is out of
// scope; the table only changes by redeploying configuration, and postings
// record the rate they used so history never shifts.
type RateTable struct {
	BaseCurrency string
	Rates        map[string]decimal.Decimal // e.g. "USD" -> 15800.00
}

// RateFor returns the conversion rate into the base currency. The base
// currency itself always converts at 1.
func (t RateTable) RateFor(currencyCode string) (decimal.Decimal, error) {
	if currencyCode == t.BaseCurrency {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := t.Rates[currencyCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no exchange rate configured for %s", apperrors.ErrValidation, currencyCode)
	}
	return rate, nil
}

// Convert returns the base-currency equivalent of amount, rounded to the
// base currency's 2 minor units, along with the rate applied.
func (t RateTable) Convert(amount decimal.Decimal, currencyCode string) (decimal.Decimal, decimal.Decimal, error) {
	rate, err := t.RateFor(currencyCode)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), rate, nil
}
