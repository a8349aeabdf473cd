// Package statement holds the credit-card statement domain model together
// with the naming and currency-partitioning policy for output artifacts.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the statement currency. Peruvian issuers bill in soles and,
// for cards with a dollar line, in USD.
type Currency string

const (
	PEN Currency = "PEN"
	USD Currency = "USD"
)

// Valid reports whether c is a known currency.
func (c Currency) Valid() bool { return c == PEN || c == USD }

// Category classifies one statement line item.
type Category string

const (
	CategoryConsumption Category = "consumption"
	CategoryPayment     Category = "payment"
	CategoryInterest    Category = "interest"
	CategoryFee         Category = "fee"
	CategoryInsurance   Category = "insurance"
	CategoryAdjustment  Category = "adjustment"
	CategoryOther       Category = "other"
)

var categories = map[Category]bool{
	CategoryConsumption: true,
	CategoryPayment:     true,
	CategoryInterest:    true,
	CategoryFee:         true,
	CategoryInsurance:   true,
	CategoryAdjustment:  true,
	CategoryOther:       true,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return categories[c] }

// Record is one extracted line item. Date is the consumption date, not the
// processing date. Amount is positive for charges and negative for payments
// and credits.
type Record struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    Currency
	Category    Category
}

// Metadata describes the statement the records came from. ClosingDate is
// kept raw so the naming policy can fall back gracefully on malformed dates.
// When IsStatement is false the source document is not a genuine statement
// (an ad, a promo) and any records must be ignored.
type Metadata struct {
	Issuer      string
	CardNetwork string
	ClosingDate string

	OpeningBalancePEN *decimal.Decimal
	ClosingBalancePEN *decimal.Decimal
	OpeningBalanceUSD *decimal.Decimal
	ClosingBalanceUSD *decimal.Decimal

	IsStatement bool
}

// Extraction is the full result of one model call: metadata plus all records.
type Extraction struct {
	Metadata Metadata
	Records  []Record
}

// FilterCurrency returns the records billed in the given currency, in input
// order.
func FilterCurrency(records []Record, cur Currency) []Record {
	var out []Record
	for _, r := range records {
		if r.Currency == cur {
			out = append(out, r)
		}
	}
	return out
}

// Total sums the amounts of the given records.
func Total(records []Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Amount)
	}
	return sum
}
