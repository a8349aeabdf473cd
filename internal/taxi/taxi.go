// Package taxi holds the ride-receipt domain model.
package taxi

import (
	"github.com/shopspring/decimal"

	"github.com/dvloznov/mail-processors/internal/statement"
)

// Trip is one extracted taxi ride. Date is ISO YYYY-MM-DD and Time is HH:MM
// on a 24-hour clock; both are validated at extraction and written verbatim.
// When IsTrip is false the source message is not a genuine receipt and the
// trip must not be persisted.
type Trip struct {
	Provider    string
	Date        string
	Time        string
	Origin      string
	Destination string
	Currency    statement.Currency
	Price       decimal.Decimal
	IsTrip      bool
}
