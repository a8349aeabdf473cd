package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func rec(cur Currency, amount string) Record {
	return Record{
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "test",
		Amount:      decimal.RequireFromString(amount),
		Currency:    cur,
		Category:    CategoryConsumption,
	}
}

func TestFilterCurrency(t *testing.T) {
	records := []Record{
		rec(PEN, "10.50"),
		rec(USD, "3.99"),
		rec(PEN, "-200"),
		rec(USD, "15"),
		rec(PEN, "0.01"),
	}

	pen := FilterCurrency(records, PEN)
	if len(pen) != 3 {
		t.Fatalf("FilterCurrency(PEN) returned %d records, want 3", len(pen))
	}
	usd := FilterCurrency(records, USD)
	if len(usd) != 2 {
		t.Fatalf("FilterCurrency(USD) returned %d records, want 2", len(usd))
	}

	// Input order is preserved.
	if !pen[0].Amount.Equal(decimal.RequireFromString("10.50")) ||
		!pen[1].Amount.Equal(decimal.RequireFromString("-200")) {
		t.Errorf("FilterCurrency changed record order: %v", pen)
	}
}

func TestFilterCurrency_Empty(t *testing.T) {
	if got := FilterCurrency(nil, PEN); got != nil {
		t.Errorf("FilterCurrency(nil) = %v, want nil", got)
	}
	if got := FilterCurrency([]Record{rec(USD, "5")}, PEN); got != nil {
		t.Errorf("FilterCurrency with no matches = %v, want nil", got)
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
		want    string
	}{
		{"empty", nil, "0"},
		{"single", []string{"10.50"}, "10.5"},
		{"charges and payments", []string{"100.10", "-40.05", "0.95"}, "61"},
		{"exact decimal sum", []string{"0.1", "0.2"}, "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []Record
			for _, a := range tt.amounts {
				records = append(records, rec(PEN, a))
			}
			got := Total(records)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Total() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCurrencyValid(t *testing.T) {
	if !PEN.Valid() || !USD.Valid() {
		t.Error("PEN and USD must be valid currencies")
	}
	if Currency("EUR").Valid() {
		t.Error("EUR must not be a valid currency")
	}
	if Currency("").Valid() {
		t.Error("empty currency must not be valid")
	}
}

func TestCategoryValid(t *testing.T) {
	valid := []Category{
		CategoryConsumption, CategoryPayment, CategoryInterest,
		CategoryFee, CategoryInsurance, CategoryAdjustment, CategoryOther,
	}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("category %q must be valid", c)
		}
	}
	if Category("groceries").Valid() {
		t.Error("unknown category must not be valid")
	}
}
