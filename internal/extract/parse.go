package extract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/mail-processors/internal/statement"
	"github.com/dvloznov/mail-processors/internal/taxi"
)

// parseExtraction converts raw model output into a typed statement
// extraction. Every shape or domain violation surfaces as *ValidationError.
func parseExtraction(raw string) (*statement.Extraction, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	metaObj, err := getObject(obj, "metadata")
	if err != nil {
		return nil, err
	}

	meta := statement.Metadata{}

	if meta.Issuer, err = getNonEmptyString(metaObj, "issuer"); err != nil {
		return nil, err
	}
	if meta.CardNetwork, err = getNonEmptyString(metaObj, "card_network"); err != nil {
		return nil, err
	}
	if meta.CardNetwork != "Visa" && meta.CardNetwork != "Mastercard" {
		return nil, validationErrorf("card_network %q not in {Visa, Mastercard}", meta.CardNetwork)
	}
	if meta.ClosingDate, err = getNonEmptyString(metaObj, "closing_date"); err != nil {
		return nil, err
	}
	if meta.OpeningBalancePEN, err = getOptionalDecimal(metaObj, "opening_balance_pen"); err != nil {
		return nil, err
	}
	if meta.ClosingBalancePEN, err = getOptionalDecimal(metaObj, "closing_balance_pen"); err != nil {
		return nil, err
	}
	if meta.OpeningBalanceUSD, err = getOptionalDecimal(metaObj, "opening_balance_usd"); err != nil {
		return nil, err
	}
	if meta.ClosingBalanceUSD, err = getOptionalDecimal(metaObj, "closing_balance_usd"); err != nil {
		return nil, err
	}
	if meta.IsStatement, err = getBool(metaObj, "is_statement"); err != nil {
		return nil, err
	}

	// Not a real statement: whatever came back in records is meaningless,
	// drop it rather than failing validation on junk.
	if !meta.IsStatement {
		return &statement.Extraction{Metadata: meta}, nil
	}

	items, err := getArray(obj, "records")
	if err != nil {
		return nil, err
	}

	records := make([]statement.Record, 0, len(items))
	for i, item := range items {
		recObj, ok := item.(map[string]any)
		if !ok {
			return nil, validationErrorf("records[%d] is %T, want object", i, item)
		}
		rec, err := parseRecord(recObj)
		if err != nil {
			return nil, validationErrorf("records[%d]: %v", i, err)
		}
		records = append(records, *rec)
	}

	return &statement.Extraction{Metadata: meta, Records: records}, nil
}

func parseRecord(obj map[string]any) (*statement.Record, error) {
	dateStr, err := getString(obj, "date")
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, validationErrorf("date %q is not YYYY-MM-DD", dateStr)
	}

	desc, err := getString(obj, "description")
	if err != nil {
		return nil, err
	}
	amount, err := getDecimal(obj, "amount")
	if err != nil {
		return nil, err
	}
	curStr, err := getString(obj, "currency")
	if err != nil {
		return nil, err
	}
	cur := statement.Currency(curStr)
	if !cur.Valid() {
		return nil, validationErrorf("currency %q not in {PEN, USD}", curStr)
	}
	catStr, err := getString(obj, "category")
	if err != nil {
		return nil, err
	}
	cat := statement.Category(catStr)
	if !cat.Valid() {
		return nil, validationErrorf("category %q out of range", catStr)
	}

	return &statement.Record{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Currency:    cur,
		Category:    cat,
	}, nil
}

// parseTrip converts raw model output into a typed taxi trip.
func parseTrip(raw string) (*taxi.Trip, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	isTrip, err := getBool(obj, "is_trip")
	if err != nil {
		return nil, err
	}
	// Not a receipt: the remaining fields describe nothing, skip them.
	if !isTrip {
		return &taxi.Trip{IsTrip: false}, nil
	}

	trip := taxi.Trip{IsTrip: true}

	if trip.Provider, err = getString(obj, "provider"); err != nil {
		return nil, err
	}
	if trip.Date, err = getString(obj, "date"); err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", trip.Date); err != nil {
		return nil, validationErrorf("date %q is not YYYY-MM-DD", trip.Date)
	}
	if trip.Time, err = getString(obj, "time"); err != nil {
		return nil, err
	}
	if _, err := time.Parse("15:04", trip.Time); err != nil {
		return nil, validationErrorf("time %q is not HH:MM", trip.Time)
	}
	if trip.Origin, err = getString(obj, "origin"); err != nil {
		return nil, err
	}
	if trip.Destination, err = getString(obj, "destination"); err != nil {
		return nil, err
	}

	curStr, err := getString(obj, "currency")
	if err != nil {
		return nil, err
	}
	trip.Currency = statement.Currency(curStr)
	if !trip.Currency.Valid() {
		return nil, validationErrorf("currency %q not in {PEN, USD}", curStr)
	}

	if trip.Price, err = getDecimal(obj, "price"); err != nil {
		return nil, err
	}
	if trip.Price.IsNegative() {
		return nil, validationErrorf("price %s is negative", trip.Price)
	}

	return &trip, nil
}

// decodeObject strips any markdown fencing the model sneaked in and decodes
// the result as a JSON object, preserving number precision.
func decodeObject(raw string) (map[string]any, error) {
	clean := cleanModelJSON(raw)

	dec := json.NewDecoder(strings.NewReader(clean))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, validationErrorf("unmarshal JSON: %v", err)
	}
	return obj, nil
}

// cleanModelJSON removes ```json fences and clamps the text to the outermost
// braces in case the model ignored the response-schema instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

func getObject(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, validationErrorf("missing required field %q", key)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, validationErrorf("field %q has type %T, want object", key, v)
	}
	return obj, nil
}

func getArray(m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, validationErrorf("missing required field %q", key)
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, validationErrorf("field %q has type %T, want array", key, v)
	}
	return arr, nil
}

// getString requires the field to be present string data. Free-text fields
// (descriptions, addresses) may legitimately be empty.
func getString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", validationErrorf("missing required field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", validationErrorf("field %q has type %T, want string", key, v)
	}
	return s, nil
}

// getNonEmptyString is for identity fields where a blank value makes the
// whole document unusable.
func getNonEmptyString(m map[string]any, key string) (string, error) {
	s, err := getString(m, key)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", validationErrorf("required field %q is empty", key)
	}
	return s, nil
}

func getBool(m map[string]any, key string) (bool, error) {
	v, ok := m[key]
	if !ok {
		return false, validationErrorf("missing required field %q", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, validationErrorf("field %q has type %T, want bool", key, v)
	}
	return b, nil
}

func getDecimal(m map[string]any, key string) (decimal.Decimal, error) {
	v, ok := m[key]
	if !ok {
		return decimal.Zero, validationErrorf("missing required field %q", key)
	}
	num, ok := v.(json.Number)
	if !ok {
		return decimal.Zero, validationErrorf("field %q has type %T, want number", key, v)
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Zero, validationErrorf("field %q: %v", key, err)
	}
	return d, nil
}

func getOptionalDecimal(m map[string]any, key string) (*decimal.Decimal, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil, validationErrorf("field %q has type %T, want number or null", key, v)
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return nil, validationErrorf("field %q: %v", key, err)
	}
	return &d, nil
}
