// Package writer persists extraction results: per-currency CSV appends,
// full JSON snapshots, statement PDF copies and the append-only error log.
//
// CSV writes are append-only and at-least-once: re-running on the same input
// duplicates rows. De-duplication is the caller's responsibility (processed
// messages are moved out of the inbox by the mail bridge).
package writer

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dvloznov/mail-processors/internal/statement"
	"github.com/dvloznov/mail-processors/internal/taxi"
)

// utf8BOM makes spreadsheet tools detect the encoding on first open.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var statementHeader = []string{"date", "description", "amount", "category"}

var tripHeader = []string{"date", "time", "provider", "origin", "destination", "currency", "price"}

// AppendStatementCSV filters records to the given currency and appends them
// to path. When the filtered set is empty it performs no I/O and returns
// false. A new file gets a UTF-8 BOM and a header row first.
func AppendStatementCSV(records []statement.Record, path string, cur statement.Currency) (bool, error) {
	filtered := statement.FilterCurrency(records, cur)
	if len(filtered) == 0 {
		return false, nil
	}

	f, isNew, err := openAppend(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(statementHeader); err != nil {
			return false, fmt.Errorf("writer.AppendStatementCSV: header: %w", err)
		}
	}
	for _, rec := range filtered {
		row := []string{
			rec.Date.Format("2006-01-02"),
			rec.Description,
			rec.Amount.String(),
			string(rec.Category),
		}
		if err := w.Write(row); err != nil {
			return false, fmt.Errorf("writer.AppendStatementCSV: row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, fmt.Errorf("writer.AppendStatementCSV: flush: %w", err)
	}
	return true, nil
}

// AppendTripCSV appends one taxi trip to the consolidated trips file.
func AppendTripCSV(trip *taxi.Trip, path string) error {
	f, isNew, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(tripHeader); err != nil {
			return fmt.Errorf("writer.AppendTripCSV: header: %w", err)
		}
	}
	row := []string{
		trip.Date,
		trip.Time,
		trip.Provider,
		trip.Origin,
		trip.Destination,
		string(trip.Currency),
		trip.Price.String(),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("writer.AppendTripCSV: row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writer.AppendTripCSV: flush: %w", err)
	}
	return nil
}

// openAppend opens path for appending, creating it with a UTF-8 BOM when it
// does not exist yet. isNew tells the caller whether to write a header.
func openAppend(path string) (f *os.File, isNew bool, err error) {
	_, statErr := os.Stat(path)
	isNew = os.IsNotExist(statErr)

	f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("writer: open %s: %w", path, err)
	}
	if isNew {
		if _, err := f.Write(utf8BOM); err != nil {
			f.Close()
			return nil, false, fmt.Errorf("writer: bom %s: %w", path, err)
		}
	}
	return f, isNew, nil
}
