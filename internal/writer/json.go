package writer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/mail-processors/internal/statement"
)

type snapshotMetadata struct {
	Issuer            string           `json:"issuer"`
	CardNetwork       string           `json:"card_network"`
	ClosingDate       string           `json:"closing_date"`
	OpeningBalancePEN *decimal.Decimal `json:"opening_balance_pen"`
	ClosingBalancePEN *decimal.Decimal `json:"closing_balance_pen"`
	OpeningBalanceUSD *decimal.Decimal `json:"opening_balance_usd"`
	ClosingBalanceUSD *decimal.Decimal `json:"closing_balance_usd"`
	IsStatement       bool             `json:"is_statement"`
}

type snapshotRecord struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
}

type snapshot struct {
	Metadata snapshotMetadata `json:"metadata"`
	Records  []snapshotRecord `json:"records"`
}

// WriteJSON overwrites path with a full snapshot of metadata plus all
// records, independent of any currency filtering.
func WriteJSON(ext *statement.Extraction, path string) error {
	snap := snapshot{
		Metadata: snapshotMetadata{
			Issuer:            ext.Metadata.Issuer,
			CardNetwork:       ext.Metadata.CardNetwork,
			ClosingDate:       ext.Metadata.ClosingDate,
			OpeningBalancePEN: ext.Metadata.OpeningBalancePEN,
			ClosingBalancePEN: ext.Metadata.ClosingBalancePEN,
			OpeningBalanceUSD: ext.Metadata.OpeningBalanceUSD,
			ClosingBalanceUSD: ext.Metadata.ClosingBalanceUSD,
			IsStatement:       ext.Metadata.IsStatement,
		},
		Records: make([]snapshotRecord, 0, len(ext.Records)),
	}
	for _, rec := range ext.Records {
		snap.Records = append(snap.Records, snapshotRecord{
			Date:        rec.Date.Format("2006-01-02"),
			Description: rec.Description,
			Amount:      rec.Amount,
			Currency:    string(rec.Currency),
			Category:    string(rec.Category),
		})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("writer.WriteJSON: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writer.WriteJSON: %w", err)
	}
	return nil
}
