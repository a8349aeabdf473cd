package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/mail-processors/internal/statement"
)

func TestWriteJSON(t *testing.T) {
	opening := decimal.RequireFromString("1200.55")
	ext := &statement.Extraction{
		Metadata: statement.Metadata{
			Issuer:            "Interbank",
			CardNetwork:       "Visa",
			ClosingDate:       "2025-03-15",
			OpeningBalancePEN: &opening,
			IsStatement:       true,
		},
		Records: []statement.Record{
			{
				Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				Description: "SUPERMERCADO WONG",
				Amount:      decimal.RequireFromString("152.30"),
				Currency:    statement.PEN,
				Category:    statement.CategoryConsumption,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, WriteJSON(ext, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	meta := got["metadata"].(map[string]any)
	assert.Equal(t, "Interbank", meta["issuer"])
	assert.Equal(t, "Visa", meta["card_network"])
	assert.Equal(t, "2025-03-15", meta["closing_date"])
	assert.Equal(t, true, meta["is_statement"])
	assert.Nil(t, meta["closing_balance_usd"], "absent balances serialize as null")

	records := got["records"].([]any)
	require.Len(t, records, 1)
	record := records[0].(map[string]any)
	assert.Equal(t, "2025-03-10", record["date"])
	assert.Equal(t, "PEN", record["currency"])
	assert.Equal(t, "consumption", record["category"])
}

func TestWriteJSON_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	ext := &statement.Extraction{Metadata: statement.Metadata{Issuer: "BCP", CardNetwork: "Visa", IsStatement: true}}

	require.NoError(t, WriteJSON(ext, path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	ext.Metadata.Issuer = "BBVA"
	require.NoError(t, WriteJSON(ext, path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotEqual(t, string(first), string(second))
	assert.Contains(t, string(second), "BBVA")
	assert.NotContains(t, string(second), "BCP")
}

func TestWriteJSON_EmptyRecordsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	ext := &statement.Extraction{Metadata: statement.Metadata{IsStatement: true}}

	require.NoError(t, WriteJSON(ext, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// records must be [] rather than null so downstream readers can iterate.
	var got struct {
		Records []any `json:"records"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.NotNil(t, got.Records)
	assert.Empty(t, got.Records)
}
