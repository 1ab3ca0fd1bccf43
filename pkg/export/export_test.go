package export

import (
	"bytes"
	"testing"
	"time"

	"lostfound-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

func sampleClaims() []models.ClaimedItem {
	submitted := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	claimed := time.Date(2026, 8, 22, 14, 0, 0, 0, time.UTC)
	return []models.ClaimedItem{
		{
			Item: models.Item{
				ID:            7,
				StudentNumber: "S12345",
				Password:      "hunter2",
				Name:          "Blue Backpack",
				Category:      "Bags",
				Location:      "Library",
				Photo:         "/uploads/submitted/p.jpg",
				DateSubmitted: submitted,
			},
			ClaimID:        1,
			ClaimerStudent: "S67890",
			ClaimerName:    "Alex Doe",
			ClaimerPhoto:   "/uploads/claimed/c.jpg",
			ClaimDate:      claimed,
		},
		{
			Item: models.Item{
				ID: 9, StudentNumber: "S11111", Password: "secret", Name: "Keys",
				Category: "Other", Location: "Cafeteria", DateSubmitted: submitted,
			},
			ClaimID:        2,
			ClaimerStudent: "S22222",
			ClaimerName:    "Kim Park",
			ClaimDate:      claimed,
		},
	}
}

func cellValue(t *testing.T, sheet *xlsx.Sheet, rowIdx, colIdx int) string {
	t.Helper()
	row, err := sheet.Row(rowIdx)
	require.NoError(t, err)
	cell := row.GetCell(colIdx)
	require.NotNil(t, cell)
	return cell.String()
}

func TestWriteClaims(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClaims(&buf, sampleClaims(), ExportOptions{}))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	sheet, ok := file.Sheet["Claims"]
	require.True(t, ok, "default sheet name")

	// Header row
	assert.Equal(t, "Claim ID", cellValue(t, sheet, 0, 0))
	assert.Equal(t, "Item Name", cellValue(t, sheet, 0, 2))
	assert.Equal(t, "Claimer Name", cellValue(t, sheet, 0, 8))

	// First claim row
	assert.Equal(t, "1", cellValue(t, sheet, 1, 0))
	assert.Equal(t, "7", cellValue(t, sheet, 1, 1))
	assert.Equal(t, "Blue Backpack", cellValue(t, sheet, 1, 2))
	assert.Equal(t, "S12345", cellValue(t, sheet, 1, 5))
	assert.Equal(t, "2026-08-20T10:30:00Z", cellValue(t, sheet, 1, 6))
	assert.Equal(t, "Alex Doe", cellValue(t, sheet, 1, 8))

	// Second claim row keeps ledger order
	assert.Equal(t, "2", cellValue(t, sheet, 2, 0))
	assert.Equal(t, "Keys", cellValue(t, sheet, 2, 2))
}

func TestWriteClaimsNeverExportsPasswords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClaims(&buf, sampleClaims(), ExportOptions{}))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	sheet := file.Sheet["Claims"]
	require.NotNil(t, sheet)
	for row := 0; row <= 2; row++ {
		for col := 0; col < len(claimColumns); col++ {
			v := cellValue(t, sheet, row, col)
			assert.NotEqual(t, "hunter2", v)
			assert.NotEqual(t, "secret", v)
		}
	}
}

func TestWriteClaimsCustomSheetName(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClaims(&buf, nil, ExportOptions{SheetName: "Ledger"}))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	_, ok := file.Sheet["Ledger"]
	assert.True(t, ok)
}
