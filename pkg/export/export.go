// Package export renders the claim ledger as an Excel workbook for
// reconciliation and reporting outside the system.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx/v3"

	"lostfound-api/internal/models"
)

// ExportOptions defines the configuration for claim ledger exports.
type ExportOptions struct {
	SheetName string // default "Claims"
}

// claimColumns is the fixed column layout of the export sheet.
var claimColumns = []string{
	"Claim ID",
	"Item ID",
	"Item Name",
	"Category",
	"Location",
	"Submitted By",
	"Date Submitted",
	"Claimed By",
	"Claimer Name",
	"Claim Date",
	"Item Photo",
	"Claimer Photo",
}

// WriteClaims writes the given claim records to w as an .xlsx workbook, one
// row per claim in ledger order, with a header row. Submitter passwords are
// never exported.
func WriteClaims(w io.Writer, records []models.ClaimedItem, opts ExportOptions) error {
	if opts.SheetName == "" {
		opts.SheetName = "Claims"
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(opts.SheetName)
	if err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, col := range claimColumns {
		header.AddCell().SetString(col)
	}

	for _, rec := range records {
		row := sheet.AddRow()
		row.AddCell().SetInt64(rec.ClaimID)
		row.AddCell().SetInt64(rec.ID)
		row.AddCell().SetString(rec.Name)
		row.AddCell().SetString(rec.Category)
		row.AddCell().SetString(rec.Location)
		row.AddCell().SetString(rec.StudentNumber)
		row.AddCell().SetString(rec.DateSubmitted.Format(time.RFC3339))
		row.AddCell().SetString(rec.ClaimerStudent)
		row.AddCell().SetString(rec.ClaimerName)
		row.AddCell().SetString(rec.ClaimDate.Format(time.RFC3339))
		row.AddCell().SetString(rec.Photo)
		row.AddCell().SetString(rec.ClaimerPhoto)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
