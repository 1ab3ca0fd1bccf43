package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"lostfound-api/internal/store"
	"lostfound-api/pkg/export"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: export_claims --out=claims.xlsx [--ledger=data/claimed_items.json] [--sheet=Claims]")
		os.Exit(1)
	}

	outPath := ""
	ledgerPath := "data/claimed_items.json"
	sheetName := ""

	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "--out=") {
			outPath = strings.TrimPrefix(arg, "--out=")
		} else if strings.HasPrefix(arg, "--ledger=") {
			ledgerPath = strings.TrimPrefix(arg, "--ledger=")
		} else if strings.HasPrefix(arg, "--sheet=") {
			sheetName = strings.TrimPrefix(arg, "--sheet=")
		}
	}

	if outPath == "" {
		fmt.Println("Error: out is required")
		fmt.Println("Usage: export_claims --out=claims.xlsx [--ledger=...] [--sheet=...]")
		os.Exit(1)
	}

	ledger, err := store.OpenFileLedger(ledgerPath)
	if err != nil {
		log.Fatalf("Failed to open claim ledger: %v", err)
	}

	records, err := ledger.List(context.Background())
	if err != nil {
		log.Fatalf("Failed to read claim ledger: %v", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()

	if err := export.WriteClaims(out, records, export.ExportOptions{SheetName: sheetName}); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fmt.Printf("Exported %d claims from %s to %s\n", len(records), ledgerPath, outPath)
}
