package main

import (
	"log"
	"os"

	"dentinv/config"
	"dentinv/database"
	"dentinv/services/inventory"
	"dentinv/utils"
)

// Seeds the inventory from a CSV file through the same bulk-import path the
// API uses, so every seeded item gets its history row.
//
//	go run scripts/importInventory.go [inventory.csv]
func main() {
	config.LoadConfig()
	database.ConnectDb()

	filePath := "inventory.csv"
	if len(os.Args) > 1 {
		filePath = os.Args[1]
	}

	rows, err := utils.ParseInventoryCSV(filePath)
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}
	log.Printf("Total rows to import: %d", len(rows))

	svc := inventory.NewMutationService(database.Database.Db)
	items, err := svc.BulkImport(rows)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete. Inserted: %d", len(items))
}
