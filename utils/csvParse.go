package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"dentinv/services/inventory"
)

// ParseInventoryCSV reads an uploaded inventory CSV and returns the item
// rows. The first row must be a header; columns are matched by name
// (name, category, quantity, unit, lowStockThreshold) so column order does
// not matter. Rows without a name are skipped.
func ParseInventoryCSV(filePath string) ([]inventory.ItemFields, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv file is empty or has only headers")
	}

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.TrimSpace(h)] = i
	}

	rows := make([]inventory.ItemFields, 0, len(records)-1)
	for _, record := range records[1:] {
		row := inventory.ItemFields{
			Name:     getField(record, headerIndex, "name"),
			Category: getField(record, headerIndex, "category"),
			Quantity: parseInt(getField(record, headerIndex, "quantity")),
			Unit:     getField(record, headerIndex, "unit"),
		}
		if row.Name == "" {
			continue
		}

		threshold := getField(record, headerIndex, "lowStockThreshold")
		if threshold == "" {
			threshold = getField(record, headerIndex, "low_stock_threshold")
		}
		if threshold != "" {
			n := parseInt(threshold)
			row.LowStockThreshold = &n
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func getField(row []string, headerIndex map[string]int, field string) string {
	idx, ok := headerIndex[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
