package inventory

import (
	"dentinv/models"
)

// Stock status labels derived from quantity vs. threshold.
const (
	StatusLow    = "low"
	StatusMedium = "medium"
	StatusNormal = "normal"
)

// StockStatus derives the display status for an item. Items without a
// threshold are always normal. Recomputed on every read; never stored.
func StockStatus(item models.InventoryItem) string {
	if item.LowStockThreshold == nil {
		return StatusNormal
	}
	threshold := *item.LowStockThreshold

	switch {
	case item.Quantity <= threshold:
		return StatusLow
	case float64(item.Quantity) <= float64(threshold)*1.5:
		return StatusMedium
	default:
		return StatusNormal
	}
}
