package models

import (
	"time"
)

// Actions recorded in the inventory history ledger.
const (
	ActionCreated      = "created"
	ActionUpdated      = "updated"
	ActionDeleted      = "deleted"
	ActionBulkDeleted  = "bulk_deleted"
	ActionBulkUpdated  = "bulk_updated"
	ActionBulkImported = "bulk_imported"
)

// InventoryHistory is one audit record of a single action taken on a single
// item. ItemName snapshots the item's name at action time so the row stays
// meaningful after a rename or deletion. Rows are append-only; they are
// removed only when their item is deleted (the terminal deleted row remains).
type InventoryHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"index;not null" json:"itemId"`
	ItemName  string    `gorm:"not null" json:"itemName"`
	Action    string    `gorm:"not null" json:"action"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}
