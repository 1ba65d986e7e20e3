package models

import (
	"time"
)

type InventoryItem struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Category          string    `gorm:"not null" json:"category"`
	Quantity          int       `gorm:"not null;default:0" json:"quantity"`
	Unit              string    `gorm:"not null" json:"unit"`
	LowStockThreshold *int      `json:"lowStockThreshold"` // nil means no threshold configured
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
