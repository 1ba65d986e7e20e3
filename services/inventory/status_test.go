package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dentinv/models"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold *int
		want      string
	}{
		{"below threshold is low", 5, intPtr(10), StatusLow},
		{"at threshold is low", 10, intPtr(10), StatusLow},
		{"within 1.5x threshold is medium", 14, intPtr(10), StatusMedium},
		{"at 1.5x threshold is medium", 15, intPtr(10), StatusMedium},
		{"above 1.5x threshold is normal", 16, intPtr(10), StatusNormal},
		{"zero quantity with threshold is low", 0, intPtr(10), StatusLow},
		{"no threshold is always normal", 0, nil, StatusNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.InventoryItem{Quantity: tt.quantity, LowStockThreshold: tt.threshold}
			assert.Equal(t, tt.want, StockStatus(item))
		})
	}
}
