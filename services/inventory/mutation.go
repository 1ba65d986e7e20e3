package inventory

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"dentinv/models"
)

var (
	// ErrItemNotFound is returned when a referenced item id does not exist.
	ErrItemNotFound = errors.New("inventory item not found")
	// ErrEmptyIDList is returned before any transaction opens when a bulk
	// operation receives no ids.
	ErrEmptyIDList = errors.New("empty id list")
	// ErrUnknownField is returned when a bulk update names a field that is
	// not part of the item model.
	ErrUnknownField = errors.New("unknown bulk update field")
	// ErrInvalidValue is returned when a bulk update value cannot be parsed
	// for the target field.
	ErrInvalidValue = errors.New("invalid bulk update value")
)

// ItemFields carries the caller-supplied fields for a new inventory item.
// The id is always server-assigned.
type ItemFields struct {
	Name              string
	Category          string
	Quantity          int
	Unit              string
	LowStockThreshold *int
}

// UpdateFields carries a partial update. Nil fields are left untouched.
type UpdateFields struct {
	Name              *string
	Category          *string
	Quantity          *int
	Unit              *string
	LowStockThreshold *int
}

// MutationService is the sole writer of inventory state. Every operation
// pairs its item writes with history appends inside a single transaction:
// an operation that changes N items appends exactly N history rows, or
// nothing persists at all.
type MutationService struct {
	db *gorm.DB
}

func NewMutationService(db *gorm.DB) *MutationService {
	return &MutationService{db: db}
}

// Create inserts a new item and records a "created" history row.
func (s *MutationService) Create(fields ItemFields) (*models.InventoryItem, error) {
	item := models.InventoryItem{
		Name:              fields.Name,
		Category:          fields.Category,
		Quantity:          fields.Quantity,
		Unit:              fields.Unit,
		LowStockThreshold: fields.LowStockThreshold,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		entry := models.InventoryHistory{
			ItemID:   item.ID,
			ItemName: item.Name,
			Action:   models.ActionCreated,
			Quantity: item.Quantity,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update merges the non-nil fields into the item and records an "updated"
// history row carrying the post-update name and quantity. Returns
// ErrItemNotFound before any write when the id is unknown.
func (s *MutationService) Update(id uint, fields UpdateFields) (*models.InventoryItem, error) {
	var item models.InventoryItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if fields.Name != nil {
			item.Name = *fields.Name
		}
		if fields.Category != nil {
			item.Category = *fields.Category
		}
		if fields.Quantity != nil {
			item.Quantity = *fields.Quantity
		}
		if fields.Unit != nil {
			item.Unit = *fields.Unit
		}
		if fields.LowStockThreshold != nil {
			item.LowStockThreshold = fields.LowStockThreshold
		}

		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		entry := models.InventoryHistory{
			ItemID:   item.ID,
			ItemName: item.Name,
			Action:   models.ActionUpdated,
			Quantity: item.Quantity,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item and records a terminal "deleted" history row with
// the name captured before removal and quantity 0. Earlier history rows for
// the item are purged in the same transaction, preserving the legacy
// referential action: an item's audit rows do not outlive the item.
func (s *MutationService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if err := tx.Delete(&models.InventoryItem{}, item.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.InventoryHistory{}).Error; err != nil {
			return err
		}

		entry := models.InventoryHistory{
			ItemID:   item.ID,
			ItemName: item.Name,
			Action:   models.ActionDeleted,
			Quantity: 0,
		}
		return tx.Create(&entry).Error
	})
}

// BulkDelete removes every item whose id matches and records one
// "bulk_deleted" row per item actually found. Ids with no matching item are
// skipped silently; no history is fabricated for them. Returns the number of
// items deleted.
func (s *MutationService) BulkDelete(ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyIDList
	}

	var deleted int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Snapshot names before the rows vanish.
		var items []models.InventoryItem
		if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		found := make([]uint, 0, len(items))
		for _, item := range items {
			found = append(found, item.ID)
		}

		if err := tx.Where("id IN ?", found).Delete(&models.InventoryItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN ?", found).Delete(&models.InventoryHistory{}).Error; err != nil {
			return err
		}

		entries := make([]models.InventoryHistory, 0, len(items))
		for _, item := range items {
			entries = append(entries, models.InventoryHistory{
				ItemID:   item.ID,
				ItemName: item.Name,
				Action:   models.ActionBulkDeleted,
				Quantity: 0,
			})
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}

		deleted = len(items)
		return nil
	})
	return deleted, err
}

// bulkUpdateColumns maps the API field names onto item columns.
var bulkUpdateColumns = map[string]string{
	"name":              "name",
	"category":          "category",
	"quantity":          "quantity",
	"unit":              "unit",
	"lowStockThreshold": "low_stock_threshold",
}

// BulkUpdate sets one field to one value on every matching item and records
// one "bulk_updated" row per updated item. The history quantity is the
// applied value when the field is quantity, otherwise each item's own
// current quantity. Validation happens before any transaction opens.
func (s *MutationService) BulkUpdate(ids []uint, field, value string) ([]models.InventoryItem, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyIDList
	}
	column, ok := bulkUpdateColumns[field]
	if !ok {
		return nil, ErrUnknownField
	}

	var parsed interface{} = value
	if field == "quantity" || field == "lowStockThreshold" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, ErrInvalidValue
		}
		parsed = n
	}

	var items []models.InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InventoryItem{}).
			Where("id IN ?", ids).
			Update(column, parsed).Error; err != nil {
			return err
		}

		// Re-read so history reflects the post-update state of each item.
		if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		entries := make([]models.InventoryHistory, 0, len(items))
		for _, item := range items {
			entries = append(entries, models.InventoryHistory{
				ItemID:   item.ID,
				ItemName: item.Name,
				Action:   models.ActionBulkUpdated,
				Quantity: item.Quantity,
			})
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// BulkImport creates one item per row and records one "bulk_imported" row
// per created item. Rows arrive already parsed; file handling belongs to
// the caller.
func (s *MutationService) BulkImport(rows []ItemFields) ([]models.InventoryItem, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	items := make([]models.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.InventoryItem{
			Name:              row.Name,
			Category:          row.Category,
			Quantity:          row.Quantity,
			Unit:              row.Unit,
			LowStockThreshold: row.LowStockThreshold,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		entries := make([]models.InventoryHistory, 0, len(items))
		for _, item := range items {
			entries = append(entries, models.InventoryHistory{
				ItemID:   item.ID,
				ItemName: item.Name,
				Action:   models.ActionBulkImported,
				Quantity: item.Quantity,
			})
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
