package inventory

import (
	"errors"

	"gorm.io/gorm"

	"dentinv/models"
)

// QueryService serves read-only projections over items and history. It
// never writes.
type QueryService struct {
	db *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

// ListItems returns items filtered by exact category and/or a
// case-insensitive substring match on name. LOWER(...) LIKE is used instead
// of ILIKE so the same query runs on Postgres and sqlite.
func (s *QueryService) ListItems(category, search string) ([]models.InventoryItem, error) {
	query := s.db.Model(&models.InventoryItem{})

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	var items []models.InventoryItem
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns a single item by id, or ErrItemNotFound.
func (s *QueryService) GetItem(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// RecentHistory returns the latest history entries, newest first (ties kept
// in insertion order). For entries whose item still exists the current item
// name is substituted for display; orphaned entries keep the frozen
// snapshot taken at action time.
func (s *QueryService) RecentHistory(limit int) ([]models.InventoryHistory, error) {
	var entries []models.InventoryHistory
	if err := s.db.
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	itemIDs := make([]uint, 0, len(entries))
	for _, entry := range entries {
		itemIDs = append(itemIDs, entry.ItemID)
	}

	var items []models.InventoryItem
	if err := s.db.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	liveNames := make(map[uint]string, len(items))
	for _, item := range items {
		liveNames[item.ID] = item.Name
	}

	for i := range entries {
		if name, ok := liveNames[entries[i].ItemID]; ok {
			entries[i].ItemName = name
		}
	}
	return entries, nil
}

// AllHistory returns the full ledger, newest first, snapshot names as
// recorded.
func (s *QueryService) AllHistory() ([]models.InventoryHistory, error) {
	var entries []models.InventoryHistory
	if err := s.db.
		Order("created_at DESC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
