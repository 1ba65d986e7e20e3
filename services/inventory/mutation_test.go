package inventory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dentinv/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named in-memory database per test so parallel connections from the
	// pool see the same data.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.InventoryItem{}, &models.InventoryHistory{}))
	return db
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func historyFor(t *testing.T, db *gorm.DB, itemID uint) []models.InventoryHistory {
	t.Helper()
	var entries []models.InventoryHistory
	require.NoError(t, db.Where("item_id = ?", itemID).Order("id ASC").Find(&entries).Error)
	return entries
}

// failHistoryAppends installs a create callback that rejects any insert of a
// history row, simulating a storage fault on the ledger.
func failHistoryAppends(t *testing.T, db *gorm.DB) {
	t.Helper()
	historyType := reflect.TypeOf(models.InventoryHistory{})
	err := db.Callback().Create().Before("gorm:create").Register("test_fail_history", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.ModelType == historyType {
			tx.AddError(errors.New("simulated ledger failure"))
		}
	})
	require.NoError(t, err)
}

func TestCreateWritesItemAndHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	item, err := svc.Create(ItemFields{
		Name:              "Gauze",
		Category:          "Insumos generales",
		Quantity:          50,
		Unit:              "box",
		LowStockThreshold: intPtr(10),
	})
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	entries := historyFor(t, db, item.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCreated, entries[0].Action)
	assert.Equal(t, "Gauze", entries[0].ItemName)
	assert.Equal(t, 50, entries[0].Quantity)
}

func TestUpdateMergesFieldsAndWritesHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	item, err := svc.Create(ItemFields{Name: "Gloves", Category: "Insumos generales", Quantity: 20, Unit: "box"})
	require.NoError(t, err)

	updated, err := svc.Update(item.ID, UpdateFields{
		Name:     strPtr("Nitrile Gloves"),
		Quantity: intPtr(35),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nitrile Gloves", updated.Name)
	assert.Equal(t, 35, updated.Quantity)
	// Untouched fields survive the merge
	assert.Equal(t, "Insumos generales", updated.Category)
	assert.Equal(t, "box", updated.Unit)

	entries := historyFor(t, db, item.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionUpdated, entries[1].Action)
	assert.Equal(t, "Nitrile Gloves", entries[1].ItemName)
	assert.Equal(t, 35, entries[1].Quantity)
}

func TestUpdateNotFoundWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	_, err := svc.Update(999, UpdateFields{Quantity: intPtr(1)})
	assert.ErrorIs(t, err, ErrItemNotFound)

	var count int64
	require.NoError(t, db.Model(&models.InventoryHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteLeavesOnlyTerminalHistoryRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	item, err := svc.Create(ItemFields{Name: "Anesthetic", Category: "Cirugía", Quantity: 8, Unit: "vial"})
	require.NoError(t, err)
	_, err = svc.Update(item.ID, UpdateFields{Quantity: intPtr(6)})
	require.NoError(t, err)
	require.Len(t, historyFor(t, db, item.ID), 2)

	require.NoError(t, svc.Delete(item.ID))

	err = db.First(&models.InventoryItem{}, item.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Prior rows are purged with the item; only the deleted snapshot remains.
	entries := historyFor(t, db, item.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionDeleted, entries[0].Action)
	assert.Equal(t, "Anesthetic", entries[0].ItemName)
	assert.Equal(t, 0, entries[0].Quantity)
}

func TestDeleteTwiceReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	item, err := svc.Create(ItemFields{Name: "Masks", Category: "Insumos generales", Quantity: 100, Unit: "box"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(item.ID))
	err = svc.Delete(item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	// No duplicate history row for the second attempt.
	entries := historyFor(t, db, item.ID)
	assert.Len(t, entries, 1)
}

func TestBulkDeletePartialMatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	a, err := svc.Create(ItemFields{Name: "Cotton Rolls", Category: "Insumos generales", Quantity: 30, Unit: "pack"})
	require.NoError(t, err)
	b, err := svc.Create(ItemFields{Name: "Sutures", Category: "Cirugía", Quantity: 12, Unit: "box"})
	require.NoError(t, err)

	deleted, err := svc.BulkDelete([]uint{a.ID, b.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	var remaining int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	// Exactly one bulk_deleted row per item that existed, none for 9999.
	var entries []models.InventoryHistory
	require.NoError(t, db.Where("action = ?", models.ActionBulkDeleted).Find(&entries).Error)
	require.Len(t, entries, 2)
	names := map[uint]string{entries[0].ItemID: entries[0].ItemName, entries[1].ItemID: entries[1].ItemName}
	assert.Equal(t, "Cotton Rolls", names[a.ID])
	assert.Equal(t, "Sutures", names[b.ID])
	for _, entry := range entries {
		assert.Equal(t, 0, entry.Quantity)
	}
}

func TestBulkDeleteNoMatchesWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	deleted, err := svc.BulkDelete([]uint{1, 2, 3})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	var count int64
	require.NoError(t, db.Model(&models.InventoryHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBulkDeleteEmptyIDs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	_, err := svc.BulkDelete(nil)
	assert.ErrorIs(t, err, ErrEmptyIDList)
}

func TestBulkUpdateQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	a, err := svc.Create(ItemFields{Name: "Bibs", Category: "Insumos generales", Quantity: 5, Unit: "pack"})
	require.NoError(t, err)
	b, err := svc.Create(ItemFields{Name: "Burs", Category: "Cirugía", Quantity: 9, Unit: "set"})
	require.NoError(t, err)

	items, err := svc.BulkUpdate([]uint{a.ID, b.ID}, "quantity", "40")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, 40, item.Quantity)
	}

	var entries []models.InventoryHistory
	require.NoError(t, db.Where("action = ?", models.ActionBulkUpdated).Find(&entries).Error)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, 40, entry.Quantity)
	}
}

func TestBulkUpdateCategoryKeepsOwnQuantities(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	a, err := svc.Create(ItemFields{Name: "Scalpels", Category: "Insumos generales", Quantity: 7, Unit: "box"})
	require.NoError(t, err)
	b, err := svc.Create(ItemFields{Name: "Forceps", Category: "Insumos generales", Quantity: 3, Unit: "unit"})
	require.NoError(t, err)

	items, err := svc.BulkUpdate([]uint{a.ID, b.ID}, "category", "Cirugía")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "Cirugía", item.Category)
	}

	// History quantity is each item's own current quantity, not 0.
	var entries []models.InventoryHistory
	require.NoError(t, db.Where("action = ?", models.ActionBulkUpdated).Order("item_id ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, 7, entries[0].Quantity)
	assert.Equal(t, 3, entries[1].Quantity)
}

func TestBulkUpdateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	_, err := svc.BulkUpdate(nil, "quantity", "5")
	assert.ErrorIs(t, err, ErrEmptyIDList)

	_, err = svc.BulkUpdate([]uint{1}, "id", "5")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = svc.BulkUpdate([]uint{1}, "quantity", "lots")
	assert.ErrorIs(t, err, ErrInvalidValue)

	// Nothing reached the store.
	var count int64
	require.NoError(t, db.Model(&models.InventoryHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBulkImportWritesOneHistoryRowPerItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	items, err := svc.BulkImport([]ItemFields{
		{Name: "Gauze", Category: "Insumos generales", Quantity: 50, Unit: "box", LowStockThreshold: intPtr(10)},
		{Name: "Gloves", Category: "Insumos generales", Quantity: 80, Unit: "box"},
		{Name: "Sutures", Category: "Cirugía", Quantity: 15, Unit: "box"},
	})
	require.NoError(t, err)
	require.Len(t, items, 3)

	var entries []models.InventoryHistory
	require.NoError(t, db.Where("action = ?", models.ActionBulkImported).Order("id ASC").Find(&entries).Error)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, items[i].ID, entry.ItemID)
		assert.Equal(t, items[i].Name, entry.ItemName)
		assert.Equal(t, items[i].Quantity, entry.Quantity)
	}
}

func TestBulkImportEmptyRows(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	items, err := svc.BulkImport(nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	var count int64
	require.NoError(t, db.Model(&models.InventoryHistory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRollsBackWhenHistoryAppendFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	failHistoryAppends(t, db)

	_, err := svc.Create(ItemFields{Name: "Gauze", Category: "Insumos generales", Quantity: 50, Unit: "box"})
	require.Error(t, err)

	// The item write must have been rolled back with the failed append.
	var items int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&items).Error)
	assert.Zero(t, items)
	var entries int64
	require.NoError(t, db.Model(&models.InventoryHistory{}).Count(&entries).Error)
	assert.Zero(t, entries)
}

func TestBulkDeleteRollsBackWhenHistoryAppendFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	a, err := svc.Create(ItemFields{Name: "Cotton Rolls", Category: "Insumos generales", Quantity: 30, Unit: "pack"})
	require.NoError(t, err)
	b, err := svc.Create(ItemFields{Name: "Sutures", Category: "Cirugía", Quantity: 12, Unit: "box"})
	require.NoError(t, err)

	failHistoryAppends(t, db)

	_, err = svc.BulkDelete([]uint{a.ID, b.ID})
	require.Error(t, err)

	// Both items and their original history rows survive; the purge and the
	// deletes rolled back with the failed appends.
	var items int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&items).Error)
	assert.Equal(t, int64(2), items)
	assert.Len(t, historyFor(t, db, a.ID), 1)
	assert.Len(t, historyFor(t, db, b.ID), 1)

	var bulkRows int64
	require.NoError(t, db.Model(&models.InventoryHistory{}).Where("action = ?", models.ActionBulkDeleted).Count(&bulkRows).Error)
	assert.Zero(t, bulkRows)
}

func TestBulkUpdateRollsBackWhenHistoryAppendFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	item, err := svc.Create(ItemFields{Name: "Bibs", Category: "Insumos generales", Quantity: 5, Unit: "pack"})
	require.NoError(t, err)

	failHistoryAppends(t, db)

	_, err = svc.BulkUpdate([]uint{item.ID}, "quantity", "40")
	require.Error(t, err)

	// Pre-operation quantity is intact.
	var stored models.InventoryItem
	require.NoError(t, db.First(&stored, item.ID).Error)
	assert.Equal(t, 5, stored.Quantity)

	var bulkRows int64
	require.NoError(t, db.Model(&models.InventoryHistory{}).Where("action = ?", models.ActionBulkUpdated).Count(&bulkRows).Error)
	assert.Zero(t, bulkRows)
}

func TestBulkImportRollsBackWhenHistoryAppendFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	failHistoryAppends(t, db)

	_, err := svc.BulkImport([]ItemFields{
		{Name: "Gauze", Category: "Insumos generales", Quantity: 50, Unit: "box"},
		{Name: "Gloves", Category: "Insumos generales", Quantity: 80, Unit: "box"},
	})
	require.Error(t, err)

	// No partially imported items remain.
	var items int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&items).Error)
	assert.Zero(t, items)
	var entries int64
	require.NoError(t, db.Model(&models.InventoryHistory{}).Count(&entries).Error)
	assert.Zero(t, entries)
}

func TestUpdateRollsBackWhenHistoryAppendFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMutationService(db)

	item, err := svc.Create(ItemFields{Name: "Gloves", Category: "Insumos generales", Quantity: 20, Unit: "box"})
	require.NoError(t, err)

	failHistoryAppends(t, db)

	_, err = svc.Update(item.ID, UpdateFields{Quantity: intPtr(99)})
	require.Error(t, err)

	// Pre-operation state is intact.
	var stored models.InventoryItem
	require.NoError(t, db.First(&stored, item.ID).Error)
	assert.Equal(t, 20, stored.Quantity)

	entries := historyFor(t, db, item.ID)
	assert.Len(t, entries, 1) // only the original created row
}
