package inventoryController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"dentinv/config"
	"dentinv/database"
	"dentinv/middleware"
	"dentinv/models"
	"dentinv/services/inventory"
	"dentinv/utils"
	inventoryValidator "dentinv/validators/inventory"
)

// itemResponse wraps an item with its derived stock status for display.
type itemResponse struct {
	models.InventoryItem
	Status string `json:"status"`
}

func withStatus(items []models.InventoryItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse{InventoryItem: item, Status: inventory.StockStatus(item)})
	}
	return out
}

// GetInventory returns items filtered by category and/or name search
func GetInventory(c *fiber.Ctx) error {
	category := c.Query("category")
	search := c.Query("search")

	svc := inventory.NewQueryService(database.Database.Db)
	items, err := svc.ListItems(category, search)
	if err != nil {
		log.Printf("Error fetching inventory: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(withStatus(items))
}

// GetHistory returns the full inventory history, newest first
func GetHistory(c *fiber.Ctx) error {
	svc := inventory.NewQueryService(database.Database.Db)
	history, err := svc.AllHistory()
	if err != nil {
		log.Printf("Error fetching inventory history: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

// GetLastActions returns the most recent history entries with item names
// resolved against the live items where they still exist
func GetLastActions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	svc := inventory.NewQueryService(database.Database.Db)
	history, err := svc.RecentHistory(limit)
	if err != nil {
		log.Printf("Error fetching last actions: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

// GetItem returns a single item with its derived status
func GetItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid item id")
	}

	svc := inventory.NewQueryService(database.Database.Db)
	item, err := svc.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, inventory.ErrItemNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Item not found")
		}
		log.Printf("Error fetching inventory item %d: %v", id, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(itemResponse{InventoryItem: *item, Status: inventory.StockStatus(*item)})
}

// CreateItem creates a new inventory item
func CreateItem(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCreateItem").(*inventoryValidator.CreateItemRequest)

	svc := inventory.NewMutationService(database.Database.Db)
	item, err := svc.Create(inventory.ItemFields{
		Name:              reqData.Name,
		Category:          reqData.Category,
		Quantity:          reqData.Quantity,
		Unit:              reqData.Unit,
		LowStockThreshold: reqData.LowStockThreshold,
	})
	if err != nil {
		log.Printf("Error creating inventory item: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

type updateItemRequest struct {
	Name              *string `json:"name"`
	Category          *string `json:"category"`
	Quantity          *int    `json:"quantity"`
	Unit              *string `json:"unit"`
	LowStockThreshold *int    `json:"lowStockThreshold"`
}

// UpdateItem applies a partial update to an item
func UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid item id")
	}

	reqData := new(updateItemRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	svc := inventory.NewMutationService(database.Database.Db)
	item, err := svc.Update(uint(id), inventory.UpdateFields{
		Name:              reqData.Name,
		Category:          reqData.Category,
		Quantity:          reqData.Quantity,
		Unit:              reqData.Unit,
		LowStockThreshold: reqData.LowStockThreshold,
	})
	if err != nil {
		if errors.Is(err, inventory.ErrItemNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Item not found")
		}
		log.Printf("Error updating inventory item %d: %v", id, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

// DeleteItem removes an item
func DeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid item id")
	}

	svc := inventory.NewMutationService(database.Database.Db)
	if err := svc.Delete(uint(id)); err != nil {
		if errors.Is(err, inventory.ErrItemNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Item not found")
		}
		log.Printf("Error deleting inventory item %d: %v", id, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDeleteItems removes every matching item in one transaction
func BulkDeleteItems(c *fiber.Ctx) error {
	reqData := c.Locals("validatedBulkDelete").(*inventoryValidator.BulkDeleteRequest)

	svc := inventory.NewMutationService(database.Database.Db)
	deleted, err := svc.BulkDelete(reqData.IDs)
	if err != nil {
		log.Printf("Error bulk deleting inventory items: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Bulk delete successful",
		"deleted": deleted,
	})
}

// BulkUpdateItems sets one field to one value on every matching item
func BulkUpdateItems(c *fiber.Ctx) error {
	reqData := c.Locals("validatedBulkUpdate").(*inventoryValidator.BulkUpdateRequest)

	svc := inventory.NewMutationService(database.Database.Db)
	items, err := svc.BulkUpdate(reqData.Items, reqData.BulkUpdateField, reqData.Value)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrUnknownField), errors.Is(err, inventory.ErrInvalidValue), errors.Is(err, inventory.ErrEmptyIDList):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("Error bulk updating inventory items: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Bulk update successful",
		"updated": len(items),
	})
}

// BulkImportItems creates items from an uploaded CSV. The uploaded file is
// removed on every exit path.
func BulkImportItems(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "CSV file is required")
	}

	filePath, err := utils.SaveUploadedFile(fileHeader, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving uploaded CSV: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
	defer utils.RemoveFile(filePath)

	rows, err := utils.ParseInventoryCSV(filePath)
	if err != nil {
		log.Printf("Error parsing uploaded CSV: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid CSV file")
	}

	svc := inventory.NewMutationService(database.Database.Db)
	items, err := svc.BulkImport(rows)
	if err != nil {
		log.Printf("Error importing inventory items: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Bulk import successful",
		"imported": len(items),
	})
}
