package inventoryRoutes

import (
	inventoryController "dentinv/controllers/inventoryControllers"
	"dentinv/middleware"
	inventoryValidator "dentinv/validators/inventory"

	"github.com/gofiber/fiber/v2"
)

func SetupInventoryRoutes(app *fiber.App) {
	inventoryGroup := app.Group("/api/inventory", middleware.JWTMiddleware)

	inventoryGroup.Get("/", inventoryController.GetInventory)
	inventoryGroup.Get("/history", inventoryController.GetHistory)
	inventoryGroup.Get("/history/last10", inventoryController.GetLastActions)
	inventoryGroup.Get("/:id", inventoryController.GetItem)
	inventoryGroup.Post("/", inventoryValidator.CreateItem(), inventoryController.CreateItem)
	inventoryGroup.Put("/:id", inventoryController.UpdateItem)
	inventoryGroup.Delete("/:id", inventoryController.DeleteItem)
	inventoryGroup.Post("/bulk-delete", inventoryValidator.BulkDelete(), inventoryController.BulkDeleteItems)
	inventoryGroup.Post("/bulk-update", inventoryValidator.BulkUpdate(), inventoryController.BulkUpdateItems)
	inventoryGroup.Post("/bulk-import", inventoryController.BulkImportItems)
}
