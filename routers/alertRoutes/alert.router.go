package alertRoutes

import (
	alertController "dentinv/controllers/alertControllers"

	"github.com/gofiber/fiber/v2"
)

func SetupAlertRoutes(app *fiber.App) {
	app.Post("/api/low-stock-alert", alertController.SendLowStockAlert)
}
