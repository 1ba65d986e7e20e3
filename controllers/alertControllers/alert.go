package alertController

import (
	"github.com/gofiber/fiber/v2"

	"dentinv/middleware"
	"dentinv/utils"
)

// SendLowStockAlert dispatches a low-stock notification mail for the named
// item. Fire-and-forget: the response does not wait for delivery and no
// mutation is tied to it.
func SendLowStockAlert(c *fiber.Ctx) error {
	reqData := new(struct {
		ItemName string `json:"itemName"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if reqData.ItemName == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "itemName is required")
	}

	go utils.SendLowStockAlert(reqData.ItemName)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Low stock alert sent",
	})
}
