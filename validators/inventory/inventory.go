package inventoryValidator

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"dentinv/middleware"
)

// CreateItemRequest is the validated body for item creation. The id is
// never client-supplied.
type CreateItemRequest struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Quantity          int    `json:"quantity"`
	Unit              string `json:"unit"`
	LowStockThreshold *int   `json:"lowStockThreshold"`
}

// CreateItem validates item creation requests
func CreateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateItemRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.Name == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Item name is required")
		}
		if reqData.Category == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Item category is required")
		}
		if reqData.Unit == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Item unit is required")
		}
		if reqData.Quantity < 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Quantity cannot be negative")
		}

		c.Locals("validatedCreateItem", reqData)
		return c.Next()
	}
}

// BulkDeleteRequest is the validated body for bulk deletion.
type BulkDeleteRequest struct {
	IDs []uint `json:"ids"`
}

// BulkDelete validates bulk delete requests
func BulkDelete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BulkDeleteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if len(reqData.IDs) == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or empty ids array")
		}

		c.Locals("validatedBulkDelete", reqData)
		return c.Next()
	}
}

// BulkUpdateRequest is the validated body for bulk updates. The value may
// arrive as a JSON string or number; it is normalized to a string here.
type BulkUpdateRequest struct {
	Items           []uint      `json:"items"`
	BulkUpdateField string      `json:"bulkUpdateField"`
	BulkUpdateValue interface{} `json:"bulkUpdateValue"`

	Value string `json:"-"`
}

// BulkUpdate validates bulk update requests
func BulkUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BulkUpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if len(reqData.Items) == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or empty items array")
		}
		if reqData.BulkUpdateField == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "bulkUpdateField is required")
		}
		if reqData.BulkUpdateValue == nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "bulkUpdateValue is required")
		}

		switch v := reqData.BulkUpdateValue.(type) {
		case string:
			reqData.Value = v
		case float64:
			// JSON numbers decode as float64; quantities are whole numbers
			reqData.Value = fmt.Sprintf("%.0f", v)
		default:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "bulkUpdateValue must be a string or number")
		}

		c.Locals("validatedBulkUpdate", reqData)
		return c.Next()
	}
}
