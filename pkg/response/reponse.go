package response

import (
	"github.com/gofiber/fiber/v2"
)

type ResponseErrorModel struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ResponseOKWithData writes data as-is with a 200 status. The data types in
// model carry their own "success" field so the wire shape stays flat.
func ResponseOKWithData(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func ResponseError(c *fiber.Ctx, message string, code int) error {
	response := ResponseErrorModel{
		Success: false,
		Error:   message,
	}

	return c.Status(code).JSON(response)
}

func ResponseErrorWithDetails(c *fiber.Ctx, message string, details string, code int) error {
	response := ResponseErrorModel{
		Success: false,
		Error:   message,
		Details: details,
	}

	return c.Status(code).JSON(response)
}
