package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/upstream"
)

// upstreamError converts a platform API failure into the portal's response.
// The upstream message is surfaced where it exists; fallback covers
// transport failures with no message worth showing.
func upstreamError(c *fiber.Ctx, err error, fallback string) error {
	if upstream.IsUnauthorized(err) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Session expired. Please log in again.",
		})
	}
	if upstream.IsForbidden(err) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You do not have permission to perform this action.",
		})
	}

	var schemaErr *upstream.SchemaError
	if errors.As(err, &schemaErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": schemaErr.Error()})
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{"error": apiErr.Message})
	}

	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": fallback + ": " + err.Error()})
}
