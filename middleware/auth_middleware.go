package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rezotera/iprep_portal/models"
	"github.com/rezotera/iprep_portal/services"
	"github.com/rezotera/iprep_portal/utils"
)

func Protected(jwtSecret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(jwtSecret),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// LoadSession resolves the JWT's session claim to the stored portal session
// and stashes it on the request. A session whose upstream token was cleared
// (dead) forces a re-login.
func LoadSession(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)

		idStr, _ := claims["session_id"].(string)
		id, err := uuid.Parse(idStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
		}

		sess, err := sessions.Find(id)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Session not found, please log in again"})
		}
		if !sess.Alive() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Session expired, please log in again"})
		}

		c.Locals("session", sess)
		return c.Next()
	}
}

// Session returns the portal session LoadSession stored on the request.
func Session(c *fiber.Ctx) *models.Session {
	return c.Locals("session").(*models.Session)
}

// AdminRequired gates SuperAdmin/Admin-only surfaces (promo pages).
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if utils.RoleLevel(Session(c).Role) < 3 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Admin access required",
			})
		}
		return c.Next()
	}
}

// EditorRequired gates the exercise editor to Editor and above.
func EditorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !utils.CanManageExercises(Session(c).Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Editor access required",
			})
		}
		return c.Next()
	}
}
