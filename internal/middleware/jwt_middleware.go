package middleware

import (
	"log"
	"strings"

	"casabeleza/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns false.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// claimID reads a numeric claim. JWT claims decode as float64.
func claimID(claims jwt.MapClaims, key string) (uint, bool) {
	switch v := claims[key].(type) {
	case float64:
		return uint(v), true
	case int:
		return uint(v), true
	}
	return 0, false
}

// UserRequired guards consumer routes: it validates the bearer token and
// stores user_id and email in the request Locals.
func UserRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}
		if role, _ := claims["role"].(string); role != "user" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "User token required",
			})
		}
		userID, ok := claimID(claims, "user_id")
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "User token required",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("email", claims["email"])
		return c.Next()
	}
}

// AdminRequired guards admin routes. Missing or invalid tokens are 401;
// a valid token whose admin account no longer exists is 403.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}
		if role, _ := claims["role"].(string); role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		adminID, ok := claimID(claims, "admin_id")
		if !ok || !authService.AdminExists(adminID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}

		c.Locals("admin_id", adminID)
		c.Locals("username", claims["username"])
		return c.Next()
	}
}
