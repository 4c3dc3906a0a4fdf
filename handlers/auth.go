package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"school-admin/auth"
	"school-admin/middleware"
	"school-admin/models"
)

// AuthHandler serves the login endpoint and the protected example route.
type AuthHandler struct {
	Tokens      *auth.TokenService
	Credentials auth.CredentialVerifier
}

func NewAuthHandler(tokens *auth.TokenService, credentials auth.CredentialVerifier) *AuthHandler {
	return &AuthHandler{Tokens: tokens, Credentials: credentials}
}

// Login handles POST /api/login. It is the only unauthenticated endpoint:
// it turns a valid credential pair into a signed session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{Message: "Missing credentials"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{Message: "Missing credentials"})
	}

	displayName, ok := h.Credentials.VerifyCredentials(req.Username, req.Password)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.MessageResponse{Message: "Invalid username or password"})
	}

	token, err := h.Tokens.Issue(req.Username, displayName)
	if err != nil {
		log.Printf("Failed to issue token for %s: %v", req.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.MessageResponse{Message: "Failed to issue token"})
	}

	return c.JSON(models.TokenResponse{Token: token})
}

// Protected handles GET /api/protected, a minimal route demonstrating the
// auth middleware. It greets the user named in the verified claims.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	claims, ok := c.Locals(middleware.ClaimsKey).(*auth.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.MessageResponse{Message: "Unauthorized"})
	}

	return c.JSON(models.MessageResponse{
		Message: fmt.Sprintf("Hello %s, this is a protected message.", claims.Name),
	})
}
