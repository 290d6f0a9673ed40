package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rsmanito/restaurant-api/models"
	log "github.com/sirupsen/logrus"
)

const claimsKey = "claims"

func (s *Server) JWTTokenSuppliedMiddleware(c fiber.Ctx) error {
	h := c.Get("Authorization")
	if h == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}
	split := strings.Split(h, " ")
	if len(split) != 2 || split[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "bad token format"})
	}

	claims, err := s.service.ParseToken(split[1])
	if err != nil {
		if errors.Is(err, models.ErrTokenExpired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "expired token"})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals(claimsKey, claims)

	return c.Next()
}

// ChefOnlyMiddleware must run after JWTTokenSuppliedMiddleware.
func (s *Server) ChefOnlyMiddleware(c fiber.Ctx) error {
	claims := claimsFrom(c)
	if !s.service.IsChef(claims) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": models.ErrNotChef.Error()})
	}

	exists, err := s.storage.ChefExists(c.Context(), claims.Subject)
	if err != nil {
		log.WithFields(log.Fields{"chef": claims.Subject, "err": err}).Error("Failed to look up chef")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{})
	}
	if !exists {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": models.ErrNotChef.Error()})
	}

	return c.Next()
}

func claimsFrom(c fiber.Ctx) *jwt.RegisteredClaims {
	claims, _ := c.Locals(claimsKey).(*jwt.RegisteredClaims)
	return claims
}
