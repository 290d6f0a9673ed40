package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rsmanito/restaurant-api/config"
	"github.com/rsmanito/restaurant-api/models"
	"github.com/rsmanito/restaurant-api/service"
	log "github.com/sirupsen/logrus"
)

const pingTimeout = 2 * time.Second

type Service interface {
	ParseToken(string) (*jwt.RegisteredClaims, error)
	IsChef(*jwt.RegisteredClaims) bool
}

type Storage interface {
	Ping(context.Context) error
	ChefExists(context.Context, string) (bool, error)
}

type Server struct {
	service Service
	storage Storage
	router  *fiber.App
}

// New returns a new Server.
func New(st Storage, cfg *config.Config) *Server {
	server := &Server{
		service: service.New(cfg),
		storage: st,
		router:  fiber.New(),
	}

	server.registerRoutes()

	return server
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	api := s.router.Group("/api/v1")
	chef := api.Group("/chef", s.JWTTokenSuppliedMiddleware, s.ChefOnlyMiddleware)
	{
		chef.Get("/me", s.handleChefMe)
	}
}

func (s *Server) Run(listenAddr string) error {
	return s.router.Listen(listenAddr)
}

func (s *Server) Shutdown() error {
	return s.router.Shutdown()
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
	defer cancel()

	if err := s.storage.Ping(ctx); err != nil {
		log.WithFields(log.Fields{"err": err}).Error("Database ping failed")
		return c.Status(http.StatusServiceUnavailable).JSON(models.HealthResponse{Status: "unavailable"})
	}

	return c.Status(http.StatusOK).JSON(models.HealthResponse{Status: "ok"})
}

func (s *Server) handleChefMe(c fiber.Ctx) error {
	claims := claimsFrom(c)

	return c.Status(http.StatusOK).JSON(models.ChefResponse{
		Username: claims.Subject,
		TokenID:  claims.ID,
	})
}
